package patch

import (
	"errors"
	"fmt"
)

// errNilPatch is returned by Validate on a nil *Installer or *Upgrade.
var errNilPatch = errors.New("patch is nil")

// Action is the side effect of an installer or upgrade.
type Action func(*ExecutionContext) error

// Patch is a unit of work the Manager can execute: an *Installer or an *Upgrade.
type Patch interface {
	ComponentID() string
	Version() Version
	Description() string
	Dependencies() []Dependency
	Type() PackageType
	Execute(*ExecutionContext) error
	Validate() error
	fmt.Stringer
}

// Installer creates a component that is not installed yet.
type Installer struct {
	id           string
	version      Version
	description  string
	dependencies []Dependency
	action       Action
}

// NewInstaller returns an installer that brings component id to version.
func NewInstaller(id string, version Version, action Action, deps ...Dependency) *Installer {
	return &Installer{
		id:           id,
		version:      version,
		dependencies: deps,
		action:       action,
	}
}

// WithDescription returns a copy of the installer carrying a description.
func (p *Installer) WithDescription(description string) *Installer {
	c := *p
	c.description = description
	return &c
}

func (p *Installer) ComponentID() string { return p.id }
func (p *Installer) Version() Version    { return p.version }
func (p *Installer) Description() string { return p.description }
func (p *Installer) Type() PackageType   { return Install }

// Dependencies returns a copy of the declared dependencies.
func (p *Installer) Dependencies() []Dependency {
	return cloneDependencies(p.dependencies)
}

// Execute runs the installer action. A nil action succeeds.
func (p *Installer) Execute(ctx *ExecutionContext) error {
	if p.action == nil {
		return nil
	}
	return p.action(ctx)
}

// Validate checks the installer definition.
func (p *Installer) Validate() error {
	if p == nil {
		return errNilPatch
	}
	return validateCommon(p.id, p.version, p.dependencies)
}

// String renders "C1: 1.0".
func (p *Installer) String() string {
	return fmt.Sprintf("%s: %s", p.id, p.version)
}

// Upgrade moves an installed component whose version lies inside a boundary
// to a newer version.
type Upgrade struct {
	id           string
	boundary     Boundary
	version      Version
	description  string
	dependencies []Dependency
	action       Action
}

// NewUpgrade returns an upgrade from boundary to version for component id.
func NewUpgrade(id string, boundary Boundary, version Version, action Action, deps ...Dependency) *Upgrade {
	return &Upgrade{
		id:           id,
		boundary:     boundary,
		version:      version,
		dependencies: deps,
		action:       action,
	}
}

// WithDescription returns a copy of the upgrade carrying a description.
func (p *Upgrade) WithDescription(description string) *Upgrade {
	c := *p
	c.description = description
	return &c
}

func (p *Upgrade) ComponentID() string { return p.id }
func (p *Upgrade) Version() Version    { return p.version }
func (p *Upgrade) Description() string { return p.description }
func (p *Upgrade) Boundary() Boundary  { return p.boundary }
func (p *Upgrade) Type() PackageType   { return PatchType }

// Dependencies returns a copy of the declared dependencies.
func (p *Upgrade) Dependencies() []Dependency {
	return cloneDependencies(p.dependencies)
}

// Execute runs the upgrade action. A nil action succeeds.
func (p *Upgrade) Execute(ctx *ExecutionContext) error {
	if p.action == nil {
		return nil
	}
	return p.action(ctx)
}

// Validate checks the upgrade definition. The target version has to lie
// above the boundary, otherwise the upgrade could apply to its own result.
func (p *Upgrade) Validate() error {
	if p == nil {
		return errNilPatch
	}
	if err := validateCommon(p.id, p.version, p.dependencies); err != nil {
		return err
	}
	if !p.boundary.HasMax() {
		return errors.New("boundary has no upper limit")
	}
	b := p.boundary.normalize()
	c := p.version.Compare(b.MaxVersion)
	if c < 0 || (c == 0 && !b.MaxVersionIsExclusive) {
		return fmt.Errorf("target version %s is not above boundary %s", p.version, p.boundary)
	}
	return nil
}

// String renders "C1: 1.0 <= v < 2.0".
func (p *Upgrade) String() string {
	return fmt.Sprintf("%s: %s", p.id, p.boundary)
}

func validateCommon(id string, version Version, deps []Dependency) error {
	if id == "" {
		return errors.New("component id is empty")
	}
	if version.IsZero() {
		return errors.New("target version is missing")
	}
	for _, d := range deps {
		if d.ID == id {
			return errors.New("component depends on itself")
		}
		if d.ID == "" {
			return errors.New("dependency with empty component id")
		}
	}
	return nil
}

func cloneDependencies(deps []Dependency) []Dependency {
	if len(deps) == 0 {
		return nil
	}
	out := make([]Dependency, len(deps))
	copy(out, deps)
	return out
}

// scope is the version-or-boundary text used in log records.
func scope(p Patch) string {
	if u, ok := p.(*Upgrade); ok {
		return u.boundary.String()
	}
	return p.Version().String()
}
