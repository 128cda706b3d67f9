package patch

import (
	"context"
	"fmt"
	"time"
)

// PackageType tells whether a package installed a component or patched it.
type PackageType int

const (
	// Install creates a component from nothing.
	Install PackageType = iota

	// PatchType upgrades an installed component.
	PatchType
)

// String returns "Install" or "Patch".
func (t PackageType) String() string {
	switch t {
	case Install:
		return "Install"
	case PatchType:
		return "Patch"
	default:
		return fmt.Sprintf("PackageType(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t PackageType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *PackageType) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Install":
		*t = Install
	case "Patch":
		*t = PatchType
	default:
		return fmt.Errorf("unknown package type %q", text)
	}
	return nil
}

// ExecutionResult is the state of a package.
type ExecutionResult int

const (
	// Unfinished is recorded before the action runs.
	Unfinished ExecutionResult = iota

	// Successful is recorded when the action returned without error.
	Successful

	// Faulty is recorded when the action failed or panicked.
	Faulty
)

// String returns the result name.
func (r ExecutionResult) String() string {
	switch r {
	case Unfinished:
		return "Unfinished"
	case Successful:
		return "Successful"
	case Faulty:
		return "Faulty"
	default:
		return fmt.Sprintf("ExecutionResult(%d)", int(r))
	}
}

// IsTerminal reports whether the result can no longer change.
func (r ExecutionResult) IsTerminal() bool {
	return r == Successful || r == Faulty
}

// MarshalText implements encoding.TextMarshaler.
func (r ExecutionResult) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ExecutionResult) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Unfinished":
		*r = Unfinished
	case "Successful":
		*r = Successful
	case "Faulty":
		*r = Faulty
	default:
		return fmt.Errorf("unknown execution result %q", text)
	}
	return nil
}

// Package is the persisted record of one execution attempt.
type Package struct {
	ID               int64           `json:"id"`
	ComponentID      string          `json:"componentId"`
	Description      string          `json:"description,omitempty"`
	PackageType      PackageType     `json:"packageType"`
	ExecutionResult  ExecutionResult `json:"executionResult"`
	ComponentVersion Version         `json:"componentVersion"`
	ExecutionDate    time.Time       `json:"executionDate"`
	ExecutionError   string          `json:"executionError,omitempty"`
	Dependencies     []Dependency    `json:"dependencies,omitempty"`
	RunID            string          `json:"runId,omitempty"`
}

// String renders "1, C1: Install Successful, 1.0".
func (p Package) String() string {
	return fmt.Sprintf("%d, %s: %s %s, %s", p.ID, p.ComponentID, p.PackageType, p.ExecutionResult, p.ComponentVersion)
}

func newPackage(p Patch, runID string, now time.Time) *Package {
	return &Package{
		ComponentID:      p.ComponentID(),
		Description:      p.Description(),
		PackageType:      p.Type(),
		ExecutionResult:  Unfinished,
		ComponentVersion: p.Version(),
		ExecutionDate:    now,
		Dependencies:     p.Dependencies(),
		RunID:            runID,
	}
}

func (p *Package) finish(res executionOutcome, now time.Time) error {
	if p.ExecutionResult.IsTerminal() {
		return fmt.Errorf("package %d: %w", p.ID, ErrAlreadyFinished)
	}
	p.ExecutionResult = res.Result
	p.ExecutionDate = now
	if res.Err != nil {
		p.ExecutionError = res.Err.Error()
	}
	return nil
}

// PackageStore persists packages. SavePackage inserts a package whose ID is 0,
// assigning the next gap-free ID, and updates it otherwise.
type PackageStore interface {
	LoadInstalledPackages(ctx context.Context) ([]Package, error)
	SavePackage(ctx context.Context, pkg *Package) error
}
