// Package manifest loads patch manifests and turns them into executable patches.
package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/patch"
)

// Manifest is one manifest file.
type Manifest struct {
	// Path is the file the manifest was read from; empty for in-memory manifests.
	Path string `yaml:"-" json:"-"`

	Components []Component `yaml:"components,omitempty" json:"components,omitempty"`
}

// Component declares the installer and upgrades of one component.
type Component struct {
	ID          string   `yaml:"id" json:"id"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Install     *Install `yaml:"install,omitempty" json:"install,omitempty"`
	Patches     []Patch  `yaml:"patches,omitempty" json:"patches,omitempty"`
}

// Install describes the installer of a component.
type Install struct {
	Version      string   `yaml:"version" json:"version"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Steps        []Step   `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// Patch describes an upgrade from a boundary to a version.
type Patch struct {
	Boundary     string   `yaml:"boundary" json:"boundary"`
	Version      string   `yaml:"version" json:"version"`
	Description  string   `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	Steps        []Step   `yaml:"steps,omitempty" json:"steps,omitempty"`
}

// Step is a shell command run as part of an installer or upgrade.
type Step struct {
	Run string            `yaml:"run" json:"run"`
	Dir string            `yaml:"dir,omitempty" json:"dir,omitempty"`
	Env map[string]string `yaml:"env,omitempty" json:"env,omitempty"`
}

// Parse decodes and validates manifest data. path is used in error messages only.
func Parse(path string, data []byte) (*Manifest, error) {
	m := &Manifest{Path: path}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, &oerrors.DetailError{
			Type:     "validation failed",
			Message:  err.Error(),
			Location: path,
			Hint:     "Check the manifest is valid YAML and uses only known keys.",
			Cause:    oerrors.ErrValidation,
		}
	}

	if err := Validate(m); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads and validates the manifest at path.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, oerrors.NewNotFoundError("manifest file does not exist", path, "")
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	return Parse(path, data)
}

// LoadFiles loads manifests concurrently and returns them in argument order.
// The first failure cancels the remaining loads.
func LoadFiles(ctx context.Context, paths ...string) ([]*Manifest, error) {
	manifests := make([]*Manifest, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			m, err := LoadFile(path)
			if err != nil {
				return err
			}
			manifests[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return manifests, nil
}

// Patches converts every manifest into patches, keeping declaration order.
// Step actions are bound to runner; a nil runner yields no-op actions.
func Patches(manifests []*Manifest, runner *Runner) ([]patch.Patch, error) {
	var out []patch.Patch
	for _, m := range manifests {
		ps, err := m.Patches(runner)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}

// Patches converts the manifest into patches: per component the installer
// first, then its upgrades in declaration order.
func (m *Manifest) Patches(runner *Runner) ([]patch.Patch, error) {
	var out []patch.Patch
	for ci, c := range m.Components {
		if c.Install != nil {
			field := fmt.Sprintf("components[%d].install", ci)
			version, deps, err := m.parseTarget(field, c.Install.Version, c.Install.Dependencies)
			if err != nil {
				return nil, err
			}
			inst := patch.NewInstaller(c.ID, version, runner.Action(c.ID, version, m.steps(c.Install.Steps)), deps...).
				WithDescription(firstNonEmpty(c.Install.Description, c.Description))
			out = append(out, inst)
		}

		for pi, p := range c.Patches {
			field := fmt.Sprintf("components[%d].patches[%d]", ci, pi)
			boundary, err := patch.ParseBoundary(p.Boundary)
			if err != nil {
				return nil, m.fieldError(field+".boundary", err)
			}
			version, deps, err := m.parseTarget(field, p.Version, p.Dependencies)
			if err != nil {
				return nil, err
			}
			up := patch.NewUpgrade(c.ID, boundary, version, runner.Action(c.ID, version, m.steps(p.Steps)), deps...).
				WithDescription(p.Description)
			out = append(out, up)
		}
	}
	return out, nil
}

func (m *Manifest) parseTarget(field, version string, dependencies []string) (patch.Version, []patch.Dependency, error) {
	v, err := patch.ParseVersion(version)
	if err != nil {
		return patch.Version{}, nil, m.fieldError(field+".version", err)
	}
	deps := make([]patch.Dependency, 0, len(dependencies))
	for i, s := range dependencies {
		d, err := patch.ParseDependency(s)
		if err != nil {
			return patch.Version{}, nil, m.fieldError(fmt.Sprintf("%s.dependencies[%d]", field, i), err)
		}
		deps = append(deps, d)
	}
	return v, deps, nil
}

// steps resolves relative step directories against the manifest location.
func (m *Manifest) steps(steps []Step) []Step {
	if len(steps) == 0 {
		return nil
	}
	base := "."
	if m.Path != "" {
		base = filepath.Dir(m.Path)
	}
	out := make([]Step, len(steps))
	for i, s := range steps {
		if s.Dir != "" && !filepath.IsAbs(s.Dir) {
			s.Dir = filepath.Join(base, s.Dir)
		}
		out[i] = s
	}
	return out
}

func (m *Manifest) fieldError(field string, err error) error {
	return &oerrors.DetailError{
		Type:     "validation failed",
		Message:  err.Error(),
		Location: m.Path,
		Field:    field,
		Cause:    oerrors.ErrValidation,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
