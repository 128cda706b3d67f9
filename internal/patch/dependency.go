package patch

import (
	"fmt"
	"strings"
)

// Dependency names a component and the boundary its version has to be in.
type Dependency struct {
	ID       string
	Boundary Boundary
}

// NewDependency builds a dependency on component id.
func NewDependency(id string, boundary Boundary) Dependency {
	return Dependency{ID: id, Boundary: boundary}
}

// ParseDependency parses "<id>: <boundary>", for example "C1: 1.0 <= v < 2.0".
// A bare id depends on any installed version.
func ParseDependency(s string) (Dependency, error) {
	id, rest, found := strings.Cut(s, ":")
	id = strings.TrimSpace(id)
	if id == "" {
		return Dependency{}, &FormatError{Kind: "dependency", Input: s, Reason: "component id is empty"}
	}
	if !found || strings.TrimSpace(rest) == "" {
		return Dependency{ID: id, Boundary: Unbounded()}, nil
	}

	b, err := ParseBoundary(strings.TrimSpace(rest))
	if err != nil {
		return Dependency{}, &FormatError{Kind: "dependency", Input: s, Reason: err.Error()}
	}
	return Dependency{ID: id, Boundary: b}, nil
}

// String renders the form accepted by ParseDependency.
func (d Dependency) String() string {
	return fmt.Sprintf("%s: %s", d.ID, d.Boundary)
}

// MarshalText implements encoding.TextMarshaler.
func (d Dependency) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dependency) UnmarshalText(text []byte) error {
	parsed, err := ParseDependency(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
