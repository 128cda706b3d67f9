package patch

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// componentState is the simulated state of one component during a run.
type componentState struct {
	version     Version
	installed   bool
	faulted     bool
	description string
	deps        []Dependency
}

// resolver picks the next executable patch given everything executed so far.
// It is not safe for concurrent use.
type resolver struct {
	pending []Patch
	state   map[string]*componentState
}

func newResolver(patches []Patch, installed []ComponentDescriptor) (*resolver, []*ResolutionError) {
	r := &resolver{state: make(map[string]*componentState)}
	for _, c := range installed {
		r.state[c.ComponentID] = &componentState{
			version:     c.Version,
			installed:   true,
			description: c.Description,
			deps:        c.Dependencies,
		}
	}

	var errs []*ResolutionError
	installers := make(map[string]bool)
	var valid []Patch
	for _, p := range patches {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			if errors.Is(err, errNilPatch) {
				continue
			}
			errs = append(errs, &ResolutionError{
				Kind:        InvalidDefinition,
				ComponentID: p.ComponentID(),
				Patch:       p.String(),
				Message:     err.Error(),
			})
			continue
		}
		// Installers of an installed component are never relevant, so only
		// pending installs can collide.
		if p.Type() == Install && !r.installed(p.ComponentID()) {
			if installers[p.ComponentID()] {
				errs = append(errs, &ResolutionError{
					Kind:        DuplicatedInstaller,
					ComponentID: p.ComponentID(),
					Patch:       p.String(),
					Message:     "component has more than one installer",
				})
				continue
			}
			installers[p.ComponentID()] = true
		}
		valid = append(valid, p)
	}

	for _, p := range valid {
		st := r.state[p.ComponentID()]
		switch p.Type() {
		case Install:
			if st != nil && st.installed {
				continue
			}
		default:
			if (st == nil || !st.installed) && !installers[p.ComponentID()] {
				continue
			}
		}
		r.pending = append(r.pending, p)
	}

	// Upgrades of a component that is not installed yet never become applicable
	// before its installer ran, so input order already puts installers first.
	return r, errs
}

// next removes and returns the first pending patch that is applicable and
// whose dependencies are met, or nil when none is left.
func (r *resolver) next() Patch {
	for i, p := range r.pending {
		if r.applicable(p) && r.satisfied(p) {
			r.pending = append(r.pending[:i:i], r.pending[i+1:]...)
			return p
		}
	}
	return nil
}

// complete records the outcome of p. The component version only moves on success.
func (r *resolver) complete(p Patch, ok bool) {
	st := r.state[p.ComponentID()]
	if st == nil {
		st = &componentState{}
		r.state[p.ComponentID()] = st
	}
	if !ok {
		st.faulted = true
		return
	}
	st.version = p.Version()
	st.installed = true
	st.deps = p.Dependencies()
	if p.Description() != "" {
		st.description = p.Description()
	}
}

func (r *resolver) applicable(p Patch) bool {
	st := r.state[p.ComponentID()]
	if st != nil && st.faulted {
		return false
	}
	if p.Type() == Install {
		return st == nil || !st.installed
	}
	if st == nil || !st.installed {
		return false
	}
	if u, ok := p.(*Upgrade); ok {
		return u.boundary.Contains(st.version)
	}
	return false
}

func (r *resolver) satisfied(p Patch) bool {
	return len(r.missing(p)) == 0
}

func (r *resolver) missing(p Patch) []Dependency {
	var missing []Dependency
	for _, d := range p.Dependencies() {
		st := r.state[d.ID]
		if st == nil || !st.installed || !d.Boundary.Contains(st.version) {
			missing = append(missing, d)
		}
	}
	return missing
}

// unsatisfied reports pending patches that were applicable but never got their
// dependencies met.
func (r *resolver) unsatisfied() []*ResolutionError {
	var errs []*ResolutionError
	for _, p := range r.pending {
		if !r.applicable(p) {
			continue
		}
		missing := r.missing(p)
		if len(missing) == 0 {
			continue
		}
		names := make([]string, len(missing))
		for i, d := range missing {
			names[i] = d.String()
		}
		errs = append(errs, &ResolutionError{
			Kind:        UnsatisfiedDependency,
			ComponentID: p.ComponentID(),
			Patch:       p.String(),
			Message:     fmt.Sprintf("unsatisfied dependencies: %s", strings.Join(names, ", ")),
		})
	}
	return errs
}

// components returns the simulated installed state sorted by component ID.
func (r *resolver) components() []ComponentDescriptor {
	result := make([]ComponentDescriptor, 0, len(r.state))
	for id, st := range r.state {
		if !st.installed {
			continue
		}
		result = append(result, ComponentDescriptor{
			ComponentID:  id,
			Version:      st.version,
			Description:  st.description,
			Dependencies: cloneDependencies(st.deps),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ComponentID < result[j].ComponentID })
	return result
}

func (r *resolver) installed(id string) bool {
	_, ok := r.currentVersion(id)
	return ok
}

func (r *resolver) currentVersion(id string) (Version, bool) {
	st := r.state[id]
	if st == nil || !st.installed {
		return Version{}, false
	}
	return st.version, true
}
