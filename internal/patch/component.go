package patch

import (
	"fmt"
	"sort"
)

// ComponentDescriptor is the installed state of one component.
type ComponentDescriptor struct {
	ComponentID  string       `json:"componentId"`
	Version      Version      `json:"version"`
	Description  string       `json:"description,omitempty"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
}

// String renders "C1: 1.0".
func (c ComponentDescriptor) String() string {
	return fmt.Sprintf("%s: %s", c.ComponentID, c.Version)
}

// ComponentsFromPackages rebuilds the installed components from package history.
// Only successful packages count and the one with the highest ID wins.
// The result is sorted by component ID.
func ComponentsFromPackages(packages []Package) []ComponentDescriptor {
	sorted := make([]Package, len(packages))
	copy(sorted, packages)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	byID := make(map[string]*ComponentDescriptor)
	for _, p := range sorted {
		if p.ExecutionResult != Successful {
			continue
		}
		c, ok := byID[p.ComponentID]
		if !ok {
			c = &ComponentDescriptor{ComponentID: p.ComponentID}
			byID[p.ComponentID] = c
		}
		c.Version = p.ComponentVersion
		c.Dependencies = p.Dependencies
		if p.Description != "" {
			c.Description = p.Description
		}
	}

	result := make([]ComponentDescriptor, 0, len(byID))
	for _, c := range byID {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ComponentID < result[j].ComponentID })
	return result
}
