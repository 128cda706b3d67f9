package patch

// PlanStep is one patch in the order the Manager would run it.
type PlanStep struct {
	Patch Patch

	// From is the component version before the step; zero for installers.
	From Version
}

// Plan is the outcome of resolving patches under the assumption that every
// action succeeds.
type Plan struct {
	Steps      []PlanStep
	Before     []ComponentDescriptor
	After      []ComponentDescriptor
	Errors     []*ResolutionError
	Unselected []Patch
}

// Plan resolves patches against installed without executing anything or
// touching the store.
func (m *Manager) Plan(patches []Patch, installed []ComponentDescriptor) *Plan {
	r, errs := newResolver(patches, installed)
	plan := &Plan{
		Before: cloneComponents(installed),
		Errors: errs,
	}

	for p := r.next(); p != nil; p = r.next() {
		from, _ := r.currentVersion(p.ComponentID())
		plan.Steps = append(plan.Steps, PlanStep{Patch: p, From: from})
		r.complete(p, true)
	}

	if m.unsatisfied == ReportUnsatisfied {
		plan.Errors = append(plan.Errors, r.unsatisfied()...)
	}
	plan.Unselected = append(plan.Unselected, r.pending...)
	plan.After = r.components()
	return plan
}

func cloneComponents(in []ComponentDescriptor) []ComponentDescriptor {
	out := make([]ComponentDescriptor, len(in))
	for i, c := range in {
		c.Dependencies = cloneDependencies(c.Dependencies)
		out[i] = c
	}
	return out
}
