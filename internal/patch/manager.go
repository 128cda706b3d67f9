package patch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// UnsatisfiedMode decides what happens to patches whose dependencies are never met.
type UnsatisfiedMode int

const (
	// SkipUnsatisfied drops such patches silently.
	SkipUnsatisfied UnsatisfiedMode = iota

	// ReportUnsatisfied drops them and records an UnsatisfiedDependency error.
	ReportUnsatisfied
)

// Manager selects, orders and executes patches and records a package per attempt.
// Patches run strictly one after another; a Manager holds no locks and expects
// exclusive access to its store for the duration of a run.
type Manager struct {
	store       PackageStore
	logger      *log.Logger
	unsatisfied UnsatisfiedMode
	now         func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for engine diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithUnsatisfiedMode sets how unsatisfiable dependencies are handled.
func WithUnsatisfiedMode(mode UnsatisfiedMode) Option {
	return func(m *Manager) {
		m.unsatisfied = mode
	}
}

// WithClock overrides the time source used for package execution dates.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// NewManager returns a Manager persisting packages into store.
func NewManager(store PackageStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: log.New(io.Discard),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadInstalledComponents rebuilds the installed component state from the store.
func (m *Manager) LoadInstalledComponents(ctx context.Context) ([]ComponentDescriptor, error) {
	packages, err := m.store.LoadInstalledPackages(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading installed packages: %w", err)
	}
	return ComponentsFromPackages(packages), nil
}

// ExecuteRelevantPatches runs every relevant patch in dependency order and
// returns the patches that executed successfully, in execution order.
//
// A failing action marks its package Faulty and the run goes on. Resolution
// problems are appended to ectx.Errors. The returned error is non-nil only
// when a package could not be persisted, which stops the run.
func (m *Manager) ExecuteRelevantPatches(patches []Patch, installed []ComponentDescriptor, ectx *ExecutionContext) ([]Patch, error) {
	if ectx == nil {
		ectx = NewExecutionContext(context.Background(), nil)
	}

	r, errs := newResolver(patches, installed)
	ectx.Errors = append(ectx.Errors, errs...)
	for _, e := range errs {
		m.logger.Warn("patch rejected", "patch", e.Patch, "kind", e.Kind, "reason", e.Message)
	}

	var executed []Patch
	for p := r.next(); p != nil; p = r.next() {
		ok, err := m.execute(p, ectx)
		if err != nil {
			return executed, err
		}
		r.complete(p, ok)
		if ok {
			executed = append(executed, p)
		}
	}

	if m.unsatisfied == ReportUnsatisfied {
		for _, e := range r.unsatisfied() {
			m.logger.Warn("patch skipped", "patch", e.Patch, "reason", e.Message)
			ectx.Errors = append(ectx.Errors, e)
		}
	}

	m.logger.Debug("patch run finished", "run", ectx.RunID, "executed", len(executed))
	return executed, nil
}

// execute runs a single patch and persists its package before and after.
func (m *Manager) execute(p Patch, ectx *ExecutionContext) (bool, error) {
	ctx := ectx.Context()
	pkg := newPackage(p, ectx.RunID, m.now())
	if err := m.store.SavePackage(ctx, pkg); err != nil {
		return false, fmt.Errorf("saving package for %s: %w", p, err)
	}

	desc := scope(p)
	m.logger.Debug("executing patch", "package", pkg.ID, "patch", p.String(), "type", p.Type())
	ectx.log(LogRecord{ComponentID: p.ComponentID(), Description: desc, Event: ExecutionStart})

	res := run(p, ectx)
	if err := pkg.finish(res, m.now()); err != nil {
		return false, err
	}
	if err := m.store.SavePackage(ctx, pkg); err != nil {
		return false, fmt.Errorf("saving package %d: %w", pkg.ID, err)
	}

	if res.Err != nil {
		m.logger.Warn("patch faulted", "package", pkg.ID, "patch", p.String(), "error", res.Err)
	}
	ectx.log(LogRecord{
		ComponentID: p.ComponentID(),
		Description: desc,
		Event:       ExecutionFinished,
		Result:      res.Result,
		Err:         res.Err,
	})
	return res.Result == Successful, nil
}

// executionOutcome is the data that drives a package to its terminal state.
type executionOutcome struct {
	Result ExecutionResult
	Err    error
}

func run(p Patch, ectx *ExecutionContext) (res executionOutcome) {
	ectx.CurrentPatch = p
	defer func() {
		ectx.CurrentPatch = nil
		if v := recover(); v != nil {
			res = executionOutcome{
				Result: Faulty,
				Err:    &ExecutionError{Patch: p.String(), Cause: fmt.Errorf("panic: %v", v)},
			}
		}
	}()

	if err := p.Execute(ectx); err != nil {
		return executionOutcome{Result: Faulty, Err: &ExecutionError{Patch: p.String(), Cause: err}}
	}
	return executionOutcome{Result: Successful}
}
