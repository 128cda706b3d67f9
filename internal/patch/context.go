package patch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Event is the phase a log record was emitted in.
type Event int

const (
	// ExecutionStart is emitted right before a patch action runs.
	ExecutionStart Event = iota

	// ExecutionFinished is emitted after the package reached its terminal state.
	ExecutionFinished
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case ExecutionStart:
		return "ExecutionStart"
	case ExecutionFinished:
		return "ExecutionFinished"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// LogRecord is emitted twice per executed patch.
type LogRecord struct {
	ComponentID string
	Description string
	Event       Event
	Result      ExecutionResult
	Err         error
}

// String renders "[C1: 1.0] ExecutionStart." or "[C1: 1.0] ExecutionFinished. Successful".
func (r LogRecord) String() string {
	s := fmt.Sprintf("[%s: %s] %s.", r.ComponentID, r.Description, r.Event)
	if r.Event == ExecutionFinished {
		s += " " + r.Result.String()
	}
	return s
}

// ExecutionContext carries per-run state through the Manager and into patch actions.
type ExecutionContext struct {
	// Errors collects resolution problems. Failing actions are not recorded here.
	Errors []*ResolutionError

	// LogMessage receives a start and a finish record per executed patch. May be nil.
	LogMessage func(LogRecord)

	// CurrentPatch is the patch whose action is running; nil outside Execute.
	CurrentPatch Patch

	// RunID identifies the run on every package it writes.
	RunID string

	ctx context.Context
}

// NewExecutionContext returns a context with a fresh run ID.
func NewExecutionContext(ctx context.Context, logMessage func(LogRecord)) *ExecutionContext {
	if ctx == nil {
		ctx = context.Background()
	}
	return &ExecutionContext{
		LogMessage: logMessage,
		RunID:      uuid.NewString(),
		ctx:        ctx,
	}
}

// Context returns the context.Context the run was started with.
func (c *ExecutionContext) Context() context.Context {
	if c.ctx == nil {
		return context.Background()
	}
	return c.ctx
}

func (c *ExecutionContext) log(r LogRecord) {
	if c.LogMessage != nil {
		c.LogMessage(r)
	}
}
