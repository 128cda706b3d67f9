package patch

import (
	"errors"
	"fmt"
)

// ErrAlreadyFinished is returned when a package in a terminal state is finished again.
var ErrAlreadyFinished = errors.New("package already finished")

// FormatError reports a malformed version, boundary or dependency string.
type FormatError struct {
	// Kind names what was being parsed: "version", "boundary" or "dependency".
	Kind string

	// Input is the offending string, verbatim.
	Input string

	// Reason describes what is wrong with Input.
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.Input, e.Reason)
}

// ResolutionErrorKind classifies problems found while selecting and ordering patches.
type ResolutionErrorKind int

const (
	// InvalidDefinition marks a patch whose own definition is inconsistent.
	InvalidDefinition ResolutionErrorKind = iota

	// DuplicatedInstaller marks a second installer for the same component.
	DuplicatedInstaller

	// UnsatisfiedDependency marks a patch whose dependencies were never met during the run.
	UnsatisfiedDependency
)

// String returns the name of the kind.
func (k ResolutionErrorKind) String() string {
	switch k {
	case InvalidDefinition:
		return "InvalidDefinition"
	case DuplicatedInstaller:
		return "DuplicatedInstaller"
	case UnsatisfiedDependency:
		return "UnsatisfiedDependency"
	default:
		return "Unknown"
	}
}

// ResolutionError is a non-fatal problem recorded in ExecutionContext.Errors.
// The patch it names was not executed.
type ResolutionError struct {
	Kind        ResolutionErrorKind
	ComponentID string
	Patch       string
	Message     string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Patch, e.Message)
}

// ExecutionError wraps the failure of a patch action, including recovered panics.
type ExecutionError struct {
	Patch string
	Cause error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	return fmt.Sprintf("executing %s: %v", e.Patch, e.Cause)
}

// Unwrap returns the underlying error.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}
