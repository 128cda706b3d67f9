package errors

import "errors"

// Exit codes returned by patchctl.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates a manifest or configuration failed validation.
	ExitValidationError = 2

	// ExitStoreError indicates the package store could not be read or written.
	ExitStoreError = 3

	// ExitNotFound indicates a manifest, package or file was not found.
	ExitNotFound = 5

	// ExitExecutionFaulted indicates at least one package ended Faulty.
	ExitExecutionFaulted = 6
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the error was already shown to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return ExitCodeName(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrStore):
		return ExitStoreError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrExecution):
		return ExitExecutionFaulted
	default:
		return ExitGeneralError
	}
}

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitStoreError:
		return "Store Error"
	case ExitNotFound:
		return "Not Found"
	case ExitExecutionFaulted:
		return "Execution Faulted"
	default:
		return "Unknown"
	}
}
