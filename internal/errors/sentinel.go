package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a manifest, boundary or configuration failed validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a manifest, package or configuration file was not found.
	ErrNotFound = errors.New("not found")

	// ErrExecution indicates at least one patch action ended Faulty.
	ErrExecution = errors.New("execution failed")

	// ErrStore indicates the package store could not be read or written.
	ErrStore = errors.New("store error")
)
