//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	assert.NotEqual(t, ErrValidation, ErrNotFound)
	assert.NotEqual(t, ErrValidation, ErrExecution)
	assert.NotEqual(t, ErrNotFound, ErrStore)
}

func TestDetailErrorError(t *testing.T) {
	detail := &DetailError{
		Type:     "validation failed",
		Message:  "boundary has no upper limit",
		Location: "patches.yaml:12",
		Field:    "components[0].patches[1].boundary",
		Context:  map[string]string{"Component": "C1", "Boundary": "1.0 <= v"},
		Hint:     "Add an upper limit such as \"< 2.0\"",
	}

	output := detail.Error()

	assert.Contains(t, output, "Error: validation failed")
	assert.Contains(t, output, "Location: patches.yaml:12")
	assert.Contains(t, output, "Field: components[0].patches[1].boundary")
	assert.Contains(t, output, "Component: C1")
	assert.Contains(t, output, "boundary has no upper limit")
	assert.Contains(t, output, "Hint: Add an upper limit")
	assert.Less(t, strings.Index(output, "Boundary:"), strings.Index(output, "Component:"))
}

func TestDetailErrorUnwrap(t *testing.T) {
	detail := &DetailError{
		Type:    "test",
		Message: "test message",
		Cause:   ErrValidation,
	}

	assert.True(t, errors.Is(detail, ErrValidation))
	assert.Equal(t, ErrValidation, detail.Unwrap())
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError(
		"field not allowed",
		"patches.yaml",
		"components[0].instal",
		"Check the manifest keys",
	)

	require.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var detail *DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "validation failed", detail.Type)
	assert.Equal(t, "field not allowed", detail.Message)
	assert.Equal(t, "patches.yaml", detail.Location)
	assert.Equal(t, "components[0].instal", detail.Field)
	assert.Equal(t, "Check the manifest keys", detail.Hint)
}

func TestNewExecutionError(t *testing.T) {
	err := NewExecutionError("2 packages faulted", map[string]string{"Run": "abc"}, "")

	assert.True(t, errors.Is(err, ErrExecution))
	assert.Equal(t, ExitExecutionFaulted, ExitCodeFromError(err))
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrValidation, "schema check failed")

	assert.True(t, errors.Is(wrapped, ErrValidation))
	assert.Contains(t, wrapped.Error(), "schema check failed")
}

func TestWrapStore(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := WrapStore(cause, "saving package 3")

	assert.ErrorIs(t, wrapped, ErrStore)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "saving package 3: store error: disk full", wrapped.Error())
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "validation error", err: ErrValidation, wantCode: ExitValidationError},
		{name: "wrapped validation error", err: Wrap(ErrValidation, "bad manifest"), wantCode: ExitValidationError},
		{name: "store error", err: WrapStore(errors.New("io"), "load"), wantCode: ExitStoreError},
		{name: "not found error", err: fmt.Errorf("open: %w", ErrNotFound), wantCode: ExitNotFound},
		{name: "execution error", err: ErrExecution, wantCode: ExitExecutionFaulted},
		{name: "explicit exit error", err: NewExitError(errors.New("x"), 42), wantCode: 42},
		{name: "wrapped exit error", err: fmt.Errorf("run: %w", &ExitError{Code: ExitNotFound}), wantCode: ExitNotFound},
		{name: "unknown error returns general error", err: errors.New("unknown error"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("boom")
	e := NewExitError(inner, ExitGeneralError)

	assert.Equal(t, "boom", e.Error())
	assert.ErrorIs(t, e, inner)
	assert.False(t, e.Printed)

	bare := &ExitError{Code: ExitExecutionFaulted}
	assert.Equal(t, "Execution Faulted", bare.Error())
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Validation Error", ExitCodeName(ExitValidationError))
	assert.Equal(t, "Store Error", ExitCodeName(ExitStoreError))
	assert.Equal(t, "Unknown", ExitCodeName(99))
}
