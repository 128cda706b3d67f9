package cmdutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/patch"
)

func TestPrintDetailError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		var buf bytes.Buffer
		assert.NoError(t, PrintDetailError(&buf, nil))
		assert.Empty(t, buf.String())
	})

	t.Run("detail error is printed", func(t *testing.T) {
		var buf bytes.Buffer
		err := PrintDetailError(&buf, oerrors.NewNotFoundError("manifest file does not exist", "a.yaml", ""))

		var exitErr *oerrors.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.True(t, exitErr.Printed)
		assert.Equal(t, oerrors.ExitNotFound, exitErr.Code)
		assert.Contains(t, buf.String(), "a.yaml")
	})

	t.Run("plain error is wrapped", func(t *testing.T) {
		var buf bytes.Buffer
		err := PrintDetailError(&buf, errors.New("boom"))

		var exitErr *oerrors.ExitError
		require.True(t, errors.As(err, &exitErr))
		assert.False(t, exitErr.Printed)
		assert.Equal(t, oerrors.ExitGeneralError, exitErr.Code)
		assert.Empty(t, buf.String())
	})

	t.Run("exit error passes through", func(t *testing.T) {
		var buf bytes.Buffer
		in := oerrors.NewExitError(errors.New("store"), oerrors.ExitStoreError)
		assert.Same(t, in, PrintDetailError(&buf, in))
	})
}

func TestPrintResolutionErrors(t *testing.T) {
	var buf bytes.Buffer
	n := PrintResolutionErrors(&buf, []*patch.ResolutionError{
		{Kind: patch.DuplicatedInstaller, ComponentID: "C1", Patch: "C1: 1.0", Message: "component has more than one installer"},
		{Kind: patch.UnsatisfiedDependency, ComponentID: "C2", Patch: "C2: 1.0", Message: "unsatisfied dependencies: C9: v"},
	})

	assert.Equal(t, 2, n)
	out := buf.String()
	assert.Contains(t, out, "C1: 1.0: component has more than one installer (DuplicatedInstaller)")
	assert.Contains(t, out, "C2: 1.0: unsatisfied dependencies: C9: v (UnsatisfiedDependency)")
}
