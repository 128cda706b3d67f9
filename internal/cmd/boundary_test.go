package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/testutil"
)

func TestBoundary(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "canonical form",
			args: []string{"1.0<=v<2.0"},
			want: []string{"1.0 <= v < 2.0"},
		},
		{
			name: "containment",
			args: []string{"v < 2.0", "1.5", "2.0"},
			want: []string{"v < 2.0", "1.5: inside", "2.0: outside"},
		},
		{
			name: "unbounded",
			args: []string{"v", "2147483647.2147483647"},
			want: []string{"v\n", "2147483647.2147483647: inside"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.IsolateHome(t)
			out, err := execute(t, append([]string{"boundary"}, tt.args...)...)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestBoundary_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad operator", []string{"1.0 => v"}},
		{"min above max", []string{"2.0 <= v < 1.0"}},
		{"bad version", []string{"v < 2.0", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.IsolateHome(t)
			_, err := execute(t, append([]string{"boundary"}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, oerrors.ExitValidationError, oerrors.ExitCodeFromError(err))
		})
	}
}
