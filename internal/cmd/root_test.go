package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opmodel/patchctl/internal/testutil"
)

// execute runs the root command with args against an isolated home and
// returns what it printed to stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// storeArgs returns the global flags selecting a fresh nuts store.
func storeArgs(t *testing.T) []string {
	t.Helper()
	return []string{"--store", "nuts", "--store-dir", filepath.Join(t.TempDir(), "store")}
}

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"apply", "plan", "history", "components", "boundary", "config", "version"} {
		assert.Contains(t, names, want)
	}
}

func TestNewRootCmd_GlobalFlags(t *testing.T) {
	f := NewRootCmd().PersistentFlags()
	for _, name := range []string{"config", "store", "store-dir", "verbose", "timestamps"} {
		assert.NotNil(t, f.Lookup(name), "missing flag %s", name)
	}
	assert.Equal(t, "v", f.Lookup("verbose").Shorthand)
}

func TestRoot_InvalidConfigFailsCommands(t *testing.T) {
	home := testutil.IsolateHome(t)
	cfg := testutil.WriteFile(t, home, "bad.yaml", "store:\n  backend: s3\n")

	_, err := execute(t, "--config", cfg, "components")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store")
}

func TestRoot_InvalidConfigAllowedForVersion(t *testing.T) {
	home := testutil.IsolateHome(t)
	cfg := testutil.WriteFile(t, home, "bad.yaml", "store:\n  backend: s3\n")

	out, err := execute(t, "--config", cfg, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "patchctl version")
}

func TestRoot_UnknownBackendFlag(t *testing.T) {
	testutil.IsolateHome(t)

	_, err := execute(t, "--store", "s3", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store backend")
}
