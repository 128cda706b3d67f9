// Package testutil provides test helpers for patchctl tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteManifest writes a patch manifest into a fresh temp directory and returns its path.
func WriteManifest(t *testing.T, content string) string {
	t.Helper()
	return WriteFile(t, t.TempDir(), "patches.yaml", content)
}

// IsolateHome points HOME at a temp directory and clears every PATCHCTL_*
// variable for the duration of the test. It returns the new home.
func IsolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, name := range []string{
		"PATCHCTL_CONFIG",
		"PATCHCTL_STORE",
		"PATCHCTL_STORE_DIR",
		"PATCHCTL_LOG_TIMESTAMPS",
		"PATCHCTL_REPORT_UNSATISFIED",
	} {
		t.Setenv(name, "")
	}
	return home
}
