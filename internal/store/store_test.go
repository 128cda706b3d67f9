package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/patch"
)

func newPackage(component, version string, typ patch.PackageType) *patch.Package {
	return &patch.Package{
		ComponentID:      component,
		PackageType:      typ,
		ExecutionResult:  patch.Unfinished,
		ComponentVersion: patch.MustParseVersion(version),
		ExecutionDate:    time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		RunID:            "run-1",
	}
}

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	nuts, err := OpenNuts(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { nuts.Close() })

	return map[string]Store{
		"nuts":   nuts,
		"memory": NewMemoryStore(),
	}
}

func TestStore_InsertAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			a := newPackage("C1", "1.0", patch.Install)
			b := newPackage("C2", "1.0", patch.Install)
			c := newPackage("C1", "2.0", patch.PatchType)

			require.NoError(t, s.SavePackage(ctx, a))
			require.NoError(t, s.SavePackage(ctx, b))
			require.NoError(t, s.SavePackage(ctx, c))

			assert.Equal(t, int64(1), a.ID)
			assert.Equal(t, int64(2), b.ID)
			assert.Equal(t, int64(3), c.ID)
		})
	}
}

func TestStore_UpdateAndLoad(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			install := newPackage("C1", "1.0", patch.Install)
			install.Dependencies = []patch.Dependency{patch.NewDependency("C0", patch.MustParseBoundary("1.0 <= v"))}
			require.NoError(t, s.SavePackage(ctx, install))
			install.ExecutionResult = patch.Successful
			require.NoError(t, s.SavePackage(ctx, install))

			up := newPackage("C1", "2.0", patch.PatchType)
			require.NoError(t, s.SavePackage(ctx, up))
			up.ExecutionResult = patch.Faulty
			up.ExecutionError = "exit status 1"
			require.NoError(t, s.SavePackage(ctx, up))

			got, err := s.LoadInstalledPackages(ctx)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, "1, C1: Install Successful, 1.0", got[0].String())
			assert.Equal(t, "2, C1: Patch Faulty, 2.0", got[1].String())
			assert.Equal(t, "exit status 1", got[1].ExecutionError)
			assert.Equal(t, "run-1", got[0].RunID)
			require.Len(t, got[0].Dependencies, 1)
			assert.Equal(t, "C0: 1.0 <= v", got[0].Dependencies[0].String())
			assert.True(t, got[0].ExecutionDate.Equal(install.ExecutionDate))
		})
	}
}

func TestStore_UpdateUnknownPackage(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			pkg := newPackage("C1", "1.0", patch.Install)
			pkg.ID = 7

			err := s.SavePackage(ctx, pkg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oerrors.ErrNotFound))
		})
	}
}

func TestStore_EmptyLoad(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.LoadInstalledPackages(context.Background())
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, s.SavePackage(ctx, newPackage("C1", "1.0", patch.Install)), context.Canceled)
			_, err := s.LoadInstalledPackages(ctx)
			assert.ErrorIs(t, err, context.Canceled)
		})
	}
}

func TestNutsStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "db")

	s, err := OpenNuts(dir, nil)
	require.NoError(t, err)
	first := newPackage("C1", "1.0", patch.Install)
	first.ExecutionResult = patch.Successful
	require.NoError(t, s.SavePackage(ctx, first))
	require.NoError(t, s.Close())

	s, err = OpenNuts(dir, nil)
	require.NoError(t, err)
	defer s.Close()

	second := newPackage("C1", "2.0", patch.PatchType)
	require.NoError(t, s.SavePackage(ctx, second))
	assert.Equal(t, int64(2), second.ID)

	got, err := s.LoadInstalledPackages(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "C1", got[0].ComponentID)
	assert.Equal(t, patch.Successful, got[0].ExecutionResult)
	assert.Equal(t, dir, s.Dir())
}

func TestOpen(t *testing.T) {
	mem, err := Open(Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, mem)

	nuts, err := Open(Options{Backend: BackendNuts, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &NutsStore{}, nuts)
	require.NoError(t, nuts.Close())

	_, err = Open(Options{Backend: BackendNuts})
	assert.ErrorContains(t, err, "directory is required")

	_, err = Open(Options{Backend: "sqlite", Dir: t.TempDir()})
	assert.ErrorContains(t, err, "unknown store backend")
}

func TestStore_DrivesManager(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			mgr := patch.NewManager(s)
			ectx := patch.NewExecutionContext(ctx, nil)

			_, err := mgr.ExecuteRelevantPatches([]patch.Patch{
				patch.NewInstaller("C1", patch.MustParseVersion("1.0"), nil),
				patch.NewUpgrade("C1", patch.MustParseBoundary("1.0 <= v < 2.0"), patch.MustParseVersion("2.0"), nil),
			}, nil, ectx)
			require.NoError(t, err)

			installed, err := mgr.LoadInstalledComponents(ctx)
			require.NoError(t, err)
			require.Len(t, installed, 1)
			assert.Equal(t, "C1: 2.0", installed[0].String())
		})
	}
}
