package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pkgOf(id int64, component string, typ PackageType, result ExecutionResult, version string) Package {
	return Package{
		ID:               id,
		ComponentID:      component,
		PackageType:      typ,
		ExecutionResult:  result,
		ComponentVersion: MustParseVersion(version),
	}
}

func TestComponentsFromPackages(t *testing.T) {
	packages := []Package{
		pkgOf(4, "C2", Install, Successful, "1.0"),
		pkgOf(1, "C1", Install, Successful, "1.0"),
		pkgOf(3, "C1", PatchType, Faulty, "3.0"),
		pkgOf(2, "C1", PatchType, Successful, "2.0"),
		pkgOf(5, "C3", Install, Unfinished, "1.0"),
		pkgOf(6, "C4", Install, Faulty, "1.0"),
	}
	packages[1].Description = "core"

	got := ComponentsFromPackages(packages)

	require.Len(t, got, 2)
	assert.Equal(t, "C1: 2.0", got[0].String())
	assert.Equal(t, "core", got[0].Description)
	assert.Equal(t, "C2: 1.0", got[1].String())
}

func TestComponentsFromPackages_Empty(t *testing.T) {
	assert.Empty(t, ComponentsFromPackages(nil))
}

func TestComponentsFromPackages_DoesNotReorderInput(t *testing.T) {
	packages := []Package{
		pkgOf(2, "C1", PatchType, Successful, "2.0"),
		pkgOf(1, "C1", Install, Successful, "1.0"),
	}

	got := ComponentsFromPackages(packages)

	require.Len(t, got, 1)
	assert.Equal(t, "2.0", got[0].Version.String())
	assert.Equal(t, int64(2), packages[0].ID)
}
