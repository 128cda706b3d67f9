package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	require.NotEmpty(t, info.CUESDKVersion, "CUESDKVersion should be populated")
	require.NotEmpty(t, info.NutsDBVersion, "NutsDBVersion should be populated")
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:       "v1.0.0",
		GitCommit:     "abc123",
		BuildDate:     "2026-01-29",
		GoVersion:     "go1.25",
		CUESDKVersion: "v0.15.4",
		NutsDBVersion: "v1.1.0",
	}

	str := info.String()

	assert.Contains(t, str, "patchctl version v1.0.0")
	assert.Contains(t, str, "abc123")
	assert.Contains(t, str, "2026-01-29")
	assert.Contains(t, str, "go1.25")
	assert.Contains(t, str, "v0.15.4")
	assert.Contains(t, str, "v1.1.0")
}

func TestDependencyVersions(t *testing.T) {
	bi := &debug.BuildInfo{
		Deps: []*debug.Module{
			{Path: cueModule, Version: "v0.15.4"},
			{Path: nutsdbModule, Version: "v1.0.0", Replace: &debug.Module{Path: "example.com/nutsdb", Version: "v1.1.0"}},
		},
	}

	got := dependencyVersions(bi)
	assert.Equal(t, "v0.15.4", got[cueModule])
	assert.Equal(t, "v1.1.0", got[nutsdbModule])
}
