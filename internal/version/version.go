// Package version provides version information for patchctl.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version (set via ldflags).
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Modules whose versions are reported by Get.
const (
	cueModule    = "cuelang.org/go"
	nutsdbModule = "github.com/nutsdb/nutsdb"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version (set via ldflags).
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`

	// CUESDKVersion is the CUE SDK version compiled in, used for schema validation.
	CUESDKVersion string `json:"cueSDKVersion"`

	// NutsDBVersion is the nutsdb version compiled in, used by the package store.
	NutsDBVersion string `json:"nutsdbVersion"`
}

// Get returns the current version information.
func Get() Info {
	info := Info{
		Version:       Version,
		GitCommit:     GitCommit,
		BuildDate:     BuildDate,
		GoVersion:     runtime.Version(),
		CUESDKVersion: "unknown",
		NutsDBVersion: "unknown",
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		deps := dependencyVersions(bi)
		if v, ok := deps[cueModule]; ok {
			info.CUESDKVersion = v
		}
		if v, ok := deps[nutsdbModule]; ok {
			info.NutsDBVersion = v
		}
	}
	return info
}

func dependencyVersions(bi *debug.BuildInfo) map[string]string {
	versions := make(map[string]string, len(bi.Deps))
	for _, dep := range bi.Deps {
		if dep.Replace != nil {
			versions[dep.Path] = dep.Replace.Version
			continue
		}
		versions[dep.Path] = dep.Version
	}
	return versions
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("patchctl version %s\n  Commit:    %s\n  Built:     %s\n  Go:        %s\n  CUE SDK:   %s\n  NutsDB:    %s",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.CUESDKVersion, i.NutsDBVersion)
}
