package cmd

import (
	"strconv"
	"strings"
	"time"

	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

func filterPackages(packages []patch.Package, keep func(patch.Package) bool) []patch.Package {
	var out []patch.Package
	for _, p := range packages {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// packageTable renders package history, one row per package.
func packageTable(packages []patch.Package) *output.Table {
	tbl := output.NewTable("ID", "COMPONENT", "TYPE", "VERSION", "RESULT", "DATE").StatusColumn(4)
	for _, p := range packages {
		tbl.Row(
			strconv.FormatInt(p.ID, 10),
			p.ComponentID,
			p.PackageType.String(),
			p.ComponentVersion.String(),
			strings.ToLower(p.ExecutionResult.String()),
			p.ExecutionDate.Local().Format(time.DateTime),
		)
	}
	return tbl
}

// componentTable renders installed components.
func componentTable(components []patch.ComponentDescriptor) *output.Table {
	tbl := output.NewTable("COMPONENT", "VERSION", "DESCRIPTION", "DEPENDENCIES")
	for _, c := range components {
		deps := make([]string, len(c.Dependencies))
		for i, d := range c.Dependencies {
			deps[i] = d.String()
		}
		tbl.Row(c.ComponentID, c.Version.String(), c.Description, strings.Join(deps, ", "))
	}
	return tbl
}
