package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show patchctl version information.

Displays:
  - patchctl version, commit, and build date
  - CUE SDK and NutsDB versions compiled in`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			cmdtypes.AnnotationSkipSettings: "true",
		},
		RunE: func(c *cobra.Command, _ []string) error {
			fmt.Fprintln(c.OutOrStdout(), version.Get().String())
			return nil
		},
	}
}
