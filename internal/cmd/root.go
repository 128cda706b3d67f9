// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	configcmd "github.com/opmodel/patchctl/internal/cmd/config"
	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/config"
	"github.com/opmodel/patchctl/internal/output"
)

// NewRootCmd creates the root command for patchctl.
func NewRootCmd() *cobra.Command {
	gc := &cmdtypes.GlobalConfig{}

	var timestampsFlag bool

	rootCmd := &cobra.Command{
		Use:   "patchctl",
		Short: "Component patch engine",
		Long: `patchctl installs and upgrades versioned components.

Installers and patches are declared in YAML manifests. patchctl selects the
ones relevant to the installed state, orders them by their dependencies and
runs them one after another, recording a package for every attempt.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			var timestamps *bool
			if c.Flags().Changed("timestamps") {
				timestamps = output.BoolPtr(timestampsFlag)
			}
			return initializeGlobals(c, gc, timestamps)
		},
	}

	rootCmd.PersistentFlags().StringVar(&gc.ConfigFlag, "config", "", "Path to config file (env: PATCHCTL_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&gc.StoreFlag, "store", "", "Package store backend: nuts, memory (env: PATCHCTL_STORE)")
	rootCmd.PersistentFlags().StringVar(&gc.StoreDirFlag, "store-dir", "", "Package store directory (env: PATCHCTL_STORE_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&gc.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output (env: PATCHCTL_LOG_TIMESTAMPS)")

	rootCmd.AddCommand(
		NewApplyCmd(gc),
		NewPlanCmd(gc),
		NewHistoryCmd(gc),
		NewComponentsCmd(gc),
		NewBoundaryCmd(gc),
		configcmd.NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals resolves configuration into gc and sets up logging.
func initializeGlobals(c *cobra.Command, gc *cmdtypes.GlobalConfig, timestamps *bool) error {
	settings, err := config.Resolve(config.ResolveOptions{
		ConfigFlag:     gc.ConfigFlag,
		StoreFlag:      gc.StoreFlag,
		StoreDirFlag:   gc.StoreDirFlag,
		TimestampsFlag: timestamps,
	})
	if err != nil {
		output.SetupLogging(output.LogConfig{Verbose: gc.Verbose, Timestamps: timestamps})
		if skipsSettings(c) {
			output.Debug("config resolution failed", "error", err)
			return nil
		}
		return err
	}

	gc.Settings = settings
	output.SetupLogging(output.LogConfig{
		Verbose:    gc.Verbose,
		Timestamps: output.BoolPtr(settings.Timestamps),
	})

	if gc.Verbose {
		config.LogResolvedValues(output.Logger(), settings.Values)
	}
	return nil
}

// skipsSettings reports whether c or one of its parents tolerates a broken configuration.
func skipsSettings(c *cobra.Command) bool {
	for ; c != nil; c = c.Parent() {
		if c.Annotations[cmdtypes.AnnotationSkipSettings] == "true" {
			return true
		}
	}
	return false
}
