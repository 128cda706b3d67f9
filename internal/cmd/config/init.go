package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/config"
	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/output"
)

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new patchctl configuration file",
		Long: `Create a new patchctl configuration file with default values.

The configuration file is created at ~/.patchctl/config.yaml by default.
Use --config flag to specify a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := configPath(gc)
			if err != nil {
				return err
			}

			exists, err := config.ConfigFileExists(path)
			if err != nil {
				return fmt.Errorf("checking config file: %w", err)
			}
			if exists && !force {
				return oerrors.NewExitError(
					fmt.Errorf("config file already exists at %s (use --force to overwrite)", path),
					oerrors.ExitGeneralError,
				)
			}

			if err := config.EnsureDir(filepath.Dir(path)); err != nil {
				return fmt.Errorf("creating config directory: %w", err)
			}

			data, err := config.Marshal(config.DefaultConfig())
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing config file: %w", err)
			}

			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file created: "+path))
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}
