package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/config"
	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the patchctl configuration file",
		Long: `Validate the patchctl configuration file against the internal schema.

The command validates the configuration file at ~/.patchctl/config.yaml by default.
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
			if !exists {
				return oerrors.NewExitError(
					fmt.Errorf("config file not found: %s: %w", path, oerrors.ErrNotFound),
					oerrors.ExitNotFound,
				)
			}

			validator, err := config.NewValidator()
			if err != nil {
				return fmt.Errorf("creating validator: %w", err)
			}

			if err := validator.ValidateFile(path); err != nil {
				var validationErrs config.ValidationErrors
				if errors.As(err, &validationErrs) {
					stderr := c.ErrOrStderr()
					fmt.Fprintln(stderr, "Error: config validation failed")
					fmt.Fprintf(stderr, "  File: %s\n\n", path)
					for _, e := range validationErrs {
						fmt.Fprintf(stderr, "  %s: %s\n", e.Field, e.Message)
					}
					return &oerrors.ExitError{Err: err, Code: oerrors.ExitValidationError, Printed: true}
				}
				return fmt.Errorf("validating config: %w", err)
			}

			fmt.Fprintln(c.OutOrStdout(), output.FormatCheckmark("Config file is valid: "+path))
			return nil
		},
	}
}
