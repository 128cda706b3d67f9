package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

// NewBoundaryCmd creates the boundary command.
func NewBoundaryCmd(_ *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "boundary <expression> [version]...",
		Short: "Parse a version boundary",
		Long: `Parse a version boundary and print its canonical form. Every further
argument is parsed as a version and reported as inside or outside.

Examples:
  patchctl boundary "1.0<=v<2.0"
  patchctl boundary "v < 2.0" 1.5 2.0`,
		Args: cobra.MinimumNArgs(1),
		Annotations: map[string]string{
			cmdtypes.AnnotationSkipSettings: "true",
		},
		RunE: func(c *cobra.Command, args []string) error {
			b, err := patch.ParseBoundary(args[0])
			if err != nil {
				return oerrors.NewExitError(fmt.Errorf("%w: %w", oerrors.ErrValidation, err), oerrors.ExitValidationError)
			}

			out := c.OutOrStdout()
			fmt.Fprintln(out, output.StyleNoun.Render(b.String()))

			for _, arg := range args[1:] {
				v, err := patch.ParseVersion(arg)
				if err != nil {
					return oerrors.NewExitError(fmt.Errorf("%w: %w", oerrors.ErrValidation, err), oerrors.ExitValidationError)
				}
				status := "outside"
				if b.Contains(v) {
					status = "inside"
				}
				fmt.Fprintf(out, "%s: %s\n", v, status)
			}
			return nil
		},
	}
}
