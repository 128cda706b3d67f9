package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/cmdutil"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

// NewComponentsCmd creates the components command.
func NewComponentsCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var of cmdutil.OutputFlags

	c := &cobra.Command{
		Use:   "components",
		Short: "List installed components",
		Long: `List the installed components as rebuilt from the package history: the
last successful package of each component decides its version.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			format, err := of.Format()
			if err != nil {
				return err
			}

			s, err := openSession(gc, patch.SkipUnsatisfied)
			if err != nil {
				return err
			}
			defer s.Close()

			components, err := s.installed(c.Context())
			if err != nil {
				return err
			}

			out := c.OutOrStdout()
			if format != output.FormatTable {
				if components == nil {
					components = []patch.ComponentDescriptor{}
				}
				return output.WriteStructured(out, components, format)
			}
			if len(components) == 0 {
				fmt.Fprintln(out, "No components installed.")
				return nil
			}
			fmt.Fprintln(out, componentTable(components).String())
			return nil
		},
	}

	of.AddTo(c)

	return c
}
