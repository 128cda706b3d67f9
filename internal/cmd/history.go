package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/cmdutil"
	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		of            cmdutil.OutputFlags
		componentFlag string
	)

	c := &cobra.Command{
		Use:   "history",
		Short: "List recorded packages",
		Long: `List every package recorded in the store, oldest first.

Each package is one installer or patch execution attempt together with its
result.`,
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

			packages, err := s.store.LoadInstalledPackages(c.Context())
			if err != nil {
				return oerrors.NewExitError(err, oerrors.ExitStoreError)
			}
			if componentFlag != "" {
				packages = filterPackages(packages, func(p patch.Package) bool { return p.ComponentID == componentFlag })
			}

			out := c.OutOrStdout()
			if format != output.FormatTable {
				if packages == nil {
					packages = []patch.Package{}
				}
				return output.WriteStructured(out, packages, format)
			}
			if len(packages) == 0 {
				fmt.Fprintln(out, "No packages recorded.")
				return nil
			}
			fmt.Fprintln(out, packageTable(packages).String())
			return nil
		},
	}

	of.AddTo(c)
	c.Flags().StringVar(&componentFlag, "component", "", "Only show packages of this component")

	return c
}
