package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/cmdutil"
	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/manifest"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

// NewApplyCmd creates the apply command.
func NewApplyCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		rf     cmdutil.ResolutionFlags
		dryRun bool
	)

	c := &cobra.Command{
		Use:   "apply <manifest>...",
		Short: "Run the relevant installers and patches",
		Long: `Run every installer and patch from the given manifests that applies to
the installed components, in dependency order.

Each attempt is recorded as a package in the store. A failing step marks its
package faulty; the run continues with the remaining components.

Exit codes:
  0  all executed packages are successful
  2  --strict and at least one patch was rejected
  3  the package store failed
  6  at least one package is faulty`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runApply(c.Context(), c.OutOrStdout(), c.ErrOrStderr(), gc, &rf, dryRun, args)
		},
	}

	rf.AddTo(c)
	c.Flags().BoolVar(&dryRun, "dry-run", false, "Show the plan without running anything")

	return c
}

func runApply(ctx context.Context, out, errOut io.Writer, gc *cmdtypes.GlobalConfig, rf *cmdutil.ResolutionFlags, dryRun bool, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var runner *manifest.Runner
	if !dryRun {
		runner = manifest.NewRunner(output.Logger())
	}
	patches, err := loadPatches(ctx, errOut, runner, paths)
	if err != nil {
		return err
	}

	if gc == nil {
		return errSettingsMissing
	}
	s, err := openSession(gc, rf.Mode(gc.Settings))
	if err != nil {
		return err
	}
	defer s.Close()

	installed, err := s.installed(ctx)
	if err != nil {
		return err
	}

	if dryRun {
		return writePlan(out, s.manager.Plan(patches, installed), false, rf)
	}

	ectx := patch.NewExecutionContext(ctx, func(r patch.LogRecord) {
		fmt.Fprintln(out, r.String())
		if r.Event != patch.ExecutionFinished {
			return
		}
		output.Debug(output.FormatPackageLine(r.ComponentID, r.Description, strings.ToLower(r.Result.String())))
		if r.Err != nil {
			output.ComponentLogger(r.ComponentID).Error("patch failed", "error", r.Err)
		}
	})
	output.Debug("starting run", "run", ectx.RunID, "patches", len(patches), "installed", len(installed))

	executed, err := s.manager.ExecuteRelevantPatches(patches, installed, ectx)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitStoreError)
	}

	rejected := cmdutil.PrintResolutionErrors(out, ectx.Errors)

	packages, err := s.store.LoadInstalledPackages(ctx)
	if err != nil {
		return oerrors.NewExitError(err, oerrors.ExitStoreError)
	}
	runPackages := filterPackages(packages, func(p patch.Package) bool { return p.RunID == ectx.RunID })

	faulty := 0
	for _, p := range runPackages {
		if p.ExecutionResult == patch.Faulty {
			faulty++
		}
	}

	if len(runPackages) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, packageTable(runPackages).String())
	}

	if faulty > 0 {
		fmt.Fprintln(out, output.StyleSummary.Render(
			fmt.Sprintf("%d applied, %d faulty", len(executed), faulty)))
		return oerrors.NewExitError(
			oerrors.NewExecutionError(
				fmt.Sprintf("%d package(s) faulty", faulty),
				map[string]string{"run": ectx.RunID},
				"Run 'patchctl history -o yaml' to see the recorded execution errors."),
			oerrors.ExitExecutionFaulted)
	}
	if err := rf.CheckStrict(rejected); err != nil {
		return err
	}

	fmt.Fprintln(out, output.FormatCheckmark(fmt.Sprintf("%d patch(es) applied", len(executed))))
	return nil
}
