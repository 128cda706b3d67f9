package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/cmdutil"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

// NewPlanCmd creates the plan command.
func NewPlanCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var (
		rf   cmdutil.ResolutionFlags
		diff bool
	)

	c := &cobra.Command{
		Use:   "plan <manifest>...",
		Short: "Show the order patches would run in",
		Long: `Resolve the given manifests against the installed components and show
the ordered steps and the projected component versions, assuming every step
succeeds. Nothing is executed and the store is not written.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runPlan(c.Context(), c.OutOrStdout(), c.ErrOrStderr(), gc, &rf, diff, args)
		},
	}

	rf.AddTo(c)
	c.Flags().BoolVar(&diff, "diff", false, "Show the component state change as a YAML diff")

	return c
}

func runPlan(ctx context.Context, out, errOut io.Writer, gc *cmdtypes.GlobalConfig, rf *cmdutil.ResolutionFlags, diff bool, paths []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	patches, err := loadPatches(ctx, errOut, nil, paths)
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

	return writePlan(out, s.manager.Plan(patches, installed), diff, rf)
}

// writePlan prints the steps, rejected patches and optionally the state diff.
func writePlan(out io.Writer, plan *patch.Plan, diff bool, rf *cmdutil.ResolutionFlags) error {
	if len(plan.Steps) == 0 {
		fmt.Fprintln(out, "No patches to run.")
	} else {
		tbl := output.NewTable("STEP", "COMPONENT", "TYPE", "FROM", "TO")
		for i, step := range plan.Steps {
			from := step.From.String()
			if from == "" {
				from = "-"
			}
			tbl.Row(strconv.Itoa(i+1), step.Patch.ComponentID(), step.Patch.Type().String(), from, step.Patch.Version().String())
		}
		fmt.Fprintln(out, tbl.String())
	}

	rejected := cmdutil.PrintResolutionErrors(out, plan.Errors)

	if diff {
		report, err := componentDiff(plan.Before, plan.After)
		if err != nil {
			return err
		}
		if report == "" {
			fmt.Fprintln(out, "No component changes.")
		} else {
			fmt.Fprintln(out)
			fmt.Fprintln(out, report)
		}
	}

	return rf.CheckStrict(rejected)
}

// componentDiff renders the change between two component states with dyff.
func componentDiff(before, after []patch.ComponentDescriptor) (string, error) {
	from, err := yaml.Marshal(before)
	if err != nil {
		return "", fmt.Errorf("encoding installed components: %w", err)
	}
	to, err := yaml.Marshal(after)
	if err != nil {
		return "", fmt.Errorf("encoding projected components: %w", err)
	}
	return output.DiffYAML(from, to, output.IsTTY())
}
