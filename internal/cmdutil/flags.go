// Package cmdutil provides shared command utilities for patchctl subcommands.
// It centralizes flag group management and error printing helpers.
package cmdutil

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opmodel/patchctl/internal/config"
	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

// OutputFlags holds the output format flag of listing commands
// (history, components).
type OutputFlags struct {
	Output string
}

// AddTo registers the output flag on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Output, "output", "o", output.FormatTable.String(),
		"Output format: table, yaml, json")
}

// Format parses and validates the output flag.
func (f *OutputFlags) Format() (output.OutputFormat, error) {
	format := output.ParseOutputFormat(f.Output)
	if !format.Valid() {
		return "", oerrors.NewExitError(
			oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("invalid output format %q (valid: %v)", f.Output, output.ValidFormats())),
			oerrors.ExitValidationError)
	}
	return format, nil
}

// ResolutionFlags holds flags controlling how rejected patches are treated
// (apply, plan).
type ResolutionFlags struct {
	ReportUnsatisfied bool
	Strict            bool

	cmd *cobra.Command
}

// AddTo registers the resolution flags on the given cobra command.
func (f *ResolutionFlags) AddTo(cmd *cobra.Command) {
	f.cmd = cmd
	cmd.Flags().BoolVar(&f.ReportUnsatisfied, "report-unsatisfied", false,
		"Report patches whose dependencies are never met (env: "+config.EnvReportUnsatisfied+")")
	cmd.Flags().BoolVar(&f.Strict, "strict", false,
		"Fail when any patch is rejected")
}

// Mode returns the unsatisfied dependency mode. An explicit flag wins over
// the resolved settings.
func (f *ResolutionFlags) Mode(settings *config.Settings) patch.UnsatisfiedMode {
	report := f.ReportUnsatisfied
	if (f.cmd == nil || !f.cmd.Flags().Changed("report-unsatisfied")) && settings != nil {
		report = settings.ReportUnsatisfied
	}
	if report {
		return patch.ReportUnsatisfied
	}
	return patch.SkipUnsatisfied
}

// CheckStrict returns a validation ExitError when Strict is set and patches
// were rejected.
func (f *ResolutionFlags) CheckStrict(rejected int) error {
	if !f.Strict || rejected == 0 {
		return nil
	}
	return oerrors.NewExitError(
		oerrors.Wrap(oerrors.ErrValidation, fmt.Sprintf("%d patch(es) rejected", rejected)),
		oerrors.ExitValidationError)
}
