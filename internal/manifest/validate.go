package manifest

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	oerrors "github.com/opmodel/patchctl/internal/errors"
)

//go:embed schema.cue
var schemaCUE []byte

// Validate checks m against the embedded manifest schema.
func Validate(m *Manifest) error {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if schema.Err() != nil {
		return fmt.Errorf("compiling manifest schema: %w", schema.Err())
	}

	value := ctx.Encode(m)
	if value.Err() != nil {
		return fmt.Errorf("encoding manifest: %w", value.Err())
	}

	unified := schema.LookupPath(cue.ParsePath("#Manifest")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &oerrors.DetailError{
			Type:     "validation failed",
			Message:  formatCUEErrors(err),
			Location: m.Path,
			Hint:     "Versions are dotted numbers such as \"1.0\"; every step needs a run command.",
			Cause:    oerrors.ErrValidation,
		}
	}
	return nil
}

// formatCUEErrors renders one "path: message" line per CUE error.
func formatCUEErrors(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}

	seen := make(map[string]bool, len(errs))
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		line := cueErrorMessage(e)
		if path := strings.Join(e.Path(), "."); path != "" {
			line = path + ": " + line
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n  ")
}

func cueErrorMessage(e cueerrors.Error) string {
	var parts []string
	var current error = e

	for current != nil {
		cueErr, ok := current.(cueerrors.Error) //nolint:errorlint // walks the CUE chain one level at a time
		if !ok {
			parts = append(parts, current.Error())
			break
		}

		format, args := cueErr.Msg()
		if format != "" {
			parts = append(parts, fmt.Sprintf(format, args...))
		}

		current = cueerrors.Unwrap(current)
	}

	return strings.Join(parts, ": ")
}
