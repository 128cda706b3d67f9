package cmdutil

import (
	"errors"
	"fmt"
	"io"

	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
)

// PrintDetailError prints err to w. A DetailError is printed in its
// multi-line form and the returned ExitError is marked as printed; other
// errors are returned wrapped but unprinted.
func PrintDetailError(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	code := oerrors.ExitCodeFromError(err)
	var detail *oerrors.DetailError
	if errors.As(err, &detail) {
		fmt.Fprint(w, detail.Error())
		return &oerrors.ExitError{Err: err, Code: code, Printed: true}
	}
	return oerrors.NewExitError(err, code)
}

// PrintResolutionErrors writes one line per rejected patch and returns how
// many were written.
func PrintResolutionErrors(w io.Writer, errs []*patch.ResolutionError) int {
	for _, e := range errs {
		fmt.Fprintf(w, "%s %s (%s)\n", output.RenderStatus(output.StatusSkipped), e.Error(), e.Kind)
	}
	return len(errs)
}
