// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and internal/cmd/config.
package cmdtypes

import (
	"github.com/opmodel/patchctl/internal/config"
	oerrors "github.com/opmodel/patchctl/internal/errors"
)

// AnnotationSkipSettings marks commands that must work without a valid config file.
const AnnotationSkipSettings = "patchctl/skip-settings"

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is created empty by the root command, filled in once at startup and
// passed explicitly into every sub-command constructor.
type GlobalConfig struct {
	// Settings is the resolved configuration. Nil until PersistentPreRunE ran.
	Settings *config.Settings

	// ConfigFlag is the raw --config flag value.
	ConfigFlag string

	// StoreFlag and StoreDirFlag are the raw --store and --store-dir values.
	StoreFlag    string
	StoreDirFlag string

	Verbose bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitStoreError       = oerrors.ExitStoreError
	ExitNotFound         = oerrors.ExitNotFound
	ExitExecutionFaulted = oerrors.ExitExecutionFaulted
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
