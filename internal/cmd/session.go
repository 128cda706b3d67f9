package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/opmodel/patchctl/internal/cmdtypes"
	"github.com/opmodel/patchctl/internal/cmdutil"
	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/manifest"
	"github.com/opmodel/patchctl/internal/output"
	"github.com/opmodel/patchctl/internal/patch"
	"github.com/opmodel/patchctl/internal/store"
)

// session bundles what a command needs to talk to the engine.
type session struct {
	store   store.Store
	manager *patch.Manager
}

// openSession opens the configured package store and builds a Manager on it.
func openSession(gc *cmdtypes.GlobalConfig, mode patch.UnsatisfiedMode) (*session, error) {
	if gc == nil || gc.Settings == nil {
		return nil, errSettingsMissing
	}

	st, err := store.Open(store.Options{
		Backend: store.Backend(gc.Settings.StoreBackend),
		Dir:     gc.Settings.StoreDir,
		Logger:  output.Logger(),
	})
	if err != nil {
		return nil, oerrors.NewExitError(err, oerrors.ExitStoreError)
	}

	return &session{
		store: st,
		manager: patch.NewManager(st,
			patch.WithLogger(output.Logger()),
			patch.WithUnsatisfiedMode(mode),
		),
	}, nil
}

// Close releases the store.
func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		output.Warn("closing package store", "error", err)
	}
}

// installed loads the installed component state.
func (s *session) installed(ctx context.Context) ([]patch.ComponentDescriptor, error) {
	components, err := s.manager.LoadInstalledComponents(ctx)
	if err != nil {
		return nil, oerrors.NewExitError(err, oerrors.ExitStoreError)
	}
	return components, nil
}

// loadPatches reads manifests and converts them into patches run by runner.
// A nil runner produces patches without actions. Manifest errors are printed to errOut.
func loadPatches(ctx context.Context, errOut io.Writer, runner *manifest.Runner, paths []string) ([]patch.Patch, error) {
	var manifests []*manifest.Manifest
	err := output.RunWithSpinner(ctx, func(ctx context.Context) error {
		var err error
		manifests, err = manifest.LoadFiles(ctx, paths...)
		return err
	}, output.WithTitle(fmt.Sprintf("Loading %d manifest(s)...", len(paths))))
	if err != nil {
		return nil, cmdutil.PrintDetailError(errOut, err)
	}

	patches, err := manifest.Patches(manifests, runner)
	if err != nil {
		return nil, cmdutil.PrintDetailError(errOut, err)
	}
	output.Debug("manifests loaded", "manifests", len(manifests), "patches", len(patches))
	return patches, nil
}
