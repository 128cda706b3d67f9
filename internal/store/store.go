// Package store persists patch packages.
package store

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/opmodel/patchctl/internal/patch"
)

// Backend names a package store implementation.
type Backend string

const (
	// BackendNuts stores packages in a nutsdb directory.
	BackendNuts Backend = "nuts"

	// BackendMemory keeps packages in memory for the lifetime of the process.
	BackendMemory Backend = "memory"
)

// Store is a PackageStore that owns resources.
type Store interface {
	patch.PackageStore
	Close() error
}

// Options selects and configures a backend.
type Options struct {
	Backend Backend
	Dir     string
	Logger  *log.Logger
}

// Open returns the store selected by opts.Backend.
func Open(opts Options) (Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	switch opts.Backend {
	case BackendNuts, "":
		if opts.Dir == "" {
			return nil, fmt.Errorf("store directory is required for the %q backend", BackendNuts)
		}
		return OpenNuts(opts.Dir, logger)
	case BackendMemory:
		logger.Debug("using in-memory package store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (valid: %s, %s)", opts.Backend, BackendNuts, BackendMemory)
	}
}
