package store

import (
	"context"
	"fmt"
	"sync"

	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/patch"
)

// MemoryStore is a PackageStore kept in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	packages []patch.Package
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadInstalledPackages returns every package ordered by ID.
func (s *MemoryStore) LoadInstalledPackages(ctx context.Context) ([]patch.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]patch.Package, len(s.packages))
	copy(out, s.packages)
	return out, nil
}

// SavePackage inserts pkg when its ID is 0 and updates it otherwise.
func (s *MemoryStore) SavePackage(ctx context.Context, pkg *patch.Package) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if pkg.ID == 0 {
		pkg.ID = int64(len(s.packages) + 1)
		s.packages = append(s.packages, *pkg)
		return nil
	}
	if pkg.ID < 0 || pkg.ID > int64(len(s.packages)) {
		return fmt.Errorf("package %d: %w", pkg.ID, oerrors.ErrNotFound)
	}
	s.packages[pkg.ID-1] = *pkg
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
