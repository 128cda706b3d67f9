package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nutsdb/nutsdb"

	oerrors "github.com/opmodel/patchctl/internal/errors"
	"github.com/opmodel/patchctl/internal/patch"
)

const (
	bucketPackages = "packages" // package records (key: zero-padded ID, value: JSON)
	bucketMeta     = "meta"     // store bookkeeping (key: name)

	keySequence = "seq" // highest allocated package ID
)

// NutsStore keeps packages in a nutsdb database directory.
type NutsStore struct {
	db     *nutsdb.DB
	dir    string
	logger *log.Logger

	// mu serializes read-modify-write of the sequence.
	mu sync.Mutex
}

// OpenNuts opens or creates the package database in dir.
func OpenNuts(dir string, logger *log.Logger) (*NutsStore, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}

	opt := nutsdb.DefaultOptions
	opt.Dir = dir
	opt.SegmentSize = 8 * 1024 * 1024
	db, err := nutsdb.Open(opt)
	if err != nil {
		return nil, fmt.Errorf("failed to open nutsdb: %w", err)
	}

	for _, bucket := range []string{bucketPackages, bucketMeta} {
		if err := db.Update(func(tx *nutsdb.Tx) error {
			return tx.NewBucket(nutsdb.DataStructureBTree, bucket)
		}); err != nil && !errors.Is(err, nutsdb.ErrBucketAlreadyExist) {
			db.Close()
			return nil, fmt.Errorf("failed to create %s bucket: %w", bucket, err)
		}
	}

	logger.Debug("opened package store", "dir", dir)
	return &NutsStore{db: db, dir: dir, logger: logger}, nil
}

// Dir returns the database directory.
func (s *NutsStore) Dir() string {
	return s.dir
}

// LoadInstalledPackages returns every package ordered by ID.
func (s *NutsStore) LoadInstalledPackages(ctx context.Context) ([]patch.Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var packages []patch.Package
	err := s.db.View(func(tx *nutsdb.Tx) error {
		seq, err := readSequence(tx)
		if err != nil {
			return err
		}
		packages = make([]patch.Package, 0, seq)
		for id := int64(1); id <= seq; id++ {
			value, err := tx.Get(bucketPackages, packageKey(id))
			if isMissing(err) {
				s.logger.Warn("package missing from store", "id", id)
				continue
			}
			if err != nil {
				return fmt.Errorf("reading package %d: %w", id, err)
			}
			var pkg patch.Package
			if err := json.Unmarshal(value, &pkg); err != nil {
				return fmt.Errorf("decoding package %d: %w", id, err)
			}
			packages = append(packages, pkg)
		}
		return nil
	})
	if err != nil {
		return nil, oerrors.WrapStore(err, "loading packages")
	}
	return packages, nil
}

// SavePackage inserts pkg when its ID is 0, assigning the next ID, and
// overwrites the stored record otherwise.
func (s *NutsStore) SavePackage(ctx context.Context, pkg *patch.Package) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if pkg.ID == 0 {
		return s.insert(pkg)
	}
	return s.update(pkg)
}

func (s *NutsStore) insert(pkg *patch.Package) error {
	var id int64
	err := s.db.Update(func(tx *nutsdb.Tx) error {
		seq, err := readSequence(tx)
		if err != nil {
			return err
		}
		id = seq + 1

		record := *pkg
		record.ID = id
		value, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("encoding package: %w", err)
		}
		if err := tx.Put(bucketPackages, packageKey(id), value, 0); err != nil {
			return err
		}
		return tx.Put(bucketMeta, []byte(keySequence), []byte(strconv.FormatInt(id, 10)), 0)
	})
	if err != nil {
		return oerrors.WrapStore(err, fmt.Sprintf("inserting package for %s", pkg.ComponentID))
	}

	pkg.ID = id
	s.logger.Debug("package inserted", "id", id, "component", pkg.ComponentID, "result", pkg.ExecutionResult)
	return nil
}

func (s *NutsStore) update(pkg *patch.Package) error {
	err := s.db.Update(func(tx *nutsdb.Tx) error {
		key := packageKey(pkg.ID)
		if _, err := tx.Get(bucketPackages, key); err != nil {
			if isMissing(err) {
				return fmt.Errorf("package %d: %w", pkg.ID, oerrors.ErrNotFound)
			}
			return err
		}
		value, err := json.Marshal(pkg)
		if err != nil {
			return fmt.Errorf("encoding package: %w", err)
		}
		return tx.Put(bucketPackages, key, value, 0)
	})
	if err != nil {
		if errors.Is(err, oerrors.ErrNotFound) {
			return err
		}
		return oerrors.WrapStore(err, fmt.Sprintf("updating package %d", pkg.ID))
	}

	s.logger.Debug("package updated", "id", pkg.ID, "result", pkg.ExecutionResult)
	return nil
}

// Close closes the database.
func (s *NutsStore) Close() error {
	return s.db.Close()
}

func readSequence(tx *nutsdb.Tx) (int64, error) {
	value, err := tx.Get(bucketMeta, []byte(keySequence))
	if isMissing(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading sequence: %w", err)
	}
	seq, err := strconv.ParseInt(string(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt sequence %q: %w", value, err)
	}
	return seq, nil
}

func isMissing(err error) bool {
	return errors.Is(err, nutsdb.ErrKeyNotFound) || errors.Is(err, nutsdb.ErrBucketNotFound)
}

// packageKey zero-pads ids so keys sort numerically.
func packageKey(id int64) []byte {
	return []byte(fmt.Sprintf("%020d", id))
}
