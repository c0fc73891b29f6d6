// Package lockstore implements YAML lockfile persistence.
package lockstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.LockStore = (*Store)(nil)

// Store implements ports.LockStore using a YAML file on disk.
type Store struct{}

// NewStore creates a new LockStore.
func NewStore() *Store {
	return &Store{}
}

// Read loads the lockfile at the given path.
func (s *Store) Read(path string) (*domain.Lockfile, error) {
	//nolint:gosec // Path is constructed from the user-selected manifest location
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrLockNotFound, ""), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "path", path)
	}

	var lockfile domain.Lockfile
	if err := yaml.Unmarshal(data, &lockfile); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrLockReadFailed.Error()), "path", path)
	}

	return &lockfile, nil
}

// Write persists the lockfile atomically: it writes to a temporary file in
// the target directory and renames it into place.
func (s *Store) Write(path string, lockfile *domain.Lockfile) error {
	data, err := yaml.Marshal(lockfile)
	if err != nil {
		return zerr.Wrap(err, domain.ErrLockWriteFailed.Error())
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrLockWriteFailed.Error()), "path", path)
	}

	return nil
}
