package ports

import "go.trai.ch/pinset/internal/core/domain"

// LockStore defines the interface for reading and writing lockfiles.
//
//go:generate mockgen -source=lock_store.go -destination=mocks/mock_lock_store.go -package=mocks
type LockStore interface {
	// Read loads the lockfile at the given path.
	// Returns domain.ErrLockNotFound if it does not exist.
	Read(path string) (*domain.Lockfile, error)

	// Write persists the lockfile to the given path atomically.
	Write(path string, lockfile *domain.Lockfile) error
}
