package lockstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/lockstore"
	"go.trai.ch/pinset/internal/core/domain"
)

func sampleLockfile() *domain.Lockfile {
	return &domain.Lockfile{
		Version: domain.LockfileVersion,
		Digest:  "00000000075bcd15",
		Packages: map[string]domain.LockedPackage{
			"black": {Name: "black", Version: "24.4.2", Source: "requirements.txt:3"},
			"mypy":  {Name: "mypy", Version: "1.10.0", Source: "requirements.txt:4"},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := lockstore.NewStore()
	path := filepath.Join(t.TempDir(), domain.LockFileName)

	require.NoError(t, store.Write(path, sampleLockfile()))

	got, err := store.Read(path)
	require.NoError(t, err)

	assert.Equal(t, domain.LockfileVersion, got.Version)
	assert.Equal(t, "00000000075bcd15", got.Digest)
	require.Len(t, got.Packages, 2)
	assert.Equal(t, "24.4.2", got.Packages["black"].Version)
	assert.Equal(t, "requirements.txt:4", got.Packages["mypy"].Source)
}

func TestStore_Read_NotFound(t *testing.T) {
	store := lockstore.NewStore()

	_, err := store.Read(filepath.Join(t.TempDir(), domain.LockFileName))
	require.ErrorIs(t, err, domain.ErrLockNotFound)
}

func TestStore_Read_Corrupt(t *testing.T) {
	store := lockstore.NewStore()
	path := filepath.Join(t.TempDir(), domain.LockFileName)
	require.NoError(t, os.WriteFile(path, []byte("{not yaml:\n  - ["), 0o644))

	_, err := store.Read(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrLockNotFound)
}

func TestStore_Write_Overwrites(t *testing.T) {
	store := lockstore.NewStore()
	path := filepath.Join(t.TempDir(), domain.LockFileName)

	require.NoError(t, store.Write(path, sampleLockfile()))

	updated := sampleLockfile()
	updated.Digest = "ffffffffffffffff"
	require.NoError(t, store.Write(path, updated))

	got, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "ffffffffffffffff", got.Digest)

	// No temp files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}
