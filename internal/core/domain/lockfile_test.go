package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/core/domain"
)

func lockSet(t *testing.T) *domain.Set {
	t.Helper()
	s := domain.NewSet()
	for _, r := range []domain.Requirement{
		req("isort", "5.12.0", "requirements.txt", 3),
		req("black", "24.4.2", "requirements.txt", 5),
	} {
		_, err := s.Add(r)
		require.NoError(t, err)
	}
	return s
}

func TestNewLockfile(t *testing.T) {
	s := lockSet(t)

	lf := domain.NewLockfile(s, "00000000075bcd15")

	assert.Equal(t, domain.LockfileVersion, lf.Version)
	assert.Equal(t, "00000000075bcd15", lf.Digest)
	require.Len(t, lf.Packages, 2)

	black := lf.Packages["black"]
	assert.Equal(t, "24.4.2", black.Version)
	assert.Equal(t, "requirements.txt:5", black.Source)
}

func TestLockfile_Verify_InSync(t *testing.T) {
	s := lockSet(t)
	lf := domain.NewLockfile(s, "00000000075bcd15")

	assert.NoError(t, lf.Verify(s, "00000000075bcd15"))
}

func TestLockfile_Verify_VersionDrift(t *testing.T) {
	s := lockSet(t)
	lf := domain.NewLockfile(s, "00000000075bcd15")

	drifted := domain.NewSet()
	_, err := drifted.Add(req("isort", "5.12.0", "requirements.txt", 3))
	require.NoError(t, err)
	_, err = drifted.Add(req("black", "25.1.0", "requirements.txt", 5))
	require.NoError(t, err)

	err = lf.Verify(drifted, "ffffffffffffffff")
	require.ErrorIs(t, err, domain.ErrLockDrift)
}

func TestLockfile_Verify_NewPackage(t *testing.T) {
	s := lockSet(t)
	lf := domain.NewLockfile(s, "00000000075bcd15")

	grown := lockSet(t)
	_, err := grown.Add(req("mypy", "1.10.0", "requirements.txt", 6))
	require.NoError(t, err)

	err = lf.Verify(grown, "ffffffffffffffff")
	require.ErrorIs(t, err, domain.ErrLockDrift)
}

func TestLockfile_Verify_RemovedPackage(t *testing.T) {
	s := lockSet(t)
	lf := domain.NewLockfile(s, "00000000075bcd15")

	shrunk := domain.NewSet()
	_, err := shrunk.Add(req("isort", "5.12.0", "requirements.txt", 3))
	require.NoError(t, err)

	err = lf.Verify(shrunk, "ffffffffffffffff")
	require.ErrorIs(t, err, domain.ErrLockDrift)
}
