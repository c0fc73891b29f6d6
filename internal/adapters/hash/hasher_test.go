package hash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pinset/internal/adapters/hash"
	"go.trai.ch/pinset/internal/core/domain"
)

func addReq(t *testing.T, s *domain.Set, name, version, source string, line int) {
	t.Helper()
	_, err := s.Add(domain.Requirement{
		Name:      domain.NewInternedString(name),
		Canonical: domain.NewInternedString(domain.CanonicalName(name)),
		Op:        domain.OpExact,
		Version:   domain.NewInternedString(version),
		Source:    domain.NewInternedString(source),
		Line:      line,
	})
	require.NoError(t, err)
}

func TestHasher_Deterministic(t *testing.T) {
	h := hash.NewHasher()

	s1 := domain.NewSet()
	addReq(t, s1, "isort", "5.12.0", "requirements.txt", 2)
	addReq(t, s1, "black", "24.4.2", "requirements.txt", 3)

	// Same pins, different declaration order and provenance.
	s2 := domain.NewSet()
	addReq(t, s2, "black", "24.4.2", "other.txt", 9)
	addReq(t, s2, "isort", "5.12.0", "other.txt", 1)

	assert.Equal(t, h.DigestSet(s1), h.DigestSet(s2))
}

func TestHasher_VersionChangesDigest(t *testing.T) {
	h := hash.NewHasher()

	s1 := domain.NewSet()
	addReq(t, s1, "mypy", "1.10.0", "requirements.txt", 1)

	s2 := domain.NewSet()
	addReq(t, s2, "mypy", "1.10.1", "requirements.txt", 1)

	assert.NotEqual(t, h.DigestSet(s1), h.DigestSet(s2))
}

func TestHasher_NameSpellingDoesNotChangeDigest(t *testing.T) {
	h := hash.NewHasher()

	s1 := domain.NewSet()
	addReq(t, s1, "django_stubs", "5.0.2", "requirements.txt", 1)

	s2 := domain.NewSet()
	addReq(t, s2, "Django-Stubs", "5.0.2", "requirements.txt", 1)

	assert.Equal(t, h.DigestSet(s1), h.DigestSet(s2))
}

func TestHasher_EmptySet(t *testing.T) {
	h := hash.NewHasher()

	digest := h.DigestSet(domain.NewSet())
	assert.Len(t, digest, 16)
}
