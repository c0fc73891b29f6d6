// Package hash implements deterministic digests over resolved requirement sets.
package hash

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/pinset/internal/core/domain"
	"go.trai.ch/pinset/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes XXHash digests of resolved sets.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// DigestSet computes a digest over the canonical encoding of the set:
// canonical-name/version pairs in sorted order, NUL-separated. Provenance
// (source file and line) is deliberately excluded so that reformatting a
// manifest does not invalidate the lockfile.
func (h *Hasher) DigestSet(set *domain.Set) string {
	records := set.Records()

	keys := make([]string, 0, len(records))
	byKey := make(map[string]domain.Requirement, len(records))
	for _, req := range records {
		key := req.Canonical.String()
		keys = append(keys, key)
		byKey[key] = req
	}
	sort.Strings(keys)

	hasher := xxhash.New()
	for _, key := range keys {
		req := byKey[key]
		_, _ = hasher.WriteString(key)
		_, _ = hasher.Write([]byte{0})
		_, _ = hasher.WriteString(req.Version.String())
		_, _ = hasher.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", hasher.Sum64())
}
