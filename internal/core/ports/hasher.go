package ports

import "go.trai.ch/pinset/internal/core/domain"

// Hasher defines the interface for computing set digests.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// DigestSet computes a deterministic digest of a resolved set.
	// Two sets with the same pins always produce the same digest.
	DigestSet(set *domain.Set) string
}
