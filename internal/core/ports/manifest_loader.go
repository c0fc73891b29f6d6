// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/pinset/internal/core/domain"
)

// LoadResult is the outcome of resolving a manifest set.
type LoadResult struct {
	// Graph is the include graph over all discovered manifest files.
	Graph *domain.Graph

	// Set is the combined requirement set in installer order.
	Set *domain.Set

	// Violations are pin-contract failures found during resolution: unpinned
	// requirements, conflicting pins, malformed lines and unsupported
	// directives. Each carries file:line metadata.
	Violations []error

	// Duplicates are identical re-pins of a package, surfaced as warnings.
	Duplicates []domain.Requirement
}

// ManifestLoader defines the interface for loading a requirements manifest set.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load parses the target manifests and resolves -r includes recursively,
	// processing included files before the including file's own entries.
	// Structural failures (unreadable target, missing include, include cycle)
	// abort the load; content violations are collected in the result.
	Load(ctx context.Context, targets []string) (*LoadResult, error)

	// Parse parses a single manifest file without resolving its includes.
	Parse(path string) (*domain.Manifest, error)

	// Format renders a manifest in canonical form.
	Format(m *domain.Manifest) []byte
}
