package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when a target manifest file does not exist.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestAlreadyAdded is returned when a manifest path is added to the graph twice.
	ErrManifestAlreadyAdded = zerr.New("manifest already added")

	// ErrIncludeNotFound is returned when a -r directive references a file that does not exist.
	ErrIncludeNotFound = zerr.New("included manifest not found")

	// ErrIncludeCycle is returned when manifests include each other in a cycle.
	ErrIncludeCycle = zerr.New("include cycle detected")

	// ErrMalformedLine is returned when a line is neither a comment, a directive,
	// nor a well-formed requirement.
	ErrMalformedLine = zerr.New("malformed requirement line")

	// ErrUnsupportedDirective is returned for option lines other than -r/--requirement.
	ErrUnsupportedDirective = zerr.New("unsupported directive")

	// ErrUnpinnedRequirement is returned when a requirement does not pin an exact version.
	ErrUnpinnedRequirement = zerr.New("requirement is not pinned to an exact version")

	// ErrConflictingPin is returned when a package appears twice with different versions
	// in the combined manifest set.
	ErrConflictingPin = zerr.New("conflicting versions for package")

	// ErrValidationFailed is returned by check when one or more violations were reported.
	ErrValidationFailed = zerr.New("manifest validation failed")

	// ErrLockNotFound is returned when verifying against a lockfile that does not exist.
	ErrLockNotFound = zerr.New("lockfile not found")

	// ErrLockDrift is returned when the lockfile no longer matches the manifest set.
	ErrLockDrift = zerr.New("lockfile is out of date")

	// ErrLockReadFailed is returned when the lockfile cannot be read or decoded.
	ErrLockReadFailed = zerr.New("failed to read lockfile")

	// ErrLockWriteFailed is returned when the lockfile cannot be written.
	ErrLockWriteFailed = zerr.New("failed to write lockfile")
)
