package domain

import "go.trai.ch/zerr"

// LockfileVersion is the current lockfile format version.
const LockfileVersion = 1

// Lockfile represents the complete state of a resolved requirement set.
// It provides a reproducible snapshot of all pins across the combined
// (included + local) manifests.
type Lockfile struct {
	// Version is the lockfile format version (e.g., 1, 2).
	// This allows for future schema migrations and backward compatibility.
	Version int `yaml:"version"`

	// Digest is the content digest of the resolved set the lockfile was
	// generated from. Two identical sets always produce the same digest.
	Digest string `yaml:"digest"`

	// Packages maps canonical package names to their locked pin information.
	// The key is the canonical name as a string for serialization compatibility.
	Packages map[string]LockedPackage `yaml:"packages"`
}

// LockedPackage is one pinned package recorded in the lockfile.
type LockedPackage struct {
	// Name is the package name as written in the manifest.
	Name string `yaml:"name"`

	// Version is the exact pinned version.
	Version string `yaml:"version"`

	// Source is the "file:line" location the pin was declared at.
	Source string `yaml:"source"`
}

// NewLockfile builds a lockfile snapshot from a resolved set and its digest.
func NewLockfile(set *Set, digest string) *Lockfile {
	packages := make(map[string]LockedPackage, set.Len())
	for _, req := range set.Records() {
		packages[req.Canonical.String()] = LockedPackage{
			Name:    req.Name.String(),
			Version: req.Version.String(),
			Source:  req.Ref(),
		}
	}
	return &Lockfile{
		Version:  LockfileVersion,
		Digest:   digest,
		Packages: packages,
	}
}

// Verify checks the lockfile against a freshly resolved set and its digest.
// It returns ErrLockDrift naming the first divergent package when the
// snapshot no longer matches.
func (l *Lockfile) Verify(set *Set, digest string) error {
	if l.Digest == digest {
		return nil
	}

	// The digest already proves drift; find a concrete package to report.
	for _, req := range set.Records() {
		locked, ok := l.Packages[req.Canonical.String()]
		if !ok {
			err := zerr.With(zerr.Wrap(ErrLockDrift, ""), "package", req.Canonical.String())
			return zerr.With(err, "reason", "missing from lockfile")
		}
		if locked.Version != req.Version.String() {
			err := zerr.With(zerr.Wrap(ErrLockDrift, ""), "package", req.Canonical.String())
			err = zerr.With(err, "locked", locked.Version)
			return zerr.With(err, "manifest", req.Version.String())
		}
	}
	for name := range l.Packages {
		if _, ok := set.Get(name); !ok {
			err := zerr.With(zerr.Wrap(ErrLockDrift, ""), "package", name)
			return zerr.With(err, "reason", "no longer in manifest set")
		}
	}

	return zerr.With(zerr.Wrap(ErrLockDrift, ""), "reason", "digest mismatch")
}
