package domain

const (
	// DefaultManifestName is the manifest checked when no targets are given.
	DefaultManifestName = "requirements.txt"

	// LockFileName is the name of the lockfile written next to the root manifest.
	LockFileName = "pinset.lock.yaml"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
