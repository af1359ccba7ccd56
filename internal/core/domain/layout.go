package domain

import "path/filepath"

const (
	// ReuseDirName is the name of the internal workspace directory.
	ReuseDirName = ".reuse"

	// CacheDirName is the name of the marker directory inside the workspace directory.
	CacheDirName = "cache"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "reuse.yaml"

	// MarkerTempPattern is the pattern for temporary files created while writing a marker.
	// Names produced by it never collide with a fingerprint because fingerprints never start with a dot.
	MarkerTempPattern = ".marker-*"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultCacheDir returns the default marker directory.
// It joins .reuse and cache.
func DefaultCacheDir() string {
	return filepath.Join(ReuseDirName, CacheDirName)
}
