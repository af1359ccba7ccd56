package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidConfiguration is returned when a configuration lacks its environment or identity.
	ErrInvalidConfiguration = zerr.New("invalid configuration")

	// ErrConfigSerializeFailed is returned when a configuration cannot be serialized for hashing.
	ErrConfigSerializeFailed = zerr.New("failed to serialize configuration")

	// ErrInvalidSourceMethod is returned when a watch source method is not one of mtime, content or checksum.
	ErrInvalidSourceMethod = zerr.New("invalid source method, expected 'mtime', 'content' or 'checksum'")

	// ErrFingerprintFailed is returned when a fingerprint cannot be computed.
	ErrFingerprintFailed = zerr.New("failed to compute fingerprint")

	// ErrCacheDirCreateFailed is returned when the cache directory cannot be created.
	ErrCacheDirCreateFailed = zerr.New("failed to create cache directory")

	// ErrCacheListFailed is returned when the cache directory cannot be listed.
	ErrCacheListFailed = zerr.New("failed to list cache directory")

	// ErrCleanupFailed is returned when stale cache entries cannot be removed.
	ErrCleanupFailed = zerr.New("failed to clean up stale cache entries")

	// ErrMarkBuiltFailed is returned when the marker for a successful build cannot be written.
	ErrMarkBuiltFailed = zerr.New("failed to record build marker")

	// ErrBuildFailed is returned when the builder reports a failure.
	ErrBuildFailed = zerr.New("build failed")

	// ErrCommandFailed is returned when a build command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidIdentity is returned when an identity is neither a scalar string nor an integer.
	ErrInvalidIdentity = zerr.New("identity must be a string or an integer")

	// ErrInvalidWatch is returned when a watch value is neither a path list nor a {paths, sourceMethod} mapping.
	ErrInvalidWatch = zerr.New("watch must be a list of paths or a mapping with paths and sourceMethod")

	// ErrDuplicateIdentity is returned when two units share one environment and identity.
	ErrDuplicateIdentity = zerr.New("duplicate environment and identity")

	// ErrUnitNotFound is returned when a requested unit is not declared in the config file.
	ErrUnitNotFound = zerr.New("unit not found")

	// ErrNoUnits is returned when the config file declares no units.
	ErrNoUnits = zerr.New("no units declared")

	// ErrRunFailed is returned when at least one unit fails during a run.
	ErrRunFailed = zerr.New("run failed")

	// ErrWatchFailed is returned when the file watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to start watcher")
)
