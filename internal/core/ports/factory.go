package ports

// StoreFactory opens cache stores. The cache directory is only known once the project is loaded.
type StoreFactory interface {
	// Open returns the store rooted at dir. It does not touch the filesystem.
	Open(dir string) CacheStore
}

// FingerprinterFactory creates fingerprinters bound to a cache directory.
type FingerprinterFactory interface {
	// New returns a fingerprinter whose enumeration never descends into cacheDir.
	New(cacheDir string) Fingerprinter
}
