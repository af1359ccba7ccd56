package ports

import "go.trai.ch/reuse/internal/core/domain"

// CacheStore is the directory of markers keyed by fingerprint.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Dir returns the cache directory. Watched sources under it are never enumerated.
	Dir() string

	// EnsureReady creates the cache directory. It is idempotent.
	EnsureReady() error

	// HasEntry reports whether a marker named name exists.
	// Any filesystem error is reported as false.
	HasEntry(name string) bool

	// Cleanup deletes every entry whose name starts with prefix.
	Cleanup(prefix string) error

	// MarkBuilt records that name now represents a successfully built state.
	MarkBuilt(name string) error

	// Entries lists the markers whose names start with prefix, sorted by name.
	Entries(prefix string) ([]domain.Marker, error)
}
