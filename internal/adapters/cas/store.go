// Package cas implements the flat marker directory that records which fingerprints were built.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.CacheStore   = (*Store)(nil)
	_ ports.StoreFactory = Factory{}
)

// Store implements ports.CacheStore using one marker file per fingerprint.
type Store struct {
	dir string
	now func() time.Time
}

// NewStore creates a new Store backed by the directory at the given path.
// The directory is created lazily by EnsureReady.
func NewStore(dir string) *Store {
	return &Store{
		dir: filepath.Clean(dir),
		now: time.Now,
	}
}

// Dir returns the cache directory.
func (s *Store) Dir() string {
	return s.dir
}

// EnsureReady creates the cache directory if it does not exist.
func (s *Store) EnsureReady() error {
	if err := os.MkdirAll(s.dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "dir", s.dir)
	}
	return nil
}

// HasEntry reports whether a marker named name exists.
func (s *Store) HasEntry(name string) bool {
	if !validName(name) {
		return false
	}
	info, err := os.Stat(filepath.Join(s.dir, name))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// Cleanup removes every marker whose name starts with prefix.
// Every removal is attempted; the failures are joined into the returned error.
func (s *Store) Cleanup(prefix string) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrCacheListFailed.Error()), "dir", s.dir)
	}

	var errs error
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !validName(name) || !strings.HasPrefix(name, prefix) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove cache entry"), "name", name))
		}
	}
	return errs
}

// MarkBuilt records name as successfully built.
// The marker is written to a temporary file and renamed into place, so readers never observe a partial marker.
func (s *Store) MarkBuilt(name string) error {
	if !validName(name) {
		return zerr.With(domain.ErrMarkBuiltFailed, "name", name)
	}

	data, err := json.MarshalIndent(domain.Marker{
		Fingerprint: domain.Fingerprint(name),
		BuiltAt:     s.now().UTC(),
	}, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMarkBuiltFailed.Error()), "name", name)
	}

	tmp, err := os.CreateTemp(s.dir, domain.MarkerTempPattern)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMarkBuiltFailed.Error()), "name", name)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrMarkBuiltFailed.Error()), "name", name)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMarkBuiltFailed.Error()), "name", name)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMarkBuiltFailed.Error()), "name", name)
	}
	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMarkBuiltFailed.Error()), "name", name)
	}

	return nil
}

// Entries lists the markers whose names start with prefix, sorted by name.
// Markers with unreadable content are reported with their file modification time.
func (s *Store) Entries(prefix string) ([]domain.Marker, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheListFailed.Error()), "dir", s.dir)
	}

	var markers []domain.Marker
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !validName(name) || !strings.HasPrefix(name, prefix) {
			continue
		}
		markers = append(markers, s.readMarker(entry))
	}
	return markers, nil
}

func (s *Store) readMarker(entry fs.DirEntry) domain.Marker {
	marker := domain.Marker{Fingerprint: domain.Fingerprint(entry.Name())}

	//nolint:gosec // Name comes from listing the cache directory
	data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
	if err == nil {
		var stored domain.Marker
		if json.Unmarshal(data, &stored) == nil && !stored.BuiltAt.IsZero() {
			marker.BuiltAt = stored.BuiltAt
			return marker
		}
	}

	if info, err := entry.Info(); err == nil {
		marker.BuiltAt = info.ModTime().UTC()
	}
	return marker
}

// validName rejects names that would escape the cache directory or collide with temporary files.
func validName(name string) bool {
	return name != "" &&
		!strings.HasPrefix(name, ".") &&
		!strings.ContainsAny(name, `/\`)
}

// Factory opens stores.
type Factory struct{}

// Open returns the store rooted at dir.
func (Factory) Open(dir string) ports.CacheStore {
	return NewStore(dir)
}
