package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/zerr"
)

// Strategy computes the contribution of one regular file to a fingerprint.
type Strategy func(path string, info iofs.FileInfo) (string, error)

// StrategyFor returns the strategy for method. Unknown methods fall back to the mtime strategy.
func StrategyFor(method domain.SourceMethod) Strategy {
	switch method {
	case domain.SourceMethodContent:
		return ContentStrategy
	case domain.SourceMethodChecksum:
		return ChecksumStrategy
	default:
		return MtimeStrategy
	}
}

// ContentStrategy contributes the full content of the file.
func ContentStrategy(path string, _ iofs.FileInfo) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path comes from the watch list
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return string(data), nil
}

// MtimeStrategy contributes the path and the modification time of the file.
// The time is rendered in UTC so the contribution does not depend on the local zone.
func MtimeStrategy(path string, info iofs.FileInfo) (string, error) {
	return path + "_" + info.ModTime().UTC().Format(time.RFC3339Nano), nil
}

// ChecksumStrategy contributes the path and the xxhash of the file content.
func ChecksumStrategy(path string, _ iofs.FileInfo) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Path comes from the watch list
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return fmt.Sprintf("%s_%016x", path, hasher.Sum64()), nil
}
