// Package fs provides file system adapters for enumerating watched sources and computing fingerprints.
package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.SourceEnumerator = (*Walker)(nil)

// Walker enumerates the leaf inputs under a set of watch paths.
type Walker struct {
	cacheDir string
	logger   ports.Logger
	limit    int
}

// NewWalker creates a new Walker that never descends into cacheDir.
// An empty cacheDir disables the exclusion.
func NewWalker(cacheDir string, logger ports.Logger) *Walker {
	return &Walker{
		cacheDir: absPath(cacheDir),
		logger:   logger,
		limit:    runtime.NumCPU(),
	}
}

// Sources returns the combined contribution of every leaf input under paths.
func (w *Walker) Sources(ctx context.Context, paths []string, method domain.SourceMethod) string {
	var b strings.Builder
	_ = w.WriteSources(ctx, &b, paths, method)
	return b.String()
}

// WriteSources streams the combined contribution of every leaf input under paths to out.
// Paths are visited in order, and the children of a directory in listing order.
// A path that cannot be read contributes an empty string.
func (w *Walker) WriteSources(ctx context.Context, out io.Writer, paths []string, method domain.SourceMethod) error {
	strategy := StrategyFor(method)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := io.WriteString(out, w.source(ctx, path, strategy, true)); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write sources"), "path", path)
		}
	}
	return ctx.Err()
}

// source returns the contribution of path. Watch roots are followed when they are symlinks,
// entries found while listing a directory are not, so link cycles cannot be walked.
func (w *Walker) source(ctx context.Context, path string, strategy Strategy, root bool) string {
	if ctx.Err() != nil {
		return ""
	}

	stat := os.Lstat
	if root {
		stat = os.Stat
	}
	info, err := stat(path)
	if err != nil {
		w.logger.Debug("skipping unreadable source", "path", path, "error", err)
		return ""
	}

	if info.Mode()&os.ModeSymlink != 0 {
		target, err := os.Stat(path)
		if err != nil || !target.Mode().IsRegular() {
			w.logger.Debug("skipping symlink", "path", path)
			return ""
		}
		info = target
	}

	if !info.IsDir() {
		contribution, err := strategy(path, info)
		if err != nil {
			w.logger.Debug("skipping unreadable source", "path", path, "error", err)
			return ""
		}
		return contribution
	}

	if w.isCacheDir(path) {
		return ""
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		w.logger.Debug("skipping unreadable directory", "path", path, "error", err)
		return ""
	}

	// Children are reassembled by index, never by completion order.
	parts := make([]string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.limit)
	for i, entry := range entries {
		child := filepath.Join(path, entry.Name())
		g.Go(func() error {
			parts[i] = w.source(gctx, child, strategy, false)
			return nil
		})
	}
	_ = g.Wait()

	return strings.Join(parts, "")
}

// isCacheDir reports whether path is the cache directory or lies beneath it.
func (w *Walker) isCacheDir(path string) bool {
	if w.cacheDir == "" {
		return false
	}
	abs := absPath(path)
	return abs == w.cacheDir || strings.HasPrefix(abs, w.cacheDir+string(filepath.Separator))
}

func absPath(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
