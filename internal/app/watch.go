package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/reuse/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/zerr"
)

// WithDebounce sets the quiet window Watch waits for before re-running units.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// Watch runs the selected units, then re-runs the ones whose watched paths change until ctx is done.
// A change to the configuration file reloads it and re-runs every selected unit.
func (a *App) Watch(ctx context.Context, target Target, opts RunOptions) error {
	project, units, err := a.load(target)
	if err != nil {
		return err
	}
	orch := a.orchestrator(project)

	if err := a.runUnits(ctx, orch, units, opts.NoCache); err != nil && !a.logOutcomes {
		a.logger.Error(err)
	}

	configPath := target.ConfigPath
	if configPath == "" {
		configPath = domain.ConfigFileName
	}
	configPath = absPath(configPath)

	paths := append(watchedPaths(units), configPath)
	if err := a.watcher.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	watching := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		watching[p] = struct{}{}
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	batches := make(chan []string)
	window := a.debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	debouncer := watcher.NewDebouncer(window, func(changed []string) {
		select {
		case batches <- changed:
		case <-ctx.Done():
		}
	})
	defer debouncer.Stop()

	cacheDir := absPath(project.CacheDir)
	go func() {
		for event := range a.watcher.Events() {
			if within(event.Path, cacheDir) {
				continue
			}
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info("watching for changes", "paths", len(paths))

	for {
		select {
		case <-ctx.Done():
			return nil
		case changed := <-batches:
			affected := affectedUnits(units, changed)
			if containsPath(changed, configPath) {
				reloaded, reloadedUnits, err := a.load(target)
				if err != nil {
					a.logger.Error(err)
					continue
				}
				project, units, affected = reloaded, reloadedUnits, reloadedUnits
				orch = a.orchestrator(project)
				a.logger.Info("configuration reloaded", "units", len(units))

				if err := a.watchNew(ctx, watching, units); err != nil {
					a.logger.Error(err)
				}
			}
			if len(affected) == 0 {
				continue
			}

			a.logger.Info("change detected", "units", unitNames(affected), "paths", len(changed))
			if err := a.runUnits(ctx, orch, affected, false); err != nil && !a.logOutcomes {
				a.logger.Error(err)
			}
		}
	}
}

// watchNew starts watching the paths of units that are not in watching yet.
func (a *App) watchNew(ctx context.Context, watching map[string]struct{}, units []domain.Unit) error {
	var added []string
	for _, p := range watchedPaths(units) {
		if _, ok := watching[p]; !ok {
			added = append(added, p)
		}
	}
	if len(added) == 0 {
		return nil
	}
	if err := a.watcher.Start(ctx, added); err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	for _, p := range added {
		watching[p] = struct{}{}
	}
	a.logger.Debug("watching new paths", "paths", len(added))
	return nil
}

func watchedPaths(units []domain.Unit) []string {
	seen := make(map[string]struct{})
	var paths []string
	for _, unit := range units {
		for _, p := range unit.Config.Watch.Paths {
			abs := absPath(p)
			if _, ok := seen[abs]; ok {
				continue
			}
			seen[abs] = struct{}{}
			paths = append(paths, abs)
		}
	}
	return paths
}

// affectedUnits returns the units watching at least one of the changed paths.
func affectedUnits(units []domain.Unit, changed []string) []domain.Unit {
	var affected []domain.Unit
	for _, unit := range units {
	paths:
		for _, p := range unit.Config.Watch.Paths {
			root := absPath(p)
			for _, c := range changed {
				if within(c, root) {
					affected = append(affected, unit)
					break paths
				}
			}
		}
	}
	return affected
}

func unitNames(units []domain.Unit) string {
	names := make([]string, len(units))
	for i, u := range units {
		names[i] = u.Name
	}
	return strings.Join(names, ",")
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if filepath.Clean(p) == target {
			return true
		}
	}
	return false
}

// within reports whether path is root or lies below it.
func within(path, root string) bool {
	path = filepath.Clean(path)
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}
