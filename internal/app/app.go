// Package app implements the application layer for reuse.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"slices"
	"time"

	"go.trai.ch/reuse/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/reuse/internal/engine/orchestrator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	orchestrators *orchestrator.Factory
	executor      ports.Executor
	watcher       ports.Watcher
	logger        ports.Logger
	telemetry     ports.Telemetry
	logOutcomes   bool
	parallelism   int
	debounce      time.Duration
	observer      func(domain.State)
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	orchestrators *orchestrator.Factory,
	executor ports.Executor,
	watcher ports.Watcher,
	log ports.Logger,
	tel ports.Telemetry,
) *App {
	return &App{
		configLoader:  loader,
		orchestrators: orchestrators,
		executor:      executor,
		watcher:       watcher,
		logger:        log,
		telemetry:     tel,
		parallelism:   runtime.NumCPU(),
	}
}

// WithTelemetry replaces the telemetry used to report unit progress.
func (a *App) WithTelemetry(tel ports.Telemetry) *App {
	a.telemetry = tel
	return a
}

// WithJSONOutput reports unit outcomes through the logger instead of the progress printer.
// The replaced telemetry is closed since nothing will be recorded on it.
func (a *App) WithJSONOutput() *App {
	if a.telemetry != nil {
		_ = a.telemetry.Close()
	}
	a.telemetry = telemetry.NewNoOp()
	a.logOutcomes = true
	return a
}

// WithParallelism limits how many units run at once.
func (a *App) WithParallelism(n int) *App {
	if n > 0 {
		a.parallelism = n
	}
	return a
}

// WithObserver forwards every orchestrator state transition to fn.
// It is primarily used for testing.
func (a *App) WithObserver(fn func(domain.State)) *App {
	a.observer = fn
	return a
}

// Close flushes the telemetry session.
func (a *App) Close() error {
	return a.telemetry.Close()
}

// Target selects the project and units a command operates on.
type Target struct {
	// ConfigPath is the path of the configuration file.
	ConfigPath string
	// CacheDir overrides the cache directory of the configuration file when set.
	CacheDir string
	// Units names the units to operate on. Empty selects every unit.
	Units []string
}

// RunOptions configuration for the Run and Watch methods.
type RunOptions struct {
	// NoCache rebuilds every unit regardless of recorded markers.
	NoCache bool
}

// Run checks every selected unit and rebuilds the ones whose fingerprint is not recorded.
func (a *App) Run(ctx context.Context, target Target, opts RunOptions) error {
	project, units, err := a.load(target)
	if err != nil {
		return err
	}

	return a.runUnits(ctx, a.orchestrator(project), units, opts.NoCache)
}

// UnitFingerprint pairs a unit with its current fingerprint.
type UnitFingerprint struct {
	Unit        string             `json:"unit"`
	Fingerprint domain.Fingerprint `json:"fingerprint"`
}

// Hash computes the current fingerprint of every selected unit without touching the cache.
func (a *App) Hash(ctx context.Context, target Target) ([]UnitFingerprint, error) {
	project, units, err := a.load(target)
	if err != nil {
		return nil, err
	}
	orch := a.orchestrator(project)

	result := make([]UnitFingerprint, 0, len(units))
	for _, unit := range units {
		fp, _, err := orch.Check(ctx, unit.Config)
		if err != nil {
			return nil, zerr.With(err, "unit", unit.Name)
		}
		result = append(result, UnitFingerprint{Unit: unit.Name, Fingerprint: fp})
	}
	return result, nil
}

// UnitStatus describes the cache state of a unit.
type UnitStatus struct {
	Unit        string             `json:"unit"`
	Fingerprint domain.Fingerprint `json:"fingerprint"`
	// Cached reports whether a marker for Fingerprint exists.
	Cached bool `json:"cached"`
	// Current is the marker of Fingerprint, zero when not cached.
	Current domain.Marker `json:"current,omitzero"`
	// Stale lists the markers of earlier fingerprints of the unit.
	Stale []domain.Marker `json:"stale,omitempty"`
}

// Status reports whether the next run of every selected unit would be served from the cache.
func (a *App) Status(ctx context.Context, target Target) ([]UnitStatus, error) {
	project, units, err := a.load(target)
	if err != nil {
		return nil, err
	}
	orch, store := a.orchestrators.For(project.CacheDir, telemetry.NewNoOp())

	result := make([]UnitStatus, 0, len(units))
	for _, unit := range units {
		fp, cached, err := orch.Check(ctx, unit.Config)
		if err != nil {
			return nil, zerr.With(err, "unit", unit.Name)
		}

		markers, err := store.Entries(domain.EntryPrefix(unit.Config.Environment, unit.Config.Identity))
		if err != nil {
			return nil, zerr.With(err, "unit", unit.Name)
		}

		status := UnitStatus{Unit: unit.Name, Fingerprint: fp, Cached: cached}
		for _, m := range markers {
			if m.Fingerprint == fp {
				status.Current = m
				continue
			}
			status.Stale = append(status.Stale, m)
		}
		result = append(result, status)
	}
	return result, nil
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	// All removes every marker in the cache directory, including those of undeclared units.
	All bool
}

// Clean removes cache markers so the next run rebuilds.
func (a *App) Clean(_ context.Context, target Target, opts CleanOptions) error {
	project, units, err := a.load(target)
	if err != nil {
		return err
	}
	_, store := a.orchestrators.For(project.CacheDir, a.telemetry)

	if opts.All {
		if err := store.Cleanup(""); err != nil {
			return errors.Join(domain.ErrCleanupFailed, err)
		}
		a.logger.Info("removed all cache entries", "dir", store.Dir())
		return nil
	}

	var errs error
	for _, unit := range units {
		prefix := domain.EntryPrefix(unit.Config.Environment, unit.Config.Identity)
		if err := store.Cleanup(prefix); err != nil {
			errs = errors.Join(errs, zerr.With(err, "unit", unit.Name))
			continue
		}
		a.logger.Info("removed cache entries", "unit", unit.Name)
	}
	if errs != nil {
		return errors.Join(domain.ErrCleanupFailed, errs)
	}
	return nil
}

func (a *App) orchestrator(project *domain.Project) *orchestrator.Orchestrator {
	var opts []orchestrator.Option
	if a.observer != nil {
		opts = append(opts, orchestrator.WithObserver(a.observer))
	}
	orch, _ := a.orchestrators.For(project.CacheDir, a.telemetry, opts...)
	return orch
}

// load reads the project and resolves the selected units in declaration order.
func (a *App) load(target Target) (*domain.Project, []domain.Unit, error) {
	path := target.ConfigPath
	if path == "" {
		path = domain.ConfigFileName
	}

	project, err := a.configLoader.Load(path)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	if target.CacheDir != "" {
		project.CacheDir = target.CacheDir
	}

	if len(target.Units) == 0 {
		return project, project.Units, nil
	}

	units := make([]domain.Unit, 0, len(target.Units))
	for _, name := range target.Units {
		unit, ok := project.Unit(name)
		if !ok {
			return nil, nil, zerr.With(domain.ErrUnitNotFound, "unit", name)
		}
		if !slices.ContainsFunc(units, func(u domain.Unit) bool { return u.Name == name }) {
			units = append(units, unit)
		}
	}
	return project, units, nil
}

// runUnits runs every unit through orch. A failing unit does not stop the others.
func (a *App) runUnits(ctx context.Context, orch *orchestrator.Orchestrator, units []domain.Unit, force bool) error {
	var g errgroup.Group
	g.SetLimit(a.parallelism)

	errs := make([]error, len(units))
	for i, unit := range units {
		g.Go(func() error {
			errs[i] = a.runUnit(ctx, orch, unit, force)
			return nil
		})
	}
	_ = g.Wait()

	if err := errors.Join(errs...); err != nil {
		return errors.Join(domain.ErrRunFailed, err)
	}
	return nil
}

func (a *App) runUnit(ctx context.Context, orch *orchestrator.Orchestrator, unit domain.Unit, force bool) error {
	ctx = orchestrator.WithName(ctx, unit.Name)

	run := orch.Run
	if force {
		run = orch.Rebuild
	}

	outcome, err := run(ctx, unit.Config, a.builderFor(unit))
	if err != nil {
		err = zerr.With(err, "unit", unit.Name)
		if a.logOutcomes {
			a.logger.Error(err)
		}
		return err
	}

	args := []any{"unit", unit.Name, "source", string(outcome.Source), "fingerprint", outcome.Fingerprint.String()}
	if result, ok := outcome.Result.(domain.CommandResult); ok {
		args = append(args, "duration", result.Duration)
	}
	if a.logOutcomes {
		a.logger.Info("unit finished", args...)
	} else {
		a.logger.Debug("unit finished", args...)
	}
	return nil
}

// builderFor runs the unit command, streaming its output into the unit's vertex.
func (a *App) builderFor(unit domain.Unit) ports.Builder {
	return ports.BuilderFunc(func(ctx context.Context) (any, error) {
		var stdout, stderr io.Writer = os.Stdout, os.Stderr
		if vertex, ok := ports.VertexFromContext(ctx); ok {
			stdout, stderr = vertex.Stdout(), vertex.Stderr()
		}
		return a.executor.Execute(ctx, unit, stdout, stderr)
	})
}
