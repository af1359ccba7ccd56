// Package orchestrator implements the cache decision for a single unit of work:
// reuse the previous build when its fingerprint is recorded, otherwise clean up and rebuild.
package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/zerr"
)

// Orchestrator runs the check, clean, build and record state machine.
// A single Orchestrator may serve concurrent runs of different identities.
type Orchestrator struct {
	fingerprinter ports.Fingerprinter
	store         ports.CacheStore
	logger        ports.Logger
	telemetry     ports.Telemetry
	observer      func(domain.State)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithObserver registers fn to receive every state the orchestrator enters.
// fn may be called concurrently when runs overlap.
func WithObserver(fn func(domain.State)) Option {
	return func(o *Orchestrator) {
		o.observer = fn
	}
}

// New creates a new Orchestrator.
func New(
	fingerprinter ports.Fingerprinter,
	store ports.CacheStore,
	logger ports.Logger,
	telemetry ports.Telemetry,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		fingerprinter: fingerprinter,
		store:         store,
		logger:        logger,
		telemetry:     telemetry,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type nameKey struct{}

// WithName labels the runs started with ctx. Unlabeled runs use the configuration prefix.
func WithName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, nameKey{}, name)
}

func nameFrom(ctx context.Context, cfg domain.Configuration) string {
	if name, ok := ctx.Value(nameKey{}).(string); ok && name != "" {
		return name
	}
	return cfg.Prefix()
}

// Run reuses the recorded build for cfg or invokes builder.
func (o *Orchestrator) Run(ctx context.Context, cfg domain.Configuration, builder ports.Builder) (domain.Outcome, error) {
	return o.run(ctx, cfg, builder, false)
}

// Rebuild invokes builder even when a marker for the current fingerprint exists.
func (o *Orchestrator) Rebuild(
	ctx context.Context,
	cfg domain.Configuration,
	builder ports.Builder,
) (domain.Outcome, error) {
	return o.run(ctx, cfg, builder, true)
}

// Check computes the fingerprint of cfg and reports whether it is recorded.
// It never modifies the cache directory.
func (o *Orchestrator) Check(ctx context.Context, cfg domain.Configuration) (domain.Fingerprint, bool, error) {
	fp, err := o.fingerprinter.Fingerprint(ctx, cfg)
	if err != nil {
		return "", false, err
	}
	return fp, o.store.HasEntry(fp.String()), nil
}

func (o *Orchestrator) run(
	ctx context.Context,
	cfg domain.Configuration,
	builder ports.Builder,
	force bool,
) (outcome domain.Outcome, err error) {
	ctx, vertex := o.telemetry.Record(ctx, nameFrom(ctx, cfg))
	ctx = ports.ContextWithVertex(ctx, vertex)

	defer func() {
		if err != nil {
			o.enter(domain.StateFailed)
			vertex.Complete(err)
		}
	}()

	o.enter(domain.StateChecking)
	fp, err := o.fingerprinter.Fingerprint(ctx, cfg)
	if err != nil {
		return domain.Outcome{}, err
	}
	if err := o.store.EnsureReady(); err != nil {
		return domain.Outcome{}, err
	}
	hit := o.store.HasEntry(fp.String())
	o.trace(cfg, vertex, fmt.Sprintf("is valid cache? %t", hit), "fingerprint", fp)

	if hit && !force {
		o.enter(domain.StateCacheHit)
		o.enter(domain.StateDone)
		vertex.Cached()
		return domain.Outcome{Source: domain.SourceCache, Fingerprint: fp}, nil
	}

	o.enter(domain.StateCleaning)
	o.trace(cfg, vertex, "cleanup")
	purge := domain.EntryPrefix(cfg.Environment, cfg.Identity)
	if err := o.store.Cleanup(purge); err != nil {
		return domain.Outcome{}, zerr.With(errors.Join(domain.ErrCleanupFailed, err), "prefix", purge)
	}

	o.enter(domain.StateBuilding)
	var result any
	if cfg.HasEntry() {
		o.trace(cfg, vertex, "compile")
		result, err = builder.Build(ctx)
		if err != nil {
			return domain.Outcome{}, zerr.With(errors.Join(domain.ErrBuildFailed, err), "fingerprint", fp.String())
		}
	} else {
		o.trace(cfg, vertex, "nothing to compile")
	}

	o.enter(domain.StateRecording)
	if err := o.store.MarkBuilt(fp.String()); err != nil {
		return domain.Outcome{}, zerr.With(errors.Join(domain.ErrMarkBuiltFailed, err), "fingerprint", fp.String())
	}

	o.enter(domain.StateDone)
	vertex.Complete(nil)
	return domain.Outcome{Source: domain.SourceBuild, Result: result, Fingerprint: fp}, nil
}

func (o *Orchestrator) enter(state domain.State) {
	if o.observer != nil {
		o.observer(state)
	}
}

// trace logs a step of the state machine. Units with debug enabled log steps at info level.
func (o *Orchestrator) trace(cfg domain.Configuration, vertex ports.Vertex, msg string, args ...any) {
	args = append([]any{"prefix", cfg.Prefix()}, args...)
	if cfg.Debug {
		o.logger.Info(msg, args...)
		vertex.Log(domain.LogLevelInfo, msg)
		return
	}
	o.logger.Debug(msg, args...)
}
