package orchestrator_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/reuse/internal/core/ports/mocks"
	"go.trai.ch/reuse/internal/engine/orchestrator"
	"go.uber.org/mock/gomock"
)

const testFingerprint domain.Fingerprint = "development_1_0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

var errBoom = errors.New("boom")

type fixture struct {
	fingerprinter *mocks.MockFingerprinter
	store         *mocks.MockCacheStore
	logger        *mocks.MockLogger
	telemetry     *mocks.MockTelemetry
	vertex        *mocks.MockVertex
	builder       *mocks.MockBuilder

	mu     sync.Mutex
	states []domain.State

	orch *orchestrator.Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		fingerprinter: mocks.NewMockFingerprinter(ctrl),
		store:         mocks.NewMockCacheStore(ctrl),
		logger:        mocks.NewMockLogger(ctrl),
		telemetry:     mocks.NewMockTelemetry(ctrl),
		vertex:        mocks.NewMockVertex(ctrl),
		builder:       mocks.NewMockBuilder(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	f.telemetry.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, f.vertex
		}).AnyTimes()

	f.orch = orchestrator.New(f.fingerprinter, f.store, f.logger, f.telemetry,
		orchestrator.WithObserver(func(s domain.State) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.states = append(f.states, s)
		}))
	return f
}

func (f *fixture) recorded() []domain.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.State(nil), f.states...)
}

func (f *fixture) expectCheck(hit bool) {
	gomock.InOrder(
		f.fingerprinter.EXPECT().Fingerprint(gomock.Any(), gomock.Any()).Return(testFingerprint, nil),
		f.store.EXPECT().EnsureReady().Return(nil),
		f.store.EXPECT().HasEntry(testFingerprint.String()).Return(hit),
	)
}

func testConfig() domain.Configuration {
	return domain.Configuration{
		Environment: "development",
		Identity:    domain.IntIdentity(1),
		Watch:       domain.WatchPaths("./src"),
		Entry:       map[string]any{"vendor": []string{"react"}},
	}
}

func TestOrchestrator_Run_CacheHit(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(true)
	f.vertex.EXPECT().Cached()

	outcome, err := f.orch.Run(context.Background(), testConfig(), f.builder)
	require.NoError(t, err)

	assert.True(t, outcome.Cached())
	assert.Equal(t, testFingerprint, outcome.Fingerprint)
	assert.Nil(t, outcome.Result)
	assert.Equal(t, []domain.State{domain.StateChecking, domain.StateCacheHit, domain.StateDone}, f.recorded())
}

func TestOrchestrator_Run_CacheMiss(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(false)
	gomock.InOrder(
		f.store.EXPECT().Cleanup("development_1_").Return(nil),
		f.builder.EXPECT().Build(gomock.Any()).Return("artifact", nil),
		f.store.EXPECT().MarkBuilt(testFingerprint.String()).Return(nil),
		f.vertex.EXPECT().Complete(nil),
	)

	outcome, err := f.orch.Run(context.Background(), testConfig(), f.builder)
	require.NoError(t, err)

	assert.Equal(t, domain.SourceBuild, outcome.Source)
	assert.Equal(t, "artifact", outcome.Result)
	assert.Equal(t, []domain.State{
		domain.StateChecking,
		domain.StateCleaning,
		domain.StateBuilding,
		domain.StateRecording,
		domain.StateDone,
	}, f.recorded())
}

func TestOrchestrator_Run_BuilderFailure(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(false)
	f.store.EXPECT().Cleanup("development_1_").Return(nil)
	f.builder.EXPECT().Build(gomock.Any()).Return(nil, errBoom)
	f.store.EXPECT().MarkBuilt(gomock.Any()).Times(0)
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))

	_, err := f.orch.Run(context.Background(), testConfig(), f.builder)
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, domain.StateFailed, f.recorded()[len(f.recorded())-1])
}

func TestOrchestrator_Run_CleanupFailure(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(false)
	f.store.EXPECT().Cleanup("development_1_").Return(errBoom)
	f.builder.EXPECT().Build(gomock.Any()).Times(0)
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))

	_, err := f.orch.Run(context.Background(), testConfig(), f.builder)
	require.Error(t, err)

	assert.ErrorIs(t, err, domain.ErrCleanupFailed)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, []domain.State{domain.StateChecking, domain.StateCleaning, domain.StateFailed}, f.recorded())
}

func TestOrchestrator_Run_MarkBuiltFailure(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(false)
	f.store.EXPECT().Cleanup(gomock.Any()).Return(nil)
	f.builder.EXPECT().Build(gomock.Any()).Return("artifact", nil)
	f.store.EXPECT().MarkBuilt(testFingerprint.String()).Return(errBoom)
	f.vertex.EXPECT().Complete(gomock.Not(gomock.Nil()))

	_, err := f.orch.Run(context.Background(), testConfig(), f.builder)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMarkBuiltFailed)
}

func TestOrchestrator_Run_EmptyEntrySkipsBuilder(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(false)
	f.store.EXPECT().Cleanup(gomock.Any()).Return(nil)
	f.builder.EXPECT().Build(gomock.Any()).Times(0)
	f.store.EXPECT().MarkBuilt(testFingerprint.String()).Return(nil)
	f.vertex.EXPECT().Complete(nil)

	cfg := testConfig()
	cfg.Entry = map[string]any{}

	outcome, err := f.orch.Run(context.Background(), cfg, f.builder)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceBuild, outcome.Source)
	assert.Nil(t, outcome.Result)
}

func TestOrchestrator_Run_FingerprintFailure(t *testing.T) {
	f := newFixture(t)
	f.fingerprinter.EXPECT().Fingerprint(gomock.Any(), gomock.Any()).Return(domain.Fingerprint(""), domain.ErrInvalidConfiguration)
	f.store.EXPECT().EnsureReady().Times(0)
	f.vertex.EXPECT().Complete(domain.ErrInvalidConfiguration)

	_, err := f.orch.Run(context.Background(), testConfig(), f.builder)
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
	assert.Equal(t, []domain.State{domain.StateChecking, domain.StateFailed}, f.recorded())
}

func TestOrchestrator_Run_EnsureReadyFailure(t *testing.T) {
	f := newFixture(t)
	f.fingerprinter.EXPECT().Fingerprint(gomock.Any(), gomock.Any()).Return(testFingerprint, nil)
	f.store.EXPECT().EnsureReady().Return(errBoom)
	f.store.EXPECT().HasEntry(gomock.Any()).Times(0)
	f.vertex.EXPECT().Complete(errBoom)

	_, err := f.orch.Run(context.Background(), testConfig(), f.builder)
	require.ErrorIs(t, err, errBoom)
}

func TestOrchestrator_Rebuild_IgnoresMarker(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(true)
	f.store.EXPECT().Cleanup("development_1_").Return(nil)
	f.builder.EXPECT().Build(gomock.Any()).Return("fresh", nil)
	f.store.EXPECT().MarkBuilt(testFingerprint.String()).Return(nil)
	f.vertex.EXPECT().Complete(nil)

	outcome, err := f.orch.Rebuild(context.Background(), testConfig(), f.builder)
	require.NoError(t, err)
	assert.Equal(t, "fresh", outcome.Result)
}

func TestOrchestrator_Check_IsReadOnly(t *testing.T) {
	f := newFixture(t)
	f.fingerprinter.EXPECT().Fingerprint(gomock.Any(), gomock.Any()).Return(testFingerprint, nil)
	f.store.EXPECT().HasEntry(testFingerprint.String()).Return(true)

	fp, hit, err := f.orch.Check(context.Background(), testConfig())
	require.NoError(t, err)
	assert.Equal(t, testFingerprint, fp)
	assert.True(t, hit)
	assert.Empty(t, f.recorded())
}

func TestOrchestrator_Run_DebugLogsAtInfo(t *testing.T) {
	f := newFixture(t)
	f.expectCheck(false)
	f.store.EXPECT().Cleanup(gomock.Any()).Return(nil)
	f.builder.EXPECT().Build(gomock.Any()).Return(nil, nil)
	f.store.EXPECT().MarkBuilt(gomock.Any()).Return(nil)
	f.vertex.EXPECT().Complete(nil)

	gomock.InOrder(
		f.logger.EXPECT().Info("is valid cache? false", gomock.Any()),
		f.logger.EXPECT().Info("cleanup", gomock.Any()),
		f.logger.EXPECT().Info("compile", gomock.Any()),
	)
	f.vertex.EXPECT().Log(domain.LogLevelInfo, gomock.Any()).Times(3)

	cfg := testConfig()
	cfg.Debug = true

	_, err := f.orch.Run(context.Background(), cfg, f.builder)
	require.NoError(t, err)
}

func TestOrchestrator_Run_VertexNameAndContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	fingerprinter := mocks.NewMockFingerprinter(ctrl)
	store := mocks.NewMockCacheStore(ctrl)
	log := mocks.NewMockLogger(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()
	telemetry.EXPECT().Record(gomock.Any(), "vendor").
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.Vertex) {
			return ctx, vertex
		})
	store.EXPECT().EnsureReady().Return(nil)
	fingerprinter.EXPECT().Fingerprint(gomock.Any(), gomock.Any()).Return(testFingerprint, nil)
	store.EXPECT().HasEntry(gomock.Any()).Return(false)
	store.EXPECT().Cleanup(gomock.Any()).Return(nil)
	store.EXPECT().MarkBuilt(gomock.Any()).Return(nil)
	vertex.EXPECT().Complete(nil)

	builder := ports.BuilderFunc(func(ctx context.Context) (any, error) {
		got, ok := ports.VertexFromContext(ctx)
		require.True(t, ok)
		assert.Same(t, vertex, got)
		return nil, nil
	})

	orch := orchestrator.New(fingerprinter, store, log, telemetry)
	ctx := orchestrator.WithName(context.Background(), "vendor")
	_, err := orch.Run(ctx, testConfig(), builder)
	require.NoError(t, err)
}
