package orchestrator

import "go.trai.ch/reuse/internal/core/ports"

// Factory builds orchestrators once the cache directory of a project is known.
type Factory struct {
	fingerprinters ports.FingerprinterFactory
	stores         ports.StoreFactory
	logger         ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(fingerprinters ports.FingerprinterFactory, stores ports.StoreFactory, logger ports.Logger) *Factory {
	return &Factory{
		fingerprinters: fingerprinters,
		stores:         stores,
		logger:         logger,
	}
}

// For returns an orchestrator over the markers in cacheDir along with the store it uses.
func (f *Factory) For(cacheDir string, telemetry ports.Telemetry, opts ...Option) (*Orchestrator, ports.CacheStore) {
	store := f.stores.Open(cacheDir)
	return New(f.fingerprinters.New(store.Dir()), store, f.logger, telemetry, opts...), store
}
