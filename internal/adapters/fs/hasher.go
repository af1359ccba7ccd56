package fs

import (
	// Registers the SHA-256 implementation behind digest.SHA256.
	_ "crypto/sha256"
	"context"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/reuse/internal/core/domain"
	"go.trai.ch/reuse/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Fingerprinter        = (*Hasher)(nil)
	_ ports.FingerprinterFactory = (*Factory)(nil)
)

// Hasher computes fingerprints from a configuration and its watched sources.
type Hasher struct {
	enumerator ports.SourceEnumerator
}

// NewHasher creates a new Hasher.
func NewHasher(enumerator ports.SourceEnumerator) *Hasher {
	return &Hasher{enumerator: enumerator}
}

// Fingerprint digests the canonical configuration followed by the watched sources.
func (h *Hasher) Fingerprint(ctx context.Context, cfg domain.Configuration) (domain.Fingerprint, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	data, err := cfg.Canonical()
	if err != nil {
		return "", err
	}

	digester := digest.SHA256.Digester()
	hash := digester.Hash()
	_, _ = hash.Write(data)

	if len(cfg.Watch.Paths) > 0 {
		if err := h.enumerator.WriteSources(ctx, hash, cfg.Watch.Paths, cfg.Watch.Method()); err != nil {
			return "", zerr.With(zerr.Wrap(err, domain.ErrFingerprintFailed.Error()), "prefix", cfg.Prefix())
		}
	}

	return domain.NewFingerprint(cfg.Environment, cfg.Identity, digester.Digest().Encoded()), nil
}

// Factory creates hashers whose enumeration skips a cache directory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// New returns a fingerprinter that never enumerates cacheDir.
func (f *Factory) New(cacheDir string) ports.Fingerprinter {
	return NewHasher(NewWalker(cacheDir, f.logger))
}
