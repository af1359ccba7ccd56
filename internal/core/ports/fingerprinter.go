package ports

import (
	"context"

	"go.trai.ch/reuse/internal/core/domain"
)

// Fingerprinter computes the identifier that decides cache reuse.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprinter.go -destination=mocks/mock_fingerprinter.go -package=mocks
type Fingerprinter interface {
	// Fingerprint folds the serialized configuration and its watched sources into one identifier.
	// Two calls with an identical configuration and unchanged sources return the same value.
	Fingerprint(ctx context.Context, cfg domain.Configuration) (domain.Fingerprint, error)
}
