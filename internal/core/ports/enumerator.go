// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"

	"go.trai.ch/reuse/internal/core/domain"
)

// SourceEnumerator summarizes every leaf input under a set of watch paths.
//
//go:generate go run go.uber.org/mock/mockgen -source=enumerator.go -destination=mocks/mock_enumerator.go -package=mocks
type SourceEnumerator interface {
	// WriteSources streams the combined contribution of every leaf input under paths to w,
	// in traversal order. Unreadable or missing paths contribute nothing.
	WriteSources(ctx context.Context, w io.Writer, paths []string, method domain.SourceMethod) error
}
