package ports

import "context"

// Builder is the opaque build step invoked on a cache miss.
//
//go:generate go run go.uber.org/mock/mockgen -source=builder.go -destination=mocks/mock_builder.go -package=mocks
type Builder interface {
	// Build runs the build. The result is handed to the caller untouched.
	// A non-nil error marks the build as failed and no marker is recorded.
	Build(ctx context.Context) (any, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func(ctx context.Context) (any, error)

// Build calls f(ctx).
func (f BuilderFunc) Build(ctx context.Context) (any, error) {
	return f(ctx)
}
