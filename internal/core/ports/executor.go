package ports

import (
	"context"
	"io"

	"go.trai.ch/reuse/internal/core/domain"
)

// Executor runs the command of a unit.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the unit's command, streaming its output to stdout and stderr.
	// It returns an error if the command cannot be started or exits unsuccessfully.
	Execute(ctx context.Context, unit domain.Unit, stdout, stderr io.Writer) (domain.CommandResult, error)
}
