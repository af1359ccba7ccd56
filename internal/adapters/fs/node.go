package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reuse/internal/adapters/logger"
	"go.trai.ch/reuse/internal/core/ports"
)

// FactoryNodeID is the unique identifier for the fingerprinter factory Graft node.
const FactoryNodeID graft.ID = "adapter.fs.fingerprinter_factory"

func init() {
	graft.Register(graft.Node[ports.FingerprinterFactory]{
		ID:        FactoryNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.FingerprinterFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log), nil
		},
	})
}
