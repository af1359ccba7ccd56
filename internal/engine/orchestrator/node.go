package orchestrator

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/reuse/internal/adapters/cas"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/reuse/internal/adapters/fs"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/reuse/internal/adapters/logger" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/reuse/internal/core/ports"
)

// NodeID is the unique identifier for the orchestrator factory Graft node.
const NodeID graft.ID = "engine.orchestrator_factory"

func init() {
	graft.Register(graft.Node[*Factory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.FactoryNodeID,
			cas.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Factory, error) {
			fingerprinters, err := graft.Dep[ports.FingerprinterFactory](ctx)
			if err != nil {
				return nil, err
			}

			stores, err := graft.Dep[ports.StoreFactory](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewFactory(fingerprinters, stores, log), nil
		},
	})
}
