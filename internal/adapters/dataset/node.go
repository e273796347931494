package dataset

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/featcalc/internal/adapters/logger"
	"go.trai.ch/featcalc/internal/core/ports"
)

// NodeID is the unique identifier for the dataset loader Graft node.
const NodeID graft.ID = "adapter.input_loader"

func init() {
	graft.Register(graft.Node[ports.InputLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.InputLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
