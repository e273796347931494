package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/featcalc/internal/core/ports"
)

// NodeID is the unique identifier for the progress recorder node.
const NodeID graft.ID = "adapter.progress"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Telemetry, error) {
			return New(), nil
		},
	})
}
