package telemetry

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/featcalc/internal/adapters/logger"
	"go.trai.ch/featcalc/internal/core/ports"
)

const (
	// TracerNodeID is the unique identifier for the tracer Graft node.
	TracerNodeID graft.ID = "adapter.telemetry"

	// TraceEnv disables span recording when set to "off".
	TraceEnv = "FEATCALC_TRACE"
)

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return FromEnv(log), nil
		},
	})
}

// FromEnv returns the tracer selected by TraceEnv.
func FromEnv(log ports.Logger) ports.Tracer {
	if os.Getenv(TraceEnv) == "off" {
		return NewNoOpTracer()
	}
	return NewOTelTracerWithProvider(NewProvider(log), "featcalc")
}
