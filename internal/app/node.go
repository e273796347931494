package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/featcalc/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/featcalc/internal/adapters/dataset"   //nolint:depguard // Wired in app layer
	"go.trai.ch/featcalc/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/featcalc/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/featcalc/internal/adapters/telemetry/progrock"
	"go.trai.ch/featcalc/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			dataset.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			progrock.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	inputs, err := graft.Dep[ports.InputLoader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, inputs, log, tracer, telemetry), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{App: app, Logger: log, Telemetry: telemetry}, nil
}
