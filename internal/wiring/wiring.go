// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Adapters.
	_ "go.trai.ch/featcalc/internal/adapters/config"
	_ "go.trai.ch/featcalc/internal/adapters/dataset"
	_ "go.trai.ch/featcalc/internal/adapters/logger"
	_ "go.trai.ch/featcalc/internal/adapters/telemetry"
	_ "go.trai.ch/featcalc/internal/adapters/telemetry/progrock"
	// Application.
	_ "go.trai.ch/featcalc/internal/app"
)
