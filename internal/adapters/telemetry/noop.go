package telemetry

import (
	"context"

	"go.trai.ch/featcalc/internal/core/ports"
)

var (
	_ ports.Tracer = NoOpTracer{}
	_ ports.Span   = NoOpSpan{}
)

// NoOpTracer discards spans and plans. It is used where tracing is not wanted, e.g. in tests.
type NoOpTracer struct{}

// NewNoOpTracer returns a NoOpTracer.
func NewNoOpTracer() NoOpTracer {
	return NoOpTracer{}
}

// Start returns ctx unchanged and a span that records nothing.
func (NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, NoOpSpan{}
}

// EmitPlan implements ports.Tracer.
func (NoOpTracer) EmitPlan(context.Context, []string) {}

// NoOpSpan is the span returned by NoOpTracer.
type NoOpSpan struct{}

func (NoOpSpan) End()                     {}
func (NoOpSpan) RecordError(error)        {}
func (NoOpSpan) SetAttribute(string, any) {}

// Write discards p.
func (NoOpSpan) Write(p []byte) (int, error) {
	return len(p), nil
}
