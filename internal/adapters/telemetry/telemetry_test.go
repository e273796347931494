package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/featcalc/internal/adapters/telemetry"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestInterfaceSatisfaction(_ *testing.T) {
	var _ ports.Tracer = (*telemetry.OTelTracer)(nil)
	var _ ports.Span = (*telemetry.OTelSpan)(nil)
	var _ sdktrace.SpanProcessor = (*telemetry.LogBridge)(nil)
}

func newRecordedTracer() (*telemetry.OTelTracer, *tracetest.SpanRecorder) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return telemetry.NewOTelTracerWithProvider(tp, "test"), sr
}

func TestOTelTracer_Attributes(t *testing.T) {
	tracer, sr := newRecordedTracer()

	ctx, span := tracer.Start(context.Background(), "calculate table",
		ports.WithAttribute("rows", 3),
		ports.WithAttribute("input", "object"),
	)
	tracer.EmitPlan(ctx, []string{"sum", "mean"})
	span.SetAttribute("valid", true)
	span.SetAttribute("ratio", 0.5)
	span.SetAttribute("other", struct{ A int }{A: 1})
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "calculate table", ended[0].Name())

	attrs := ended[0].Attributes()
	assert.Contains(t, attrs, attribute.Int("rows", 3))
	assert.Contains(t, attrs, attribute.String("input", "object"))
	assert.Contains(t, attrs, attribute.Bool("valid", true))
	assert.Contains(t, attrs, attribute.Float64("ratio", 0.5))
	assert.Contains(t, attrs, attribute.String("other", "{1}"))

	events := ended[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "plan_emitted", events[0].Name)
	assert.Contains(t, events[0].Attributes, attribute.StringSlice("features", []string{"sum", "mean"}))
}

func TestOTelTracer_RecordError(t *testing.T) {
	tracer, sr := newRecordedTracer()

	_, span := tracer.Start(context.Background(), "calculate row")
	span.RecordError(nil)
	span.RecordError(errors.New("empty object"))
	span.End()

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "empty object", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestOTelSpan_Write(t *testing.T) {
	tracer, sr := newRecordedTracer()

	_, span := tracer.Start(context.Background(), "row")
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	span.End()

	events := sr.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Contains(t, events[0].Attributes, attribute.String("message", "test log"))
}

func TestLogBridge(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	var messages []string
	log.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		messages = append(messages, msg)
	}).Times(2)

	tracer := telemetry.NewOTelTracerWithProvider(telemetry.NewProvider(log), "test")
	_, ok := tracer.Start(context.Background(), "ok")
	ok.End()
	_, failed := tracer.Start(context.Background(), "failed")
	failed.RecordError(errors.New("boom"))
	failed.End()

	require.Len(t, messages, 2)
	assert.True(t, strings.HasPrefix(messages[0], "ok finished in "))
	assert.True(t, strings.HasSuffix(messages[1], " with error: boom"))
}

func TestNoOpTracer_Start(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	ctx := context.Background()
	got, span := tracer.Start(ctx, "test-span", ports.WithAttribute("k", 1))
	assert.Equal(t, ctx, got)
	tracer.EmitPlan(ctx, []string{"a"})

	span.SetAttribute("key", "value")
	span.RecordError(errors.New("ignored"))
	n, err := span.Write([]byte("test log"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)

	span.End()
}

func TestFromEnv(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	t.Setenv(telemetry.TraceEnv, "off")
	assert.IsType(t, telemetry.NoOpTracer{}, telemetry.FromEnv(log))

	t.Setenv(telemetry.TraceEnv, "")
	assert.IsType(t, &telemetry.OTelTracer{}, telemetry.FromEnv(log))
}
