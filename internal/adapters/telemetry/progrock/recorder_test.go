package progrock_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vprogrock "github.com/vito/progrock"
	"go.trai.ch/featcalc/internal/adapters/telemetry/progrock"
	"go.trai.ch/featcalc/internal/core/ports"
)

// countingWriter counts the status updates it receives.
type countingWriter struct {
	mu      sync.Mutex
	updates int
	closed  bool
}

func (w *countingWriter) WriteStatus(*vprogrock.StatusUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.updates++
	return nil
}

func (w *countingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestNew(t *testing.T) {
	assert.NotNil(t, progrock.New())
}

func TestRecorder_Record(t *testing.T) {
	w := &countingWriter{}
	recorder := progrock.NewRecorder(w)

	ctx, vertex := recorder.Record(context.Background(), "load dataset")
	fromCtx, ok := ports.VertexFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, vertex, fromCtx)

	_, err := vertex.Stdout().Write([]byte("4 rows\n"))
	require.NoError(t, err)
	vertex.Complete(nil)

	_, internal := recorder.Record(context.Background(), "initialize features", ports.Internal())
	internal.Complete(errors.New("failed"))

	require.NoError(t, recorder.Close())
	assert.Positive(t, w.updates)
	assert.True(t, w.closed)
}
