package reporter_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/featcalc/internal/adapters/reporter"
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func TestReporter_RecordError(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	cause := domain.NewCalculationError("mean", domain.ErrEmptyObject)
	log.EXPECT().Error(gomock.Any()).Do(func(err error) {
		require.ErrorIs(t, err, domain.ErrEmptyObject)
		zErr, ok := err.(*zerr.Error)
		require.True(t, ok, "error should be of type *zerr.Error")
		assert.Equal(t, "mean", zErr.Metadata()["source"])
	})

	r := reporter.New(log)
	r.RecordError("mean", cause)
	r.RecordError("ignored", nil)

	entries := r.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "mean", entries[0].Source)
	require.ErrorIs(t, r.Err(), domain.ErrEmptyObject)
}

func TestReporter_RecordWarning(t *testing.T) {
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("dataset: no rows")

	r := reporter.New(log)
	r.RecordWarning("dataset", "no rows")

	assert.Equal(t, 1, r.Warnings())
	require.NoError(t, r.Err())
}

func TestReporter_Concurrent(t *testing.T) {
	r := reporter.New(nil)
	boom := errors.New("boom")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				r.RecordError("row", boom)
			}
		}()
	}
	wg.Wait()

	assert.Len(t, r.Entries(), 800)
	require.ErrorIs(t, r.Err(), boom)
}
