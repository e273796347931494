package session_test

import (
	"context"
	"sync/atomic"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/core/ports/mocks"
	"go.trai.ch/featcalc/internal/engine/feature"
	"go.uber.org/mock/gomock"
)

type (
	object     = *domain.ObjectMask
	collection = *domain.ObjectCollection
)

func newObject(name string, intensities ...float64) *domain.ObjectMask {
	o := &domain.ObjectMask{Name: name}
	for i, v := range intensities {
		o.Voxels = append(o.Voxels, domain.Voxel{X: i, Intensity: v})
	}
	return o
}

// countedPart sums intensities and counts its executions.
type countedPart struct {
	calls *atomic.Int64
}

func (countedPart) Key() domain.Key {
	return domain.NewKey("test-counted-sum").Build()
}

func (p countedPart) Execute(o object) (float64, error) {
	p.calls.Add(1)
	total := 0.0
	for _, v := range o.Voxels {
		total += v.Intensity
	}
	return total, nil
}

// counted reports the intensity sum through countedPart.
type counted struct {
	feature.Base
	calls *atomic.Int64
}

func newCounted(name string, calls *atomic.Int64) *counted {
	return &counted{
		Base:  feature.Base{Kind: "counted", Label: name, Input: domain.TypeObject},
		calls: calls,
	}
}

func (f *counted) Init(feature.Initialization[object]) error {
	return nil
}

func (f *counted) Calculate(s *feature.Session[object]) (float64, error) {
	return feature.Resolve[float64](s, countedPart{calls: f.calls}).Get()
}

func (f *counted) Duplicate() feature.Feature[object] {
	return newCounted(f.Label, f.calls)
}

// newTracer returns a tracer accepting any number of spans.
func newTracer(ctrl *gomock.Controller) *mocks.MockTracer {
	span := mocks.NewMockSpan(ctrl)
	span.EXPECT().End().AnyTimes()
	span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()

	tracer := mocks.NewMockTracer(ctrl)
	tracer.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
			return ctx, span
		}).AnyTimes()
	return tracer
}
