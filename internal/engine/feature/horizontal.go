package feature

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/engine/calc"
	"go.trai.ch/zerr"
)

// horizontalCache shares feature results across one sweep of features over the
// same input, so a feature referenced by several others is calculated once.
type horizontalCache[T domain.Input] struct {
	delegate Cache[T]
	results  *ResultMap[T]
}

// NewHorizontalCache wraps delegate. The named and shared features are seeded
// for lookup by name.
func NewHorizontalCache[T domain.Input](delegate Cache[T], named List[T], shared *SharedSet[T]) Cache[T] {
	results := NewResultMap[T]()
	for _, f := range named {
		results.Seed(f)
	}
	for _, f := range shared.List() {
		results.Seed(f)
	}
	return &horizontalCache[T]{delegate: delegate, results: results}
}

func (h *horizontalCache[T]) Init(params domain.InitParams, logger ports.Logger) error {
	return h.delegate.Init(params, logger)
}

func (h *horizontalCache[T]) Invalidate() {
	h.results.Clear()
	h.delegate.Invalidate()
}

func (h *horizontalCache[T]) InvalidateExcept(keep ...domain.ChildCacheName) {
	h.results.Clear()
	h.delegate.InvalidateExcept(keep...)
}

func (h *horizontalCache[T]) State() State {
	return h.delegate.State()
}

func (h *horizontalCache[T]) InputType() domain.InputType {
	return h.delegate.InputType()
}

func (h *horizontalCache[T]) Children() *Children {
	return h.delegate.Children()
}

func (h *horizontalCache[T]) Calculator() Calculator[T] {
	return h
}

func (h *horizontalCache[T]) bind(input T) {
	if current, ok := h.delegate.bound(); ok && !sameInput(current, input) {
		h.results.Clear()
	}
	h.delegate.bind(input)
}

func (h *horizontalCache[T]) bound() (T, bool) {
	return h.delegate.bound()
}

func (h *horizontalCache[T]) Calc(f Feature[T], s *Session[T]) (float64, error) {
	if v, ok := h.results.Lookup(f); ok {
		return v, nil
	}

	v, err := h.delegate.Calculator().Calc(f, s)
	if err != nil {
		return 0, err
	}
	h.results.Store(f, v)
	return v, nil
}

func (h *horizontalCache[T]) CalcByName(name string, s *Session[T]) (float64, error) {
	f, ok := h.results.Feature(name)
	if !ok {
		return 0, zerr.With(zerr.Wrap(domain.ErrFeatureNotFound, "failed to calculate feature by name"), "feature", name)
	}
	return h.Calc(f, s)
}

func (h *horizontalCache[T]) Resolver() *calc.Resolver[T] {
	return h.delegate.Calculator().Resolver()
}
