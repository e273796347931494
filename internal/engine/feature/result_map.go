package feature

import (
	"reflect"

	"go.trai.ch/featcalc/internal/core/domain"
)

// ResultMap stores the results of one sweep of features over the bound input.
// Results are keyed by feature identity. Custom names only find the seeded
// feature, never a stored result, so two features sharing a name keep
// separate slots.
type ResultMap[T domain.Input] struct {
	results  map[Feature[T]]float64
	features map[string]Feature[T]
}

// NewResultMap creates an empty map.
func NewResultMap[T domain.Input]() *ResultMap[T] {
	return &ResultMap[T]{
		results:  make(map[Feature[T]]float64),
		features: make(map[string]Feature[T]),
	}
}

// Seed registers f for lookup by custom name. The first feature seeded under a name wins.
func (m *ResultMap[T]) Seed(f Feature[T]) {
	if _, exists := m.features[f.CustomName()]; !exists {
		m.features[f.CustomName()] = f
	}
}

// Feature returns the feature seeded under name.
func (m *ResultMap[T]) Feature(name string) (Feature[T], bool) {
	f, ok := m.features[name]
	return f, ok
}

// Lookup returns the stored result of f itself.
func (m *ResultMap[T]) Lookup(f Feature[T]) (float64, bool) {
	if !identifiable(f) {
		return 0, false
	}
	v, ok := m.results[f]
	return v, ok
}

// Store records the result of f. Features that cannot be map keys are not stored.
func (m *ResultMap[T]) Store(f Feature[T], v float64) {
	if identifiable(f) {
		m.results[f] = v
	}
}

// Len returns the number of stored results.
func (m *ResultMap[T]) Len() int {
	return len(m.results)
}

// Clear drops every stored result. Seeded features are kept.
func (m *ResultMap[T]) Clear() {
	clear(m.results)
}

// identifiable reports whether f can be used as a map key without panicking.
func identifiable(f any) bool {
	return f != nil && reflect.TypeOf(f).Comparable()
}
