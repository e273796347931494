// Package calc deduplicates intermediate calculations shared between features.
//
// A Part is an immutable description of a calculation on an input. Parts that
// are structurally equal (same Go type, equal Key) are resolved by a Resolver to
// one shared ResolvedPart, so the calculation runs at most once per input no
// matter how many features ask for it.
package calc

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/zerr"
)

// Part is a calculation producing an S from an input T.
// Key must encode every parameter that influences the result.
type Part[S any, T any] interface {
	Key() domain.Key
	Execute(input T) (S, error)
}

// ResolvedPart memoizes the result of a Part for the input its resolver is bound to.
type ResolvedPart[S any, T any] struct {
	part       Part[S, T]
	source     func() (T, error)
	value      S
	cached     bool
	executions int
}

// Get returns the memoized value, executing the part on first use.
// Failures are returned to the caller and not memoized.
func (p *ResolvedPart[S, T]) Get() (S, error) {
	if p.cached {
		return p.value, nil
	}

	var zero S
	input, err := p.source()
	if err != nil {
		return zero, err
	}

	p.executions++
	v, err := p.part.Execute(input)
	if err != nil {
		return zero, zerr.With(zerr.Wrap(err, "calculation part failed"), "part", p.part.Key().String())
	}

	p.value = v
	p.cached = true
	return v, nil
}

// Invalidate drops the memoized value. The part stays registered.
func (p *ResolvedPart[S, T]) Invalidate() {
	var zero S
	p.value = zero
	p.cached = false
}

// Cached reports whether a value is memoized.
func (p *ResolvedPart[S, T]) Cached() bool {
	return p.cached
}

// Executions returns how often the part was executed since it was registered.
func (p *ResolvedPart[S, T]) Executions() int {
	return p.executions
}

// Part returns the part this entry was registered for.
func (p *ResolvedPart[S, T]) Part() Part[S, T] {
	return p.part
}
