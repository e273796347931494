package calc

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/zerr"
)

// DefaultMapCapacity is the key limit of a ResolvedPartMap whose PartMap reports no capacity.
const DefaultMapCapacity = 64

// PartMap is a calculation parameterized by a key, e.g. a percentile.
// Results are memoized per key. Capacity declares how many distinct keys may be
// requested while one input is bound.
type PartMap[S any, T any, K comparable] interface {
	Key() domain.Key
	Capacity() int
	Execute(input T, key K) (S, error)
}

// ResolvedPartMap memoizes the results of a PartMap per key for the bound input.
// Values are never evicted: a key beyond the capacity fails instead.
type ResolvedPartMap[S any, T any, K comparable] struct {
	m          PartMap[S, T, K]
	source     func() (T, error)
	capacity   int
	values     *simplelru.LRU[K, S]
	executions int
}

func newResolvedPartMap[S any, T any, K comparable](m PartMap[S, T, K], source func() (T, error)) *ResolvedPartMap[S, T, K] {
	size := m.Capacity()
	if size <= 0 {
		size = DefaultMapCapacity
	}
	values, _ := simplelru.NewLRU[K, S](size, nil) // Only fails for non-positive sizes.
	return &ResolvedPartMap[S, T, K]{m: m, source: source, capacity: size, values: values}
}

// Get returns the memoized value for key, executing the map on a miss.
func (p *ResolvedPartMap[S, T, K]) Get(key K) (S, error) {
	if v, ok := p.values.Get(key); ok {
		return v, nil
	}

	var zero S
	if p.values.Len() >= p.capacity {
		wrapped := zerr.With(zerr.Wrap(domain.ErrPartMapFull, "calculation part rejected key"), "part", p.m.Key().String())
		return zero, zerr.With(zerr.With(wrapped, "key", fmt.Sprint(key)), "capacity", p.capacity)
	}

	input, err := p.source()
	if err != nil {
		return zero, err
	}

	p.executions++
	v, err := p.m.Execute(input, key)
	if err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "calculation part failed"), "part", p.m.Key().String())
		return zero, zerr.With(wrapped, "key", fmt.Sprint(key))
	}

	p.values.Add(key, v)
	return v, nil
}

// Invalidate drops every memoized value.
func (p *ResolvedPartMap[S, T, K]) Invalidate() {
	p.values.Purge()
}

// Len returns the number of memoized keys.
func (p *ResolvedPartMap[S, T, K]) Len() int {
	return p.values.Len()
}

// Capacity returns the number of distinct keys the map accepts while one input is bound.
func (p *ResolvedPartMap[S, T, K]) Capacity() int {
	return p.capacity
}

// Executions returns how often the map was executed since it was registered.
func (p *ResolvedPartMap[S, T, K]) Executions() int {
	return p.executions
}
