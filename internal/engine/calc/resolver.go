package calc

import (
	"reflect"

	"go.trai.ch/featcalc/internal/core/domain"
)

type invalidator interface {
	Invalidate()
}

// entry is one registered part. Identity is the dynamic type of the part plus its key.
type entry struct {
	typ  reflect.Type
	key  domain.Key
	item invalidator
}

// registry buckets entries by key hash.
type registry map[uint64][]entry

func (r registry) lookup(typ reflect.Type, key domain.Key) (invalidator, bool) {
	for _, e := range r[key.Hash()] {
		if e.typ == typ && e.key.Equal(key) {
			return e.item, true
		}
	}
	return nil, false
}

func (r registry) add(typ reflect.Type, key domain.Key, item invalidator) {
	r[key.Hash()] = append(r[key.Hash()], entry{typ: typ, key: key, item: item})
}

func (r registry) invalidate() {
	for _, bucket := range r {
		for _, e := range bucket {
			e.item.Invalidate()
		}
	}
}

func (r registry) len() int {
	n := 0
	for _, bucket := range r {
		n += len(bucket)
	}
	return n
}

// Resolver keeps at most one ResolvedPart per distinct part for the lifetime of a cache scope.
// It is not safe for concurrent use.
type Resolver[T any] struct {
	source func() (T, error)
	parts  registry
	maps   registry
}

// NewResolver creates a Resolver whose parts execute against the input returned by source.
func NewResolver[T any](source func() (T, error)) *Resolver[T] {
	return &Resolver[T]{
		source: source,
		parts:  make(registry),
		maps:   make(registry),
	}
}

// Resolve returns the registered entry for a part structurally equal to part,
// registering part if none exists. The part is not executed.
func Resolve[S any, T any](r *Resolver[T], part Part[S, T]) *ResolvedPart[S, T] {
	typ := reflect.TypeOf(part)
	key := part.Key()
	if item, ok := r.parts.lookup(typ, key); ok {
		return item.(*ResolvedPart[S, T])
	}

	resolved := &ResolvedPart[S, T]{part: part, source: r.source}
	r.parts.add(typ, key, resolved)
	return resolved
}

// ResolveMap returns the registered entry for a part map structurally equal to m,
// registering m if none exists.
func ResolveMap[S any, T any, K comparable](r *Resolver[T], m PartMap[S, T, K]) *ResolvedPartMap[S, T, K] {
	typ := reflect.TypeOf(m)
	key := m.Key()
	if item, ok := r.maps.lookup(typ, key); ok {
		return item.(*ResolvedPartMap[S, T, K])
	}

	resolved := newResolvedPartMap(m, r.source)
	r.maps.add(typ, key, resolved)
	return resolved
}

// Invalidate drops the memoized values of every registered entry.
// Entries stay registered, so resolving again yields the same wrappers.
func (r *Resolver[T]) Invalidate() {
	r.parts.invalidate()
	r.maps.invalidate()
}

// Len returns the number of registered parts.
func (r *Resolver[T]) Len() int {
	return r.parts.len()
}

// MapLen returns the number of registered part maps.
func (r *Resolver[T]) MapLen() int {
	return r.maps.len()
}
