package feature

import (
	"reflect"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/engine/calc"
)

// Session is the input a feature calculates on: the bound input together with
// the cache that memoizes calculations for it.
type Session[T domain.Input] struct {
	input   T
	cache   Cache[T]
	creator *Creator
	finder  ChildCacheFinder
}

// SessionOption configures a Session.
type SessionOption func(*sessionConfig)

type sessionConfig struct {
	finder ChildCacheFinder
}

// WithFinder sets how child caches are obtained. The default stores every child.
func WithFinder(finder ChildCacheFinder) SessionOption {
	return func(c *sessionConfig) {
		c.finder = finder
	}
}

// NewSession binds input to cache. Child caches are built with creator.
func NewSession[T domain.Input](input T, cache Cache[T], creator *Creator, opts ...SessionOption) *Session[T] {
	cfg := sessionConfig{finder: DefaultChildCacheFinder{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	cache.bind(input)
	return &Session[T]{
		input:   input,
		cache:   cache,
		creator: creator,
		finder:  cfg.finder,
	}
}

// Get returns the bound input.
func (s *Session[T]) Get() T {
	return s.input
}

// Cache returns the cache of the session.
func (s *Session[T]) Cache() Cache[T] {
	return s.cache
}

// Creator returns the creator child caches are built with.
func (s *Session[T]) Creator() *Creator {
	return s.creator
}

// Resolver returns the calculation part resolver of the session's cache.
func (s *Session[T]) Resolver() *calc.Resolver[T] {
	return s.cache.Calculator().Resolver()
}

// Calc calculates f on the bound input.
func (s *Session[T]) Calc(f Feature[T]) (float64, error) {
	return s.cache.Calculator().Calc(f, s)
}

// CalcByName calculates the feature known to the cache under name.
func (s *Session[T]) CalcByName(name string) (float64, error) {
	return s.cache.Calculator().CalcByName(name, s)
}

// CalcList calculates every feature of list, returning the first failure.
func (s *Session[T]) CalcList(list List[T]) (domain.ResultsVector, error) {
	out := domain.NewResultsVector(len(list))
	for i, f := range list {
		v, err := s.Calc(f)
		if err != nil {
			return domain.ResultsVector{}, err
		}
		out.Set(i, v)
	}
	return out, nil
}

// CalcListSuppressErrors calculates every feature of list. A failing feature
// leaves its slot invalid and is reported once; the others are still calculated.
func (s *Session[T]) CalcListSuppressErrors(list List[T], reporter ports.ErrorReporter) domain.ResultsVector {
	out := domain.NewResultsVector(len(list))
	for i, f := range list {
		v, err := s.Calc(f)
		if err != nil {
			out.SetError(i, err)
			if reporter != nil {
				reporter.RecordError(f.CustomName(), err)
			}
			continue
		}
		out.Set(i, v)
	}
	return out
}

// Replace rebinds the session to input. Memoized values are invalidated except
// for the children named in keep. Rebinding to the current input is a no-op.
func (s *Session[T]) Replace(input T, keep ...domain.ChildCacheName) {
	if sameInput(s.input, input) {
		return
	}
	s.cache.InvalidateExcept(keep...)
	s.input = input
	s.cache.bind(input)
}

// Resolve resolves part against the session's resolver.
func Resolve[S any, T domain.Input](s *Session[T], part calc.Part[S, T]) *calc.ResolvedPart[S, T] {
	return calc.Resolve(s.Resolver(), part)
}

// ResolveMap resolves m against the session's resolver.
func ResolveMap[S any, T domain.Input, K comparable](s *Session[T], m calc.PartMap[S, T, K]) *calc.ResolvedPartMap[S, T, K] {
	return calc.ResolveMap(s.Resolver(), m)
}

// ChildSession returns a session for input on the child cache name of s.
// A child previously bound to a different input is invalidated first.
func ChildSession[V, T domain.Input](s *Session[T], name domain.ChildCacheName, input V) (*Session[V], error) {
	child, err := FindChildCache[V](s.finder, s.cache, name, input.InputType(), s.creator)
	if err != nil {
		return nil, err
	}

	if current, ok := child.bound(); ok && !sameInput(current, input) {
		child.Invalidate()
	}
	return NewSession(input, child, s.creator, WithFinder(s.finder)), nil
}

// CalcChild calculates f on input within the child cache name of s.
func CalcChild[V, T domain.Input](s *Session[T], name domain.ChildCacheName, f Feature[V], input V) (float64, error) {
	child, err := ChildSession(s, name, input)
	if err != nil {
		return 0, err
	}
	return child.Calc(f)
}

func sameInput[T domain.Input](a, b T) bool {
	x, y := any(a), any(b)
	if x == nil || y == nil {
		return x == y
	}
	if !reflect.TypeOf(x).Comparable() {
		return false
	}
	return x == y
}
