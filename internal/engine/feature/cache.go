package feature

import (
	"slices"
	"strconv"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/engine/calc"
	"go.trai.ch/zerr"
)

// State is the lifecycle state of a cache.
type State int

const (
	// StateUninitialized caches reject calculations until Init is called.
	StateUninitialized State = iota
	// StateActive caches may hold memoized values for their bound input.
	StateActive
	// StateInvalidated caches hold no memoized values; binding an input reactivates them.
	StateInvalidated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateInvalidated:
		return "invalidated"
	default:
		return "unknown"
	}
}

// Scope is the input-independent view of a cache, as seen by its parent.
type Scope interface {
	// Init activates the cache and every existing child.
	Init(params domain.InitParams, logger ports.Logger) error
	// Invalidate clears every memoized value of the cache and its children.
	Invalidate()
	// InvalidateExcept clears the cache and every child not named in keep.
	InvalidateExcept(keep ...domain.ChildCacheName)
	// State returns the lifecycle state.
	State() State
	// InputType returns the input type the cache was created for.
	InputType() domain.InputType
	// Children returns the child table.
	Children() *Children
}

// Cache memoizes calculations on inputs of type T.
type Cache[T domain.Input] interface {
	Scope
	// Calculator returns the calculator features are evaluated through.
	Calculator() Calculator[T]

	bind(input T)
	bound() (T, bool)
}

// Calculator evaluates features against a session.
type Calculator[T domain.Input] interface {
	// Calc calculates f for the input bound to s.
	Calc(f Feature[T], s *Session[T]) (float64, error)
	// CalcByName calculates the feature known to the calculator under name.
	CalcByName(name string, s *Session[T]) (float64, error)
	// Resolver returns the calculation part resolver of the cache.
	Resolver() *calc.Resolver[T]
}

// cache is the plain cache: a resolver and a child table for one bound input.
type cache[T domain.Input] struct {
	inputType domain.InputType
	state     State
	params    domain.InitParams
	logger    ports.Logger
	input     T
	hasInput  bool
	resolver  *calc.Resolver[T]
	children  *Children
}

// NewCache creates an uninitialized cache for inputs of paramsType.
func NewCache[T domain.Input](paramsType domain.InputType) Cache[T] {
	c := &cache[T]{
		inputType: paramsType,
		children:  newChildren(),
	}
	c.resolver = calc.NewResolver(c.source)
	return c
}

func (c *cache[T]) source() (T, error) {
	if !c.hasInput {
		var zero T
		return zero, zerr.With(zerr.Wrap(domain.ErrCacheNotBound, "failed to read cache input"), "input_type", c.inputType.String())
	}
	return c.input, nil
}

func (c *cache[T]) Init(params domain.InitParams, logger ports.Logger) error {
	c.params = params
	c.logger = logger
	c.state = StateActive

	for name, child := range c.children.all() {
		if err := child.Init(params, logger); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to initialize child cache"), "child", name.String())
		}
	}
	return nil
}

func (c *cache[T]) Invalidate() {
	c.InvalidateExcept()
}

func (c *cache[T]) InvalidateExcept(keep ...domain.ChildCacheName) {
	c.resolver.Invalidate()

	kept := 0
	for name, child := range c.children.all() {
		if slices.Contains(keep, name) {
			kept++
			continue
		}
		child.Invalidate()
	}

	if c.state == StateActive {
		c.state = StateInvalidated
	}
	if c.logger != nil && kept > 0 {
		c.logger.Debug("invalidated " + c.inputType.Short() + " cache, kept " + strconv.Itoa(kept) + " child caches")
	}
}

func (c *cache[T]) State() State {
	return c.state
}

func (c *cache[T]) InputType() domain.InputType {
	return c.inputType
}

func (c *cache[T]) Children() *Children {
	return c.children
}

func (c *cache[T]) Calculator() Calculator[T] {
	return c
}

func (c *cache[T]) bind(input T) {
	c.input = input
	c.hasInput = true
	if c.state == StateInvalidated {
		c.state = StateActive
	}
}

func (c *cache[T]) bound() (T, bool) {
	return c.input, c.hasInput
}

func (c *cache[T]) Calc(f Feature[T], s *Session[T]) (float64, error) {
	if c.state == StateUninitialized {
		return 0, zerr.With(zerr.Wrap(domain.ErrCacheNotInitialized, "failed to calculate feature"), "feature", f.CustomName())
	}

	v, err := f.Calculate(s)
	if err != nil {
		return 0, domain.NewCalculationError(f.CustomName(), err)
	}
	return v, nil
}

func (c *cache[T]) CalcByName(name string, _ *Session[T]) (float64, error) {
	return 0, zerr.With(zerr.Wrap(domain.ErrFeatureNotFound, "cache has no named features"), "feature", name)
}

func (c *cache[T]) Resolver() *calc.Resolver[T] {
	return c.resolver
}
