// Package feature implements the feature calculation cache hierarchy.
//
// A Session binds an input to a Cache. Caches memoize calculation parts through
// their resolver, share feature results horizontally across one sweep of
// features, and own a tree of named child caches for sub-inputs such as the
// objects of a collection. Caches are not safe for concurrent use; each
// goroutine works on its own duplicate.
package feature

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
)

// Descriptor is the input-independent view of a feature.
type Descriptor interface {
	// Name returns the kind of the feature, e.g. "mean-intensity".
	Name() string
	// CustomName returns the name the feature is reported and referenced under.
	CustomName() string
	// InputType returns the input type the feature is declared for.
	InputType() domain.InputType
}

// Feature calculates a single value on inputs of type T.
type Feature[T domain.Input] interface {
	Descriptor
	// Init prepares the feature. It is called once per copy before any calculation.
	Init(init Initialization[T]) error
	// Calculate computes the value for the input bound to s.
	Calculate(s *Session[T]) (float64, error)
	// Duplicate returns an uninitialized copy for use on another goroutine.
	Duplicate() Feature[T]
}

// Base carries the descriptor fields shared by all features.
type Base struct {
	Kind  string
	Label string
	Input domain.InputType
}

// Name implements Descriptor.
func (b Base) Name() string {
	return b.Kind
}

// CustomName implements Descriptor. It falls back to the kind when no label is set.
func (b Base) CustomName() string {
	if b.Label != "" {
		return b.Label
	}
	return b.Kind
}

// InputType implements Descriptor.
func (b Base) InputType() domain.InputType {
	return b.Input
}

// Initialization is handed to Feature.Init.
type Initialization[T domain.Input] struct {
	Params domain.InitParams
	Shared *SharedSet[T]
	Logger ports.Logger

	all *SharedFeatures
}

// NewInitialization builds the initialization for features calculated on paramsType,
// exposing the shared features that apply to it.
func NewInitialization[T domain.Input](
	params domain.InitParams,
	shared *SharedFeatures,
	paramsType domain.InputType,
	logger ports.Logger,
) Initialization[T] {
	return Initialization[T]{
		Params: params,
		Shared: SharedFor[T](shared, paramsType),
		Logger: logger,
		all:    shared,
	}
}

// Reinit derives the initialization for nested features of another input type,
// e.g. the per-object feature of a collection aggregate.
func Reinit[V, T domain.Input](init Initialization[T], paramsType domain.InputType) Initialization[V] {
	return NewInitialization[V](init.Params, init.all, paramsType, init.Logger)
}
