package feature

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
)

// Creator builds initialized caches for a given input type, seeded with the
// features that apply to it.
type Creator struct {
	features []Descriptor
	shared   *SharedFeatures
	params   domain.InitParams
	logger   ports.Logger
	created  int
}

// NewCreator returns a Creator for the given named features, which may be of
// any input type, and shared features.
func NewCreator(features []Descriptor, shared *SharedFeatures, params domain.InitParams, logger ports.Logger) *Creator {
	return &Creator{
		features: features,
		shared:   shared,
		params:   params,
		logger:   logger,
	}
}

// Create builds a cache for paramsType. When any named or shared feature applies,
// the cache shares results horizontally between them.
func Create[T domain.Input](c *Creator, paramsType domain.InputType) (Cache[T], error) {
	named := Filter[T](c.features, paramsType)
	shared := SharedFor[T](c.shared, paramsType)

	built := NewCache[T](paramsType)
	if len(named) > 0 || shared.Len() > 0 {
		built = NewHorizontalCache(built, named, shared)
	}

	if err := built.Init(c.params, c.logger); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to initialize cache"), "input_type", paramsType.String())
	}

	c.created++
	if c.logger != nil {
		c.logger.Debug("created " + paramsType.Short() + " cache")
	}
	return built, nil
}

// Filter returns the features of descriptors calculable on paramsType with Go input type T.
func Filter[T domain.Input](descriptors []Descriptor, paramsType domain.InputType) List[T] {
	var out List[T]
	for _, d := range descriptors {
		if !d.InputType().Accepts(paramsType) {
			continue
		}
		if f, ok := d.(Feature[T]); ok {
			out = append(out, f)
		}
	}
	return out
}

// Shared returns the shared features of the creator.
func (c *Creator) Shared() *SharedFeatures {
	return c.shared
}

// Params returns the parameters caches are initialized with.
func (c *Creator) Params() domain.InitParams {
	return c.params
}

// Logger returns the logger caches are initialized with.
func (c *Creator) Logger() ports.Logger {
	return c.logger
}

// Created returns the number of caches built so far.
func (c *Creator) Created() int {
	return c.created
}

// WithFeatures returns a Creator with the same shared features, parameters and
// logger for another list of named features.
func (c *Creator) WithFeatures(features []Descriptor) *Creator {
	return NewCreator(features, c.shared, c.params, c.logger)
}
