package feature

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
)

type sharedEntry struct {
	feature Descriptor
	init    func(s *SharedFeatures, params domain.InitParams, logger ports.Logger) error
}

// SharedFeatures holds features that other features may reference by name,
// across all input types. It is initialized once and read-only afterwards,
// so it can be shared by every goroutine.
type SharedFeatures struct {
	entries     []sharedEntry
	byName      map[string]int
	initialized bool
}

// NewSharedFeatures creates an empty set.
func NewSharedFeatures() *SharedFeatures {
	return &SharedFeatures{byName: make(map[string]int)}
}

// AddShared registers f under its custom name.
func AddShared[T domain.Input](s *SharedFeatures, f Feature[T]) error {
	name := f.CustomName()
	if _, exists := s.byName[name]; exists {
		return zerr.With(zerr.Wrap(domain.ErrDuplicateFeature, "failed to add shared feature"), "feature", name)
	}

	s.byName[name] = len(s.entries)
	s.entries = append(s.entries, sharedEntry{
		feature: f,
		init: func(all *SharedFeatures, params domain.InitParams, logger ports.Logger) error {
			return f.Init(NewInitialization[T](params, all, f.InputType(), logger))
		},
	})
	s.initialized = false
	return nil
}

// Init initializes every shared feature once. Later calls are no-ops.
func (s *SharedFeatures) Init(params domain.InitParams, logger ports.Logger) error {
	if s == nil || s.initialized {
		return nil
	}
	for _, e := range s.entries {
		if err := e.init(s, params, logger); err != nil {
			return domain.NewInitializationError(e.feature.CustomName(), err)
		}
	}
	s.initialized = true
	return nil
}

// Lookup returns the feature registered under name, regardless of input type.
func (s *SharedFeatures) Lookup(name string) (Descriptor, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.byName[name]
	if !ok {
		return nil, false
	}
	return s.entries[i].feature, true
}

// Names returns the registered names in insertion order.
func (s *SharedFeatures) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.entries))
	for i, e := range s.entries {
		names[i] = e.feature.CustomName()
	}
	return names
}

// Len returns the number of registered features.
func (s *SharedFeatures) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// SharedSet is the view of SharedFeatures applicable to one input type.
type SharedSet[T domain.Input] struct {
	list   List[T]
	byName map[string]Feature[T]
}

// SharedFor filters s to the features calculable on paramsType.
// Features declared for another input type, or implemented for another Go
// input type, are excluded without error.
func SharedFor[T domain.Input](s *SharedFeatures, paramsType domain.InputType) *SharedSet[T] {
	set := &SharedSet[T]{byName: make(map[string]Feature[T])}
	if s == nil {
		return set
	}
	for _, e := range s.entries {
		if !e.feature.InputType().Accepts(paramsType) {
			continue
		}
		f, ok := e.feature.(Feature[T])
		if !ok {
			continue
		}
		set.list = append(set.list, f)
		set.byName[f.CustomName()] = f
	}
	return set
}

// Get returns the shared feature registered under name.
func (s *SharedSet[T]) Get(name string) (Feature[T], error) {
	if s != nil {
		if f, ok := s.byName[name]; ok {
			return f, nil
		}
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrFeatureNotFound, "failed to look up shared feature"), "feature", name)
}

// List returns the features in registration order.
func (s *SharedSet[T]) List() List[T] {
	if s == nil {
		return nil
	}
	return s.list
}

// Len returns the number of features in the set.
func (s *SharedSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.list)
}
