// Package session obtains sessions for successive inputs and calculates feature
// lists on them, sequentially or in parallel.
package session

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/feature"
)

// ReplaceStrategy provides the session a feature list is calculated on for each input.
type ReplaceStrategy[T domain.Input] interface {
	// CreateOrReuse returns a session bound to input.
	CreateOrReuse(input T) (*feature.Session[T], error)
	// Duplicate returns an equivalent strategy without retained state, building caches with creator.
	Duplicate(creator *feature.Creator) ReplaceStrategy[T]
}

// AlwaysNew builds a fresh root cache for every input.
type AlwaysNew[T domain.Input] struct {
	creator    *feature.Creator
	paramsType domain.InputType
	opts       []feature.SessionOption
}

// NewAlwaysNew returns an AlwaysNew strategy for inputs of paramsType.
func NewAlwaysNew[T domain.Input](
	creator *feature.Creator,
	paramsType domain.InputType,
	opts ...feature.SessionOption,
) *AlwaysNew[T] {
	return &AlwaysNew[T]{creator: creator, paramsType: paramsType, opts: opts}
}

// CreateOrReuse implements ReplaceStrategy.
func (s *AlwaysNew[T]) CreateOrReuse(input T) (*feature.Session[T], error) {
	cache, err := feature.Create[T](s.creator, s.paramsType)
	if err != nil {
		return nil, err
	}
	return feature.NewSession(input, cache, s.creator, s.opts...), nil
}

// Duplicate implements ReplaceStrategy.
func (s *AlwaysNew[T]) Duplicate(creator *feature.Creator) ReplaceStrategy[T] {
	return NewAlwaysNew[T](creator, s.paramsType, s.opts...)
}

// ReuseSingleton keeps a single session and rebinds it to each new input,
// keeping the named child caches across inputs.
type ReuseSingleton[T domain.Input] struct {
	creator    *feature.Creator
	paramsType domain.InputType
	keep       []domain.ChildCacheName
	opts       []feature.SessionOption
	session    *feature.Session[T]
}

// NewReuseSingleton returns a ReuseSingleton strategy for inputs of paramsType.
func NewReuseSingleton[T domain.Input](
	creator *feature.Creator,
	paramsType domain.InputType,
	keep []domain.ChildCacheName,
	opts ...feature.SessionOption,
) *ReuseSingleton[T] {
	return &ReuseSingleton[T]{creator: creator, paramsType: paramsType, keep: keep, opts: opts}
}

// CreateOrReuse implements ReplaceStrategy.
func (s *ReuseSingleton[T]) CreateOrReuse(input T) (*feature.Session[T], error) {
	if s.session != nil {
		s.session.Replace(input, s.keep...)
		return s.session, nil
	}

	cache, err := feature.Create[T](s.creator, s.paramsType)
	if err != nil {
		return nil, err
	}
	s.session = feature.NewSession(input, cache, s.creator, s.opts...)
	return s.session, nil
}

// Duplicate implements ReplaceStrategy.
func (s *ReuseSingleton[T]) Duplicate(creator *feature.Creator) ReplaceStrategy[T] {
	return NewReuseSingleton[T](creator, s.paramsType, s.keep, s.opts...)
}
