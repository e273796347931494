package feature

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/zerr"
)

// ChildCacheFinder decides how child caches are obtained for a parent.
type ChildCacheFinder interface {
	// ChildCache returns the child of parent for name and paramsType, using create to build one.
	ChildCache(parent Scope, name domain.ChildCacheName, paramsType domain.InputType, create func() (Scope, error)) (Scope, error)
}

// DefaultChildCacheFinder stores every child in the parent's table, so each
// child is created at most once per parent.
type DefaultChildCacheFinder struct{}

// ChildCache implements ChildCacheFinder.
func (DefaultChildCacheFinder) ChildCache(
	parent Scope,
	name domain.ChildCacheName,
	paramsType domain.InputType,
	create func() (Scope, error),
) (Scope, error) {
	children := parent.Children()
	if s, ok := children.Lookup(name, paramsType); ok {
		return s, nil
	}

	s, err := create()
	if err != nil {
		return nil, err
	}
	children.store(name, paramsType, s)
	return s, nil
}

// TransientChildCacheFinder creates a fresh child on every request and never stores it.
// Nothing is memoized across requests for the same child.
type TransientChildCacheFinder struct{}

// ChildCache implements ChildCacheFinder.
func (TransientChildCacheFinder) ChildCache(
	_ Scope,
	_ domain.ChildCacheName,
	_ domain.InputType,
	create func() (Scope, error),
) (Scope, error) {
	return create()
}

// SelectiveChildCacheFinder stores only the children of the listed groups.
// Children of other groups are transient.
type SelectiveChildCacheFinder struct {
	groups map[string]struct{}
}

// NewSelectiveChildCacheFinder returns a finder caching the given child groups.
func NewSelectiveChildCacheFinder(groups ...string) *SelectiveChildCacheFinder {
	f := &SelectiveChildCacheFinder{groups: make(map[string]struct{}, len(groups))}
	for _, g := range groups {
		f.groups[g] = struct{}{}
	}
	return f
}

// ChildCache implements ChildCacheFinder.
func (f *SelectiveChildCacheFinder) ChildCache(
	parent Scope,
	name domain.ChildCacheName,
	paramsType domain.InputType,
	create func() (Scope, error),
) (Scope, error) {
	if _, ok := f.groups[name.Group()]; ok {
		return DefaultChildCacheFinder{}.ChildCache(parent, name, paramsType, create)
	}
	return create()
}

// ChildCacheFor returns the child cache of parent for name and paramsType,
// creating it with creator on first request.
func ChildCacheFor[V domain.Input](
	parent Scope,
	name domain.ChildCacheName,
	paramsType domain.InputType,
	creator *Creator,
) (Cache[V], error) {
	return FindChildCache[V](DefaultChildCacheFinder{}, parent, name, paramsType, creator)
}

// FindChildCache is ChildCacheFor with an explicit finder.
func FindChildCache[V domain.Input](
	finder ChildCacheFinder,
	parent Scope,
	name domain.ChildCacheName,
	paramsType domain.InputType,
	creator *Creator,
) (Cache[V], error) {
	s, err := finder.ChildCache(parent, name, paramsType, func() (Scope, error) {
		child, err := Create[V](creator, paramsType)
		if err != nil {
			return nil, err
		}
		return child, nil
	})
	if err != nil {
		return nil, err
	}

	child, ok := s.(Cache[V])
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrChildCacheTypeMismatch, "failed to find child cache"), "child", name.String())
		return nil, zerr.With(err, "input_type", paramsType.String())
	}
	return child, nil
}
