package feature

import (
	"iter"

	"go.trai.ch/featcalc/internal/core/domain"
)

type childKey struct {
	name      domain.ChildCacheName
	inputType domain.InputType
}

// Children is the table of child caches owned by a parent cache.
// A child is addressed by its name together with its input type.
type Children struct {
	entries map[childKey]Scope
	order   []childKey
}

func newChildren() *Children {
	return &Children{entries: make(map[childKey]Scope)}
}

// Lookup returns the child stored for name and paramsType.
func (c *Children) Lookup(name domain.ChildCacheName, paramsType domain.InputType) (Scope, bool) {
	s, ok := c.entries[childKey{name: name, inputType: paramsType}]
	return s, ok
}

// Len returns the number of stored children.
func (c *Children) Len() int {
	return len(c.order)
}

// Names returns the names of the stored children in creation order.
func (c *Children) Names() []domain.ChildCacheName {
	names := make([]domain.ChildCacheName, len(c.order))
	for i, k := range c.order {
		names[i] = k.name
	}
	return names
}

func (c *Children) store(name domain.ChildCacheName, paramsType domain.InputType, s Scope) {
	k := childKey{name: name, inputType: paramsType}
	if _, exists := c.entries[k]; !exists {
		c.order = append(c.order, k)
	}
	c.entries[k] = s
}

func (c *Children) all() iter.Seq2[domain.ChildCacheName, Scope] {
	return func(yield func(domain.ChildCacheName, Scope) bool) {
		for _, k := range c.order {
			if !yield(k.name, c.entries[k]) {
				return
			}
		}
	}
}
