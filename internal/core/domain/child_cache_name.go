package domain

import (
	"strconv"
	"unique"
)

// ChildCacheName addresses a child cache beneath a parent cache.
// A name is a group optionally qualified by an index, so that e.g. every object
// of a collection gets its own child ("objects[0]", "objects[1]", ...).
// Groups repeat once per object and are interned, so names compare by handle.
type ChildCacheName struct {
	group   unique.Handle[string]
	index   int
	indexed bool
}

// NewChildCacheName returns a name for a single child of the given group.
func NewChildCacheName(group string) ChildCacheName {
	return ChildCacheName{group: unique.Make(group)}
}

// NewIndexedChildCacheName returns a name for the i-th child of the given group.
func NewIndexedChildCacheName(group string, i int) ChildCacheName {
	return ChildCacheName{group: unique.Make(group), index: i, indexed: true}
}

// Group returns the group part of the name. The zero name has an empty group.
func (n ChildCacheName) Group() string {
	if n.group == (unique.Handle[string]{}) {
		return ""
	}
	return n.group.Value()
}

// Index returns the index and whether the name carries one.
func (n ChildCacheName) Index() (int, bool) {
	return n.index, n.indexed
}

func (n ChildCacheName) String() string {
	if !n.indexed {
		return n.Group()
	}
	return n.Group() + "[" + strconv.Itoa(n.index) + "]"
}
