package feature

import "go.trai.ch/featcalc/internal/core/domain"

// List is an ordered list of features calculated together.
type List[T domain.Input] []Feature[T]

// Names returns the custom names in order.
func (l List[T]) Names() []string {
	names := make([]string, len(l))
	for i, f := range l {
		names[i] = f.CustomName()
	}
	return names
}

// Descriptors returns the type-erased view of the list.
func (l List[T]) Descriptors() []Descriptor {
	out := make([]Descriptor, len(l))
	for i, f := range l {
		out[i] = f
	}
	return out
}

// Init initializes every feature in order, stopping at the first failure.
func (l List[T]) Init(init Initialization[T]) error {
	for _, f := range l {
		if err := f.Init(init); err != nil {
			return domain.NewInitializationError(f.CustomName(), err)
		}
	}
	return nil
}

// Duplicate returns uninitialized copies of every feature.
func (l List[T]) Duplicate() List[T] {
	out := make(List[T], len(l))
	for i, f := range l {
		out[i] = f.Duplicate()
	}
	return out
}
