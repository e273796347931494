package domain

import (
	"maps"
	"slices"

	"go.trai.ch/zerr"
)

// InitParams carries the named numeric parameters a cache and its features are initialized with.
type InitParams struct {
	Dictionary map[string]float64
}

// NewInitParams copies dict into a new parameter set.
func NewInitParams(dict map[string]float64) InitParams {
	return InitParams{Dictionary: maps.Clone(dict)}
}

// Value looks up a parameter.
func (p InitParams) Value(name string) (float64, error) {
	v, ok := p.Dictionary[name]
	if !ok {
		return 0, zerr.With(zerr.Wrap(ErrParamNotFound, "failed to look up parameter"), "param", name)
	}
	return v, nil
}

// Names returns the parameter names in sorted order.
func (p InitParams) Names() []string {
	return slices.Sorted(maps.Keys(p.Dictionary))
}
