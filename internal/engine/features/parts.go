// Package features provides the concrete features that can be configured.
package features

import (
	"math"
	"slices"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/calc"
)

type (
	object     = *domain.ObjectMask
	collection = *domain.ObjectCollection
)

// sumPart is the total intensity of an object.
type sumPart struct{}

func (sumPart) Key() domain.Key {
	return domain.NewKey("part/sum-intensity").Build()
}

func (sumPart) Execute(o object) (float64, error) {
	if o.Len() == 0 {
		return 0, domain.ErrEmptyObject
	}
	total := 0.0
	for _, v := range o.Voxels {
		total += v.Intensity
	}
	return total, nil
}

// countPart is the number of voxels of an object.
type countPart struct{}

func (countPart) Key() domain.Key {
	return domain.NewKey("part/voxel-count").Build()
}

func (countPart) Execute(o object) (int, error) {
	return o.Len(), nil
}

// centerPart is the mean voxel position of an object.
type centerPart struct{}

func (centerPart) Key() domain.Key {
	return domain.NewKey("part/center").Build()
}

func (centerPart) Execute(o object) ([3]float64, error) {
	var c [3]float64
	if o.Len() == 0 {
		return c, domain.ErrEmptyObject
	}
	for _, v := range o.Voxels {
		c[0] += float64(v.X)
		c[1] += float64(v.Y)
		c[2] += float64(v.Z)
	}
	n := float64(o.Len())
	for i := range c {
		c[i] /= n
	}
	return c, nil
}

// sortedPart is the intensities of an object in ascending order.
type sortedPart struct{}

func (sortedPart) Key() domain.Key {
	return domain.NewKey("part/sorted-intensities").Build()
}

func (sortedPart) Execute(o object) ([]float64, error) {
	if o.Len() == 0 {
		return nil, domain.ErrEmptyObject
	}
	values := make([]float64, o.Len())
	for i, v := range o.Voxels {
		values[i] = v.Intensity
	}
	slices.Sort(values)
	return values, nil
}

// percentileMap reads percentiles off the sorted intensities, keyed by percentile.
type percentileMap struct {
	sorted *calc.ResolvedPart[[]float64, object]
}

func (percentileMap) Key() domain.Key {
	return domain.NewKey("map/percentile").Key("of", sortedPart{}.Key()).Build()
}

// Capacity reports no limit of its own, so the default applies.
func (percentileMap) Capacity() int {
	return 0
}

func (m percentileMap) Execute(_ object, p float64) (float64, error) {
	values, err := m.sorted.Get()
	if err != nil {
		return 0, err
	}
	return quantile(values, p), nil
}

// quantile interpolates linearly between the closest ranks of sorted values.
func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
