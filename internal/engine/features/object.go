package features

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/feature"
	"go.trai.ch/zerr"
)

// Kinds of object features.
const (
	KindSumIntensity    = "sum-intensity"
	KindMeanIntensity   = "mean-intensity"
	KindMaxIntensity    = "max-intensity"
	KindVoxelCount      = "voxel-count"
	KindCenterOfGravity = "center-of-gravity"
	KindPercentile      = "percentile"
)

func objectBase(kind, label string) feature.Base {
	return feature.Base{Kind: kind, Label: label, Input: domain.TypeObject}
}

// SumIntensity is the total intensity of an object.
type SumIntensity struct {
	feature.Base
}

// NewSumIntensity creates the feature reported as label.
func NewSumIntensity(label string) *SumIntensity {
	return &SumIntensity{Base: objectBase(KindSumIntensity, label)}
}

func (f *SumIntensity) Init(feature.Initialization[object]) error { return nil }

func (f *SumIntensity) Calculate(s *feature.Session[object]) (float64, error) {
	return feature.Resolve[float64](s, sumPart{}).Get()
}

func (f *SumIntensity) Duplicate() feature.Feature[object] {
	return NewSumIntensity(f.Label)
}

// MeanIntensity is the mean voxel intensity of an object.
type MeanIntensity struct {
	feature.Base
}

// NewMeanIntensity creates the feature reported as label.
func NewMeanIntensity(label string) *MeanIntensity {
	return &MeanIntensity{Base: objectBase(KindMeanIntensity, label)}
}

func (f *MeanIntensity) Init(feature.Initialization[object]) error { return nil }

func (f *MeanIntensity) Calculate(s *feature.Session[object]) (float64, error) {
	sum, err := feature.Resolve[float64](s, sumPart{}).Get()
	if err != nil {
		return 0, err
	}
	n, err := feature.Resolve[int](s, countPart{}).Get()
	if err != nil {
		return 0, err
	}
	return sum / float64(n), nil
}

func (f *MeanIntensity) Duplicate() feature.Feature[object] {
	return NewMeanIntensity(f.Label)
}

// MaxIntensity is the brightest voxel of an object.
type MaxIntensity struct {
	feature.Base
}

// NewMaxIntensity creates the feature reported as label.
func NewMaxIntensity(label string) *MaxIntensity {
	return &MaxIntensity{Base: objectBase(KindMaxIntensity, label)}
}

func (f *MaxIntensity) Init(feature.Initialization[object]) error { return nil }

func (f *MaxIntensity) Calculate(s *feature.Session[object]) (float64, error) {
	values, err := feature.Resolve[[]float64](s, sortedPart{}).Get()
	if err != nil {
		return 0, err
	}
	return values[len(values)-1], nil
}

func (f *MaxIntensity) Duplicate() feature.Feature[object] {
	return NewMaxIntensity(f.Label)
}

// VoxelCount is the number of voxels of an object.
type VoxelCount struct {
	feature.Base
}

// NewVoxelCount creates the feature reported as label.
func NewVoxelCount(label string) *VoxelCount {
	return &VoxelCount{Base: objectBase(KindVoxelCount, label)}
}

func (f *VoxelCount) Init(feature.Initialization[object]) error { return nil }

func (f *VoxelCount) Calculate(s *feature.Session[object]) (float64, error) {
	n, err := feature.Resolve[int](s, countPart{}).Get()
	return float64(n), err
}

func (f *VoxelCount) Duplicate() feature.Feature[object] {
	return NewVoxelCount(f.Label)
}

// CenterOfGravity is the mean voxel position of an object along one axis (0=x, 1=y, 2=z).
type CenterOfGravity struct {
	feature.Base
	Axis int
}

// NewCenterOfGravity creates the feature reported as label.
func NewCenterOfGravity(label string, axis int) *CenterOfGravity {
	return &CenterOfGravity{Base: objectBase(KindCenterOfGravity, label), Axis: axis}
}

func (f *CenterOfGravity) Init(feature.Initialization[object]) error {
	if f.Axis < 0 || f.Axis > 2 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidFeatureSpec, "axis must be 0, 1 or 2"), "axis", f.Axis)
	}
	return nil
}

func (f *CenterOfGravity) Calculate(s *feature.Session[object]) (float64, error) {
	c, err := feature.Resolve[[3]float64](s, centerPart{}).Get()
	if err != nil {
		return 0, err
	}
	return c[f.Axis], nil
}

func (f *CenterOfGravity) Duplicate() feature.Feature[object] {
	return NewCenterOfGravity(f.Label, f.Axis)
}

// Percentile is the p-th percentile of the voxel intensities of an object.
type Percentile struct {
	feature.Base
	P float64
}

// NewPercentile creates the feature reported as label.
func NewPercentile(label string, p float64) *Percentile {
	return &Percentile{Base: objectBase(KindPercentile, label), P: p}
}

func (f *Percentile) Init(feature.Initialization[object]) error {
	if f.P < 0 || f.P > 100 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidFeatureSpec, "percentile must be within [0, 100]"), "p", f.P)
	}
	return nil
}

func (f *Percentile) Calculate(s *feature.Session[object]) (float64, error) {
	sorted := feature.Resolve[[]float64](s, sortedPart{})
	return feature.ResolveMap[float64, object, float64](s, percentileMap{sorted: sorted}).Get(f.P)
}

func (f *Percentile) Duplicate() feature.Feature[object] {
	return NewPercentile(f.Label, f.P)
}
