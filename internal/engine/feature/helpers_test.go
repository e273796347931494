package feature_test

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/feature"
)

type (
	object     = *domain.ObjectMask
	collection = *domain.ObjectCollection
)

func newObject(name string, intensities ...float64) *domain.ObjectMask {
	o := &domain.ObjectMask{Name: name}
	for i, v := range intensities {
		o.Voxels = append(o.Voxels, domain.Voxel{X: i, Intensity: v})
	}
	return o
}

// intensitySum is the expensive part shared by the test features.
type intensitySum struct {
	calls *int
}

func (p intensitySum) Key() domain.Key {
	return domain.NewKey("test-intensity-sum").Build()
}

func (p intensitySum) Execute(o object) (float64, error) {
	*p.calls++
	if len(o.Voxels) == 0 {
		return 0, domain.ErrEmptyObject
	}
	total := 0.0
	for _, v := range o.Voxels {
		total += v.Intensity
	}
	return total, nil
}

// offsetSum reports the intensity sum plus a fixed offset.
type offsetSum struct {
	feature.Base
	offset float64
	parts  *int
	evals  *int
}

func newOffsetSum(name string, offset float64, parts, evals *int) *offsetSum {
	return &offsetSum{
		Base:   feature.Base{Kind: "offset-sum", Label: name, Input: domain.TypeObject},
		offset: offset,
		parts:  parts,
		evals:  evals,
	}
}

func (f *offsetSum) Init(feature.Initialization[object]) error {
	return nil
}

func (f *offsetSum) Calculate(s *feature.Session[object]) (float64, error) {
	*f.evals++
	v, err := feature.Resolve[float64](s, intensitySum{calls: f.parts}).Get()
	if err != nil {
		return 0, err
	}
	return v + f.offset, nil
}

func (f *offsetSum) Duplicate() feature.Feature[object] {
	c := *f
	return &c
}

// doubled reports twice the value of another feature, looked up by name.
type doubled struct {
	feature.Base
	target string
}

func newDoubled(name, target string) *doubled {
	return &doubled{
		Base:   feature.Base{Kind: "doubled", Label: name, Input: domain.TypeObject},
		target: target,
	}
}

func (f *doubled) Init(feature.Initialization[object]) error {
	return nil
}

func (f *doubled) Calculate(s *feature.Session[object]) (float64, error) {
	v, err := s.CalcByName(f.target)
	if err != nil {
		return 0, err
	}
	return 2 * v, nil
}

func (f *doubled) Duplicate() feature.Feature[object] {
	c := *f
	return &c
}

// objectTotal sums a per-object feature over the objects of a collection,
// each object in its own child cache.
type objectTotal struct {
	feature.Base
	item feature.Feature[object]
}

func newObjectTotal(name string, item feature.Feature[object]) *objectTotal {
	return &objectTotal{
		Base: feature.Base{Kind: "object-total", Label: name, Input: domain.TypeCollection},
		item: item,
	}
}

func (f *objectTotal) Init(init feature.Initialization[collection]) error {
	return f.item.Init(feature.Reinit[object](init, domain.TypeObject))
}

func (f *objectTotal) Calculate(s *feature.Session[collection]) (float64, error) {
	total := 0.0
	for i, o := range s.Get().Objects {
		v, err := feature.CalcChild(s, domain.NewIndexedChildCacheName("objects", i), f.item, o)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}

func (f *objectTotal) Duplicate() feature.Feature[collection] {
	return newObjectTotal(f.Label, f.item.Duplicate())
}

// failingFeature always fails.
type failingFeature struct {
	feature.Base
	initErr error
}

func newFailing(name string) *failingFeature {
	return &failingFeature{Base: feature.Base{Kind: "failing", Label: name, Input: domain.TypeInput}}
}

func (f *failingFeature) Init(feature.Initialization[object]) error {
	return f.initErr
}

func (f *failingFeature) Calculate(*feature.Session[object]) (float64, error) {
	return 0, domain.ErrDivisionByZero
}

func (f *failingFeature) Duplicate() feature.Feature[object] {
	c := *f
	return &c
}

func newObjectSession(
	creator *feature.Creator,
	input object,
	opts ...feature.SessionOption,
) (*feature.Session[object], error) {
	cache, err := feature.Create[object](creator, domain.TypeObject)
	if err != nil {
		return nil, err
	}
	return feature.NewSession(input, cache, creator, opts...), nil
}

func newCollectionSession(
	creator *feature.Creator,
	input collection,
	opts ...feature.SessionOption,
) (*feature.Session[collection], error) {
	cache, err := feature.Create[collection](creator, domain.TypeCollection)
	if err != nil {
		return nil, err
	}
	return feature.NewSession(input, cache, creator, opts...), nil
}
