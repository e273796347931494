package features

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/feature"
)

// Kinds of collection features.
const (
	KindObjectCount     = "object-count"
	KindMeanOverObjects = "mean-over-objects"
	KindMaxOverObjects  = "max-over-objects"
)

// ObjectsGroup names the child caches holding the per-object calculations of a collection.
const ObjectsGroup = "objects"

func collectionBase(kind, label string) feature.Base {
	return feature.Base{Kind: kind, Label: label, Input: domain.TypeCollection}
}

// ObjectCount is the number of objects in a collection.
type ObjectCount struct {
	feature.Base
}

// NewObjectCount creates the feature reported as label.
func NewObjectCount(label string) *ObjectCount {
	return &ObjectCount{Base: collectionBase(KindObjectCount, label)}
}

func (f *ObjectCount) Init(feature.Initialization[collection]) error { return nil }

func (f *ObjectCount) Calculate(s *feature.Session[collection]) (float64, error) {
	return float64(s.Get().Len()), nil
}

func (f *ObjectCount) Duplicate() feature.Feature[collection] {
	return NewObjectCount(f.Label)
}

// MeanOverObjects is the mean of Item over the objects of a collection.
type MeanOverObjects struct {
	feature.Base
	Item feature.Feature[object]
}

// NewMeanOverObjects creates the feature reported as label.
func NewMeanOverObjects(label string, item feature.Feature[object]) *MeanOverObjects {
	return &MeanOverObjects{Base: collectionBase(KindMeanOverObjects, label), Item: item}
}

func (f *MeanOverObjects) Init(init feature.Initialization[collection]) error {
	return f.Item.Init(feature.Reinit[object](init, domain.TypeObject))
}

func (f *MeanOverObjects) Calculate(s *feature.Session[collection]) (float64, error) {
	values, err := perObject(s, f.Item)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values)), nil
}

func (f *MeanOverObjects) Duplicate() feature.Feature[collection] {
	return NewMeanOverObjects(f.Label, f.Item.Duplicate())
}

// MaxOverObjects is the largest value of Item over the objects of a collection.
type MaxOverObjects struct {
	feature.Base
	Item feature.Feature[object]
}

// NewMaxOverObjects creates the feature reported as label.
func NewMaxOverObjects(label string, item feature.Feature[object]) *MaxOverObjects {
	return &MaxOverObjects{Base: collectionBase(KindMaxOverObjects, label), Item: item}
}

func (f *MaxOverObjects) Init(init feature.Initialization[collection]) error {
	return f.Item.Init(feature.Reinit[object](init, domain.TypeObject))
}

func (f *MaxOverObjects) Calculate(s *feature.Session[collection]) (float64, error) {
	values, err := perObject(s, f.Item)
	if err != nil {
		return 0, err
	}
	best := values[0]
	for _, v := range values[1:] {
		best = max(best, v)
	}
	return best, nil
}

func (f *MaxOverObjects) Duplicate() feature.Feature[collection] {
	return NewMaxOverObjects(f.Label, f.Item.Duplicate())
}

// perObject calculates item on each object of the collection in its own child cache.
func perObject(s *feature.Session[collection], item feature.Feature[object]) ([]float64, error) {
	objects := s.Get().Objects
	if len(objects) == 0 {
		return nil, domain.ErrEmptyObject
	}
	values := make([]float64, len(objects))
	for i, o := range objects {
		v, err := feature.CalcChild(s, domain.NewIndexedChildCacheName(ObjectsGroup, i), item, o)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
