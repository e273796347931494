package features

import (
	"maps"
	"slices"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/feature"
	"go.trai.ch/zerr"
)

// KindInfo describes a feature kind that can be configured.
type KindInfo struct {
	Kind        string
	Input       domain.InputType
	Description string
}

var kinds = map[string]KindInfo{
	KindSumIntensity:    {KindSumIntensity, domain.TypeObject, "total voxel intensity"},
	KindMeanIntensity:   {KindMeanIntensity, domain.TypeObject, "mean voxel intensity"},
	KindMaxIntensity:    {KindMaxIntensity, domain.TypeObject, "brightest voxel intensity"},
	KindVoxelCount:      {KindVoxelCount, domain.TypeObject, "number of voxels"},
	KindCenterOfGravity: {KindCenterOfGravity, domain.TypeObject, "mean voxel position along args.axis"},
	KindPercentile:      {KindPercentile, domain.TypeObject, "args.p-th percentile of the voxel intensities"},
	KindObjectCount:     {KindObjectCount, domain.TypeCollection, "number of objects"},
	KindMeanOverObjects: {KindMeanOverObjects, domain.TypeCollection, "mean of items[0] over the objects"},
	KindMaxOverObjects:  {KindMaxOverObjects, domain.TypeCollection, "largest value of items[0] over the objects"},
	KindConstant:        {KindConstant, domain.TypeInput, "args.value"},
	KindParam:           {KindParam, domain.TypeInput, "the parameter named by target"},
	KindReference:       {KindReference, domain.TypeInput, "the shared feature named by target"},
	KindQuotient:        {KindQuotient, domain.TypeInput, "items[0] divided by items[1]"},
}

// Kinds returns every configurable kind, sorted by name.
func Kinds() []KindInfo {
	out := make([]KindInfo, 0, len(kinds))
	for _, k := range slices.Sorted(maps.Keys(kinds)) {
		out = append(out, kinds[k])
	}
	return out
}

// DeclaredInput returns the input type spec is declared for: its explicit input,
// or the default of its kind.
func DeclaredInput(spec domain.FeatureSpec) (domain.InputType, error) {
	info, ok := kinds[spec.Kind]
	if !ok {
		return "", zerr.With(zerr.Wrap(domain.ErrUnknownFeatureKind, "unknown feature kind"), "kind", spec.Kind)
	}
	if spec.Input == "" {
		return info.Input, nil
	}
	if !info.Input.Accepts(spec.Input) {
		return "", zerr.With(
			zerr.With(zerr.Wrap(domain.ErrInputTypeMismatch, "kind does not apply to input type"), "kind", spec.Kind),
			"input_type", spec.Input.String(),
		)
	}
	return spec.Input, nil
}

// Build constructs the feature described by spec for inputs of Go type T.
func Build[T domain.Input](spec domain.FeatureSpec) (feature.Feature[T], error) {
	input, err := DeclaredInput(spec)
	if err != nil {
		return nil, err
	}

	built, err := construct[T](spec, input)
	if err != nil {
		return nil, zerr.With(err, "feature", label(spec))
	}

	f, ok := built.(feature.Feature[T])
	if !ok {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrInputTypeMismatch, "kind does not apply to input type"), "kind", spec.Kind),
			"feature", label(spec),
		)
	}
	return f, nil
}

func construct[T domain.Input](spec domain.FeatureSpec, input domain.InputType) (any, error) {
	name := spec.Name
	switch spec.Kind {
	case KindSumIntensity:
		return NewSumIntensity(name), nil
	case KindMeanIntensity:
		return NewMeanIntensity(name), nil
	case KindMaxIntensity:
		return NewMaxIntensity(name), nil
	case KindVoxelCount:
		return NewVoxelCount(name), nil
	case KindCenterOfGravity:
		axis, err := arg(spec, "axis")
		if err != nil {
			return nil, err
		}
		return NewCenterOfGravity(name, int(axis)), nil
	case KindPercentile:
		p, err := arg(spec, "p")
		if err != nil {
			return nil, err
		}
		return NewPercentile(name, p), nil
	case KindObjectCount:
		return NewObjectCount(name), nil
	case KindMeanOverObjects, KindMaxOverObjects:
		items, err := buildItems[object](spec, 1)
		if err != nil {
			return nil, err
		}
		if spec.Kind == KindMeanOverObjects {
			return NewMeanOverObjects(name, items[0]), nil
		}
		return NewMaxOverObjects(name, items[0]), nil
	case KindConstant:
		v, err := arg(spec, "value")
		if err != nil {
			return nil, err
		}
		return NewConstant[T](name, input, v), nil
	case KindParam:
		if spec.Target == "" {
			return nil, zerr.Wrap(domain.ErrInvalidFeatureSpec, "param requires a target parameter")
		}
		return NewParam[T](name, input, spec.Target), nil
	case KindReference:
		if spec.Target == "" {
			return nil, zerr.Wrap(domain.ErrInvalidFeatureSpec, "reference requires a target feature")
		}
		return NewReference[T](name, input, spec.Target), nil
	case KindQuotient:
		items, err := buildItems[T](spec, 2)
		if err != nil {
			return nil, err
		}
		return NewQuotient(name, input, items[0], items[1]), nil
	}
	return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFeatureKind, "unknown feature kind"), "kind", spec.Kind)
}

func buildItems[T domain.Input](spec domain.FeatureSpec, n int) ([]feature.Feature[T], error) {
	if len(spec.Items) != n {
		return nil, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrInvalidFeatureSpec, "unexpected number of items"), "want", n),
			"got", len(spec.Items),
		)
	}
	out := make([]feature.Feature[T], n)
	for i, item := range spec.Items {
		f, err := Build[T](item)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

func arg(spec domain.FeatureSpec, name string) (float64, error) {
	v, ok := spec.Args[name]
	if !ok {
		return 0, zerr.With(zerr.Wrap(domain.ErrInvalidFeatureSpec, "missing argument"), "arg", name)
	}
	return v, nil
}

func label(spec domain.FeatureSpec) string {
	if spec.Name != "" {
		return spec.Name
	}
	return spec.Kind
}

// BuildList constructs the features of specs for inputs of Go type T. Custom names must be unique.
func BuildList[T domain.Input](specs []domain.FeatureSpec) (feature.List[T], error) {
	list := make(feature.List[T], 0, len(specs))
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		f, err := Build[T](spec)
		if err != nil {
			return nil, err
		}
		name := f.CustomName()
		if _, dup := seen[name]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateFeature, "duplicate feature name"), "feature", name)
		}
		seen[name] = struct{}{}
		list = append(list, f)
	}
	if len(list) == 0 {
		return nil, zerr.Wrap(domain.ErrNoFeatures, "feature list is empty")
	}
	return list, nil
}

// BuildShared constructs the shared features of specs. Features whose kind applies
// to any input are built for fallback.
func BuildShared(specs []domain.FeatureSpec, fallback domain.InputType) (*feature.SharedFeatures, error) {
	shared := feature.NewSharedFeatures()
	for _, spec := range specs {
		input, err := DeclaredInput(spec)
		if err != nil {
			return nil, err
		}
		if input == domain.TypeInput {
			input = fallback
		}

		switch input {
		case domain.TypeObject:
			err = addShared[object](shared, spec)
		case domain.TypeCollection:
			err = addShared[collection](shared, spec)
		default:
			err = zerr.With(zerr.Wrap(domain.ErrUnknownInputType, "no input type for shared feature"), "feature", label(spec))
		}
		if err != nil {
			return nil, err
		}
	}
	return shared, nil
}

func addShared[T domain.Input](shared *feature.SharedFeatures, spec domain.FeatureSpec) error {
	f, err := Build[T](spec)
	if err != nil {
		return err
	}
	return feature.AddShared(shared, f)
}
