package features

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/engine/feature"
	"go.trai.ch/zerr"
)

// Kinds of features that apply to any input type.
const (
	KindConstant  = "constant"
	KindParam     = "param"
	KindReference = "reference"
	KindQuotient  = "quotient"
)

// Constant always reports Value.
type Constant[T domain.Input] struct {
	feature.Base
	Value float64
}

// NewConstant creates the feature reported as label.
func NewConstant[T domain.Input](label string, input domain.InputType, value float64) *Constant[T] {
	return &Constant[T]{Base: genericBase(KindConstant, label, input), Value: value}
}

func (f *Constant[T]) Init(feature.Initialization[T]) error { return nil }

func (f *Constant[T]) Calculate(*feature.Session[T]) (float64, error) {
	return f.Value, nil
}

func (f *Constant[T]) Duplicate() feature.Feature[T] {
	return NewConstant[T](f.Label, f.Input, f.Value)
}

// Param reports the initialization parameter Key.
type Param[T domain.Input] struct {
	feature.Base
	Key string

	value float64
}

// NewParam creates the feature reported as label.
func NewParam[T domain.Input](label string, input domain.InputType, key string) *Param[T] {
	return &Param[T]{Base: genericBase(KindParam, label, input), Key: key}
}

func (f *Param[T]) Init(init feature.Initialization[T]) error {
	v, err := init.Params.Value(f.Key)
	if err != nil {
		return err
	}
	f.value = v
	return nil
}

func (f *Param[T]) Calculate(*feature.Session[T]) (float64, error) {
	return f.value, nil
}

func (f *Param[T]) Duplicate() feature.Feature[T] {
	return NewParam[T](f.Label, f.Input, f.Key)
}

// Reference reports the value of the shared feature named Target.
type Reference[T domain.Input] struct {
	feature.Base
	Target string

	target feature.Feature[T]
}

// NewReference creates the feature reported as label.
func NewReference[T domain.Input](label string, input domain.InputType, target string) *Reference[T] {
	return &Reference[T]{Base: genericBase(KindReference, label, input), Target: target}
}

func (f *Reference[T]) Init(init feature.Initialization[T]) error {
	target, err := init.Shared.Get(f.Target)
	if err != nil {
		return err
	}
	f.target = target
	return nil
}

func (f *Reference[T]) Calculate(s *feature.Session[T]) (float64, error) {
	if f.target == nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrFeatureNotFound, "reference not initialized"), "feature", f.Target)
	}
	return s.Calc(f.target)
}

func (f *Reference[T]) Duplicate() feature.Feature[T] {
	return NewReference[T](f.Label, f.Input, f.Target)
}

// Quotient reports Numerator divided by Denominator.
type Quotient[T domain.Input] struct {
	feature.Base
	Numerator   feature.Feature[T]
	Denominator feature.Feature[T]
}

// NewQuotient creates the feature reported as label.
func NewQuotient[T domain.Input](label string, input domain.InputType, num, den feature.Feature[T]) *Quotient[T] {
	return &Quotient[T]{Base: genericBase(KindQuotient, label, input), Numerator: num, Denominator: den}
}

func (f *Quotient[T]) Init(init feature.Initialization[T]) error {
	if err := f.Numerator.Init(init); err != nil {
		return err
	}
	return f.Denominator.Init(init)
}

func (f *Quotient[T]) Calculate(s *feature.Session[T]) (float64, error) {
	num, err := s.Calc(f.Numerator)
	if err != nil {
		return 0, err
	}
	den, err := s.Calc(f.Denominator)
	if err != nil {
		return 0, err
	}
	if den == 0 {
		return 0, zerr.With(zerr.Wrap(domain.ErrDivisionByZero, "denominator is zero"), "feature", f.Denominator.CustomName())
	}
	return num / den, nil
}

func (f *Quotient[T]) Duplicate() feature.Feature[T] {
	return NewQuotient[T](f.Label, f.Input, f.Numerator.Duplicate(), f.Denominator.Duplicate())
}

func genericBase(kind, label string, input domain.InputType) feature.Base {
	if input == "" {
		input = domain.TypeInput
	}
	return feature.Base{Kind: kind, Label: label, Input: input}
}
