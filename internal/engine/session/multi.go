package session

import (
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/engine/feature"
	"go.trai.ch/zerr"
)

// StrategyFactory builds the replace strategy of a calculator from its creator.
type StrategyFactory[T domain.Input] func(creator *feature.Creator, paramsType domain.InputType) ReplaceStrategy[T]

// Fresh builds an AlwaysNew strategy.
func Fresh[T domain.Input](opts ...feature.SessionOption) StrategyFactory[T] {
	return func(creator *feature.Creator, paramsType domain.InputType) ReplaceStrategy[T] {
		return NewAlwaysNew[T](creator, paramsType, opts...)
	}
}

// Reuse builds a ReuseSingleton strategy keeping the named child caches.
func Reuse[T domain.Input](keep []domain.ChildCacheName, opts ...feature.SessionOption) StrategyFactory[T] {
	return func(creator *feature.Creator, paramsType domain.InputType) ReplaceStrategy[T] {
		return NewReuseSingleton[T](creator, paramsType, keep, opts...)
	}
}

// Option configures a CalculatorMulti.
type Option[T domain.Input] func(*CalculatorMulti[T])

// WithShared sets the features that may be referenced by name.
func WithShared[T domain.Input](shared *feature.SharedFeatures) Option[T] {
	return func(c *CalculatorMulti[T]) {
		c.shared = shared
	}
}

// WithParams sets the parameters features and caches are initialized with.
func WithParams[T domain.Input](params domain.InitParams) Option[T] {
	return func(c *CalculatorMulti[T]) {
		c.params = params
	}
}

// WithLogger sets the logger handed to features and caches.
func WithLogger[T domain.Input](logger ports.Logger) Option[T] {
	return func(c *CalculatorMulti[T]) {
		c.logger = logger
	}
}

// WithStrategy sets how sessions are obtained per input. The default is Fresh.
func WithStrategy[T domain.Input](factory StrategyFactory[T]) Option[T] {
	return func(c *CalculatorMulti[T]) {
		c.factory = factory
	}
}

// CalculatorMulti calculates a feature list on successive inputs.
// It is not safe for concurrent use; use DuplicateForNewThread for each goroutine.
type CalculatorMulti[T domain.Input] struct {
	paramsType domain.InputType
	features   feature.List[T]
	shared     *feature.SharedFeatures
	params     domain.InitParams
	logger     ports.Logger
	factory    StrategyFactory[T]
	strategy   ReplaceStrategy[T]
}

// NewCalculatorMulti initializes the shared features and features, failing if any
// of them cannot be initialized or a feature has the name of a shared feature.
func NewCalculatorMulti[T domain.Input](
	paramsType domain.InputType,
	features feature.List[T],
	opts ...Option[T],
) (*CalculatorMulti[T], error) {
	c := &CalculatorMulti[T]{
		paramsType: paramsType,
		features:   features,
		factory:    Fresh[T](),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, f := range c.features {
		if _, clash := c.shared.Lookup(f.CustomName()); clash {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateFeature, "feature shadows a shared feature"), "feature", f.CustomName())
		}
	}
	if err := c.shared.Init(c.params, c.logger); err != nil {
		return nil, err
	}
	creator, err := c.initFeatures()
	if err != nil {
		return nil, err
	}
	c.strategy = c.factory(creator, paramsType)
	return c, nil
}

func (c *CalculatorMulti[T]) initFeatures() (*feature.Creator, error) {
	init := feature.NewInitialization[T](c.params, c.shared, c.paramsType, c.logger)
	if err := c.features.Init(init); err != nil {
		return nil, err
	}
	return feature.NewCreator(c.features.Descriptors(), c.shared, c.params, c.logger), nil
}

// Calc calculates every feature on input, returning the first failure.
func (c *CalculatorMulti[T]) Calc(input T) (domain.ResultsVector, error) {
	s, err := c.strategy.CreateOrReuse(input)
	if err != nil {
		return domain.ResultsVector{}, err
	}
	return s.CalcList(c.features)
}

// CalcSuppressErrors calculates every feature on input. Failures are reported
// to reporter and leave the affected slots invalid.
func (c *CalculatorMulti[T]) CalcSuppressErrors(input T, reporter ports.ErrorReporter) domain.ResultsVector {
	s, err := c.strategy.CreateOrReuse(input)
	if err != nil {
		if reporter != nil {
			reporter.RecordError("session", err)
		}
		out := domain.NewResultsVector(len(c.features))
		for i := range c.features {
			out.SetError(i, err)
		}
		return out
	}
	return s.CalcListSuppressErrors(c.features, reporter)
}

// DuplicateForNewThread returns an independent calculator with copies of the
// features and its own caches. Shared features are reused read-only.
func (c *CalculatorMulti[T]) DuplicateForNewThread() (*CalculatorMulti[T], error) {
	dup := &CalculatorMulti[T]{
		paramsType: c.paramsType,
		features:   c.features.Duplicate(),
		shared:     c.shared,
		params:     c.params,
		logger:     c.logger,
		factory:    c.factory,
	}
	creator, err := dup.initFeatures()
	if err != nil {
		return nil, err
	}
	dup.strategy = c.strategy.Duplicate(creator)
	return dup, nil
}

// Names returns the custom names of the features in order.
func (c *CalculatorMulti[T]) Names() []string {
	return c.features.Names()
}

// Len returns the number of features.
func (c *CalculatorMulti[T]) Len() int {
	return len(c.features)
}

// InputType returns the input type the calculator was built for.
func (c *CalculatorMulti[T]) InputType() domain.InputType {
	return c.paramsType
}
