package domain

// FeatureConfig is the parsed feature configuration: which features to calculate on which inputs.
type FeatureConfig struct {
	Version   string
	InputType InputType
	Params    InitParams
	Shared    []FeatureSpec
	Features  []FeatureSpec
}

// FeatureSpec describes one feature to construct.
type FeatureSpec struct {
	// Name is the custom name the feature is reported and referenced under.
	Name string
	// Kind selects the feature implementation, e.g. "mean-intensity".
	Kind string
	// Input overrides the input type the feature is declared for. Empty means the kind's default.
	Input InputType
	// Args holds numeric arguments of the kind, e.g. "axis" or "p".
	Args map[string]float64
	// Target names another feature, used by reference-like kinds.
	Target string
	// Items holds nested feature specs, used by kinds that combine or aggregate other features.
	Items []FeatureSpec
}
