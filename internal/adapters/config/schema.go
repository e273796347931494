package config

// FeatureFile represents the structure of a feature configuration file.
type FeatureFile struct {
	Version  string             `yaml:"version"`
	Input    string             `yaml:"input"`
	Params   map[string]float64 `yaml:"params"`
	Shared   []FeatureDTO       `yaml:"shared"`
	Features []FeatureDTO       `yaml:"features"`
}

// FeatureDTO represents a feature definition in the configuration.
type FeatureDTO struct {
	Name   string             `yaml:"name"`
	Kind   string             `yaml:"kind"`
	Input  string             `yaml:"input"`
	Args   map[string]float64 `yaml:"args"`
	Target string             `yaml:"target"`
	Items  []FeatureDTO       `yaml:"items"`
}
