// Package config provides the feature configuration loader.
package config

import (
	"os"
	"strconv"

	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration format version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// Load reads the configuration file at path.
func (l *Loader) Load(path string) (*domain.FeatureConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if l.Logger != nil {
		l.Logger.Debug("loaded " + strconv.Itoa(len(cfg.Features)) + " features from " + path)
	}
	return cfg, nil
}

// Load reads a configuration file from the given path.
func Load(path string) (*domain.FeatureConfig, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

// Parse decodes and validates a configuration document.
func Parse(data []byte) (*domain.FeatureConfig, error) {
	var file FeatureFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}

	if file.Version != "" && file.Version != SupportedVersion {
		return nil, zerr.With(zerr.New("unsupported config version"), "version", file.Version)
	}

	input, err := domain.ParseInputType(file.Input)
	if err != nil {
		return nil, err
	}
	if input == domain.TypeInput {
		return nil, zerr.With(
			zerr.Wrap(domain.ErrUnknownInputType, "config input must be object or collection"),
			"input_type", file.Input,
		)
	}

	if len(file.Features) == 0 {
		return nil, zerr.Wrap(domain.ErrNoFeatures, "config declares no features")
	}

	shared, err := convertAll(file.Shared, "shared")
	if err != nil {
		return nil, err
	}
	features, err := convertAll(file.Features, "features")
	if err != nil {
		return nil, err
	}

	return &domain.FeatureConfig{
		Version:   SupportedVersion,
		InputType: input,
		Params:    domain.NewInitParams(file.Params),
		Shared:    shared,
		Features:  features,
	}, nil
}

func convertAll(dtos []FeatureDTO, path string) ([]domain.FeatureSpec, error) {
	if len(dtos) == 0 {
		return nil, nil
	}
	specs := make([]domain.FeatureSpec, len(dtos))
	for i, dto := range dtos {
		spec, err := convert(dto, path+"["+strconv.Itoa(i)+"]")
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	return specs, nil
}

func convert(dto FeatureDTO, path string) (domain.FeatureSpec, error) {
	if dto.Kind == "" {
		return domain.FeatureSpec{}, zerr.With(
			zerr.Wrap(domain.ErrInvalidFeatureSpec, "feature kind is required"),
			"at", path,
		)
	}

	var input domain.InputType
	if dto.Input != "" {
		parsed, err := domain.ParseInputType(dto.Input)
		if err != nil {
			return domain.FeatureSpec{}, zerr.With(err, "at", path)
		}
		input = parsed
	}

	items, err := convertAll(dto.Items, path+".items")
	if err != nil {
		return domain.FeatureSpec{}, err
	}

	return domain.FeatureSpec{
		Name:   dto.Name,
		Kind:   dto.Kind,
		Input:  input,
		Args:   dto.Args,
		Target: dto.Target,
		Items:  items,
	}, nil
}
