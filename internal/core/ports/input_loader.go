package ports

import "go.trai.ch/featcalc/internal/core/domain"

// InputLoader defines the interface for loading the objects features are calculated on.
//
//go:generate mockgen -source=input_loader.go -destination=mocks/mock_input_loader.go -package=mocks
type InputLoader interface {
	// Load reads the dataset file at path.
	Load(path string) (*domain.Dataset, error)
}
