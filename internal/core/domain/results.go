package domain

import (
	"math"

	"go.trai.ch/zerr"
)

// ResultsVector holds the values of a feature list calculated on one input.
// Each slot either carries a value or the error that prevented it.
type ResultsVector struct {
	values []float64
	errs   []error
}

// NewResultsVector creates a vector with n empty slots.
func NewResultsVector(n int) ResultsVector {
	return ResultsVector{
		values: make([]float64, n),
		errs:   make([]error, n),
	}
}

// Set stores a value at index i.
func (r ResultsVector) Set(i int, v float64) {
	r.values[i] = v
	r.errs[i] = nil
}

// SetError marks slot i as failed.
func (r ResultsVector) SetError(i int, err error) {
	r.values[i] = math.NaN()
	r.errs[i] = err
}

// Get returns the value at index i, or the error recorded for it.
func (r ResultsVector) Get(i int) (float64, error) {
	if i < 0 || i >= len(r.values) {
		return 0, zerr.With(zerr.New("result index out of range"), "index", i)
	}
	if r.errs[i] != nil {
		return math.NaN(), r.errs[i]
	}
	return r.values[i], nil
}

// Value returns the value at index i. Failed slots read as NaN.
func (r ResultsVector) Value(i int) float64 {
	return r.values[i]
}

// Err returns the error recorded at index i, if any.
func (r ResultsVector) Err(i int) error {
	return r.errs[i]
}

// Len returns the number of slots.
func (r ResultsVector) Len() int {
	return len(r.values)
}

// Valid reports whether every slot holds a value.
func (r ResultsVector) Valid() bool {
	for _, err := range r.errs {
		if err != nil {
			return false
		}
	}
	return true
}

// Values returns a copy of the values. Failed slots are NaN.
func (r ResultsVector) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}
