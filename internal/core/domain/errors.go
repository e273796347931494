package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrFeatureNotFound is returned when a feature name cannot be resolved in a feature set.
	ErrFeatureNotFound = zerr.New("feature not found")

	// ErrDuplicateFeature is returned when two features in one set share a name.
	ErrDuplicateFeature = zerr.New("duplicate feature")

	// ErrCacheNotInitialized is returned when a calculation is attempted on a cache that was never initialized.
	ErrCacheNotInitialized = zerr.New("cache not initialized")

	// ErrCacheNotBound is returned when a calculation part is evaluated on a cache without an input.
	ErrCacheNotBound = zerr.New("cache has no bound input")

	// ErrChildCacheTypeMismatch is returned when a stored child cache holds a different input type than requested.
	ErrChildCacheTypeMismatch = zerr.New("child cache type mismatch")

	// ErrParamNotFound is returned when a named initialization parameter is missing.
	ErrParamNotFound = zerr.New("parameter not found")

	// ErrUnknownFeatureKind is returned when a feature specification names an unregistered kind.
	ErrUnknownFeatureKind = zerr.New("unknown feature kind")

	// ErrUnknownInputType is returned when an input type tag cannot be parsed.
	ErrUnknownInputType = zerr.New("unknown input type")

	// ErrInputTypeMismatch is returned when a feature cannot operate on the requested input type.
	ErrInputTypeMismatch = zerr.New("input type mismatch")

	// ErrInvalidFeatureSpec is returned when a feature specification is structurally invalid.
	ErrInvalidFeatureSpec = zerr.New("invalid feature specification")

	// ErrEmptyObject is returned when a statistic is requested over an object without voxels.
	ErrEmptyObject = zerr.New("object has no voxels")

	// ErrDivisionByZero is returned when a ratio feature has a zero denominator.
	ErrDivisionByZero = zerr.New("division by zero")

	// ErrNoFeatures is returned when a configuration declares no features to calculate.
	ErrNoFeatures = zerr.New("no features configured")

	// ErrCalculationFailed is returned when one or more rows of a table failed.
	ErrCalculationFailed = zerr.New("calculation failed")

	// ErrObjectNotFound is returned when a collection refers to an object the dataset does not define.
	ErrObjectNotFound = zerr.New("object not found")

	// ErrPartMapFull is returned when a part map is asked for more distinct keys than it declares.
	ErrPartMapFull = zerr.New("part map capacity exceeded")

	// ErrUnknownFormat is returned when results are requested in an unsupported output format.
	ErrUnknownFormat = zerr.New("unknown output format")
)

// CalculationError reports that a feature failed while computing its value for an input.
type CalculationError struct {
	Feature string
	Err     error
}

// NewCalculationError wraps err for the named feature.
// An error that already is a CalculationError for the same feature is returned unchanged.
func NewCalculationError(feature string, err error) *CalculationError {
	var ce *CalculationError
	if errors.As(err, &ce) && ce.Feature == feature {
		return ce
	}
	return &CalculationError{Feature: feature, Err: err}
}

func (e *CalculationError) Error() string {
	return "calculating feature " + e.Feature + ": " + e.Err.Error()
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}

// InitializationError reports that a feature could not be prepared for calculation.
type InitializationError struct {
	Feature string
	Err     error
}

// NewInitializationError wraps err for the named feature, summarizing nested
// calculation and initialization failures to their innermost cause.
func NewInitializationError(feature string, err error) *InitializationError {
	return &InitializationError{Feature: feature, Err: Summarize(err)}
}

func (e *InitializationError) Error() string {
	return "initializing feature " + e.Feature + ": " + e.Err.Error()
}

func (e *InitializationError) Unwrap() error {
	return e.Err
}

// Summarize strips CalculationError and InitializationError layers from err and
// returns the innermost cause. Other wrappers are kept intact.
func Summarize(err error) error {
	for {
		switch e := err.(type) {
		case *CalculationError:
			err = e.Err
		case *InitializationError:
			err = e.Err
		default:
			return err
		}
	}
}
