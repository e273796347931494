package ports

// ErrorReporter receives failures that were suppressed instead of returned.
// Implementations must be safe for concurrent use.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type ErrorReporter interface {
	// RecordError reports err, raised while processing source.
	RecordError(source string, err error)
	// RecordWarning reports a non-fatal condition.
	RecordWarning(source, msg string)
}
