// Package reporter implements ports.ErrorReporter by logging and collecting suppressed failures.
package reporter

import (
	"errors"
	"sync"

	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
)

// Entry is one reported failure.
type Entry struct {
	Source string
	Err    error
}

// Reporter logs every failure it receives and keeps them for a summary.
// It is safe for concurrent use.
type Reporter struct {
	logger ports.Logger

	mu       sync.Mutex
	errs     []Entry
	warnings int
}

// New creates a Reporter logging to log. A nil log only collects.
func New(log ports.Logger) *Reporter {
	return &Reporter{logger: log}
}

// RecordError implements ports.ErrorReporter.
func (r *Reporter) RecordError(source string, err error) {
	if err == nil {
		return
	}

	r.mu.Lock()
	r.errs = append(r.errs, Entry{Source: source, Err: err})
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Error(zerr.With(zerr.Wrap(err, "suppressed failure"), "source", source))
	}
}

// RecordWarning implements ports.ErrorReporter.
func (r *Reporter) RecordWarning(source, msg string) {
	r.mu.Lock()
	r.warnings++
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.Warn(source + ": " + msg)
	}
}

// Entries returns the failures recorded so far.
func (r *Reporter) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.errs))
	copy(out, r.errs)
	return out
}

// Warnings returns the number of warnings recorded so far.
func (r *Reporter) Warnings() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.warnings
}

// Err joins the recorded failures, or returns nil when there are none.
func (r *Reporter) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errs := make([]error, len(r.errs))
	for i, e := range r.errs {
		errs[i] = e.Err
	}
	return errors.Join(errs...)
}
