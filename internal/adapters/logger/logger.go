// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
)

// messager is implemented by errors that report their own message without the chain.
type messager interface {
	Message() string
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	level    slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty lines to stderr at info level.
func New() ports.Logger {
	return newLogger()
}

func newLogger() *Logger {
	l := &Logger{output: os.Stderr}
	l.level.Set(slog.LevelInfo)
	l.rebuild()
	return l
}

// rebuild replaces the handler. Callers hold mu, except New.
func (l *Logger) rebuild() {
	opts := &slog.HandlerOptions{Level: &l.level}
	if l.jsonMode {
		l.logger = slog.New(slog.NewJSONHandler(l.output, opts))
		return
	}
	l.logger = slog.New(NewPrettyHandler(l.output, opts))
}

// SetOutput updates the output destination, keeping the current format.
// A nil w selects stderr.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.rebuild()
}

// SetJSON switches between JSON and pretty output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetLevel sets the minimum level that is written.
func (l *Logger) SetLevel(level slog.Level) {
	l.level.Set(level)
}

// Debug logs a diagnostic message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs err. In JSON mode the metadata attached along the chain becomes
// attributes; otherwise the chain is printed as a list of causes.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.jsonMode {
		args := []any{"error", err.Error()}
		for _, attr := range metadataAttrs(err) {
			args = append(args, attr)
		}
		l.logger.Error("operation failed", args...)
		return
	}
	l.logger.Error(formatChain(err))
}

// metadataAttrs collects zerr metadata along the chain, outermost first. Keys
// already seen are skipped.
func metadataAttrs(err error) []slog.Attr {
	var attrs []slog.Attr
	seen := make(map[string]struct{})
	for current := err; current != nil; current = errors.Unwrap(current) {
		z, ok := current.(*zerr.Error)
		if !ok {
			continue
		}
		meta := z.Metadata()
		keys := make([]string, 0, len(meta))
		for k := range meta {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			attrs = append(attrs, slog.Any(k, meta[k]))
		}
	}
	return attrs
}

// formatChain renders err as its message followed by an indented list of causes.
func formatChain(err error) string {
	var messages []string
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			messages = append(messages, current.Error())
			break
		}
		msg := strings.TrimSpace(m.Message() + " " + metadataSuffix(current))
		if msg != "" {
			messages = append(messages, msg)
		}
		current = errors.Unwrap(current)
	}
	if len(messages) == 0 {
		messages = append(messages, err.Error())
	}

	lines := []string{"Error: " + messages[0]}
	for i, msg := range messages[1:] {
		if i == 0 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msg)
	}
	return strings.Join(lines, "\n")
}

func metadataSuffix(err error) string {
	z, ok := err.(*zerr.Error)
	if !ok {
		return ""
	}
	meta := z.Metadata()
	if len(meta) == 0 {
		return ""
	}
	parts := make([]string, 0, len(meta))
	for k, v := range meta {
		parts = append(parts, fmt.Sprintf("%s=%v", k, v))
	}
	slices.Sort(parts)
	return "(" + strings.Join(parts, ", ") + ")"
}
