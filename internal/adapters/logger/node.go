package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NodeID is the unique identifier for the logger Graft node.
	NodeID graft.ID = "adapter.logger"
	// LevelEnv selects the initial level, e.g. "debug" or "warn".
	LevelEnv = "FEATCALC_LOG_LEVEL"
)

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			return FromEnv()
		},
	})
}

// FromEnv creates a Logger whose level is read from LevelEnv when set.
func FromEnv() (*Logger, error) {
	l := newLogger()
	v := os.Getenv(LevelEnv)
	if v == "" {
		return l, nil
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid log level"), LevelEnv, v)
	}
	l.SetLevel(level)
	return l, nil
}
