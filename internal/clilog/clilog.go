// Package clilog builds the CLI logger and carries it through command
// contexts.
package clilog

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const appName = "includedeps"

// LevelEnv names the environment variable holding the default log level.
const LevelEnv = "INCLUDEDEPS_LOG_LEVEL"

// New returns a logger writing to w at the named level. An empty level
// means warn.
func New(w io.Writer, level string) (*log.Logger, error) {
	lvl := log.WarnLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          appName,
		ReportTimestamp: lvl <= log.DebugLevel,
		TimeFormat:      time.TimeOnly,
	}), nil
}

// WithLogger stores logger in ctx under the log package's context key.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return log.WithContext(ctx, logger)
}

// FromContext returns the logger stored in ctx, or the log package's
// default logger.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		ctx = context.Background()
	}
	return log.FromContext(ctx)
}
