// Package logging builds the structured loggers used across the harness.
//
// Every component receives a named sub-logger of one root zap logger: the
// driver factory logs as "driver", sessions as "session" with a session_id
// field, and each page object as its own type name. Interaction primitives log
// at Info; teardown failures log at Error and are never raised as test
// failures.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format selects the log encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatConsole Format = "console"
)

// New builds the root logger. Level accepts zap's level names ("debug",
// "info", "warn", "error"); an empty level defaults to info.
func New(level string, format Format) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		lvl = parsed
	}

	cfg := zap.NewProductionConfig()
	switch format {
	case FormatConsole:
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	case FormatJSON, "":
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything. Used where a caller passes
// no logger of its own.
func Nop() *zap.Logger {
	return zap.NewNop()
}
