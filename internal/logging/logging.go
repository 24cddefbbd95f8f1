// Package logging builds the zap loggers used by the command line and the
// HTTP harness. Library packages accept a *zap.Logger and default to a no-op
// logger, so nothing is logged unless a caller opts in.
package logging

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Standard field names for structured logging.
const (
	FieldComponent  = "component"
	FieldDialect    = "dialect"
	FieldClause     = "clause"
	FieldPrefix     = "prefix"
	FieldQualifier  = "qualifier"
	FieldCursor     = "cursor"
	FieldTable      = "table"
	FieldCount      = "count"
	FieldDurationMS = "duration_ms"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatus     = "status"
	FieldAddr       = "addr"
	FieldSource     = "source"
)

// New builds a logger at the given level ("debug", "info", "warn", "error").
// JSON output uses zap's production encoder; otherwise a console encoder
// writes to stderr so that command output on stdout stays clean.
func New(level string, json bool) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	if json {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(lvl)
		return config.Build()
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	return zap.New(
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			lvl,
		),
	), nil
}

// ParseLevel converts a level name to a zap level. An empty name is "info".
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return lvl, errors.WithHint(errors.Wrapf(err, "log level %q", level),
			"use one of debug, info, warn, error")
	}
	return lvl, nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
