// ============================================================================
// lumen - Scripting Language Front-End
// ============================================================================
//
// Package:     logging
// Description: Factory functions that map string settings onto Foundation
//              loggers for the lumen tools
// Author:      msto63
// Created:     2025-02-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	llog "github.com/msto63/lumen/foundation/core/log"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Service name
	ServiceName string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format (json, text, console or logfmt; default: text)
	Format string

	// Output writer (default: stderr, so stdout stays free for results)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer

	// EnableCaller adds file:line of the log call
	EnableCaller bool
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(serviceName string) LoggerConfig {
	return LoggerConfig{
		ServiceName: serviceName,
		Level:       "warn",
		Format:      "text",
	}
}

// NewLogger creates a new Foundation logger. Unknown level or format
// strings fall back to the defaults.
func NewLogger(cfg LoggerConfig) *llog.Logger {
	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := llog.ParseFormat(cfg.Format)
	if err != nil {
		format = llog.FormatText
	}

	return llog.NewWithConfig(llog.Config{
		Level:        ParseLevel(cfg.Level),
		Format:       format,
		Output:       output,
		Name:         cfg.ServiceName,
		EnableCaller: cfg.EnableCaller,
	})
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(serviceName string) *llog.Logger {
	return NewLogger(DefaultLoggerConfig(serviceName))
}

// ParseLevel converts a string level to llog.Level; unknown strings map
// to the default level
func ParseLevel(level string) llog.Level {
	parsed, err := llog.ParseLevel(level)
	if err != nil {
		return llog.DefaultLevel()
	}
	return parsed
}
