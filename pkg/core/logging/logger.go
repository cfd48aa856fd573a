// ============================================================================
// lumen - Scripting Language Front-End
// ============================================================================
//
// Package:     logging
// Description: Key/value logger on top of the Foundation logger for
//              background components such as the file watcher
// Author:      msto63
// Created:     2025-02-18
// License:     MIT
// ============================================================================

package logging

import (
	llog "github.com/msto63/lumen/foundation/core/log"
)

// Level represents log severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Logger wraps the Foundation logger with key/value pair methods
type Logger struct {
	*llog.Logger
	name string
}

// New creates a logger with the default configuration
func New(name string) *Logger {
	return &Logger{
		Logger: NewSimpleLogger(name),
		name:   name,
	}
}

// Wrap derives a named key/value logger from an existing Foundation logger
func Wrap(base *llog.Logger, name string) *Logger {
	if base == nil {
		return New(name)
	}
	return &Logger{
		Logger: base.WithName(name),
		name:   name,
	}
}

// Name returns the component name
func (l *Logger) Name() string {
	return l.name
}

// WithLevel returns a new logger with the specified level
func (l *Logger) WithLevel(level Level) *Logger {
	baseLevel := llog.LevelInfo
	switch level {
	case LevelDebug:
		baseLevel = llog.LevelDebug
	case LevelInfo:
		baseLevel = llog.LevelInfo
	case LevelWarn:
		baseLevel = llog.LevelWarn
	case LevelError:
		baseLevel = llog.LevelError
	}

	return &Logger{
		Logger: l.Logger.WithLevel(baseLevel),
		name:   l.name,
	}
}

// Debug logs a debug message with key/value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Info logs an info message with key/value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warn logs a warning message with key/value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Error logs an error message with key/value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

// toFields converts key-value pairs to llog.Fields; a trailing key
// without value and non-string keys are dropped
func toFields(keysAndValues ...interface{}) llog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(llog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
