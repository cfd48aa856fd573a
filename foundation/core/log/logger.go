// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type: leveled, structured logging with
//              persistent context fields, correlation IDs and integration with
//              the structured error type.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2025-03-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2025-03-02 v0.2.0: Synchronous writes only, serialized output
// - 2025-03-09 v0.2.1: Loggers are derived with With* only, no in-place
//                      level or output changes

package log

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	lerror "github.com/msto63/lumen/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string

	contextFields Fields
	correlationID string

	enableCaller     bool
	callerSkipFrames int

	// writeMu is shared between a logger and its clones so that lines written
	// to the same output never interleave
	writeMu *sync.Mutex
	mutex   sync.RWMutex
}

// Config represents logger configuration
type Config struct {
	Level            Level
	Format           Format
	Output           io.Writer
	Name             string
	EnableCaller     bool
	CallerSkipFrames int
}

// New creates a new logger writing JSON to stderr at the default level
func New() *Logger {
	return NewWithConfig(Config{Level: DefaultLevel(), Format: FormatJSON})
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	logger := &Logger{
		level:            config.Level,
		formatter:        GetFormatter(config.Format),
		output:           config.Output,
		name:             config.Name,
		contextFields:    make(Fields),
		enableCaller:     config.EnableCaller,
		callerSkipFrames: config.CallerSkipFrames,
		writeMu:          &sync.Mutex{},
	}

	if logger.output == nil {
		logger.output = os.Stderr
	}

	return logger
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal + 1, Output: io.Discard})
}

// WithLevel returns a copy of the logger with the given minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithFormat returns a copy of the logger using the given format
func (l *Logger) WithFormat(format Format) *Logger {
	clone := l.clone()
	clone.formatter = GetFormatter(format)
	return clone
}

// WithName returns a copy of the logger with the given name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy of the logger that adds key to every entry
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy of the logger that adds fields to every entry
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithCorrelationID returns a copy of the logger tagged with correlationID
func (l *Logger) WithCorrelationID(correlationID string) *Logger {
	clone := l.clone()
	clone.correlationID = correlationID
	return clone
}

// WithCaller returns a copy of the logger that records the calling site
func (l *Logger) WithCaller(skip int) *Logger {
	clone := l.clone()
	clone.enableCaller = true
	clone.callerSkipFrames = skip
	return clone
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs a fatal level message and exits the program
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields...)
	os.Exit(1)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// LogError logs err at a level derived from its severity. Low severity
// errors, such as syntax errors in user input, are logged at info.
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	structured, ok := asStructured(err)
	if !ok {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     structured.Code().String(),
		"error_severity": structured.Severity().String(),
	}
	if op := structured.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range structured.Details() {
		fields["error_"+k] = v
	}

	l.log(levelForSeverity(structured), structured.Message(), err, fields)
}

func asStructured(err error) (*lerror.Error, bool) {
	return lerror.As(err)
}

func levelForSeverity(err *lerror.Error) Level {
	switch err.Severity() {
	case lerror.SeverityLow:
		return LevelInfo
	case lerror.SeverityMedium:
		return LevelWarn
	default:
		return LevelError
	}
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	l.mutex.RLock()
	defer l.mutex.RUnlock()
	return l.level
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	l.logTimed(level, message, err, 0, fields...)
}

func (l *Logger) logTimed(level Level, message string, err error, duration time.Duration, fields ...Fields) {
	l.mutex.RLock()
	if !level.ShouldLog(l.level) {
		l.mutex.RUnlock()
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.CorrelationID = l.correlationID
	entry.Error = err
	entry.Duration = duration

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, set := range fields {
		for k, v := range set {
			entry.Fields[k] = v
		}
	}

	if l.enableCaller {
		if function, file, line, ok := callerInfo(4 + l.callerSkipFrames); ok {
			entry.WithCaller(function, file, line)
		}
	}

	formatter, output, writeMu := l.formatter, l.output, l.writeMu
	l.mutex.RUnlock()

	formatted, formatErr := formatter.Format(entry)
	if formatErr != nil {
		return
	}
	writeMu.Lock()
	output.Write(formatted)
	writeMu.Unlock()
}

func callerInfo(skip int) (function, file string, line int, ok bool) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", "", 0, false
	}

	function = "unknown"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if idx := strings.LastIndex(function, "."); idx != -1 {
			function = function[idx+1:]
		}
	}

	return function, filepath.Base(file), line, true
}

func (l *Logger) clone() *Logger {
	l.mutex.RLock()
	defer l.mutex.RUnlock()

	clone := &Logger{
		level:            l.level,
		formatter:        l.formatter,
		output:           l.output,
		name:             l.name,
		correlationID:    l.correlationID,
		enableCaller:     l.enableCaller,
		callerSkipFrames: l.callerSkipFrames,
		contextFields:    l.contextFields.Clone(),
		writeMu:          l.writeMu,
	}
	if clone.contextFields == nil {
		clone.contextFields = make(Fields)
	}
	return clone
}

var (
	defaultMu     sync.RWMutex
	defaultLogger = New()
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}

// Debug logs a debug message using the default logger
func Debug(message string, fields ...Fields) {
	GetDefault().Debug(message, fields...)
}

// Info logs an info message using the default logger
func Info(message string, fields ...Fields) {
	GetDefault().Info(message, fields...)
}

// Warn logs a warning message using the default logger
func Warn(message string, fields ...Fields) {
	GetDefault().Warn(message, fields...)
}

// Error logs an error message using the default logger
func Error(message string, fields ...Fields) {
	GetDefault().Error(message, fields...)
}
