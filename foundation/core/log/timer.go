// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it when the
//              operation ends. The engine times every tokenize and parse call.
// Author: msto63
// Version: v0.2.1
// Created: 2025-01-24
// Modified: 2025-03-09
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2025-03-02 v0.2.0: Durations recorded on the entry instead of as fields
// - 2025-03-09 v0.2.1: Elapsed is fixed once the timer stops

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
	elapsed   time.Duration
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the time since the timer was started, or the final
// duration once it has been stopped
func (t *Timer) Elapsed() time.Duration {
	if t.stopped {
		return t.elapsed
	}
	return time.Since(t.startTime)
}

// Stop stops the timer and logs "<operation> completed".
// A stopped timer returns 0 on further calls.
func (t *Timer) Stop() time.Duration {
	return t.finish(t.level, t.operation+" completed", nil)
}

// StopWithError stops the timer and logs "<operation> failed" with err.
// The level follows the severity of err the same way LogError does.
func (t *Timer) StopWithError(err error) time.Duration {
	level := LevelError
	if structured, ok := asStructured(err); ok {
		level = levelForSeverity(structured)
	}
	return t.finish(level, t.operation+" failed", err)
}

func (t *Timer) finish(level Level, message string, err error) time.Duration {
	if t.stopped {
		return 0
	}
	elapsed := t.Elapsed()
	t.elapsed = elapsed
	t.stopped = true

	if t.logger == nil || !t.logger.IsLevelEnabled(level) {
		return elapsed
	}

	entryFields := t.fields.Merge(Fields{"operation": t.operation})
	entryFields["success"] = err == nil

	t.logger.logTimed(level, message, err, elapsed, entryFields)
	return elapsed
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}
