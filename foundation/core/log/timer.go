// File: timer.go
// Title: Performance Timer
// Description: Provides timing functionality for measuring and logging the
//              cost of an evaluation.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2026-10-18 v0.2.0: Shared completion path, dropped checkpoints

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

// WithLevel sets the log level for the timer completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time
func (t *Timer) Stop() time.Duration {
	return t.finish(t.level, t.operation+" completed", nil)
}

// StopWithError stops the timer and logs err with the elapsed time
func (t *Timer) StopWithError(err error) time.Duration {
	t.fields["success"] = false
	return t.finish(LevelError, t.operation+" failed", err)
}

// Cancel cancels the timer without logging completion
func (t *Timer) Cancel() {
	t.stopped = true
}

// IsRunning returns true if the timer is still running
func (t *Timer) IsRunning() bool {
	return !t.stopped
}

func (t *Timer) finish(level Level, message string, err error) time.Duration {
	if t.stopped {
		return 0
	}
	elapsed := t.Elapsed()
	t.stopped = true

	if t.logger == nil {
		return elapsed
	}
	t.fields["operation"] = t.operation
	t.fields["duration_ms"] = float64(elapsed.Nanoseconds()) / 1e6
	t.logger.log(level, message, err, t.fields)
	return elapsed
}
