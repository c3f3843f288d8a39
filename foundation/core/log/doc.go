// Package log provides structured logging for the numeric stack.
//
// Package: log
// Title: Structured Logging Framework
// Description: This package implements a structured logger with levels,
//              contextual fields, several output formats and timers. The
//              context store logs activations and scope transitions through it
//              and the dispatcher logs trapped conditions, each tagged with the
//              logical thread that produced the event.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-18 v0.2.0: Thread and operation context, removed async buffer and audit level
//
// Features:
// - Structured logging with JSON, text, console and logfmt formats
// - Level filtering from trace to fatal
// - Contextual logging with thread IDs, operation names and custom fields
// - Integration with the structured error type
// - Timers for measuring evaluation cost
//
// Usage:
//
//	import mdwlog "github.com/msto63/mpnum/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatLogfmt).
//		WithThread(id.String())
//
//	logger.Debug("context activated", mdwlog.Fields{
//		"precision": 53,
//		"emin":      -1073,
//		"emax":      1024,
//	})
//
//	timer := logger.StartTimer("eval")
//	// ... evaluate
//	timer.Stop()
package log
