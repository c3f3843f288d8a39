// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	mdwlog "github.com/msto63/mpnum/foundation/core/log"
	"github.com/msto63/mpnum/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error, fatal)
	Level string

	// Output format: json, text, console or logfmt
	Format string

	// Destination: "stderr", "stdout" or a file path opened for appending
	Output string

	// Additional outputs (besides Output)
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "warn",
		Format: "text",
		Output: "stderr",
	}
}

// FromConfig derives a logger configuration from the general settings
func FromConfig(name string, g config.GeneralConfig) LoggerConfig {
	cfg := DefaultLoggerConfig(name)
	if g.LogLevel != "" {
		cfg.Level = g.LogLevel
	}
	if g.LogFormat != "" {
		cfg.Format = g.LogFormat
	}
	if g.LogOutput != "" {
		cfg.Output = g.LogOutput
	}
	return cfg
}

// Logger wraps the Foundation logger and owns its output file, if any
type Logger struct {
	*mdwlog.Logger
	name   string
	closer io.Closer
}

// NewLogger creates a new Foundation logger. Unknown levels and formats are
// configuration errors.
func NewLogger(cfg LoggerConfig) (*Logger, error) {
	level, err := mdwlog.ParseLevel(cfg.Level)
	if err != nil {
		return nil, invalid("level", cfg.Level, err)
	}
	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		return nil, invalid("format", cfg.Format, err)
	}

	var (
		output io.Writer
		closer io.Closer
	)
	switch cfg.Output {
	case "", "stderr":
		output = os.Stderr
	case "stdout":
		output = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to open log output").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("logging.NewLogger").
				WithDetail("output", cfg.Output)
		}
		output, closer = f, f
	}

	// Add additional outputs if specified
	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:        level,
		Format:       format,
		Output:       output,
		Name:         cfg.Name,
		EnableCaller: level <= mdwlog.LevelDebug,
	})

	return &Logger{Logger: logger, name: cfg.Name, closer: closer}, nil
}

// NewSimpleLogger creates a logger with the default configuration
func NewSimpleLogger(name string) *Logger {
	l, err := NewLogger(DefaultLoggerConfig(name))
	if err != nil {
		return &Logger{Logger: mdwlog.New().WithName(name), name: name}
	}
	return l
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// Close closes the output file opened by NewLogger
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}

// Debugw logs a debug message with key-value pairs
func (l *Logger) Debugw(msg string, keysAndValues ...interface{}) {
	l.Logger.Debug(msg, toFields(keysAndValues...))
}

// Infow logs an info message with key-value pairs
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.Logger.Info(msg, toFields(keysAndValues...))
}

// Warnw logs a warning message with key-value pairs
func (l *Logger) Warnw(msg string, keysAndValues ...interface{}) {
	l.Logger.Warn(msg, toFields(keysAndValues...))
}

// Errorw logs an error message with key-value pairs
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.Logger.Error(msg, toFields(keysAndValues...))
}

func invalid(field, value string, cause error) *mdwerror.Error {
	return mdwerror.Wrap(cause, "invalid logging "+field).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("logging.NewLogger").
		WithDetail(field, value)
}

// toFields converts key-value pairs to mdwlog.Fields
func toFields(keysAndValues ...interface{}) mdwlog.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}

	fields := make(mdwlog.Fields)
	for i := 0; i < len(keysAndValues)-1; i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}
