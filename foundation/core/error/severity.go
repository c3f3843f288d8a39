// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors so that callers and the
//              logger can tell a malformed operand apart from a broken
//              invariant inside the engine.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels
// - 2026-10-18 v0.2.0: Severity mapping for numeric codes

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a caller mistake such as an unsupported operand
	SeverityLow Severity = iota

	// SeverityMedium indicates an arithmetic condition the caller asked to see
	SeverityMedium

	// SeverityHigh indicates a misconfiguration that prevents further work
	SeverityHigh

	// SeverityCritical indicates a broken internal invariant
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Level returns the numeric level of the severity (0-3)
func (s Severity) Level() int {
	return int(s)
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical

	case CodeInvalidContext, CodeConfigError, CodeInvalidConfig:
		return SeverityHigh

	case CodeTrapUnderflow, CodeTrapOverflow, CodeTrapInexact, CodeTrapInvalid,
		CodeTrapErange, CodeTrapDivZero, CodeTrapExpBound,
		CodeZeroDivision, CodeDomain, CodeReadOnlyContext:
		return SeverityMedium

	case CodeNotSupported, CodeInvalidInput, CodeInvalidFormat, CodeNotFound,
		CodeInvalidOperation:
		return SeverityLow

	default:
		return SeverityMedium
	}
}
