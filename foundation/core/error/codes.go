// File: codes.go
// Title: Error Code Definitions
// Description: Defines standardized error codes for consistent error classification
//              across the numeric stack: type mismatches, context validation,
//              value-domain failures and the trapped floating-point conditions.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Replaced platform codes with numeric and trap codes

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"

	// Type and value domain
	CodeNotSupported  Code = "NOT_SUPPORTED"
	CodeZeroDivision  Code = "ZERO_DIVISION"
	CodeDomain        Code = "DOMAIN_ERROR"
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// Context configuration
	CodeInvalidContext   Code = "INVALID_CONTEXT"
	CodeReadOnlyContext  Code = "READ_ONLY_CONTEXT"
	CodeInvalidOperation Code = "INVALID_OPERATION"

	// Trapped floating-point conditions
	CodeTrapUnderflow Code = "TRAP_UNDERFLOW"
	CodeTrapOverflow  Code = "TRAP_OVERFLOW"
	CodeTrapInexact   Code = "TRAP_INEXACT"
	CodeTrapInvalid   Code = "TRAP_INVALID"
	CodeTrapErange    Code = "TRAP_ERANGE"
	CodeTrapDivZero   Code = "TRAP_DIVZERO"
	CodeTrapExpBound  Code = "TRAP_EXPBOUND"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput,
		CodeNotSupported, CodeZeroDivision, CodeDomain, CodeInvalidFormat,
		CodeInvalidContext, CodeReadOnlyContext, CodeInvalidOperation,
		CodeTrapUnderflow, CodeTrapOverflow, CodeTrapInexact, CodeTrapInvalid,
		CodeTrapErange, CodeTrapDivZero, CodeTrapExpBound,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeNotSupported:
		return "type"
	case CodeZeroDivision, CodeDomain, CodeInvalidFormat:
		return "value"
	case CodeInvalidContext, CodeReadOnlyContext, CodeInvalidOperation:
		return "context"
	case CodeTrapUnderflow, CodeTrapOverflow, CodeTrapInexact, CodeTrapInvalid,
		CodeTrapErange, CodeTrapDivZero, CodeTrapExpBound:
		return "trap"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// IsTrap reports whether the code stands for a trapped floating-point condition
func (c Code) IsTrap() bool {
	return c.Category() == "trap"
}
