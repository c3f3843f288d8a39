// File: codes_test.go
// Title: Error Code Tests
// Description: Tests for error code validation, categorization and the
//              code-to-severity mapping.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive code tests
// - 2026-10-18 v0.2.0: Numeric and trap codes

package error

import (
	"testing"
)

func TestCodeIsValid(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want bool
	}{
		{"known code", CodeZeroDivision, true},
		{"trap code", CodeTrapExpBound, true},
		{"unknown code", Code("INVALID_CODE"), false},
		{"empty code", Code(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.code.IsValid(); got != tt.want {
				t.Errorf("Code.IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeCategory(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{CodeNotSupported, "type"},
		{CodeZeroDivision, "value"},
		{CodeDomain, "value"},
		{CodeReadOnlyContext, "context"},
		{CodeTrapDivZero, "trap"},
		{CodeInvalidConfig, "configuration"},
		{CodeUnknown, "generic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.Category(); got != tt.want {
				t.Errorf("Code.Category() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodeIsTrap(t *testing.T) {
	for _, code := range []Code{CodeTrapUnderflow, CodeTrapOverflow, CodeTrapInexact,
		CodeTrapInvalid, CodeTrapErange, CodeTrapDivZero, CodeTrapExpBound} {
		if !code.IsTrap() {
			t.Errorf("%s.IsTrap() = false, want true", code)
		}
	}
	if CodeZeroDivision.IsTrap() {
		t.Error("CodeZeroDivision is a domain error, not a trap")
	}
}

func TestGetSeverityFromCode(t *testing.T) {
	tests := []struct {
		code Code
		want Severity
	}{
		{CodeInternal, SeverityCritical},
		{CodeInvalidContext, SeverityHigh},
		{CodeTrapOverflow, SeverityMedium},
		{CodeZeroDivision, SeverityMedium},
		{CodeNotSupported, SeverityLow},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := GetSeverityFromCode(tt.code); got != tt.want {
				t.Errorf("GetSeverityFromCode(%v) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestSeverityString(t *testing.T) {
	tests := []struct {
		severity Severity
		want     string
	}{
		{SeverityLow, "low"},
		{SeverityMedium, "medium"},
		{SeverityHigh, "high"},
		{SeverityCritical, "critical"},
		{Severity(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.severity.String(); got != tt.want {
				t.Errorf("Severity.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
