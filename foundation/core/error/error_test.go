// File: error_test.go
// Title: Error Module Tests
// Description: Tests for the error module covering creation, wrapping, codes,
//              severity, sentinel matching and metadata.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with comprehensive test coverage
// - 2026-10-18 v0.2.0: Sentinel matching tests

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	msg := "test error message"
	err := New(msg)

	if err == nil {
		t.Fatal("New() returned nil")
	}

	if err.Error() != msg {
		t.Errorf("Error() = %q, want %q", err.Error(), msg)
	}

	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}

	if err.Severity() != SeverityMedium {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityMedium)
	}

	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}

	if len(err.StackTrace()) == 0 {
		t.Error("StackTrace() should not be empty")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
		wantNil bool
		wantMsg string
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "wrapper message",
			wantNil: true,
		},
		{
			name:    "wrap standard error",
			err:     errors.New("original error"),
			message: "wrapper message",
			wantMsg: "wrapper message: original error",
		},
		{
			name:    "wrap structured error",
			err:     New("division by zero").WithCode(CodeZeroDivision),
			message: "floordiv failed",
			wantMsg: "floordiv failed: division by zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.err, tt.message)

			if tt.wantNil {
				if wrapped != nil {
					t.Errorf("Wrap() = %v, want nil", wrapped)
				}
				return
			}

			if wrapped == nil {
				t.Fatal("Wrap() returned nil")
			}

			if wrapped.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", wrapped.Error(), tt.wantMsg)
			}

			if mdwErr, ok := tt.err.(*Error); ok {
				if wrapped.Code() != mdwErr.Code() {
					t.Errorf("Code() = %v, want %v", wrapped.Code(), mdwErr.Code())
				}
			}
		})
	}
}

func TestErrorChaining(t *testing.T) {
	original := errors.New("root cause")
	middle := Wrap(original, "middle layer")
	top := Wrap(middle, "top layer")

	expected := "top layer: middle layer: root cause"
	if top.Error() != expected {
		t.Errorf("Error() = %q, want %q", top.Error(), expected)
	}

	if !errors.Is(top, original) {
		t.Error("errors.Is() should find original error")
	}

	if rootCause := top.RootCause(); rootCause != original {
		t.Errorf("RootCause() = %v, want %v", rootCause, original)
	}
}

func TestWrapTruncatesDeepChains(t *testing.T) {
	var err error = errors.New("root")
	for i := 0; i < MaxErrorChainDepth+2; i++ {
		err = Wrap(err, fmt.Sprintf("layer %d", i))
	}

	mdwErr := err.(*Error)
	if mdwErr.Details()["truncated"] != true {
		t.Error("deep chain should be truncated")
	}
}

func TestSentinelMatching(t *testing.T) {
	errOverflow := Sentinel(CodeTrapOverflow, "overflow")
	errInexact := Sentinel(CodeTrapInexact, "inexact")

	err := New("overflow in mul").WithCode(CodeTrapOverflow)

	if !errors.Is(err, errOverflow) {
		t.Error("errors.Is() should match sentinel with same code")
	}
	if errors.Is(err, errInexact) {
		t.Error("errors.Is() should not match sentinel with different code")
	}

	wrapped := fmt.Errorf("dispatch: %w", err)
	if !errors.Is(wrapped, errOverflow) {
		t.Error("errors.Is() should match through fmt wrapping")
	}

	plain := New("other").WithCode(CodeTrapOverflow)
	if errors.Is(err, plain) {
		t.Error("non-sentinel errors must not match by code")
	}

	if len(errOverflow.StackTrace()) != 0 {
		t.Error("sentinels carry no stack trace")
	}
}

func TestWithCode(t *testing.T) {
	err := New("test error").WithCode(CodeInvalidContext)

	if err.Code() != CodeInvalidContext {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeInvalidContext)
	}

	expectedSeverity := GetSeverityFromCode(CodeInvalidContext)
	if err.Severity() != expectedSeverity {
		t.Errorf("Severity() = %v, want %v", err.Severity(), expectedSeverity)
	}
}

func TestWithSeverity(t *testing.T) {
	err := New("test error").WithSeverity(SeverityCritical)

	if err.Severity() != SeverityCritical {
		t.Errorf("Severity() = %v, want %v", err.Severity(), SeverityCritical)
	}
}

func TestWithDetails(t *testing.T) {
	details := map[string]interface{}{
		"field": "precision",
		"value": 0,
		"min":   1,
	}

	err := New("test error").WithDetails(details).WithDetail("extra", true)

	errDetails := err.Details()
	if len(errDetails) != 4 {
		t.Errorf("Details() length = %d, want 4", len(errDetails))
	}

	for k, v := range details {
		if errDetails[k] != v {
			t.Errorf("Details()[%q] = %v, want %v", k, errDetails[k], v)
		}
	}
}

func TestWithOperation(t *testing.T) {
	err := New("test error").WithOperation("truediv")

	if err.Operation() != "truediv" {
		t.Errorf("Operation() = %q, want %q", err.Operation(), "truediv")
	}
}

func TestGetCodeThroughWrapping(t *testing.T) {
	inner := New("read-only").WithCode(CodeReadOnlyContext)
	outer := fmt.Errorf("set precision: %w", inner)

	if got := GetCode(outer); got != CodeReadOnlyContext {
		t.Errorf("GetCode() = %v, want %v", got, CodeReadOnlyContext)
	}
	if !HasCode(outer, CodeReadOnlyContext) {
		t.Error("HasCode() should see the wrapped code")
	}
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("GetCode() of a plain error should be CodeUnknown")
	}
}

func TestString(t *testing.T) {
	err := New("bad emin").
		WithCode(CodeInvalidContext).
		WithOperation("context.New").
		WithDetail("emin", 5)

	str := err.String()
	for _, want := range []string{"Error: bad emin", "Code: INVALID_CONTEXT", "Operation: context.New", "emin=5"} {
		if !strings.Contains(str, want) {
			t.Errorf("String() missing %q in %q", want, str)
		}
	}
}

func TestMarshalJSON(t *testing.T) {
	err := New("overflow").
		WithCode(CodeTrapOverflow).
		WithOperation("mul").
		WithDetail("precision", 53)

	data, jsonErr := json.Marshal(err)
	if jsonErr != nil {
		t.Fatalf("MarshalJSON() error = %v", jsonErr)
	}

	var result map[string]interface{}
	if jsonErr := json.Unmarshal(data, &result); jsonErr != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", jsonErr)
	}

	if result["message"] != "overflow" {
		t.Errorf("JSON message = %v, want %v", result["message"], "overflow")
	}
	if result["code"] != string(CodeTrapOverflow) {
		t.Errorf("JSON code = %v, want %v", result["code"], CodeTrapOverflow)
	}
	if result["operation"] != "mul" {
		t.Errorf("JSON operation = %v, want mul", result["operation"])
	}
}
