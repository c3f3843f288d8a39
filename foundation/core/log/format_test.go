// File: format_test.go
// Title: Log Format Tests
// Description: Tests for the JSON, text, console and logfmt formatters.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package log

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
)

func testEntry() *Entry {
	entry := NewEntry(LevelDebug, "context activated")
	entry.Timestamp = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	entry.Logger = "precision"
	entry.ThreadID = "6f1c2a9e-0000-4000-8000-000000000000"
	entry.Operation = "activate"
	entry.Fields["precision"] = 53
	entry.Fields["emin"] = -1073
	return entry
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"TEXT", FormatText, false},
		{"console", FormatConsole, false},
		{"logfmt", FormatLogfmt, false},
		{"xml", FormatJSON, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestJSONFormatter(t *testing.T) {
	entry := testEntry()
	entry.Error = mdwerror.New("overflow").WithCode(mdwerror.CodeTrapOverflow)

	data, err := NewJSONFormatter().Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}

	checks := map[string]interface{}{
		"level":     "debug",
		"message":   "context activated",
		"logger":    "precision",
		"thread_id": entry.ThreadID,
		"operation": "activate",
		"precision": float64(53),
		"error":     "overflow",
	}
	for k, want := range checks {
		if decoded[k] != want {
			t.Errorf("field %s = %v, want %v", k, decoded[k], want)
		}
	}

	details, ok := decoded["error_details"].(map[string]interface{})
	if !ok {
		t.Fatal("error_details missing")
	}
	if details["code"] != "TRAP_OVERFLOW" {
		t.Errorf("error_details.code = %v, want TRAP_OVERFLOW", details["code"])
	}
	if _, ok := details["stack_trace"]; ok {
		t.Error("stack_trace should be stripped from error_details")
	}
}

func TestTextFormatter(t *testing.T) {
	f := NewTextFormatter()
	data, err := f.Format(testEntry())
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := "12:00:00 [DBG] {precision} (thread=6f1c2a9e,op=activate) context activated [emin=-1073 precision=53]\n"
	if string(data) != want {
		t.Errorf("Format() = %q, want %q", data, want)
	}
}

func TestConsoleFormatter(t *testing.T) {
	f := NewConsoleFormatter()
	data, _ := f.Format(testEntry())
	if !strings.HasPrefix(string(data), LevelDebug.Color()) {
		t.Errorf("console output should start with the level color: %q", data)
	}

	f.DisableColors = true
	data, _ = f.Format(testEntry())
	if strings.Contains(string(data), "\033[") {
		t.Errorf("colors should be disabled: %q", data)
	}
}

func TestLogfmtFormatter(t *testing.T) {
	entry := testEntry()
	entry.Fields["condition"] = "underflow"
	entry.Error = errors.New("boom")

	data, err := NewLogfmtFormatter().Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := `timestamp=2026-10-18T12:00:00Z level=debug message="context activated" logger=precision ` +
		`thread_id=6f1c2a9e-0000-4000-8000-000000000000 operation=activate ` +
		`condition="underflow" emin=-1073 precision=53 error="boom"` + "\n"
	if string(data) != want {
		t.Errorf("Format() = %q, want %q", data, want)
	}
}

func TestGetFormatter(t *testing.T) {
	if _, ok := GetFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("GetFormatter(FormatText) should return *TextFormatter")
	}
	if _, ok := GetFormatter(Format(99)).(*JSONFormatter); !ok {
		t.Error("GetFormatter() should fall back to JSON")
	}
}
