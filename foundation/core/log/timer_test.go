// File: timer_test.go
// Title: Timer Tests
// Description: Tests for performance timing and its integration with the logger.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18

package log

import (
	"errors"
	"testing"
	"time"
)

func TestTimerStop(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)
	timer := logger.StartTimer("eval").WithField("expr", "1/3")

	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()
	if elapsed <= 0 {
		t.Errorf("Stop() = %v, want > 0", elapsed)
	}
	if timer.IsRunning() {
		t.Error("timer should be stopped")
	}
	if again := timer.Stop(); again != 0 {
		t.Errorf("second Stop() = %v, want 0", again)
	}

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0]["message"] != "eval completed" || lines[0]["expr"] != "1/3" {
		t.Errorf("unexpected entry: %v", lines[0])
	}
	if _, ok := lines[0]["duration_ms"]; !ok {
		t.Error("duration_ms missing")
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug)
	logger.StartTimer("eval").StopWithError(errors.New("division by zero"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0]["level"] != "error" || lines[0]["success"] != false {
		t.Errorf("unexpected entry: %v", lines[0])
	}
	if lines[0]["error"] != "division by zero" {
		t.Errorf("error = %v", lines[0]["error"])
	}
}

func TestTimerCancelAndLevel(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo)
	timer := logger.StartTimer("eval")
	timer.Cancel()
	timer.Stop()
	if buf.Len() != 0 {
		t.Error("cancelled timer should not log")
	}

	logger.StartTimer("hidden").Stop()
	if buf.Len() != 0 {
		t.Error("debug-level completion should be filtered at info")
	}

	logger.StartTimer("shown").WithLevel(LevelInfo).Stop()
	if len(decodeLines(t, buf)) != 1 {
		t.Error("info-level completion should be logged")
	}
}
