// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     tui
// Description: Input history file, one line per entry
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package tui

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
)

// HistoryLimit caps the number of saved entries
const HistoryLimit = 1000

// LoadHistory reads the history file at path. A missing file yields an
// empty history.
func LoadHistory(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to open history file").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "failed to read history file").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}
	return trimHistory(lines), nil
}

// SaveHistory writes the newest HistoryLimit entries to path
func SaveHistory(path string, lines []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return mdwerror.Wrap(err, "failed to create history directory").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}
	content := strings.Join(trimHistory(lines), "\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return mdwerror.Wrap(err, "failed to write history file").
			WithCode(mdwerror.CodeConfigError).
			WithDetail("path", path)
	}
	return nil
}

func trimHistory(lines []string) []string {
	if len(lines) > HistoryLimit {
		return lines[len(lines)-HistoryLimit:]
	}
	return lines
}
