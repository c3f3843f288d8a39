package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// run executes mpcalc with args against an isolated configuration
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mpnum.toml")
	content := `
[general]
log_level = "error"
history_file = "` + filepath.Join(dir, "history") + `"

[profiles.tiny]
precision = 8
round = "RoundToZero"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("MPNUM_CONFIG", path)

	cfgFile, profile, verbose, noColor = "", "", false, true
	showKind, showFlags, evalSet, listProfiles, plainRepl = false, false, nil, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestEvalCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"true division", []string{"eval", "1", "/", "3"}, "0.3333333333333333\n"},
		{"profile", []string{"eval", "-p", "tiny", "1", "/", "3"}, "0.332\n"},
		{"set", []string{"eval", "--set", "rational_division=on", "1", "/", "3"}, "1/3\n"},
		{"kind", []string{"eval", "-k", "7", "//", "2"}, "3 Integer\n"},
		{"negative operand", []string{"eval", "--", "-7", "%", "2"}, "1\n"},
		{"flags", []string{"eval", "-f", "1", "/", "3"}, "0.3333333333333333\nflags: inexact\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, tt.args...)
			if err != nil {
				t.Fatalf("mpcalc %v error = %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("mpcalc %v = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestEvalCommandErrors(t *testing.T) {
	tests := [][]string{
		{"eval", "1", "//", "0"},
		{"eval", "-p", "missing", "1"},
		{"eval", "--set", "precision", "1"},
		{"eval"},
	}
	for _, args := range tests {
		if _, err := run(t, args...); err == nil {
			t.Errorf("mpcalc %v expected error", args)
		}
	}
}

func TestContextCommand(t *testing.T) {
	out, err := run(t, "context", "-p", "tiny")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Profile tiny", "context(precision=8,", "round=RoundToZero"} {
		if !strings.Contains(out, want) {
			t.Errorf("context output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, "context", "--list")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"* default", "  double", "  tiny"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile list missing %q:\n%s", want, out)
		}
	}
}

func TestIEEECommand(t *testing.T) {
	out, err := run(t, "ieee", "64")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "emax=1024, emin=-1073") {
		t.Errorf("ieee 64 output:\n%s", out)
	}
	if _, err := run(t, "ieee", "16"); err == nil {
		t.Error("ieee 16 expected error")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "mpcalc v") {
		t.Errorf("version output = %q", out)
	}
}
