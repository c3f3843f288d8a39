package version

import (
	"regexp"
	"strings"
	"testing"
)

// semverRegex validates semantic versioning format
var semverRegex = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

func TestVersionConstants(t *testing.T) {
	tests := []struct {
		name    string
		version string
	}{
		{"Library", Library},
		{"Kernel", Kernel},
		{"Precision", Precision},
		{"Dispatch", Dispatch},
		{"Mpcalc", Mpcalc},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !semverRegex.MatchString(tt.version) {
				t.Errorf("%s version %q does not match semver format (x.y.z)", tt.name, tt.version)
			}
		})
	}
}

func TestComponentVersion(t *testing.T) {
	tests := []struct {
		component string
		expected  string
	}{
		{"kernel", Kernel},
		{"precision", Precision},
		{"dispatch", Dispatch},
		{"mpcalc", Mpcalc},
		{"unknown", Library},
		{"", Library},
	}

	for _, tt := range tests {
		t.Run(tt.component, func(t *testing.T) {
			if got := ComponentVersion(tt.component); got != tt.expected {
				t.Errorf("ComponentVersion(%q) = %q, want %q", tt.component, got, tt.expected)
			}
		})
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	for _, want := range []string{"mpcalc v" + Mpcalc, "Git Commit: " + GitCommit, "Go Version: go"} {
		if !strings.Contains(info, want) {
			t.Errorf("Info() missing %q:\n%s", want, info)
		}
	}
}
