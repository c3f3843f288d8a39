// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     version
// Description: Central version management for the library and its tools
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Version constants
const (
	// Library version
	Library = "1.0.0"

	// Component versions
	Kernel    = "1.0.0"
	Precision = "1.0.0"
	Dispatch  = "1.0.0"
	Mpcalc    = "1.0.0"
)

// Set at build time via -ldflags
var (
	GitCommit = "development"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "kernel":
		return Kernel
	case "precision":
		return Precision
	case "dispatch":
		return Dispatch
	case "mpcalc":
		return Mpcalc
	default:
		return Library
	}
}

// Info returns the multi-line build description printed by mpcalc version
func Info() string {
	return fmt.Sprintf("mpcalc v%s (mpnum v%s)\n"+
		"  Git Commit: %s\n"+
		"  Build Date: %s\n"+
		"  Go Version: %s\n"+
		"  OS/Arch:    %s/%s\n",
		Mpcalc, Library, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
