// Package error provides structured error handling for the numeric stack.
//
// Package: error
// Title: Structured Error Handling
// Description: This package implements a structured error type with codes,
//              severities, details and stack traces. Every failure raised by the
//              kernel, the precision contexts and the dispatcher is an *Error, so
//              a caller can distinguish a trapped overflow from a zero division
//              or an invalid context field by code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Numeric codes and sentinel matching
//
// Usage:
//
//	import mdwerror "github.com/msto63/mpnum/foundation/core/error"
//
//	var ErrOverflow = mdwerror.Sentinel(mdwerror.CodeTrapOverflow, "overflow")
//
//	err := mdwerror.New("overflow").
//		WithCode(mdwerror.CodeTrapOverflow).
//		WithDetail("operation", "mul")
//
//	if errors.Is(err, ErrOverflow) {
//		// handle the trapped condition
//	}
package error
