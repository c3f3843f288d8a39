// Package errors provides the standard error constructors shared by every
// numeric module.
//
// Package: errors
// Title: Standard Error Handling API
// Description: This package provides module identifiers, a fluent error
//              builder and ready-made constructors for the failures the numeric
//              stack reports: unsupported operand kinds, zero division, value
//              domain errors, invalid or read-only contexts and trapped
//              floating-point conditions. All constructors return
//              *mdwerror.Error values carrying "module" and "operation" details.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial implementation for cross-module error standardization
// - 2026-10-18 v0.2.0: Numeric modules and constructors
//
// Package Overview:
//
// # Error Creation Utilities
//
//   - NotSupported: an operand kind or operation has no defined meaning
//   - ZeroDivision: integer or rational division family with a zero divisor
//   - Domain: the value lies outside the operation's domain
//   - InvalidContext: a context field failed validation
//   - ReadOnly: mutation of a read-only context was attempted
//   - Trap: a trapped floating-point condition was raised
//
// # Error Builder Pattern
//
//	err := errors.NewErrorBuilder(errors.ModuleDispatch).
//		Operation("floordiv").
//		Code(mdwerror.CodeZeroDivision).
//		Message("integer division by zero").
//		Build()
//
// # Error Analysis
//
// ExtractModule and ExtractOperation recover the origin of an error produced by
// any of these constructors, which the CLI uses when rendering failures.
package errors
