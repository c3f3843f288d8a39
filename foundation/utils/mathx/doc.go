// Package mathx provides exact decimal values that the numeric stack accepts
// as foreign operands.
//
// Package: mathx
// Title: Exact Decimal Values
// Description: Decimal is an exact rational with a decimal text form and
//              Num/Denom accessors; DecimalTuple is a sign/coefficient/exponent
//              triple with infinities and NaN. The classifier treats the first
//              as rational-like and the second as decimal-like real.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with decimal arithmetic and business functions
// - 2025-01-26 v0.2.0: Enhanced documentation with comprehensive structure and examples
// - 2026-10-18 v0.3.0: DecimalTuple, rational accessors, removed currency and business helpers
//
// Usage:
//
//	d := mathx.MustNewDecimal("0.1")
//	num, den := d.Num(), d.Denom() // 1, 10
//
//	t, _ := mathx.ParseTuple("-1.25e-3")
//	neg, coeff, exp, _ := t.DecimalParts() // true, 125, -5
//
// Both values can be passed directly to the arithmetic entry points of
// package mpnum.
package mathx
