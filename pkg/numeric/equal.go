// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     numeric
// Description: Structural equality of tagged values
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package numeric

import (
	"math/big"
)

// Equal reports whether a and b have the same kind and the same value.
// Precision is ignored, NaN equals NaN, and the signs of zeros must agree.
func Equal(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *Integer:
		return x.v.Cmp(intOf(b)) == 0
	case *MutableInteger:
		return x.v.Cmp(intOf(b)) == 0
	case *Rational:
		y, ok := b.(*Rational)
		return ok && x.v.Cmp(y.v) == 0
	case *Real:
		y, ok := b.(*Real)
		return ok && realEqual(x, y)
	case *Complex:
		y, ok := b.(*Complex)
		return ok && realEqual(x.re, y.re) && realEqual(x.im, y.im)
	}
	return false
}

func intOf(v Value) *big.Int {
	switch y := v.(type) {
	case *Integer:
		return y.v
	case *MutableInteger:
		return y.v
	}
	return nil
}

func realEqual(x, y *Real) bool {
	if x.nan || y.nan {
		return x.nan && y.nan
	}
	return x.f.Cmp(y.f) == 0 && x.f.Signbit() == y.f.Signbit()
}
