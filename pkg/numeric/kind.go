// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     numeric
// Description: Kind lattice and tagged numeric values
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package numeric defines the numeric kinds and the tagged values that flow
// through the dispatcher. Values are immutable except MutableInteger.
package numeric

// Kind classifies a value for promotion and dispatch. The order of the
// constants is the promotion order: Integer < Rational < Real < Complex.
type Kind int

const (
	KindNotNumeric Kind = iota
	KindInteger
	KindRational
	KindReal
	KindComplex
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindRational:
		return "Rational"
	case KindReal:
		return "Real"
	case KindComplex:
		return "Complex"
	default:
		return "NotNumeric"
	}
}

// IsNumeric reports whether k is one of the four numeric kinds
func (k Kind) IsNumeric() bool {
	return k >= KindInteger && k <= KindComplex
}

// Max returns the higher of two kinds in promotion order
func Max(a, b Kind) Kind {
	if a > b {
		return a
	}
	return b
}

// Value is implemented by the tagged numeric values of this package only.
type Value interface {
	Kind() Kind
	String() string
	sealed()
}
