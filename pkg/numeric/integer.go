// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     numeric
// Description: Integer, MutableInteger and Rational values
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package numeric

import (
	"math/big"
)

// Integer is an immutable arbitrary-precision integer
type Integer struct {
	v *big.Int
}

// NewInteger copies x into a new Integer
func NewInteger(x *big.Int) *Integer {
	return &Integer{v: new(big.Int).Set(x)}
}

// IntegerFromInt64 returns x as an Integer
func IntegerFromInt64(x int64) *Integer {
	return &Integer{v: big.NewInt(x)}
}

// ParseInteger parses a base-10 integer
func ParseInteger(s string) (*Integer, bool) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return &Integer{v: v}, true
}

func (i *Integer) sealed()    {}
func (i *Integer) Kind() Kind { return KindInteger }

// Big returns a copy of the value
func (i *Integer) Big() *big.Int { return new(big.Int).Set(i.v) }

// Sign returns -1, 0 or +1
func (i *Integer) Sign() int { return i.v.Sign() }

// IsInt64 reports whether the value fits in an int64
func (i *Integer) IsInt64() bool { return i.v.IsInt64() }

// Int64 returns the value truncated to int64
func (i *Integer) Int64() int64 { return i.v.Int64() }

// BitLen returns the bit length of the absolute value
func (i *Integer) BitLen() int { return i.v.BitLen() }

func (i *Integer) String() string { return i.v.String() }

// MutableInteger is the in-place Integer variant. Its arithmetic methods in
// the dispatcher modify the receiver and return it.
type MutableInteger struct {
	v *big.Int
}

// NewMutableInteger copies x into a new MutableInteger
func NewMutableInteger(x *big.Int) *MutableInteger {
	return &MutableInteger{v: new(big.Int).Set(x)}
}

func (m *MutableInteger) sealed()    {}
func (m *MutableInteger) Kind() Kind { return KindInteger }

// Big returns a copy of the current value
func (m *MutableInteger) Big() *big.Int { return new(big.Int).Set(m.v) }

// Set replaces the value in place
func (m *MutableInteger) Set(x *big.Int) *MutableInteger {
	m.v.Set(x)
	return m
}

// Integer returns an immutable snapshot
func (m *MutableInteger) Integer() *Integer { return NewInteger(m.v) }

func (m *MutableInteger) String() string { return m.v.String() }

// Rational is an immutable fraction in lowest terms with positive denominator
type Rational struct {
	v *big.Rat
}

// NewRational copies r into a new Rational
func NewRational(r *big.Rat) *Rational {
	return &Rational{v: new(big.Rat).Set(r)}
}

// RationalFromFrac returns num/den in lowest terms. den must be nonzero.
func RationalFromFrac(num, den int64) *Rational {
	return &Rational{v: big.NewRat(num, den)}
}

// ParseRational parses "a/b" or a decimal string
func ParseRational(s string) (*Rational, bool) {
	v, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, false
	}
	return &Rational{v: v}, true
}

func (r *Rational) sealed()    {}
func (r *Rational) Kind() Kind { return KindRational }

// Rat returns a copy of the value
func (r *Rational) Rat() *big.Rat { return new(big.Rat).Set(r.v) }

// Num returns a copy of the numerator
func (r *Rational) Num() *big.Int { return new(big.Int).Set(r.v.Num()) }

// Denom returns a copy of the (positive) denominator
func (r *Rational) Denom() *big.Int { return new(big.Int).Set(r.v.Denom()) }

// Sign returns -1, 0 or +1
func (r *Rational) Sign() int { return r.v.Sign() }

// IsInt reports whether the denominator is 1
func (r *Rational) IsInt() bool { return r.v.IsInt() }

// String renders "num/den", or just "num" for integral values
func (r *Rational) String() string {
	if r.v.IsInt() {
		return r.v.Num().String()
	}
	return r.v.String()
}
