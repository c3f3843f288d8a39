// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     numeric
// Description: Real and Complex values
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package numeric

import (
	"math"
	"math/big"
)

// Real is an immutable binary floating-point value with its own precision.
// big.Float has no NaN, so NaN is carried as a separate state.
type Real struct {
	f   *big.Float
	nan bool
}

// NewReal copies f, keeping its precision
func NewReal(f *big.Float) *Real {
	return &Real{f: new(big.Float).Copy(f)}
}

// RealFromFloat64 returns x at 53 bits; NaN is mapped to the NaN state
func RealFromFloat64(x float64) *Real {
	if math.IsNaN(x) {
		return NaN(53)
	}
	return &Real{f: new(big.Float).SetPrec(53).SetFloat64(x)}
}

// NaN returns a NaN with the given precision
func NaN(prec uint) *Real {
	return &Real{f: new(big.Float).SetPrec(prec), nan: true}
}

// Inf returns +Inf for sign >= 0 and -Inf otherwise
func Inf(sign int, prec uint) *Real {
	return &Real{f: new(big.Float).SetPrec(prec).SetInf(sign < 0)}
}

// Zero returns +0 or -0 (negative when neg is set)
func Zero(neg bool, prec uint) *Real {
	f := new(big.Float).SetPrec(prec)
	if neg {
		f.Neg(f)
	}
	return &Real{f: f}
}

func (r *Real) sealed()    {}
func (r *Real) Kind() Kind { return KindReal }

// Float returns a copy of the value. The result is undefined for NaN.
func (r *Real) Float() *big.Float { return new(big.Float).Copy(r.f) }

// Prec returns the precision in bits
func (r *Real) Prec() uint { return r.f.Prec() }

// IsNaN reports whether r is NaN
func (r *Real) IsNaN() bool { return r.nan }

// IsInf reports whether r is +Inf or -Inf
func (r *Real) IsInf() bool { return !r.nan && r.f.IsInf() }

// IsFinite reports whether r is neither NaN nor infinite
func (r *Real) IsFinite() bool { return !r.nan && !r.f.IsInf() }

// IsZero reports whether r is +0 or -0
func (r *Real) IsZero() bool { return !r.nan && r.f.Sign() == 0 }

// Signbit reports whether the sign bit is set (true for -0 and -Inf)
func (r *Real) Signbit() bool { return !r.nan && r.f.Signbit() }

// Sign returns -1, 0 or +1; NaN yields 0
func (r *Real) Sign() int {
	if r.nan {
		return 0
	}
	return r.f.Sign()
}

// Exp returns the exponent e with r = m * 2^e and 0.5 <= |m| < 1.
// The result is 0 for zero, infinite and NaN values.
func (r *Real) Exp() int {
	if !r.IsFinite() || r.f.Sign() == 0 {
		return 0
	}
	return r.f.MantExp(nil)
}

// IsInt reports whether r is a finite integral value
func (r *Real) IsInt() bool {
	return r.IsFinite() && r.f.IsInt()
}

// Float64 returns the nearest float64
func (r *Real) Float64() float64 {
	if r.nan {
		return math.NaN()
	}
	f, _ := r.f.Float64()
	return f
}

// String renders the shortest decimal that reads back to the same value at
// this precision; specials are "nan", "inf" and "-inf".
func (r *Real) String() string {
	switch {
	case r.nan:
		return "nan"
	case r.f.IsInf():
		if r.f.Signbit() {
			return "-inf"
		}
		return "inf"
	}
	return r.f.Text('g', -1)
}

// Complex is an immutable pair of Reals
type Complex struct {
	re, im *Real
}

// NewComplex builds re + im*i from copies of its parts
func NewComplex(re, im *Real) *Complex {
	return &Complex{re: re.copy(), im: im.copy()}
}

// ComplexFromComplex128 returns c with both parts at 53 bits
func ComplexFromComplex128(c complex128) *Complex {
	return &Complex{re: RealFromFloat64(real(c)), im: RealFromFloat64(imag(c))}
}

func (r *Real) copy() *Real {
	return &Real{f: new(big.Float).Copy(r.f), nan: r.nan}
}

func (c *Complex) sealed()    {}
func (c *Complex) Kind() Kind { return KindComplex }

// Real returns the real part
func (c *Complex) Real() *Real { return c.re }

// Imag returns the imaginary part
func (c *Complex) Imag() *Real { return c.im }

// IsNaN reports whether either part is NaN
func (c *Complex) IsNaN() bool { return c.re.nan || c.im.nan }

// String renders "(re+imj)"
func (c *Complex) String() string {
	im := c.im.String()
	if im[0] != '-' {
		im = "+" + im
	}
	return "(" + c.re.String() + im + "j)"
}
