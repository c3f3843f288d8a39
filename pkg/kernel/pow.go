// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: Real power
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package kernel

import (
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"

	"github.com/msto63/mpnum/pkg/numeric"
)

// exactPowBits bounds the mantissa size of an integer power that is
// computed without rounding.
const exactPowBits = 1 << 16

// guardBits is the extra working precision for transcendental evaluation
const guardBits = 64

// oddInt reports whether a finite real is an odd integer
func oddInt(f *big.Float) bool {
	if !f.IsInt() {
		return false
	}
	if f.MantExp(nil) > int(f.Prec()) {
		return false
	}
	i, _ := f.Int(nil)
	return i.Bit(0) == 1
}

func (b *Big) realPow(x, y *numeric.Real, p Params) Result {
	// pow(x, ±0) = 1 and pow(1, y) = 1, even for NaN
	if y.IsZero() || (x.IsFinite() && x.Float().Cmp(big.NewFloat(1)) == 0) {
		return b.roundInt(bigOne, p)
	}
	if x.IsNaN() || y.IsNaN() {
		return nanResult(p, 0)
	}

	xf, yf := x.Float(), y.Float()
	yOdd := y.IsFinite() && oddInt(yf)
	ySign := yf.Sign()

	switch {
	case x.IsZero():
		neg := x.Signbit() && yOdd
		if ySign > 0 {
			return zeroResult(neg, p)
		}
		return infResult(neg, p, DivZero)

	case y.IsInf():
		c := new(big.Float).Abs(xf).Cmp(big.NewFloat(1))
		if c == 0 {
			// pow(-1, ±Inf) = 1
			return b.roundInt(bigOne, p)
		}
		if (c < 0) == (ySign > 0) {
			return zeroResult(false, p)
		}
		return infResult(false, p, 0)

	case x.IsInf():
		neg := x.Signbit() && yOdd
		if ySign < 0 {
			return zeroResult(neg, p)
		}
		return infResult(neg, p, 0)

	case x.Sign() < 0 && !y.IsInt():
		return nanResult(p, 0)
	}

	neg := x.Sign() < 0 && yOdd
	emin, emax := b.ExponentRange()

	// log2|x^y| decides out-of-range results before any big computation
	var mant big.Float
	ex := xf.MantExp(&mant)
	m, _ := mant.Float64()
	yv, _ := yf.Float64()
	l := yv * (float64(ex) + math.Log2(math.Abs(m)))
	switch {
	case l > float64(emax)+2:
		return overflow(neg, p, emax)
	case l < float64(emin)-3:
		tiny := new(big.Float).SetMantExp(big.NewFloat(0.75), emin-3)
		if neg {
			tiny.Neg(tiny)
		}
		return underflow(tiny, p, emin)
	}

	ax := new(big.Float).Abs(xf)
	if ax.Cmp(big.NewFloat(1)) == 0 {
		// pow(-1, integer)
		if neg {
			return b.roundInt(bigNegOne, p)
		}
		return b.roundInt(bigOne, p)
	}
	if y.IsInt() {
		n, _ := yf.Int(nil)
		if res, ok := b.exactPowInt(ax, n, neg, p); ok {
			return res
		}
	} else if h := new(big.Float).Mul(yf, big.NewFloat(2)); h.IsInt() {
		// y = k/2: raise an exact square root to k
		if s, ok := exactSqrt(ax); ok {
			k, _ := h.Int(nil)
			if res, ok := b.exactPowInt(s, k, neg, p); ok {
				return res
			}
		}
	}

	wp := p.Prec + 2 + guardBits
	z := bigfloat.Pow(new(big.Float).SetPrec(wp).Set(ax), new(big.Float).SetPrec(wp).Set(yf))
	if neg {
		z.Neg(z)
	}
	v := work(p).Set(z)
	return b.round(setOdd(v), false, p)
}

// exactPowInt computes ax^n (ax > 0) without intermediate rounding when the
// result is small enough, negating it when neg is set.
func (b *Big) exactPowInt(ax *big.Float, n *big.Int, neg bool, p Params) (Result, bool) {
	m, s := mantissa(ax)
	if !n.IsInt64() {
		return Result{}, false
	}
	k := n.Int64()
	if k < 0 {
		k = -k
	}
	if uint64(m.BitLen())*uint64(k) > exactPowBits {
		return Result{}, false
	}
	pm := new(big.Int).Exp(m, big.NewInt(k), nil)
	if neg {
		pm.Neg(pm)
	}
	pf := exactFloat(pm, s*int(k))
	if n.Sign() >= 0 {
		return b.round(pf, true, p), true
	}
	return b.finish(work(p).Quo(big.NewFloat(1), pf), p), true
}

// exactSqrt returns sqrt(ax) when it is exactly representable
func exactSqrt(ax *big.Float) (*big.Float, bool) {
	m, s := mantissa(ax)
	if s%2 != 0 {
		m.Lsh(m, 1)
		s--
	}
	r := new(big.Int).Sqrt(m)
	if new(big.Int).Mul(r, r).Cmp(m) != 0 {
		return nil, false
	}
	return exactFloat(r, s/2), true
}
