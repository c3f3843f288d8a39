// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: Rounded real primitives
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package kernel

import (
	"math/big"

	"github.com/msto63/mpnum/pkg/numeric"
)

// exactQuotientBits bounds the exponent gap up to which floordiv computes
// the integer quotient exactly.
const exactQuotientBits = 1 << 16

// RealOp applies op to two reals
func (b *Big) RealOp(op Op, x, y *numeric.Real, p Params) Result {
	switch op {
	case OpAdd:
		return b.realAdd(x, y, p, false)
	case OpSub:
		return b.realAdd(x, y, p, true)
	case OpMul:
		return b.realMul(x, y, p)
	case OpDiv:
		return b.realQuo(x, y, p)
	case OpFloorDiv:
		q, _ := b.RealDivMod(x, y, p)
		return q
	case OpMod:
		_, r := b.RealDivMod(x, y, p)
		return r
	case OpPow:
		return b.realPow(x, y, p)
	}
	return nanResult(p, 0)
}

func (b *Big) realAdd(x, y *numeric.Real, p Params, sub bool) Result {
	if x.IsNaN() || y.IsNaN() {
		return nanResult(p, 0)
	}
	xf, yf := x.Float(), y.Float()
	if sub {
		yf.Neg(yf)
	}
	switch {
	case xf.IsInf() && yf.IsInf():
		if xf.Signbit() != yf.Signbit() {
			return nanResult(p, 0)
		}
		return infResult(xf.Signbit(), p, 0)
	case xf.IsInf():
		return infResult(xf.Signbit(), p, 0)
	case yf.IsInf():
		return infResult(yf.Signbit(), p, 0)
	}

	z := work(p).Add(xf, yf)
	if z.Sign() == 0 {
		// exact zero: its sign depends on the requested mode
		z = new(big.Float).SetPrec(p.Prec).SetMode(p.Mode.Mode()).Add(xf, yf)
		return Result{Value: numeric.NewReal(z)}
	}
	return b.finish(z, p)
}

func (b *Big) realMul(x, y *numeric.Real, p Params) Result {
	if x.IsNaN() || y.IsNaN() {
		return nanResult(p, 0)
	}
	neg := x.Signbit() != y.Signbit()
	if x.IsInf() || y.IsInf() {
		if x.IsZero() || y.IsZero() {
			return nanResult(p, 0)
		}
		return infResult(neg, p, 0)
	}
	return b.finish(work(p).Mul(x.Float(), y.Float()), p)
}

func (b *Big) realQuo(x, y *numeric.Real, p Params) Result {
	if x.IsNaN() || y.IsNaN() {
		return nanResult(p, 0)
	}
	neg := x.Signbit() != y.Signbit()
	switch {
	case x.IsInf() && y.IsInf():
		return nanResult(p, 0)
	case x.IsInf():
		return infResult(neg, p, 0)
	case y.IsInf():
		return zeroResult(neg, p)
	case y.IsZero():
		if x.IsZero() {
			return nanResult(p, 0)
		}
		return infResult(neg, p, DivZero)
	}
	return b.finish(work(p).Quo(x.Float(), y.Float()), p)
}

// RealDivMod returns floor(x/y) and x - floor(x/y)*y, both rounded per p.
// The remainder carries the sign of y.
func (b *Big) RealDivMod(x, y *numeric.Real, p Params) (q, r Result) {
	neg := x.Signbit() != y.Signbit()
	switch {
	case x.IsNaN() || y.IsNaN() || x.IsInf():
		return nanResult(p, 0), nanResult(p, 0)
	case y.IsZero():
		if x.IsZero() {
			return nanResult(p, 0), nanResult(p, DivZero)
		}
		return infResult(neg, p, DivZero), nanResult(p, DivZero)
	case y.IsInf():
		if x.IsZero() || !neg {
			return zeroResult(neg, p), b.round(x.Float(), true, p)
		}
		return b.roundInt(bigNegOne, p), infResult(y.Signbit(), p, 0)
	case x.IsZero():
		return zeroResult(neg, p), zeroResult(y.Signbit(), p)
	}

	xf, yf := x.Float(), y.Float()
	if x.Exp() < y.Exp() {
		// |x| < |y|
		if !neg {
			return zeroResult(false, p), b.round(xf, true, p)
		}
		return b.roundInt(bigNegOne, p), b.realAdd(x, y, p, false)
	}

	ma, sa := mantissa(xf)
	mb, sb := mantissa(yf)
	ma.Abs(ma)
	mb.Abs(mb)

	// x = ma*2^sa, y = mb*2^sb, rewritten as X*2^s and Y*2^s
	d := sa - sb
	var X, Y *big.Int
	scale := sb
	switch {
	case d > exactQuotientBits:
		// remainder only, via 2^d mod mb
		X = new(big.Int).Exp(big.NewInt(2), big.NewInt(int64(d)), mb)
		X.Mul(X, ma)
		Y = mb
	case d >= 0:
		X = new(big.Int).Lsh(ma, uint(d))
		Y = mb
	default:
		X = ma
		Y = new(big.Int).Lsh(mb, uint(-d))
		scale = sa
	}
	Q, R := new(big.Int).QuoRem(X, Y, new(big.Int))

	// floor adjustment when the signs differ
	if neg && R.Sign() != 0 {
		Q.Add(Q, bigOne)
		R.Sub(Y, R)
	}
	if y.Signbit() {
		R.Neg(R)
	}

	if R.Sign() == 0 {
		r = zeroResult(y.Signbit(), p)
	} else {
		r = b.round(exactFloat(R, scale), true, p)
	}

	if d > exactQuotientBits {
		// the quotient is far beyond any integer boundary of interest
		z := work(p).Quo(xf, yf)
		if neg {
			z.Sub(z, big.NewFloat(1))
		}
		return b.finish(z, p), r
	}
	if neg {
		Q.Neg(Q)
	}
	if Q.Sign() == 0 {
		return zeroResult(neg, p), r
	}
	return b.roundInt(Q, p), r
}
