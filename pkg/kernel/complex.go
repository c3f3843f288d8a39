// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: Rounded complex primitives
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

// exactQuoExp bounds the operand exponents for which complex division goes
// through exact rationals.
const exactQuoExp = 1 << 14

// ComplexOp applies op to two complex values. Each part is rounded with its
// own parameters.
func (b *Big) ComplexOp(op Op, x, y *numeric.Complex, re, im Params) Result {
	switch op {
	case OpAdd, OpSub:
		return combine(
			b.RealOp(op, x.Real(), y.Real(), re),
			b.RealOp(op, x.Imag(), y.Imag(), im))
	case OpMul:
		return b.complexMul(x, y, re, im)
	case OpDiv:
		return b.complexQuo(x, y, re, im)
	case OpPow:
		return b.complexPow(x, y, re, im)
	}
	return combine(nanResult(re, 0), nanResult(im, 0))
}

func combine(r, i Result) Result {
	t := r.Ternary
	if t == 0 {
		t = i.Ternary
	}
	return Result{
		Value:   numeric.NewComplex(r.Value.(*numeric.Real), i.Value.(*numeric.Real)),
		Ternary: t,
		Flags:   r.Flags | i.Flags,
	}
}

func finiteComplex(z *numeric.Complex) bool {
	return z.Real().IsFinite() && z.Imag().IsFinite()
}

// exactProduct multiplies two finite reals without rounding
func exactProduct(x, y *numeric.Real) *big.Float {
	return new(big.Float).SetPrec(x.Prec() + y.Prec()).Mul(x.Float(), y.Float())
}

// sum rounds u + v (or u - v) once, with IEEE signed-zero rules
func (b *Big) sum(u, v *big.Float, sub bool, p Params) Result {
	z := work(p)
	if sub {
		z.Sub(u, v)
	} else {
		z.Add(u, v)
	}
	if z.Sign() == 0 {
		z = new(big.Float).SetPrec(p.Prec).SetMode(p.Mode.Mode())
		if sub {
			z.Sub(u, v)
		} else {
			z.Add(u, v)
		}
		return Result{Value: numeric.NewReal(z)}
	}
	return b.finish(z, p)
}

func (b *Big) complexMul(x, y *numeric.Complex, re, im Params) Result {
	a, bb, c, d := x.Real(), x.Imag(), y.Real(), y.Imag()
	if x.IsNaN() || y.IsNaN() {
		return combine(nanResult(re, 0), nanResult(im, 0))
	}
	if finiteComplex(x) && finiteComplex(y) {
		return combine(
			b.sum(exactProduct(a, c), exactProduct(bb, d), true, re),
			b.sum(exactProduct(a, d), exactProduct(bb, c), false, im))
	}

	// infinities: evaluate the textbook formula part by part
	ac := b.RealOp(OpMul, a, c, re)
	bd := b.RealOp(OpMul, bb, d, re)
	ad := b.RealOp(OpMul, a, d, im)
	bc := b.RealOp(OpMul, bb, c, im)
	r := b.RealOp(OpSub, ac.Value.(*numeric.Real), bd.Value.(*numeric.Real), re)
	i := b.RealOp(OpAdd, ad.Value.(*numeric.Real), bc.Value.(*numeric.Real), im)
	r.Flags |= ac.Flags | bd.Flags
	i.Flags |= ad.Flags | bc.Flags
	return combine(r, i)
}

func (b *Big) complexQuo(x, y *numeric.Complex, re, im Params) Result {
	a, bb, c, d := x.Real(), x.Imag(), y.Real(), y.Imag()
	switch {
	case x.IsNaN() || y.IsNaN():
		return combine(nanResult(re, 0), nanResult(im, 0))
	case c.IsZero() && d.IsZero():
		return combine(b.realQuo(a, c, re), b.realQuo(bb, c, im))
	case finiteComplex(x) && !finiteComplex(y):
		return combine(zeroResult(false, re), zeroResult(false, im))
	case !finiteComplex(x):
		den := b.sumOfSquares(c, d, re)
		r := b.realQuo(b.dot(a, c, bb, d, false, re), den, re)
		i := b.realQuo(b.dot(bb, c, a, d, true, im), den, im)
		return combine(r, i)
	}

	if smallExponents(a, bb, c, d) {
		ra, rb, rc, rd := exactRat(a), exactRat(bb), exactRat(c), exactRat(d)
		den := new(big.Rat).Mul(rc, rc)
		den.Add(den, new(big.Rat).Mul(rd, rd))
		nr := new(big.Rat).Mul(ra, rc)
		nr.Add(nr, new(big.Rat).Mul(rb, rd))
		ni := new(big.Rat).Mul(rb, rc)
		ni.Sub(ni, new(big.Rat).Mul(ra, rd))
		return combine(b.RoundRat(nr.Quo(nr, den), re), b.RoundRat(ni.Quo(ni, den), im))
	}

	wp := maxPrec(re, im) + 2 + guardBits
	den := new(big.Float).SetPrec(wp).Add(exactProduct(c, c), exactProduct(d, d))
	nr := new(big.Float).SetPrec(wp).Add(exactProduct(a, c), exactProduct(bb, d))
	ni := new(big.Float).SetPrec(wp).Sub(exactProduct(bb, c), exactProduct(a, d))
	return combine(b.approx(nr.Quo(nr, den), re), b.approx(ni.Quo(ni, den), im))
}

// dot returns u1*v1 + u2*v2 (or minus) rounded per p
func (b *Big) dot(u1, v1, u2, v2 *numeric.Real, sub bool, p Params) *numeric.Real {
	op := OpAdd
	if sub {
		op = OpSub
	}
	l := b.RealOp(OpMul, u1, v1, p).Value.(*numeric.Real)
	r := b.RealOp(OpMul, u2, v2, p).Value.(*numeric.Real)
	return b.RealOp(op, l, r, p).Value.(*numeric.Real)
}

func (b *Big) sumOfSquares(c, d *numeric.Real, p Params) *numeric.Real {
	return b.dot(c, c, d, d, false, p)
}

func smallExponents(vs ...*numeric.Real) bool {
	for _, v := range vs {
		if e := v.Exp(); e > exactQuoExp || e < -exactQuoExp {
			return false
		}
	}
	return true
}

func maxPrec(re, im Params) uint {
	if re.Prec > im.Prec {
		return re.Prec
	}
	return im.Prec
}

// approx rounds a value known to carry an error below its last bit
func (b *Big) approx(f *big.Float, p Params) Result {
	if f.Sign() == 0 || f.IsInf() {
		return b.round(f, true, p)
	}
	return b.round(setOdd(work(p).Set(f)), false, p)
}

func (b *Big) complexPow(x, y *numeric.Complex, re, im Params) Result {
	c, d := y.Real(), y.Imag()
	switch {
	case c.IsZero() && d.IsZero():
		return combine(b.roundInt(bigOne, re), zeroResult(false, im))
	case x.IsNaN() || y.IsNaN() || !finiteComplex(x) || !finiteComplex(y):
		return combine(nanResult(re, 0), nanResult(im, 0))
	case x.Real().IsZero() && x.Imag().IsZero():
		if d.IsZero() && c.Sign() > 0 {
			return combine(zeroResult(false, re), zeroResult(false, im))
		}
		return combine(nanResult(re, DivZero), nanResult(im, DivZero))
	}

	if d.IsZero() && c.IsInt() {
		n, _ := c.Float().Int(nil)
		if res, ok := b.gaussianPow(x, n, re, im); ok {
			return res
		}
	}

	// x^y = exp(y * log x)
	wp := maxPrec(re, im) + 2 + guardBits
	xr, xi := x.Real().Float(), x.Imag().Float()
	abs2 := new(big.Float).SetPrec(wp).Mul(xr, xr)
	abs2.Add(abs2, new(big.Float).SetPrec(wp).Mul(xi, xi))
	lnAbs := bigfloat.Log(abs2)
	lnAbs.SetMantExp(lnAbs, -1)
	theta := atan2(xi, xr, wp)

	cf, df := c.Float(), d.Float()
	u := new(big.Float).SetPrec(wp).Mul(cf, lnAbs)
	u.Sub(u, new(big.Float).SetPrec(wp).Mul(df, theta))
	v := new(big.Float).SetPrec(wp).Mul(cf, theta)
	v.Add(v, new(big.Float).SetPrec(wp).Mul(df, lnAbs))

	sin, cos := sincos(v, wp)
	emin, emax := b.ExponentRange()
	uv, _ := u.Float64()
	switch {
	case uv > (float64(emax)+2)*math.Ln2:
		return combine(overflow(cos.Signbit(), re, emax), overflow(sin.Signbit(), im, emax))
	case uv < (float64(emin)-3)*math.Ln2:
		return combine(underflow(tinyLike(cos, emin), re, emin), underflow(tinyLike(sin, emin), im, emin))
	}

	mag := bigfloat.Exp(u)
	r := new(big.Float).SetPrec(wp).Mul(mag, cos)
	i := new(big.Float).SetPrec(wp).Mul(mag, sin)
	return combine(b.approx(r, re), b.approx(i, im))
}

// tinyLike returns a value far below the exponent range with the sign of s
func tinyLike(s *big.Float, emin int) *big.Float {
	t := new(big.Float).SetMantExp(big.NewFloat(0.75), emin-3)
	if s.Signbit() {
		t.Neg(t)
	}
	return t
}

// gaussianPow raises x to an integer power exactly when the result stays
// small, then rounds each part once.
func (b *Big) gaussianPow(x *numeric.Complex, n *big.Int, re, im Params) (Result, bool) {
	if !n.IsInt64() {
		return Result{}, false
	}
	k := n.Int64()
	if k < 0 {
		k = -k
	}

	A, B, s, ok := gaussian(x)
	if !ok {
		return Result{}, false
	}
	bits := A.BitLen()
	if B.BitLen() > bits {
		bits = B.BitLen()
	}
	if uint64(bits+1)*uint64(k) > exactPowBits {
		return Result{}, false
	}

	// binary powering of A + Bi
	pre, pim := big.NewInt(1), new(big.Int)
	br, bi := A, B
	for e := k; e > 0; e >>= 1 {
		if e&1 == 1 {
			pre, pim = gaussMul(pre, pim, br, bi)
		}
		if e > 1 {
			br, bi = gaussMul(br, bi, br, bi)
		}
	}
	scale := s * int(k)

	if n.Sign() >= 0 {
		return combine(b.roundScaled(pre, scale, re), b.roundScaled(pim, scale, im)), true
	}

	// 1/(P + Qi) = (P - Qi) / (P² + Q²), scaled by 2^-scale
	den := new(big.Int).Mul(pre, pre)
	den.Add(den, new(big.Int).Mul(pim, pim))
	nr := new(big.Rat).SetFrac(pre, den)
	ni := new(big.Rat).SetFrac(new(big.Int).Neg(pim), den)
	f := new(big.Rat).SetInt(new(big.Int).Lsh(bigOne, uint(abs(scale))))
	if scale > 0 {
		nr.Quo(nr, f)
		ni.Quo(ni, f)
	} else {
		nr.Mul(nr, f)
		ni.Mul(ni, f)
	}
	return combine(b.RoundRat(nr, re), b.RoundRat(ni, im)), true
}

func (b *Big) roundScaled(m *big.Int, scale int, p Params) Result {
	if m.Sign() == 0 {
		return zeroResult(false, p)
	}
	return b.round(exactFloat(m, scale), true, p)
}

// gaussian writes a finite nonzero x as (A + Bi) * 2^s with integer A, B
func gaussian(x *numeric.Complex) (A, B *big.Int, s int, ok bool) {
	re, im := x.Real().Float(), x.Imag().Float()
	A, B = new(big.Int), new(big.Int)
	var sa, sb int
	hasA, hasB := re.Sign() != 0, im.Sign() != 0
	if hasA {
		A, sa = mantissa(re)
	}
	if hasB {
		B, sb = mantissa(im)
	}
	switch {
	case hasA && hasB:
		s = sa
		if sb < s {
			s = sb
		}
		if sa-s > exactPowBits || sb-s > exactPowBits {
			return nil, nil, 0, false
		}
		A.Lsh(A, uint(sa-s))
		B.Lsh(B, uint(sb-s))
	case hasA:
		s = sa
	default:
		s = sb
	}
	return A, B, s, true
}

func gaussMul(a, b, c, d *big.Int) (*big.Int, *big.Int) {
	r := new(big.Int).Mul(a, c)
	r.Sub(r, new(big.Int).Mul(b, d))
	i := new(big.Int).Mul(a, d)
	i.Add(i, new(big.Int).Mul(b, c))
	return r, i
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
