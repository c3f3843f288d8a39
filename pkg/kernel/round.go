// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: Single rounding into a bounded exponent range
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package kernel

import (
	"math/big"

	"github.com/msto63/mpnum/pkg/numeric"
)

// Intermediate results are computed at Prec+2 bits, truncated, and have
// their last bit forced to 1 when inexact (round-to-odd). Rounding such a
// value once more to Prec bits or fewer gives the correctly rounded result
// in every mode.

// work returns an empty float for an intermediate result
func work(p Params) *big.Float {
	return new(big.Float).SetPrec(p.Prec + 2).SetMode(big.ToZero)
}

// sticky applies round-to-odd to a truncated intermediate result
func sticky(z *big.Float) (*big.Float, bool) {
	if z.Acc() == big.Exact || z.IsInf() || z.Sign() == 0 {
		return z, z.Acc() == big.Exact
	}
	return setOdd(z), false
}

func setOdd(z *big.Float) *big.Float {
	prec := int(z.Prec())
	e := z.MantExp(nil)
	i, _ := new(big.Float).SetMantExp(z, prec-e).Int(nil)
	neg := i.Sign() < 0
	i.Abs(i)
	i.SetBit(i, 0, 1)
	if neg {
		i.Neg(i)
	}
	out := new(big.Float).SetPrec(uint(prec)).SetInt(i)
	return out.SetMantExp(out, e-prec)
}

// exactFloat returns m * 2^s without rounding
func exactFloat(m *big.Int, s int) *big.Float {
	prec := uint(m.BitLen())
	if prec < 64 {
		prec = 64
	}
	f := new(big.Float).SetPrec(prec).SetInt(m)
	return f.SetMantExp(f, s)
}

// mantissa splits a finite nonzero f into an integer m and scale s with
// f = m * 2^s and m odd.
func mantissa(f *big.Float) (*big.Int, int) {
	prec := int(f.MinPrec())
	e := f.MantExp(nil)
	m, _ := new(big.Float).SetMantExp(f, prec-e).Int(nil)
	return m, e - prec
}

// finish rounds an intermediate result produced at work precision
func (b *Big) finish(z *big.Float, p Params) Result {
	v, exact := sticky(z)
	return b.round(v, exact, p)
}

func (b *Big) round(v *big.Float, exact bool, p Params) Result {
	emin, emax := b.ExponentRange()
	return roundRange(v, exact, p, emin, emax)
}

// roundRange rounds v to p within [emin, emax]. v must be exact, or
// odd-rounded at p.Prec+2 bits or more.
func roundRange(v *big.Float, exact bool, p Params, emin, emax int) Result {
	if v.IsInf() {
		return overflow(v.Signbit(), p, emax)
	}
	if v.Sign() == 0 {
		return Result{Value: numeric.NewReal(new(big.Float).SetPrec(p.Prec).Set(v))}
	}

	mode := p.Mode.Mode()
	ev := v.MantExp(nil)
	tiny := false
	var r *big.Float
	if p.Subnormalize && ev < emin+int(p.Prec)-1 {
		q := ev - emin + 1
		if q < 1 {
			return underflow(v, p, emin)
		}
		r = new(big.Float).SetPrec(uint(q)).SetMode(mode).Set(v)
		r.SetPrec(p.Prec)
		tiny = true
	} else {
		r = new(big.Float).SetPrec(p.Prec).SetMode(mode).Set(v)
	}

	e := r.MantExp(nil)
	if e > emax {
		return overflow(v.Signbit(), p, emax)
	}
	if e < emin {
		return underflow(v, p, emin)
	}

	res := Result{Value: numeric.NewReal(r), Ternary: r.Cmp(v)}
	if !exact && res.Ternary == 0 {
		// unreachable for odd-rounded input; keep the flags honest anyway
		res.Ternary = 1
	}
	if res.Ternary != 0 {
		res.Flags |= Inexact
		if tiny {
			res.Flags |= Underflow
		}
	}
	return res
}

// overflow returns the clamped result for a magnitude beyond emax
func overflow(neg bool, p Params, emax int) Result {
	toInf := true
	switch p.Mode {
	case RoundToZero:
		toInf = false
	case RoundUp:
		toInf = !neg
	case RoundDown:
		toInf = neg
	}

	res := Result{Flags: Overflow | Inexact, Ternary: 1}
	if neg {
		res.Ternary = -1
	}
	if toInf {
		if neg {
			res.Value = numeric.Inf(-1, p.Prec)
		} else {
			res.Value = numeric.Inf(1, p.Prec)
		}
		return res
	}
	res.Ternary = -res.Ternary
	m := maxFinite(p.Prec, emax)
	if neg {
		m.Neg(m)
	}
	res.Value = numeric.NewReal(m)
	return res
}

// maxFinite returns (1 - 2^-prec) * 2^emax
func maxFinite(prec uint, emax int) *big.Float {
	m := new(big.Int).Lsh(big.NewInt(1), prec)
	m.Sub(m, big.NewInt(1))
	f := new(big.Float).SetPrec(prec).SetInt(m)
	return f.SetMantExp(f, emax-int(prec))
}

// underflow returns zero or the smallest magnitude 2^(emin-1) for a value
// below the exponent range
func underflow(v *big.Float, p Params, emin int) Result {
	neg := v.Signbit()
	toMin := false
	switch p.Mode {
	case RoundToNearest, RoundDefault:
		half := new(big.Float).SetMantExp(big.NewFloat(0.5), emin-1)
		toMin = new(big.Float).Abs(v).Cmp(half) > 0
	case RoundAwayZero:
		toMin = true
	case RoundUp:
		toMin = !neg
	case RoundDown:
		toMin = neg
	}

	r := new(big.Float).SetPrec(p.Prec)
	if toMin {
		r.SetMantExp(big.NewFloat(0.5), emin)
	}
	if neg {
		r.Neg(r)
	}
	return Result{Value: numeric.NewReal(r), Ternary: r.Cmp(v), Flags: Underflow | Inexact}
}

func nanResult(p Params, flags Condition) Result {
	return Result{Value: numeric.NaN(p.Prec), Flags: Invalid | flags}
}

func infResult(neg bool, p Params, flags Condition) Result {
	sign := 1
	if neg {
		sign = -1
	}
	return Result{Value: numeric.Inf(sign, p.Prec), Flags: flags}
}

func zeroResult(neg bool, p Params) Result {
	return Result{Value: numeric.Zero(neg, p.Prec)}
}

// RoundRat rounds an exact rational once
func (b *Big) RoundRat(r *big.Rat, p Params) Result {
	if r.Sign() == 0 {
		return zeroResult(false, p)
	}
	return b.finish(work(p).SetRat(r), p)
}

// roundInt rounds an exact integer once
func (b *Big) roundInt(i *big.Int, p Params) Result {
	return b.round(exactFloat(i, 0), true, p)
}
