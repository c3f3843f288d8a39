// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: Pi, arctangent and sine/cosine for complex powers
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package kernel

import (
	"math/big"
	"sync"
)

var piCache struct {
	sync.Mutex
	v *big.Float
}

func one(prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetInt64(1)
}

// negligible reports whether t no longer changes a sum near 1 at prec bits
func negligible(t *big.Float, prec uint) bool {
	return t.Sign() == 0 || t.MantExp(nil) < -int(prec)-4
}

// pi returns π at prec bits using Machin's formula
func pi(prec uint) *big.Float {
	piCache.Lock()
	defer piCache.Unlock()
	if piCache.v == nil || piCache.v.Prec() < prec {
		wp := prec + 16
		a := atanInv(5, wp)
		a.Mul(a, big.NewFloat(16))
		c := atanInv(239, wp)
		c.Mul(c, big.NewFloat(4))
		piCache.v = a.Sub(a, c)
	}
	return new(big.Float).SetPrec(prec).Set(piCache.v)
}

// atanInv returns atan(1/n)
func atanInv(n int64, prec uint) *big.Float {
	n2 := new(big.Float).SetPrec(prec).SetInt64(n * n)
	pw := new(big.Float).SetPrec(prec).Quo(one(prec), new(big.Float).SetInt64(n))
	sum := new(big.Float).SetPrec(prec).Set(pw)
	for k := int64(1); ; k++ {
		pw.Quo(pw, n2)
		t := new(big.Float).SetPrec(prec).Quo(pw, new(big.Float).SetInt64(2*k+1))
		if negligible(t, prec) {
			return sum
		}
		if k%2 == 1 {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
	}
}

// atan returns the arctangent of a finite x
func atan(x *big.Float, prec uint) *big.Float {
	wp := prec + 32
	z := new(big.Float).SetPrec(wp).Abs(x)
	if z.Sign() == 0 {
		return new(big.Float).SetPrec(prec).Set(x)
	}
	invert := z.Cmp(one(wp)) > 0
	if invert {
		z.Quo(one(wp), z)
	}

	// atan(z) = 2*atan(z / (1 + sqrt(1 + z^2)))
	halvings := 0
	for z.MantExp(nil) > -8 {
		t := new(big.Float).SetPrec(wp).Mul(z, z)
		t.Add(t, one(wp))
		t.Sqrt(t)
		t.Add(t, one(wp))
		z.Quo(z, t)
		halvings++
	}

	z2 := new(big.Float).SetPrec(wp).Mul(z, z)
	pw := new(big.Float).SetPrec(wp).Set(z)
	sum := new(big.Float).SetPrec(wp).Set(z)
	for k := int64(1); ; k++ {
		pw.Mul(pw, z2)
		t := new(big.Float).SetPrec(wp).Quo(pw, new(big.Float).SetInt64(2*k+1))
		if negligible(t, wp) {
			break
		}
		if k%2 == 1 {
			sum.Sub(sum, t)
		} else {
			sum.Add(sum, t)
		}
	}
	sum.SetMantExp(sum, halvings)

	if invert {
		h := pi(wp)
		h.SetMantExp(h, -1)
		sum.Sub(h, sum)
	}
	if x.Sign() < 0 {
		sum.Neg(sum)
	}
	return new(big.Float).SetPrec(prec).Set(sum)
}

// atan2 returns the argument of x + iy for finite x and y
func atan2(y, x *big.Float, prec uint) *big.Float {
	wp := prec + 8
	switch {
	case x.Sign() > 0:
		return atan(new(big.Float).SetPrec(wp).Quo(y, x), prec)
	case x.Sign() < 0:
		p := pi(wp)
		if y.Signbit() {
			p.Neg(p)
		}
		if y.Sign() == 0 {
			return new(big.Float).SetPrec(prec).Set(p)
		}
		a := atan(new(big.Float).SetPrec(wp).Quo(y, x), wp)
		return new(big.Float).SetPrec(prec).Add(a, p)
	}
	// x is ±0
	switch {
	case y.Sign() == 0:
		if x.Signbit() {
			p := pi(prec)
			if y.Signbit() {
				p.Neg(p)
			}
			return p
		}
		return new(big.Float).SetPrec(prec).Set(y)
	default:
		h := pi(prec)
		h.SetMantExp(h, -1)
		if y.Sign() < 0 {
			h.Neg(h)
		}
		return h
	}
}

// sincos returns sin(v) and cos(v) for a finite v
func sincos(v *big.Float, prec uint) (sin, cos *big.Float) {
	const halvings = 8
	wp := prec + 32 + halvings
	if e := v.MantExp(nil); e > 0 {
		wp += uint(e)
	}

	// reduce into [-π, π]
	twoPi := pi(wp)
	twoPi.SetMantExp(twoPi, 1)
	r := new(big.Float).SetPrec(wp).Set(v)
	k := new(big.Float).SetPrec(wp).Quo(r, twoPi)
	ki := roundHalf(k)
	if ki.Sign() != 0 {
		kf := new(big.Float).SetPrec(wp).SetInt(ki)
		r.Sub(r, kf.Mul(kf, twoPi))
	}
	r.SetMantExp(r, -halvings)

	// Taylor series of both functions on the small argument
	s := new(big.Float).SetPrec(wp).Set(r)
	c := one(wp)
	term := new(big.Float).SetPrec(wp).Set(r)
	for n := int64(2); ; n++ {
		term.Mul(term, r)
		term.Quo(term, new(big.Float).SetInt64(n))
		if negligible(term, wp) {
			break
		}
		switch n % 4 {
		case 0:
			c.Add(c, term)
		case 1:
			s.Add(s, term)
		case 2:
			c.Sub(c, term)
		case 3:
			s.Sub(s, term)
		}
	}

	for i := 0; i < halvings; i++ {
		// sin 2a = 2 sin a cos a, cos 2a = cos²a - sin²a
		s2 := new(big.Float).SetPrec(wp).Mul(s, c)
		s2.SetMantExp(s2, 1)
		c2 := new(big.Float).SetPrec(wp).Mul(c, c)
		c2.Sub(c2, new(big.Float).SetPrec(wp).Mul(s, s))
		s, c = s2, c2
	}
	return s, c
}

// roundHalf rounds f to the nearest integer
func roundHalf(f *big.Float) *big.Int {
	h := new(big.Float).SetPrec(f.Prec() + 1).Set(f)
	if h.Sign() < 0 {
		h.Sub(h, big.NewFloat(0.5))
	} else {
		h.Add(h, big.NewFloat(0.5))
	}
	i, _ := h.Int(nil)
	return i
}
