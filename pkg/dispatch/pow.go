// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     dispatch
// Description: Power, modular power, comparison and in-place integer ops
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package dispatch

import (
	"math/big"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/pkg/coerce"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/numeric"
)

// ErrUnordered is returned by Cmp when an operand is NaN and the erange
// condition is not trapped.
var ErrUnordered = mdwerror.Sentinel(mdwerror.CodeInvalidOperation, "unordered comparison")

// Pow returns a raised to b.
//
//	Integer ^ Integer >= 0     Integer
//	Integer ^ Integer < 0      Real, rounded once from the exact rational
//	Rational ^ Integer         Rational; Real when too large to hold exactly;
//	                           a zero base with a negative exponent fails
//	exact ^ Rational           Rational via exact roots; no exact root fails
//	Real involved              Real
//	Complex involved           Complex
//
// A negative Real base with a non-integer exponent gives NaN, or a Complex
// result when the context allows complex results.
func (d *Dispatcher) Pow(a, b any) (numeric.Value, error) {
	c := d.begin(kernel.OpPow)
	ka, kb, err := c.kinds(a, b)
	if err != nil {
		return nil, err
	}

	switch {
	case ka == numeric.KindComplex || kb == numeric.KindComplex:
		return c.complex(a, b)
	case ka == numeric.KindReal || kb == numeric.KindReal:
		return c.realPow(a, b)
	case ka == numeric.KindInteger && kb == numeric.KindInteger:
		x, y, err := c.ints(a, b)
		if err != nil {
			return nil, err
		}
		if y.Sign() >= 0 {
			z, err := d.kernel.IntOp(kernel.OpPow, x, y)
			if err != nil {
				return nil, err
			}
			return numeric.NewInteger(z), nil
		}
		if x.Sign() == 0 {
			return c.realPow(a, b)
		}
		r, err := kernel.RatPowInt(new(big.Rat).SetInt(x), y)
		if err != nil {
			// too large to hold exactly
			return c.realPow(a, b)
		}
		return c.rounded(r)
	default:
		x, y, err := c.rats(a, b)
		if err != nil {
			return nil, err
		}
		if y.IsInt() && x.Sign() != 0 {
			r, err := kernel.RatPowInt(x, y.Num())
			if err != nil {
				// too large to hold exactly
				return c.realPow(a, b)
			}
			return numeric.NewRational(r), nil
		}
		return d.kernel.RatOp(kernel.OpPow, x, y)
	}
}

func (c *call) realPow(a, b any) (numeric.Value, error) {
	x, y, err := c.reals(a, b)
	if err != nil {
		return nil, err
	}
	if c.ctx.AllowComplex() && x.IsFinite() && x.Sign() < 0 && y.IsFinite() && !y.IsInt() {
		return c.complex(a, b)
	}
	res := c.d.kernel.RealOp(kernel.OpPow, x, y, c.ctx.Params())
	if err := c.report(res.Flags); err != nil {
		return nil, err
	}
	return res.Value, nil
}

// PowMod returns a^b modulo m for integers. A negative exponent uses the
// modular inverse of a. The result lies in [0, m) for positive m and in
// (m, 0] for negative m.
func (d *Dispatcher) PowMod(a, b, m any) (numeric.Value, error) {
	c := d.begin(kernel.OpPow)
	for _, v := range []any{a, b, m} {
		if d.promoter.Classify(v) != numeric.KindInteger {
			return nil, errors.NotSupported(errors.ModuleDispatch, "pow", coerce.TypeName(v))
		}
	}
	x, y, err := c.ints(a, b)
	if err != nil {
		return nil, err
	}
	mv, err := c.promote(m, numeric.KindInteger)
	if err != nil {
		return nil, err
	}
	mod := mv.(*numeric.Integer).Big()
	if mod.Sign() == 0 {
		return nil, errors.Domain(errors.ModuleDispatch, "pow", "modulus is zero")
	}

	am := new(big.Int).Abs(mod)
	base := new(big.Int).Mod(x, am)
	exp := y
	if y.Sign() < 0 {
		if base.ModInverse(base, am) == nil {
			return nil, errors.Domain(errors.ModuleDispatch, "pow", "base is not invertible for the modulus")
		}
		exp = new(big.Int).Neg(y)
	}
	r := new(big.Int).Exp(base, exp, am)
	if mod.Sign() < 0 && r.Sign() != 0 {
		r.Add(r, mod)
	}
	return numeric.NewInteger(r), nil
}

// Cmp compares a and b exactly and returns -1, 0 or +1. Comparing with NaN
// raises erange; untrapped, it returns ErrUnordered. Complex values are not
// ordered.
func (d *Dispatcher) Cmp(a, b any) (int, error) {
	c := d.begin(kernel.OpSub)
	c.name = "cmp"
	ka, kb, err := c.kinds(a, b)
	if err != nil {
		return 0, err
	}
	if ka == numeric.KindComplex || kb == numeric.KindComplex {
		return 0, errors.NotSupported(errors.ModuleDispatch, c.name, coerce.TypeName(a), coerce.TypeName(b))
	}
	x, err := c.promote(a, ka)
	if err != nil {
		return 0, err
	}
	y, err := c.promote(b, kb)
	if err != nil {
		return 0, err
	}
	r, cond := d.kernel.Compare(x, y)
	if cond != 0 {
		if err := c.report(cond); err != nil {
			return 0, err
		}
		return 0, ErrUnordered
	}
	return r, nil
}

// IAdd adds b to m in place when b is an integer and returns m. Other
// operands leave m untouched and return a new value like Add.
func (d *Dispatcher) IAdd(m *numeric.MutableInteger, b any) (numeric.Value, error) {
	return d.inplace(kernel.OpAdd, m, b)
}

// ISub subtracts b from m in place, see IAdd
func (d *Dispatcher) ISub(m *numeric.MutableInteger, b any) (numeric.Value, error) {
	return d.inplace(kernel.OpSub, m, b)
}

// IMul multiplies m by b in place, see IAdd
func (d *Dispatcher) IMul(m *numeric.MutableInteger, b any) (numeric.Value, error) {
	return d.inplace(kernel.OpMul, m, b)
}

func (d *Dispatcher) inplace(op kernel.Op, m *numeric.MutableInteger, b any) (numeric.Value, error) {
	if m == nil {
		return nil, errors.NotSupported(errors.ModuleDispatch, op.String(), "nil")
	}
	if d.promoter.Classify(b) != numeric.KindInteger {
		return d.arith(op, m, b)
	}
	c := d.begin(op)
	y, err := c.promote(b, numeric.KindInteger)
	if err != nil {
		return nil, err
	}
	z, err := d.kernel.IntOp(op, m.Big(), y.(*numeric.Integer).Big())
	if err != nil {
		return nil, err
	}
	m.Set(z)
	return m, nil
}
