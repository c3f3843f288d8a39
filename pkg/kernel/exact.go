// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: Exact integer and rational primitives
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package kernel

import (
	"math/big"

	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/pkg/numeric"
)

// MaxPowBits bounds the estimated size of an exact integer or rational power
const MaxPowBits = 1 << 32

var (
	bigOne    = big.NewInt(1)
	bigNegOne = big.NewInt(-1)
)

// IntOp applies op to two integers
func (b *Big) IntOp(op Op, x, y *big.Int) (*big.Int, error) {
	z := new(big.Int)
	switch op {
	case OpAdd:
		return z.Add(x, y), nil
	case OpSub:
		return z.Sub(x, y), nil
	case OpMul:
		return z.Mul(x, y), nil
	case OpFloorDiv:
		if y.Sign() == 0 {
			return nil, errors.ZeroDivision(errors.ModuleKernel, op.String())
		}
		q, _ := FloorDivMod(x, y)
		return q, nil
	case OpMod:
		if y.Sign() == 0 {
			return nil, errors.ZeroDivision(errors.ModuleKernel, op.String())
		}
		_, r := FloorDivMod(x, y)
		return r, nil
	case OpPow:
		return IntPow(x, y)
	}
	return nil, errors.NotSupported(errors.ModuleKernel, op.String(), "Integer", "Integer")
}

// FloorDivMod returns q = floor(x/y) and r = x - q*y; r has the sign of y.
// y must be nonzero.
func FloorDivMod(x, y *big.Int) (q, r *big.Int) {
	q, r = new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 && r.Sign() != y.Sign() {
		q.Sub(q, bigOne)
		r.Add(r, y)
	}
	return q, r
}

// IntPow raises x to a nonnegative integer power
func IntPow(x, n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, errors.Domain(errors.ModuleKernel, "pow", "negative exponent for integer power")
	}
	switch {
	case n.Sign() == 0 || x.Cmp(bigOne) == 0:
		return big.NewInt(1), nil
	case x.Sign() == 0:
		return new(big.Int), nil
	case x.Cmp(bigNegOne) == 0:
		if n.Bit(0) == 1 {
			return big.NewInt(-1), nil
		}
		return big.NewInt(1), nil
	}
	if n.BitLen() > 32 || uint64(x.BitLen())*n.Uint64() > MaxPowBits {
		return nil, errors.Domain(errors.ModuleKernel, "pow", "result too large")
	}
	return new(big.Int).Exp(x, n, nil), nil
}

// RatOp applies op to two rationals
func (b *Big) RatOp(op Op, x, y *big.Rat) (numeric.Value, error) {
	z := new(big.Rat)
	switch op {
	case OpAdd:
		return numeric.NewRational(z.Add(x, y)), nil
	case OpSub:
		return numeric.NewRational(z.Sub(x, y)), nil
	case OpMul:
		return numeric.NewRational(z.Mul(x, y)), nil
	case OpDiv:
		if y.Sign() == 0 {
			return nil, errors.ZeroDivision(errors.ModuleKernel, op.String())
		}
		return numeric.NewRational(z.Quo(x, y)), nil
	case OpFloorDiv:
		if y.Sign() == 0 {
			return nil, errors.ZeroDivision(errors.ModuleKernel, op.String())
		}
		q, _ := RatFloorDivMod(x, y)
		return numeric.NewInteger(q), nil
	case OpMod:
		if y.Sign() == 0 {
			return nil, errors.ZeroDivision(errors.ModuleKernel, op.String())
		}
		_, r := RatFloorDivMod(x, y)
		return numeric.NewRational(r), nil
	case OpPow:
		return RatPow(x, y)
	}
	return nil, errors.NotSupported(errors.ModuleKernel, op.String(), "Rational", "Rational")
}

// RatFloorDivMod returns the integer floor of x/y and the rational
// remainder x - q*y. y must be nonzero.
func RatFloorDivMod(x, y *big.Rat) (*big.Int, *big.Rat) {
	// x/y = (a*d) / (b*c)
	num := new(big.Int).Mul(x.Num(), y.Denom())
	den := new(big.Int).Mul(x.Denom(), y.Num())
	q, _ := FloorDivMod(num, den)
	r := new(big.Rat).Mul(new(big.Rat).SetInt(q), y)
	return q, r.Sub(x, r)
}

// RatPowInt raises x to an integer power; negative powers invert x first
func RatPowInt(x *big.Rat, n *big.Int) (*big.Rat, error) {
	if n.Sign() < 0 {
		if x.Sign() == 0 {
			return nil, errors.ZeroDivision(errors.ModuleKernel, "pow")
		}
		x = new(big.Rat).Inv(x)
		n = new(big.Int).Neg(n)
	}
	num, err := IntPow(x.Num(), n)
	if err != nil {
		return nil, err
	}
	den, err := IntPow(x.Denom(), n)
	if err != nil {
		return nil, err
	}
	return new(big.Rat).SetFrac(num, den), nil
}

// RatPow raises x to a rational power. A fractional exponent p/q needs an
// exact q-th root of both numerator and denominator.
func RatPow(x, y *big.Rat) (numeric.Value, error) {
	if y.IsInt() {
		r, err := RatPowInt(x, y.Num())
		if err != nil {
			return nil, err
		}
		return numeric.NewRational(r), nil
	}
	q := y.Denom()
	if !q.IsInt64() || q.Int64() > MaxPowBits {
		return nil, errors.Domain(errors.ModuleKernel, "pow", "root degree too large")
	}
	if x.Sign() < 0 && q.Bit(0) == 0 {
		return nil, errors.Domain(errors.ModuleKernel, "pow", "even root of negative base")
	}
	num, ok := IntRoot(x.Num(), q.Int64())
	if !ok {
		return nil, errors.Domain(errors.ModuleKernel, "pow", "numerator has no exact root")
	}
	den, ok := IntRoot(x.Denom(), q.Int64())
	if !ok {
		return nil, errors.Domain(errors.ModuleKernel, "pow", "denominator has no exact root")
	}
	r, err := RatPowInt(new(big.Rat).SetFrac(num, den), y.Num())
	if err != nil {
		return nil, err
	}
	return numeric.NewRational(r), nil
}

// IntRoot returns the truncated q-th root of x and whether it is exact.
// Negative x is accepted for odd q.
func IntRoot(x *big.Int, q int64) (*big.Int, bool) {
	if q == 1 || x.Sign() == 0 {
		return new(big.Int).Set(x), true
	}
	neg := x.Sign() < 0
	if neg && q%2 == 0 {
		return new(big.Int), false
	}
	a := new(big.Int).Abs(x)
	var r *big.Int
	if q == 2 {
		r = new(big.Int).Sqrt(a)
	} else {
		r = nthRoot(a, q)
	}
	exact := new(big.Int).Exp(r, big.NewInt(q), nil).Cmp(a) == 0
	if neg {
		r.Neg(r)
	}
	return r, exact
}

// nthRoot computes floor(a^(1/q)) for a > 0 by Newton iteration
func nthRoot(a *big.Int, q int64) *big.Int {
	if int64(a.BitLen()) <= q {
		return big.NewInt(1)
	}
	bq := big.NewInt(q)
	qm1 := big.NewInt(q - 1)
	// start above the root: 2^ceil(bitlen/q)
	x := new(big.Int).Lsh(bigOne, uint((int64(a.BitLen())+q-1)/q))
	for {
		// y = ((q-1)*x + a / x^(q-1)) / q
		t := new(big.Int).Exp(x, qm1, nil)
		t.Quo(a, t)
		y := new(big.Int).Mul(qm1, x)
		y.Add(y, t)
		y.Quo(y, bq)
		if y.Cmp(x) >= 0 {
			return x
		}
		x = y
	}
}
