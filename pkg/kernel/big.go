// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: math/big kernel: exponent range, classification, conversion
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package kernel

import (
	"fmt"
	"math"
	"math/big"
	"sync"

	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/pkg/numeric"
)

// Big implements Kernel on math/big. The exponent range is shared by every
// caller of the same Big, mirroring a library-global setting.
type Big struct {
	mu   sync.RWMutex
	emin int
	emax int
}

var defaultKernel = NewBig()

// NewBig returns a kernel with the default exponent range
func NewBig() *Big {
	return &Big{emin: DefaultEmin, emax: DefaultEmax}
}

// Default returns the process-wide kernel
func Default() *Big {
	return defaultKernel
}

// CheckExponentRange reports whether emin < 0 < emax within the platform
// bounds.
func CheckExponentRange(emin, emax int) error {
	if emin >= 0 || emin < MinEmin {
		return errors.InvalidContext("emin", emin, fmt.Sprintf("integer in [%d, -1]", MinEmin))
	}
	if emax <= 0 || emax > MaxEmax {
		return errors.InvalidContext("emax", emax, fmt.Sprintf("integer in [1, %d]", MaxEmax))
	}
	return nil
}

// CheckExponentRange validates a range without applying it
func (b *Big) CheckExponentRange(emin, emax int) error {
	return CheckExponentRange(emin, emax)
}

// SetExponentRange validates and installs a new range
func (b *Big) SetExponentRange(emin, emax int) error {
	if err := CheckExponentRange(emin, emax); err != nil {
		return err
	}
	b.mu.Lock()
	b.emin, b.emax = emin, emax
	b.mu.Unlock()
	return nil
}

// ExponentRange returns the installed range
func (b *Big) ExponentRange() (emin, emax int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.emin, b.emax
}

type ratLike interface {
	Num() *big.Int
	Denom() *big.Int
}

type decimalLike interface {
	DecimalParts() (negative bool, coefficient *big.Int, exponent int32, form int)
}

// Forms reported by DecimalParts
const (
	formFinite = iota
	formInfinite
	formNaN
)

// ClassifyNative returns the kind of v from its type alone
func (b *Big) ClassifyNative(v any) numeric.Kind {
	switch x := v.(type) {
	case nil:
		return numeric.KindNotNumeric
	case numeric.Value:
		return x.Kind()
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, uintptr,
		*big.Int, big.Int:
		return numeric.KindInteger
	case *big.Rat, big.Rat:
		return numeric.KindRational
	case float32, float64, *big.Float, big.Float:
		return numeric.KindReal
	case complex64, complex128:
		return numeric.KindComplex
	case ratLike:
		return numeric.KindRational
	case decimalLike:
		return numeric.KindReal
	}
	return numeric.KindNotNumeric
}

// Convert turns v into target, moving only rightward in the kind order.
// Integers and rationals entering Real are rounded once per p; Real to Real
// keeps the value untouched.
func (b *Big) Convert(v any, target numeric.Kind, p Params) (numeric.Value, Condition, error) {
	nv, cond, err := b.native(v, p)
	if err != nil {
		return nil, 0, err
	}
	if !target.IsNumeric() || target < nv.Kind() {
		return nil, 0, errors.NotSupported(errors.ModuleKernel, "promote", nv.Kind().String(), target.String())
	}
	out, c, err := b.promote(nv, target, p)
	return out, cond | c, err
}

// native converts a Go value to its own kind without promotion
func (b *Big) native(v any, p Params) (numeric.Value, Condition, error) {
	switch x := v.(type) {
	case *numeric.MutableInteger:
		return x.Integer(), 0, nil
	case numeric.Value:
		return x, 0, nil
	case int:
		return numeric.IntegerFromInt64(int64(x)), 0, nil
	case int8:
		return numeric.IntegerFromInt64(int64(x)), 0, nil
	case int16:
		return numeric.IntegerFromInt64(int64(x)), 0, nil
	case int32:
		return numeric.IntegerFromInt64(int64(x)), 0, nil
	case int64:
		return numeric.IntegerFromInt64(x), 0, nil
	case uint:
		return numeric.NewInteger(new(big.Int).SetUint64(uint64(x))), 0, nil
	case uint8:
		return numeric.IntegerFromInt64(int64(x)), 0, nil
	case uint16:
		return numeric.IntegerFromInt64(int64(x)), 0, nil
	case uint32:
		return numeric.IntegerFromInt64(int64(x)), 0, nil
	case uint64:
		return numeric.NewInteger(new(big.Int).SetUint64(x)), 0, nil
	case uintptr:
		return numeric.NewInteger(new(big.Int).SetUint64(uint64(x))), 0, nil
	case *big.Int:
		if x == nil {
			break
		}
		return numeric.NewInteger(x), 0, nil
	case big.Int:
		return numeric.NewInteger(&x), 0, nil
	case *big.Rat:
		if x == nil {
			break
		}
		return numeric.NewRational(x), 0, nil
	case big.Rat:
		return numeric.NewRational(&x), 0, nil
	case float32:
		return floatReal(float64(x), 24), 0, nil
	case float64:
		return floatReal(x, 53), 0, nil
	case *big.Float:
		if x == nil {
			break
		}
		return numeric.NewReal(x), 0, nil
	case big.Float:
		return numeric.NewReal(&x), 0, nil
	case complex64:
		return numeric.NewComplex(floatReal(float64(real(x)), 24), floatReal(float64(imag(x)), 24)), 0, nil
	case complex128:
		return numeric.NewComplex(floatReal(real(x), 53), floatReal(imag(x), 53)), 0, nil
	case ratLike:
		den := x.Denom()
		if den == nil || den.Sign() == 0 {
			return nil, 0, errors.Domain(errors.ModuleKernel, "convert", "rational-like value with zero denominator")
		}
		return numeric.NewRational(new(big.Rat).SetFrac(x.Num(), den)), 0, nil
	case decimalLike:
		return b.decimal(x, p)
	}
	return nil, 0, errors.NotSupported(errors.ModuleKernel, "convert", fmt.Sprintf("%T", v))
}

func floatReal(x float64, prec uint) *numeric.Real {
	if math.IsNaN(x) {
		return numeric.NaN(prec)
	}
	return numeric.NewReal(new(big.Float).SetPrec(prec).SetFloat64(x))
}

// decimal rounds a sign/digits/exponent triple to a Real at p
func (b *Big) decimal(d decimalLike, p Params) (numeric.Value, Condition, error) {
	neg, coeff, exp, form := d.DecimalParts()
	switch form {
	case formInfinite:
		if neg {
			return numeric.Inf(-1, p.Prec), 0, nil
		}
		return numeric.Inf(1, p.Prec), 0, nil
	case formNaN:
		return numeric.NaN(p.Prec), 0, nil
	case formFinite:
	default:
		return nil, 0, errors.Domain(errors.ModuleKernel, "convert", fmt.Sprintf("unknown decimal form %d", form))
	}
	if coeff == nil || coeff.Sign() == 0 {
		return numeric.Zero(neg, p.Prec), 0, nil
	}
	c := new(big.Int).Abs(coeff)
	if neg {
		c.Neg(c)
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(math.Abs(float64(exp)))), nil)
	r := new(big.Rat)
	if exp >= 0 {
		r.SetInt(c.Mul(c, scale))
	} else {
		r.SetFrac(c, scale)
	}
	res := b.RoundRat(r, p)
	return res.Value, res.Flags, nil
}

// promote moves a numeric value rightward to target
func (b *Big) promote(v numeric.Value, target numeric.Kind, p Params) (numeric.Value, Condition, error) {
	if v.Kind() == target {
		if m, ok := v.(*numeric.MutableInteger); ok {
			return m.Integer(), 0, nil
		}
		return v, 0, nil
	}
	switch target {
	case numeric.KindRational:
		return numeric.NewRational(new(big.Rat).SetInt(intValue(v))), 0, nil
	case numeric.KindReal:
		var res Result
		switch x := v.(type) {
		case *numeric.Rational:
			res = b.RoundRat(x.Rat(), p)
		default:
			res = b.roundInt(intValue(v), p)
		}
		return res.Value, res.Flags, nil
	case numeric.KindComplex:
		re, c, err := b.promote(v, numeric.KindReal, p)
		if err != nil {
			return nil, 0, err
		}
		return numeric.NewComplex(re.(*numeric.Real), numeric.Zero(false, p.Prec)), c, nil
	}
	return nil, 0, errors.NotSupported(errors.ModuleKernel, "promote", v.Kind().String(), target.String())
}

func intValue(v numeric.Value) *big.Int {
	switch x := v.(type) {
	case *numeric.Integer:
		return x.Big()
	case *numeric.MutableInteger:
		return x.Big()
	}
	return new(big.Int)
}

// Compare orders two values of kinds Integer, Rational or Real exactly
func (b *Big) Compare(x, y numeric.Value) (int, Condition) {
	xr, xok := x.(*numeric.Real)
	yr, yok := y.(*numeric.Real)
	if (xok && xr.IsNaN()) || (yok && yr.IsNaN()) {
		return 0, Erange
	}
	if xok && yok {
		return xr.Float().Cmp(yr.Float()), 0
	}
	if xok && xr.IsInf() {
		return xr.Sign(), 0
	}
	if yok && yr.IsInf() {
		return -yr.Sign(), 0
	}
	return exactRat(x).Cmp(exactRat(y)), 0
}

// exactRat returns the exact rational value of a finite value
func exactRat(v numeric.Value) *big.Rat {
	switch x := v.(type) {
	case *numeric.Integer:
		return new(big.Rat).SetInt(x.Big())
	case *numeric.MutableInteger:
		return new(big.Rat).SetInt(x.Big())
	case *numeric.Rational:
		return x.Rat()
	case *numeric.Real:
		r, _ := x.Float().Rat(nil)
		return r
	}
	return new(big.Rat)
}
