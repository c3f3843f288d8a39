// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     dispatch
// Description: Generic arithmetic dispatcher over the numeric kinds
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package dispatch implements the arithmetic operators over mixed operand
// kinds.
//
// Every operation classifies its operands, picks the result kind from the
// operator's promotion table, promotes the operands to the kind the kernel
// primitive needs and runs the primitive with the precision and rounding of
// the active context. The conditions raised by the primitive go through the
// context's trap policy before the result is returned.
//
// Two integers take a fast path straight to the integer primitives; the
// result is the same as through the general path.
package dispatch

import (
	"math/big"

	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/foundation/core/log"
	"github.com/msto63/mpnum/pkg/coerce"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/numeric"
	"github.com/msto63/mpnum/pkg/precision"
)

// ContextSource yields the active context of the calling thread.
// *precision.Thread satisfies it and never yields a read-only context. A
// read-only context from another source is copied for each operation, the
// way activation copies it, so its flags are not kept.
type ContextSource interface {
	Current() *precision.Context
}

// Dispatcher runs arithmetic against the contexts of one source
type Dispatcher struct {
	src      ContextSource
	kernel   kernel.Kernel
	promoter *coerce.Promoter
	logger   *log.Logger
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithLogger sets the logger for trapped conditions
func WithLogger(l *log.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Dispatcher. A nil kernel selects kernel.Default(); it must
// be the kernel of the store behind src so that activated exponent ranges
// apply.
func New(src ContextSource, k kernel.Kernel, opts ...Option) *Dispatcher {
	if k == nil {
		k = kernel.Default()
	}
	d := &Dispatcher{
		src:      src,
		kernel:   k,
		promoter: coerce.NewPromoter(k),
		logger:   log.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Context returns the context the next operation will use
func (d *Dispatcher) Context() *precision.Context {
	return d.src.Current()
}

// call bundles the per-operation state
type call struct {
	d    *Dispatcher
	op   kernel.Op
	name string
	ctx  *precision.Context
}

func (d *Dispatcher) begin(op kernel.Op) *call {
	ctx := d.src.Current()
	if ctx.ReadOnly() {
		ctx = ctx.Copy()
	}
	return &call{d: d, op: op, name: op.String(), ctx: ctx}
}

// report passes conditions to the trap policy and logs trapped ones
func (c *call) report(conds kernel.Condition) error {
	err := c.ctx.Report(c.name, conds)
	if err != nil {
		c.d.logger.Debug("Condition trapped", log.Fields{
			"operation": c.name,
			"condition": conds.String(),
		})
	}
	return err
}

// kinds classifies both operands and rejects non-numeric ones
func (c *call) kinds(a, b any) (numeric.Kind, numeric.Kind, error) {
	ka, kb := c.d.promoter.Classify(a), c.d.promoter.Classify(b)
	if !ka.IsNumeric() || !kb.IsNumeric() {
		return ka, kb, errors.NotSupported(errors.ModuleDispatch, c.name, coerce.TypeName(a), coerce.TypeName(b))
	}
	return ka, kb, nil
}

func (c *call) promote(v any, k numeric.Kind) (numeric.Value, error) {
	return c.d.promoter.Promote(v, k, c.ctx)
}

func (c *call) ints(a, b any) (*big.Int, *big.Int, error) {
	x, err := c.promote(a, numeric.KindInteger)
	if err != nil {
		return nil, nil, err
	}
	y, err := c.promote(b, numeric.KindInteger)
	if err != nil {
		return nil, nil, err
	}
	return x.(*numeric.Integer).Big(), y.(*numeric.Integer).Big(), nil
}

func (c *call) rats(a, b any) (*big.Rat, *big.Rat, error) {
	x, err := c.promote(a, numeric.KindRational)
	if err != nil {
		return nil, nil, err
	}
	y, err := c.promote(b, numeric.KindRational)
	if err != nil {
		return nil, nil, err
	}
	return x.(*numeric.Rational).Rat(), y.(*numeric.Rational).Rat(), nil
}

// reals promotes both operands to Real and checks their exponents against
// the active range
func (c *call) reals(a, b any) (*numeric.Real, *numeric.Real, error) {
	if err := c.syncRange(); err != nil {
		return nil, nil, err
	}
	x, err := c.promote(a, numeric.KindReal)
	if err != nil {
		return nil, nil, err
	}
	y, err := c.promote(b, numeric.KindReal)
	if err != nil {
		return nil, nil, err
	}
	xr, yr := x.(*numeric.Real), y.(*numeric.Real)
	if err := c.checkBounds(xr, yr); err != nil {
		return nil, nil, err
	}
	return xr, yr, nil
}

func (c *call) complexes(a, b any) (*numeric.Complex, *numeric.Complex, error) {
	if err := c.syncRange(); err != nil {
		return nil, nil, err
	}
	x, err := c.promote(a, numeric.KindComplex)
	if err != nil {
		return nil, nil, err
	}
	y, err := c.promote(b, numeric.KindComplex)
	if err != nil {
		return nil, nil, err
	}
	xc, yc := x.(*numeric.Complex), y.(*numeric.Complex)
	if err := c.checkBounds(xc.Real(), xc.Imag(), yc.Real(), yc.Imag()); err != nil {
		return nil, nil, err
	}
	return xc, yc, nil
}

// syncRange installs the context's exponent range in the kernel when a
// live context was modified after activation.
func (c *call) syncRange() error {
	emin, emax := c.ctx.Emin(), c.ctx.Emax()
	if kmin, kmax := c.d.kernel.ExponentRange(); kmin == emin && kmax == emax {
		return nil
	}
	return c.d.kernel.SetExponentRange(emin, emax)
}

// checkBounds reports ExpBound for finite operands whose exponent lies
// outside the active range
func (c *call) checkBounds(vs ...*numeric.Real) error {
	emin, emax := c.ctx.Emin(), c.ctx.Emax()
	for _, v := range vs {
		if !v.IsFinite() || v.IsZero() {
			continue
		}
		if e := v.Exp(); e < emin || e > emax {
			return c.report(kernel.ExpBound)
		}
	}
	return nil
}

// real runs a rounded real primitive
func (c *call) real(a, b any) (numeric.Value, error) {
	x, y, err := c.reals(a, b)
	if err != nil {
		return nil, err
	}
	res := c.d.kernel.RealOp(c.op, x, y, c.ctx.Params())
	if err := c.report(res.Flags); err != nil {
		return nil, err
	}
	return res.Value, nil
}

// mixed combines an exact operand with a finite Real from the exact
// result, so an exact operand that does not fit the context precision is
// not rounded twice. ok is false when the plain real path applies.
func (c *call) mixed(ka, kb numeric.Kind, a, b any) (v numeric.Value, ok bool, err error) {
	if (ka == numeric.KindReal) == (kb == numeric.KindReal) {
		return nil, false, nil
	}
	exact, other := a, b
	if ka == numeric.KindReal {
		exact, other = b, a
	}
	if err := c.syncRange(); err != nil {
		return nil, false, err
	}

	ev, err := c.promote(exact, numeric.KindRational)
	if err != nil {
		return nil, false, err
	}
	er := ev.(*numeric.Rational).Rat()
	if c.d.kernel.RoundRat(er, c.ctx.Params()).Flags == 0 {
		return nil, false, nil
	}

	ov, err := c.promote(other, numeric.KindReal)
	if err != nil {
		return nil, false, err
	}
	rv := ov.(*numeric.Real)
	if !rv.IsFinite() || (c.op == kernel.OpDiv && rv.IsZero()) {
		return nil, false, nil
	}
	if err := c.checkBounds(rv); err != nil {
		return nil, true, err
	}

	rat, _ := rv.Float().Rat(nil)
	x, y := er, rat
	if ka == numeric.KindReal {
		x, y = rat, er
	}
	z, err := c.d.kernel.RatOp(c.op, x, y)
	if err != nil {
		return nil, true, err
	}
	v, err = c.rounded(z.(*numeric.Rational).Rat())
	return v, true, err
}

// complex runs a rounded complex primitive
func (c *call) complex(a, b any) (numeric.Value, error) {
	x, y, err := c.complexes(a, b)
	if err != nil {
		return nil, err
	}
	re, im := c.ctx.ComplexParams()
	res := c.d.kernel.ComplexOp(c.op, x, y, re, im)
	if err := c.report(res.Flags); err != nil {
		return nil, err
	}
	return res.Value, nil
}

// rounded turns an exact rational into a Real at the context precision
func (c *call) rounded(r *big.Rat) (numeric.Value, error) {
	if err := c.syncRange(); err != nil {
		return nil, err
	}
	res := c.d.kernel.RoundRat(r, c.ctx.Params())
	if err := c.report(res.Flags); err != nil {
		return nil, err
	}
	return res.Value, nil
}

// arith implements add, sub and mul
func (d *Dispatcher) arith(op kernel.Op, a, b any) (numeric.Value, error) {
	c := d.begin(op)
	ka, kb, err := c.kinds(a, b)
	if err != nil {
		return nil, err
	}
	switch numeric.Max(ka, kb) {
	case numeric.KindInteger:
		x, y, err := c.ints(a, b)
		if err != nil {
			return nil, err
		}
		z, err := d.kernel.IntOp(op, x, y)
		if err != nil {
			return nil, err
		}
		return numeric.NewInteger(z), nil
	case numeric.KindRational:
		x, y, err := c.rats(a, b)
		if err != nil {
			return nil, err
		}
		return d.kernel.RatOp(op, x, y)
	case numeric.KindReal:
		if v, ok, err := c.mixed(ka, kb, a, b); ok {
			return v, err
		} else if err != nil {
			return nil, err
		}
		return c.real(a, b)
	default:
		return c.complex(a, b)
	}
}

// Add returns a + b
func (d *Dispatcher) Add(a, b any) (numeric.Value, error) { return d.arith(kernel.OpAdd, a, b) }

// Sub returns a - b
func (d *Dispatcher) Sub(a, b any) (numeric.Value, error) { return d.arith(kernel.OpSub, a, b) }

// Mul returns a * b
func (d *Dispatcher) Mul(a, b any) (numeric.Value, error) { return d.arith(kernel.OpMul, a, b) }

// TrueDiv returns a / b. Two integers give a Real rounded once from the
// exact quotient, or an exact Rational when the context enables rational
// division. Rationals divide exactly; a zero rational divisor is an error.
func (d *Dispatcher) TrueDiv(a, b any) (numeric.Value, error) {
	c := d.begin(kernel.OpDiv)
	ka, kb, err := c.kinds(a, b)
	if err != nil {
		return nil, err
	}
	switch numeric.Max(ka, kb) {
	case numeric.KindInteger:
		x, y, err := c.ints(a, b)
		if err != nil {
			return nil, err
		}
		if c.ctx.RationalDivision() {
			return d.kernel.RatOp(kernel.OpDiv, new(big.Rat).SetInt(x), new(big.Rat).SetInt(y))
		}
		if y.Sign() == 0 {
			// x/0 follows the real rules: ±Inf or NaN
			return c.real(a, b)
		}
		return c.rounded(new(big.Rat).SetFrac(x, y))
	case numeric.KindRational:
		x, y, err := c.rats(a, b)
		if err != nil {
			return nil, err
		}
		return d.kernel.RatOp(kernel.OpDiv, x, y)
	case numeric.KindReal:
		if v, ok, err := c.mixed(ka, kb, a, b); ok {
			return v, err
		} else if err != nil {
			return nil, err
		}
		return c.real(a, b)
	default:
		return c.complex(a, b)
	}
}

// FloorDiv returns floor(a / b). Complex operands are not supported.
func (d *Dispatcher) FloorDiv(a, b any) (numeric.Value, error) {
	q, _, err := d.divmod(kernel.OpFloorDiv, a, b)
	return q, err
}

// Mod returns a - floor(a/b)*b, which has the sign of b
func (d *Dispatcher) Mod(a, b any) (numeric.Value, error) {
	_, r, err := d.divmod(kernel.OpMod, a, b)
	return r, err
}

// DivMod returns FloorDiv and Mod together
func (d *Dispatcher) DivMod(a, b any) (q, r numeric.Value, err error) {
	return d.divmod(kernel.OpDivMod, a, b)
}

// divmod serves floordiv, mod and divmod; op selects which conditions and
// which halves are produced.
func (d *Dispatcher) divmod(op kernel.Op, a, b any) (numeric.Value, numeric.Value, error) {
	c := d.begin(op)
	ka, kb, err := c.kinds(a, b)
	if err != nil {
		return nil, nil, err
	}
	switch numeric.Max(ka, kb) {
	case numeric.KindInteger:
		x, y, err := c.ints(a, b)
		if err != nil {
			return nil, nil, err
		}
		if y.Sign() == 0 {
			return nil, nil, errors.ZeroDivision(errors.ModuleDispatch, c.name)
		}
		q, r := kernel.FloorDivMod(x, y)
		return numeric.NewInteger(q), numeric.NewInteger(r), nil
	case numeric.KindRational:
		x, y, err := c.rats(a, b)
		if err != nil {
			return nil, nil, err
		}
		if y.Sign() == 0 {
			return nil, nil, errors.ZeroDivision(errors.ModuleDispatch, c.name)
		}
		q, r := kernel.RatFloorDivMod(x, y)
		return numeric.NewInteger(q), numeric.NewRational(r), nil
	case numeric.KindReal:
		x, y, err := c.reals(a, b)
		if err != nil {
			return nil, nil, err
		}
		q, r := d.kernel.RealDivMod(x, y, c.ctx.Params())
		var conds kernel.Condition
		switch op {
		case kernel.OpFloorDiv:
			conds = q.Flags
		case kernel.OpMod:
			conds = r.Flags
		default:
			conds = q.Flags | r.Flags
		}
		if err := c.report(conds); err != nil {
			return nil, nil, err
		}
		return q.Value, r.Value, nil
	default:
		return nil, nil, errors.NotSupported(errors.ModuleDispatch, c.name, coerce.TypeName(a), coerce.TypeName(b))
	}
}
