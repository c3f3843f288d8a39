// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     precision
// Description: Precision contexts: configuration, sticky flags and traps
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package precision implements the precision Context, the trap policy engine
// and the Store that decides which Context is active for a logical thread.
//
// A Context holds precision, rounding, exponent range and trap settings plus
// the sticky condition flags raised by arithmetic. Contexts are activated per
// thread through a Store; Local scopes push a modified copy and restore the
// previous configuration on Exit.
package precision

import (
	"fmt"
	"sync"

	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/pkg/kernel"
)

// Rounding modes, shared with the kernel
type Rounding = kernel.Rounding

const (
	RoundDefault   = kernel.RoundDefault
	RoundToNearest = kernel.RoundToNearest
	RoundToZero    = kernel.RoundToZero
	RoundUp        = kernel.RoundUp
	RoundDown      = kernel.RoundDown
	RoundAwayZero  = kernel.RoundAwayZero
)

// Condition is a set of floating-point conditions, shared with the kernel
type Condition = kernel.Condition

const (
	Underflow = kernel.Underflow
	Overflow  = kernel.Overflow
	Inexact   = kernel.Inexact
	Invalid   = kernel.Invalid
	Erange    = kernel.Erange
	DivZero   = kernel.DivZero
	ExpBound  = kernel.ExpBound
)

// Default is the inherit sentinel for component precisions
const Default = -1

// DefaultPrecision is the precision of a new Context
const DefaultPrecision = 53

// stickyConditions can be recorded as flags; ExpBound is trap-only
const stickyConditions = Underflow | Overflow | Inexact | Invalid | Erange | DivZero

// Context is the mutable arithmetic configuration of a thread
type Context struct {
	mu sync.Mutex

	precision int
	realPrec  int
	imagPrec  int

	round     Rounding
	realRound Rounding
	imagRound Rounding

	emax int
	emin int

	subnormalize     bool
	allowComplex     bool
	rationalDivision bool

	flags Condition
	traps Condition

	readOnly bool
}

// New creates a Context from the defaults and the given options. Options
// are validated together; on error no Context is returned.
func New(opts ...Option) (*Context, error) {
	c := defaults()
	if err := c.apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func defaults() *Context {
	return &Context{
		precision: DefaultPrecision,
		realPrec:  Default,
		imagPrec:  Default,
		round:     RoundToNearest,
		realRound: RoundDefault,
		imagRound: RoundDefault,
		emax:      kernel.DefaultEmax,
		emin:      kernel.DefaultEmin,
	}
}

// apply runs opts against a draft and commits it only if the result is valid
func (c *Context) apply(opts ...Option) error {
	draft := c.snapshot()
	for _, opt := range opts {
		if err := opt(draft); err != nil {
			return err
		}
	}
	draft.normalize()
	if err := draft.validate(); err != nil {
		return err
	}
	c.commit(draft)
	return nil
}

// snapshot copies every field except the lock
func (c *Context) snapshot() *Context {
	return &Context{
		precision:        c.precision,
		realPrec:         c.realPrec,
		imagPrec:         c.imagPrec,
		round:            c.round,
		realRound:        c.realRound,
		imagRound:        c.imagRound,
		emax:             c.emax,
		emin:             c.emin,
		subnormalize:     c.subnormalize,
		allowComplex:     c.allowComplex,
		rationalDivision: c.rationalDivision,
		flags:            c.flags,
		traps:            c.traps,
		readOnly:         c.readOnly,
	}
}

func (c *Context) commit(d *Context) {
	c.precision, c.realPrec, c.imagPrec = d.precision, d.realPrec, d.imagPrec
	c.round, c.realRound, c.imagRound = d.round, d.realRound, d.imagRound
	c.emax, c.emin = d.emax, d.emin
	c.subnormalize, c.allowComplex, c.rationalDivision = d.subnormalize, d.allowComplex, d.rationalDivision
	c.flags, c.traps = d.flags, d.traps
}

// normalize applies the away-from-zero rule: complex parts never round away
// from zero, so both component roundings become RoundToNearest.
func (c *Context) normalize() {
	if c.round == RoundAwayZero {
		c.realRound = RoundToNearest
		c.imagRound = RoundToNearest
	}
}

func (c *Context) validate() error {
	if c.precision < kernel.MinPrecision || c.precision > kernel.MaxPrecision {
		return errors.InvalidContext("precision", c.precision, precisionRange)
	}
	if !validComponentPrec(c.realPrec) {
		return errors.InvalidContext("real_prec", c.realPrec, precisionRange+" or Default")
	}
	if !validComponentPrec(c.imagPrec) {
		return errors.InvalidContext("imag_prec", c.imagPrec, precisionRange+" or Default")
	}
	if !c.round.Valid() {
		return errors.InvalidContext("round", c.round, "one of RoundToNearest, RoundToZero, RoundUp, RoundDown, RoundAwayZero")
	}
	if !validComponentRound(c.realRound) {
		return errors.InvalidContext("real_round", c.realRound, componentRounds)
	}
	if !validComponentRound(c.imagRound) {
		return errors.InvalidContext("imag_round", c.imagRound, componentRounds)
	}
	return kernel.CheckExponentRange(c.emin, c.emax)
}

var precisionRange = fmt.Sprintf("integer in [%d, %d]", kernel.MinPrecision, kernel.MaxPrecision)

const componentRounds = "one of RoundToNearest, RoundToZero, RoundUp, RoundDown, Default"

func validComponentPrec(p int) bool {
	return p == Default || (p >= kernel.MinPrecision && p <= kernel.MaxPrecision)
}

func validComponentRound(r Rounding) bool {
	return r == RoundDefault || (r.Valid() && r != RoundAwayZero)
}

// Copy returns a writable deep copy, including flags and traps
func (c *Context) Copy() *Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := c.snapshot()
	cp.readOnly = false
	return cp
}

// Update applies options to c atomically. Read-only contexts refuse.
func (c *Context) Update(opts ...Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly {
		return errors.ReadOnly("context")
	}
	return c.apply(opts...)
}

func (c *Context) set(field string, opt Option) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly {
		return errors.ReadOnly(field)
	}
	return c.apply(opt)
}

// Setters. Each validates the new value and fails on read-only contexts.

func (c *Context) SetPrecision(p int) error      { return c.set("precision", WithPrecision(p)) }
func (c *Context) SetRealPrecision(p int) error  { return c.set("real_prec", WithRealPrecision(p)) }
func (c *Context) SetImagPrecision(p int) error  { return c.set("imag_prec", WithImagPrecision(p)) }
func (c *Context) SetRound(r Rounding) error     { return c.set("round", WithRound(r)) }
func (c *Context) SetRealRound(r Rounding) error { return c.set("real_round", WithRealRound(r)) }
func (c *Context) SetImagRound(r Rounding) error { return c.set("imag_round", WithImagRound(r)) }
func (c *Context) SetEmax(e int) error           { return c.set("emax", WithEmax(e)) }
func (c *Context) SetEmin(e int) error           { return c.set("emin", WithEmin(e)) }
func (c *Context) SetSubnormalize(v bool) error  { return c.set("subnormalize", WithSubnormalize(v)) }
func (c *Context) SetAllowComplex(v bool) error  { return c.set("allow_complex", WithAllowComplex(v)) }

func (c *Context) SetRationalDivision(v bool) error {
	return c.set("rational_division", WithRationalDivision(v))
}

// SetTrap enables or disables the trap for every condition in cond
func (c *Context) SetTrap(cond Condition, on bool) error {
	return c.set("trap_"+cond.String(), WithTrap(cond, on))
}

// SetFlag sets or clears the sticky flags in cond
func (c *Context) SetFlag(cond Condition, on bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly {
		return errors.ReadOnly(cond.String())
	}
	if on {
		c.flags |= cond & stickyConditions
	} else {
		c.flags &^= cond
	}
	return nil
}

// ClearFlags resets every sticky flag
func (c *Context) ClearFlags() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readOnly {
		return errors.ReadOnly("flags")
	}
	c.flags = 0
	return nil
}

// Getters

func (c *Context) Precision() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.precision
}

func (c *Context) RealPrecision() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.realPrec
}

func (c *Context) ImagPrecision() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imagPrec
}

func (c *Context) Round() Rounding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round
}

func (c *Context) RealRound() Rounding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.realRound
}

func (c *Context) ImagRound() Rounding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imagRound
}

func (c *Context) Emax() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emax
}

func (c *Context) Emin() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.emin
}

func (c *Context) Subnormalize() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subnormalize
}

func (c *Context) AllowComplex() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.allowComplex
}

func (c *Context) RationalDivision() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rationalDivision
}

func (c *Context) ReadOnly() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readOnly
}

// Flags returns the set sticky flags
func (c *Context) Flags() Condition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flags
}

// Traps returns the trap mask
func (c *Context) Traps() Condition {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.traps
}

// Flag reports whether every condition in cond is flagged
func (c *Context) Flag(cond Condition) bool { return c.Flags().Has(cond) }

// Trapped reports whether every condition in cond is trapped
func (c *Context) Trapped(cond Condition) bool { return c.Traps().Has(cond) }

// Effective component settings follow imag -> real -> context.

func (c *Context) EffectiveRealPrecision() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effRealPrec()
}

func (c *Context) EffectiveImagPrecision() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.imagPrec != Default {
		return c.imagPrec
	}
	return c.effRealPrec()
}

func (c *Context) effRealPrec() int {
	if c.realPrec != Default {
		return c.realPrec
	}
	return c.precision
}

func (c *Context) EffectiveRealRound() Rounding {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effRealRound()
}

func (c *Context) EffectiveImagRound() Rounding {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.imagRound != RoundDefault {
		return c.imagRound
	}
	return c.effRealRound()
}

func (c *Context) effRealRound() Rounding {
	if c.realRound != RoundDefault {
		return c.realRound
	}
	return c.round
}

// Params returns the kernel parameters for real arithmetic
func (c *Context) Params() kernel.Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return kernel.Params{Prec: uint(c.precision), Mode: c.round, Subnormalize: c.subnormalize}
}

// ComplexParams returns the kernel parameters for the real and imaginary
// parts of complex arithmetic
func (c *Context) ComplexParams() (re, im kernel.Params) {
	c.mu.Lock()
	defer c.mu.Unlock()
	re = kernel.Params{Prec: uint(c.effRealPrec()), Mode: c.effRealRound(), Subnormalize: c.subnormalize}
	im = kernel.Params{Prec: uint(c.effRealPrec()), Mode: c.effRealRound(), Subnormalize: c.subnormalize}
	if c.imagPrec != Default {
		im.Prec = uint(c.imagPrec)
	}
	if c.imagRound != RoundDefault {
		im.Mode = c.imagRound
	}
	return re, im
}

// Equal reports whether two contexts have the same configuration and flags.
// The read-only marker is ignored.
func (c *Context) Equal(o *Context) bool {
	a, b := c.Copy(), o.Copy()
	return a.precision == b.precision && a.realPrec == b.realPrec && a.imagPrec == b.imagPrec &&
		a.round == b.round && a.realRound == b.realRound && a.imagRound == b.imagRound &&
		a.emax == b.emax && a.emin == b.emin &&
		a.subnormalize == b.subnormalize && a.allowComplex == b.allowComplex &&
		a.rationalDivision == b.rationalDivision &&
		a.flags == b.flags && a.traps == b.traps
}
