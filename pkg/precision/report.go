// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     precision
// Description: Trap policy engine: sticky flags and trapped conditions
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package precision

import (
	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/pkg/kernel"
)

// Sentinels for trapped conditions. Match them with errors.Is.
var (
	ErrUnderflow = mdwerror.Sentinel(mdwerror.CodeTrapUnderflow, "underflow")
	ErrOverflow  = mdwerror.Sentinel(mdwerror.CodeTrapOverflow, "overflow")
	ErrInexact   = mdwerror.Sentinel(mdwerror.CodeTrapInexact, "inexact result")
	ErrInvalid   = mdwerror.Sentinel(mdwerror.CodeTrapInvalid, "invalid operation")
	ErrErange    = mdwerror.Sentinel(mdwerror.CodeTrapErange, "range error")
	ErrDivZero   = mdwerror.Sentinel(mdwerror.CodeTrapDivZero, "division by zero")
	ErrExpBound  = mdwerror.Sentinel(mdwerror.CodeTrapExpBound, "exponent out of bounds")
)

// TrapCode returns the error code raised for a single trapped condition
func TrapCode(cond Condition) mdwerror.Code {
	switch cond {
	case Underflow:
		return mdwerror.CodeTrapUnderflow
	case Overflow:
		return mdwerror.CodeTrapOverflow
	case Inexact:
		return mdwerror.CodeTrapInexact
	case Invalid:
		return mdwerror.CodeTrapInvalid
	case Erange:
		return mdwerror.CodeTrapErange
	case DivZero:
		return mdwerror.CodeTrapDivZero
	case ExpBound:
		return mdwerror.CodeTrapExpBound
	}
	return mdwerror.CodeUnknown
}

// Report records the conditions raised by op and returns a trap error for
// the highest-priority condition whose trap is enabled.
//
// All sticky flags are set before the error is chosen, so a trapped
// operation still leaves its flags behind. ExpBound has no flag. Read-only
// contexts keep their flags untouched but still trap.
func (c *Context) Report(op string, conds Condition) error {
	if conds == 0 {
		return nil
	}
	c.mu.Lock()
	if !c.readOnly {
		c.flags |= conds & stickyConditions
	}
	traps := c.traps
	c.mu.Unlock()

	trapped := conds & traps
	if trapped == 0 {
		return nil
	}
	for _, p := range kernel.Priority {
		if trapped.Has(p) {
			return errors.Trap(TrapCode(p), p.Name(), op)
		}
	}
	return nil
}
