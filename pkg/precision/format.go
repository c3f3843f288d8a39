// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     precision
// Description: Stable textual form of a context
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package precision

import (
	"strconv"
	"strings"
)

// continuation indent of the String layout
const indent = "        "

// flagOrder is the display order of flag and trap pairs
var flagOrder = []Condition{Underflow, Overflow, Inexact, Invalid, Erange, DivZero}

// String renders the context in a fixed multi-line layout:
//
//	context(precision=53, real_prec=Default, imag_prec=Default,
//	        round=RoundToNearest, real_round=Default, imag_round=Default,
//	        ...
//	        rational_division=False)
func (c *Context) String() string {
	s := c.Copy()

	var b strings.Builder
	b.WriteString("context(precision=")
	b.WriteString(strconv.Itoa(s.precision))
	b.WriteString(", real_prec=")
	b.WriteString(precString(s.realPrec))
	b.WriteString(", imag_prec=")
	b.WriteString(precString(s.imagPrec))
	b.WriteString(",\n" + indent)

	b.WriteString("round=" + s.round.String())
	b.WriteString(", real_round=" + s.realRound.String())
	b.WriteString(", imag_round=" + s.imagRound.String())
	b.WriteString(",\n" + indent)

	b.WriteString("emax=" + strconv.Itoa(s.emax))
	b.WriteString(", emin=" + strconv.Itoa(s.emin))
	b.WriteString(",\n" + indent)

	b.WriteString("subnormalize=" + boolString(s.subnormalize))
	b.WriteString(",\n" + indent)

	for _, cond := range flagOrder {
		name := cond.Name()
		b.WriteString("trap_" + name + "=" + boolString(s.traps.Has(cond)))
		b.WriteString(", " + name + "=" + boolString(s.flags.Has(cond)))
		b.WriteString(",\n" + indent)
	}
	b.WriteString("trap_expbound=" + boolString(s.traps.Has(ExpBound)))
	b.WriteString(",\n" + indent)

	b.WriteString("allow_complex=" + boolString(s.allowComplex))
	b.WriteString(",\n" + indent)
	b.WriteString("rational_division=" + boolString(s.rationalDivision))
	b.WriteString(")")
	return b.String()
}

func precString(p int) string {
	if p == Default {
		return "Default"
	}
	return strconv.Itoa(p)
}

func boolString(v bool) string {
	if v {
		return "True"
	}
	return "False"
}
