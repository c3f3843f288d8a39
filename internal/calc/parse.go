// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     calc
// Description: Operand literals and expression parsing for mpcalc
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package calc

import (
	"math/big"
	"strings"

	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/foundation/utils/mathx"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/numeric"
	"github.com/msto63/mpnum/pkg/precision"
)

// Literal forms:
//
//	42, -7             Integer
//	1/3, -22/7         Rational
//	1.5, 1e-30, inf    Real, rounded when an operation consumes it
//	0.1d, -2.5e-3d     exact decimal, used as a Rational
//	1+2i, -0.5i, 3j    Complex, rounded to the component precisions
func parseLiteral(tok string, ctx *precision.Context, k kernel.Kernel) (any, error) {
	if tok == "" {
		return nil, errors.InvalidFormat(errors.ModuleCalc, tok, "number")
	}
	if i, ok := numeric.ParseInteger(tok); ok {
		return i, nil
	}
	if strings.Contains(tok, "/") {
		r, ok := new(big.Rat).SetString(tok)
		if !ok {
			return nil, errors.InvalidFormat(errors.ModuleCalc, tok, "rational a/b")
		}
		return numeric.NewRational(r), nil
	}
	if strings.HasSuffix(tok, "d") {
		t, err := mathx.ParseTuple(tok[:len(tok)-1])
		if err != nil {
			return nil, errors.InvalidFormat(errors.ModuleCalc, tok, "decimal 1.5d")
		}
		d, err := t.Decimal()
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	if last := tok[len(tok)-1]; last == 'i' || last == 'j' {
		return parseComplex(tok[:len(tok)-1], ctx, k)
	}
	t, err := mathx.ParseTuple(tok)
	if err != nil {
		return nil, errors.InvalidFormat(errors.ModuleCalc, tok, "number")
	}
	return t, nil
}

// parseComplex parses "re+im", "re-im" or "im" with the imaginary suffix
// already removed
func parseComplex(s string, ctx *precision.Context, k kernel.Kernel) (any, error) {
	reStr, imStr := "0", s
	if i := splitComplex(s); i > 0 {
		reStr, imStr = s[:i], s[i:]
	}
	switch imStr {
	case "", "+":
		imStr = "1"
	case "-":
		imStr = "-1"
	}

	re, err := mathx.ParseTuple(reStr)
	if err != nil {
		return nil, errors.InvalidFormat(errors.ModuleCalc, s, "complex a+bi")
	}
	im, err := mathx.ParseTuple(imStr)
	if err != nil {
		return nil, errors.InvalidFormat(errors.ModuleCalc, s, "complex a+bi")
	}

	rp, ip := ctx.ComplexParams()
	rv, rc, err := k.Convert(re, numeric.KindReal, rp)
	if err != nil {
		return nil, err
	}
	iv, ic, err := k.Convert(im, numeric.KindReal, ip)
	if err != nil {
		return nil, err
	}
	if err := ctx.Report("parse", rc|ic); err != nil {
		return nil, err
	}
	return numeric.NewComplex(rv.(*numeric.Real), iv.(*numeric.Real)), nil
}

// splitComplex returns the index of the sign that starts the imaginary
// part, or -1. Signs of exponents do not count.
func splitComplex(s string) int {
	for i := len(s) - 1; i > 0; i-- {
		if (s[i] == '+' || s[i] == '-') && s[i-1] != 'e' && s[i-1] != 'E' {
			return i
		}
	}
	return -1
}

// infix maps operator symbols to operation names
var infix = map[string]string{
	"+":   "add",
	"-":   "sub",
	"*":   "mul",
	"/":   "truediv",
	"//":  "floordiv",
	"%":   "mod",
	"**":  "pow",
	"^":   "pow",
	"<=>": "cmp",
}

// arity of the named operations
var arity = map[string]int{
	"add":      2,
	"sub":      2,
	"mul":      2,
	"truediv":  2,
	"floordiv": 2,
	"mod":      2,
	"pow":      2,
	"divmod":   2,
	"cmp":      2,
	"powmod":   3,
}

// expr is a parsed expression: an operation name and its operand tokens.
// A bare operand has an empty name.
type expr struct {
	op   string
	args []string
}

// parseExpr accepts "x", "x OP y" and prefix calls "name x y [m]"
func parseExpr(line string) (expr, error) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 0:
		return expr{}, errors.InvalidFormat(errors.ModuleCalc, line, "expression")
	case len(fields) == 1:
		return expr{args: fields}, nil
	case len(fields) == 3 && infix[fields[1]] != "":
		return expr{op: infix[fields[1]], args: []string{fields[0], fields[2]}}, nil
	}

	name := strings.ToLower(fields[0])
	n, ok := arity[name]
	if !ok {
		return expr{}, errors.InvalidFormat(errors.ModuleCalc, line, "x OP y or NAME x y")
	}
	if len(fields)-1 != n {
		return expr{}, errors.InvalidInput(errors.ModuleCalc, name, line, "operands for "+name)
	}
	return expr{op: name, args: fields[1:]}, nil
}
