// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     kernel
// Description: Numeric kernel capability interface and shared types
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package kernel defines the narrow capability interface through which the
// dispatcher reaches the arbitrary-precision arithmetic, and ships Big, an
// implementation on math/big.
//
// Every precision-aware primitive returns a Result carrying the rounded
// value, a ternary indicator (sign of rounded minus exact, 0 when exact) and
// the floating-point conditions the operation raised. Reporting those
// conditions to a context is the caller's job.
package kernel

import (
	"math"
	"math/big"
	"strings"

	"github.com/msto63/mpnum/pkg/numeric"
)

// Precision and exponent bounds accepted by the kernel. Exponents follow the
// big.Float convention x = m * 2^e with 0.5 <= |m| < 1.
const (
	MinPrecision = 1
	MaxPrecision = math.MaxInt32

	MaxEmax = 1<<30 - 1
	MinEmin = -(1<<30 - 1)

	DefaultEmax = MaxEmax
	DefaultEmin = MinEmin
)

// Rounding selects how inexact results are rounded
type Rounding int

const (
	// RoundDefault is the inherit sentinel for component roundings
	RoundDefault Rounding = iota - 1
	RoundToNearest
	RoundToZero
	RoundUp
	RoundDown
	RoundAwayZero
)

// String returns the mode name as shown in context listings
func (r Rounding) String() string {
	switch r {
	case RoundDefault:
		return "Default"
	case RoundToNearest:
		return "RoundToNearest"
	case RoundToZero:
		return "RoundToZero"
	case RoundUp:
		return "RoundUp"
	case RoundDown:
		return "RoundDown"
	case RoundAwayZero:
		return "RoundAwayZero"
	default:
		return "Unknown"
	}
}

// Valid reports whether r is one of the five concrete modes
func (r Rounding) Valid() bool {
	return r >= RoundToNearest && r <= RoundAwayZero
}

// Mode maps r to the math/big rounding mode. RoundDefault maps to
// nearest-even.
func (r Rounding) Mode() big.RoundingMode {
	switch r {
	case RoundToZero:
		return big.ToZero
	case RoundUp:
		return big.ToPositiveInf
	case RoundDown:
		return big.ToNegativeInf
	case RoundAwayZero:
		return big.AwayFromZero
	default:
		return big.ToNearestEven
	}
}

// ParseRounding accepts the mode names returned by String, case-insensitively,
// and the short forms "nearest", "zero", "up", "down" and "away".
func ParseRounding(s string) (Rounding, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "default":
		return RoundDefault, true
	case "roundtonearest", "nearest":
		return RoundToNearest, true
	case "roundtozero", "zero":
		return RoundToZero, true
	case "roundup", "up":
		return RoundUp, true
	case "rounddown", "down":
		return RoundDown, true
	case "roundawayzero", "away":
		return RoundAwayZero, true
	}
	return RoundDefault, false
}

// Op names a binary arithmetic operation
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpFloorDiv
	OpMod
	OpPow
	OpDivMod
)

var opNames = [...]string{"add", "sub", "mul", "truediv", "floordiv", "mod", "pow", "divmod"}

// String returns the operation name used in errors and logs
func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return "unknown"
	}
	return opNames[o]
}

// Condition is a set of floating-point exceptional conditions
type Condition uint8

const (
	Underflow Condition = 1 << iota
	Overflow
	Inexact
	Invalid
	Erange
	DivZero
	ExpBound
)

// Priority is the order in which trapped conditions are raised
var Priority = []Condition{Invalid, DivZero, Overflow, Underflow, Inexact, Erange, ExpBound}

// Has reports whether all conditions in o are set in c
func (c Condition) Has(o Condition) bool {
	return o != 0 && c&o == o
}

// Name returns the name of a single condition
func (c Condition) Name() string {
	switch c {
	case Underflow:
		return "underflow"
	case Overflow:
		return "overflow"
	case Inexact:
		return "inexact"
	case Invalid:
		return "invalid"
	case Erange:
		return "erange"
	case DivZero:
		return "divzero"
	case ExpBound:
		return "expbound"
	}
	return ""
}

// Names lists the conditions in c in priority order
func (c Condition) Names() []string {
	var names []string
	for _, p := range Priority {
		if c.Has(p) {
			names = append(names, p.Name())
		}
	}
	return names
}

func (c Condition) String() string {
	if c == 0 {
		return "none"
	}
	return strings.Join(c.Names(), "|")
}

// ParseCondition resolves a single condition name
func ParseCondition(s string) (Condition, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Priority {
		if p.Name() == s {
			return p, true
		}
	}
	return 0, false
}

// Params carries the precision and rounding for one rounded primitive
type Params struct {
	Prec         uint
	Mode         Rounding
	Subnormalize bool
}

// Result is the outcome of a precision-aware primitive
type Result struct {
	Value   numeric.Value
	Ternary int
	Flags   Condition
}

// Kernel is the capability interface consumed by the dispatcher.
//
// Integer and rational primitives are exact and fail with a zero-division
// or domain error. Real and complex primitives never fail: exceptional
// cases yield NaN, infinities or clamped values together with the matching
// conditions.
type Kernel interface {
	// IntOp applies op to two integers with floor semantics for
	// floordiv and mod. OpDiv is not an integer primitive.
	IntOp(op Op, x, y *big.Int) (*big.Int, error)

	// RatOp applies op to two rationals. OpFloorDiv yields an Integer.
	RatOp(op Op, x, y *big.Rat) (numeric.Value, error)

	// RealOp applies op to two reals, rounding per p
	RealOp(op Op, x, y *numeric.Real, p Params) Result

	// RealDivMod computes floordiv and mod in one pass
	RealDivMod(x, y *numeric.Real, p Params) (q, r Result)

	// ComplexOp applies add, sub, mul, truediv or pow to two complex values
	ComplexOp(op Op, x, y *numeric.Complex, re, im Params) Result

	// RoundRat rounds an exact rational to a Real
	RoundRat(r *big.Rat, p Params) Result

	// SetExponentRange replaces the process-wide exponent range
	SetExponentRange(emin, emax int) error

	// CheckExponentRange validates a range without applying it
	CheckExponentRange(emin, emax int) error

	// ExponentRange returns the current process-wide range
	ExponentRange() (emin, emax int)

	// ClassifyNative returns the kind of a Go value without converting it
	ClassifyNative(v any) numeric.Kind

	// Convert turns a Go or numeric value into the target kind
	Convert(v any, target numeric.Kind, p Params) (numeric.Value, Condition, error)

	// Compare orders two non-complex values exactly. NaN operands yield
	// Erange and a zero result.
	Compare(x, y numeric.Value) (int, Condition)
}
