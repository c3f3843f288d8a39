// File: tuple.go
// Title: Decimal Tuple Representation
// Description: A sign/coefficient/exponent triple in the style of an
//              IEEE-754 decimal, including infinities and NaN. The numeric
//              classifier accepts it as a decimal-like real value and converts
//              it lazily at the active precision.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation

package mathx

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/msto63/mpnum/foundation/core/errors"
)

// Form distinguishes finite tuples from the special values
type Form int

const (
	Finite Form = iota
	Infinite
	NaN
)

// DecimalTuple is the value (-1)^Negative * Coefficient * 10^Exponent
type DecimalTuple struct {
	Negative    bool
	Coefficient *big.Int
	Exponent    int32
	Form        Form
}

// ParseTuple parses decimal scientific notation such as "-1.25e-3", "inf" or "nan"
func ParseTuple(s string) (DecimalTuple, error) {
	t := DecimalTuple{}
	s = strings.TrimSpace(s)
	if s == "" {
		return t, errors.InvalidFormat(errors.ModuleMathx, s, "decimal number")
	}
	switch s[0] {
	case '-':
		t.Negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	switch strings.ToLower(s) {
	case "inf", "infinity":
		t.Form = Infinite
		return t, nil
	case "nan":
		t.Form = NaN
		return t, nil
	}

	mant, exp := s, int64(0)
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		e, err := strconv.ParseInt(s[i+1:], 10, 32)
		if err != nil {
			return DecimalTuple{}, errors.InvalidFormat(errors.ModuleMathx, s, "decimal exponent")
		}
		mant, exp = s[:i], e
	}
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		exp -= int64(len(mant) - i - 1)
		mant = mant[:i] + mant[i+1:]
	}
	if mant == "" || exp < -1<<31 || exp > 1<<31-1 {
		return DecimalTuple{}, errors.InvalidFormat(errors.ModuleMathx, s, "decimal number")
	}
	coeff, ok := new(big.Int).SetString(mant, 10)
	if !ok || coeff.Sign() < 0 {
		return DecimalTuple{}, errors.InvalidFormat(errors.ModuleMathx, s, "decimal digits")
	}
	t.Coefficient = coeff
	t.Exponent = int32(exp)
	return t, nil
}

// DecimalParts exposes the tuple to the numeric classifier
func (t DecimalTuple) DecimalParts() (negative bool, coefficient *big.Int, exponent int32, form int) {
	c := new(big.Int)
	if t.Coefficient != nil {
		c.Set(t.Coefficient)
	}
	return t.Negative, c, t.Exponent, int(t.Form)
}

// Decimal returns the exact value of a finite tuple
func (t DecimalTuple) Decimal() (Decimal, error) {
	if t.Form != Finite {
		return Decimal{}, errors.Domain(errors.ModuleMathx, "decimal", "non-finite tuple has no exact value")
	}
	r := new(big.Rat)
	c := new(big.Int)
	if t.Coefficient != nil {
		c.Set(t.Coefficient)
	}
	if t.Negative {
		c.Neg(c)
	}
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(t.Exponent))), nil)
	if t.Exponent >= 0 {
		r.SetInt(c.Mul(c, p))
	} else {
		r.SetFrac(c, p)
	}
	return Decimal{value: r}, nil
}

func abs32(x int32) int64 {
	if x < 0 {
		return -int64(x)
	}
	return int64(x)
}

// String renders the tuple in scientific notation
func (t DecimalTuple) String() string {
	sign := ""
	if t.Negative {
		sign = "-"
	}
	switch t.Form {
	case Infinite:
		return sign + "Infinity"
	case NaN:
		return "NaN"
	}
	c := "0"
	if t.Coefficient != nil {
		c = t.Coefficient.String()
	}
	return fmt.Sprintf("%s%sE%d", sign, c, t.Exponent)
}
