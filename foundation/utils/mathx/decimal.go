// File: decimal.go
// Title: Exact Decimal Values
// Description: Decimal is an exact rational on top of big.Rat with a decimal
//              text form. It exposes its numerator and denominator, so the
//              numeric classifier accepts it as a rational-like value.
// Author: msto63
// Version: v0.3.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core decimal operations
// - 2025-07-26 v0.1.1: Enhanced String() method with auto-rounding for financial values
// - 2026-10-18 v0.2.0: Num/Denom accessors, plain decimal String form
// - 2026-10-19 v0.3.0: Arithmetic and rounding left to the numeric stack

package mathx

import (
	"math/big"
	"strings"

	"github.com/msto63/mpnum/foundation/core/errors"
)

// Decimal is an exact rational number with a decimal text form. The zero
// value is 0.
type Decimal struct {
	value *big.Rat
}

// NewDecimal parses "123.45", "-67.89", "1e-3" or "1/3"
func NewDecimal(s string) (Decimal, error) {
	rat, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return Decimal{}, errors.InvalidFormat(errors.ModuleMathx, s, "decimal or fraction")
	}
	return Decimal{value: rat}, nil
}

// MustNewDecimal is NewDecimal for constants; it panics on malformed input
func MustNewDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) rat() *big.Rat {
	if d.value == nil {
		return new(big.Rat)
	}
	return d.value
}

// Num returns a copy of the numerator; the sign lives here
func (d Decimal) Num() *big.Int {
	return new(big.Int).Set(d.rat().Num())
}

// Denom returns a copy of the denominator, always positive
func (d Decimal) Denom() *big.Int {
	return new(big.Int).Set(d.rat().Denom())
}

// terminatingPlaces returns the number of decimal places needed for an
// exact representation when the denominator has no prime factors besides 2 and 5.
func (d Decimal) terminatingPlaces() (int, bool) {
	den := new(big.Int).Set(d.rat().Denom())
	two, five := 0, 0
	m := new(big.Int)
	for den.Bit(0) == 0 && den.Sign() > 0 {
		den.Rsh(den, 1)
		two++
	}
	for {
		q, r := new(big.Int).QuoRem(den, big.NewInt(5), m)
		if r.Sign() != 0 {
			break
		}
		den = q
		five++
	}
	if den.Cmp(big.NewInt(1)) != 0 {
		return 0, false
	}
	if two > five {
		return two, true
	}
	return five, true
}

// String returns the exact decimal form when it terminates, otherwise "num/den"
func (d Decimal) String() string {
	r := d.rat()
	if r.IsInt() {
		return r.Num().String()
	}
	if places, ok := d.terminatingPlaces(); ok {
		return r.FloatString(places)
	}
	return r.String()
}
