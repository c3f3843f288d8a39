// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     precision
// Description: IEEE 754 interchange format contexts
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package precision

import (
	"math"

	"github.com/msto63/mpnum/foundation/core/errors"
)

// IEEE returns a read-only context matching the IEEE 754 binary format of
// the given width. Supported widths are 32, 64 and 128.
//
//	bits  precision  emin    emax
//	32    24         -148    128
//	64    53         -1073   1024
//	128   113        -16493  16384
//
// Activating the result installs a writable copy; use Copy to modify it.
func IEEE(bits int) (*Context, error) {
	var prec int
	switch bits {
	case 32:
		prec = 24
	case 64, 128:
		// p = k - round(4*log2(k)) + 13
		prec = bits - int(math.Round(4*math.Log2(float64(bits)))) + 13
	default:
		return nil, errors.InvalidContext("bitwidth", bits, "32, 64 or 128")
	}
	emax := 1 << (bits - prec - 1)
	emin := 4 - emax - prec

	c, err := New(
		WithPrecision(prec),
		WithEmax(emax),
		WithEmin(emin),
		WithSubnormalize(true),
	)
	if err != nil {
		return nil, err
	}
	c.readOnly = true
	return c, nil
}
