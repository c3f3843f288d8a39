// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     coerce
// Description: Value classification and rightward promotion
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package coerce classifies operands by kind and promotes them along the
// order Integer < Rational < Real < Complex.
//
// Classification looks at the Go type only and never fails. Promotion does
// the conversion work: it rounds once into Real at the context precision and
// reports any inexactness through the context's trap policy.
package coerce

import (
	"fmt"

	"github.com/msto63/mpnum/foundation/core/errors"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/numeric"
	"github.com/msto63/mpnum/pkg/precision"
)

// Classify returns the kind of v without converting it. Unknown types are
// KindNotNumeric.
func Classify(v any) numeric.Kind {
	return kernel.Default().ClassifyNative(v)
}

// Promoter converts values to a target kind using a kernel
type Promoter struct {
	kernel kernel.Kernel
}

// NewPromoter returns a Promoter backed by k, or by kernel.Default() when k
// is nil.
func NewPromoter(k kernel.Kernel) *Promoter {
	if k == nil {
		k = kernel.Default()
	}
	return &Promoter{kernel: k}
}

// Classify returns the kind of v as seen by the promoter's kernel
func (p *Promoter) Classify(v any) numeric.Kind {
	return p.kernel.ClassifyNative(v)
}

// Promote converts v to target. Promotion only moves rightward; Real and
// Complex values never come back to the exact kinds. Rounding into Real and
// Complex follows ctx, and the conditions raised are reported to ctx.
func (p *Promoter) Promote(v any, target numeric.Kind, ctx *precision.Context) (numeric.Value, error) {
	kind := p.Classify(v)
	if !kind.IsNumeric() {
		return nil, errors.NotSupported(errors.ModuleCoerce, "promote", TypeName(v))
	}
	if !target.IsNumeric() || target < kind {
		return nil, errors.NotSupported(errors.ModuleCoerce, "promote", kind.String(), target.String())
	}

	if target == numeric.KindComplex && kind != numeric.KindComplex {
		re, im := ctx.ComplexParams()
		x, cond, err := p.kernel.Convert(v, numeric.KindReal, re)
		if err != nil {
			return nil, err
		}
		if err := ctx.Report("promote", cond); err != nil {
			return nil, err
		}
		return numeric.NewComplex(x.(*numeric.Real), numeric.Zero(false, im.Prec)), nil
	}

	x, cond, err := p.kernel.Convert(v, target, ctx.Params())
	if err != nil {
		return nil, err
	}
	if err := ctx.Report("promote", cond); err != nil {
		return nil, err
	}
	return x, nil
}

// TypeName names the kind of v, or its Go type for non-numeric values
func TypeName(v any) string {
	if k := Classify(v); k.IsNumeric() {
		return k.String()
	}
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
