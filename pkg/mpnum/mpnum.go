// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     mpnum
// Description: Process-level facade over the default context store
// Author:      Mike Stoffels
// Created:     2026-10-18
// License:     MIT
// ============================================================================

// Package mpnum is the convenience entry point: package-level arithmetic on
// the global context of a process-wide store.
//
//	ctx, _ := mpnum.Context(precision.WithPrecision(100))
//	_ = mpnum.SetContext(ctx)
//	third, _ := mpnum.TrueDiv(1, 3)
//
// Goroutines that need their own configuration call NewThread and use the
// dispatcher returned by For.
package mpnum

import (
	"github.com/msto63/mpnum/pkg/dispatch"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/numeric"
	"github.com/msto63/mpnum/pkg/precision"
)

var (
	store  = precision.NewStore(kernel.Default())
	global = store.Thread(precision.MainThread)
	ops    = dispatch.New(global, kernel.Default())
)

// Store returns the process-wide context store
func Store() *precision.Store { return store }

// Context builds a new writable context from the defaults and opts. It is
// not activated.
func Context(opts ...precision.Option) (*precision.Context, error) {
	return precision.New(opts...)
}

// GetContext returns the active global context by reference
func GetContext() *precision.Context { return global.Current() }

// SetContext activates ctx globally. Read-only contexts are copied first.
func SetContext(ctx *precision.Context) error { return global.Activate(ctx) }

// LocalContext enters a scope derived from ctx, or from the active context
// when ctx is nil. Call Exit on the returned scope to restore.
func LocalContext(ctx *precision.Context, opts ...precision.Option) (*precision.Scope, error) {
	return global.Local(ctx, opts...)
}

// WithLocalContext runs fn inside LocalContext and always restores
func WithLocalContext(ctx *precision.Context, fn func(*precision.Context) error, opts ...precision.Option) error {
	return global.WithLocal(ctx, fn, opts...)
}

// IEEE returns a read-only IEEE 754 binary32, binary64 or binary128 context
func IEEE(bits int) (*precision.Context, error) { return precision.IEEE(bits) }

// NewThread registers a logical thread on the process-wide store
func NewThread() *precision.Thread { return store.NewThread() }

// For returns a dispatcher that uses the contexts of th
func For(th *precision.Thread) *dispatch.Dispatcher {
	return dispatch.New(th, kernel.Default())
}

func Add(a, b any) (numeric.Value, error)      { return ops.Add(a, b) }
func Sub(a, b any) (numeric.Value, error)      { return ops.Sub(a, b) }
func Mul(a, b any) (numeric.Value, error)      { return ops.Mul(a, b) }
func TrueDiv(a, b any) (numeric.Value, error)  { return ops.TrueDiv(a, b) }
func FloorDiv(a, b any) (numeric.Value, error) { return ops.FloorDiv(a, b) }
func Mod(a, b any) (numeric.Value, error)      { return ops.Mod(a, b) }
func Pow(a, b any) (numeric.Value, error)      { return ops.Pow(a, b) }
func Cmp(a, b any) (int, error)                { return ops.Cmp(a, b) }

// DivMod returns FloorDiv(a, b) and Mod(a, b)
func DivMod(a, b any) (numeric.Value, numeric.Value, error) { return ops.DivMod(a, b) }

// PowMod returns a^b modulo m for integers
func PowMod(a, b, m any) (numeric.Value, error) { return ops.PowMod(a, b, m) }
