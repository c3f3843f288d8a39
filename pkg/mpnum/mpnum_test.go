package mpnum

import (
	"errors"
	"math/big"
	"testing"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	"github.com/msto63/mpnum/pkg/numeric"
	"github.com/msto63/mpnum/pkg/precision"
)

// restore reinstates the global context after a test that changes it
func restore(t *testing.T) {
	t.Helper()
	saved := GetContext().Copy()
	t.Cleanup(func() {
		if err := SetContext(saved); err != nil {
			t.Errorf("restore context: %v", err)
		}
	})
}

func TestContextDoesNotActivate(t *testing.T) {
	restore(t)
	ctx, err := Context(precision.WithPrecision(200))
	if err != nil {
		t.Fatal(err)
	}
	if GetContext() == ctx || GetContext().Precision() == 200 {
		t.Error("Context() activated the new context")
	}
	if err := SetContext(ctx); err != nil {
		t.Fatal(err)
	}
	if GetContext() != ctx {
		t.Error("GetContext() does not return the activated context")
	}
}

func TestContextInvalid(t *testing.T) {
	ctx, err := Context(precision.WithEmin(5), precision.WithEmax(-5))
	if ctx != nil || !mdwerror.HasCode(err, mdwerror.CodeInvalidContext) {
		t.Errorf("Context() = %v, %v; want nil and invalid context", ctx, err)
	}
}

func TestGetContextIsLive(t *testing.T) {
	restore(t)
	if err := GetContext().SetPrecision(8); err != nil {
		t.Fatal(err)
	}
	got, err := TrueDiv(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if p := got.(*numeric.Real).Prec(); p != 8 {
		t.Errorf("result precision = %d, want 8", p)
	}
}

func TestSetContextReadOnly(t *testing.T) {
	restore(t)
	ieee, err := IEEE(64)
	if err != nil {
		t.Fatal(err)
	}
	if err := SetContext(ieee); err != nil {
		t.Fatal(err)
	}
	active := GetContext()
	if active == ieee || active.ReadOnly() {
		t.Fatal("read-only context installed without copying")
	}
	if err := active.SetPrecision(30); err != nil {
		t.Errorf("active copy is not writable: %v", err)
	}
}

func TestLocalContextRestores(t *testing.T) {
	restore(t)
	before := GetContext().Copy()

	scope, err := LocalContext(nil, precision.WithPrecision(10), precision.WithTrap(precision.Inexact, true))
	if err != nil {
		t.Fatal(err)
	}
	_, err = TrueDiv(1, 3)
	if !errors.Is(err, precision.ErrInexact) {
		t.Errorf("TrueDiv() inside scope error = %v", err)
	}
	if err := scope.Exit(); err != nil {
		t.Fatal(err)
	}
	if !GetContext().Equal(before) {
		t.Errorf("context after scope:\n%s\nwant\n%s", GetContext(), before)
	}
}

func TestThreadsAreIndependent(t *testing.T) {
	th := NewThread()
	defer th.Release()

	ctx, _ := Context(precision.WithPrecision(12))
	if err := th.Activate(ctx); err != nil {
		t.Fatal(err)
	}
	d := For(th)
	got, err := d.TrueDiv(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if p := got.(*numeric.Real).Prec(); p != 12 {
		t.Errorf("thread result precision = %d, want 12", p)
	}
	if GetContext().Precision() == 12 {
		t.Error("thread activation changed the global context")
	}
}

func TestFacadeOperations(t *testing.T) {
	restore(t)
	if err := SetContext(mustContext(t)); err != nil {
		t.Fatal(err)
	}

	sum, _ := Add(1, 2)
	diff, _ := Sub(numeric.RationalFromFrac(1, 2), 1)
	prod, _ := Mul(big.NewInt(6), 7)
	pw, _ := Pow(2, 64)
	pm, _ := PowMod(2, 3, -5)
	q, r, _ := DivMod(-7, 2)
	c, _ := Cmp(1, 2.5)

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"add", sum.String(), "3"},
		{"sub", diff.String(), "-1/2"},
		{"mul", prod.String(), "42"},
		{"pow", pw.String(), "18446744073709551616"},
		{"powmod", pm.String(), "-2"},
		{"divmod q", q.String(), "-4"},
		{"divmod r", r.String(), "1"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %s, want %s", tt.name, tt.got, tt.want)
		}
	}
	if c != -1 {
		t.Errorf("Cmp(1, 2.5) = %d, want -1", c)
	}
}

func mustContext(t *testing.T, opts ...precision.Option) *precision.Context {
	t.Helper()
	c, err := Context(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return c
}
