package calc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	mdwerror "github.com/msto63/mpnum/foundation/core/error"
	mdwlog "github.com/msto63/mpnum/foundation/core/log"
	"github.com/msto63/mpnum/pkg/core/config"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/numeric"
	"github.com/msto63/mpnum/pkg/precision"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(precision.NewStore(kernel.NewBig()), config.Default(), "", nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func TestParseLiteral(t *testing.T) {
	s := newSession(t)
	tests := []struct {
		tok  string
		kind numeric.Kind
	}{
		{"42", numeric.KindInteger},
		{"-7", numeric.KindInteger},
		{"1/3", numeric.KindRational},
		{"-22/7", numeric.KindRational},
		{"1.5", numeric.KindReal},
		{"1e-30", numeric.KindReal},
		{"inf", numeric.KindReal},
		{"nan", numeric.KindReal},
		{"1+2i", numeric.KindComplex},
		{"-0.5i", numeric.KindComplex},
		{"1e-3-2j", numeric.KindComplex},
		{"i", numeric.KindComplex},
		{"0.1d", numeric.KindRational},
		{"-2.5e-3d", numeric.KindRational},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			v, err := parseLiteral(tt.tok, s.Context(), s.kernel)
			if err != nil {
				t.Fatalf("parseLiteral(%q) error = %v", tt.tok, err)
			}
			if k := s.promoter.Classify(v); k != tt.kind {
				t.Errorf("parseLiteral(%q) kind = %v, want %v", tt.tok, k, tt.kind)
			}
		})
	}
}

func TestParseLiteralInvalid(t *testing.T) {
	s := newSession(t)
	for _, tok := range []string{"", "abc", "1/0x", "1..2", "1+ki", "infd", "xd"} {
		if _, err := parseLiteral(tok, s.Context(), s.kernel); err == nil {
			t.Errorf("parseLiteral(%q) expected error", tok)
		}
	}
}

func TestSplitComplex(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1+2", 1},
		{"-1-2", 2},
		{"1e-5", -1},
		{"1e+5-3", 4},
		{"-3", -1},
	}
	for _, tt := range tests {
		if got := splitComplex(tt.in); got != tt.want {
			t.Errorf("splitComplex(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		line    string
		op      string
		args    int
		wantErr bool
	}{
		{"1", "", 1, false},
		{"1 + 2", "add", 2, false},
		{"7 // 2", "floordiv", 2, false},
		{"2 ** 10", "pow", 2, false},
		{"1 <=> 2", "cmp", 2, false},
		{"divmod -7 2", "divmod", 2, false},
		{"POWMOD 2 3 5", "powmod", 3, false},
		{"", "", 0, true},
		{"1 ? 2", "", 0, true},
		{"powmod 2 3", "", 0, true},
		{"sqrt 2", "", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			e, err := parseExpr(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseExpr(%q) error = %v, wantErr %v", tt.line, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if e.op != tt.op || len(e.args) != tt.args {
				t.Errorf("parseExpr(%q) = %s/%d, want %s/%d", tt.line, e.op, len(e.args), tt.op, tt.args)
			}
		})
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		line string
		want string
		kind string
	}{
		{"1 / 3", "0.3333333333333333", "Real"},
		{"0.1d + 0.2d", "3/10", "Rational"},
		{"0.1d * 3", "3/10", "Rational"},
		{"7 / 2", "3.5", "Real"},
		{"-7 // 2", "-4", "Integer"},
		{"-7 % 2", "1", "Integer"},
		{"divmod -7 2", "(-4, 1)", "Integer, Integer"},
		{"1/2 + 1/3", "5/6", "Rational"},
		{"2 ** 64", "18446744073709551616", "Integer"},
		{"1/8 ** 1/3", "1/2", "Rational"},
		{"powmod 3 -1 7", "5", "Integer"},
		{"1+2i * 2", "(2+4j)", "Complex"},
		{"1 <=> 2.5", "-1", "Integer"},
		{"0.1", "0.1", "Real"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			s := newSession(t)
			res, err := s.Eval(tt.line)
			if err != nil {
				t.Fatalf("Eval(%q) error = %v", tt.line, err)
			}
			if res.String() != tt.want || res.Kind() != tt.kind {
				t.Errorf("Eval(%q) = %s %s, want %s %s", tt.line, res.Kind(), res, tt.kind, tt.want)
			}
		})
	}
}

func TestEvalLastResult(t *testing.T) {
	s := newSession(t)
	if _, err := s.Eval("_ + 1"); !mdwerror.HasCode(err, mdwerror.CodeInvalidInput) {
		t.Errorf("Eval(_) without result error = %v, want invalid input", err)
	}
	if _, err := s.Eval("6 * 7"); err != nil {
		t.Fatal(err)
	}
	res, err := s.Eval("_ - 2")
	if err != nil {
		t.Fatal(err)
	}
	if res.String() != "40" {
		t.Errorf("_ - 2 = %s, want 40", res)
	}
	if s.Last().String() != "40" {
		t.Errorf("Last() = %s, want 40", s.Last())
	}
}

func TestEvalErrors(t *testing.T) {
	s := newSession(t)
	tests := []struct {
		line string
		code mdwerror.Code
	}{
		{"1 // 0", mdwerror.CodeZeroDivision},
		{"1+2i // 2", mdwerror.CodeNotSupported},
		{"powmod 2 1.5 7", mdwerror.CodeNotSupported},
		{"1 + x", mdwerror.CodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := s.Eval(tt.line)
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Eval(%q) error = %v, want %s", tt.line, err, tt.code)
			}
		})
	}
}

func TestExecSetAndContext(t *testing.T) {
	s := newSession(t)
	steps := []string{
		":set precision 8",
		":set round RoundToZero",
		":set traps inexact|invalid",
		":set allow_complex on",
	}
	for _, line := range steps {
		if _, err := s.Exec(line); err != nil {
			t.Fatalf("Exec(%q) error = %v", line, err)
		}
	}
	ctx := s.Context()
	if ctx.Precision() != 8 || ctx.Round() != precision.RoundToZero || !ctx.AllowComplex() {
		t.Errorf("context after :set =\n%s", ctx)
	}
	if ctx.Traps() != precision.Inexact|precision.Invalid {
		t.Errorf("Traps() = %v", ctx.Traps())
	}

	_, err := s.Exec("1 / 3")
	if !errors.Is(err, precision.ErrInexact) {
		t.Errorf("1 / 3 with inexact trapped error = %v", err)
	}

	out, err := s.Exec(":context")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "context(precision=8,") {
		t.Errorf(":context = %q", out)
	}
}

func TestExecSetInvalid(t *testing.T) {
	s := newSession(t)
	for _, line := range []string{
		":set precision -3",
		":set precision many",
		":set round sideways",
		":set colour blue",
		":set emin 10",
		":set traps boom",
		":set",
	} {
		if _, err := s.Exec(line); err == nil {
			t.Errorf("Exec(%q) expected error", line)
		}
	}
	if s.Context().Precision() != precision.DefaultPrecision {
		t.Errorf("failed :set changed the context:\n%s", s.Context())
	}
}

func TestExecWith(t *testing.T) {
	s := newSession(t)
	out, err := s.Exec(":with precision=10,round=down 1 / 3")
	if err != nil {
		t.Fatalf(":with error = %v", err)
	}
	if out != "0.333" {
		t.Errorf(":with result = %q, want 0.333", out)
	}
	if s.Context().Precision() != precision.DefaultPrecision {
		t.Errorf("precision after :with = %d", s.Context().Precision())
	}
	if _, err := s.Exec(":with precision 1 / 3"); err == nil {
		t.Error(":with without F=V expected error")
	}
}

func TestExecFlags(t *testing.T) {
	s := newSession(t)
	if out, _ := s.Exec(":flags"); out != "none" {
		t.Errorf(":flags = %q, want none", out)
	}
	if _, err := s.Exec("1 / 3"); err != nil {
		t.Fatal(err)
	}
	if out, _ := s.Exec(":flags"); out != "inexact" {
		t.Errorf(":flags = %q, want inexact", out)
	}
	if _, err := s.Exec(":clear"); err != nil {
		t.Fatal(err)
	}
	if s.Context().Flags() != 0 {
		t.Errorf("flags after :clear = %v", s.Context().Flags())
	}
}

func TestExecTrap(t *testing.T) {
	s := newSession(t)
	if _, err := s.Exec(":trap divzero on"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Exec("1.0 / 0"); !errors.Is(err, precision.ErrDivZero) {
		t.Errorf("1.0 / 0 error = %v, want %v", err, precision.ErrDivZero)
	}
	if _, err := s.Exec(":trap divzero off"); err != nil {
		t.Fatal(err)
	}
	if out, err := s.Exec("1.0 / 0"); err != nil || out != "inf" {
		t.Errorf("1.0 / 0 = %q, %v; want inf", out, err)
	}
	if _, err := s.Exec(":trap boom on"); err == nil {
		t.Error(":trap with unknown condition expected error")
	}
}

func TestExecProfiles(t *testing.T) {
	s := newSession(t)
	if err := s.UseProfile(config.ProfileSingle); err != nil {
		t.Fatal(err)
	}
	ctx := s.Context()
	if ctx.Precision() != 24 || ctx.Emax() != 128 || ctx.ReadOnly() {
		t.Errorf("single profile context =\n%s", ctx)
	}
	if _, err := s.Exec(":profile missing"); !mdwerror.HasCode(err, mdwerror.CodeInvalidConfig) {
		t.Errorf(":profile missing error = %v", err)
	}
	out, err := s.Exec(":profiles")
	if err != nil || !strings.Contains(out, config.ProfileQuad) {
		t.Errorf(":profiles = %q, %v", out, err)
	}
}

func TestExecIEEE(t *testing.T) {
	s := newSession(t)
	if _, err := s.Exec(":ieee 128"); err != nil {
		t.Fatal(err)
	}
	if s.Context().Precision() != 113 {
		t.Errorf("precision after :ieee 128 = %d, want 113", s.Context().Precision())
	}
	if _, err := s.Exec(":ieee 16"); err == nil {
		t.Error(":ieee 16 expected error")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	store := precision.NewStore(kernel.NewBig())
	a, err := NewSession(store, nil, "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	b, err := NewSession(store, nil, config.ProfileDouble, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	if _, err := a.Exec(":set precision 200"); err != nil {
		t.Fatal(err)
	}
	if b.Context().Precision() != 53 {
		t.Errorf("session b precision = %d, want 53", b.Context().Precision())
	}
	if store.Global().Precision() != precision.DefaultPrecision {
		t.Errorf("global precision = %d", store.Global().Precision())
	}
}

func TestIsQuit(t *testing.T) {
	for _, line := range []string{":quit", " :q ", ":exit"} {
		if !IsQuit(line) {
			t.Errorf("IsQuit(%q) = false", line)
		}
	}
	if IsQuit("quit") {
		t.Error("IsQuit(quit) = true")
	}
}

func TestExecUnknownCommand(t *testing.T) {
	s := newSession(t)
	if _, err := s.Exec(":frobnicate"); err == nil {
		t.Error("unknown command expected error")
	}
	if out, err := s.Exec(":help"); err != nil || out != Help {
		t.Errorf(":help = %q, %v", out, err)
	}
	if out, err := s.Exec("   "); err != nil || out != "" {
		t.Errorf("blank line = %q, %v", out, err)
	}
}

func TestEvalIsTimed(t *testing.T) {
	var buf bytes.Buffer
	logger := mdwlog.NewWithConfig(mdwlog.Config{
		Level:  mdwlog.LevelDebug,
		Format: mdwlog.FormatLogfmt,
		Output: &buf,
	})
	s, err := NewSession(precision.NewStore(kernel.NewBig()), config.Default(), "", logger)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if _, err := s.Eval("2 + 3"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Eval("2 +"); err == nil {
		t.Fatal("Eval() expected error")
	}

	out := buf.String()
	for _, want := range []string{"eval completed", "duration_ms=", `kind="Integer"`, "success=false"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestComplete(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{":pro", []string{":profile ", ":profiles"}},
		{":q", []string{":quit"}},
		{":zz", nil},
		{"1 +", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := Complete(tt.line)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Complete(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
