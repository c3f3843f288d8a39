package numeric

import (
	"math"
	"math/big"
	"testing"
)

func TestKindOrder(t *testing.T) {
	if !(KindInteger < KindRational && KindRational < KindReal && KindReal < KindComplex) {
		t.Fatal("kinds must be declared in promotion order")
	}
	if Max(KindReal, KindRational) != KindReal {
		t.Errorf("Max(Real, Rational) = %v", Max(KindReal, KindRational))
	}
	if KindNotNumeric.IsNumeric() {
		t.Error("NotNumeric must not be numeric")
	}

	tests := map[Kind]string{
		KindNotNumeric: "NotNumeric",
		KindInteger:    "Integer",
		KindRational:   "Rational",
		KindReal:       "Real",
		KindComplex:    "Complex",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("String() = %v, want %v", k.String(), want)
		}
	}
}

func TestValueStrings(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"integer", IntegerFromInt64(-42), "-42"},
		{"mutable", NewMutableInteger(big.NewInt(7)), "7"},
		{"rational", RationalFromFrac(6, -8), "-3/4"},
		{"integral rational", RationalFromFrac(4, 2), "2"},
		{"real", RealFromFloat64(3.5), "3.5"},
		{"real tenth", RealFromFloat64(0.1), "0.1"},
		{"nan", NaN(53), "nan"},
		{"inf", Inf(1, 53), "inf"},
		{"neg inf", Inf(-1, 53), "-inf"},
		{"complex", ComplexFromComplex128(complex(1, -2)), "(1-2j)"},
		{"complex pos", ComplexFromComplex128(complex(0.5, 2)), "(0.5+2j)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestImmutability(t *testing.T) {
	src := big.NewInt(5)
	i := NewInteger(src)
	src.SetInt64(6)
	if i.Int64() != 5 {
		t.Error("NewInteger must copy its argument")
	}
	i.Big().SetInt64(9)
	if i.Int64() != 5 {
		t.Error("Big() must return a copy")
	}

	r := RationalFromFrac(1, 3)
	r.Rat().SetInt64(2)
	r.Num().SetInt64(2)
	if r.String() != "1/3" {
		t.Errorf("Rational changed through an accessor: %v", r)
	}

	f := RealFromFloat64(1.5)
	f.Float().SetInt64(2)
	if f.Float64() != 1.5 {
		t.Error("Float() must return a copy")
	}
}

func TestMutableIntegerInPlace(t *testing.T) {
	m := NewMutableInteger(big.NewInt(1))
	same := m.Set(big.NewInt(10))
	if same != m || m.String() != "10" {
		t.Errorf("Set() = %v, want the same identity holding 10", same)
	}
	if m.Kind() != KindInteger {
		t.Errorf("Kind() = %v, want Integer", m.Kind())
	}
	snap := m.Integer()
	m.Set(big.NewInt(11))
	if snap.Int64() != 10 {
		t.Error("Integer() must return a snapshot")
	}
}

func TestRealState(t *testing.T) {
	tests := []struct {
		name    string
		r       *Real
		nan     bool
		inf     bool
		zero    bool
		signbit bool
		sign    int
	}{
		{"nan", NaN(10), true, false, false, false, 0},
		{"pos inf", Inf(1, 10), false, true, false, false, 1},
		{"neg inf", Inf(-1, 10), false, true, false, true, -1},
		{"neg zero", Zero(true, 10), false, false, true, true, 0},
		{"float nan", RealFromFloat64(math.NaN()), true, false, false, false, 0},
		{"finite", RealFromFloat64(-2), false, false, false, true, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.r.IsNaN() != tt.nan || tt.r.IsInf() != tt.inf || tt.r.IsZero() != tt.zero {
				t.Errorf("state = nan:%v inf:%v zero:%v", tt.r.IsNaN(), tt.r.IsInf(), tt.r.IsZero())
			}
			if tt.r.Signbit() != tt.signbit {
				t.Errorf("Signbit() = %v, want %v", tt.r.Signbit(), tt.signbit)
			}
			if tt.r.Sign() != tt.sign {
				t.Errorf("Sign() = %v, want %v", tt.r.Sign(), tt.sign)
			}
		})
	}

	if e := RealFromFloat64(1).Exp(); e != 1 {
		t.Errorf("Exp(1) = %d, want 1", e)
	}
	if e := RealFromFloat64(0.75).Exp(); e != 0 {
		t.Errorf("Exp(0.75) = %d, want 0", e)
	}
	if RealFromFloat64(3).IsInt() != true || RealFromFloat64(3.5).IsInt() {
		t.Error("IsInt() mismatch")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same integer", IntegerFromInt64(3), IntegerFromInt64(3), true},
		{"mutable vs integer", NewMutableInteger(big.NewInt(3)), IntegerFromInt64(3), true},
		{"different kinds", IntegerFromInt64(3), RationalFromFrac(3, 1), false},
		{"rationals", RationalFromFrac(2, 4), RationalFromFrac(1, 2), true},
		{"reals ignore precision", RealFromFloat64(0.5), NewReal(big.NewFloat(0.5).SetPrec(200)), true},
		{"nan equals nan", NaN(53), NaN(10), true},
		{"signed zeros differ", Zero(true, 53), Zero(false, 53), false},
		{"complex", ComplexFromComplex128(1 + 2i), ComplexFromComplex128(1 + 2i), true},
		{"complex differs", ComplexFromComplex128(1 + 2i), ComplexFromComplex128(1 - 2i), false},
		{"nil", nil, nil, true},
		{"nil vs value", nil, IntegerFromInt64(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	if i, ok := ParseInteger("010"); !ok || i.Int64() != 10 {
		t.Errorf("ParseInteger(010) = %v, %v", i, ok)
	}
	if _, ok := ParseInteger("1.5"); ok {
		t.Error("ParseInteger(1.5) should fail")
	}
	if r, ok := ParseRational("3/9"); !ok || r.String() != "1/3" {
		t.Errorf("ParseRational(3/9) = %v, %v", r, ok)
	}
}
