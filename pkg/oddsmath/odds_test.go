package oddsmath

import (
	"math"
	"testing"
)

func TestAmericanToDecimal(t *testing.T) {
	cases := []struct {
		american int
		want     float64
	}{
		{150, 2.5},
		{-150, 100.0/150.0 + 1.0},
		{-110, 100.0/110.0 + 1.0},
		{100, 2.0},
		{-100, 2.0},
	}
	for _, c := range cases {
		got, err := AmericanToDecimal(c.american)
		if err != nil {
			t.Fatalf("AmericanToDecimal(%d): %v", c.american, err)
		}
		if math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("AmericanToDecimal(%d) = %v, want %v", c.american, got, c.want)
		}
	}
}

func TestAmericanToDecimalZero(t *testing.T) {
	if _, err := AmericanToDecimal(0); err == nil {
		t.Fatalf("expected error for odds 0")
	}
}

func TestImpliedProbability(t *testing.T) {
	p, err := ImpliedProbability(150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(p-0.4) > 1e-12 {
		t.Fatalf("ImpliedProbability(+150) = %v, want 0.4", p)
	}

	d, _ := AmericanToDecimal(-110)
	p, _ = ImpliedProbability(-110)
	if p != 1.0/d {
		t.Fatalf("implied probability must equal 1/decimal exactly")
	}
}

func TestDecimalToAmericanRoundTrip(t *testing.T) {
	for _, a := range []int{-10000, -450, -150, -110, -101, 100, 110, 150, 450, 10000} {
		d, err := AmericanToDecimal(a)
		if err != nil {
			t.Fatalf("AmericanToDecimal(%d): %v", a, err)
		}
		back, err := DecimalToAmerican(d)
		if err != nil {
			t.Fatalf("DecimalToAmerican(%v): %v", d, err)
		}
		if diff := back - a; diff < -1 || diff > 1 {
			t.Fatalf("round trip %d -> %v -> %d (off by %d)", a, d, back, diff)
		}
	}
}

func TestDecimalToAmericanInvalid(t *testing.T) {
	for _, d := range []float64{1.0, 0.5, 0, -2} {
		if _, err := DecimalToAmerican(d); err == nil {
			t.Fatalf("expected error for decimal %v", d)
		}
	}
}

func TestProbabilityToAmerican(t *testing.T) {
	a, err := ProbabilityToAmerican(0.4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != 150 {
		t.Fatalf("ProbabilityToAmerican(0.4) = %d, want 150", a)
	}

	if _, err := ProbabilityToAmerican(0); err == nil {
		t.Fatalf("expected error for probability 0")
	}
	if _, err := ProbabilityToAmerican(1); err == nil {
		t.Fatalf("expected error for probability 1")
	}
}
