package stablefloat

import (
	"math"
	"testing"
)

func TestCanonicalizesNegativeZero(t *testing.T) {
	if Canonicalize(-0.0) != 0.0 {
		t.Fatal("expected -0.0 to canonicalize to 0.0")
	}
	if Canonicalize(0.0) != 0.0 {
		t.Fatal("expected 0.0 to stay 0.0")
	}
}

func TestCompareIsTotalAndDeterministic(t *testing.T) {
	if Compare(1.0, 2.0) >= 0 {
		t.Fatal("expected 1.0 < 2.0")
	}
	if Compare(math.NaN(), math.NaN()) != 0 {
		t.Fatal("expected NaN == NaN under canonical order")
	}
	if !Less(1.0, 2.0) {
		t.Fatal("expected Less(1, 2)")
	}
	if Less(-0.0, 0.0) || Less(0.0, -0.0) {
		t.Fatal("expected -0.0 and 0.0 to compare equal")
	}
}

func TestCompareIsConsistentAcrossArgumentOrder(t *testing.T) {
	pairs := [][2]float64{
		{1.0, math.NaN()},
		{math.NaN(), 1.0},
		{math.Inf(1), math.NaN()},
		{math.Inf(-1), 0.0},
	}
	for _, p := range pairs {
		if Compare(p[0], p[1]) != -Compare(p[1], p[0]) {
			t.Fatalf("Compare(%v, %v) not antisymmetric", p[0], p[1])
		}
	}
}
