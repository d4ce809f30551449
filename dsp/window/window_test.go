package window

import (
	"math"
	"testing"
)

func TestGeneratePairRejectsTooFewSteps(t *testing.T) {
	cases := []struct {
		t     Type
		steps int
	}{
		{TypeRectHann, 1},
		{TypeHannRect, 1},
		{TypeHannHann, 2},
		{TypeBlackmanHann, 2},
	}
	for _, c := range cases {
		if _, err := GeneratePair(c.t, 256, c.steps); err == nil {
			t.Fatalf("%s with %d steps: want error, got nil", c.t, c.steps)
		}
	}
}

func TestGeneratePairSides(t *testing.T) {
	cases := []struct {
		t                      Type
		steps                  int
		wantAnalysis           bool
		wantSynthesis          bool
	}{
		{TypeRectHann, 4, false, true},
		{TypeHannRect, 4, true, false},
		{TypeHannHann, 4, true, true},
		{TypeBlackmanHann, 4, true, true},
	}
	for _, c := range cases {
		pair, err := GeneratePair(c.t, 256, c.steps)
		if err != nil {
			t.Fatalf("%s: %v", c.t, err)
		}
		if (pair.Analysis != nil) != c.wantAnalysis {
			t.Errorf("%s: analysis present=%v, want %v", c.t, pair.Analysis != nil, c.wantAnalysis)
		}
		if (pair.Synthesis != nil) != c.wantSynthesis {
			t.Errorf("%s: synthesis present=%v, want %v", c.t, pair.Synthesis != nil, c.wantSynthesis)
		}
	}
}

// TestUnityOverlapAdd verifies that summing analysis*synthesis over every
// integer shift of the step size reconstructs unity at every sample
// position, for every window type at its minimum and a larger step count.
func TestUnityOverlapAdd(t *testing.T) {
	const windowSize = 256

	types := []Type{TypeRectHann, TypeHannRect, TypeHannHann, TypeBlackmanHann}
	for _, typ := range types {
		minSteps, err := typ.MinSteps()
		if err != nil {
			t.Fatal(err)
		}
		for _, steps := range []int{minSteps, minSteps * 2} {
			pair, err := GeneratePair(typ, windowSize, steps)
			if err != nil {
				t.Fatalf("%s steps=%d: %v", typ, steps, err)
			}

			step := windowSize / steps
			product := make([]float64, windowSize)
			for i := range product {
				a := 1.0
				if pair.Analysis != nil {
					a = pair.Analysis[i]
				}
				s := 1.0
				if pair.Synthesis != nil {
					s = pair.Synthesis[i]
				}
				product[i] = a * s
			}

			for n := 0; n < windowSize; n++ {
				sum := 0.0
				for k := 0; k < steps; k++ {
					idx := ((n-k*step)%windowSize + windowSize) % windowSize
					sum += product[idx]
				}
				if math.Abs(sum-1) > 1e-9 {
					t.Fatalf("%s steps=%d: sample %d sums to %v, want 1", typ, steps, n, sum)
				}
			}
		}
	}
}

func TestApplyRectangularIsNoOp(t *testing.T) {
	buf := []float64{1, 2, 3}
	orig := append([]float64(nil), buf...)
	if err := Apply(buf, nil); err != nil {
		t.Fatal(err)
	}
	for i := range buf {
		if buf[i] != orig[i] {
			t.Fatalf("Apply(nil) modified buffer at %d", i)
		}
	}
}

func TestApplyLengthMismatch(t *testing.T) {
	if err := Apply(make([]float64, 4), make([]float64, 3)); err == nil {
		t.Fatal("want error on length mismatch")
	}
}

func TestApplyMultiplies(t *testing.T) {
	buf := []float64{1, 1, 1, 1}
	coeffs := []float64{0, 0.5, 1, 2}
	if err := Apply(buf, coeffs); err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, 1, 2}
	for i := range buf {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestEquivalentNoiseBandwidthRectangular(t *testing.T) {
	enbw, err := EquivalentNoiseBandwidth(nil)
	if err != nil {
		t.Fatal(err)
	}
	if enbw != 1 {
		t.Fatalf("rectangular ENBW = %v, want 1", enbw)
	}
}

func TestEquivalentNoiseBandwidthHann(t *testing.T) {
	pair, err := GeneratePair(TypeHannHann, 1024, 4)
	if err != nil {
		t.Fatal(err)
	}
	enbw, err := EquivalentNoiseBandwidth(pair.Analysis)
	if err != nil {
		t.Fatal(err)
	}
	// A Hann window has an ENBW of 1.5 bins.
	if math.Abs(enbw-1.5) > 0.01 {
		t.Fatalf("Hann ENBW = %v, want ~1.5", enbw)
	}
}

func TestUnknownTypeErrors(t *testing.T) {
	if _, err := GeneratePair(Type(99), 256, 4); err == nil {
		t.Fatal("want error for unknown type")
	}
	if _, err := Type(99).MinSteps(); err == nil {
		t.Fatal("want error for unknown type")
	}
	if _, err := Type(99).ProductConstant(); err == nil {
		t.Fatal("want error for unknown type")
	}
}
