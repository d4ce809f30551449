package noisereduce

import (
	"testing"

	"github.com/cwbudde/algo-noisereduce/internal/fft"
)

func TestRingRotateBringsOldestToFront(t *testing.T) {
	plan, err := fft.NewPlan(8)
	if err != nil {
		t.Fatal(err)
	}
	ring := NewRing(4, plan)
	ring.Reset(0.1)

	oldest := ring.Slot(3)
	oldest.Gain[0] = 42

	ring.Rotate()

	if ring.Slot(0).Gain[0] != 42 {
		t.Fatalf("after rotate, slot 0 should be the old slot 3: got gain %v", ring.Slot(0).Gain[0])
	}
}

func TestRingResetFillsNoiseAttenFactor(t *testing.T) {
	plan, err := fft.NewPlan(8)
	if err != nil {
		t.Fatal(err)
	}
	ring := NewRing(3, plan)
	ring.Reset(0.25)
	for i := 0; i < ring.Len(); i++ {
		for _, g := range ring.Slot(i).Gain {
			if g != 0.25 {
				t.Fatalf("slot %d gain = %v, want 0.25", i, g)
			}
		}
	}
}

func TestRingMinPowerPerBand(t *testing.T) {
	plan, err := fft.NewPlan(8)
	if err != nil {
		t.Fatal(err)
	}
	ring := NewRing(3, plan)
	ring.Reset(1)
	ring.Slot(0).Power[0] = 5
	ring.Slot(1).Power[0] = 2
	ring.Slot(2).Power[0] = 9

	dst := make([]float64, plan.SpectrumSize())
	ring.MinPowerPerBand(dst)
	if dst[0] != 2 {
		t.Fatalf("min power band 0 = %v, want 2", dst[0])
	}
}
