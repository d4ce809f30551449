package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDBToLinear(t *testing.T) {
	if got := DBToLinear(0); got != 1 {
		t.Fatalf("DBToLinear(0) = %v, want 1", got)
	}
	if got := DBToLinear(-6); got < 0.49 || got > 0.51 {
		t.Fatalf("DBToLinear(-6) = %v, want ~0.5", got)
	}
}

func TestDBPowerToLinear(t *testing.T) {
	// 3 dB power ~ 2x linear power.
	p := DBPowerToLinear(3)
	if p < 1.99 || p > 2.01 {
		t.Fatalf("DBPowerToLinear(3) = %v, want ~2.0", p)
	}
	if got := DBPowerToLinear(0); got != 1 {
		t.Fatalf("DBPowerToLinear(0) = %v, want 1", got)
	}
}
