package spectrum

import (
	"math"
	"testing"
)

func TestPowerFromParts(t *testing.T) {
	re := []float64{3, -1, 0}
	im := []float64{4, -1, 0}
	dst := make([]float64, 3)
	PowerFromParts(dst, re, im)

	if math.Abs(dst[0]-25) > 1e-12 {
		t.Fatalf("PowerFromParts[0]=%f want=25", dst[0])
	}

	if math.Abs(dst[1]-2) > 1e-12 {
		t.Fatalf("PowerFromParts[1]=%f want=2", dst[1])
	}

	if math.Abs(dst[2]-0) > 1e-12 {
		t.Fatalf("PowerFromParts[2]=%f want=0", dst[2])
	}
}
