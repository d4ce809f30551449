package buffer

import "testing"

func TestResizeGrowZeroesNewTail(t *testing.T) {
	b := &Buffer{}
	b.Resize(2)
	copy(b.Samples(), []float64{1, 2})

	b.Resize(4)
	want := []float64{1, 2, 0, 0}
	got := b.Samples()
	for i, v := range want {
		if got[i] != v {
			t.Fatalf("Samples()[%d] = %v, want %v", i, got[i], v)
		}
	}
}

func TestResizeShrinkPreservesData(t *testing.T) {
	b := &Buffer{}
	b.Resize(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Resize(2)
	if len(b.Samples()) != 2 || b.Samples()[0] != 1 || b.Samples()[1] != 2 {
		t.Fatalf("unexpected samples after shrink: %v", b.Samples())
	}
}

func TestResizeNegativeClampsToZero(t *testing.T) {
	b := &Buffer{}
	b.Resize(4)
	b.Resize(-1)
	if len(b.Samples()) != 0 {
		t.Fatalf("len(Samples()) = %d, want 0", len(b.Samples()))
	}
}

func TestResizeReuseClearsStaleData(t *testing.T) {
	b := &Buffer{}
	b.Resize(4)
	copy(b.Samples(), []float64{1, 2, 3, 4})

	b.Resize(2)
	b.Resize(4)
	// Elements 2 and 3 should be zeroed even though capacity was reused.
	if b.Samples()[2] != 0 || b.Samples()[3] != 0 {
		t.Fatalf("stale data visible after Resize: %v", b.Samples())
	}
}

func TestZero(t *testing.T) {
	b := &Buffer{}
	b.Resize(3)
	copy(b.Samples(), []float64{1, 2, 3})

	b.Zero()
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v after Zero", i, v)
		}
	}
}
