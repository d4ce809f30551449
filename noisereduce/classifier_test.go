package noisereduce

import (
	"testing"

	"github.com/cwbudde/algo-noisereduce/dsp/window"
	"github.com/cwbudde/algo-noisereduce/internal/fft"
)

func newTestRing(t *testing.T, historyLen int, powers [][]float64) *Ring {
	t.Helper()
	plan, err := fft.NewPlan(8)
	if err != nil {
		t.Fatal(err)
	}
	ring := NewRing(historyLen, plan)
	ring.Reset(0.1)
	for i, p := range powers {
		copy(ring.Slot(i).Power, p)
	}
	return ring
}

func TestClassifySecondGreatest(t *testing.T) {
	cfg, err := NewConfiguration(44100, WithMethod(SecondGreatest), WithWindowSize(8), WithStepsPerWindow(4))
	if err != nil {
		t.Fatal(err)
	}
	stats := NewStatistics(44100, 8, window.TypeHannHann)
	for k := range stats.means {
		stats.means[k] = 1.0
	}

	ring := newTestRing(t, cfg.HistoryLen(false), [][]float64{
		{100}, {1}, {1}, {1}, {1},
	})
	// Second-greatest of {100,1,1,1,1} is 1, at band 0. mult*mean must exceed
	// 1 for classification as noise.
	if !classifyBand(cfg, stats, ring, 0) {
		t.Fatal("want band classified as noise when second-greatest is small")
	}

	ring2 := newTestRing(t, cfg.HistoryLen(false), [][]float64{
		{100}, {90}, {1}, {1}, {1},
	})
	if classifyBand(cfg, stats, ring2, 0) {
		t.Fatal("want band classified as signal when second-greatest is large")
	}
}

func TestClassifySensitivityOrderingMonotonic(t *testing.T) {
	lowCfg, err := NewConfiguration(44100, WithMethod(SecondGreatest), WithWindowSize(8), WithStepsPerWindow(4), WithNewSensitivity(1))
	if err != nil {
		t.Fatal(err)
	}
	highCfg, err := NewConfiguration(44100, WithMethod(SecondGreatest), WithWindowSize(8), WithStepsPerWindow(4), WithNewSensitivity(24))
	if err != nil {
		t.Fatal(err)
	}

	stats := NewStatistics(44100, 8, window.TypeHannHann)
	for k := range stats.means {
		stats.means[k] = 1.0
	}

	powers := [][]float64{{5}, {3}, {1}, {1}, {1}}
	ringLow := newTestRing(t, lowCfg.HistoryLen(false), powers)
	ringHigh := newTestRing(t, highCfg.HistoryLen(false), powers)

	lowNoise := classifyBand(lowCfg, stats, ringLow, 0)
	highNoise := classifyBand(highCfg, stats, ringHigh, 0)

	// Increasing sensitivity can only add bands to the noise set, never
	// remove them: if low sensitivity already calls it noise, high must too.
	if lowNoise && !highNoise {
		t.Fatal("higher sensitivity classified fewer bands as noise")
	}
}

func TestClassifyOldMethod(t *testing.T) {
	// A large window and step keep n_windows_to_examine at its minimum of 2,
	// so the hand-built ring below only needs two populated slots.
	cfg, err := NewConfiguration(44100, WithMethod(Old), WithWindowType(window.TypeRectHann),
		WithWindowSize(16384), WithStepsPerWindow(8), WithSensitivityDB(0))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.nWindowsToExamine != 2 {
		t.Fatalf("test setup: n_windows_to_examine = %d, want 2", cfg.nWindowsToExamine)
	}
	stats := NewStatistics(44100, 16384, window.TypeRectHann)
	stats.noiseThreshold[0] = 10

	ring := newTestRing(t, cfg.HistoryLen(false), [][]float64{{5}, {20}})
	if !classifyBand(cfg, stats, ring, 0) {
		t.Fatal("want noise: min power 5 <= threshold 10")
	}

	ring2 := newTestRing(t, cfg.HistoryLen(false), [][]float64{{50}, {20}})
	if classifyBand(cfg, stats, ring2, 0) {
		t.Fatal("want signal: min power 20 > threshold 10")
	}
}
