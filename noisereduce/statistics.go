package noisereduce

import "github.com/cwbudde/algo-noisereduce/dsp/window"

// Statistics is the profile output of the profiling pass and the input the
// reduction pass classifies against. One Statistics is shared across every
// track fed to a profiling Run, and its identity persists across the mode
// flip into reduction; see Effect.
type Statistics struct {
	sampleRate float64
	windowSize int
	windowType window.Type

	totalWindows int
	trackWindows int

	sums           []float64
	means          []float64
	noiseThreshold []float64
}

// NewStatistics allocates an empty Statistics sized for the given window.
func NewStatistics(sampleRate float64, windowSize int, windowType window.Type) *Statistics {
	spectrumSize := windowSize/2 + 1
	return &Statistics{
		sampleRate:     sampleRate,
		windowSize:     windowSize,
		windowType:     windowType,
		sums:           make([]float64, spectrumSize),
		means:          make([]float64, spectrumSize),
		noiseThreshold: make([]float64, spectrumSize),
	}
}

// SampleRate returns the sample rate the profile was gathered at.
func (s *Statistics) SampleRate() float64 { return s.sampleRate }

// WindowSize returns the window size the profile was gathered at.
func (s *Statistics) WindowSize() int { return s.windowSize }

// WindowType returns the window type the profile was gathered with.
func (s *Statistics) WindowType() window.Type { return s.windowType }

// Means returns the per-band mean noise power across all completed tracks.
func (s *Statistics) Means() []float64 { return s.means }

// NoiseThreshold returns the Old-method per-band running max-of-min power.
func (s *Statistics) NoiseThreshold() []float64 { return s.noiseThreshold }

// TotalWindows returns the number of frames folded into means so far.
func (s *Statistics) TotalWindows() int { return s.totalWindows }

// GatherFrame folds one analysis frame's per-band power into the current
// track's running sum.
func (s *Statistics) GatherFrame(power []float64) {
	s.trackWindows++
	for k := range s.sums {
		if k < len(power) {
			s.sums[k] += power[k]
		}
	}
}

// GatherOldThreshold folds the Old method's per-band minimum-over-the-ring
// power into the running max-of-min threshold.
func (s *Statistics) GatherOldThreshold(minPower []float64) {
	for k := range s.noiseThreshold {
		if k < len(minPower) && minPower[k] > s.noiseThreshold[k] {
			s.noiseThreshold[k] = minPower[k]
		}
	}
}

// FinishTrack folds the current track's accumulated sums into the running
// per-band means, using the mean-of-means folding law, then resets the
// per-track accumulators.
func (s *Statistics) FinishTrack() {
	if s.trackWindows == 0 {
		return
	}
	denom := float64(s.trackWindows + s.totalWindows)
	for k := range s.means {
		s.means[k] = (s.means[k]*float64(s.totalWindows) + s.sums[k]) / denom
	}
	s.totalWindows += s.trackWindows
	s.trackWindows = 0
	for k := range s.sums {
		s.sums[k] = 0
	}
}

// Finish validates that at least one frame was ever profiled.
func (s *Statistics) Finish() error {
	if s.totalWindows == 0 {
		return ErrEmptyProfile
	}
	return nil
}
