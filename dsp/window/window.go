// Package window builds the analysis/synthesis window pairs used by the
// noise-reduction STFT pipeline.
//
// Each [Type] names a pair of cosine-sum windows: one applied before the
// forward FFT (analysis) and one applied after the inverse FFT (synthesis).
// Either side may be rectangular, in which case it is represented as a nil
// slice and the caller skips multiplication. The non-rectangular side (or,
// when both sides are shaped, the synthesis side) is scaled so that
// overlap-add reconstructs unity gain; see [ScaleFactor].
package window

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies an analysis/synthesis window pair.
type Type int

const (
	// TypeRectHann leaves the analysis side rectangular and shapes the
	// synthesis side with a Hann window. Requires at least 2 steps per window.
	TypeRectHann Type = iota
	// TypeHannRect shapes the analysis side with a Hann window and leaves
	// the synthesis side rectangular. Requires at least 2 steps per window.
	TypeHannRect
	// TypeHannHann shapes both sides with a Hann window. Requires at least
	// 4 steps per window.
	TypeHannHann
	// TypeBlackmanHann shapes the analysis side with a Blackman window and
	// the synthesis side with a Hann window. Requires at least 4 steps per
	// window.
	TypeBlackmanHann

	nTypes
)

// coeffs holds the three cosine-sum coefficients c0, c1, c2 of
// w[n] = c0 + c1*cos(2*pi*n/N) + c2*cos(4*pi*n/N).
type coeffs [3]float64

// rectangular has coefficients equivalent to a constant window; a rectangular
// side is represented as nil rather than materialized, since multiplying by
// all-ones is a no-op.
var rectangular = coeffs{1, 0, 0}

type typeInfo struct {
	name            string
	minSteps        int
	analysis        coeffs
	synthesis       coeffs
	analysisShaped  bool
	synthesisShaped bool
	// productConstant is K, the constant term of analysis*synthesis: the
	// mean of their product over one period, used to scale for unity
	// overlap-add reconstruction.
	productConstant float64
}

var typeInfos = [nTypes]typeInfo{
	TypeRectHann: {
		name: "RectHann", minSteps: 2,
		analysis: rectangular, analysisShaped: false,
		synthesis: coeffs{0.5, -0.5, 0}, synthesisShaped: true,
		productConstant: 0.5,
	},
	TypeHannRect: {
		name: "HannRect", minSteps: 2,
		analysis: coeffs{0.5, -0.5, 0}, analysisShaped: true,
		synthesis: rectangular, synthesisShaped: false,
		productConstant: 0.5,
	},
	TypeHannHann: {
		name: "HannHann", minSteps: 4,
		analysis: coeffs{0.5, -0.5, 0}, analysisShaped: true,
		synthesis: coeffs{0.5, -0.5, 0}, synthesisShaped: true,
		productConstant: 0.375,
	},
	TypeBlackmanHann: {
		name: "BlackmanHann", minSteps: 4,
		analysis: coeffs{0.42, -0.5, 0.08}, analysisShaped: true,
		synthesis: coeffs{0.5, -0.5, 0}, synthesisShaped: true,
		productConstant: 0.335,
	},
}

// String returns the window pair's name.
func (t Type) String() string {
	if t < 0 || t >= nTypes {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeInfos[t].name
}

// MinSteps returns the minimum steps-per-window this pair supports.
func (t Type) MinSteps() (int, error) {
	if t < 0 || t >= nTypes {
		return 0, fmt.Errorf("window: unknown type %d", int(t))
	}
	return typeInfos[t].minSteps, nil
}

// ProductConstant returns K, the constant term of the analysis*synthesis
// product, used to scale for unity overlap-add reconstruction.
func (t Type) ProductConstant() (float64, error) {
	if t < 0 || t >= nTypes {
		return 0, fmt.Errorf("window: unknown type %d", int(t))
	}
	return typeInfos[t].productConstant, nil
}

// ScaleFactor returns 1/(K*stepsPerWindow), the factor applied to whichever
// side is shaped when the other side is rectangular, or to the synthesis
// side when both sides are shaped, so that overlap-add reconstructs unity.
func ScaleFactor(t Type, stepsPerWindow int) (float64, error) {
	k, err := t.ProductConstant()
	if err != nil {
		return 0, err
	}
	if stepsPerWindow <= 0 {
		return 0, fmt.Errorf("window: stepsPerWindow must be > 0: %d", stepsPerWindow)
	}
	return 1 / (k * float64(stepsPerWindow)), nil
}

// Pair holds the analysis and synthesis window coefficients for one
// configuration. A nil slice means that side is rectangular (multiplication
// may be skipped).
type Pair struct {
	Analysis  []float64
	Synthesis []float64
}

// GeneratePair builds the analysis/synthesis window pair for t at the given
// window size and steps-per-window. It fails if stepsPerWindow is below the
// type's minimum.
func GeneratePair(t Type, windowSize, stepsPerWindow int) (Pair, error) {
	if windowSize <= 0 {
		return Pair{}, fmt.Errorf("window: size must be > 0: %d", windowSize)
	}
	if t < 0 || t >= nTypes {
		return Pair{}, fmt.Errorf("window: unknown type %d", int(t))
	}
	info := typeInfos[t]
	if stepsPerWindow < info.minSteps {
		return Pair{}, fmt.Errorf("window: %s requires steps-per-window >= %d, got %d",
			info.name, info.minSteps, stepsPerWindow)
	}

	scale, err := ScaleFactor(t, stepsPerWindow)
	if err != nil {
		return Pair{}, err
	}

	var pair Pair
	switch {
	case info.analysisShaped && info.synthesisShaped:
		// Both sides shaped: analysis at unity, scale folded into synthesis.
		pair.Analysis = generate(info.analysis, windowSize, 1)
		pair.Synthesis = generate(info.synthesis, windowSize, scale)
	case info.analysisShaped:
		// Synthesis is rectangular: fold the scale into analysis.
		pair.Analysis = generate(info.analysis, windowSize, scale)
	case info.synthesisShaped:
		// Analysis is rectangular: fold the scale into synthesis.
		pair.Synthesis = generate(info.synthesis, windowSize, scale)
	default:
		return Pair{}, fmt.Errorf("window: %s has no shaped side", info.name)
	}

	return pair, nil
}

// generate evaluates scale*(c0 + c1*cos(2*pi*n/N) + c2*cos(4*pi*n/N)) for
// n in [0, windowSize).
func generate(c coeffs, windowSize int, scale float64) []float64 {
	out := make([]float64, windowSize)
	n := float64(windowSize)
	for i := range out {
		x := float64(i)
		out[i] = scale * (c[0] + c[1]*math.Cos(2*math.Pi*x/n) + c[2]*math.Cos(4*math.Pi*x/n))
	}
	return out
}

// Apply multiplies buf in place by coeffs. A nil coeffs (rectangular side)
// leaves buf unchanged.
func Apply(buf, coeffs []float64) error {
	if coeffs == nil {
		return nil
	}
	if len(buf) != len(coeffs) {
		return fmt.Errorf("window: buffer length %d does not match window length %d", len(buf), len(coeffs))
	}
	vecmath.MulBlockInPlace(buf, coeffs)
	return nil
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window. A nil
// coeffs (rectangular side) has ENBW of exactly 1.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if coeffs == nil {
		return 1, nil
	}
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}
