// Package fft wraps a fixed-size complex FFT plan behind the packed
// real-spectrum contract the noise-reduction pipeline expects: a real time
// domain frame in, one real value for DC, one real value for Nyquist, and
// real/imaginary pairs for every bin in between.
package fft

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

// Plan performs forward and inverse transforms of a fixed size. It is not
// safe for concurrent use; callers processing multiple frames concurrently
// should hold one Plan per goroutine.
type Plan struct {
	size    int
	inner   *algofft.Plan[complex128]
	scratch []complex128
}

// NewPlan builds a Plan for the given frame size, which must be a power of
// two as required by the underlying transform.
func NewPlan(size int) (*Plan, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("fft: size must be a power of two: %d", size)
	}
	inner, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("fft: %w", err)
	}
	return &Plan{
		size:    size,
		inner:   inner,
		scratch: make([]complex128, size),
	}, nil
}

// Size returns the frame size this plan transforms.
func (p *Plan) Size() int { return p.size }

// SpectrumSize returns the number of independent bins, DC through Nyquist
// inclusive, produced by a real-input forward transform of this size.
func (p *Plan) SpectrumSize() int { return p.size/2 + 1 }

// Frame holds one packed real spectrum: DC and Nyquist are pure real values
// (Nyquist has no imaginary component for a real time-domain signal), and
// bins 1..SpectrumSize()-2 carry both real and imaginary parts.
type Frame struct {
	DC      float64
	Nyquist float64
	Real    []float64
	Imag    []float64
}

// NewFrame allocates a Frame sized for plan.
func (p *Plan) NewFrame() Frame {
	n := p.SpectrumSize() - 2
	if n < 0 {
		n = 0
	}
	return Frame{Real: make([]float64, n), Imag: make([]float64, n)}
}

// Forward transforms a real time-domain signal of length Size into dst.
func (p *Plan) Forward(dst *Frame, timeDomain []float64) error {
	if len(timeDomain) != p.size {
		return fmt.Errorf("fft: forward input length %d does not match plan size %d", len(timeDomain), p.size)
	}
	for i, x := range timeDomain {
		p.scratch[i] = complex(x, 0)
	}
	if err := p.inner.Forward(p.scratch, p.scratch); err != nil {
		return fmt.Errorf("fft: forward: %w", err)
	}
	dst.DC = real(p.scratch[0])
	dst.Nyquist = real(p.scratch[p.size/2])
	for k := 1; k < p.size/2; k++ {
		dst.Real[k-1] = real(p.scratch[k])
		dst.Imag[k-1] = imag(p.scratch[k])
	}
	return nil
}

// Inverse transforms a packed spectrum back into a real time-domain signal.
// The negative-frequency bins are reconstructed by conjugate symmetry, so
// only the non-negative half of the spectrum needs to be supplied in src.
func (p *Plan) Inverse(dst []float64, src *Frame) error {
	if len(dst) != p.size {
		return fmt.Errorf("fft: inverse output length %d does not match plan size %d", len(dst), p.size)
	}
	p.scratch[0] = complex(src.DC, 0)
	p.scratch[p.size/2] = complex(src.Nyquist, 0)
	for k := 1; k < p.size/2; k++ {
		p.scratch[k] = complex(src.Real[k-1], src.Imag[k-1])
		p.scratch[p.size-k] = complex(src.Real[k-1], -src.Imag[k-1])
	}
	if err := p.inner.Inverse(p.scratch, p.scratch); err != nil {
		return fmt.Errorf("fft: inverse: %w", err)
	}
	for i := range dst {
		dst[i] = real(p.scratch[i])
	}
	return nil
}
