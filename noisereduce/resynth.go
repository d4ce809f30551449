package noisereduce

import (
	"github.com/cwbudde/algo-noisereduce/dsp/buffer"
	"github.com/cwbudde/algo-noisereduce/dsp/window"
	"github.com/cwbudde/algo-noisereduce/internal/fft"
)

// resynthesizer applies the outgoing frame's gain to its spectrum, inverse
// transforms it, shapes it with the synthesis window, and overlap-adds the
// result into a rolling output accumulator.
type resynthesizer struct {
	cfg  *Configuration
	plan *fft.Plan

	accum      *buffer.Buffer
	timeDomain []float64
	gained     fft.Frame
}

func newResynthesizer(cfg *Configuration, plan *fft.Plan, pool *buffer.Pool) *resynthesizer {
	r := &resynthesizer{
		cfg:        cfg,
		plan:       plan,
		accum:      pool.Get(cfg.WindowSize()),
		timeDomain: make([]float64, cfg.WindowSize()),
		gained:     plan.NewFrame(),
	}
	return r
}

func (r *resynthesizer) reset() {
	r.accum.Zero()
}

// release returns the overlap-add accumulator to pool. The resynthesizer
// must not be used again afterward.
func (r *resynthesizer) release(pool *buffer.Pool) {
	pool.Put(r.accum)
	r.accum = nil
}

// applyGain packs the outgoing frame's gain-scaled spectrum into r.gained.
func (r *resynthesizer) applyGain(outgoing *FrameRecord) {
	gain := outgoing.Gain
	last := len(gain) - 1
	residue := r.cfg.choice == LeaveResidue

	dcGain, nyquistGain := gain[0], gain[last]
	if residue {
		dcGain--
		nyquistGain--
	}
	r.gained.DC = outgoing.Spectrum.DC * dcGain
	r.gained.Nyquist = outgoing.Spectrum.Nyquist * nyquistGain

	for k := range outgoing.Spectrum.Real {
		g := gain[k+1]
		if residue {
			g--
		}
		r.gained.Real[k] = outgoing.Spectrum.Real[k] * g
		r.gained.Imag[k] = outgoing.Spectrum.Imag[k] * g
	}
}

// Synthesize processes the ring's outgoing frame, advances the output
// accumulator, and returns a finished step_size block once out_step_count
// is non-negative. The returned slice aliases internal state and is only
// valid until the next call.
func (r *resynthesizer) Synthesize(outgoing *FrameRecord, outStepCount int64) (block []float64, ready bool, err error) {
	r.applyGain(outgoing)
	if err := r.plan.Inverse(r.timeDomain, &r.gained); err != nil {
		return nil, false, err
	}

	pair := r.cfg.WindowPair()
	if pair.Synthesis != nil {
		if err := window.Apply(r.timeDomain, pair.Synthesis); err != nil {
			return nil, false, err
		}
	}

	accum := r.accum.Samples()
	for i, v := range r.timeDomain {
		accum[i] += v
	}

	step := r.cfg.StepSize()
	if outStepCount < 0 {
		r.shift(accum, step)
		return nil, false, nil
	}

	out := append([]float64(nil), accum[:step]...)
	r.shift(accum, step)
	return out, true, nil
}

func (r *resynthesizer) shift(accum []float64, step int) {
	copy(accum, accum[step:])
	for i := len(accum) - step; i < len(accum); i++ {
		accum[i] = 0
	}
}
