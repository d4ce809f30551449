package noisereduce

import "math"

// gainBuilder sets and propagates per-band gains across the frame ring:
// initial classification-driven gains for the center frame, backward attack
// propagation, one-step forward release, and frequency smoothing of the
// outgoing frame's gain vector. One gainBuilder is owned per track driver
// and reused across every frame to avoid a per-frame allocation for the
// smoothing scratch buffer.
type gainBuilder struct {
	cfg     *Configuration
	scratch []float64
}

func newGainBuilder(cfg *Configuration) *gainBuilder {
	return &gainBuilder{
		cfg:     cfg,
		scratch: make([]float64, cfg.SpectrumSize()),
	}
}

// Build runs all four gain-construction steps for the current frame cycle.
func (b *gainBuilder) Build(stats *Statistics, ring *Ring) {
	cfg := b.cfg
	if cfg.choice == IsolateNoise {
		b.applyIsolateInitialGains(stats, ring)
		return
	}
	b.applyReduceInitialGains(stats, ring)
	b.applyAttack(ring)
	b.applyRelease(ring)
	b.applyFrequencySmoothing(ring)
}

func (b *gainBuilder) applyReduceInitialGains(stats *Statistics, ring *Ring) {
	cfg := b.cfg
	center := ring.Slot(cfg.center)
	for band := range center.Gain {
		if band < cfg.binLow || band >= cfg.binHigh {
			center.Gain[band] = 1
			continue
		}
		if !classifyBand(cfg, stats, ring, band) {
			center.Gain[band] = 1
		}
		// Classified as noise: leave the noiseAttenFactor the analysis step
		// prefilled when this frame was newest.
	}
}

func (b *gainBuilder) applyIsolateInitialGains(stats *Statistics, ring *Ring) {
	cfg := b.cfg
	center := ring.Slot(cfg.center)
	for band := range center.Gain {
		if band < cfg.binLow || band >= cfg.binHigh {
			center.Gain[band] = 0
			continue
		}
		if classifyBand(cfg, stats, ring, band) {
			center.Gain[band] = 1
		} else {
			center.Gain[band] = 0
		}
	}
}

// applyAttack propagates gain backward (toward older frames) from the
// center slot, letting a rise toward unity decay geometrically at
// one_block_attack per slot, stopping early once a slot already holds a
// gain at least as high as the propagated value.
func (b *gainBuilder) applyAttack(ring *Ring) {
	cfg := b.cfg
	spectrumSize := cfg.SpectrumSize()
	for band := 0; band < spectrumSize; band++ {
		for i := cfg.center + 1; i < ring.Len(); i++ {
			prev := ring.Slot(i - 1).Gain[band]
			next := math.Max(cfg.noiseAttenFactor, prev*cfg.oneBlockAttack)
			if ring.Slot(i).Gain[band] < next {
				ring.Slot(i).Gain[band] = next
			} else {
				break
			}
		}
	}
}

// applyRelease extends decay one step forward (toward the outgoing frame)
// from the center slot.
func (b *gainBuilder) applyRelease(ring *Ring) {
	cfg := b.cfg
	spectrumSize := cfg.SpectrumSize()
	center := ring.Slot(cfg.center)
	before := ring.Slot(cfg.center - 1)
	for band := 0; band < spectrumSize; band++ {
		candidate := math.Max(cfg.noiseAttenFactor, center.Gain[band]*cfg.oneBlockRelease)
		if candidate > before.Gain[band] {
			before.Gain[band] = candidate
		}
	}
}

// applyFrequencySmoothing replaces the outgoing frame's gain vector with its
// geometric mean over a +/- freqSmoothingBins neighborhood, narrowing the
// window at the array ends.
func (b *gainBuilder) applyFrequencySmoothing(ring *Ring) {
	cfg := b.cfg
	if cfg.freqSmoothingBins == 0 {
		return
	}
	outgoing := ring.Slot(ring.Len() - 1)
	g := outgoing.Gain
	scratch := b.scratch
	bins := cfg.freqSmoothingBins
	for k := range g {
		lo := k - bins
		if lo < 0 {
			lo = 0
		}
		hi := k + bins
		if hi > len(g)-1 {
			hi = len(g) - 1
		}
		sumLn := 0.0
		for j := lo; j <= hi; j++ {
			sumLn += math.Log(g[j])
		}
		scratch[k] = math.Exp(sumLn / float64(hi-lo+1))
	}
	copy(g, scratch)
}
