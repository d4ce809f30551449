package noisereduce

import (
	"math"

	"github.com/cwbudde/algo-noisereduce/internal/fft"
)

// FrameRecord is one entry of the spectral frame ring: the packed complex
// spectrum of an analyzed frame, its per-band power, and the per-band gain
// that will eventually be applied to it during resynthesis.
type FrameRecord struct {
	Spectrum fft.Frame
	Power    []float64
	Gain     []float64
}

func newFrameRecord(plan *fft.Plan, spectrumSize float64) FrameRecord {
	_ = spectrumSize
	return FrameRecord{
		Spectrum: plan.NewFrame(),
		Power:    make([]float64, plan.SpectrumSize()),
		Gain:     make([]float64, plan.SpectrumSize()),
	}
}

func (r *FrameRecord) reset(noiseAttenFactor float64) {
	r.Spectrum.DC = 0
	r.Spectrum.Nyquist = 0
	for i := range r.Spectrum.Real {
		r.Spectrum.Real[i] = 0
		r.Spectrum.Imag[i] = 0
	}
	for k := range r.Power {
		r.Power[k] = 0
		r.Gain[k] = noiseAttenFactor
	}
}

// Ring is a fixed-length, index-based circular buffer of FrameRecords.
// Slot 0 is always the newest frame; slot Len()-1 is the outgoing (oldest)
// frame whose gains get applied and inverse-transformed this cycle.
type Ring struct {
	records []FrameRecord
	head    int
}

// NewRing allocates a Ring of the given length, one FrameRecord per slot.
func NewRing(historyLen int, plan *fft.Plan) *Ring {
	records := make([]FrameRecord, historyLen)
	for i := range records {
		records[i] = newFrameRecord(plan, float64(plan.SpectrumSize()))
	}
	return &Ring{records: records}
}

// Len returns the ring length (history_len).
func (r *Ring) Len() int { return len(r.records) }

// Slot returns the frame record at logical index i (0 = newest).
func (r *Ring) Slot(i int) *FrameRecord {
	n := len(r.records)
	return &r.records[(r.head+i)%n]
}

// Rotate advances the ring by one frame: the slot that was oldest becomes
// the new slot 0, ready to be overwritten with the next analysis frame.
// Callers must reset or fully repopulate Slot(0) after calling Rotate.
func (r *Ring) Rotate() {
	n := len(r.records)
	r.head = (r.head - 1 + n) % n
}

// Reset clears every slot and fills every gain with noiseAttenFactor,
// matching StartNewTrack's ring initialization.
func (r *Ring) Reset(noiseAttenFactor float64) {
	r.head = 0
	for i := range r.records {
		r.records[i].reset(noiseAttenFactor)
	}
}

// MinPowerPerBand returns, for each band, the minimum power observed across
// every slot currently in the ring. Used by the Old method's noise
// threshold update during profiling.
func (r *Ring) MinPowerPerBand(dst []float64) {
	for k := range dst {
		dst[k] = math.Inf(1)
	}
	for i := range r.records {
		power := r.records[i].Power
		for k := range dst {
			if k < len(power) && power[k] < dst[k] {
				dst[k] = power[k]
			}
		}
	}
}
