package noisereduce

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-noisereduce/dsp/buffer"
	"github.com/cwbudde/algo-noisereduce/dsp/spectrum"
	"github.com/cwbudde/algo-noisereduce/dsp/window"
	"github.com/cwbudde/algo-noisereduce/internal/fft"
)

// AudioSource is a per-track collaborator supplying sample rate, extent, and
// a chunked read primitive. Implementations back it with whatever storage
// they choose; file decoding is outside this module's scope.
type AudioSource interface {
	SampleRate() float64
	Start() int64
	End() int64
	BestBlockSize(pos int64) int
	Read(buf []float64, pos int64, count int) (int, error)
}

// AudioSink accumulates the synthesized replacement for a track's
// selection via Append, then commits it with ClearAndPaste, which replaces
// [t0, t1) of the original track (identified by source, the same
// AudioSource the samples were synthesized from) with everything Appended
// so far.
type AudioSink interface {
	Append(buf []float64, count int) error
	Flush() error
	ClearAndPaste(t0, t1 int64, source AudioSource) error
}

// ProgressFunc reports fractional completion for a track and may request
// cancellation by returning true.
type ProgressFunc func(trackIndex int, fractionComplete float64) (cancel bool)

// trackDriver runs one profiling or reduction pass over one track. It owns
// the frame buffer, the frame ring, and (in reduction mode) the gain
// builder and resynthesizer; none of this state survives past one track.
type trackDriver struct {
	cfg       *Configuration
	stats     *Statistics
	profiling bool

	plan *fft.Plan
	ring *Ring
	fb   *frameBuffer

	analysisScratch []float64
	minPowerScratch []float64

	gain    *gainBuilder
	resynth *resynthesizer

	outStepCount int64
	warnMismatch bool

	pool *buffer.Pool
}

// newTrackDriver builds a driver for one track. pool backs the sliding
// analysis window and overlap-add accumulators; a driver is short-lived (one
// per track), so Effect shares one pool across every track in a Run to
// amortize the underlying sync.Pool churn instead of allocating fresh
// buffers per track.
func newTrackDriver(cfg *Configuration, stats *Statistics, profiling bool, plan *fft.Plan, pool *buffer.Pool) *trackDriver {
	d := &trackDriver{
		cfg:             cfg,
		stats:           stats,
		profiling:       profiling,
		plan:            plan,
		fb:              newFrameBuffer(cfg, pool),
		analysisScratch: make([]float64, cfg.WindowSize()),
		minPowerScratch: make([]float64, cfg.SpectrumSize()),
		pool:            pool,
	}
	d.ring = NewRing(cfg.HistoryLen(profiling), plan)
	if !profiling {
		d.gain = newGainBuilder(cfg)
		d.resynth = newResynthesizer(cfg, plan, pool)
	}
	d.startNewTrack()
	return d
}

// release returns pooled buffers once the track is fully processed. The
// driver must not be used again afterward.
func (d *trackDriver) release() {
	d.fb.release(d.pool)
	if d.resynth != nil {
		d.resynth.release(d.pool)
	}
}

// startNewTrack implements §6.8's StartNewTrack: zero every ring slot, fill
// gains with noise_atten_factor, reset the input/output buffers, and
// re-arm out_step_count at its startup offset.
func (d *trackDriver) startNewTrack() {
	d.ring.Reset(d.cfg.noiseAttenFactor)
	d.fb.reset()
	if d.resynth != nil {
		d.resynth.reset()
	}
	d.outStepCount = -int64(d.ring.Len()-1) - int64(d.cfg.stepsPerWindow-1)
}

// processBlock feeds one block of input samples through the frame buffer,
// analyzing every completed window and, in reduction mode, appending any
// finished output block to sink.
func (d *trackDriver) processBlock(samples []float64, sink AudioSink) error {
	var frameErr error
	d.fb.Feed(samples, func(w []float64) {
		if frameErr != nil {
			return
		}
		frameErr = d.onFrame(w, sink)
	})
	return frameErr
}

func (d *trackDriver) onFrame(rawWindow []float64, sink AudioSink) error {
	d.ring.Rotate()
	slot := d.ring.Slot(0)

	copy(d.analysisScratch, rawWindow)
	pair := d.cfg.WindowPair()
	if pair.Analysis != nil {
		if err := window.Apply(d.analysisScratch, pair.Analysis); err != nil {
			return err
		}
	}
	if err := d.plan.Forward(&slot.Spectrum, d.analysisScratch); err != nil {
		return err
	}
	computePower(slot)

	if d.cfg.choice != IsolateNoise {
		for k := range slot.Gain {
			slot.Gain[k] = d.cfg.noiseAttenFactor
		}
	}

	if d.profiling {
		d.stats.GatherFrame(slot.Power)
		if d.cfg.method == Old {
			d.ring.MinPowerPerBand(d.minPowerScratch)
			d.stats.GatherOldThreshold(d.minPowerScratch)
		}
		d.outStepCount++
		return nil
	}

	d.gain.Build(d.stats, d.ring)
	outgoing := d.ring.Slot(d.ring.Len() - 1)
	block, ready, err := d.resynth.Synthesize(outgoing, d.outStepCount)
	if err != nil {
		return err
	}
	if ready {
		if err := sink.Append(block, len(block)); err != nil {
			return err
		}
	}
	d.outStepCount++
	return nil
}

// computePower fills a frame record's power vector from its packed
// spectrum, using the vecmath-backed PowerFromParts for the interior bins.
func computePower(rec *FrameRecord) {
	last := len(rec.Power) - 1
	if last > 0 {
		spectrum.PowerFromParts(rec.Power[1:last], rec.Spectrum.Real, rec.Spectrum.Imag)
	}
	rec.Power[0] = rec.Spectrum.DC * rec.Spectrum.DC
	rec.Power[last] = rec.Spectrum.Nyquist * rec.Spectrum.Nyquist
}

// runProfile drives one profiling pass over source, folding its frames into
// stats when it finishes without cancellation.
func runProfile(ctx context.Context, cfg *Configuration, stats *Statistics, source AudioSource, trackIndex int, progress ProgressFunc, pool *buffer.Pool) (cancelled bool, err error) {
	plan, err := fft.NewPlan(cfg.WindowSize())
	if err != nil {
		return false, err
	}
	driver := newTrackDriver(cfg, stats, true, plan, pool)
	defer driver.release()

	start, end := source.Start(), source.End()
	total := end - start
	if total <= 0 {
		return false, fmt.Errorf("noisereduce: track %d has empty selection", trackIndex)
	}

	pos := start
	block := make([]float64, 0)
	for pos < end {
		select {
		case <-ctx.Done():
			return true, fmt.Errorf("noisereduce: track %d cancelled: %w", trackIndex, ErrCancelled)
		default:
		}
		n := source.BestBlockSize(pos)
		if int64(n) > end-pos {
			n = int(end - pos)
		}
		if cap(block) < n {
			block = make([]float64, n)
		}
		block = block[:n]
		read, rerr := source.Read(block, pos, n)
		if rerr != nil {
			return false, fmt.Errorf("noisereduce: track %d read failed: %w", trackIndex, rerr)
		}
		if err := driver.processBlock(block[:read], nil); err != nil {
			return false, err
		}
		pos += int64(read)

		if progress != nil && progress(trackIndex, float64(pos-start)/float64(total)) {
			return true, fmt.Errorf("noisereduce: track %d cancelled: %w", trackIndex, ErrCancelled)
		}
		if read == 0 {
			break
		}
	}

	stats.FinishTrack()
	return false, nil
}

// runReduce drives one reduction pass over source, writing the synthesized
// replacement to sink and, on success, calling ClearAndPaste to replace the
// original range.
func runReduce(ctx context.Context, cfg *Configuration, stats *Statistics, source AudioSource, sink AudioSink, trackIndex int, progress ProgressFunc, pool *buffer.Pool) (cancelled bool, warnMismatch bool, err error) {
	if stats.WindowSize() != cfg.WindowSize() {
		return false, false, fmt.Errorf("%w: profile=%d configured=%d", ErrWindowSizeMismatch, stats.WindowSize(), cfg.WindowSize())
	}
	warnMismatch = stats.WindowType() != cfg.WindowType()

	plan, err := fft.NewPlan(cfg.WindowSize())
	if err != nil {
		return false, warnMismatch, err
	}
	driver := newTrackDriver(cfg, stats, false, plan, pool)
	defer driver.release()

	start, end := source.Start(), source.End()
	total := end - start
	if total <= 0 {
		return false, warnMismatch, fmt.Errorf("noisereduce: track %d has empty selection", trackIndex)
	}

	pos := start
	block := make([]float64, 0)
	for pos < end {
		select {
		case <-ctx.Done():
			return true, warnMismatch, fmt.Errorf("noisereduce: track %d cancelled: %w", trackIndex, ErrCancelled)
		default:
		}
		n := source.BestBlockSize(pos)
		if int64(n) > end-pos {
			n = int(end - pos)
		}
		if cap(block) < n {
			block = make([]float64, n)
		}
		block = block[:n]
		read, rerr := source.Read(block, pos, n)
		if rerr != nil {
			return false, warnMismatch, fmt.Errorf("noisereduce: track %d read failed: %w", trackIndex, rerr)
		}
		if err := driver.processBlock(block[:read], sink); err != nil {
			return false, warnMismatch, err
		}
		pos += int64(read)

		if progress != nil && progress(trackIndex, float64(pos-start)/float64(total)) {
			return true, warnMismatch, fmt.Errorf("noisereduce: track %d cancelled: %w", trackIndex, ErrCancelled)
		}
		if read == 0 {
			break
		}
	}

	// Flush: feed zero blocks until the resynthesizer has produced at least
	// in_sample_count samples of output.
	stepSize := cfg.StepSize()
	zeroBlock := make([]float64, stepSize)
	inSampleCount := driver.fb.InSampleCount()
	for driver.outStepCount*int64(stepSize) < inSampleCount {
		if err := driver.processBlock(zeroBlock, sink); err != nil {
			return false, warnMismatch, err
		}
	}

	if err := sink.Flush(); err != nil {
		return false, warnMismatch, err
	}
	// Trailing trim: replace exactly [start, start+inSampleCount), discarding
	// any excess the flush loop appended beyond that (see SPEC_FULL.md §11).
	if err := sink.ClearAndPaste(start, start+inSampleCount, source); err != nil {
		return false, warnMismatch, err
	}

	return false, warnMismatch, nil
}
