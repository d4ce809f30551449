package noisereduce

import "github.com/cwbudde/algo-noisereduce/dsp/buffer"

// frameBuffer assembles a sliding window_size-sample analysis window from
// arbitrary-length input blocks, emitting one completed window every
// step_size samples fed.
type frameBuffer struct {
	windowSize int
	stepSize   int

	buf       *buffer.Buffer
	pos       int
	sampleCnt int64
}

func newFrameBuffer(cfg *Configuration, pool *buffer.Pool) *frameBuffer {
	fb := &frameBuffer{
		windowSize: cfg.WindowSize(),
		stepSize:   cfg.StepSize(),
		buf:        pool.Get(cfg.WindowSize()),
	}
	fb.reset()
	return fb
}

// release returns the sliding-window accumulator to pool. The frameBuffer
// must not be used again afterward.
func (fb *frameBuffer) release(pool *buffer.Pool) {
	pool.Put(fb.buf)
	fb.buf = nil
}

// reset zeroes the accumulator and re-arms the leading zero-pad, matching
// StartNewTrack: the first frame exposes only the first step_size samples
// of real input.
func (fb *frameBuffer) reset() {
	fb.buf.Zero()
	fb.pos = fb.windowSize - fb.stepSize
	fb.sampleCnt = 0
}

// InSampleCount returns the total number of samples fed since reset.
func (fb *frameBuffer) InSampleCount() int64 { return fb.sampleCnt }

// Feed appends samples, invoking emit once, synchronously, for every window
// that becomes complete. The slice passed to emit aliases the internal
// buffer and is only valid for the duration of the call.
func (fb *frameBuffer) Feed(samples []float64, emit func(window []float64)) {
	buf := fb.buf.Samples()
	for len(samples) > 0 {
		room := fb.windowSize - fb.pos
		n := room
		if n > len(samples) {
			n = len(samples)
		}
		copy(buf[fb.pos:fb.pos+n], samples[:n])
		fb.pos += n
		fb.sampleCnt += int64(n)
		samples = samples[n:]

		if fb.pos == fb.windowSize {
			emit(buf)
			copy(buf, buf[fb.stepSize:])
			for i := fb.windowSize - fb.stepSize; i < fb.windowSize; i++ {
				buf[i] = 0
			}
			fb.pos = fb.windowSize - fb.stepSize
		}
	}
}
