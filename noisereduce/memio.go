package noisereduce

// MemorySource is an in-memory AudioSource over a fixed sample slice. It
// exists for tests and the command-line demo, since decoding audio files is
// outside this module's scope.
type MemorySource struct {
	sampleRate float64
	samples    []float64
	blockSize  int
}

// NewMemorySource wraps samples as an AudioSource at sampleRate. blockSize,
// if positive, is returned by BestBlockSize; otherwise a 4096-sample
// default is used.
func NewMemorySource(sampleRate float64, samples []float64, blockSize int) *MemorySource {
	return &MemorySource{sampleRate: sampleRate, samples: samples, blockSize: blockSize}
}

// SampleRate returns the source's sample rate in Hz.
func (s *MemorySource) SampleRate() float64 { return s.sampleRate }

// Start returns 0, the beginning of the wrapped sample slice.
func (s *MemorySource) Start() int64 { return 0 }

// End returns the length of the wrapped sample slice.
func (s *MemorySource) End() int64 { return int64(len(s.samples)) }

// BestBlockSize returns the configured block size, or a 4096-sample default.
func (s *MemorySource) BestBlockSize(pos int64) int {
	if s.blockSize > 0 {
		return s.blockSize
	}
	return 4096
}

// Read copies up to count samples starting at pos into buf.
func (s *MemorySource) Read(buf []float64, pos int64, count int) (int, error) {
	if pos < 0 || pos > int64(len(s.samples)) {
		return 0, nil
	}
	avail := int64(len(s.samples)) - pos
	if int64(count) > avail {
		count = int(avail)
	}
	n := copy(buf[:count], s.samples[pos:pos+int64(count)])
	return n, nil
}

// MemorySink is an in-memory AudioSink. ClearAndPaste records the replaced
// range and overwrites the destination slice in place; a test or caller
// that wants to compare before/after should keep its own copy of the
// original samples.
type MemorySink struct {
	buf        []float64
	dest       []float64
	pastedFrom int64
	pastedTo   int64
	pasted     bool
}

// NewMemorySink creates a sink that, on ClearAndPaste, writes its
// accumulated samples into dest starting at t0 (dest must be large enough
// to hold [t0, t1)).
func NewMemorySink(dest []float64) *MemorySink {
	return &MemorySink{dest: dest}
}

// Append adds count samples from buf to the accumulated output.
func (s *MemorySink) Append(buf []float64, count int) error {
	s.buf = append(s.buf, buf[:count]...)
	return nil
}

// Flush is a no-op for the in-memory sink.
func (s *MemorySink) Flush() error { return nil }

// ClearAndPaste writes the accumulated buffer into dest[t0:t1), clipping
// the accumulated buffer to that length first.
func (s *MemorySink) ClearAndPaste(t0, t1 int64, source AudioSource) error {
	n := int(t1 - t0)
	if n > len(s.buf) {
		n = len(s.buf)
	}
	copy(s.dest[t0:t0+int64(n)], s.buf[:n])
	s.pastedFrom, s.pastedTo, s.pasted = t0, t1, true
	return nil
}

// Output returns everything accumulated via Append, before trimming.
func (s *MemorySink) Output() []float64 { return s.buf }

// Pasted reports whether ClearAndPaste has run, and the range it used.
func (s *MemorySink) Pasted() (from, to int64, ok bool) { return s.pastedFrom, s.pastedTo, s.pasted }
