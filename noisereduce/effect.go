package noisereduce

import (
	"context"
	"fmt"

	"github.com/cwbudde/algo-noisereduce/dsp/buffer"
)

// TrackResult reports the outcome of one track within a Run.
type TrackResult struct {
	Cancelled          bool
	WindowTypeMismatch bool
}

// Result reports the outcome of one Effect.Run call, one entry per track in
// the order given.
type Result struct {
	Profiling bool
	Tracks    []TrackResult
}

// Effect owns one Configuration and one Statistics across the lifetime of a
// profile-then-reduce workflow. The first successful Run profiles; every
// subsequent Run reduces against the retained statistics, matching the
// reference engine's automatic pass flip on repeat invocation.
type Effect struct {
	cfg        *Configuration
	stats      *Statistics
	haveProfle bool

	// pool backs every track driver's sliding-window and overlap-add
	// buffers across every Run call, so a multi-track selection reuses
	// buffers between tracks instead of allocating fresh ones each time.
	pool *buffer.Pool
}

// NewEffect creates an Effect that will profile on its first Run.
func NewEffect(cfg *Configuration) *Effect {
	return &Effect{cfg: cfg, pool: buffer.NewPool()}
}

// Configuration returns the effect's configuration.
func (e *Effect) Configuration() *Configuration { return e.cfg }

// Statistics returns the retained profile, or nil if no profiling pass has
// completed yet.
func (e *Effect) Statistics() *Statistics {
	if !e.haveProfle {
		return nil
	}
	return e.stats
}

// IsProfiling reports whether the next Run performs profiling (true) or
// reduction (false).
func (e *Effect) IsProfiling() bool { return !e.haveProfle }

// Run profiles or reduces every given track, depending on the current mode.
// sinks must have the same length as sources in reduction mode; it is
// ignored (may be nil) while profiling.
func (e *Effect) Run(ctx context.Context, sources []AudioSource, sinks []AudioSink, progress ProgressFunc) (Result, error) {
	if e.IsProfiling() {
		return e.runProfiling(ctx, sources, progress)
	}
	return e.runReducing(ctx, sources, sinks, progress)
}

func (e *Effect) runProfiling(ctx context.Context, sources []AudioSource, progress ProgressFunc) (Result, error) {
	stats := NewStatistics(e.cfg.SampleRate(), e.cfg.WindowSize(), e.cfg.WindowType())
	result := Result{Profiling: true, Tracks: make([]TrackResult, len(sources))}

	for i, src := range sources {
		if src.SampleRate() != e.cfg.SampleRate() {
			return result, fmt.Errorf("%w: track %d has rate %f, configuration has %f",
				ErrSampleRateMismatch, i, src.SampleRate(), e.cfg.SampleRate())
		}
		cancelled, err := runProfile(ctx, e.cfg, stats, src, i, progress, e.pool)
		result.Tracks[i].Cancelled = cancelled
		if err != nil {
			return result, err
		}
	}

	if err := stats.Finish(); err != nil {
		return result, err
	}

	e.stats = stats
	e.haveProfle = true
	return result, nil
}

func (e *Effect) runReducing(ctx context.Context, sources []AudioSource, sinks []AudioSink, progress ProgressFunc) (Result, error) {
	if e.stats == nil {
		return Result{}, ErrNotProfiled
	}
	if len(sinks) != len(sources) {
		return Result{}, fmt.Errorf("noisereduce: %d sources but %d sinks", len(sources), len(sinks))
	}

	result := Result{Profiling: false, Tracks: make([]TrackResult, len(sources))}
	for i, src := range sources {
		if src.SampleRate() != e.stats.SampleRate() {
			return result, fmt.Errorf("%w: track %d has rate %f, profile has %f",
				ErrSampleRateMismatch, i, src.SampleRate(), e.stats.SampleRate())
		}
		cancelled, warn, err := runReduce(ctx, e.cfg, e.stats, src, sinks[i], i, progress, e.pool)
		result.Tracks[i] = TrackResult{Cancelled: cancelled, WindowTypeMismatch: warn}
		if err != nil {
			return result, err
		}
	}
	return result, nil
}
