package noisereduce

import "errors"

var (
	// ErrEmptyProfile is returned when a profiling pass completes having
	// seen zero frames across every track.
	ErrEmptyProfile = errors.New("noisereduce: empty noise profile: no frames were profiled")

	// ErrNotProfiled is returned by a reduction Run when no successful
	// profiling pass has been recorded yet.
	ErrNotProfiled = errors.New("noisereduce: reduction requires a completed profiling pass")

	// ErrSampleRateMismatch is returned when a track's sample rate does not
	// match the statistics or configuration sample rate.
	ErrSampleRateMismatch = errors.New("noisereduce: sample rate mismatch")

	// ErrWindowSizeMismatch is returned, fatally, when reducing against
	// statistics gathered with a different window size.
	ErrWindowSizeMismatch = errors.New("noisereduce: profile window size does not match configuration")

	// ErrCancelled is wrapped into the error a Run returns when a track is
	// cancelled mid-track, either via ctx.Done() (checked before each block)
	// or the progress callback's return value (checked after each block). Callers distinguish it from a genuine processing failure
	// with errors.Is(err, ErrCancelled); Result.Tracks[i].Cancelled reports
	// the same outcome without requiring error inspection.
	ErrCancelled = errors.New("noisereduce: cancelled")
)
