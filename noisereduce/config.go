// Package noisereduce implements a two-pass spectral noise-reduction engine:
// a profiling pass accumulates per-band noise power statistics over a
// representative segment, and a reduction pass uses those statistics to
// attenuate, isolate, or subtract stationary noise from arbitrary audio.
package noisereduce

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-noisereduce/dsp/core"
	"github.com/cwbudde/algo-noisereduce/dsp/window"
)

// ReductionChoice selects what the reduction pass outputs.
type ReductionChoice int

const (
	// ReduceNoise attenuates bands classified as noise.
	ReduceNoise ReductionChoice = iota
	// IsolateNoise keeps only bands classified as noise, silencing the rest.
	IsolateNoise
	// LeaveResidue outputs what ReduceNoise would have removed.
	LeaveResidue
)

func (r ReductionChoice) String() string {
	switch r {
	case ReduceNoise:
		return "ReduceNoise"
	case IsolateNoise:
		return "IsolateNoise"
	case LeaveResidue:
		return "LeaveResidue"
	default:
		return fmt.Sprintf("ReductionChoice(%d)", int(r))
	}
}

// Method selects the per-band noise classifier.
type Method int

const (
	// Median tracks the third-greatest power at 5 examined windows, or
	// aliases to SecondGreatest at 3.
	Median Method = iota
	// SecondGreatest classifies using the second-highest power among the
	// examined windows.
	SecondGreatest
	// Old classifies using a running max-of-min noise threshold.
	Old
)

func (m Method) String() string {
	switch m {
	case Median:
		return "Median"
	case SecondGreatest:
		return "SecondGreatest"
	case Old:
		return "Old"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// FrequencyBand restricts processing to [Low, High) Hz. A zero-value
// FrequencyBand (Active == false) means the whole spectrum is affected.
type FrequencyBand struct {
	Active   bool
	LowHz    float64
	HighHz   float64
}

const (
	minWindowSize = 8
	maxWindowSize = 16384

	minNoiseGainDB     = 0
	maxNoiseGainDB     = 48
	minSensitivityDB   = -20
	maxSensitivityDB   = 20
	minNewSensitivity  = 1
	maxNewSensitivity  = 24
	minFreqSmoothingHz = 0
	maxFreqSmoothingHz = 1000
	minAttackReleaseS  = 0
	maxAttackReleaseS  = 1
)

// Configuration holds one immutable, validated set of noise-reduction
// parameters, together with every quantity derived from it.
type Configuration struct {
	sampleRate float64

	windowSize     int
	stepsPerWindow int
	windowType     window.Type
	choice         ReductionChoice
	method         Method
	noiseGainDB    float64
	sensitivityDB  float64
	newSensitivity float64
	freqSmoothHz   float64
	attackTimeS    float64
	releaseTimeS   float64
	band           FrequencyBand

	// Derived quantities, computed by rebuild() in NewConfiguration.
	spectrumSize      int
	stepSize          int
	freqSmoothingBins int
	binLow            int
	binHigh           int
	nAttackBlocks     int
	nReleaseBlocks    int
	noiseAttenFactor  float64
	oneBlockAttack    float64
	oneBlockRelease   float64
	sensitivityFactor float64
	mult              float64
	nWindowsToExamine int
	center            int
	historyLenProfile int
	historyLenReduce  int

	windowPair window.Pair
}

// Option mutates a Configuration under construction.
type Option func(*Configuration)

// WithWindowSize sets the FFT window size (power of two, 8..16384).
func WithWindowSize(size int) Option {
	return func(c *Configuration) { c.windowSize = size }
}

// WithStepsPerWindow sets the number of analysis steps per window.
func WithStepsPerWindow(steps int) Option {
	return func(c *Configuration) { c.stepsPerWindow = steps }
}

// WithWindowType selects the analysis/synthesis window pair.
func WithWindowType(t window.Type) Option {
	return func(c *Configuration) { c.windowType = t }
}

// WithReductionChoice selects Reduce, Isolate, or Residue output.
func WithReductionChoice(choice ReductionChoice) Option {
	return func(c *Configuration) { c.choice = choice }
}

// WithMethod selects the noise classifier.
func WithMethod(m Method) Option {
	return func(c *Configuration) { c.method = m }
}

// WithNoiseGainDB sets the attenuation applied to noise bands, in dB (0..48).
func WithNoiseGainDB(db float64) Option {
	return func(c *Configuration) { c.noiseGainDB = db }
}

// WithSensitivityDB sets the Old-method sensitivity in dB (-20..20).
func WithSensitivityDB(db float64) Option {
	return func(c *Configuration) { c.sensitivityDB = db }
}

// WithNewSensitivity sets the SecondGreatest/Median sensitivity (1..24).
func WithNewSensitivity(s float64) Option {
	return func(c *Configuration) { c.newSensitivity = s }
}

// WithFreqSmoothingHz sets the frequency-domain gain smoothing width in Hz.
func WithFreqSmoothingHz(hz float64) Option {
	return func(c *Configuration) { c.freqSmoothHz = hz }
}

// WithAttackTimeS sets the attack time in seconds (0..1).
func WithAttackTimeS(s float64) Option {
	return func(c *Configuration) { c.attackTimeS = s }
}

// WithReleaseTimeS sets the release time in seconds (0..1).
func WithReleaseTimeS(s float64) Option {
	return func(c *Configuration) { c.releaseTimeS = s }
}

// WithFrequencyBand restricts processing to [lowHz, highHz).
func WithFrequencyBand(lowHz, highHz float64) Option {
	return func(c *Configuration) { c.band = FrequencyBand{Active: true, LowHz: lowHz, HighHz: highHz} }
}

// defaultConfiguration mirrors the defaults of the reference implementation:
// a 2048-sample window, 4 steps per window, HannHann shaping, SecondGreatest
// classification, 12 dB of attenuation and no band restriction.
func defaultConfiguration(sampleRate float64) Configuration {
	return Configuration{
		sampleRate:     sampleRate,
		windowSize:     2048,
		stepsPerWindow: 4,
		windowType:     window.TypeHannHann,
		choice:         ReduceNoise,
		method:         SecondGreatest,
		noiseGainDB:    12,
		sensitivityDB:  0,
		newSensitivity: 6,
		freqSmoothHz:   0,
		attackTimeS:    0.02,
		releaseTimeS:   0.10,
	}
}

// NewConfiguration builds and validates a Configuration for the given sample
// rate, applying opts over the defaults.
func NewConfiguration(sampleRate float64, opts ...Option) (*Configuration, error) {
	if !isFinitePositive(sampleRate) {
		return nil, fmt.Errorf("noisereduce: sample rate must be positive and finite: %f", sampleRate)
	}
	c := defaultConfiguration(sampleRate)
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	if err := c.rebuild(); err != nil {
		return nil, err
	}
	return &c, nil
}

// SampleRate returns the configured sample rate in Hz.
func (c *Configuration) SampleRate() float64 { return c.sampleRate }

// WindowSize returns the FFT window size in samples.
func (c *Configuration) WindowSize() int { return c.windowSize }

// StepSize returns the hop size in samples between consecutive frames.
func (c *Configuration) StepSize() int { return c.stepSize }

// StepsPerWindow returns the number of analysis steps per window.
func (c *Configuration) StepsPerWindow() int { return c.stepsPerWindow }

// WindowType returns the analysis/synthesis window pair type.
func (c *Configuration) WindowType() window.Type { return c.windowType }

// ReductionChoice returns the configured output mode.
func (c *Configuration) ReductionChoice() ReductionChoice { return c.choice }

// Method returns the configured classifier.
func (c *Configuration) Method() Method { return c.method }

// SpectrumSize returns window_size/2 + 1, the number of FFT bins.
func (c *Configuration) SpectrumSize() int { return c.spectrumSize }

// NoiseAttenFactor returns the linear noise attenuation floor.
func (c *Configuration) NoiseAttenFactor() float64 { return c.noiseAttenFactor }

// HistoryLen returns the ring length for the given pass.
func (c *Configuration) HistoryLen(profiling bool) int {
	if profiling {
		return c.historyLenProfile
	}
	return c.historyLenReduce
}

// Center returns the ring slot index used as the classification target.
func (c *Configuration) Center() int { return c.center }

// WindowPair returns the generated analysis/synthesis window coefficients.
func (c *Configuration) WindowPair() window.Pair { return c.windowPair }

// Validate re-checks every constraint from the parameter table. It is called
// automatically by NewConfiguration (through rebuild); exported so callers
// can re-validate after building a Configuration by hand in tests.
func (c *Configuration) Validate() error {
	if c.windowSize < minWindowSize || c.windowSize > maxWindowSize || !isPowerOfTwo(c.windowSize) {
		return fmt.Errorf("noisereduce: window size must be a power of two in [%d, %d]: %d",
			minWindowSize, maxWindowSize, c.windowSize)
	}
	if !isPowerOfTwo(c.stepsPerWindow) {
		return fmt.Errorf("noisereduce: steps per window must be a power of two: %d", c.stepsPerWindow)
	}
	minSteps, err := c.windowType.MinSteps()
	if err != nil {
		return fmt.Errorf("noisereduce: %w", err)
	}
	if c.stepsPerWindow < minSteps {
		return fmt.Errorf("noisereduce: %s requires steps-per-window >= %d, got %d",
			c.windowType, minSteps, c.stepsPerWindow)
	}
	if c.stepsPerWindow > c.windowSize {
		return fmt.Errorf("noisereduce: steps per window must be <= window size: %d > %d",
			c.stepsPerWindow, c.windowSize)
	}
	if c.method == Median && c.stepsPerWindow > 4 {
		return fmt.Errorf("noisereduce: median method requires steps-per-window <= 4, got %d", c.stepsPerWindow)
	}
	if c.noiseGainDB < minNoiseGainDB || c.noiseGainDB > maxNoiseGainDB {
		return fmt.Errorf("noisereduce: noise gain must be in [%d, %d] dB: %f",
			minNoiseGainDB, maxNoiseGainDB, c.noiseGainDB)
	}
	if c.sensitivityDB < minSensitivityDB || c.sensitivityDB > maxSensitivityDB {
		return fmt.Errorf("noisereduce: sensitivity must be in [%d, %d] dB: %f",
			minSensitivityDB, maxSensitivityDB, c.sensitivityDB)
	}
	if c.newSensitivity < minNewSensitivity || c.newSensitivity > maxNewSensitivity {
		return fmt.Errorf("noisereduce: new sensitivity must be in [%d, %d]: %f",
			minNewSensitivity, maxNewSensitivity, c.newSensitivity)
	}
	if c.freqSmoothHz < minFreqSmoothingHz || c.freqSmoothHz > maxFreqSmoothingHz {
		return fmt.Errorf("noisereduce: frequency smoothing must be in [%d, %d] Hz: %f",
			minFreqSmoothingHz, maxFreqSmoothingHz, c.freqSmoothHz)
	}
	if c.attackTimeS < minAttackReleaseS || c.attackTimeS > maxAttackReleaseS {
		return fmt.Errorf("noisereduce: attack time must be in [%d, %d] s: %f",
			minAttackReleaseS, maxAttackReleaseS, c.attackTimeS)
	}
	if c.releaseTimeS < minAttackReleaseS || c.releaseTimeS > maxAttackReleaseS {
		return fmt.Errorf("noisereduce: release time must be in [%d, %d] s: %f",
			minAttackReleaseS, maxAttackReleaseS, c.releaseTimeS)
	}
	if c.band.Active && !(c.band.LowHz < c.band.HighHz) {
		return fmt.Errorf("noisereduce: frequency band low must be < high: [%f, %f)", c.band.LowHz, c.band.HighHz)
	}
	return nil
}

// rebuild re-validates and recomputes every derived quantity in §5.
func (c *Configuration) rebuild() error {
	if err := c.Validate(); err != nil {
		return err
	}

	c.spectrumSize = c.windowSize/2 + 1
	c.stepSize = c.windowSize / c.stepsPerWindow

	binHz := c.sampleRate / float64(c.windowSize)
	c.freqSmoothingBins = int(math.Floor(c.freqSmoothHz * float64(c.windowSize) / c.sampleRate))

	c.binLow = 0
	c.binHigh = c.spectrumSize
	if c.band.Active {
		c.binLow = int(math.Floor(c.band.LowHz / binHz))
		c.binHigh = int(math.Ceil(c.band.HighHz / binHz))
		c.binLow = int(core.Clamp(float64(c.binLow), 0, float64(c.spectrumSize)))
		c.binHigh = int(core.Clamp(float64(c.binHigh), 0, float64(c.spectrumSize)))
	}

	c.nAttackBlocks = 1 + int(math.Floor(c.attackTimeS*c.sampleRate/float64(c.stepSize)))
	c.nReleaseBlocks = 1 + int(math.Floor(c.releaseTimeS*c.sampleRate/float64(c.stepSize)))

	c.noiseAttenFactor = core.DBToLinear(-c.noiseGainDB)
	c.oneBlockAttack = core.DBToLinear(-c.noiseGainDB / float64(c.nAttackBlocks))
	c.oneBlockRelease = core.DBToLinear(-c.noiseGainDB / float64(c.nReleaseBlocks))
	c.sensitivityFactor = core.DBPowerToLinear(c.sensitivityDB)
	c.mult = c.newSensitivity * math.Log(10)

	if c.method == Old {
		c.nWindowsToExamine = int(math.Max(2, math.Floor(0.05*c.sampleRate/float64(c.stepSize))))
	} else {
		c.nWindowsToExamine = 1 + c.stepsPerWindow
	}
	c.center = c.nWindowsToExamine / 2
	if c.center < 1 {
		return fmt.Errorf("noisereduce: n_windows_to_examine=%d yields center < 1", c.nWindowsToExamine)
	}
	if c.method == Median && c.nWindowsToExamine != 3 && c.nWindowsToExamine != 5 {
		return fmt.Errorf("noisereduce: median method needs n_windows_to_examine in {3,5}, got %d", c.nWindowsToExamine)
	}

	c.historyLenProfile = c.nWindowsToExamine
	c.historyLenReduce = int(math.Max(float64(c.nWindowsToExamine), float64(c.center+c.nAttackBlocks)))

	pair, err := window.GeneratePair(c.windowType, c.windowSize, c.stepsPerWindow)
	if err != nil {
		return fmt.Errorf("noisereduce: %w", err)
	}
	c.windowPair = pair

	return nil
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func isFinitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0) && !math.IsNaN(x)
}
