package simulation

import (
	"math"
	"math/rand/v2"
	"sync"
)

// Time grid and noise constants.
const (
	// Samples is the number of points on the time axis.
	Samples = 150

	// Duration is the length of the simulated window in seconds.
	Duration = 10.0

	// DefaultNoiseScale multiplies each standard normal draw.
	DefaultNoiseScale = 0.02

	// baseline is the resting level of all three signals.
	baseline = 0.5

	// cortisolDecay is the rate of the stress-driven cortisol decay.
	cortisolDecay = 0.4
)

// NoiseSource yields standard normal samples. *rand.Rand satisfies it.
type NoiseSource interface {
	NormFloat64() float64
}

// globalNoise draws from the math/rand/v2 top-level generator, which is
// safe for concurrent use.
type globalNoise struct{}

func (globalNoise) NormFloat64() float64 { return rand.NormFloat64() }

// Engine evaluates the model. The zero value is not usable; call NewEngine.
// An Engine is safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	noise  NoiseSource
	scale  float64
	shared bool // noise is the concurrency-safe global stream
}

// Option configures an Engine.
type Option func(*Engine)

// WithNoiseSource replaces the default global random stream.
func WithNoiseSource(src NoiseSource) Option {
	return func(e *Engine) {
		if src == nil {
			return
		}
		e.noise = src
		e.shared = false
	}
}

// WithSeed uses a PCG generator seeded with seed, so repeated runs with the
// same input produce identical series.
func WithSeed(seed uint64) Option {
	return WithNoiseSource(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithNoiseScale sets the noise magnitude. Zero disables noise entirely.
// Negative values are ignored.
func WithNoiseScale(scale float64) Option {
	return func(e *Engine) {
		if scale >= 0 {
			e.scale = scale
		}
	}
}

// NewEngine creates an Engine with the given options applied over the
// defaults (global random stream, DefaultNoiseScale).
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		noise:  globalNoise{},
		scale:  DefaultNoiseScale,
		shared: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NoiseScale reports the configured noise magnitude.
func (e *Engine) NoiseScale() float64 {
	return e.scale
}

var defaultEngine = NewEngine()

// Simulate runs the model once with fresh noise from the global stream.
func Simulate(in Input) (*Result, error) {
	return defaultEngine.Simulate(in)
}

// Simulate validates in and evaluates all three signals over the time grid.
// Out-of-range input yields an error wrapping ErrInvalidInput and no result.
func (e *Engine) Simulate(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	t := Linspace(0, Duration, Samples)
	stress := float64(in.Stress) / 100
	sleep := float64(in.SleepQuality) / 10
	activity := float64(in.ActivityLevel) / 10

	// Noise is drawn one whole signal at a time so that a seeded source
	// always feeds the same draws to the same signal.
	noise := e.draw(3 * len(t))
	n1, n2, n3 := noise[:len(t)], noise[len(t):2*len(t)], noise[2*len(t):]

	series := TimeSeries{
		Time:      t,
		Cortisol:  make([]float64, len(t)),
		Dopamine:  make([]float64, len(t)),
		Serotonin: make([]float64, len(t)),
	}
	dopamine := baseline + activity*0.3 - stress*0.1
	serotonin := baseline + sleep*0.3 - stress*0.05
	for i, ti := range t {
		series.Cortisol[i] = clip01(baseline + stress*math.Exp(-cortisolDecay*ti) + n1[i])
		series.Dopamine[i] = clip01(dopamine + n2[i])
		series.Serotonin[i] = clip01(serotonin + n3[i])
	}

	return &Result{
		Input:       in,
		Series:      series,
		Explanation: Explain(in),
	}, nil
}

// draw returns n scaled normal samples. With a zero scale no samples are
// consumed from the source.
func (e *Engine) draw(n int) []float64 {
	out := make([]float64, n)
	if e.scale == 0 {
		return out
	}
	if !e.shared {
		e.mu.Lock()
		defer e.mu.Unlock()
	}
	for i := range out {
		out[i] = e.scale * e.noise.NormFloat64()
	}
	return out
}

// Linspace returns n evenly spaced samples over the closed interval
// [start, stop]. The last sample is exactly stop.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

func clip01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
