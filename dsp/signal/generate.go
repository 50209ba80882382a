package signal

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Generator creates deterministic signals at a fixed sampling rate.
type Generator struct {
	sampleRate int
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator producing signals at sampleRate Hz.
// The rate is validated when a signal is generated.
func NewGenerator(sampleRate int, opts ...Option) *Generator {
	g := &Generator{
		sampleRate: sampleRate,
		seed:       1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator sampling rate in Hz.
func (g *Generator) SampleRate() int {
	return g.sampleRate
}

// SamplesFor returns the number of samples covering d at the generator rate.
func (g *Generator) SamplesFor(d time.Duration) int {
	if d <= 0 || g.sampleRate <= 0 {
		return 0
	}
	return int(math.Round(d.Seconds() * float64(g.sampleRate)))
}

// Sine generates a sine wave.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("sine samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / float64(g.sampleRate)
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return New(out, g.sampleRate)
}

// DC generates a constant signal.
func (g *Generator) DC(value float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("dc samples must be > 0: %d", samples)
	}
	out := make([]float64, samples)
	for i := range out {
		out[i] = value
	}
	return New(out, g.sampleRate)
}

// Chirp generates a linear frequency sweep from f0 to f1 Hz.
func (g *Generator) Chirp(f0, f1, amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("chirp samples must be > 0: %d", samples)
	}
	if g.sampleRate <= 0 {
		return New(nil, g.sampleRate)
	}
	out := make([]float64, samples)
	duration := float64(samples) / float64(g.sampleRate)
	rate := (f1 - f0) / duration
	for i := range out {
		t := float64(i) / float64(g.sampleRate)
		out[i] = amplitude * math.Sin(2*math.Pi*(f0*t+0.5*rate*t*t))
	}
	return New(out, g.sampleRate)
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) (Signal, error) {
	if samples <= 0 {
		return Signal{}, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return Signal{}, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return New(out, g.sampleRate)
}
