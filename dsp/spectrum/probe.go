package spectrum

import (
	"fmt"
	"math"
)

// goertzel evaluates a single DFT term with the Goertzel recurrence.
type goertzel struct {
	coeff  float64
	s0, s1 float64
}

func newGoertzel(freqHz float64, sampleRate int) goertzel {
	return goertzel{coeff: 2 * math.Cos(2*math.Pi*freqHz/float64(sampleRate))}
}

func (g *goertzel) processBlock(input []float64) {
	s0, s1 := g.s0, g.s1

	coeff := g.coeff
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}

	g.s0, g.s1 = s0, s1
}

// power is |X(f)|^2 over the processed block.
func (g *goertzel) power() float64 {
	return g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
}

// Probe returns the DFT magnitude of samples at each of the given
// frequencies. Unlike the bins of [Analyze], the frequencies need not fall on
// multiples of sampleRate/N; at a bin centre the value matches the
// corresponding [Result] magnitude.
func Probe(samples []float64, sampleRate int, freqsHz ...float64) ([]float64, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	nyquist := float64(sampleRate) / 2
	out := make([]float64, len(freqsHz))

	for i, f := range freqsHz {
		if f < 0 || f > nyquist || math.IsNaN(f) {
			return nil, fmt.Errorf("%w: %v Hz", ErrFrequencyRange, f)
		}

		g := newGoertzel(f, sampleRate)
		g.processBlock(samples)

		p := g.power()
		if p > 0 {
			out[i] = math.Sqrt(p)
		}
	}

	return out, nil
}
