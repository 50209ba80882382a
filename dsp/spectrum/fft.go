package spectrum

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/mjibson/go-dsp/fft"
)

// Transform returns the complex DFT of samples. The output has the same
// length as the input.
func Transform(samples []float64) ([]complex128, error) {
	if len(samples) == 0 {
		return nil, ErrEmptySignal
	}

	if core.IsPowerOfTwo(len(samples)) {
		if out, err := transformPlan(samples); err == nil {
			return out, nil
		}
	}

	return fft.FFTReal(samples), nil
}

// transformPlan runs a power-of-two algo-fft plan.
func transformPlan(samples []float64) ([]complex128, error) {
	plan, err := algofft.NewPlan64(len(samples))
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}

	in := make([]complex128, len(samples))
	for i, x := range samples {
		in[i] = complex(x, 0)
	}

	out := make([]complex128, len(samples))
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: fft forward: %w", err)
	}

	return out, nil
}

// Frequencies returns the centre frequency in Hz of each of the n DFT bins
// at sampleRate. Bin k maps to k*rate/n while k < n/2 and to (k-n)*rate/n
// afterwards.
func Frequencies(n, sampleRate int) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	width := float64(sampleRate) / float64(n)

	for k := range out {
		if 2*k < n {
			out[k] = float64(k) * width
		} else {
			out[k] = float64(k-n) * width
		}
	}

	return out
}
