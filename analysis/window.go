// Package analysis selects a window of samples from a signal and runs the
// spectral and cepstral analyses on it.
package analysis

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/cwbudde/algo-spectra/dsp/window"
)

// ErrNoSignal is returned when an analysis is requested before a signal has
// been acquired.
var ErrNoSignal = errors.New("analysis: no signal loaded")

// WindowSpec selects Length samples starting at sample Offset and tapers
// them with Type.
type WindowSpec struct {
	Type   window.Type
	Length int
	Offset int
}

// Window is a windowed slice of a signal together with how it was selected.
type Window struct {
	Samples         []float64
	SampleRate      int
	Type            window.Type
	Offset          int
	RequestedLength int
	EffectiveLength int
}

// Len returns the number of windowed samples.
func (w Window) Len() int {
	return len(w.Samples)
}

// Clamped reports whether fewer samples than requested were available.
func (w Window) Clamped() bool {
	return w.EffectiveLength < w.RequestedLength
}

// StartTime returns the offset of the window in seconds.
func (w Window) StartTime() float64 {
	if w.SampleRate <= 0 {
		return 0
	}
	return float64(w.Offset) / float64(w.SampleRate)
}

// TimeAxis returns i/rate for every windowed sample, the x axis of a
// time-domain plot.
func (w Window) TimeAxis() []float64 {
	out := make([]float64, len(w.Samples))
	if w.SampleRate <= 0 {
		return out
	}
	for i := range out {
		out[i] = float64(i) / float64(w.SampleRate)
	}
	return out
}

// OffsetSamples converts a position in seconds to a sample offset at
// sampleRate, rounding to the nearest sample. Negative positions map to 0.
func OffsetSamples(seconds float64, sampleRate int) int {
	if seconds <= 0 || sampleRate <= 0 || math.IsNaN(seconds) {
		return 0
	}
	return int(math.Round(seconds * float64(sampleRate)))
}

// SelectWindow extracts the region described by spec from sig and applies the
// window function. A length that runs past the end of the signal is clamped
// to the available samples; an offset at or past the end gives an empty
// window. Neither is an error. A nil sig returns ErrNoSignal.
func SelectWindow(sig *signal.Signal, spec WindowSpec) (Window, error) {
	if sig == nil {
		return Window{}, ErrNoSignal
	}

	n := sig.Len()
	offset := core.ClampInt(spec.Offset, 0, n)
	effective := core.ClampInt(spec.Length, 0, n-offset)
	region := sig.Samples[offset : offset+effective]

	return Window{
		Samples:         window.Apply(spec.Type, region, effective),
		SampleRate:      sig.SampleRate,
		Type:            spec.Type,
		Offset:          offset,
		RequestedLength: spec.Length,
		EffectiveLength: effective,
	}, nil
}
