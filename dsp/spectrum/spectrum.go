package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Result is the spectrum of one windowed signal. Frequencies, Magnitudes and
// Bins have the same length and share the FFT bin order.
type Result struct {
	Frequencies []float64    `json:"frequencies"`
	Magnitudes  []float64    `json:"magnitudes"`
	Bins        []complex128 `json:"-"`
	SampleRate  int          `json:"sample_rate"`
}

// Analyze computes the DFT of samples and the frequency and magnitude of
// every bin. samples is not modified.
func Analyze(samples []float64, sampleRate int) (Result, error) {
	if len(samples) == 0 {
		return Result{}, ErrEmptySignal
	}

	if sampleRate <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	bins, err := Transform(samples)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Frequencies: Frequencies(len(bins), sampleRate),
		Magnitudes:  Magnitude(bins),
		Bins:        bins,
		SampleRate:  sampleRate,
	}, nil
}

// Len returns the number of bins.
func (r Result) Len() int { return len(r.Magnitudes) }

// BinWidth returns the bin spacing in Hz.
func (r Result) BinWidth() float64 {
	if len(r.Magnitudes) == 0 {
		return 0
	}
	return float64(r.SampleRate) / float64(len(r.Magnitudes))
}

// Peak returns the index, frequency and magnitude of the largest bin in the
// one-sided range 0..N/2. ok is false for an empty result.
func (r Result) Peak() (idx int, freqHz, mag float64, ok bool) {
	n := len(r.Magnitudes)
	if n == 0 {
		return 0, 0, 0, false
	}

	for k := 0; k <= n/2; k++ {
		if k == 0 || r.Magnitudes[k] > mag {
			idx, mag = k, r.Magnitudes[k]
		}
	}

	return idx, r.oneSidedFrequency(idx), mag, true
}

// oneSidedFrequency returns the frequency of bin k <= N/2, reporting the
// Nyquist bin of an even N at +rate/2.
func (r Result) oneSidedFrequency(k int) float64 {
	if f := r.Frequencies[k]; f >= 0 {
		return f
	}
	return -r.Frequencies[k]
}

// OneSided returns bins 0..N/2 in ascending frequency order, the N/2+1
// bins that carry the whole spectrum of a real input. For even N the
// Nyquist bin is reported at +rate/2. The slices are copies.
func (r Result) OneSided() Result {
	n := len(r.Magnitudes)
	half := 0
	if n > 0 {
		half = n/2 + 1
	}

	out := Result{
		Frequencies: make([]float64, half),
		Magnitudes:  make([]float64, half),
		SampleRate:  r.SampleRate,
	}
	copy(out.Magnitudes, r.Magnitudes[:half])
	for k := range half {
		out.Frequencies[k] = r.oneSidedFrequency(k)
	}
	if r.Bins != nil {
		out.Bins = make([]complex128, half)
		copy(out.Bins, r.Bins[:half])
	}

	return out
}

// MagnitudesDB returns the magnitudes in dB relative to ref, floored at
// floorDB so empty bins stay finite.
func (r Result) MagnitudesDB(ref, floorDB float64) []float64 {
	out := make([]float64, len(r.Magnitudes))
	if ref <= 0 {
		ref = 1
	}
	for i, m := range r.Magnitudes {
		db := core.LinearToDB(m / ref)
		if math.IsInf(db, -1) || db < floorDB {
			db = floorDB
		}
		out[i] = db
	}
	return out
}

// Phases returns arg(X[k]) of every bin in radians.
func (r Result) Phases() []float64 {
	return Phase(r.Bins)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
//
// This function uses SIMD-optimized implementations when available (AVX2, SSE2, NEON)
// for improved performance on large spectrum arrays. Scratch buffers are pooled
// internally, so in steady state this allocates only the output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	putScratch(buf)
	return out
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re, im, buf := getScratch(len(in))

	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Power(out, re, im)
	putScratch(buf)
	return out
}

// Phase returns arg(X[k]) for each complex spectrum bin in radians.
func Phase(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}
	out := make([]float64, len(in))
	for i, c := range in {
		out[i] = cmplx.Phase(c)
	}
	return out
}
