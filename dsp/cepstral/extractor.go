package cepstral

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/cwbudde/algo-spectra/dsp/window"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/mat"
)

// NumCoefficients is the number of cepstral rows requested from an extractor.
const NumCoefficients = 13

// Defaults of MelExtractor.
const (
	DefaultFrameLength = 2048
	DefaultHopLength   = 512
	DefaultMelBands    = 128
)

const (
	dbRef   = 1.0
	dbAmin  = 1e-10
	dbRange = 80.0
)

// Extractor computes a numCoefficients x frames MFCC matrix.
type Extractor interface {
	ComputeMFCC(samples []float64, sampleRate, numCoefficients int) ([][]float64, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(samples []float64, sampleRate, numCoefficients int) ([][]float64, error)

// ComputeMFCC calls f.
func (f ExtractorFunc) ComputeMFCC(samples []float64, sampleRate, numCoefficients int) ([][]float64, error) {
	return f(samples, sampleRate, numCoefficients)
}

// MelOption configures a MelExtractor.
type MelOption func(*MelExtractor)

// WithFrameLength sets the analysis frame (and FFT) length in samples.
func WithFrameLength(n int) MelOption {
	return func(m *MelExtractor) {
		m.frameLength = n
	}
}

// WithHopLength sets the distance between frame starts in samples.
func WithHopLength(n int) MelOption {
	return func(m *MelExtractor) {
		m.hopLength = n
	}
}

// WithMelBands sets the number of mel filters.
func WithMelBands(n int) MelOption {
	return func(m *MelExtractor) {
		m.melBands = n
	}
}

// WithFrequencyRange limits the filterbank to [fmin, fmax] Hz. A zero fmax
// means the Nyquist frequency of the analysed signal.
func WithFrequencyRange(fmin, fmax float64) MelOption {
	return func(m *MelExtractor) {
		m.fmin = fmin
		m.fmax = fmax
	}
}

// MelExtractor is the default Extractor.
type MelExtractor struct {
	frameLength int
	hopLength   int
	melBands    int
	fmin        float64
	fmax        float64
}

// NewMelExtractor returns an extractor with the given options applied over
// the defaults (2048-sample frames, 512-sample hop, 128 mel bands, full
// frequency range).
func NewMelExtractor(opts ...MelOption) (*MelExtractor, error) {
	m := defaultMelExtractor()
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.frameLength < 2 {
		return nil, fmt.Errorf("cepstral: frame length must be >= 2: %d", m.frameLength)
	}
	if m.hopLength < 1 {
		return nil, fmt.Errorf("cepstral: hop length must be >= 1: %d", m.hopLength)
	}
	if m.melBands < 1 {
		return nil, fmt.Errorf("cepstral: mel bands must be >= 1: %d", m.melBands)
	}
	if m.fmin < 0 || m.fmax < 0 || (m.fmax > 0 && m.fmax <= m.fmin) {
		return nil, fmt.Errorf("cepstral: invalid frequency range [%v, %v]", m.fmin, m.fmax)
	}

	return m, nil
}

func defaultMelExtractor() *MelExtractor {
	return &MelExtractor{
		frameLength: DefaultFrameLength,
		hopLength:   DefaultHopLength,
		melBands:    DefaultMelBands,
	}
}

// FrameLength returns the analysis frame length in samples.
func (m *MelExtractor) FrameLength() int { return m.frameLength }

// HopLength returns the frame hop in samples.
func (m *MelExtractor) HopLength() int { return m.hopLength }

// FrameCount returns the number of frames produced for n samples.
func (m *MelExtractor) FrameCount(n int) int {
	if n < m.frameLength {
		return 0
	}
	return 1 + n/m.hopLength
}

// ComputeMFCC implements Extractor.
func (m *MelExtractor) ComputeMFCC(samples []float64, sampleRate, numCoefficients int) ([][]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if numCoefficients < 1 || numCoefficients > m.melBands {
		return nil, fmt.Errorf("%w: %d (mel bands %d)", ErrInvalidCoefficients, numCoefficients, m.melBands)
	}
	if len(samples) < m.frameLength {
		return nil, fmt.Errorf("%w: %d < %d", ErrSignalTooShort, len(samples), m.frameLength)
	}

	fmax := m.fmax
	if fmax == 0 {
		fmax = float64(sampleRate) / 2
	}
	if fmax <= m.fmin {
		return nil, fmt.Errorf("cepstral: fmin %v Hz not below fmax %v Hz", m.fmin, fmax)
	}

	power := m.powerSpectrogram(samples)

	var melSpec mat.Dense
	melSpec.Mul(melFilterbank(sampleRate, m.frameLength, m.melBands, m.fmin, fmax), power)
	powerToDB(&melSpec)

	var coeffs mat.Dense
	coeffs.Mul(dctMatrix(numCoefficients, m.melBands), &melSpec)

	out := make([][]float64, numCoefficients)
	for i := range out {
		out[i] = mat.Row(nil, i, &coeffs)
	}

	return out, nil
}

// powerSpectrogram returns the (frameLength/2+1) x frames power spectrogram
// of the zero-padded, centred frames of samples.
func (m *MelExtractor) powerSpectrogram(samples []float64) *mat.Dense {
	pad := m.frameLength / 2
	padded := make([]float64, len(samples)+2*pad)
	copy(padded[pad:], samples)

	frames := 1 + (len(padded)-m.frameLength)/m.hopLength
	bins := m.frameLength/2 + 1

	win := window.Generate(window.TypeHann, m.frameLength, window.WithPeriodic())
	fft := fourier.NewFFT(m.frameLength)
	frame := make([]float64, m.frameLength)
	coeffs := make([]complex128, bins)
	out := mat.NewDense(bins, frames, nil)

	for t := range frames {
		start := t * m.hopLength
		vecmath.MulBlock(frame, padded[start:start+m.frameLength], win)
		coeffs = fft.Coefficients(coeffs, frame)
		for k, p := range spectrum.Power(coeffs) {
			out.Set(k, t, p)
		}
	}

	return out
}

// powerToDB converts power to dB in place and limits the dynamic range to
// dbRange below the loudest cell.
func powerToDB(m *mat.Dense) {
	m.Apply(func(_, _ int, v float64) float64 {
		return core.PowerToDBFloor(v, dbRef, dbAmin)
	}, m)

	floor := mat.Max(m) - dbRange
	m.Apply(func(_, _ int, v float64) float64 {
		return math.Max(v, floor)
	}, m)
}
