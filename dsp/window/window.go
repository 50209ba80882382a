// Package window implements the tapering windows applied to a sample region
// before spectral analysis, and the dispatch from a window identifier to the
// function that applies it.
package window

import (
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
//
// The zero value is TypeNone, which leaves a signal untouched.
type Type int

const (
	TypeNone Type = iota
	TypeRectangular
	TypeHamming
	TypeHann
	TypeTriangular
	TypeFlatTop

	numTypes
)

var typeNames = [numTypes]string{
	TypeNone:        "none",
	TypeRectangular: "rectangular",
	TypeHamming:     "hamming",
	TypeHann:        "hanning",
	TypeTriangular:  "triangular",
	TypeFlatTop:     "flat_top",
}

var typeAliases = map[string]Type{
	"hann":     TypeHann,
	"bartlett": TypeTriangular,
	"triangle": TypeTriangular,
	"flattop":  TypeFlatTop,
	"flat-top": TypeFlatTop,
	"rect":     TypeRectangular,
	"boxcar":   TypeRectangular,
}

// Cosine-sum coefficients, signs included: w(x) = sum c[k] * cos(2*pi*k*x).
var (
	hammingCoeffs = []float64{0.54, -0.46}
	hannCoeffs    = []float64{0.5, -0.5}
	flatTopCoeffs = []float64{0.21557895, -0.41663158, 0.277263158, -0.083578947, 0.006947368}
)

// String returns the canonical identifier of t.
func (t Type) String() string {
	if t.Valid() {
		return typeNames[t]
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Valid reports whether t is one of the declared window types.
func (t Type) Valid() bool {
	return t >= 0 && t < numTypes
}

// Types returns every declared window type in declaration order.
func Types() []Type {
	out := make([]Type, 0, numTypes)
	for t := TypeNone; t < numTypes; t++ {
		out = append(out, t)
	}

	return out
}

// ParseType maps a window identifier to its Type. Matching is
// case-insensitive and accepts a few common aliases ("hann", "bartlett",
// "flattop"). Unknown names yield TypeNone and false.
func ParseType(name string) (Type, bool) {
	key := strings.ToLower(strings.TrimSpace(name))

	for t, n := range typeNames {
		if n == key {
			return Type(t), true
		}
	}

	if t, ok := typeAliases[key]; ok {
		return t, true
	}

	return TypeNone, false
}

// Option configures envelope generation.
type Option func(*config)

type config struct {
	periodic bool
}

// WithPeriodic configures the periodic form (FFT framing) instead of the
// symmetric form: positions are i/N rather than i/(N-1).
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// Generate returns the envelope of type t with the given length.
//
// A non-positive length yields nil and a length of one yields [1] for every
// type, so no envelope divides by N-1 = 0.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	if length == 1 {
		return []float64{1}
	}

	var cfg config

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = evalWindow(t, samplePosition(i, length, cfg.periodic))
	}

	return out
}

// Func applies a window of length n to the leading samples of a signal and
// returns the windowed samples as a new slice.
type Func func(samples []float64, n int) []float64

var dispatch = [numTypes]Func{
	TypeNone:        applyNone,
	TypeRectangular: applyRectangular,
	TypeHamming:     tapered(TypeHamming),
	TypeHann:        tapered(TypeHann),
	TypeTriangular:  tapered(TypeTriangular),
	TypeFlatTop:     tapered(TypeFlatTop),
}

// Lookup returns the window function for t. Undeclared types fall back to
// the TypeNone function.
func Lookup(t Type) Func {
	if !t.Valid() {
		return applyNone
	}

	return dispatch[t]
}

// Apply windows the first n samples with the window of type t.
//
// n is clamped to [0, len(samples)]. The result has length n for every type
// except TypeNone (and undeclared types), which return a copy of the whole
// input. samples is never modified.
func Apply(t Type, samples []float64, n int) []float64 {
	return Lookup(t)(samples, n)
}

func applyNone(samples []float64, _ int) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	return out
}

func applyRectangular(samples []float64, n int) []float64 {
	n = core.ClampInt(n, 0, len(samples))
	out := make([]float64, n)
	copy(out, samples[:n])

	return out
}

func tapered(t Type) Func {
	return func(samples []float64, n int) []float64 {
		n = core.ClampInt(n, 0, len(samples))

		out := make([]float64, n)
		if n == 0 {
			return out
		}

		vecmath.MulBlock(out, samples[:n], Generate(t, n))

		return out
	}
}

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

func evalWindow(t Type, x float64) float64 {
	switch t {
	case TypeHamming:
		return cosineFromCoeffs(x, hammingCoeffs)
	case TypeHann:
		return cosineFromCoeffs(x, hannCoeffs)
	case TypeTriangular:
		return 1 - math.Abs(2*x-1)
	case TypeFlatTop:
		return cosineFromCoeffs(x, flatTopCoeffs)
	default:
		return 1
	}
}

func cosineFromCoeffs(x float64, coeffs []float64) float64 {
	phase := 2 * math.Pi * x

	sum := 0.0
	for k, c := range coeffs {
		sum += c * math.Cos(float64(k)*phase)
	}

	return sum
}

func samplePosition(n, size int, periodic bool) float64 {
	if size <= 1 {
		return 0
	}

	den := float64(size - 1)
	if periodic {
		den = float64(size)
	}

	return float64(n) / den
}
