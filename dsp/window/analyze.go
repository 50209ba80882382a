package window

import (
	"fmt"
	"math"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-spectra/dsp/core"
)

// responseOversample is the number of frequency-response points per DFT bin
// used when measuring window properties.
const responseOversample = 16

// Properties holds spectral properties of a window measured from its
// zero-padded frequency response.
type Properties struct {
	// CoherentGain is sum(w[n]) / N, the DC response of the window.
	CoherentGain float64
	// ENBW is the equivalent noise bandwidth in bins.
	ENBW float64
	// ScallopLossdB is the response half a bin off centre, relative to DC.
	ScallopLossdB float64
	// Bandwidth3dB is the two-sided half-power main lobe width in bins.
	Bandwidth3dB float64
	// FirstNullBins is the position of the first response minimum in bins.
	FirstNullBins float64
	// HighestSidelobedB is the largest response past the first null, relative
	// to DC. -Inf when the response has no null.
	HighestSidelobedB float64
}

// Analyze measures the spectral properties of the given window coefficients.
func Analyze(coeffs []float64) (Properties, error) {
	n := len(coeffs)
	if n == 0 {
		return Properties{}, errEmptyCoeffs
	}

	sum := 0.0
	sumSq := 0.0

	for _, c := range coeffs {
		sum += c
		sumSq += c * c
	}

	if sum == 0 {
		return Properties{}, errZeroCoherentGain
	}

	size := core.NextPowerOfTwo(n * responseOversample)

	resp, err := powerResponse(coeffs, size)
	if err != nil {
		return Properties{}, err
	}

	// Response points per window bin.
	step := float64(size) / float64(n)
	dc := resp[0]

	props := Properties{
		CoherentGain:      sum / float64(n),
		ENBW:              float64(n) * sumSq / (sum * sum),
		ScallopLossdB:     core.LinearPowerToDB(interpolateAt(resp, step/2) / dc),
		HighestSidelobedB: math.Inf(-1),
	}

	if idx, ok := crossing(resp, dc/2); ok {
		props.Bandwidth3dB = 2 * idx / step
	}

	null, ok := firstNull(resp, dc)
	if !ok {
		return props, nil
	}

	props.FirstNullBins = float64(null) / step

	peak := 0.0
	for _, v := range resp[null:] {
		peak = math.Max(peak, v)
	}

	if peak > 0 {
		props.HighestSidelobedB = core.LinearPowerToDB(peak / dc)
	}

	return props, nil
}

// powerResponse returns |W(k)|^2 for k in [0, size/2] of the window
// zero-padded to size points.
func powerResponse(coeffs []float64, size int) ([]float64, error) {
	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, fmt.Errorf("window response fft plan: %w", err)
	}

	in := make([]complex128, size)
	for i, c := range coeffs {
		in[i] = complex(c, 0)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("window response fft: %w", err)
	}

	resp := make([]float64, size/2+1)
	for i := range resp {
		re, im := real(out[i]), imag(out[i])
		resp[i] = re*re + im*im
	}

	return resp, nil
}

// crossing returns the fractional index where resp first falls to level.
func crossing(resp []float64, level float64) (float64, bool) {
	for i := 1; i < len(resp); i++ {
		if resp[i] > level {
			continue
		}

		prev := resp[i-1]
		if prev == resp[i] {
			return float64(i), true
		}

		return float64(i-1) + (prev-level)/(prev-resp[i]), true
	}

	return 0, false
}

// firstNull returns the index of the first local minimum once the response
// has dropped below a tenth of DC, which skips the plateau of flat-top
// main lobes.
func firstNull(resp []float64, dc float64) (int, bool) {
	threshold := dc * 0.1

	for i := 1; i < len(resp)-1; i++ {
		if resp[i] < threshold && resp[i] <= resp[i-1] && resp[i] < resp[i+1] {
			return i, true
		}
	}

	return 0, false
}

func interpolateAt(resp []float64, pos float64) float64 {
	i := int(pos)
	if i >= len(resp)-1 {
		return resp[len(resp)-1]
	}

	frac := pos - float64(i)

	return resp[i] + frac*(resp[i+1]-resp[i])
}
