package cepstral

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melFSP      = 200.0 / 3
	melMinLogHz = 1000.0
	melMinLog   = melMinLogHz / melFSP
)

var melLogStep = math.Log(6.4) / 27

// HzToMel converts a frequency to the Slaney mel scale.
func HzToMel(hz float64) float64 {
	if hz < melMinLogHz {
		return hz / melFSP
	}
	return melMinLog + math.Log(hz/melMinLogHz)/melLogStep
}

// MelToHz is the inverse of [HzToMel].
func MelToHz(mel float64) float64 {
	if mel < melMinLog {
		return mel * melFSP
	}
	return melMinLogHz * math.Exp(melLogStep*(mel-melMinLog))
}

// melFrequencies returns n frequencies equally spaced on the mel scale
// between fmin and fmax inclusive.
func melFrequencies(n int, fmin, fmax float64) []float64 {
	lo, hi := HzToMel(fmin), HzToMel(fmax)
	out := make([]float64, n)
	for i := range out {
		m := lo
		if n > 1 {
			m += (hi - lo) * float64(i) / float64(n-1)
		}
		out[i] = MelToHz(m)
	}
	return out
}

// melFilterbank returns the numMels x (frameLength/2+1) matrix of triangular
// filters. Each filter is scaled by 2/(upper-lower) so its area is constant.
func melFilterbank(sampleRate, frameLength, numMels int, fmin, fmax float64) *mat.Dense {
	bins := frameLength/2 + 1
	fft := make([]float64, bins)
	for k := range fft {
		fft[k] = float64(k) * float64(sampleRate) / float64(frameLength)
	}

	edges := melFrequencies(numMels+2, fmin, fmax)
	bank := mat.NewDense(numMels, bins, nil)

	for m := range numMels {
		lower, centre, upper := edges[m], edges[m+1], edges[m+2]
		norm := 2 / (upper - lower)
		for k, f := range fft {
			rise := (f - lower) / (centre - lower)
			fall := (upper - f) / (upper - centre)
			if w := math.Min(rise, fall); w > 0 {
				bank.Set(m, k, w*norm)
			}
		}
	}

	return bank
}

// dctMatrix returns the first numCoefficients rows of the orthonormal
// DCT-II basis for inputs of length n.
func dctMatrix(numCoefficients, n int) *mat.Dense {
	basis := mat.NewDense(numCoefficients, n, nil)
	for k := range numCoefficients {
		scale := math.Sqrt(2 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1 / float64(n))
		}
		for i := range n {
			basis.Set(k, i, scale*math.Cos(math.Pi*float64(k)*(2*float64(i)+1)/(2*float64(n))))
		}
	}
	return basis
}
