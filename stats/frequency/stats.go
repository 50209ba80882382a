// Package frequency computes summary statistics of a one-sided magnitude
// spectrum.
package frequency

import (
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
)

// DefaultRolloff is the energy fraction used for Stats.Rolloff.
const DefaultRolloff = 0.85

// Stats holds frequency-domain statistics computed from a magnitude spectrum.
type Stats struct {
	BinCount  int     `json:"bin_count"`
	BinWidth  float64 `json:"bin_width_hz"`
	DC        float64 `json:"dc"` // bin 0 magnitude
	DCdB      float64 `json:"-"`
	Sum       float64 `json:"sum"` // sum of magnitudes
	Max       float64 `json:"max"`
	MaxBin    int     `json:"max_bin"`
	PeakHz    float64 `json:"peak_hz"`
	Min       float64 `json:"min"`
	MinBin    int     `json:"min_bin"`
	Average   float64 `json:"average"`
	AveragedB float64 `json:"-"`
	Range     float64 `json:"range"`
	Energy    float64 `json:"energy"` // sum of squared magnitudes
	Power     float64 `json:"power"`
	// Spectral shape descriptors
	Centroid  float64 `json:"centroid_hz"`  // spectral centroid (Hz)
	Spread    float64 `json:"spread_hz"`    // spectral spread (Hz)
	Flatness  float64 `json:"flatness"`     // spectral flatness (Wiener entropy), 0..1
	Rolloff   float64 `json:"rolloff_hz"`   // frequency below which 85% energy (Hz)
	Bandwidth float64 `json:"bandwidth_hz"` // 3 dB bandwidth around peak (Hz)
}

// binFreq returns the frequency in Hz of bin i.
func binFreq(i int, binHz float64) float64 {
	return float64(i) * binHz
}

// FromResult computes statistics over the N/2+1 one-sided bins of a
// spectrum result, Nyquist included.
func FromResult(res spectrum.Result) Stats {
	return Calculate(res.OneSided().Magnitudes, res.BinWidth())
}

// Calculate computes all frequency-domain statistics from a one-sided
// magnitude spectrum (linear scale, NOT dB). Bin i sits at i*binHz.
func Calculate(magnitude []float64, binHz float64) Stats {
	n := len(magnitude)
	if n == 0 {
		return Stats{
			DCdB:      math.Inf(-1),
			AveragedB: math.Inf(-1),
		}
	}

	s := Stats{
		BinCount: n,
		BinWidth: binHz,
		DC:       magnitude[0],
		Min:      magnitude[0],
		Max:      magnitude[0],
	}
	s.DCdB = core.LinearToDB(s.DC)

	for i, v := range magnitude {
		s.Sum += v
		s.Energy += v * v
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
		if v < s.Min {
			s.Min = v
			s.MinBin = i
		}
	}
	s.PeakHz = binFreq(s.MaxBin, binHz)
	s.Average = s.Sum / float64(n)
	s.AveragedB = core.LinearToDB(s.Average)
	s.Range = s.Max - s.Min
	s.Power = s.Energy / float64(n)

	if n == 1 {
		return s
	}

	s.Centroid = centroid(magnitude, binHz, s.Sum)
	s.Spread = spread(magnitude, binHz, s.Centroid, s.Sum)
	s.Flatness = flatness(magnitude)
	s.Rolloff = rolloff(magnitude, binHz, DefaultRolloff, s.Energy)
	s.Bandwidth = bandwidth(magnitude, binHz)

	return s
}

// Centroid returns the spectral centroid in Hz.
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func Centroid(magnitude []float64, binHz float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range magnitude {
		sum += v
	}
	return centroid(magnitude, binHz, sum)
}

func centroid(magnitude []float64, binHz float64, sumMag float64) float64 {
	if len(magnitude) < 2 || sumMag == 0 {
		return 0
	}
	weightedSum := 0.0
	for i, v := range magnitude {
		weightedSum += binFreq(i, binHz) * v
	}
	return weightedSum / sumMag
}

// spread is the magnitude-weighted standard deviation around the centroid.
func spread(magnitude []float64, binHz float64, cent float64, sumMag float64) float64 {
	if len(magnitude) < 2 || sumMag == 0 {
		return 0
	}
	weightedSqSum := 0.0
	for i, v := range magnitude {
		diff := binFreq(i, binHz) - cent
		weightedSqSum += diff * diff * v
	}
	return math.Sqrt(weightedSqSum / sumMag)
}

// Flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
// Flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// DC bin (index 0) is excluded from the computation. If all considered bins
// are zero, 0 is returned.
func Flatness(magnitude []float64) float64 {
	return flatness(magnitude)
}

func flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	nBins := n - 1
	sumLin := 0.0
	sumLog := 0.0

	for i := 1; i < n; i++ {
		v := magnitude[i]
		if v <= 0 {
			// A zero bin makes the geometric mean zero.
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	meanLin := sumLin / float64(nBins)

	return math.Exp(sumLog/float64(nBins)) / meanLin
}

// Rolloff returns the frequency below which the specified fraction (0..1) of
// spectral energy lies.
func Rolloff(magnitude []float64, binHz float64, percent float64) float64 {
	if len(magnitude) < 2 {
		return 0
	}
	energy := 0.0
	for _, v := range magnitude {
		energy += v * v
	}
	return rolloff(magnitude, binHz, percent, energy)
}

func rolloff(magnitude []float64, binHz float64, percent float64, totalEnergy float64) float64 {
	n := len(magnitude)
	if n < 2 || totalEnergy == 0 {
		return 0
	}
	threshold := percent * totalEnergy
	cumEnergy := 0.0
	for i, v := range magnitude {
		cumEnergy += v * v
		if cumEnergy >= threshold {
			return binFreq(i, binHz)
		}
	}
	return binFreq(n-1, binHz)
}

// Bandwidth returns the 3 dB bandwidth around the spectral peak in Hz.
//
// The -3 dB points (peak/sqrt(2)) are located on both sides of the peak bin
// with linear interpolation between bins. An edge of the spectrum stands in
// for a crossing that does not exist.
func Bandwidth(magnitude []float64, binHz float64) float64 {
	return bandwidth(magnitude, binHz)
}

func bandwidth(magnitude []float64, binHz float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	peakBin := 0
	peakVal := magnitude[0]
	for i, v := range magnitude {
		if v > peakVal {
			peakVal = v
			peakBin = i
		}
	}
	if peakVal == 0 {
		return 0
	}

	threshold := peakVal / math.Sqrt2

	lower := 0.0
	for i := peakBin; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interpBin(i-1, magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upper := float64(n - 1)
	for i := peakBin; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interpBin(i, magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	if upper < lower {
		return 0
	}
	return (upper - lower) * binHz
}

// interpBin returns the fractional bin between lo and lo+1 at which the
// magnitude crosses threshold.
func interpBin(lo int, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return float64(lo) + 0.5
	}
	return float64(lo) + (threshold-magLow)/denom
}
