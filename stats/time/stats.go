// Package time computes level statistics of a block of time-domain samples.
package time

import (
	"math"

	"github.com/cwbudde/algo-spectra/dsp/core"
	"gonum.org/v1/gonum/stat"
)

// Stats holds time-domain statistics of a sample block.
type Stats struct {
	Length        int     `json:"length"`
	DC            float64 `json:"dc"` // mean
	RMS           float64 `json:"rms"`
	RMSdB         float64 `json:"-"`
	Peak          float64 `json:"peak"` // max |x|
	PeakPos       int     `json:"peak_pos"`
	PeakdB        float64 `json:"-"`
	CrestFactor   float64 `json:"crest_factor"` // peak / RMS, 0 for silence
	Energy        float64 `json:"energy"`       // sum of squares
	ZeroCrossings int     `json:"zero_crossings"`
	Variance      float64 `json:"variance"` // population variance
	Skewness      float64 `json:"skewness"`
	Kurtosis      float64 `json:"kurtosis"` // excess kurtosis
}

// Calculate computes the statistics of x. Higher moments are zero for
// fewer than three samples or a constant block.
func Calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{
			RMSdB:  math.Inf(-1),
			PeakdB: math.Inf(-1),
		}
	}

	s := Stats{Length: n}
	s.DC, s.Variance = stat.PopMeanVariance(x, nil)

	for i, v := range x {
		s.Energy += v * v
		if a := math.Abs(v); a > s.Peak {
			s.Peak = a
			s.PeakPos = i
		}
		if i > 0 && x[i-1]*v < 0 {
			s.ZeroCrossings++
		}
	}

	s.RMS = math.Sqrt(s.Energy / float64(n))
	s.RMSdB = core.LinearToDB(s.RMS)
	s.PeakdB = core.LinearToDB(s.Peak)
	if s.RMS > 0 {
		s.CrestFactor = s.Peak / s.RMS
	}

	if n > 2 && s.Variance > 0 {
		s.Skewness = stat.Skew(x, nil)
		s.Kurtosis = stat.ExKurtosis(x, nil)
	}

	return s
}

// RMS returns the root-mean-square of x.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}

	return math.Sqrt(sumSq / float64(len(x)))
}

// ZeroCrossingRate returns the number of sign changes per second of x
// sampled at sampleRate Hz.
func ZeroCrossingRate(x []float64, sampleRate int) float64 {
	if len(x) < 2 || sampleRate <= 0 {
		return 0
	}

	crossings := 0
	for i := 1; i < len(x); i++ {
		if x[i-1]*x[i] < 0 {
			crossings++
		}
	}

	return float64(crossings) * float64(sampleRate) / float64(len(x))
}
