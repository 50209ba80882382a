// Package signal defines the sampled-signal value handed to the analysis
// pipeline and a deterministic generator used as an acquisition source.
package signal

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidSampleRate is returned when a signal is built with a
// non-positive sampling rate.
var ErrInvalidSampleRate = errors.New("sample rate must be > 0")

// Signal is an ordered sequence of amplitude samples captured at SampleRate
// Hz. Consumers treat it as read-only.
type Signal struct {
	Samples    []float64
	SampleRate int
}

// New returns a Signal after validating the sampling rate. The samples are
// not copied.
func New(samples []float64, sampleRate int) (Signal, error) {
	if sampleRate <= 0 {
		return Signal{}, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}

	return Signal{Samples: samples, SampleRate: sampleRate}, nil
}

// Len returns the number of samples.
func (s Signal) Len() int {
	return len(s.Samples)
}

// Duration returns the length of the signal in time.
func (s Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}
