package spectrum

import "errors"

var (
	// ErrEmptySignal is returned when a transform is requested for a
	// zero-length signal.
	ErrEmptySignal = errors.New("spectrum: empty signal")
	// ErrInvalidSampleRate is returned when the sampling rate is not positive.
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
	// ErrFrequencyRange is returned when a probe frequency lies outside
	// [0, sampleRate/2].
	ErrFrequencyRange = errors.New("spectrum: frequency outside [0, nyquist]")
)
