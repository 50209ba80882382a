package cepstral

import (
	"errors"
	"fmt"
)

var (
	// ErrSignalTooShort is returned by MelExtractor when the signal is shorter
	// than one analysis frame.
	ErrSignalTooShort = errors.New("cepstral: signal shorter than one frame")
	// ErrInvalidSampleRate is returned for a non-positive sampling rate.
	ErrInvalidSampleRate = errors.New("cepstral: sample rate must be > 0")
	// ErrInvalidCoefficients is returned for a coefficient count outside
	// [1, mel bands].
	ErrInvalidCoefficients = errors.New("cepstral: invalid coefficient count")
	// ErrMalformedMatrix is returned when an extractor result does not have
	// the requested number of equally long rows.
	ErrMalformedMatrix = errors.New("cepstral: malformed coefficient matrix")
)

// CollaboratorError reports a rejected extraction together with the input
// that caused it.
type CollaboratorError struct {
	Length     int
	SampleRate int
	Err        error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("cepstral: extractor failed for %d samples at %d Hz: %v", e.Length, e.SampleRate, e.Err)
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}
