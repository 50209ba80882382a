package source

import "errors"

var (
	// ErrUnsupportedFormat is returned when no decoder is registered for a
	// format or file extension.
	ErrUnsupportedFormat = errors.New("source: unsupported format")
	// ErrNoAudio is returned when a stream decodes to zero samples.
	ErrNoAudio = errors.New("source: stream contains no audio")
	// ErrInvalidStream is returned when a stream is not valid for its format.
	ErrInvalidStream = errors.New("source: invalid stream")
	// ErrInvalidChannels is returned when a stream reports no channels or its
	// sample count is not a multiple of the channel count.
	ErrInvalidChannels = errors.New("source: invalid channel layout")
)
