package source

import (
	"errors"
	"fmt"
	"io"

	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/mewkiz/flac"
)

// DecodeFLAC decodes a FLAC stream frame by frame.
func DecodeFLAC(r io.ReadSeeker) (signal.Signal, error) {
	stream, err := flac.New(r)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	defer stream.Close()

	channels := int(stream.Info.NChannels)
	if channels < 1 {
		return signal.Signal{}, fmt.Errorf("%w: %d channels", ErrInvalidChannels, channels)
	}

	scale := 1 / float64(int64(1)<<(stream.Info.BitsPerSample-1))

	var samples []float64
	if stream.Info.NSamples > 0 {
		samples = make([]float64, 0, int(stream.Info.NSamples)*channels)
	}

	for {
		frame, err := stream.ParseNext()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return signal.Signal{}, fmt.Errorf("parse flac frame: %w", err)
		}

		n := len(frame.Subframes[0].Samples)
		for i := range n {
			for _, sub := range frame.Subframes {
				samples = append(samples, float64(sub.Samples[i])*scale)
			}
		}
	}

	return monoSignal(samples, channels, int(stream.Info.SampleRate))
}
