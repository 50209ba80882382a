package source

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/signal"
)

// Downmix averages interleaved multi-channel frames into one channel.
// Mono input is returned as is.
func Downmix(interleaved []float64, channels int) ([]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidChannels, channels)
	}
	if len(interleaved)%channels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrInvalidChannels, len(interleaved), channels)
	}
	if channels == 1 {
		return interleaved, nil
	}

	frames := len(interleaved) / channels
	out := make([]float64, frames)
	scale := 1 / float64(channels)

	for i := range out {
		sum := 0.0
		for _, v := range interleaved[i*channels : (i+1)*channels] {
			sum += v
		}
		out[i] = sum * scale
	}

	return out, nil
}

// monoSignal downmixes interleaved samples and builds the signal, rejecting
// empty streams.
func monoSignal(interleaved []float64, channels, sampleRate int) (signal.Signal, error) {
	mono, err := Downmix(interleaved, channels)
	if err != nil {
		return signal.Signal{}, err
	}
	if len(mono) == 0 {
		return signal.Signal{}, ErrNoAudio
	}

	return signal.New(mono, sampleRate)
}
