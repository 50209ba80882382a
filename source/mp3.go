package source

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/hajimehoshi/go-mp3"
)

// go-mp3 always produces interleaved 16-bit little-endian stereo.
const (
	mp3Channels      = 2
	mp3BytesPerFrame = 4
)

// DecodeMP3 decodes an MPEG-1/2 Layer III stream.
func DecodeMP3(r io.ReadSeeker) (signal.Signal, error) {
	d, err := mp3.NewDecoder(r)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}

	pcm, err := io.ReadAll(d)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("read mp3 frames: %w", err)
	}

	frames := len(pcm) / mp3BytesPerFrame
	samples := make([]float64, frames*mp3Channels)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		samples[i] = float64(v) / 32768
	}

	return monoSignal(samples, mp3Channels, d.SampleRate())
}
