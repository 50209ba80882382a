package source

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	dspwav "github.com/mjibson/go-dsp/wav"
)

const wavFormatIEEEFloat = 3

// DecodeWAV decodes a RIFF/WAVE stream. Integer PCM is decoded with
// go-audio; IEEE float data with go-dsp.
func DecodeWAV(rs io.ReadSeeker) (signal.Signal, error) {
	d := wav.NewDecoder(rs)
	if !d.IsValidFile() {
		return signal.Signal{}, fmt.Errorf("%w: not a RIFF/WAVE stream", ErrInvalidStream)
	}

	if d.WavAudioFormat == wavFormatIEEEFloat {
		// go-dsp rounds its sample count down to a multiple of 8, so the
		// count comes from the data chunk size.
		if err := d.FwdToPCM(); err != nil {
			return signal.Signal{}, fmt.Errorf("%w: %w", ErrInvalidStream, err)
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return signal.Signal{}, fmt.Errorf("rewind: %w", err)
		}
		return decodeFloatWAV(rs, d.PCMSize/4)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return signal.Signal{}, fmt.Errorf("read PCM: %w", err)
	}

	channels := int(d.NumChans)
	bitDepth := int(d.BitDepth)
	if channels < 1 {
		return signal.Signal{}, fmt.Errorf("%w: %d channels", ErrInvalidChannels, channels)
	}

	scale := 1 / float64(audio.IntMaxSignedValue(bitDepth))
	offset := 0.0
	if bitDepth == 8 {
		// 8-bit WAV is unsigned around 128.
		offset = 128
	}

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = (float64(v) - offset) * scale
	}

	return monoSignal(samples, channels, int(d.SampleRate))
}

// decodeFloatWAV reads n 32-bit IEEE float samples of WAV data.
func decodeFloatWAV(r io.Reader, n int) (signal.Signal, error) {
	w, err := dspwav.New(r)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	if w.BitsPerSample != 32 {
		return signal.Signal{}, fmt.Errorf("%w: %d-bit float", ErrInvalidStream, w.BitsPerSample)
	}
	if n <= 0 {
		return signal.Signal{}, ErrNoAudio
	}

	raw, err := w.ReadSamples(n)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("read float samples: %w", err)
	}

	floats, ok := raw.([]float32)
	if !ok {
		return signal.Signal{}, fmt.Errorf("%w: unexpected sample type %T", ErrInvalidStream, raw)
	}

	samples := make([]float64, len(floats))
	for i, v := range floats {
		samples[i] = float64(v)
	}

	return monoSignal(samples, int(w.NumChannels), int(w.SampleRate))
}
