package main

import (
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/cwbudde/algo-spectra/dsp/window"
	"github.com/cwbudde/algo-spectra/source"
	"go.uber.org/zap"
)

// InputFlags select the analysed signal: a decoded file or a generated one.
type InputFlags struct {
	Input     string        `arg:"" optional:"" help:"Audio file to analyse (wav, mp3, flac). A signal is generated when omitted." type:"existingfile"`
	Decoder   string        `help:"Decoder to use instead of the file extension." placeholder:"FORMAT"`
	Signal    string        `help:"Generated signal shape." enum:"sine,chirp,noise,dc" default:"sine"`
	Tone      float64       `help:"Generated tone frequency in Hz (chirp start)." default:"440"`
	ToneEnd   float64       `help:"Chirp end frequency in Hz." default:"4000"`
	Amplitude float64       `help:"Generated signal amplitude." default:"1"`
	Rate      int           `help:"Generated signal sampling rate in Hz." default:"44100"`
	Duration  time.Duration `help:"Generated signal duration." default:"5s"`
	Seed      int64         `help:"Noise seed." default:"1"`
}

// Load decodes the input file or generates the configured signal.
func (f InputFlags) Load(logger *zap.Logger) (signal.Signal, error) {
	if f.Input != "" {
		return f.decode(logger)
	}

	gen := signal.NewGenerator(f.Rate, signal.WithSeed(f.Seed))
	n := gen.SamplesFor(f.Duration)

	var (
		sig signal.Signal
		err error
	)
	switch f.Signal {
	case "chirp":
		sig, err = gen.Chirp(f.Tone, f.ToneEnd, f.Amplitude, n)
	case "noise":
		sig, err = gen.WhiteNoise(f.Amplitude, n)
	case "dc":
		sig, err = gen.DC(f.Amplitude, n)
	default:
		sig, err = gen.Sine(f.Tone, f.Amplitude, n)
	}
	if err != nil {
		return signal.Signal{}, fmt.Errorf("failed to generate %s signal: %w", f.Signal, err)
	}

	logger.Info("generated signal",
		zap.String("shape", f.Signal),
		zap.Float64("tone_hz", f.Tone),
		zap.Int("sample_rate", sig.SampleRate),
		zap.Int("samples", sig.Len()))

	return sig, nil
}

func (f InputFlags) decode(logger *zap.Logger) (signal.Signal, error) {
	format := f.Decoder
	if format == "" {
		format = source.FormatFromPath(f.Input)
	}

	file, err := os.Open(f.Input)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("failed to open input: %w", err)
	}
	defer func() { _ = file.Close() }()

	sig, err := source.Decode(file, format)
	if err != nil {
		return signal.Signal{}, fmt.Errorf("failed to decode %s: %w", f.Input, err)
	}

	logger.Info("decoded input",
		zap.String("path", f.Input),
		zap.String("format", format),
		zap.Int("sample_rate", sig.SampleRate),
		zap.Int("samples", sig.Len()),
		zap.Duration("duration", sig.Duration()))

	return sig, nil
}

// WindowFlags place the analysis window in the signal.
type WindowFlags struct {
	Window        string  `help:"Window function (none, rectangular, hamming, hanning, triangular, flat_top)." default:"hamming"`
	Offset        float64 `help:"Window start in seconds." default:"0"`
	OffsetSamples int     `help:"Window start in samples, overrides --offset when >= 0." default:"-1"`
}

// Spec resolves the flags into a window specification over sig. An unknown
// window name is logged and analysed untapered as "none".
func (f WindowFlags) Spec(logger *zap.Logger, sig signal.Signal, length int) analysis.WindowSpec {
	typ, ok := window.ParseType(f.Window)
	if !ok {
		logger.Warn("unknown window, using none", zap.String("window", f.Window))
	}

	offset := f.OffsetSamples
	if offset < 0 {
		offset = analysis.OffsetSamples(f.Offset, sig.SampleRate)
	}

	return analysis.WindowSpec{Type: typ, Length: length, Offset: offset}
}

// OutputFlags choose the report encoding and the optional plot.
type OutputFlags struct {
	Format string `help:"Output format." enum:"table,csv,json" default:"table" short:"f"`
	Plot   string `help:"Write a PNG plot to this path." type:"path" placeholder:"FILE"`
	Width  int    `help:"Plot width in pixels." default:"960"`
	Height int    `help:"Plot height in pixels." default:"720"`
}
