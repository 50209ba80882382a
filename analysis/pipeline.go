package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-spectra/dsp/cepstral"
	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/cwbudde/algo-spectra/stats/frequency"
	timestats "github.com/cwbudde/algo-spectra/stats/time"
	"go.uber.org/zap"
)

// SpectrumReport is the windowed signal, its time axis and its spectrum.
type SpectrumReport struct {
	Window   Window
	Time     []float64
	Level    timestats.Stats
	Spectrum spectrum.Result
	Stats    frequency.Stats
}

// CepstralReport is the windowed signal and its MFCC matrix.
type CepstralReport struct {
	Window   Window
	Level    timestats.Stats
	Cepstrum cepstral.Result
}

type config struct {
	logger    *zap.Logger
	extractor cepstral.Extractor
}

// Option configures a Pipeline.
type Option func(*config)

// WithLogger sets the logger used by the pipeline and its cepstral analyzer.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithExtractor replaces the default MFCC extractor.
func WithExtractor(e cepstral.Extractor) Option {
	return func(c *config) {
		c.extractor = e
	}
}

// Pipeline runs window selection followed by spectral or cepstral analysis.
// It holds no mutable state and is safe for concurrent use.
type Pipeline struct {
	logger   *zap.Logger
	cepstral *cepstral.Analyzer
}

// New returns a Pipeline.
func New(opts ...Option) *Pipeline {
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	copts := []cepstral.Option{cepstral.WithLogger(cfg.logger)}
	if cfg.extractor != nil {
		copts = append(copts, cepstral.WithExtractor(cfg.extractor))
	}

	return &Pipeline{
		logger:   cfg.logger,
		cepstral: cepstral.NewAnalyzer(copts...),
	}
}

// Window selects and tapers the region described by spec.
func (p *Pipeline) Window(sig *signal.Signal, spec WindowSpec) (Window, error) {
	w, err := SelectWindow(sig, spec)
	if err != nil {
		return Window{}, err
	}

	if w.Clamped() {
		p.logger.Debug("window clamped to signal",
			zap.Int("requested", w.RequestedLength),
			zap.Int("effective", w.EffectiveLength),
			zap.Int("offset", w.Offset),
			zap.Int("signal_length", sig.Len()))
	}

	return w, nil
}

// Spectrum computes the DFT of the selected window. An empty window yields
// an error wrapping spectrum.ErrEmptySignal.
func (p *Pipeline) Spectrum(sig *signal.Signal, spec WindowSpec) (SpectrumReport, error) {
	w, err := p.Window(sig, spec)
	if err != nil {
		return SpectrumReport{}, err
	}

	res, err := spectrum.Analyze(w.Samples, w.SampleRate)
	if err != nil {
		return SpectrumReport{}, fmt.Errorf("analysis: spectrum of %s window (offset %d, requested %d, effective %d, signal %d samples): %w",
			w.Type, w.Offset, w.RequestedLength, w.EffectiveLength, sig.Len(), err)
	}

	p.logger.Debug("spectrum",
		zap.Stringer("window", w.Type),
		zap.Int("bins", res.Len()),
		zap.Float64("bin_width_hz", res.BinWidth()))

	return SpectrumReport{
		Window:   w,
		Time:     w.TimeAxis(),
		Level:    timestats.Calculate(w.Samples),
		Spectrum: res,
		Stats:    frequency.FromResult(res),
	}, nil
}

// Cepstrum computes the MFCC matrix of the selected window. Extractor
// failures are returned as *cepstral.CollaboratorError.
func (p *Pipeline) Cepstrum(sig *signal.Signal, spec WindowSpec) (CepstralReport, error) {
	w, err := p.Window(sig, spec)
	if err != nil {
		return CepstralReport{}, err
	}

	res, err := p.cepstral.Analyze(w.Samples, w.SampleRate)
	if err != nil {
		return CepstralReport{}, fmt.Errorf("analysis: cepstrum of %s window (requested %d, effective %d): %w",
			w.Type, w.RequestedLength, w.EffectiveLength, err)
	}

	return CepstralReport{
		Window:   w,
		Level:    timestats.Calculate(w.Samples),
		Cepstrum: res,
	}, nil
}
