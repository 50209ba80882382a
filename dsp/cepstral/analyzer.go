package cepstral

import (
	"fmt"

	"go.uber.org/zap"
)

// Result is a NumCoefficients x frames MFCC matrix.
type Result struct {
	Coefficients [][]float64 `json:"coefficients"`
	SampleRate   int         `json:"sample_rate"`
	// HopLength is the frame hop in samples, 0 when the extractor does not
	// report one.
	HopLength int `json:"hop_length,omitempty"`
}

// Frames returns the number of analysis frames (columns).
func (r Result) Frames() int {
	if len(r.Coefficients) == 0 {
		return 0
	}
	return len(r.Coefficients[0])
}

// FrameTimes returns the centre time in seconds of every frame, or nil when
// the hop is unknown.
func (r Result) FrameTimes() []float64 {
	if r.HopLength <= 0 || r.SampleRate <= 0 {
		return nil
	}
	out := make([]float64, r.Frames())
	for i := range out {
		out[i] = float64(i*r.HopLength) / float64(r.SampleRate)
	}
	return out
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithExtractor replaces the default MelExtractor.
func WithExtractor(e Extractor) Option {
	return func(a *Analyzer) {
		a.extractor = e
	}
}

// WithLogger sets the logger; the default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(a *Analyzer) {
		if l != nil {
			a.logger = l
		}
	}
}

// Analyzer runs an Extractor over windowed signals.
type Analyzer struct {
	extractor Extractor
	logger    *zap.Logger
}

// NewAnalyzer returns an Analyzer using the default MelExtractor unless
// WithExtractor is given.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	if a.extractor == nil {
		a.extractor = defaultMelExtractor()
	}

	return a
}

// Extractor returns the extractor in use.
func (a *Analyzer) Extractor() Extractor {
	return a.extractor
}

// Analyze passes samples and sampleRate to the extractor, asking for
// NumCoefficients rows. The matrix is returned as produced. Failures come
// back as *CollaboratorError.
func (a *Analyzer) Analyze(samples []float64, sampleRate int) (Result, error) {
	fail := func(err error) (Result, error) {
		a.logger.Debug("cepstral extraction failed",
			zap.Int("length", len(samples)),
			zap.Int("sample_rate", sampleRate),
			zap.Error(err))

		return Result{}, &CollaboratorError{Length: len(samples), SampleRate: sampleRate, Err: err}
	}

	coeffs, err := a.extractor.ComputeMFCC(samples, sampleRate, NumCoefficients)
	if err != nil {
		return fail(err)
	}

	if err := validateMatrix(coeffs, NumCoefficients); err != nil {
		return fail(err)
	}

	res := Result{Coefficients: coeffs, SampleRate: sampleRate}
	if h, ok := a.extractor.(interface{ HopLength() int }); ok {
		res.HopLength = h.HopLength()
	}

	a.logger.Debug("cepstral extraction",
		zap.Int("length", len(samples)),
		zap.Int("sample_rate", sampleRate),
		zap.Int("frames", res.Frames()))

	return res, nil
}

func validateMatrix(coeffs [][]float64, rows int) error {
	if len(coeffs) != rows {
		return fmt.Errorf("%w: %d rows, want %d", ErrMalformedMatrix, len(coeffs), rows)
	}
	for i, row := range coeffs {
		if len(row) != len(coeffs[0]) {
			return fmt.Errorf("%w: row %d has %d frames, row 0 has %d", ErrMalformedMatrix, i, len(row), len(coeffs[0]))
		}
	}
	return nil
}
