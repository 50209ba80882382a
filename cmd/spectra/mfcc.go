package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/cepstral"
	"github.com/cwbudde/algo-spectra/internal/cli"
	"github.com/cwbudde/algo-spectra/render"
	"go.uber.org/zap"
)

// MFCCCmd computes the cepstral coefficients of one window of a signal.
type MFCCCmd struct {
	InputFlags  `embed:""`
	WindowFlags `embed:""`
	OutputFlags `embed:""`

	Length    int     `help:"Window length in samples, 0 for the rest of the signal." default:"0" short:"n"`
	FrameSize int     `help:"Analysis frame length in samples." default:"2048"`
	Hop       int     `help:"Frame hop in samples." default:"512"`
	MelBands  int     `help:"Number of mel bands." default:"128"`
	MinFreq   float64 `help:"Lowest mel band edge in Hz." default:"0"`
	MaxFreq   float64 `help:"Highest mel band edge in Hz, 0 for Nyquist." default:"0"`
}

// Run executes the mfcc command.
func (c *MFCCCmd) Run(logger *zap.Logger, s *streams) error {
	extractor, err := cepstral.NewMelExtractor(
		cepstral.WithFrameLength(c.FrameSize),
		cepstral.WithHopLength(c.Hop),
		cepstral.WithMelBands(c.MelBands),
		cepstral.WithFrequencyRange(c.MinFreq, c.MaxFreq),
	)
	if err != nil {
		return err
	}

	sig, err := c.Load(logger)
	if err != nil {
		return err
	}

	spec := c.Spec(logger, sig, c.Length)
	if spec.Length <= 0 {
		spec.Length = max(sig.Len()-spec.Offset, 0)
	}

	p := analysis.New(analysis.WithLogger(logger), analysis.WithExtractor(extractor))
	rep, err := p.Cepstrum(&sig, spec)
	if err != nil {
		return err
	}

	switch c.Format {
	case "json":
		err = render.WriteJSON(s.out, render.NewCepstrumDocument(rep))
	case "csv":
		err = render.WriteCepstrumCSV(s.out, rep.Cepstrum)
	default:
		cli.PrintWindowSummary(s.out, rep.Window)
		cli.PrintLevel(s.out, rep.Level)
		cli.PrintSection(s.out, fmt.Sprintf("MFCC (%d x %d)", len(rep.Cepstrum.Coefficients), rep.Cepstrum.Frames()))
		err = cli.PrintCepstrumTable(s.out, rep.Cepstrum)
	}
	if err != nil {
		return err
	}

	if c.Plot != "" {
		return writePlot(c.Plot, logger, func(f *os.File) error {
			return render.PlotCepstrum(f, rep.Cepstrum,
				render.WithSize(c.Width, c.Height),
				render.WithTitle(fmt.Sprintf("MFCC, %s window, %d samples", rep.Window.Type, rep.Window.EffectiveLength)))
		})
	}

	return nil
}
