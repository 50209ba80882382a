package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/cwbudde/algo-spectra/internal/cli"
	"github.com/cwbudde/algo-spectra/render"
	"go.uber.org/zap"
)

// SpectrumCmd analyses one window of a signal in the frequency domain.
type SpectrumCmd struct {
	InputFlags  `embed:""`
	WindowFlags `embed:""`
	OutputFlags `embed:""`

	Length   int       `help:"Window length in samples." default:"512" short:"n"`
	OneSided bool      `help:"Only report non-negative frequencies."`
	DB       bool      `name:"db" help:"Plot magnitudes in dB."`
	Samples  bool      `help:"Include the windowed samples in JSON and CSV output."`
	Probe    []float64 `help:"Measure the magnitude at these frequencies in Hz." placeholder:"HZ,..."`
}

// Run executes the spectrum command.
func (c *SpectrumCmd) Run(logger *zap.Logger, s *streams) error {
	sig, err := c.Load(logger)
	if err != nil {
		return err
	}

	spec := c.Spec(logger, sig, c.Length)

	rep, err := analysis.New(analysis.WithLogger(logger)).Spectrum(&sig, spec)
	if err != nil {
		return err
	}

	res := rep.Spectrum
	if c.OneSided {
		res = res.OneSided()
	}

	switch c.Format {
	case "json":
		err = render.WriteJSON(s.out, render.NewSpectrumDocument(rep, c.OneSided, c.Samples))
	case "csv":
		if c.Samples {
			if err = render.WriteWindowCSV(s.out, rep.Window); err != nil {
				return err
			}
			fmt.Fprintln(s.out)
		}
		err = render.WriteSpectrumCSV(s.out, res)
	default:
		cli.PrintSpectrumSummary(s.out, rep)
		cli.PrintSection(s.out, "Bins")
		err = cli.PrintSpectrumTable(s.out, res)
	}
	if err != nil {
		return err
	}

	if len(c.Probe) > 0 {
		mags, err := spectrum.Probe(rep.Window.Samples, rep.Window.SampleRate, c.Probe...)
		if err != nil {
			return fmt.Errorf("probe failed: %w", err)
		}
		if c.Format == "table" {
			cli.PrintSection(s.out, "Probe")
		}
		if err := cli.PrintProbeTable(s.out, c.Probe, mags); err != nil {
			return err
		}
	}

	if c.Plot != "" {
		return writePlot(c.Plot, logger, func(f *os.File) error {
			return render.PlotSpectrum(f, rep,
				render.WithSize(c.Width, c.Height),
				render.WithTitle(fmt.Sprintf("%s window, %d samples", rep.Window.Type, rep.Window.EffectiveLength)),
				render.WithOneSided(c.OneSided),
				render.WithDecibels(c.DB))
		})
	}

	return nil
}

func writePlot(path string, logger *zap.Logger, draw func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot: %w", err)
	}

	if err := draw(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write plot: %w", err)
	}

	logger.Info("wrote plot", zap.String("path", path))
	return nil
}
