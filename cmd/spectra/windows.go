package main

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-spectra/dsp/window"
	"github.com/cwbudde/algo-spectra/internal/cli"
	"go.uber.org/zap"
)

// WindowsCmd prints the spectral properties of window functions.
type WindowsCmd struct {
	Names    []string `arg:"" optional:"" help:"Window names. All windows when omitted."`
	Size     int      `help:"Window length in samples." default:"1024"`
	Periodic bool     `help:"Use the periodic (DFT-even) form instead of the symmetric one."`
	List     bool     `help:"List the available window names."`
}

// Run executes the windows command.
func (c *WindowsCmd) Run(logger *zap.Logger, s *streams) error {
	if c.List {
		for _, t := range window.Types() {
			fmt.Fprintln(s.out, t)
		}
		return nil
	}

	types, err := c.resolve(logger)
	if err != nil {
		return err
	}

	var opts []window.Option
	if c.Periodic {
		opts = append(opts, window.WithPeriodic())
	}

	rows := make([]cli.WindowRow, 0, len(types))
	for _, t := range types {
		props, err := window.Analyze(window.Generate(t, c.Size, opts...))
		if err != nil {
			logger.Warn("skipping window", zap.Stringer("window", t), zap.Error(err))
			continue
		}
		rows = append(rows, cli.WindowRow{Type: t, Size: c.Size, Properties: props})
	}

	return cli.PrintWindowTable(s.out, rows)
}

func (c *WindowsCmd) resolve(logger *zap.Logger) ([]window.Type, error) {
	if len(c.Names) == 0 {
		var out []window.Type
		for _, t := range window.Types() {
			if t != window.TypeNone {
				out = append(out, t)
			}
		}
		return out, nil
	}

	out := make([]window.Type, 0, len(c.Names))
	for _, name := range c.Names {
		t, ok := window.ParseType(strings.TrimSpace(name))
		if !ok {
			logger.Warn("unknown window", zap.String("name", name))
			continue
		}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matching window types (use --list to see available)")
	}
	return out, nil
}
