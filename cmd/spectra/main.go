// Command spectra computes the spectrum and MFCCs of a window of an audio
// signal.
//
// Usage:
//
//	spectra spectrum [flags] [<input>]
//	spectra mfcc [flags] [<input>]
//	spectra windows [flags] [window-name ...]
//	spectra version
//
// Without an input file a signal is generated from --signal, --tone, --rate
// and --duration.
//
// Examples:
//
//	spectra spectrum --tone 1000 --window hann --length 1024
//	spectra spectrum speech.wav --offset 1.5 --one-sided --plot spectrum.png
//	spectra mfcc song.flac --format csv
//	spectra windows --size 4096 hamming flat_top
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cwbudde/algo-spectra/internal/cli"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is set via ldflags at build time.
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	LogLevel  string          `help:"Log level." enum:"debug,info,warn,error" default:"warn"`
	LogFormat string          `help:"Log encoding." enum:"console,json" default:"console"`
	Config    kong.ConfigFlag `help:"Load flag values from a JSON file."`
}

// CLI is the command tree.
type CLI struct {
	Globals `embed:""`

	Spectrum SpectrumCmd `cmd:"" help:"Compute the DFT spectrum of a signal window."`
	MFCC     MFCCCmd     `cmd:"" name:"mfcc" help:"Compute the 13 mel-frequency cepstral coefficients of a signal window."`
	Windows  WindowsCmd  `cmd:"" help:"Print spectral properties of the window functions."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// streams carries the command output writers.
type streams struct {
	out io.Writer
	err io.Writer
}

// VersionCmd prints the build version.
type VersionCmd struct{}

// Run prints the version.
func (VersionCmd) Run(s *streams) error {
	cli.PrintVersion(s.out, version)
	return nil
}

func newLogger(level, format string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	enc := zapcore.NewConsoleEncoder(encCfg)
	if format == "json" {
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

func newParser(c *CLI, s *streams) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("spectra"),
		kong.Description("Spectral and cepstral analysis of audio signals."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.DefaultEnvars("SPECTRA"),
		kong.Configuration(kong.JSON),
		kong.Writers(s.out, s.err),
	)
}

// run parses args and executes the selected command.
func run(args []string, s *streams) error {
	var c CLI
	parser, err := newParser(&c, s)
	if err != nil {
		return err
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(c.LogLevel, c.LogFormat, s.err)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return ctx.Run(&c.Globals, logger, s)
}

func main() {
	s := &streams{out: os.Stdout, err: os.Stderr}
	if err := run(os.Args[1:], s); err != nil {
		var perr *kong.ParseError
		if errors.As(err, &perr) && perr.Context != nil {
			_ = perr.Context.PrintUsage(true)
		}
		cli.PrintError(s.err, err.Error())
		os.Exit(1)
	}
}
