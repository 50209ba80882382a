package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/cepstral"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/cwbudde/algo-spectra/dsp/window"
	timestats "github.com/cwbudde/algo-spectra/stats/time"
)

// Table writes tab-aligned columns with a dashed rule under the header.
type Table struct {
	tw *tabwriter.Writer
}

// NewTable starts a table on w with the given column headers.
func NewTable(w io.Writer, headers ...string) (*Table, error) {
	t := &Table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}

	rule := make([]string, len(headers))
	for i, h := range headers {
		rule[i] = strings.Repeat("-", len(h))
	}
	if err := t.Row(headers...); err != nil {
		return nil, err
	}
	if err := t.Row(rule...); err != nil {
		return nil, err
	}
	return t, nil
}

// Row writes one line of cells.
func (t *Table) Row(cells ...string) error {
	if _, err := fmt.Fprintln(t.tw, strings.Join(cells, "\t")); err != nil {
		return fmt.Errorf("failed to write table row: %w", err)
	}
	return nil
}

// Flush aligns and writes the buffered rows.
func (t *Table) Flush() error {
	if err := t.tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// PrintWindowSummary prints how the analysed window was selected.
func PrintWindowSummary(w io.Writer, win analysis.Window) {
	PrintSection(w, "Window")
	PrintInfo(w, "Type", win.Type.String())
	PrintInfo(w, "Sample rate", strconv.Itoa(win.SampleRate)+" Hz")
	PrintInfo(w, "Offset", fmt.Sprintf("%d samples (%s)", win.Offset, ftoa(win.StartTime(), 4)+" s"))
	length := strconv.Itoa(win.EffectiveLength)
	if win.Clamped() {
		length = fmt.Sprintf("%d (requested %d)", win.EffectiveLength, win.RequestedLength)
	}
	PrintInfo(w, "Length", length)
	if win.SampleRate > 0 {
		d := time.Duration(float64(win.EffectiveLength) / float64(win.SampleRate) * float64(time.Second))
		PrintInfo(w, "Duration", FormatDuration(d))
	}
	if win.Clamped() {
		PrintWarning(w, "window runs past the end of the signal and was clamped")
	}
}

// PrintLevel prints the time-domain level of the windowed samples.
func PrintLevel(w io.Writer, s timestats.Stats) {
	PrintSection(w, "Level")
	PrintInfo(w, "RMS", fmt.Sprintf("%s (%s dB)", ftoa(s.RMS, 4), ftoa(s.RMSdB, 1)))
	PrintInfo(w, "Peak", fmt.Sprintf("%s (%s dB, sample %d)", ftoa(s.Peak, 4), ftoa(s.PeakdB, 1), s.PeakPos))
	PrintInfo(w, "Crest factor", ftoa(s.CrestFactor, 3))
	PrintInfo(w, "DC offset", ftoa(s.DC, 6))
	PrintInfo(w, "Zero crossings", strconv.Itoa(s.ZeroCrossings))
}

// PrintSpectrumSummary prints the window, its level, the peak bin and the
// spectral statistics of rep.
func PrintSpectrumSummary(w io.Writer, rep analysis.SpectrumReport) {
	PrintWindowSummary(w, rep.Window)
	PrintLevel(w, rep.Level)

	PrintSection(w, "Spectrum")
	PrintInfo(w, "Bins", strconv.Itoa(rep.Spectrum.Len()))
	PrintInfo(w, "Resolution", FormatHz(rep.Spectrum.BinWidth()))
	if idx, hz, mag, ok := rep.Spectrum.Peak(); ok {
		PrintInfo(w, "Peak", fmt.Sprintf("%s (bin %d, magnitude %s)", FormatHz(hz), idx, ftoa(mag, 4)))
	}

	s := rep.Stats
	PrintInfo(w, "DC", fmt.Sprintf("%s (%s dB)", ftoa(s.DC, 4), ftoa(s.DCdB, 1)))
	PrintInfo(w, "Centroid", FormatHz(s.Centroid))
	PrintInfo(w, "Spread", FormatHz(s.Spread))
	PrintInfo(w, "Rolloff", FormatHz(s.Rolloff))
	PrintInfo(w, "Bandwidth", FormatHz(s.Bandwidth))
	PrintInfo(w, "Flatness", ftoa(s.Flatness, 4))
	PrintInfo(w, "Energy", ftoa(s.Energy, 4))
}

// PrintSpectrumTable prints one row per bin of res.
func PrintSpectrumTable(w io.Writer, res spectrum.Result) error {
	t, err := NewTable(w, "Bin", "Frequency [Hz]", "Magnitude", "Magnitude [dB]", "Phase [rad]")
	if err != nil {
		return err
	}

	db := res.MagnitudesDB(1, -200)
	phases := res.Phases()
	for k := range res.Len() {
		phase := ""
		if k < len(phases) {
			phase = ftoa(phases[k], 4)
		}
		if err := t.Row(strconv.Itoa(k), ftoa(res.Frequencies[k], 2), ftoa(res.Magnitudes[k], 6), ftoa(db[k], 2), phase); err != nil {
			return err
		}
	}
	return t.Flush()
}

// PrintCepstrumTable prints the MFCC matrix with one row per coefficient.
func PrintCepstrumTable(w io.Writer, res cepstral.Result) error {
	headers := []string{"Coef"}
	if times := res.FrameTimes(); times != nil {
		for _, ts := range times {
			headers = append(headers, ftoa(ts, 3)+"s")
		}
	} else {
		for i := range res.Frames() {
			headers = append(headers, "#"+strconv.Itoa(i))
		}
	}

	t, err := NewTable(w, headers...)
	if err != nil {
		return err
	}
	for k, row := range res.Coefficients {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, strconv.Itoa(k))
		for _, v := range row {
			cells = append(cells, ftoa(v, 2))
		}
		if err := t.Row(cells...); err != nil {
			return err
		}
	}
	return t.Flush()
}

// PrintProbeTable prints Goertzel magnitudes at the probed frequencies.
func PrintProbeTable(w io.Writer, freqs, mags []float64) error {
	t, err := NewTable(w, "Frequency [Hz]", "Magnitude")
	if err != nil {
		return err
	}
	for i := range min(len(freqs), len(mags)) {
		if err := t.Row(ftoa(freqs[i], 2), ftoa(mags[i], 6)); err != nil {
			return err
		}
	}
	return t.Flush()
}

// WindowRow is one line of the window property table.
type WindowRow struct {
	Type       window.Type
	Size       int
	Properties window.Properties
}

// PrintWindowTable prints the spectral properties of window functions.
func PrintWindowTable(w io.Writer, rows []WindowRow) error {
	t, err := NewTable(w, "Window", "Size", "Coherent Gain", "ENBW [bins]", "BW 3dB [bins]", "Sidelobe [dB]", "1st Null [bins]", "Scallop [dB]")
	if err != nil {
		return err
	}
	for _, r := range rows {
		p := r.Properties
		if err := t.Row(
			r.Type.String(),
			strconv.Itoa(r.Size),
			ftoa(p.CoherentGain, 6),
			ftoa(p.ENBW, 4),
			ftoa(p.Bandwidth3dB, 4),
			ftoa(p.HighestSidelobedB, 2),
			ftoa(p.FirstNullBins, 4),
			ftoa(p.ScallopLossdB, 4),
		); err != nil {
			return err
		}
	}
	return t.Flush()
}
