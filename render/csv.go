package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/cepstral"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

// WriteSpectrumCSV writes one row per bin: index, frequency, magnitude and
// phase. Rows follow the order of res.
func WriteSpectrumCSV(w io.Writer, res spectrum.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"bin", "frequency_hz", "magnitude", "phase_rad"}); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	phases := res.Phases()
	for k := range res.Len() {
		phase := 0.0
		if k < len(phases) {
			phase = phases[k]
		}

		row := []string{
			strconv.Itoa(k),
			formatFloat(res.Frequencies[k]),
			formatFloat(res.Magnitudes[k]),
			formatFloat(phase),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteWindowCSV writes the time-domain windowed samples with their time
// relative to the window start.
func WriteWindowCSV(w io.Writer, win analysis.Window) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"sample", "time_s", "amplitude"}); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	for i, t := range win.TimeAxis() {
		if err := cw.Write([]string{strconv.Itoa(win.Offset + i), formatFloat(t), formatFloat(win.Samples[i])}); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCepstrumCSV writes the MFCC matrix with one row per coefficient and
// one column per frame. Column headers carry the frame time when known.
func WriteCepstrumCSV(w io.Writer, res cepstral.Result) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, res.Frames()+1)
	header = append(header, "coefficient")
	if times := res.FrameTimes(); times != nil {
		for _, t := range times {
			header = append(header, "t="+strconv.FormatFloat(t, 'f', 4, 64))
		}
	} else {
		for i := range res.Frames() {
			header = append(header, "frame_"+strconv.Itoa(i))
		}
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	for k, row := range res.Coefficients {
		rec := make([]string, 0, len(row)+1)
		rec = append(rec, strconv.Itoa(k))
		for _, v := range row {
			rec = append(rec, formatFloat(v))
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
