package render

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/stats/frequency"
	timestats "github.com/cwbudde/algo-spectra/stats/time"
)

// WindowDocument describes how the analysed window was selected.
type WindowDocument struct {
	Type            string  `json:"type"`
	Offset          int     `json:"offset"`
	StartSeconds    float64 `json:"start_s"`
	RequestedLength int     `json:"requested_length"`
	EffectiveLength int     `json:"effective_length"`
	SampleRate      int     `json:"sample_rate"`
}

// SpectrumDocument is the JSON form of a spectrum report.
type SpectrumDocument struct {
	Window      WindowDocument  `json:"window"`
	Time        []float64       `json:"time_s,omitempty"`
	Samples     []float64       `json:"samples,omitempty"`
	Level       timestats.Stats `json:"level"`
	BinWidth    float64         `json:"bin_width_hz"`
	Frequencies []float64       `json:"frequencies_hz"`
	Magnitudes  []float64       `json:"magnitudes"`
	Stats       frequency.Stats `json:"stats"`
}

// CepstrumDocument is the JSON form of a cepstral report.
type CepstrumDocument struct {
	Window       WindowDocument  `json:"window"`
	Level        timestats.Stats `json:"level"`
	Frames       int             `json:"frames"`
	FrameTimes   []float64       `json:"frame_times_s,omitempty"`
	Coefficients [][]float64     `json:"coefficients"`
}

func newWindowDocument(w analysis.Window) WindowDocument {
	return WindowDocument{
		Type:            w.Type.String(),
		Offset:          w.Offset,
		StartSeconds:    w.StartTime(),
		RequestedLength: w.RequestedLength,
		EffectiveLength: w.EffectiveLength,
		SampleRate:      w.SampleRate,
	}
}

// NewSpectrumDocument builds the JSON document for rep. With oneSided only
// the non-negative frequency bins are included; withSamples adds the
// time-domain window.
func NewSpectrumDocument(rep analysis.SpectrumReport, oneSided, withSamples bool) SpectrumDocument {
	res := rep.Spectrum
	if oneSided {
		res = res.OneSided()
	}

	doc := SpectrumDocument{
		Window:      newWindowDocument(rep.Window),
		Level:       rep.Level,
		BinWidth:    rep.Spectrum.BinWidth(),
		Frequencies: res.Frequencies,
		Magnitudes:  res.Magnitudes,
		Stats:       sanitizeStats(rep.Stats),
	}
	if withSamples {
		doc.Time = rep.Time
		doc.Samples = rep.Window.Samples
	}

	return doc
}

// NewCepstrumDocument builds the JSON document for rep.
func NewCepstrumDocument(rep analysis.CepstralReport) CepstrumDocument {
	return CepstrumDocument{
		Window:       newWindowDocument(rep.Window),
		Level:        rep.Level,
		Frames:       rep.Cepstrum.Frames(),
		FrameTimes:   rep.Cepstrum.FrameTimes(),
		Coefficients: rep.Cepstrum.Coefficients,
	}
}

// sanitizeStats replaces non-finite values, which encoding/json rejects.
func sanitizeStats(s frequency.Stats) frequency.Stats {
	for _, v := range []*float64{&s.Centroid, &s.Spread, &s.Flatness, &s.Rolloff, &s.Bandwidth} {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = 0
		}
	}
	return s
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
