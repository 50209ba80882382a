package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strconv"

	"github.com/cwbudde/algo-spectra/analysis"
	"github.com/cwbudde/algo-spectra/dsp/cepstral"
	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// ErrNothingToPlot is returned when a report carries no samples.
var ErrNothingToPlot = errors.New("render: nothing to plot")

const (
	defaultWidth  = 960
	defaultHeight = 720
	minDimension  = 160

	marginLeft   = 64
	marginRight  = 16
	marginTop    = 28
	marginBottom = 30
	panelGap     = 36
	lineWidth    = 1.25
	dbFloor      = -120.0
)

var (
	colorBackground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorAxis       = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xff}
	colorGrid       = color.RGBA{R: 0xe4, G: 0xe4, B: 0xe4, A: 0xff}
	colorText       = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	colorTime       = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	colorSpectrum   = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// Heat map stops from low to high coefficient value.
var heatStops = []string{"#000004", "#3b0f70", "#8c2981", "#de4968", "#fe9f6d", "#fcfdbf"}

type plotConfig struct {
	width     int
	height    int
	title     string
	oneSided  bool
	decibels  bool
	heatStops []colorful.Color
}

// PlotOption configures a plot.
type PlotOption func(*plotConfig)

// WithSize sets the image size in pixels.
func WithSize(width, height int) PlotOption {
	return func(c *plotConfig) {
		c.width = width
		c.height = height
	}
}

// WithTitle sets the caption drawn above the plot.
func WithTitle(title string) PlotOption {
	return func(c *plotConfig) {
		c.title = title
	}
}

// WithOneSided restricts the spectrum panel to non-negative frequencies.
func WithOneSided(enabled bool) PlotOption {
	return func(c *plotConfig) {
		c.oneSided = enabled
	}
}

// WithDecibels draws magnitudes on a dB scale.
func WithDecibels(enabled bool) PlotOption {
	return func(c *plotConfig) {
		c.decibels = enabled
	}
}

func newPlotConfig(opts []PlotOption) plotConfig {
	cfg := plotConfig{
		width:  defaultWidth,
		height: defaultHeight,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	cfg.width = max(cfg.width, minDimension)
	cfg.height = max(cfg.height, minDimension)

	for _, hex := range heatStops {
		c, err := colorful.Hex(hex)
		if err == nil {
			cfg.heatStops = append(cfg.heatStops, c)
		}
	}

	return cfg
}

// PlotSpectrum renders the windowed signal above its magnitude spectrum and
// encodes the result as PNG. The full spectrum is drawn in ascending
// frequency order with negative frequencies on the left.
func PlotSpectrum(w io.Writer, rep analysis.SpectrumReport, opts ...PlotOption) error {
	if len(rep.Window.Samples) == 0 || rep.Spectrum.Len() == 0 {
		return ErrNothingToPlot
	}

	cfg := newPlotConfig(opts)
	img := newCanvas(cfg)

	top := marginTop
	if cfg.title != "" {
		top += 14
	}
	panelHeight := (cfg.height - top - marginBottom - panelGap) / 2

	timeRect := image.Rect(marginLeft, top, cfg.width-marginRight, top+panelHeight)
	freqRect := image.Rect(marginLeft, timeRect.Max.Y+panelGap, cfg.width-marginRight, cfg.height-marginBottom)

	timeAxis := rep.Time
	if len(timeAxis) != len(rep.Window.Samples) {
		timeAxis = rep.Window.TimeAxis()
	}
	tp := newPanel(timeRect, timeAxis, rep.Window.Samples)
	tp.draw(img, "time (s)", "amplitude", colorTime)

	freqs, mags := spectrumSeries(rep.Spectrum, cfg.oneSided)
	yLabel := "magnitude"
	if cfg.decibels {
		mags = toDecibels(mags)
		yLabel = "magnitude (dB)"
	}
	fp := newPanel(freqRect, freqs, mags)
	fp.draw(img, "frequency (Hz)", yLabel, colorSpectrum)

	if cfg.title != "" {
		drawText(img, cfg.title, marginLeft, marginTop-4, colorText)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// PlotCepstrum renders the MFCC matrix as a heat map with coefficients on
// the vertical axis and frames on the horizontal axis.
func PlotCepstrum(w io.Writer, res cepstral.Result, opts ...PlotOption) error {
	rows := len(res.Coefficients)
	cols := res.Frames()
	if rows == 0 || cols == 0 {
		return ErrNothingToPlot
	}

	cfg := newPlotConfig(opts)
	img := newCanvas(cfg)

	top := marginTop
	if cfg.title != "" {
		top += 14
	}
	rect := image.Rect(marginLeft, top, cfg.width-marginRight, cfg.height-marginBottom)

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range res.Coefficients {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		lo, hi = 0, 1
	}

	cellW := float64(rect.Dx()) / float64(cols)
	cellH := float64(rect.Dy()) / float64(rows)
	for k, row := range res.Coefficients {
		// Coefficient 0 at the bottom.
		y0 := rect.Max.Y - int(math.Round(float64(k+1)*cellH))
		y1 := rect.Max.Y - int(math.Round(float64(k)*cellH))
		for j, v := range row {
			x0 := rect.Min.X + int(math.Round(float64(j)*cellW))
			x1 := rect.Min.X + int(math.Round(float64(j+1)*cellW))
			c := cfg.heatColor(normalize(v, lo, hi))
			draw.Draw(img, image.Rect(x0, y0, x1, y1), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	strokeRect(img, rect, colorAxis)
	drawText(img, "0", rect.Min.X-12, rect.Max.Y, colorText)
	drawText(img, strconv.Itoa(rows-1), rect.Min.X-20, rect.Min.Y+10, colorText)
	drawText(img, "coefficient", 4, rect.Min.Y+rect.Dy()/2, colorText)

	xLabel := fmt.Sprintf("frame (0..%d)", cols-1)
	if times := res.FrameTimes(); times != nil {
		xLabel = fmt.Sprintf("time (s) %s .. %s", formatTick(times[0]), formatTick(times[len(times)-1]))
	}
	drawText(img, xLabel, rect.Min.X, cfg.height-8, colorText)
	drawText(img, fmt.Sprintf("range %s .. %s", formatTick(lo), formatTick(hi)), rect.Max.X-170, cfg.height-8, colorText)

	if cfg.title != "" {
		drawText(img, cfg.title, marginLeft, marginTop-4, colorText)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func (c plotConfig) heatColor(t float64) color.Color {
	stops := c.heatStops
	switch len(stops) {
	case 0:
		g := uint8(math.Round(t * 255))
		return color.RGBA{R: g, G: g, B: g, A: 0xff}
	case 1:
		return stops[0].Clamped()
	}

	pos := t * float64(len(stops)-1)
	i := int(pos)
	if i >= len(stops)-1 {
		return stops[len(stops)-1].Clamped()
	}
	return stops[i].BlendLab(stops[i+1], pos-float64(i)).Clamped()
}

func normalize(v, lo, hi float64) float64 {
	if math.IsNaN(v) || hi <= lo {
		return 0
	}
	t := (v - lo) / (hi - lo)
	return math.Max(0, math.Min(1, t))
}

// spectrumSeries returns the spectrum in ascending frequency order.
func spectrumSeries(res spectrum.Result, oneSided bool) (freqs, mags []float64) {
	if oneSided {
		half := res.OneSided()
		return half.Frequencies, half.Magnitudes
	}

	n := res.Len()
	freqs = make([]float64, 0, n)
	mags = make([]float64, 0, n)
	split := (n + 1) / 2
	for _, k := range [2][2]int{{split, n}, {0, split}} {
		freqs = append(freqs, res.Frequencies[k[0]:k[1]]...)
		mags = append(mags, res.Magnitudes[k[0]:k[1]]...)
	}
	return freqs, mags
}

func toDecibels(mags []float64) []float64 {
	out := make([]float64, len(mags))
	for i, m := range mags {
		db := 20 * math.Log10(m)
		if math.IsNaN(db) || db < dbFloor {
			db = dbFloor
		}
		out[i] = db
	}
	return out
}

func newCanvas(cfg plotConfig) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	return img
}

// panel maps data coordinates into a pixel rectangle.
type panel struct {
	rect       image.Rectangle
	xs, ys     []float64
	xmin, xmax float64
	ymin, ymax float64
}

func newPanel(rect image.Rectangle, xs, ys []float64) panel {
	p := panel{rect: rect, xs: xs, ys: ys}
	p.xmin, p.xmax = extent(xs)
	p.ymin, p.ymax = extent(ys)

	pad := 0.05 * (p.ymax - p.ymin)
	p.ymin -= pad
	p.ymax += pad
	return p
}

// extent returns the finite range of v, widened when it is degenerate.
func extent(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo > hi {
		return -1, 1
	}
	if hi-lo < 1e-12 {
		d := math.Max(math.Abs(lo)*0.5, 0.5)
		return lo - d, hi + d
	}
	return lo, hi
}

func (p panel) project(x, y float64) (float32, float32) {
	fx := float64(p.rect.Min.X) + (x-p.xmin)/(p.xmax-p.xmin)*float64(p.rect.Dx())
	fy := float64(p.rect.Max.Y) - (y-p.ymin)/(p.ymax-p.ymin)*float64(p.rect.Dy())
	return float32(fx), float32(fy)
}

func (p panel) draw(img *image.RGBA, xLabel, yLabel string, c color.Color) {
	// Zero line when it is in range.
	if p.ymin < 0 && p.ymax > 0 {
		_, zy := p.project(p.xmin, 0)
		y := int(math.Round(float64(zy)))
		draw.Draw(img, image.Rect(p.rect.Min.X, y, p.rect.Max.X, y+1), image.NewUniform(colorGrid), image.Point{}, draw.Src)
	}

	p.polyline(img, c)
	strokeRect(img, p.rect, colorAxis)

	drawText(img, formatTick(p.ymax), 4, p.rect.Min.Y+10, colorText)
	drawText(img, formatTick(p.ymin), 4, p.rect.Max.Y, colorText)
	drawText(img, formatTick(p.xmin), p.rect.Min.X, p.rect.Max.Y+14, colorText)
	maxLabel := formatTick(p.xmax)
	drawText(img, maxLabel, p.rect.Max.X-7*len(maxLabel), p.rect.Max.Y+14, colorText)
	drawText(img, xLabel, p.rect.Min.X+p.rect.Dx()/2-7*len(xLabel)/2, p.rect.Max.Y+14, colorText)
	drawText(img, yLabel, p.rect.Min.X+4, p.rect.Min.Y-4, colorText)
}

// polyline strokes the series as one quad per segment. Overlapping quads
// saturate in the rasterizer so joints stay solid.
func (p panel) polyline(img *image.RGBA, c color.Color) {
	n := min(len(p.xs), len(p.ys))
	if n == 0 {
		return
	}

	b := img.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())

	if n == 1 {
		x, y := p.project(p.xs[0], p.ys[0])
		addQuad(r, x-lineWidth, y, x+lineWidth, y)
	}
	for i := 1; i < n; i++ {
		x0, y0 := p.project(p.xs[i-1], p.ys[i-1])
		x1, y1 := p.project(p.xs[i], p.ys[i])
		addQuad(r, x0, y0, x1, y1)
	}

	r.Draw(img, b, image.NewUniform(c), image.Point{})
}

func addQuad(r *vector.Rasterizer, x0, y0, x1, y1 float32) {
	dx, dy := x1-x0, y1-y0
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		dx, dy, length = 1, 0, 1
	}
	nx := -dy / length * lineWidth / 2
	ny := dx / length * lineWidth / 2

	r.MoveTo(x0+nx, y0+ny)
	r.LineTo(x1+nx, y1+ny)
	r.LineTo(x1-nx, y1-ny)
	r.LineTo(x0-nx, y0-ny)
	r.ClosePath()
}

func strokeRect(img *image.RGBA, rect image.Rectangle, c color.Color) {
	u := image.NewUniform(c)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}

func drawText(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
