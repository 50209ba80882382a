package frequency

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-spectra/dsp/spectrum"
	"github.com/cwbudde/algo-spectra/internal/testutil"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsInf(a, -1) && math.IsInf(b, -1) {
		return true
	}

	if math.IsInf(a, 1) && math.IsInf(b, 1) {
		return true
	}

	return math.Abs(a-b) <= tol
}

// makeSingleBinSpectrum creates a spectrum of given length with a single
// non-zero bin at the specified index.
func makeSingleBinSpectrum(n, bin int, amplitude float64) []float64 {
	mag := make([]float64, n)
	if bin >= 0 && bin < n {
		mag[bin] = amplitude
	}

	return mag
}

func TestCalculateEmpty(t *testing.T) {
	s := Calculate(nil, 10)
	if s.BinCount != 0 {
		t.Fatalf("expected BinCount=0, got %d", s.BinCount)
	}

	if !math.IsInf(s.DCdB, -1) || !math.IsInf(s.AveragedB, -1) {
		t.Fatalf("expected -Inf levels, got DC=%f avg=%f", s.DCdB, s.AveragedB)
	}
}

func TestCalculateAllZero(t *testing.T) {
	s := Calculate(make([]float64, 256), 86.1328125)
	if s.BinCount != 256 {
		t.Fatalf("expected BinCount=256, got %d", s.BinCount)
	}

	if s.Sum != 0 || s.Energy != 0 || s.Centroid != 0 || s.Flatness != 0 || s.Bandwidth != 0 {
		t.Fatalf("expected all-zero statistics, got %+v", s)
	}
}

func TestCalculateSingleBin(t *testing.T) {
	const (
		binHz     = 48000.0 / 1024
		bin       = 21
		amplitude = 2.5
	)

	s := Calculate(makeSingleBinSpectrum(512, bin, amplitude), binHz)

	if !almostEqual(s.Centroid, bin*binHz, tolerance) {
		t.Fatalf("Centroid: got %f, want %f", s.Centroid, bin*binHz)
	}

	if !almostEqual(s.PeakHz, bin*binHz, tolerance) || s.MaxBin != bin {
		t.Fatalf("peak: got bin %d (%f Hz), want %d", s.MaxBin, s.PeakHz, bin)
	}

	if !almostEqual(s.Spread, 0, tolerance) {
		t.Fatalf("Spread: got %f, want 0", s.Spread)
	}

	if s.Flatness != 0 {
		t.Fatalf("Flatness: got %f, want 0", s.Flatness)
	}

	if !almostEqual(s.Energy, amplitude*amplitude, tolerance) {
		t.Fatalf("Energy: got %f, want %f", s.Energy, amplitude*amplitude)
	}
}

func TestCalculateTwoBins(t *testing.T) {
	const binHz = 10.0

	mag := make([]float64, 64)
	mag[10] = 3
	mag[20] = 1

	s := Calculate(mag, binHz)

	if want := (100.0*3 + 200.0*1) / 4; !almostEqual(s.Centroid, want, tolerance) {
		t.Fatalf("Centroid: got %f, want %f", s.Centroid, want)
	}

	if !almostEqual(s.Sum, 4, tolerance) || !almostEqual(s.Energy, 10, tolerance) {
		t.Fatalf("Sum/Energy: got %f/%f, want 4/10", s.Sum, s.Energy)
	}
}

func TestCalculateFlatSpectrum(t *testing.T) {
	const binHz = 50.0

	mag := testutil.DC(0.5, 101)
	s := Calculate(mag, binHz)

	if !almostEqual(s.Centroid, 2500, tolerance) {
		t.Fatalf("Centroid: got %f, want 2500", s.Centroid)
	}

	if !almostEqual(s.Flatness, 1, 1e-12) {
		t.Fatalf("Flatness: got %f, want 1", s.Flatness)
	}

	if !almostEqual(s.Bandwidth, 5000, tolerance) {
		t.Fatalf("Bandwidth: got %f, want 5000", s.Bandwidth)
	}

	if s.Range != 0 {
		t.Fatalf("Range: got %f, want 0", s.Range)
	}
}

func TestCalculateSingleElement(t *testing.T) {
	s := Calculate([]float64{3.5}, 100)

	if s.BinCount != 1 || s.DC != 3.5 || s.Energy != 3.5*3.5 {
		t.Fatalf("unexpected stats: %+v", s)
	}

	if s.Centroid != 0 || s.Rolloff != 0 {
		t.Fatalf("single bin should have no shape descriptors: %+v", s)
	}
}

func TestRolloff(t *testing.T) {
	// Energies 1, 1, 1, 1, 16: 85% of 20 is reached at bin 4.
	mag := []float64{1, 1, 1, 1, 4}

	if got := Rolloff(mag, 1, 0.85); !almostEqual(got, 4, tolerance) {
		t.Fatalf("Rolloff: got %f, want 4", got)
	}

	if got := Rolloff(mag, 1, 0.1); !almostEqual(got, 1, tolerance) {
		t.Fatalf("Rolloff(0.1): got %f, want 1", got)
	}

	if got := Rolloff(nil, 1, 0.85); got != 0 {
		t.Fatalf("Rolloff empty: got %f, want 0", got)
	}
}

func TestBandwidthTriangle(t *testing.T) {
	// Linear slopes of one unit per bin around a peak of 10 at bin 20.
	mag := make([]float64, 41)
	for i := range mag {
		mag[i] = math.Max(0, 10-math.Abs(float64(i-20)))
	}

	got := Bandwidth(mag, 2)
	want := 2 * (10 - 10/math.Sqrt2) * 2
	if !almostEqual(got, want, 1e-9) {
		t.Fatalf("Bandwidth: got %f, want %f", got, want)
	}
}

func TestIndividualFunctionsMatchCalculate(t *testing.T) {
	mag := testutil.DeterministicNoise(11, 1, 129)
	for i := range mag {
		mag[i] = math.Abs(mag[i]) + 0.01
	}

	s := Calculate(mag, 93.75)

	if c := Centroid(mag, 93.75); !almostEqual(c, s.Centroid, tolerance) {
		t.Fatalf("Centroid: individual=%f, Calculate=%f", c, s.Centroid)
	}

	if f := Flatness(mag); !almostEqual(f, s.Flatness, tolerance) {
		t.Fatalf("Flatness: individual=%f, Calculate=%f", f, s.Flatness)
	}

	if r := Rolloff(mag, 93.75, DefaultRolloff); !almostEqual(r, s.Rolloff, tolerance) {
		t.Fatalf("Rolloff: individual=%f, Calculate=%f", r, s.Rolloff)
	}

	if b := Bandwidth(mag, 93.75); !almostEqual(b, s.Bandwidth, tolerance) {
		t.Fatalf("Bandwidth: individual=%f, Calculate=%f", b, s.Bandwidth)
	}
}

func TestFromResultUsesOneSidedBins(t *testing.T) {
	const rate = 8000

	res, err := spectrum.Analyze(testutil.DeterministicSine(1000, rate, 1, 64), rate)
	if err != nil {
		t.Fatal(err)
	}

	s := FromResult(res)

	if s.BinCount != 33 {
		t.Fatalf("BinCount: got %d, want 33", s.BinCount)
	}

	if !almostEqual(s.BinWidth, 125, tolerance) {
		t.Fatalf("BinWidth: got %f, want 125", s.BinWidth)
	}

	if !almostEqual(s.PeakHz, 1000, tolerance) {
		t.Fatalf("PeakHz: got %f, want 1000", s.PeakHz)
	}

	if !almostEqual(s.Centroid, 1000, 1e-6) {
		t.Fatalf("Centroid: got %f, want 1000", s.Centroid)
	}
}
