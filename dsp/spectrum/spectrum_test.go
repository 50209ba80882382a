package spectrum

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/cwbudde/algo-spectra/internal/testutil"
)

func TestMagnitudePhasePower(t *testing.T) {
	bins := []complex128{3 + 4i, -1 - 1i, 0}

	mag := Magnitude(bins)
	if len(mag) != len(bins) {
		t.Fatalf("Magnitude length mismatch: got=%d want=%d", len(mag), len(bins))
	}

	if math.Abs(mag[0]-5) > 1e-12 {
		t.Fatalf("Magnitude[0]=%f want=5", mag[0])
	}

	pow := Power(bins)
	if math.Abs(pow[0]-25) > 1e-12 {
		t.Fatalf("Power[0]=%f want=25", pow[0])
	}

	phase := Phase(bins)
	if math.Abs(phase[0]-math.Atan2(4, 3)) > 1e-12 {
		t.Fatalf("Phase[0]=%f mismatch", phase[0])
	}
}

func TestMagnitudeEmpty(t *testing.T) {
	if Magnitude(nil) != nil || Power(nil) != nil || Phase(nil) != nil {
		t.Fatal("expected nil output for empty input")
	}
}

func TestTransformMatchesNaiveDFT(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 8, 12, 64, 100, 256, 441} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			x := testutil.DeterministicNoise(int64(n), 1, n)

			got, err := Transform(x)
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}

			testutil.RequireComplexNearlyEqual(t, got, testutil.NaiveDFT(x), 1e-8)
		})
	}
}

func TestTransformEmpty(t *testing.T) {
	if _, err := Transform(nil); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("Transform(nil) error = %v, want ErrEmptySignal", err)
	}
}

func TestTransformDoesNotModifyInput(t *testing.T) {
	x := testutil.Ramp(16)
	want := testutil.Ramp(16)

	if _, err := Transform(x); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, x, want, 0)
}

func TestFrequencies(t *testing.T) {
	tests := []struct {
		name string
		n    int
		rate int
		want []float64
	}{
		{name: "even", n: 4, rate: 8, want: []float64{0, 2, -4, -2}},
		{name: "odd", n: 5, rate: 10, want: []float64{0, 2, 4, -4, -2}},
		{name: "single", n: 1, rate: 44100, want: []float64{0}},
		{name: "empty", n: 0, rate: 44100, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireSliceNearlyEqual(t, Frequencies(tt.n, tt.rate), tt.want, 1e-12)
		})
	}
}

func TestAnalyzeSinePeak(t *testing.T) {
	tests := []struct {
		name   string
		freq   float64
		rate   int
		length int
	}{
		{name: "pow2", freq: 1000, rate: 8000, length: 64},
		{name: "non-pow2", freq: 50, rate: 1000, length: 100},
		{name: "cd-rate", freq: 441, rate: 44100, length: 4400},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Analyze(testutil.DeterministicSine(tt.freq, tt.rate, 1, tt.length), tt.rate)
			if err != nil {
				t.Fatalf("Analyze: %v", err)
			}

			if res.Len() != tt.length || len(res.Frequencies) != tt.length || len(res.Bins) != tt.length {
				t.Fatalf("length mismatch: %d/%d/%d want %d", res.Len(), len(res.Frequencies), len(res.Bins), tt.length)
			}

			_, peak, mag, ok := res.Peak()
			if !ok {
				t.Fatal("no peak")
			}

			if math.Abs(peak-tt.freq) > res.BinWidth() {
				t.Fatalf("peak at %v Hz, want %v Hz within %v", peak, tt.freq, res.BinWidth())
			}

			if math.Abs(mag-float64(tt.length)/2) > 1e-6 {
				t.Fatalf("peak magnitude %v, want %v", mag, float64(tt.length)/2)
			}
		})
	}
}

func TestAnalyzeDC(t *testing.T) {
	for _, n := range []int{10, 16} {
		res, err := Analyze(testutil.DC(0.3, n), 100)
		if err != nil {
			t.Fatal(err)
		}

		if math.Abs(res.Magnitudes[0]-0.3*float64(n)) > 1e-9 {
			t.Fatalf("n=%d: DC bin %v, want %v", n, res.Magnitudes[0], 0.3*float64(n))
		}

		for k := 1; k < n; k++ {
			if res.Magnitudes[k] > 1e-9 {
				t.Fatalf("n=%d: bin %d = %v, want ~0", n, k, res.Magnitudes[k])
			}
		}
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil, 44100); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("empty: got %v, want ErrEmptySignal", err)
	}

	if _, err := Analyze([]float64{1}, 0); !errors.Is(err, ErrInvalidSampleRate) {
		t.Fatalf("rate: got %v, want ErrInvalidSampleRate", err)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	x := testutil.DeterministicNoise(7, 1, 300)

	a, err := Analyze(x, 48000)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Analyze(x, 48000)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, a.Magnitudes, b.Magnitudes, 0)
	testutil.RequireSliceNearlyEqual(t, a.Frequencies, b.Frequencies, 0)
}

func TestOneSided(t *testing.T) {
	for _, tt := range []struct {
		n    int
		want int
	}{{8, 5}, {5, 3}, {1, 1}} {
		res, err := Analyze(testutil.Ramp(tt.n), 1000)
		if err != nil {
			t.Fatal(err)
		}

		one := res.OneSided()
		if one.Len() != tt.want || len(one.Bins) != tt.want {
			t.Fatalf("n=%d: one-sided length %d, want %d", tt.n, one.Len(), tt.want)
		}

		for k := 1; k < one.Len(); k++ {
			if one.Frequencies[k] <= one.Frequencies[k-1] {
				t.Fatalf("n=%d: frequencies not ascending: %v", tt.n, one.Frequencies)
			}
		}

		if one.Magnitudes[0] != res.Magnitudes[0] {
			t.Fatalf("n=%d: DC magnitude changed", tt.n)
		}

		last := one.Len() - 1
		if one.Magnitudes[last] != res.Magnitudes[last] {
			t.Fatalf("n=%d: bin %d magnitude changed", tt.n, last)
		}
	}
}

func TestOneSidedKeepsNyquist(t *testing.T) {
	// Alternating samples put all energy in the Nyquist bin.
	res, err := Analyze([]float64{1, -1, 1, -1, 1, -1, 1, -1}, 8000)
	if err != nil {
		t.Fatal(err)
	}

	if res.Frequencies[4] != -4000 {
		t.Fatalf("full result Nyquist frequency=%v, want -4000", res.Frequencies[4])
	}

	one := res.OneSided()
	if one.Len() != 5 {
		t.Fatalf("one-sided length %d, want 5", one.Len())
	}
	if one.Frequencies[4] != 4000 {
		t.Fatalf("one-sided Nyquist frequency=%v, want +4000", one.Frequencies[4])
	}
	if math.Abs(one.Magnitudes[4]-8) > 1e-9 {
		t.Fatalf("Nyquist magnitude=%v, want 8", one.Magnitudes[4])
	}

	idx, hz, mag, ok := res.Peak()
	if !ok || idx != 4 || hz != 4000 || math.Abs(mag-8) > 1e-9 {
		t.Fatalf("Peak=(%d, %v, %v, %v), want (4, 4000, 8, true)", idx, hz, mag, ok)
	}
}

func TestMagnitudesDB(t *testing.T) {
	res := Result{Magnitudes: []float64{1, 10, 0}, Frequencies: []float64{0, 1, 2}, SampleRate: 3}

	db := res.MagnitudesDB(1, -120)
	testutil.RequireSliceNearlyEqual(t, db, []float64{0, 20, -120}, 1e-12)
}

func TestBinWidth(t *testing.T) {
	res, err := Analyze(make([]float64, 512), 44100)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(res.BinWidth()-44100.0/512) > 1e-12 {
		t.Fatalf("BinWidth=%v", res.BinWidth())
	}

	if (Result{}).BinWidth() != 0 {
		t.Fatal("empty result should have zero bin width")
	}
}

func TestPeakEmpty(t *testing.T) {
	if _, _, _, ok := (Result{}).Peak(); ok {
		t.Fatal("empty result should have no peak")
	}
}
