package window

import (
	"math"
	"testing"
)

func TestAnalyzeRectangular(t *testing.T) {
	props, err := Analyze(Generate(TypeRectangular, 1024))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(props.CoherentGain, 1, 1e-12) {
		t.Fatalf("coherent gain=%v, want 1", props.CoherentGain)
	}

	if !almostEqual(props.ENBW, 1, 1e-12) {
		t.Fatalf("ENBW=%v, want 1", props.ENBW)
	}

	if !almostEqual(props.ScallopLossdB, -3.92, 0.05) {
		t.Fatalf("scallop loss=%v, want ~-3.92 dB", props.ScallopLossdB)
	}

	if !almostEqual(props.Bandwidth3dB, 0.886, 0.02) {
		t.Fatalf("3 dB bandwidth=%v, want ~0.886 bins", props.Bandwidth3dB)
	}

	if !almostEqual(props.FirstNullBins, 1, 0.1) {
		t.Fatalf("first null=%v, want ~1 bin", props.FirstNullBins)
	}

	if !almostEqual(props.HighestSidelobedB, -13.26, 0.3) {
		t.Fatalf("sidelobe=%v, want ~-13.26 dB", props.HighestSidelobedB)
	}
}

func TestAnalyzeHann(t *testing.T) {
	props, err := Analyze(Generate(TypeHann, 1024))
	if err != nil {
		t.Fatal(err)
	}

	if !almostEqual(props.CoherentGain, 0.5, 0.01) {
		t.Fatalf("coherent gain=%v, want ~0.5", props.CoherentGain)
	}

	if !almostEqual(props.ENBW, 1.5, 0.01) {
		t.Fatalf("ENBW=%v, want ~1.5", props.ENBW)
	}

	if !almostEqual(props.FirstNullBins, 2, 0.1) {
		t.Fatalf("first null=%v, want ~2 bins", props.FirstNullBins)
	}

	if !almostEqual(props.HighestSidelobedB, -31.5, 0.5) {
		t.Fatalf("sidelobe=%v, want ~-31.5 dB", props.HighestSidelobedB)
	}
}

func TestAnalyzeOrdersWindowsBySidelobe(t *testing.T) {
	rect, err := Analyze(Generate(TypeRectangular, 512))
	if err != nil {
		t.Fatal(err)
	}

	hamming, err := Analyze(Generate(TypeHamming, 512))
	if err != nil {
		t.Fatal(err)
	}

	flat, err := Analyze(Generate(TypeFlatTop, 512))
	if err != nil {
		t.Fatal(err)
	}

	if !(hamming.HighestSidelobedB < rect.HighestSidelobedB) {
		t.Fatalf("hamming sidelobe %v should be below rectangular %v", hamming.HighestSidelobedB, rect.HighestSidelobedB)
	}

	if !(flat.ScallopLossdB > hamming.ScallopLossdB) {
		t.Fatalf("flat-top scallop %v should be smaller than hamming %v", flat.ScallopLossdB, hamming.ScallopLossdB)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	if _, err := Analyze(nil); err == nil {
		t.Fatal("expected error for empty coefficients")
	}

	if _, err := Analyze([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero coherent gain")
	}
}

func TestAnalyzeSingleCoefficient(t *testing.T) {
	props, err := Analyze([]float64{1})
	if err != nil {
		t.Fatal(err)
	}

	if !math.IsInf(props.HighestSidelobedB, -1) {
		t.Fatalf("flat response should have no sidelobe, got %v", props.HighestSidelobedB)
	}
}
