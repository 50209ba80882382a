package cepstral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestHzToMel(t *testing.T) {
	tests := []struct {
		hz   float64
		want float64
	}{
		{0, 0},
		{500, 7.5},
		{1000, 15},
		{6400, 42},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, HzToMel(tt.hz), 1e-9, "HzToMel(%v)", tt.hz)
		assert.InDelta(t, tt.hz, MelToHz(tt.want), 1e-9, "MelToHz(%v)", tt.want)
	}
}

func TestMelRoundTrip(t *testing.T) {
	for _, hz := range []float64{20, 440, 999, 1001, 8000, 22050} {
		assert.InDelta(t, hz, MelToHz(HzToMel(hz)), 1e-9)
	}
}

func TestMelFrequenciesAscending(t *testing.T) {
	freqs := melFrequencies(130, 0, 11025)
	require.Len(t, freqs, 130)
	assert.InDelta(t, 0, freqs[0], 1e-9)
	assert.InDelta(t, 11025, freqs[129], 1e-6)

	for i := 1; i < len(freqs); i++ {
		assert.Greater(t, freqs[i], freqs[i-1])
	}
}

func TestMelFilterbankShape(t *testing.T) {
	bank := melFilterbank(22050, 2048, 40, 0, 11025)

	rows, cols := bank.Dims()
	require.Equal(t, 40, rows)
	require.Equal(t, 1025, cols)

	for m := range rows {
		row := mat.Row(nil, m, bank)
		peak := 0.0
		for _, w := range row {
			require.GreaterOrEqual(t, w, 0.0)
			peak = math.Max(peak, w)
		}
		assert.Greater(t, peak, 0.0, "filter %d is empty", m)
	}
}

func TestDCTMatrixOrthonormal(t *testing.T) {
	const n = 8

	d := dctMatrix(n, n)

	var prod mat.Dense
	prod.Mul(d, d.T())

	for i := range n {
		for j := range n {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.InDelta(t, want, prod.At(i, j), 1e-12, "(%d,%d)", i, j)
		}
	}
}
