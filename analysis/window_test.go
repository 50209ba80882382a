package analysis

import (
	"testing"

	"github.com/cwbudde/algo-spectra/dsp/signal"
	"github.com/cwbudde/algo-spectra/dsp/window"
	"github.com/cwbudde/algo-spectra/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSignal(t *testing.T, samples []float64, rate int) *signal.Signal {
	t.Helper()
	sig, err := signal.New(samples, rate)
	require.NoError(t, err)
	return &sig
}

func TestSelectWindowNoSignal(t *testing.T) {
	_, err := SelectWindow(nil, WindowSpec{Type: window.TypeHann, Length: 16})
	assert.ErrorIs(t, err, ErrNoSignal)
}

func TestSelectWindowClamping(t *testing.T) {
	sig := mustSignal(t, testutil.Ramp(10), 100)

	tests := []struct {
		name      string
		spec      WindowSpec
		effective int
		first     float64
		clamped   bool
	}{
		{"fits", WindowSpec{Type: window.TypeRectangular, Length: 4, Offset: 2}, 4, 3, false},
		{"longer than signal", WindowSpec{Type: window.TypeRectangular, Length: 100}, 10, 1, true},
		{"runs past end", WindowSpec{Type: window.TypeRectangular, Length: 8, Offset: 6}, 4, 7, true},
		{"offset at end", WindowSpec{Type: window.TypeRectangular, Length: 8, Offset: 10}, 0, 0, true},
		{"offset past end", WindowSpec{Type: window.TypeHamming, Length: 8, Offset: 50}, 0, 0, true},
		{"zero length", WindowSpec{Type: window.TypeHann, Length: 0}, 0, 0, false},
		{"negative length", WindowSpec{Type: window.TypeHann, Length: -3}, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := SelectWindow(sig, tt.spec)
			require.NoError(t, err)

			assert.Equal(t, tt.effective, w.EffectiveLength)
			assert.Equal(t, tt.spec.Length, w.RequestedLength)
			assert.Len(t, w.Samples, tt.effective)
			assert.Equal(t, tt.clamped, w.Clamped())
			assert.Equal(t, 100, w.SampleRate)

			if tt.effective > 0 {
				assert.InDelta(t, tt.first, w.Samples[0], 1e-12)
			}
		})
	}
}

func TestSelectWindowNoneIsUntapered(t *testing.T) {
	sig := mustSignal(t, testutil.Ramp(10), 100)

	none, err := SelectWindow(sig, WindowSpec{Type: window.TypeNone, Length: 6, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, []float64{3, 4, 5, 6, 7, 8}, none.Samples)
}

func TestSelectWindowUnknownTypeBehavesAsNone(t *testing.T) {
	sig := mustSignal(t, testutil.Ramp(10), 100)

	bogus, ok := window.ParseType("bogus")
	require.False(t, ok)

	got, err := SelectWindow(sig, WindowSpec{Type: bogus, Length: 100})
	require.NoError(t, err)

	none, err := SelectWindow(sig, WindowSpec{Type: window.TypeNone, Length: 100})
	require.NoError(t, err)

	assert.Equal(t, none.Samples, got.Samples)
	assert.Equal(t, sig.Samples, got.Samples)

	outOfRange, err := SelectWindow(sig, WindowSpec{Type: window.Type(99), Length: 100})
	require.NoError(t, err)
	assert.Equal(t, sig.Samples, outOfRange.Samples)
}

func TestSelectWindowAppliesTaper(t *testing.T) {
	sig := mustSignal(t, testutil.DC(1, 4), 4)

	w, err := SelectWindow(sig, WindowSpec{Type: window.TypeHamming, Length: 4})
	require.NoError(t, err)

	testutil.RequireSliceNearlyEqual(t, w.Samples, []float64{0.08, 0.77, 0.77, 0.08}, 1e-9)
}

func TestSelectWindowDoesNotModifySignal(t *testing.T) {
	sig := mustSignal(t, testutil.DC(1, 16), 16)

	_, err := SelectWindow(sig, WindowSpec{Type: window.TypeHann, Length: 16})
	require.NoError(t, err)

	assert.Equal(t, testutil.DC(1, 16), sig.Samples)
}

func TestOffsetSamples(t *testing.T) {
	assert.Equal(t, 0, OffsetSamples(0, 44100))
	assert.Equal(t, 22050, OffsetSamples(0.5, 44100))
	assert.Equal(t, 441, OffsetSamples(0.01, 44100))
	assert.Equal(t, 0, OffsetSamples(-1, 44100))
	assert.Equal(t, 0, OffsetSamples(1, 0))
}

func TestWindowTimeAxis(t *testing.T) {
	sig := mustSignal(t, testutil.Ramp(10), 4)

	w, err := SelectWindow(sig, WindowSpec{Type: window.TypeRectangular, Length: 3, Offset: 2})
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0.25, 0.5}, w.TimeAxis())
	assert.InDelta(t, 0.5, w.StartTime(), 1e-12)
}
