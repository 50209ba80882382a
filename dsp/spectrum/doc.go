// Package spectrum computes the discrete Fourier transform of a sampled
// signal and the per-bin data derived from it.
//
// The transform is length preserving: no zero padding is applied, so the
// bin spacing is always sampleRate/N. Power-of-two lengths are transformed
// with an algo-fft plan; any other length falls back to the go-dsp FFT,
// which handles arbitrary sizes. Bins are returned in standard FFT order,
// ascending from DC to Nyquist and then wrapping to negative frequencies.
package spectrum
