// Package source turns audio files into mono signals for analysis.
//
// Decoders are looked up by format name in a [Registry]; the default
// registry handles WAV (PCM through go-audio, IEEE float through go-dsp),
// MP3 and FLAC. Every decoder averages the channels of multi-channel
// streams and scales samples to [-1, 1].
package source
