// Package cepstral derives mel-frequency cepstral coefficient (MFCC)
// matrices from a windowed signal.
//
// The feature computation sits behind the [Extractor] interface so callers
// can substitute their own routine. [Analyzer] hands the extractor the
// signal and rate unchanged, asks for [NumCoefficients] rows and passes the
// matrix through; any rejection is reported as a [*CollaboratorError]
// carrying the signal length and rate.
//
// [MelExtractor] is the default extractor. It frames the signal with a
// centred sliding window, maps each frame's power spectrum onto a
// Slaney-normalised mel filterbank, converts to decibels and keeps the
// leading coefficients of an orthonormal DCT-II.
package cepstral
