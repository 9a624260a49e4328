// ABOUTME: Resampling package for sample rate conversion
// ABOUTME: Provides a linear interpolation resampler for float32 audio
// Package resample converts interleaved float32 audio between sample
// rates using linear interpolation. It is used by the encoding tools to
// bring arbitrary-rate sources to a requested encode rate.
package resample
