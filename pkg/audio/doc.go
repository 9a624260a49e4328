// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and interleaved float32 sample conversions
// Package audio provides fundamental audio types shared by the encoder
// bridge and the command-line tools.
//
// Samples are carried as interleaved float32 in the -1..1 range, the
// representation the Vorbis analysis stage consumes natively. Utilities
// convert between 16-bit PCM and float:
//
//	format := audio.Format{
//	    Codec:      "vorbis",
//	    SampleRate: 44100,
//	    Channels:   2,
//	}
//
//	f := audio.Float32FromInt16(sample16)
package audio
