// ABOUTME: Audio type definitions
// ABOUTME: Defines stream formats and interleaved float sample helpers
package audio

// Format describes an audio stream
type Format struct {
	Codec       string
	SampleRate  int
	Channels    int
	CodecHeader []byte // Out-of-band setup data (extradata) for Vorbis, FLAC, etc.
}

// Float32FromInt16 converts a 16-bit PCM sample to the -1..1 float range
func Float32FromInt16(sample int16) float32 {
	return float32(sample) / 32768.0
}

// Int16FromFloat32 converts a -1..1 float sample to 16-bit PCM, clamping
// out-of-range input
func Int16FromFloat32(sample float32) int16 {
	scaled := sample * 32767.0
	if scaled > 32767.0 {
		return 32767
	}
	if scaled < -32768.0 {
		return -32768
	}
	return int16(scaled)
}

// Frames returns the number of whole frames in an interleaved sample slice
func Frames(samples []float32, channels int) int {
	if channels < 1 {
		return 0
	}
	return len(samples) / channels
}
