// ABOUTME: Sample reshaping from interleaved input to planar analysis buffers
// ABOUTME: Applies the Vorbis channel order mapping for standard layouts
package vorbis

// FrameSize is the number of samples per channel the host submits in each
// encode call. 64 is the least common denominator of the possible Vorbis
// block sizes, so an output packet always starts on an input boundary.
const FrameSize = 64

// channelOrder maps logical Vorbis channel c to the physical input channel
// channelOrder[channels-1][c], for the standard layouts up to 8 channels.
var channelOrder = [8][8]int{
	{0},
	{0, 1},
	{0, 2, 1},
	{0, 1, 2, 3},
	{0, 2, 1, 3, 4},
	{0, 2, 1, 4, 5, 3},
	{0, 2, 1, 5, 6, 4, 3},
	{0, 2, 1, 6, 7, 4, 5, 3},
}

// reshape copies one interleaved block into per-channel planar buffers,
// remapping standard layouts. Channel counts above 8 pass through
// unmapped.
func reshape(dst [][]float32, src []float32, channels, frames int) {
	for c := 0; c < channels; c++ {
		co := c
		if channels <= len(channelOrder) {
			co = channelOrder[channels-1][c]
		}
		out := dst[c]
		for i := 0; i < frames; i++ {
			out[i] = src[i*channels+co]
		}
	}
}
