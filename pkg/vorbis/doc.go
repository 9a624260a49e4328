// ABOUTME: Vorbis encoder bridge package documentation
// ABOUTME: Describes the session model, header framing and staging buffer
// Package vorbis bridges a generic encoder host to the libvorbis
// psychoacoustic encoder. It translates host configuration onto the
// library's setup calls, reshapes interleaved sample blocks into the
// planar layout the analysis stage requires, stages the variable-length
// packets the library emits, and frames the three setup packets into the
// length-prefixed extradata blob container writers expect.
//
// All encoding intelligence lives in the external library, loaded
// dynamically at runtime; this package contains only the plumbing around
// it.
//
// A session is synchronous and single-owner:
//
//	enc, err := vorbis.New(vorbis.Config{Channels: 2, SampleRate: 44100})
//	hdr := enc.CodecHeader()
//	out := make([]byte, 4096)
//	n, pts, err := enc.Encode(block, out) // block: FrameSize*channels samples
//	...
//	n, pts, err = enc.Encode(nil, out)    // end of stream, drain
//	enc.Close()
//
// Encode returns at most one packet per call; n == 0 means no packet is
// ready yet, which is normal encoder latency.
package vorbis
