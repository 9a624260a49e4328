// ABOUTME: FLAC file source
// ABOUTME: Decodes FLAC frames to interleaved float32 samples via mewkiz/flac
package source

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mewkiz/flac"
)

// FLAC reads from a FLAC file
type FLAC struct {
	file       *os.File
	stream     *flac.Stream
	sampleRate int
	channels   int
	bitDepth   int

	// leftover interleaved samples from a partially consumed frame
	pending []float32
}

// NewFLAC creates a new FLAC source
func NewFLAC(path string) (*FLAC, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open FLAC file: %w", err)
	}

	stream, err := flac.New(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode FLAC: %w", err)
	}

	info := stream.Info
	log.Printf("Loaded FLAC: %s (sample rate: %d Hz, channels: %d, bit depth: %d)",
		path, info.SampleRate, info.NChannels, info.BitsPerSample)

	return &FLAC{
		file:       f,
		stream:     stream,
		sampleRate: int(info.SampleRate),
		channels:   int(info.NChannels),
		bitDepth:   int(info.BitsPerSample),
	}, nil
}

func (s *FLAC) Read(samples []float32) (int, error) {
	written := 0

	for written < len(samples) {
		if len(s.pending) > 0 {
			n := copy(samples[written:], s.pending)
			s.pending = s.pending[n:]
			written += n
			continue
		}

		frame, err := s.stream.ParseNext()
		if err != nil {
			if err == io.EOF {
				if written == 0 {
					return 0, io.EOF
				}
				return written, nil
			}
			return written, fmt.Errorf("flac decode: %w", err)
		}

		// Interleave the frame's planar subframes, scaling by bit depth.
		scale := float32(int32(1) << (s.bitDepth - 1))
		block := int(frame.BlockSize)
		s.pending = make([]float32, 0, block*s.channels)
		for i := 0; i < block; i++ {
			for ch := 0; ch < s.channels; ch++ {
				s.pending = append(s.pending, float32(frame.Subframes[ch].Samples[i])/scale)
			}
		}
	}

	return written, nil
}

// SampleRate returns the stream sample rate
func (s *FLAC) SampleRate() int { return s.sampleRate }

// Channels returns the stream channel count
func (s *FLAC) Channels() int { return s.channels }

func (s *FLAC) Close() error {
	return s.file.Close()
}
