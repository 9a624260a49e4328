// ABOUTME: Raw PCM file source
// ABOUTME: Reads signed 16-bit little-endian interleaved samples
package source

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/oggstream/vorbis-go/pkg/audio"
)

// PCM reads headerless signed 16-bit little-endian interleaved samples.
// The caller supplies the rate and channel count the file was captured at.
type PCM struct {
	file       *os.File
	reader     *bufio.Reader
	sampleRate int
	channels   int
}

// NewPCM creates a new raw PCM source
func NewPCM(path string, rate, channels int) (*PCM, error) {
	if rate < 1 || channels < 1 {
		return nil, fmt.Errorf("raw PCM input needs an explicit rate and channel count")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PCM file: %w", err)
	}
	return &PCM{
		file:       f,
		reader:     bufio.NewReader(f),
		sampleRate: rate,
		channels:   channels,
	}, nil
}

func (s *PCM) Read(samples []float32) (int, error) {
	buf := make([]byte, len(samples)*2)
	n, err := io.ReadFull(s.reader, buf)
	if err == io.ErrUnexpectedEOF {
		err = nil
	}
	if err != nil && err != io.EOF {
		return 0, err
	}

	numSamples := n / 2
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(buf[i*2:]))
		samples[i] = audio.Float32FromInt16(sample16)
	}
	if numSamples == 0 {
		return 0, io.EOF
	}
	return numSamples, nil
}

// SampleRate returns the configured sample rate
func (s *PCM) SampleRate() int { return s.sampleRate }

// Channels returns the configured channel count
func (s *PCM) Channels() int { return s.channels }

func (s *PCM) Close() error {
	return s.file.Close()
}
