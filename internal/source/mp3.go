// ABOUTME: MP3 file source
// ABOUTME: Decodes MP3 to interleaved float32 samples via go-mp3
package source

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/hajimehoshi/go-mp3"

	"github.com/oggstream/vorbis-go/pkg/audio"
)

// MP3 reads from an MP3 file
type MP3 struct {
	file       *os.File
	decoder    *mp3.Decoder
	sampleRate int
}

// NewMP3 creates a new MP3 source
func NewMP3(path string) (*MP3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open MP3 file: %w", err)
	}

	decoder, err := mp3.NewDecoder(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode MP3: %w", err)
	}

	log.Printf("Loaded MP3: %s (sample rate: %d Hz)", path, decoder.SampleRate())

	return &MP3{
		file:       f,
		decoder:    decoder,
		sampleRate: decoder.SampleRate(),
	}, nil
}

func (s *MP3) Read(samples []float32) (int, error) {
	// The decoder outputs interleaved stereo int16, 2 bytes per sample.
	buf := make([]byte, len(samples)*2)
	n, err := io.ReadFull(s.decoder, buf)
	if err == io.ErrUnexpectedEOF {
		err = nil // partial tail read, EOF surfaces on the next call
	}
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("mp3 decode: %w", err)
	}

	numSamples := n / 2
	for i := 0; i < numSamples; i++ {
		sample16 := int16(binary.LittleEndian.Uint16(buf[i*2:]))
		samples[i] = audio.Float32FromInt16(sample16)
	}
	if numSamples == 0 && err == io.EOF {
		return 0, io.EOF
	}
	return numSamples, nil
}

// SampleRate returns the decoder output rate
func (s *MP3) SampleRate() int { return s.sampleRate }

// Channels returns 2; the MP3 decoder always outputs stereo
func (s *MP3) Channels() int { return 2 }

func (s *MP3) Close() error {
	return s.file.Close()
}
