// ABOUTME: Audio source abstraction for encoding from files or a test tone
// ABOUTME: Supports MP3, FLAC and raw PCM inputs with automatic decoding
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source provides interleaved float32 PCM samples in the -1..1 range.
type Source interface {
	// Read fills samples with interleaved PCM and returns the number of
	// samples written. Returns io.EOF once the source is exhausted.
	Read(samples []float32) (int, error)
	// SampleRate returns the source sample rate
	SampleRate() int
	// Channels returns the number of channels
	Channels() int
	// Close closes the source
	Close() error
}

// Open creates a source from a file path based on its extension. Raw
// ".pcm" input (signed 16-bit little-endian, interleaved) needs the rate
// and channel count supplied by the caller.
func Open(path string, rate, channels int) (Source, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		return NewMP3(path)
	case ".flac":
		return NewFLAC(path)
	case ".pcm", ".raw":
		return NewPCM(path, rate, channels)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .flac, .pcm)", ext)
	}
}
