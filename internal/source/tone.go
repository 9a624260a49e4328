// ABOUTME: Test tone generator source
// ABOUTME: Generates a finite 440Hz stereo sine wave for testing
package source

import (
	"io"
	"math"
)

const (
	toneFrequency  = 440.0 // A4
	toneAmplitude  = 0.5
	toneSampleRate = 44100
	toneChannels   = 2
)

// Tone generates a fixed-length 440Hz sine wave
type Tone struct {
	sampleIndex  uint64
	totalSamples uint64
}

// NewTone creates a tone source producing the given number of seconds of
// audio before reporting EOF
func NewTone(seconds float64) *Tone {
	return &Tone{
		totalSamples: uint64(seconds * toneSampleRate),
	}
}

func (s *Tone) Read(samples []float32) (int, error) {
	if s.sampleIndex >= s.totalSamples {
		return 0, io.EOF
	}

	frames := len(samples) / toneChannels
	remaining := s.totalSamples - s.sampleIndex
	if uint64(frames) > remaining {
		frames = int(remaining)
	}

	for i := 0; i < frames; i++ {
		t := float64(s.sampleIndex+uint64(i)) / toneSampleRate
		sample := float32(math.Sin(2*math.Pi*toneFrequency*t) * toneAmplitude)
		samples[i*2] = sample
		samples[i*2+1] = sample
	}

	s.sampleIndex += uint64(frames)
	return frames * toneChannels, nil
}

// SampleRate returns the generator rate
func (s *Tone) SampleRate() int { return toneSampleRate }

// Channels returns 2
func (s *Tone) Channels() int { return toneChannels }

func (s *Tone) Close() error { return nil }
