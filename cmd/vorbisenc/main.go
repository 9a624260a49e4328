// ABOUTME: Entry point for the vorbisenc command-line encoder
// ABOUTME: Decodes an input file and writes a framed Vorbis packet stream
package main

import (
	"bufio"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/oggstream/vorbis-go/internal/source"
	"github.com/oggstream/vorbis-go/pkg/audio/resample"
	"github.com/oggstream/vorbis-go/pkg/vorbis"
)

// qualityUnset marks the -quality flag as not given.
const qualityUnset = -1000.0

var (
	inPath      = flag.String("in", "", "Input file (.mp3, .flac, .pcm); empty generates a test tone")
	outPath     = flag.String("out", "out.vps", "Output file for the framed packet stream")
	presetPath  = flag.String("preset", "", "YAML preset file with encoder settings")
	bitrate     = flag.Int("bitrate", 0, "Target bitrate in bits/s (0 = quality-based VBR)")
	minBitrate  = flag.Int("minrate", 0, "Minimum bitrate bound in bits/s (0 = no bound)")
	maxBitrate  = flag.Int("maxrate", 0, "Maximum bitrate bound in bits/s (0 = no bound)")
	quality     = flag.Float64("quality", qualityUnset, "VBR quality, -1..10 (unset = 3)")
	cutoff      = flag.Int("cutoff", 0, "Low-pass cutoff frequency in Hz (0 = none)")
	impulseBias = flag.Float64("iblock", 0, "Impulse block bias, -15..0 (0 = library default)")
	encodeRate  = flag.Int("rate", 0, "Resample to this rate before encoding (0 = source rate)")
	pcmRate     = flag.Int("pcm-rate", 44100, "Sample rate of raw .pcm input")
	pcmChannels = flag.Int("pcm-channels", 2, "Channel count of raw .pcm input")
	toneSeconds = flag.Float64("duration", 5, "Test tone length in seconds when no input is given")
)

func main() {
	flag.Parse()

	if *presetPath != "" {
		p, err := loadPreset(*presetPath)
		if err != nil {
			log.Fatalf("preset: %v", err)
		}
		applyPreset(p)
	}

	src, err := openSource()
	if err != nil {
		log.Fatalf("input: %v", err)
	}
	defer src.Close()

	if err := encode(src); err != nil {
		log.Fatalf("encode: %v", err)
	}
}

// applyPreset fills settings from the preset for every flag the user did
// not set explicitly on the command line.
func applyPreset(p *Preset) {
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if !set["in"] && p.Input != "" {
		*inPath = p.Input
	}
	if !set["out"] && p.Output != "" {
		*outPath = p.Output
	}
	if !set["bitrate"] && p.Bitrate != 0 {
		*bitrate = p.Bitrate
	}
	if !set["minrate"] && p.MinBitrate != 0 {
		*minBitrate = p.MinBitrate
	}
	if !set["maxrate"] && p.MaxBitrate != 0 {
		*maxBitrate = p.MaxBitrate
	}
	if !set["quality"] && p.Quality != nil {
		*quality = *p.Quality
	}
	if !set["cutoff"] && p.Cutoff != 0 {
		*cutoff = p.Cutoff
	}
	if !set["iblock"] && p.ImpulseBias != 0 {
		*impulseBias = p.ImpulseBias
	}
	if !set["rate"] && p.Rate != 0 {
		*encodeRate = p.Rate
	}
}

func openSource() (source.Source, error) {
	if *inPath == "" {
		log.Printf("No input given, encoding a %gs test tone", *toneSeconds)
		return source.NewTone(*toneSeconds), nil
	}
	return source.Open(*inPath, *pcmRate, *pcmChannels)
}

func encode(src source.Source) error {
	rate := src.SampleRate()
	channels := src.Channels()

	var rs *resample.Resampler
	if *encodeRate > 0 && *encodeRate != rate {
		rs = resample.New(rate, *encodeRate, channels)
		log.Printf("Resampling %d Hz -> %d Hz", rate, *encodeRate)
		rate = *encodeRate
	}

	cfg := vorbis.Config{
		Channels:    channels,
		SampleRate:  rate,
		Bitrate:     *bitrate,
		MinBitrate:  *minBitrate,
		MaxBitrate:  *maxBitrate,
		Cutoff:      *cutoff,
		ImpulseBias: *impulseBias,
	}
	if *quality != qualityUnset {
		cfg.UseQuality = true
		cfg.Quality = float32(*quality)
	}

	enc, err := vorbis.New(cfg)
	if err != nil {
		return err
	}
	defer enc.Close()

	f, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	// Stream layout: the header blob once, then each packet, both
	// length-prefixed. A container writer would store the blob as
	// extradata and the packets as-is.
	if err := writeChunk(w, enc.CodecHeader()); err != nil {
		return err
	}

	blockSamples := vorbis.FrameSize * channels
	out := make([]byte, 8192)
	packets := 0

	nextBlock := blockFeeder(src, rs, blockSamples)
	for {
		b, err := nextBlock()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		n, _, err := enc.Encode(b, out)
		if err != nil {
			return err
		}
		if n > 0 {
			if err := writeChunk(w, out[:n]); err != nil {
				return err
			}
			packets++
		}
	}

	// End of stream: drain the remaining packets.
	for {
		n, _, err := enc.Encode(nil, out)
		if err != nil {
			return err
		}
		if n == 0 {
			break
		}
		if err := writeChunk(w, out[:n]); err != nil {
			return err
		}
		packets++
	}

	if err := w.Flush(); err != nil {
		return err
	}
	log.Printf("Wrote %d packets and a %d byte header to %s",
		packets, len(enc.CodecHeader()), *outPath)
	return nil
}

// blockFeeder returns a function yielding full interleaved blocks of
// blockSamples samples, resampling if needed and zero-padding the final
// partial block.
func blockFeeder(src source.Source, rs *resample.Resampler, blockSamples int) func() ([]float32, error) {
	var acc []float32
	raw := make([]float32, 4096)
	var resampled []float32
	done := false

	return func() ([]float32, error) {
		for len(acc) < blockSamples && !done {
			n, err := src.Read(raw)
			if err == io.EOF {
				done = true
				break
			}
			if err != nil {
				return nil, err
			}
			chunk := raw[:n]
			if rs != nil {
				need := rs.OutputSamplesNeeded(n) + src.Channels()
				if cap(resampled) < need {
					resampled = make([]float32, need)
				}
				m := rs.Resample(chunk, resampled[:need])
				chunk = resampled[:m]
			}
			acc = append(acc, chunk...)
		}

		if len(acc) == 0 {
			return nil, io.EOF
		}
		if len(acc) < blockSamples {
			// Pad the tail with silence to a whole block.
			acc = append(acc, make([]float32, blockSamples-len(acc))...)
		}
		block := acc[:blockSamples]
		acc = acc[blockSamples:]
		return block, nil
	}
}

func writeChunk(w io.Writer, data []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}
