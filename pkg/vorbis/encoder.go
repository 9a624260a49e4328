// ABOUTME: Vorbis encoder session driving an external analysis engine
// ABOUTME: Handles init/teardown ordering, packet staging and end-of-stream drain
package vorbis

import (
	"fmt"
	"log"
	"time"
)

// Ident is written into the comment header's ENCODER field.
const Ident = "vorbis-go 1.2.0"

// Encoder is one encoding session. It owns the engine state, the header
// blob and the packet staging buffer. Sessions are not safe for concurrent
// use; callers serialize all calls themselves.
type Encoder struct {
	engine  Engine
	cfg     Config
	header  []byte
	staging *packetBuffer

	analysisUp bool
	blockUp    bool
	eos        bool
	closed     bool
	fail       error // first fatal per-call error; session unusable after
}

// New creates an encoder session backed by the system libvorbis and
// libvorbisenc libraries.
func New(cfg Config) (*Encoder, error) {
	eng, err := newLibEngine()
	if err != nil {
		return nil, err
	}
	return NewWithEngine(cfg, eng)
}

// NewWithEngine creates an encoder session on an explicit engine. On error
// every resource acquired up to the failure point has been released.
func NewWithEngine(cfg Config, eng Engine) (*Encoder, error) {
	if err := cfg.validate(); err != nil {
		eng.ClearInfo()
		return nil, err
	}
	e := &Encoder{
		engine:  eng,
		cfg:     cfg,
		staging: newPacketBuffer(cfg.StagingCapacity),
	}
	if err := e.init(); err != nil {
		e.teardown()
		return nil, err
	}
	return e, nil
}

func (e *Encoder) init() error {
	if err := configure(e.engine, e.cfg); err != nil {
		return fmt.Errorf("encoder setup: %w", err)
	}
	if err := e.engine.InitAnalysis(); err != nil {
		return fmt.Errorf("analysis init: %w", err)
	}
	e.analysisUp = true
	if err := e.engine.InitBlock(); err != nil {
		return fmt.Errorf("block init: %w", err)
	}
	e.blockUp = true

	ident, comment, setup, err := e.engine.HeaderOut(Ident)
	if err != nil {
		return fmt.Errorf("header packets: %w", err)
	}
	blob, err := assembleHeader(ident, comment, setup)
	if err != nil {
		return err
	}
	e.header = blob
	return nil
}

// CodecHeader returns the extradata blob: the three setup packets
// concatenated with Xiph lacing. It is built once at init and immutable.
func (e *Encoder) CodecHeader() []byte {
	return e.header
}

// Channels returns the configured channel count.
func (e *Encoder) Channels() int { return e.cfg.Channels }

// SampleRate returns the configured sample rate.
func (e *Encoder) SampleRate() int { return e.cfg.SampleRate }

// Encode submits one block of interleaved samples and returns at most one
// encoded packet, copied into out. samples must hold exactly
// FrameSize*Channels values, or be nil to signal end of stream. A nil
// block after end of stream only drains; signalling end of stream twice is
// a no-op.
//
// n == 0 with a nil error means no packet is ready yet; that is normal
// encoder latency, not an error. pts is the packet's presentation
// timestamp derived from its granule position.
func (e *Encoder) Encode(samples []float32, out []byte) (n int, pts time.Duration, err error) {
	if e.closed {
		return 0, 0, fmt.Errorf("%w: encoder is closed", ErrInvalid)
	}
	if e.fail != nil {
		return 0, 0, e.fail
	}

	if samples != nil {
		if len(samples) != FrameSize*e.cfg.Channels {
			return 0, 0, fmt.Errorf("%w: need %d samples per block, got %d",
				ErrInvalid, FrameSize*e.cfg.Channels, len(samples))
		}
		bufs := e.engine.Buffer(FrameSize)
		reshape(bufs, samples, e.cfg.Channels, FrameSize)
		if err := e.engine.Wrote(FrameSize); err != nil {
			return 0, 0, err
		}
	} else if !e.eos {
		if err := e.engine.Wrote(0); err != nil {
			return 0, 0, err
		}
		e.eos = true
	}

	if err := e.stagePending(); err != nil {
		e.fail = err
		return 0, 0, err
	}

	n, granule, err := e.staging.pop(out)
	if err != nil {
		log.Printf("vorbis: %v", err)
		e.fail = err
		return 0, 0, err
	}
	if n == 0 {
		return 0, 0, nil
	}
	pts = time.Duration(granule) * time.Second / time.Duration(e.cfg.SampleRate)
	return n, pts, nil
}

// stagePending pulls every packet the engine has ready into the staging
// buffer. The engine buffers internally across calls, so one submitted
// block may yield zero packets or several.
func (e *Encoder) stagePending() error {
	for {
		more, err := e.engine.NextBlock()
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
		if err := e.engine.Analyze(); err != nil {
			return err
		}
		if err := e.engine.AddBlock(); err != nil {
			return err
		}
		for {
			p, ok, err := e.engine.FlushPacket()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if err := e.staging.push(p); err != nil {
				log.Printf("vorbis: %v", err)
				return err
			}
		}
	}
}

// Close releases all engine state in reverse order of acquisition. It is
// safe after a partially failed init and safe to call more than once.
func (e *Encoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true

	// Tell the engine this is end of stream, unless already signalled.
	if e.analysisUp && !e.eos {
		if err := e.engine.Wrote(0); err != nil {
			log.Printf("vorbis: end-of-stream on close: %v", err)
		}
		e.eos = true
	}
	e.teardown()
	return nil
}

func (e *Encoder) teardown() {
	if e.blockUp {
		e.engine.ClearBlock()
		e.blockUp = false
	}
	if e.analysisUp {
		e.engine.ClearAnalysis()
		e.analysisUp = false
	}
	e.engine.ClearInfo()
	e.header = nil
}
