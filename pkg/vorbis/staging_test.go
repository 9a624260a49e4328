// ABOUTME: Tests for the packet staging buffer
// ABOUTME: Covers FIFO order, overflow determinism and empty consumption
package vorbis

import (
	"bytes"
	"errors"
	"testing"
)

func TestStagingEmptyPop(t *testing.T) {
	b := newPacketBuffer(0)
	dst := make([]byte, 16)

	// Empty consumption is normal, not an error, every time.
	for i := 0; i < 3; i++ {
		n, granule, err := b.pop(dst)
		if err != nil {
			t.Fatalf("pop on empty buffer: %v", err)
		}
		if n != 0 || granule != 0 {
			t.Fatalf("pop on empty buffer = (%d, %d), want (0, 0)", n, granule)
		}
	}
}

func TestStagingFIFO(t *testing.T) {
	b := newPacketBuffer(0)
	packets := []Packet{
		{Data: []byte("first"), GranulePos: 64},
		{Data: []byte("second packet"), GranulePos: 128},
		{Data: []byte{}, GranulePos: 192},
		{Data: bytes.Repeat([]byte{0xCD}, 300), GranulePos: 256},
	}

	for _, p := range packets {
		if err := b.push(p); err != nil {
			t.Fatalf("push failed: %v", err)
		}
	}

	dst := make([]byte, 512)
	for i, p := range packets {
		n, granule, err := b.pop(dst)
		if err != nil {
			t.Fatalf("pop %d failed: %v", i, err)
		}
		if n != len(p.Data) {
			t.Fatalf("pop %d returned %d bytes, want %d", i, n, len(p.Data))
		}
		if !bytes.Equal(dst[:n], p.Data) {
			t.Errorf("pop %d payload mismatch", i)
		}
		if granule != p.GranulePos {
			t.Errorf("pop %d granule %d, want %d", i, granule, p.GranulePos)
		}
	}
	if !b.empty() {
		t.Errorf("buffer not empty after consuming all packets")
	}
}

func TestStagingOverflow(t *testing.T) {
	// Capacity fits exactly two 10-byte payloads with records.
	capacity := 2 * (recordSize + 10)
	b := newPacketBuffer(capacity)
	p := Packet{Data: bytes.Repeat([]byte{1}, 10), GranulePos: 1}

	if err := b.push(p); err != nil {
		t.Fatalf("push 1 failed: %v", err)
	}
	if err := b.push(p); err != nil {
		t.Fatalf("push 2 failed: %v", err)
	}

	// The append that would overflow fails deterministically.
	err := b.push(Packet{Data: []byte{1}, GranulePos: 3})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("push 3 = %v, want ErrOverflow", err)
	}

	// Previously staged packets stay intact and consumable.
	dst := make([]byte, 32)
	for i := 0; i < 2; i++ {
		n, _, err := b.pop(dst)
		if err != nil || n != 10 {
			t.Fatalf("pop %d after overflow = (%d, %v), want (10, nil)", i, n, err)
		}
	}
}

func TestStagingExactCapacity(t *testing.T) {
	capacity := recordSize + 10
	b := newPacketBuffer(capacity)

	// A packet that exactly fills the arena fits.
	if err := b.push(Packet{Data: bytes.Repeat([]byte{7}, 10)}); err != nil {
		t.Fatalf("exact-fit push failed: %v", err)
	}
	// One byte more does not.
	b = newPacketBuffer(capacity)
	err := b.push(Packet{Data: bytes.Repeat([]byte{7}, 11)})
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("oversized push = %v, want ErrOverflow", err)
	}
}

func TestStagingDstTooSmall(t *testing.T) {
	b := newPacketBuffer(0)
	payload := bytes.Repeat([]byte{9}, 40)
	if err := b.push(Packet{Data: payload, GranulePos: 5}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	_, _, err := b.pop(make([]byte, len(payload)-1))
	if !errors.Is(err, ErrOverflow) {
		t.Fatalf("pop into small dst = %v, want ErrOverflow", err)
	}

	// The packet was not consumed.
	n, granule, err := b.pop(make([]byte, len(payload)))
	if err != nil || n != len(payload) || granule != 5 {
		t.Fatalf("pop after failed pop = (%d, %d, %v)", n, granule, err)
	}
}

func TestStagingDefaultCapacity(t *testing.T) {
	b := newPacketBuffer(0)
	if len(b.buf) != DefaultStagingCapacity {
		t.Errorf("default capacity %d, want %d", len(b.buf), DefaultStagingCapacity)
	}
}
