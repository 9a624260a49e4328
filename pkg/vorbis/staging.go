// ABOUTME: Fixed-capacity staging arena for encoded packets
// ABOUTME: FIFO byte buffer holding metadata records ahead of payloads
package vorbis

import (
	"encoding/binary"
	"fmt"
)

// DefaultStagingCapacity is the staging arena size when the configuration
// does not override it. Sized well beyond any realistic in-flight backlog;
// exceeding it indicates a logic error or pathological input, not a
// condition to grow out of.
const DefaultStagingCapacity = 64 * 1024

// Each staged packet is a fixed metadata record followed by the payload:
// payload length (uint32 LE) then granule position (int64 LE).
const recordSize = 12

// packetBuffer is a byte arena holding serialized packets back to back,
// with n marking the end of valid data. Consumption removes the first full
// packet and shifts the remainder down; it is FIFO, not ring-indexed.
type packetBuffer struct {
	buf []byte
	n   int
}

func newPacketBuffer(capacity int) *packetBuffer {
	if capacity <= 0 {
		capacity = DefaultStagingCapacity
	}
	return &packetBuffer{buf: make([]byte, capacity)}
}

// push appends one packet. An append that would exceed capacity fails with
// ErrOverflow and leaves previously staged packets intact.
func (b *packetBuffer) push(p Packet) error {
	need := recordSize + len(p.Data)
	if b.n+need > len(b.buf) {
		return fmt.Errorf("%w: staging buffer full (%d used + %d needed > %d capacity)",
			ErrOverflow, b.n, need, len(b.buf))
	}
	binary.LittleEndian.PutUint32(b.buf[b.n:], uint32(len(p.Data)))
	binary.LittleEndian.PutUint64(b.buf[b.n+4:], uint64(p.GranulePos))
	copy(b.buf[b.n+recordSize:], p.Data)
	b.n += need
	return nil
}

// pop copies the first staged payload into dst and returns its length and
// granule position. An empty buffer returns length 0 with no error; that
// is the normal "no packet ready" case. A dst smaller than the pending
// packet is a caller contract violation reported as ErrOverflow, leaving
// the buffer unchanged.
func (b *packetBuffer) pop(dst []byte) (int, int64, error) {
	if b.n == 0 {
		return 0, 0, nil
	}
	size := int(binary.LittleEndian.Uint32(b.buf))
	granule := int64(binary.LittleEndian.Uint64(b.buf[4:]))
	if size > len(dst) {
		return 0, 0, fmt.Errorf("%w: output buffer too small (%d < %d)",
			ErrOverflow, len(dst), size)
	}
	copy(dst, b.buf[recordSize:recordSize+size])
	b.n -= recordSize + size
	copy(b.buf, b.buf[recordSize+size:recordSize+size+b.n])
	return size, granule, nil
}

func (b *packetBuffer) empty() bool {
	return b.n == 0
}
