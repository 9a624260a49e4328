// ABOUTME: Header blob assembly for container extradata
// ABOUTME: Concatenates the three Vorbis setup packets with Xiph lacing
package vorbis

import "fmt"

// headerTag is the leading extradata byte: two explicit laced lengths
// follow, the third segment's length is implied by the total size.
const headerTag = 2

// headerPadding is extra capacity beyond the exact blob size so downstream
// readers can safely over-read.
const headerPadding = 8

// xiphLen returns the bytes needed for a laced length plus the segment
// itself: one length byte per full 255 of length, one terminal byte, then
// the payload.
func xiphLen(n int) int {
	return 1 + n/255 + n
}

// xiphLace writes the laced encoding of n into dst and returns the number
// of bytes written.
func xiphLace(dst []byte, n int) int {
	i := 0
	for ; n >= 255; n -= 255 {
		dst[i] = 0xFF
		i++
	}
	dst[i] = byte(n)
	return i + 1
}

// assembleHeader builds the extradata blob from the identification,
// comment and codebook setup packets. The blob length is exact; the
// backing array carries headerPadding spare capacity.
func assembleHeader(ident, comment, setup []byte) ([]byte, error) {
	size := 1 + xiphLen(len(ident)) + xiphLen(len(comment)) + len(setup)
	p := make([]byte, size, size+headerPadding)

	p[0] = headerTag
	offset := 1
	offset += xiphLace(p[offset:], len(ident))
	offset += xiphLace(p[offset:], len(comment))
	offset += copy(p[offset:], ident)
	offset += copy(p[offset:], comment)
	offset += copy(p[offset:], setup)

	if offset != size {
		return nil, fmt.Errorf("%w: header blob wrote %d of %d bytes", ErrInternal, offset, size)
	}
	return p, nil
}
