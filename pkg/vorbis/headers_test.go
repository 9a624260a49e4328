// ABOUTME: Tests for Xiph lacing and header blob assembly
// ABOUTME: Verifies byte-exact layout, sizes and round-trip decoding
package vorbis

import (
	"bytes"
	"testing"
)

func TestXiphLen(t *testing.T) {
	tests := []struct {
		n        int
		expected int
	}{
		{0, 1},
		{1, 2},
		{254, 255},
		{255, 257},
		{256, 258},
		{510, 512},
		{511, 513},
	}

	for _, tt := range tests {
		if got := xiphLen(tt.n); got != tt.expected {
			t.Errorf("xiphLen(%d) = %d, want %d", tt.n, got, tt.expected)
		}
	}
}

// unlace decodes one laced length: 255 for each 0xFF byte plus the final
// byte. Returns the length and the number of bytes consumed.
func unlace(p []byte) (int, int) {
	n := 0
	i := 0
	for ; p[i] == 0xFF; i++ {
		n += 255
	}
	return n + int(p[i]), i + 1
}

func TestXiphLaceRoundTrip(t *testing.T) {
	for _, length := range []int{0, 1, 254, 255, 256, 510, 511} {
		dst := make([]byte, length/255+1)
		written := xiphLace(dst, length)
		if written != len(dst) {
			t.Errorf("xiphLace(%d) wrote %d bytes, want %d", length, written, len(dst))
		}
		decoded, consumed := unlace(dst)
		if decoded != length || consumed != written {
			t.Errorf("lace/unlace(%d) = (%d, %d), want (%d, %d)",
				length, decoded, consumed, length, written)
		}
	}
}

func TestAssembleHeader(t *testing.T) {
	tests := []struct {
		name    string
		ident   []byte
		comment []byte
		setup   []byte
	}{
		{"small", []byte{1, 2, 3}, []byte{4, 5}, []byte{6, 7, 8, 9}},
		{"empty comment", []byte{1}, nil, []byte{9}},
		{"comment at 255 boundary", bytes.Repeat([]byte{0xAA}, 255), bytes.Repeat([]byte{0xBB}, 256), []byte{1, 2}},
		{"large segments", bytes.Repeat([]byte{1}, 600), bytes.Repeat([]byte{2}, 510), bytes.Repeat([]byte{3}, 3000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := assembleHeader(tt.ident, tt.comment, tt.setup)
			if err != nil {
				t.Fatalf("assembleHeader() failed: %v", err)
			}

			want := 1 + xiphLen(len(tt.ident)) + xiphLen(len(tt.comment)) + len(tt.setup)
			if len(blob) != want {
				t.Fatalf("blob size %d, want %d", len(blob), want)
			}
			if blob[0] != headerTag {
				t.Fatalf("tag byte %d, want %d", blob[0], headerTag)
			}

			// A reader knowing only the total length and the tag must
			// recover all three segments unambiguously.
			off := 1
			len1, n := unlace(blob[off:])
			off += n
			len2, n := unlace(blob[off:])
			off += n
			seg1 := blob[off : off+len1]
			seg2 := blob[off+len1 : off+len1+len2]
			seg3 := blob[off+len1+len2:]

			if !bytes.Equal(seg1, tt.ident) {
				t.Errorf("identification segment mismatch")
			}
			if !bytes.Equal(seg2, tt.comment) && len(tt.comment) > 0 {
				t.Errorf("comment segment mismatch")
			}
			if !bytes.Equal(seg3, tt.setup) {
				t.Errorf("codebook segment mismatch")
			}
		})
	}
}

func TestAssembleHeaderPadding(t *testing.T) {
	blob, err := assembleHeader([]byte{1}, []byte{2}, []byte{3})
	if err != nil {
		t.Fatalf("assembleHeader() failed: %v", err)
	}
	if cap(blob)-len(blob) < headerPadding {
		t.Errorf("blob spare capacity %d, want at least %d", cap(blob)-len(blob), headerPadding)
	}
}
