// ABOUTME: Error taxonomy for the Vorbis encoder bridge
// ABOUTME: Maps libvorbis error codes onto closed sentinel errors
package vorbis

import "errors"

var (
	// ErrConfiguration indicates an invalid parameter combination. The
	// session never becomes usable.
	ErrConfiguration = errors.New("vorbis: invalid encoder configuration")

	// ErrResource indicates an allocation or library-load failure.
	ErrResource = errors.New("vorbis: resource unavailable")

	// ErrOverflow indicates the staging buffer capacity was exceeded or a
	// caller-supplied output buffer is smaller than the pending packet.
	// The session is unusable afterwards.
	ErrOverflow = errors.New("vorbis: buffer overflow")

	// ErrInternal indicates the external library reported a bug-class
	// condition or the bridge detected an internal inconsistency.
	ErrInternal = errors.New("vorbis: internal fault")

	// ErrInvalid indicates an invalid argument was rejected.
	ErrInvalid = errors.New("vorbis: invalid argument")

	// ErrUnsupported indicates a feature the library does not implement.
	ErrUnsupported = errors.New("vorbis: unsupported")

	// ErrUnknown covers any library error outside the mapped classes.
	ErrUnknown = errors.New("vorbis: unknown error")
)

// libvorbis return codes, from vorbis/codec.h.
const (
	ovFalse = -1
	ovFault = -129
	ovImpl  = -130
	ovInval = -131
)

// mapCode translates a libvorbis return code into the bridge taxonomy.
// Zero and positive codes are success values.
func mapCode(code int32) error {
	if code >= 0 {
		return nil
	}
	switch code {
	case ovFault:
		return ErrInternal
	case ovInval:
		return ErrInvalid
	case ovImpl:
		return ErrUnsupported
	default:
		return ErrUnknown
	}
}
