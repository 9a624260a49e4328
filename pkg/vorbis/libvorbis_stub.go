//go:build !((darwin || linux) && !novorbis)

// ABOUTME: Stub engine constructor for platforms without library binding
// ABOUTME: Reports the production engine as unsupported at session creation
package vorbis

import "fmt"

// newLibEngine reports that the libvorbis binding is not available. Tests
// and alternative engines still work through NewWithEngine.
func newLibEngine() (Engine, error) {
	return nil, fmt.Errorf("%w: libvorbis binding not available on this platform", ErrUnsupported)
}
