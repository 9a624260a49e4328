// ABOUTME: Engine interface abstracting the external Vorbis encoding library
// ABOUTME: Defines the setup, analysis and packet drain surface used by Encoder
package vorbis

// Packet is one compressed packet emitted by the engine. GranulePos is the
// sample-accurate position marker the engine attaches to each packet.
type Packet struct {
	Data       []byte
	GranulePos int64
}

// Engine abstracts the analysis/setup surface of libvorbisenc. The
// production implementation loads the system libraries via purego; tests
// substitute a scripted engine.
//
// Errors returned by an Engine are already mapped onto this package's
// error taxonomy.
type Engine interface {
	// Setup phase. Exactly one of SetupVBR and SetupManaged runs per
	// session, followed by optional controls, then FinishSetup.
	SetupVBR(channels, sampleRate int, quality float32) error
	SetupManaged(channels, sampleRate, maxBitrate, bitrate, minBitrate int) error
	DisableBitrateManagement() error
	SetLowpass(kHz float64) error
	SetImpulseBias(bias float64) error
	FinishSetup() error

	// Analysis lifecycle.
	InitAnalysis() error
	InitBlock() error

	// HeaderOut emits the three setup packets (identification, comment,
	// codebook). encoderTag is stored in the comment header's ENCODER
	// field. Any temporary comment state is cleared before returning.
	HeaderOut(encoderTag string) (ident, comment, setup []byte, err error)

	// Per-call submission. Buffer exposes the engine's per-channel planar
	// input buffers for the next frames samples; Wrote commits them.
	// Wrote(0) marks end of stream.
	Buffer(frames int) [][]float32
	Wrote(frames int) error

	// Packet drain. NextBlock reports whether another analysis block is
	// ready; Analyze and AddBlock process it; FlushPacket pulls ready
	// packets until ok is false.
	NextBlock() (bool, error)
	Analyze() error
	AddBlock() error
	FlushPacket() (p Packet, ok bool, err error)

	// Teardown, in reverse order of acquisition. Safe to call in any
	// partially initialized state.
	ClearBlock()
	ClearAnalysis()
	ClearInfo()
}
