//go:build (darwin || linux) && !novorbis

// ABOUTME: purego binding to the system libvorbis/libvorbisenc libraries
// ABOUTME: Implements Engine with opaque state slabs and mapped error codes
package vorbis

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

var (
	libOnce    sync.Once
	libInitErr error
)

// libvorbisenc setup entry points.
var (
	encodeSetupVBR     func(vi uintptr, channels, rate int, quality float32) int32
	encodeSetupManaged func(vi uintptr, channels, rate, maxBitrate, bitrate, minBitrate int) int32
	encodeCtl          func(vi uintptr, number int32, arg uintptr) int32
	encodeSetupInit    func(vi uintptr) int32
)

// libvorbis analysis entry points.
var (
	infoInit          func(vi uintptr)
	infoClear         func(vi uintptr)
	commentInit       func(vc uintptr)
	commentAddTag     func(vc uintptr, tag, contents string)
	commentClear      func(vc uintptr)
	analysisInit      func(vd, vi uintptr) int32
	blockInit         func(vd, vb uintptr) int32
	analysisHeaderOut func(vd, vc, op, opComm, opCode uintptr) int32
	analysisBuffer    func(vd uintptr, vals int32) uintptr
	analysisWrote     func(vd uintptr, vals int32) int32
	analysisBlockOut  func(vd, vb uintptr) int32
	analysis          func(vb, op uintptr) int32
	bitrateAddBlock   func(vb uintptr) int32
	bitrateFlush      func(vd, op uintptr) int32
	blockClear        func(vb uintptr) int32
	dspClear          func(vd uintptr)
)

// Encoder control numbers from vorbis/vorbisenc.h.
const (
	ctlRateManage2Set = 0x15
	ctlLowpassSet     = 0x21
	ctlIBlockSet      = 0x31
)

// oggPacket mirrors ogg_packet on 64-bit platforms. The packet pointer
// targets library-owned memory valid only until the next analysis call, so
// payloads are copied out immediately.
type oggPacket struct {
	packet     uintptr
	bytes      int
	bos        int
	eos        int
	granulepos int64
	packetno   int64
}

func libNames(stem string) []string {
	if runtime.GOOS == "darwin" {
		return []string{stem + ".dylib", stem + ".2.dylib", "/opt/homebrew/lib/" + stem + ".dylib", "/usr/local/lib/" + stem + ".dylib"}
	}
	return []string{stem + ".so.2", stem + ".so", "/usr/lib/" + stem + ".so.2", "/usr/local/lib/" + stem + ".so.2"}
}

func dlopenFirst(env, stem string) (uintptr, error) {
	var paths []string
	if p := os.Getenv(env); p != "" {
		paths = append(paths, p)
	}
	paths = append(paths, libNames(stem)...)

	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return handle, nil
		}
		lastErr = err
	}
	return 0, fmt.Errorf("%w: %s not found: %v", ErrResource, stem, lastErr)
}

func loadLibraries() error {
	libOnce.Do(func() {
		core, err := dlopenFirst("VORBIS_LIB_PATH", "libvorbis")
		if err != nil {
			libInitErr = err
			return
		}
		enc, err := dlopenFirst("VORBISENC_LIB_PATH", "libvorbisenc")
		if err != nil {
			libInitErr = err
			return
		}

		purego.RegisterLibFunc(&encodeSetupVBR, enc, "vorbis_encode_setup_vbr")
		purego.RegisterLibFunc(&encodeSetupManaged, enc, "vorbis_encode_setup_managed")
		purego.RegisterLibFunc(&encodeCtl, enc, "vorbis_encode_ctl")
		purego.RegisterLibFunc(&encodeSetupInit, enc, "vorbis_encode_setup_init")

		purego.RegisterLibFunc(&infoInit, core, "vorbis_info_init")
		purego.RegisterLibFunc(&infoClear, core, "vorbis_info_clear")
		purego.RegisterLibFunc(&commentInit, core, "vorbis_comment_init")
		purego.RegisterLibFunc(&commentAddTag, core, "vorbis_comment_add_tag")
		purego.RegisterLibFunc(&commentClear, core, "vorbis_comment_clear")
		purego.RegisterLibFunc(&analysisInit, core, "vorbis_analysis_init")
		purego.RegisterLibFunc(&blockInit, core, "vorbis_block_init")
		purego.RegisterLibFunc(&analysisHeaderOut, core, "vorbis_analysis_headerout")
		purego.RegisterLibFunc(&analysisBuffer, core, "vorbis_analysis_buffer")
		purego.RegisterLibFunc(&analysisWrote, core, "vorbis_analysis_wrote")
		purego.RegisterLibFunc(&analysisBlockOut, core, "vorbis_analysis_blockout")
		purego.RegisterLibFunc(&analysis, core, "vorbis_analysis")
		purego.RegisterLibFunc(&bitrateAddBlock, core, "vorbis_bitrate_addblock")
		purego.RegisterLibFunc(&bitrateFlush, core, "vorbis_bitrate_flushpacket")
		purego.RegisterLibFunc(&blockClear, core, "vorbis_block_clear")
		purego.RegisterLibFunc(&dspClear, core, "vorbis_dsp_clear")
	})
	return libInitErr
}

// State slab sizes. The library structs are treated as opaque; the slabs
// are generously oversized relative to any known layout.
const (
	infoSlab    = 256
	commentSlab = 128
	dspSlab     = 512
	blockSlab   = 512
)

// libEngine implements Engine on the dynamically loaded libraries. Each
// engine exclusively owns its set of library state slabs; the slabs are
// never copied or shared between sessions.
type libEngine struct {
	vi []byte
	vd []byte
	vb []byte

	channels int
}

// newLibEngine loads the libraries on first use and initializes a fresh
// info object. The caller releases it through ClearInfo.
func newLibEngine() (Engine, error) {
	if err := loadLibraries(); err != nil {
		return nil, err
	}
	e := &libEngine{
		vi: make([]byte, infoSlab),
		vd: make([]byte, dspSlab),
		vb: make([]byte, blockSlab),
	}
	infoInit(e.viPtr())
	return e, nil
}

func (e *libEngine) viPtr() uintptr { return uintptr(unsafe.Pointer(&e.vi[0])) }
func (e *libEngine) vdPtr() uintptr { return uintptr(unsafe.Pointer(&e.vd[0])) }
func (e *libEngine) vbPtr() uintptr { return uintptr(unsafe.Pointer(&e.vb[0])) }

func (e *libEngine) SetupVBR(channels, sampleRate int, quality float32) error {
	e.channels = channels
	return mapCode(encodeSetupVBR(e.viPtr(), channels, sampleRate, quality))
}

func (e *libEngine) SetupManaged(channels, sampleRate, maxBitrate, bitrate, minBitrate int) error {
	e.channels = channels
	return mapCode(encodeSetupManaged(e.viPtr(), channels, sampleRate, maxBitrate, bitrate, minBitrate))
}

func (e *libEngine) DisableBitrateManagement() error {
	return mapCode(encodeCtl(e.viPtr(), ctlRateManage2Set, 0))
}

func (e *libEngine) SetLowpass(kHz float64) error {
	return mapCode(encodeCtl(e.viPtr(), ctlLowpassSet, uintptr(unsafe.Pointer(&kHz))))
}

func (e *libEngine) SetImpulseBias(bias float64) error {
	return mapCode(encodeCtl(e.viPtr(), ctlIBlockSet, uintptr(unsafe.Pointer(&bias))))
}

func (e *libEngine) FinishSetup() error {
	return mapCode(encodeSetupInit(e.viPtr()))
}

func (e *libEngine) InitAnalysis() error {
	return mapCode(analysisInit(e.vdPtr(), e.viPtr()))
}

func (e *libEngine) InitBlock() error {
	return mapCode(blockInit(e.vdPtr(), e.vbPtr()))
}

func (e *libEngine) HeaderOut(encoderTag string) ([]byte, []byte, []byte, error) {
	vc := make([]byte, commentSlab)
	vcPtr := uintptr(unsafe.Pointer(&vc[0]))
	commentInit(vcPtr)
	defer commentClear(vcPtr)
	commentAddTag(vcPtr, "ENCODER", encoderTag)

	var hID, hComm, hCode oggPacket
	code := analysisHeaderOut(e.vdPtr(), vcPtr,
		uintptr(unsafe.Pointer(&hID)),
		uintptr(unsafe.Pointer(&hComm)),
		uintptr(unsafe.Pointer(&hCode)))
	if err := mapCode(code); err != nil {
		return nil, nil, nil, err
	}
	return copyPacketData(&hID), copyPacketData(&hComm), copyPacketData(&hCode), nil
}

func (e *libEngine) Buffer(frames int) [][]float32 {
	base := analysisBuffer(e.vdPtr(), int32(frames))
	chans := unsafe.Slice((*uintptr)(unsafe.Pointer(base)), e.channels)
	out := make([][]float32, e.channels)
	for c := range out {
		out[c] = unsafe.Slice((*float32)(unsafe.Pointer(chans[c])), frames)
	}
	return out
}

func (e *libEngine) Wrote(frames int) error {
	return mapCode(analysisWrote(e.vdPtr(), int32(frames)))
}

func (e *libEngine) NextBlock() (bool, error) {
	code := analysisBlockOut(e.vdPtr(), e.vbPtr())
	if code < 0 {
		return false, mapCode(code)
	}
	return code == 1, nil
}

func (e *libEngine) Analyze() error {
	return mapCode(analysis(e.vbPtr(), 0))
}

func (e *libEngine) AddBlock() error {
	return mapCode(bitrateAddBlock(e.vbPtr()))
}

func (e *libEngine) FlushPacket() (Packet, bool, error) {
	var op oggPacket
	code := bitrateFlush(e.vdPtr(), uintptr(unsafe.Pointer(&op)))
	if code < 0 {
		return Packet{}, false, mapCode(code)
	}
	if code == 0 {
		return Packet{}, false, nil
	}
	return Packet{Data: copyPacketData(&op), GranulePos: op.granulepos}, true, nil
}

func (e *libEngine) ClearBlock() {
	blockClear(e.vbPtr())
}

func (e *libEngine) ClearAnalysis() {
	dspClear(e.vdPtr())
}

func (e *libEngine) ClearInfo() {
	infoClear(e.viPtr())
}

// copyPacketData snapshots a packet payload out of library-owned memory.
func copyPacketData(op *oggPacket) []byte {
	if op.packet == 0 || op.bytes <= 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(op.packet)), op.bytes)
	dst := make([]byte, op.bytes)
	copy(dst, src)
	return dst
}
