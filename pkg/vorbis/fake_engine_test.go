// ABOUTME: Scripted fake Engine for session-level tests
// ABOUTME: Records call order and can fail at any named step
package vorbis

// fakeEngine implements Engine with scripted output. Tests queue blocks of
// packets; each queued block is delivered through one
// NextBlock/Analyze/AddBlock/FlushPacket cycle.
type fakeEngine struct {
	calls   []string
	failAt  string
	failErr error

	// setup recording
	vbrCalls     int
	managedCalls int
	vbrChannels  int
	vbrRate      int
	vbrQuality   float32
	managedArgs  [5]int // channels, rate, max, bitrate, min
	rateDisabled bool
	lowpassKHz   float64
	bias         float64

	// header packets handed out by HeaderOut
	identPkt   []byte
	commentPkt []byte
	setupPkt   []byte

	// analysis recording
	channels  int
	buffers   [][]float32
	wroteLens []int

	// scripted packet blocks
	blocks  [][]Packet
	current []Packet

	clearedBlock    int
	clearedAnalysis int
	clearedInfo     int
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		identPkt:   []byte{1, 'v', 'o', 'r', 'b', 'i', 's'},
		commentPkt: []byte{3, 'v', 'o', 'r', 'b', 'i', 's'},
		setupPkt:   []byte{5, 'v', 'o', 'r', 'b', 'i', 's'},
	}
}

func (f *fakeEngine) step(name string) error {
	f.calls = append(f.calls, name)
	if f.failAt == name {
		if f.failErr != nil {
			return f.failErr
		}
		return ErrInternal
	}
	return nil
}

func (f *fakeEngine) queueBlock(packets ...Packet) {
	f.blocks = append(f.blocks, packets)
}

func (f *fakeEngine) SetupVBR(channels, sampleRate int, quality float32) error {
	f.vbrCalls++
	f.channels = channels
	f.vbrChannels, f.vbrRate, f.vbrQuality = channels, sampleRate, quality
	return f.step("SetupVBR")
}

func (f *fakeEngine) SetupManaged(channels, sampleRate, maxBitrate, bitrate, minBitrate int) error {
	f.managedCalls++
	f.channels = channels
	f.managedArgs = [5]int{channels, sampleRate, maxBitrate, bitrate, minBitrate}
	return f.step("SetupManaged")
}

func (f *fakeEngine) DisableBitrateManagement() error {
	f.rateDisabled = true
	return f.step("DisableBitrateManagement")
}

func (f *fakeEngine) SetLowpass(kHz float64) error {
	f.lowpassKHz = kHz
	return f.step("SetLowpass")
}

func (f *fakeEngine) SetImpulseBias(bias float64) error {
	f.bias = bias
	return f.step("SetImpulseBias")
}

func (f *fakeEngine) FinishSetup() error {
	return f.step("FinishSetup")
}

func (f *fakeEngine) InitAnalysis() error {
	return f.step("InitAnalysis")
}

func (f *fakeEngine) InitBlock() error {
	return f.step("InitBlock")
}

func (f *fakeEngine) HeaderOut(encoderTag string) ([]byte, []byte, []byte, error) {
	if err := f.step("HeaderOut"); err != nil {
		return nil, nil, nil, err
	}
	return f.identPkt, f.commentPkt, f.setupPkt, nil
}

func (f *fakeEngine) Buffer(frames int) [][]float32 {
	f.calls = append(f.calls, "Buffer")
	f.buffers = make([][]float32, f.channels)
	for c := range f.buffers {
		f.buffers[c] = make([]float32, frames)
	}
	return f.buffers
}

func (f *fakeEngine) Wrote(frames int) error {
	f.wroteLens = append(f.wroteLens, frames)
	return f.step("Wrote")
}

func (f *fakeEngine) NextBlock() (bool, error) {
	if err := f.step("NextBlock"); err != nil {
		return false, err
	}
	if len(f.blocks) == 0 {
		return false, nil
	}
	f.current = f.blocks[0]
	f.blocks = f.blocks[1:]
	return true, nil
}

func (f *fakeEngine) Analyze() error {
	return f.step("Analyze")
}

func (f *fakeEngine) AddBlock() error {
	return f.step("AddBlock")
}

func (f *fakeEngine) FlushPacket() (Packet, bool, error) {
	if err := f.step("FlushPacket"); err != nil {
		return Packet{}, false, err
	}
	if len(f.current) == 0 {
		return Packet{}, false, nil
	}
	p := f.current[0]
	f.current = f.current[1:]
	return p, true, nil
}

func (f *fakeEngine) ClearBlock() {
	f.clearedBlock++
}

func (f *fakeEngine) ClearAnalysis() {
	f.clearedAnalysis++
}

func (f *fakeEngine) ClearInfo() {
	f.clearedInfo++
}

// eosWrites counts zero-length terminator submissions.
func (f *fakeEngine) eosWrites() int {
	n := 0
	for _, w := range f.wroteLens {
		if w == 0 {
			n++
		}
	}
	return n
}
