package evdev

import (
	"syscall"

	"github.com/andrieee44/goevdev/linux/input"
)

// fakeHandle is a test double for kernelHandle. It holds exactly the
// state the real ioctl-backed Handle would report, without touching a
// real /dev/input/eventN node.
type fakeHandle struct {
	version int32
	id      input.ID
	name    string
	phys    string
	uniq    string
	physErr error
	uniqErr error

	props []bool
	types []bool
	codes map[uint16][]bool

	keys, leds, switches []bool

	abs     map[uint16]input.AbsInfo
	mtSlots map[uint16][]int32

	reads   [][]byte
	readPos int

	grabs     []bool
	clockIDs  []int32
	repDelay  uint32
	repPeriod uint32

	written []input.Event
}

func newFakeHandle() *fakeHandle {
	return &fakeHandle{
		version: 0x010001,
		codes:   make(map[uint16][]bool),
		abs:     make(map[uint16]input.AbsInfo),
		mtSlots: make(map[uint16][]int32),
	}
}

// withType marks ev as a supported event type and zero-pads its code
// table, mirroring how capabilityFromHandle discovers capability.
func (f *fakeHandle) withType(ev uint16) *fakeHandle {
	f.growTypes(int(ev) + 1)
	f.types[ev] = true

	return f
}

// withCode marks (ev, code) supported (implicitly calling withType).
func (f *fakeHandle) withCode(ev, code uint16) *fakeHandle {
	f.withType(ev)

	bits := f.codes[ev]
	if int(code) >= len(bits) {
		grown := make([]bool, int(code)+1)
		copy(grown, bits)
		bits = grown
	}

	bits[code] = true
	f.codes[ev] = bits

	return f
}

func (f *fakeHandle) growTypes(n int) {
	if n <= len(f.types) {
		return
	}

	grown := make([]bool, n)
	copy(grown, f.types)
	f.types = grown
}

// withAbs registers code as a supported EV_ABS axis with the given
// parameters.
func (f *fakeHandle) withAbs(code uint16, info input.AbsInfo) *fakeHandle {
	f.withCode(input.EV_ABS, code)
	f.abs[code] = info

	return f
}

// withKey sets the cached pressed state for an already-enabled EV_KEY
// code.
func (f *fakeHandle) withKey(code uint16, pressed bool) *fakeHandle {
	f.growBits(&f.keys, code)
	f.keys[code] = pressed

	return f
}

func (f *fakeHandle) withLED(code uint16, on bool) *fakeHandle {
	f.growBits(&f.leds, code)
	f.leds[code] = on

	return f
}

func (f *fakeHandle) withSwitch(code uint16, on bool) *fakeHandle {
	f.growBits(&f.switches, code)
	f.switches[code] = on

	return f
}

func (f *fakeHandle) growBits(bits *[]bool, code uint16) {
	if int(code) >= len(*bits) {
		grown := make([]bool, int(code)+1)
		copy(grown, *bits)
		*bits = grown
	}
}

// withMT seeds the per-slot values for an ABS_MT_* code.
func (f *fakeHandle) withMT(code uint16, values ...int32) *fakeHandle {
	f.mtSlots[code] = values

	return f
}

// queueEvent appends a raw kernel event frame to be returned by Read,
// in FIFO order.
func (f *fakeHandle) queueEvent(ev input.Event) *fakeHandle {
	f.reads = append(f.reads, encodeEvent(ev))

	return f
}

func boolsToBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)

	for i, v := range bits {
		if v {
			input.SetBit(out, uint(i))
		}
	}

	return out
}

func (f *fakeHandle) Fd() uintptr  { return 0 }
func (f *fakeHandle) Close() error { return nil }

func (f *fakeHandle) Read(buf []byte) (int, error) {
	if f.readPos >= len(f.reads) {
		return 0, syscall.EAGAIN
	}

	frame := f.reads[f.readPos]
	f.readPos++
	copy(buf, frame)

	return len(frame), nil
}

func (f *fakeHandle) Write(buf []byte) (int, error) {
	n := len(buf)

	for len(buf) >= eventWireSize {
		f.written = append(f.written, decodeEvent(buf[:eventWireSize]))
		buf = buf[eventWireSize:]
	}

	return n, nil
}

func (f *fakeHandle) Version() (int32, error)  { return f.version, nil }
func (f *fakeHandle) ID() (input.ID, error)    { return f.id, nil }
func (f *fakeHandle) Name() (string, error)    { return f.name, nil }
func (f *fakeHandle) Phys() (string, error)    { return f.phys, f.physErr }
func (f *fakeHandle) Uniq() (string, error)    { return f.uniq, f.uniqErr }

func (f *fakeHandle) Props() ([]byte, error) {
	return boolsToBits(f.props), nil
}

func (f *fakeHandle) TypeBits() ([]byte, error) {
	return boolsToBits(f.types), nil
}

func (f *fakeHandle) CodeBits(ev uint, nbits uint) ([]byte, error) {
	return boolsToBits(f.codes[uint16(ev)]), nil
}

func (f *fakeHandle) KeyState() ([]byte, error)    { return boolsToBits(f.keys), nil }
func (f *fakeHandle) LEDState() ([]byte, error)    { return boolsToBits(f.leds), nil }
func (f *fakeHandle) SwitchState() ([]byte, error) { return boolsToBits(f.switches), nil }

func (f *fakeHandle) AbsInfo(axis uint) (input.AbsInfo, error) {
	info, ok := f.abs[uint16(axis)]
	if !ok {
		return input.AbsInfo{}, syscall.EINVAL
	}

	return info, nil
}

func (f *fakeHandle) SetAbsInfo(axis uint, info input.AbsInfo) error {
	f.abs[uint16(axis)] = info
	return nil
}

func (f *fakeHandle) Grab(grab bool) error {
	f.grabs = append(f.grabs, grab)
	return nil
}

func (f *fakeHandle) SetClockID(id int32) error {
	f.clockIDs = append(f.clockIDs, id)
	return nil
}

func (f *fakeHandle) RepeatSettings() (uint32, uint32, error) {
	return f.repDelay, f.repPeriod, nil
}

func (f *fakeHandle) SetRepeatSettings(delay, period uint32) error {
	f.repDelay, f.repPeriod = delay, period
	return nil
}

func (f *fakeHandle) MTSlotValues(code uint32, numSlots int) ([]int32, error) {
	values := f.mtSlots[uint16(code)]

	out := make([]int32, numSlots)
	copy(out, values)

	return out, nil
}

var _ kernelHandle = (*fakeHandle)(nil)
