//go:build linux

package input

import "github.com/andrieee44/goevdev/linux/ioctl"

// Event represents a single input event delivered by the Linux kernel's
// input subsystem. It is binary-compatible with struct input_event.
type Event struct {
	// Sec is the seconds portion of the event timestamp.
	Sec int64

	// Usec is the microseconds portion of the event timestamp.
	Usec int64

	// Type is the high-level category of the event, such as EV_KEY for
	// key or button events, EV_REL for relative motion, or EV_ABS for
	// absolute axes.
	Type uint16

	// Code is the specific identifier within Type, such as a keycode
	// when Type is EV_KEY or an axis code when Type is EV_ABS.
	Code uint16

	// Value holds the data associated with the event. For key events, 0
	// means release, 1 means press, and 2 means autorepeat. For motion
	// events, it carries the delta or absolute coordinate.
	Value int32
}

// ID identifies an input device by its bus type, vendor ID, product ID,
// and version. It mirrors struct input_id.
type ID struct {
	// Bustype is the bus type for the device (for example, BUS_USB).
	Bustype uint16

	// Vendor is the vendor identifier assigned by the bus.
	Vendor uint16

	// Product is the product identifier assigned by the vendor.
	Product uint16

	// Version is the version or revision number of the device.
	Version uint16
}

// AbsInfo holds the parameters of an absolute input axis.
//
// From [input.h]:
//
// struct input_absinfo - used by EVIOCGABS/EVIOCSABS ioctls
// @value: latest reported value for the axis.
// @minimum: specifies minimum value for the axis.
// @maximum: specifies maximum value for the axis.
// @fuzz: specifies fuzz value that is used to filter noise from the event
// stream.
// @flat: values that are within this value will be discarded by joydev
// interface and reported as 0 instead.
// @resolution: specifies resolution for the values reported for the axis.
//
// Note that input core does not clamp reported values to the
// [minimum, maximum] limits, such task is left to userspace.
//
// [input.h]: https://github.com/torvalds/linux/blob/master/include/uapi/linux/input.h
type AbsInfo struct {
	// Value is the current position of the axis.
	Value int32

	// Minimum is the lowest value the axis can report.
	Minimum int32

	// Maximum is the highest value the axis can report.
	Maximum int32

	// Fuzz is the noise filter threshold for the axis.
	Fuzz int32

	// Flat is the dead zone around the axis center that is reported as
	// zero.
	Flat int32

	// Resolution is the axis resolution (units/mm, or units/g and
	// units/deg/s when INPUT_PROP_ACCELEROMETER is set).
	Resolution int32
}

// KeymapEntry maps a hardware scan code to a logical key code. Used by
// EVIOCGKEYCODE_V2/EVIOCSKEYCODE_V2. Not exercised by package evdev.
type KeymapEntry struct {
	// Flags controls how the kernel handles this request. Setting
	// INPUT_KEYMAP_BY_INDEX causes the kernel to look up by Index
	// instead of Scancode.
	Flags uint8

	// Len is the length in bytes of the scancode stored in Scancode.
	Len uint8

	// Index is the keymap index used when Flags includes
	// INPUT_KEYMAP_BY_INDEX.
	Index uint16

	// Keycode is the logical key code assigned to this scancode.
	Keycode uint32

	// Scancode holds the hardware scan code in machine-endian form.
	// Only the first Len bytes are significant.
	Scancode [32]uint8
}

// Mask represents a bitmask of event codes for a given event type, used
// with EVIOCGMASK/EVIOCSMASK (the per-client event filter, distinct from
// the device-wide capability bits).
type Mask struct {
	// Type specifies the event type (for example, EV_KEY or EV_ABS).
	Type uint32

	// CodesSize specifies the length in bytes of the buffer pointed to
	// by CodesPtr.
	CodesSize uint32

	// CodesPtr specifies the user-space address of the codes bitmask
	// buffer.
	CodesPtr uint64
}

// FFReplay defines the scheduling parameters for a force-feedback effect.
type FFReplay struct {
	// Length is the duration of the effect, in milliseconds.
	Length uint16

	// Delay is the pause before the effect starts playing, in
	// milliseconds.
	Delay uint16
}

// FFTrigger defines what triggers a force-feedback effect.
type FFTrigger struct {
	// Button is the button number that fires the effect.
	Button uint16

	// Interval is the minimum delay, in milliseconds, before the effect
	// can be triggered again.
	Interval uint16
}

// FFEnvelope describes a generic force-feedback effect envelope.
type FFEnvelope struct {
	// AttackLength is the duration of the attack phase, in
	// milliseconds.
	AttackLength uint16

	// AttackLevel is the intensity at the start of the attack phase.
	AttackLevel uint16

	// FadeLength is the duration of the fade phase, in milliseconds.
	FadeLength uint16

	// FadeLevel is the intensity at the end of the fade phase.
	FadeLevel uint16
}

// FFEffect defines parameters of a force-feedback effect for ioctl. Not
// exercised by package evdev.
type FFEffect struct {
	// Type is the effect type (FF_CONSTANT, FF_PERIODIC, FF_RAMP, ...).
	Type uint16

	// Id is the effect identifier. Set to -1 when creating a new
	// effect.
	Id int16

	// Direction is the force direction encoded in [0x0000..0xFFFF].
	Direction uint16

	// Trigger defines the trigger conditions for the effect.
	Trigger FFTrigger

	// Replay defines the scheduling parameters for the effect.
	Replay FFReplay

	// U holds effect-specific parameters as a raw union payload.
	U [32]byte
}

const (
	// EV_VERSION is the version identifier for the Linux input-event
	// interface, as reported by EVIOCGVERSION.
	EV_VERSION = 0x010001

	// INPUT_KEYMAP_BY_INDEX is a flag for EVIOCGKEYCODE_V2/
	// EVIOCSKEYCODE_V2 telling the kernel to identify the keymap entry
	// by its Index field rather than its Scancode.
	INPUT_KEYMAP_BY_INDEX = 1 << 0

	// BUS_USB represents devices on the USB bus.
	BUS_USB = 0x03

	// BUS_BLUETOOTH represents devices on the Bluetooth bus.
	BUS_BLUETOOTH = 0x05

	// BUS_VIRTUAL represents a virtual (software) bus.
	BUS_VIRTUAL = 0x06

	// BUS_I8042 represents devices on the i8042 PS/2 controller bus.
	BUS_I8042 = 0x11

	// MT_TOOL_FINGER identifies a finger in multitouch protocols.
	MT_TOOL_FINGER = 0x00

	// MT_TOOL_PEN identifies a stylus (pen) in multitouch protocols.
	MT_TOOL_PEN = 0x01

	// MT_TOOL_PALM identifies a palm in multitouch protocols.
	MT_TOOL_PALM = 0x02

	// MT_TOOL_MAX is the maximum valid multitouch tool value.
	MT_TOOL_MAX = 0x0F

	// FF_RUMBLE identifies a rumble effect type.
	FF_RUMBLE = 0x50

	// FF_PERIODIC identifies a periodic (waveform) effect type.
	FF_PERIODIC = 0x51

	// FF_CONSTANT identifies a constant force effect type.
	FF_CONSTANT = 0x52

	// FF_SPRING identifies a spring condition effect type.
	FF_SPRING = 0x53

	// FF_FRICTION identifies a friction condition effect type.
	FF_FRICTION = 0x54

	// FF_DAMPER identifies a damper condition effect type.
	FF_DAMPER = 0x55

	// FF_INERTIA identifies an inertia condition effect type.
	FF_INERTIA = 0x56

	// FF_RAMP identifies a ramp effect type.
	FF_RAMP = 0x57

	// FF_SQUARE identifies a square waveform for periodic effects.
	FF_SQUARE = 0x58

	// FF_TRIANGLE identifies a triangle waveform for periodic effects.
	FF_TRIANGLE = 0x59

	// FF_SINE identifies a sine waveform for periodic effects.
	FF_SINE = 0x5a

	// FF_SAW_UP identifies a sawtooth-up waveform for periodic effects.
	FF_SAW_UP = 0x5b

	// FF_SAW_DOWN identifies a sawtooth-down waveform for periodic effects.
	FF_SAW_DOWN = 0x5c

	// FF_CUSTOM identifies a custom waveform for periodic effects.
	FF_CUSTOM = 0x5d

	// FF_GAIN controls the global gain (strength) of all effects.
	FF_GAIN = 0x60

	// FF_AUTOCENTER controls the auto-centering feature of condition
	// effects.
	FF_AUTOCENTER = 0x61

	// FF_MAX is the highest valid force-feedback constant.
	FF_MAX = 0x7F

	// FF_CNT is the total number of defined force-feedback constants.
	FF_CNT = FF_MAX + 1

	// FF_STATUS_STOPPED indicates a force-feedback effect is stopped.
	FF_STATUS_STOPPED = 0x00

	// FF_STATUS_PLAYING indicates a force-feedback effect is playing.
	FF_STATUS_PLAYING = 0x01
)

var (
	// EVIOCGVERSION is the ioctl request code to get the evdev driver
	// version. Reads an int (e.g. 0x010000 == version 1.0.0).
	EVIOCGVERSION = ioctl.IOR('E', 0x01, int32(0))

	// EVIOCGID is the ioctl request code to retrieve the device
	// identifier. Reads into an ID struct.
	EVIOCGID = ioctl.IOR('E', 0x02, ID{})

	// EVIOCGREP is the ioctl request code to get keyboard auto-repeat
	// settings. Reads a [2]uint32: [0] = delay in ms, [1] = period in
	// ms.
	EVIOCGREP = ioctl.IOR('E', 0x03, [2]uint32{})

	// EVIOCSREP is the ioctl request code to set keyboard auto-repeat
	// settings. Writes a [2]uint32: [0] = delay in ms, [1] = period in
	// ms.
	EVIOCSREP = ioctl.IOW('E', 0x03, [2]uint32{})

	// EVIOCGKEYCODE_V2 is the ioctl request code to get an extended
	// keymap entry.
	EVIOCGKEYCODE_V2 = ioctl.IOR('E', 0x04, KeymapEntry{})

	// EVIOCSKEYCODE_V2 is the ioctl request code to set an extended
	// keymap entry.
	EVIOCSKEYCODE_V2 = ioctl.IOW('E', 0x04, KeymapEntry{})
)

// EVIOCGNAME returns the ioctl request code to retrieve the device name.
// length is the size, in bytes, of the buffer that will hold the result.
func EVIOCGNAME(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x06, length)
}

// EVIOCGPHYS returns the ioctl request code to retrieve the device's
// physical location path.
func EVIOCGPHYS(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x07, length)
}

// EVIOCGUNIQ returns the ioctl request code to retrieve the device's
// unique identifier.
func EVIOCGUNIQ(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x08, length)
}

// EVIOCGPROP returns the ioctl request code to retrieve the device's
// property bitmask.
func EVIOCGPROP(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x09, length)
}

// EVIOCGMTSLOTS returns the ioctl request code for reading an arbitrary
// length buffer of multi-touch slot values from an input device.
//
// From [input.h]:
//
// The ioctl buffer argument should be binary equivalent to
//
//	struct input_mt_request_layout {
//		__u32 code;
//		__s32 values[num_slots];
//	};
//
// Before the call, code is set to the wanted ABS_MT event type. On
// return, values[] is filled with the slot values for that code.
//
// [input.h]: https://github.com/torvalds/linux/blob/master/include/uapi/linux/input.h
func EVIOCGMTSLOTS(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x0a, length)
}

// EVIOCGKEY returns the ioctl request code for retrieving the key
// bitmask (current pressed/released state for every EV_KEY code).
func EVIOCGKEY(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x18, length)
}

// EVIOCGLED returns the ioctl request code for retrieving the LED
// bitmask.
func EVIOCGLED(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x19, length)
}

// EVIOCGSW returns the ioctl request code for retrieving the switch
// bitmask.
func EVIOCGSW(length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x1b, length)
}

// EVIOCGBIT returns the ioctl request code for retrieving the bitmask of
// event type ev. Passing ev == 0 returns the combined bitmask of all
// supported event types. length is the size, in bytes, of the buffer
// that will receive the bitmask.
func EVIOCGBIT(ev, length uint) uint {
	return ioctl.IOC(ioctl.IOC_READ, 'E', 0x20+ev, length)
}

// EVIOCGABS returns the ioctl request code for reading absolute-axis
// info into an AbsInfo.
func EVIOCGABS(abs uint) uint {
	return ioctl.IOR('E', 0x40+abs, AbsInfo{})
}

// EVIOCSABS returns the ioctl request code for writing absolute-axis
// info from an AbsInfo.
func EVIOCSABS(abs uint) uint {
	return ioctl.IOW('E', 0xc0+abs, AbsInfo{})
}

// EVIOCSFF returns the ioctl request code for uploading (or updating) a
// force-feedback effect. Not exercised by package evdev.
func EVIOCSFF() uint {
	return ioctl.IOW('E', 0x80, FFEffect{})
}

// EVIOCRMFF returns the ioctl request code for erasing a previously
// uploaded force-feedback effect.
func EVIOCRMFF() uint {
	return ioctl.IOW('E', 0x81, int32(0))
}

// EVIOCGEFFECTS returns the ioctl request code for querying how many
// force-feedback effects the device supports.
func EVIOCGEFFECTS() uint {
	return ioctl.IOR('E', 0x84, int32(0))
}

// EVIOCGRAB returns the ioctl request code for grabbing or releasing an
// input device. A non-zero argument locks event delivery to the calling
// process; zero releases it.
func EVIOCGRAB() uint {
	return ioctl.IOW('E', 0x90, int32(0))
}

// EVIOCSCLOCKID returns the ioctl request code that sets the clock
// source used to timestamp input events.
func EVIOCSCLOCKID() uint {
	return ioctl.IOW('E', 0xa0, int32(0))
}
