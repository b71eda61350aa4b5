//go:build linux

package input

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/andrieee44/goevdev/internal/mathx"
	"github.com/andrieee44/goevdev/linux/ioctl"
	"golang.org/x/sys/unix"
)

// DevDir is the directory the kernel populates with one character device
// per registered input handler.
const DevDir = "/dev/input"

// Handle is a thin wrapper around an open /dev/input/eventN file
// descriptor. It knows nothing about event semantics, sync state, or
// capability caching — package evdev builds that model on top of the raw
// ioctls exposed here.
type Handle struct {
	file *os.File
}

// Open opens the event device node at path for reading and writing.
func Open(path string) (*Handle, error) {
	var (
		file *os.File
		err  error
	)

	file, err = os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}

	return &Handle{file: file}, nil
}

// Devices returns the paths of every /dev/input/eventN node currently
// present, sorted by N.
func Devices() ([]string, error) {
	var (
		entries []os.DirEntry
		paths   []string
		entry   os.DirEntry
		err     error
	)

	entries, err = os.ReadDir(DevDir)
	if err != nil {
		return nil, fmt.Errorf("input: read %s: %w", DevDir, err)
	}

	for _, entry = range entries {
		var name string

		name = entry.Name()
		if len(name) > 5 && name[:5] == "event" {
			paths = append(paths, filepath.Join(DevDir, name))
		}
	}

	// Every path shares the DevDir/event prefix, so ordering by length
	// first puts event2 before event10.
	sort.Slice(paths, func(i, j int) bool {
		if len(paths[i]) != len(paths[j]) {
			return len(paths[i]) < len(paths[j])
		}

		return paths[i] < paths[j]
	})

	return paths, nil
}

// Fd returns the underlying file descriptor.
func (h *Handle) Fd() uintptr {
	return h.file.Fd()
}

// Close releases the underlying file descriptor.
func (h *Handle) Close() error {
	return h.file.Close()
}

// Read reads raw input_event records off the device into the
// caller-provided byte buffer, returning the number of bytes read. The
// buffer length should be a multiple of the on-wire input_event size.
func (h *Handle) Read(buf []byte) (int, error) {
	return unix.Read(int(h.file.Fd()), buf)
}

// Write injects raw input_event records into the device. The kernel
// input core accepts a small set of event types this way (EV_LED, EV_SND,
// EV_REP); the buffer length must be a multiple of the on-wire
// input_event size.
func (h *Handle) Write(buf []byte) (int, error) {
	return unix.Write(int(h.file.Fd()), buf)
}

// Version returns the evdev protocol version reported by EVIOCGVERSION.
func (h *Handle) Version() (int32, error) {
	var (
		version int32
		err     error
	)

	err = ioctl.Any(h.file.Fd(), EVIOCGVERSION, &version)
	if err != nil {
		return 0, err
	}

	return version, nil
}

// ID returns the bus/vendor/product/version identity reported by
// EVIOCGID.
func (h *Handle) ID() (ID, error) {
	var (
		id  ID
		err error
	)

	err = ioctl.Any(h.file.Fd(), EVIOCGID, &id)
	if err != nil {
		return ID{}, err
	}

	return id, nil
}

// stringIoctl issues a read ioctl that fills buf with a NUL-terminated
// C string and returns it converted to a Go string.
func (h *Handle) stringIoctl(req func(uint) uint) (string, error) {
	var (
		buf []byte
		err error
	)

	buf = make([]byte, 256)

	err = ioctl.Any(h.file.Fd(), req(uint(len(buf))), &buf[0])
	if err != nil {
		return "", err
	}

	return unix.ByteSliceToString(buf), nil
}

// Name returns the device name reported by EVIOCGNAME.
func (h *Handle) Name() (string, error) {
	return h.stringIoctl(EVIOCGNAME)
}

// Phys returns the device's physical location path reported by
// EVIOCGPHYS. Not every device populates this; callers should treat an
// empty string and a non-nil error both as "unavailable".
func (h *Handle) Phys() (string, error) {
	return h.stringIoctl(EVIOCGPHYS)
}

// Uniq returns the device's unique identifier reported by EVIOCGUNIQ.
func (h *Handle) Uniq() (string, error) {
	return h.stringIoctl(EVIOCGUNIQ)
}

// bitsetIoctl issues a read ioctl that fills a byte buffer sized for
// nbits bits and returns it.
func (h *Handle) bitsetIoctl(reqFor func(nbytes uint) uint, nbits uint) ([]byte, error) {
	var (
		buf   []byte
		nbyte uint
		err   error
	)

	nbyte = mathx.CeilDiv(nbits, 8)
	buf = make([]byte, nbyte)

	err = ioctl.Any(h.file.Fd(), reqFor(nbyte), &buf[0])
	if err != nil {
		return nil, err
	}

	return buf, nil
}

// Props returns the device's property bitmask (EVIOCGPROP), sized for
// INPUT_PROP_CNT bits.
func (h *Handle) Props() ([]byte, error) {
	return h.bitsetIoctl(EVIOCGPROP, INPUT_PROP_CNT)
}

// TypeBits returns the bitmask of event types the device supports
// (EVIOCGBIT with ev == 0), sized for EV_CNT bits.
func (h *Handle) TypeBits() ([]byte, error) {
	return h.bitsetIoctl(func(nbyte uint) uint { return EVIOCGBIT(0, nbyte) }, EV_CNT)
}

// CodeBits returns the bitmask of codes the device supports for event
// type ev (EVIOCGBIT with that type), sized for nbits bits. Callers pick
// nbits from the per-type *_CNT constant in eventcodes.go (KEY_CNT,
// REL_CNT, ABS_CNT, ...).
func (h *Handle) CodeBits(ev uint, nbits uint) ([]byte, error) {
	return h.bitsetIoctl(func(nbyte uint) uint { return EVIOCGBIT(ev, nbyte) }, nbits)
}

// KeyState returns the current pressed/released bitmask for every
// EV_KEY code (EVIOCGKEY), sized for KEY_CNT bits.
func (h *Handle) KeyState() ([]byte, error) {
	return h.bitsetIoctl(EVIOCGKEY, KEY_CNT)
}

// LEDState returns the current LED bitmask (EVIOCGLED), sized for
// LED_CNT bits.
func (h *Handle) LEDState() ([]byte, error) {
	return h.bitsetIoctl(EVIOCGLED, LED_CNT)
}

// SwitchState returns the current switch bitmask (EVIOCGSW), sized for
// SW_CNT bits.
func (h *Handle) SwitchState() ([]byte, error) {
	return h.bitsetIoctl(EVIOCGSW, SW_CNT)
}

// AbsInfo returns the axis parameters for abs code axis (EVIOCGABS).
func (h *Handle) AbsInfo(axis uint) (AbsInfo, error) {
	var (
		info AbsInfo
		err  error
	)

	err = ioctl.Any(h.file.Fd(), EVIOCGABS(axis), &info)
	if err != nil {
		return AbsInfo{}, err
	}

	return info, nil
}

// SetAbsInfo writes the axis parameters for abs code axis (EVIOCSABS).
func (h *Handle) SetAbsInfo(axis uint, info AbsInfo) error {
	return ioctl.Any(h.file.Fd(), EVIOCSABS(axis), &info)
}

// Grab acquires or releases an exclusive grab on the device (EVIOCGRAB).
// Passing true acquires the grab; false releases it.
func (h *Handle) Grab(grab bool) error {
	var v int32

	if grab {
		v = 1
	}

	return ioctl.Any(h.file.Fd(), EVIOCGRAB(), &v)
}

// SetClockID selects the clock source (CLOCK_REALTIME, CLOCK_MONOTONIC,
// ...) used to timestamp subsequent events (EVIOCSCLOCKID).
func (h *Handle) SetClockID(id int32) error {
	return ioctl.Any(h.file.Fd(), EVIOCSCLOCKID(), &id)
}

// RepeatSettings returns the current autorepeat delay/period in
// milliseconds (EVIOCGREP).
func (h *Handle) RepeatSettings() (delay, period uint32, err error) {
	var pair [2]uint32

	err = ioctl.Any(h.file.Fd(), EVIOCGREP, &pair)
	if err != nil {
		return 0, 0, err
	}

	return pair[0], pair[1], nil
}

// SetRepeatSettings sets the autorepeat delay/period in milliseconds
// (EVIOCSREP).
func (h *Handle) SetRepeatSettings(delay, period uint32) error {
	var pair [2]uint32

	pair[0], pair[1] = delay, period

	return ioctl.Any(h.file.Fd(), EVIOCSREP, &pair)
}

// MTSlotValues returns the per-slot values for the given ABS_MT_* code
// (EVIOCGMTSLOTS). numSlots is the number of tracked slots (as derived
// from ABS_MT_SLOT's own AbsInfo.Maximum+1).
func (h *Handle) MTSlotValues(code uint32, numSlots int) ([]int32, error) {
	var (
		buf []int32
		err error
	)

	buf = make([]int32, 1+numSlots)
	buf[0] = int32(code)

	err = ioctl.Any(h.file.Fd(), EVIOCGMTSLOTS(uint(len(buf)*4)), &buf[0])
	if err != nil {
		return nil, err
	}

	return buf[1:], nil
}
