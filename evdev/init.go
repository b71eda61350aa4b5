package evdev

import (
	"golang.org/x/sys/unix"

	"github.com/andrieee44/goevdev/linux/input"
)

// init runs the one-shot probe sequence: read identity, capability
// bitmasks, seed the axis and scalar stores from current kernel state,
// build the multi-touch slot table if present, and size the event
// queue. A failure in any *required* step (EVIOCGVERSION, EVIOCGID,
// EVIOCGNAME, the EV_CNT-wide EVIOCGBIT) aborts the attach; everything
// else degrades to an empty/zero result and is logged at LogInfo.
func (d *Device) init(h kernelHandle) error {
	var (
		identity Identity
		caps     *CapabilityBits
		axes     *axisStore
		scalar   *scalarStore
		slots    *SlotTable
		err      error
	)

	identity, err = identityFromHandle(h)
	if err != nil {
		return err
	}

	caps, err = capabilityFromHandle(h)
	if err != nil {
		return err
	}

	slots, err = newSlotTable(h, caps)
	if err != nil {
		return newError("attach", kindFor(err), err)
	}

	axes = newAxisStore()
	seedAxes(h, caps, axes, slots.NumSlots > 0)

	scalar = newScalarStore()
	seedScalar(h, caps, scalar)

	d.handle = h
	d.identity = identity
	d.caps = caps
	d.axes = axes
	d.scalar = scalar
	d.slots = slots
	d.queue = newEventQueue(queueCapacity(caps, axes, slots))
	d.state = stateNormal
	d.attached = true

	// d.clockID holds whatever the caller requested before Attach; the
	// zero value is CLOCK_REALTIME, the kernel's own default, so a
	// fresh Device needs no ioctl at all.
	if d.clockID != int32(unix.CLOCK_REALTIME) {
		err = h.SetClockID(d.clockID)
		if err != nil {
			logf(LogInfo, "init.go", 0, "EVIOCSCLOCKID degraded: "+err.Error())
		}
	}

	return nil
}

// seedAxes populates the non-MT axis store. When realMT is true, codes
// in the ABS_MT_* range are owned by the SlotTable instead and are
// skipped here; a fake-MT device (realMT false) has no slot table, so
// its ABS_MT_* codes fall through and are tracked as ordinary axes.
func seedAxes(h kernelHandle, caps *CapabilityBits, axes *axisStore, realMT bool) {
	var code uint16

	for _, code = range caps.Codes(input.EV_ABS) {
		var (
			info input.AbsInfo
			err  error
		)

		if realMT && isMTCode(code) {
			continue
		}

		info, err = h.AbsInfo(uint(code))
		if err != nil {
			logf(LogInfo, "init.go", 0, "EVIOCGABS degraded: "+err.Error())
			continue
		}

		axes.set(code, info)
	}
}

func seedScalar(h kernelHandle, caps *CapabilityBits, scalar *scalarStore) {
	seedBitmask(h.KeyState, caps, input.EV_KEY, scalar)
	seedBitmask(h.LEDState, caps, input.EV_LED, scalar)
	seedBitmask(h.SwitchState, caps, input.EV_SW, scalar)
}

func seedBitmask(read func() ([]byte, error), caps *CapabilityBits, ev uint16, scalar *scalarStore) {
	var (
		raw  []byte
		code uint16
		err  error
	)

	raw, err = read()
	if err != nil {
		logf(LogInfo, "init.go", 0, "bitmask seed degraded: "+err.Error())
		return
	}

	for _, code = range caps.Codes(ev) {
		var value int32

		if input.TestBit(raw, uint(code)) {
			value = 1
		}

		scalar.Set(ev, code, value)
	}
}
