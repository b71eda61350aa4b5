package evdev

import "github.com/andrieee44/goevdev/linux/input"

// scalarKey identifies one (event type, code) pair within scalarStore.
// EV_KEY, EV_LED, EV_SW, and EV_REP all share this single store, since
// each is just a small per-code state bag keyed the same way.
type scalarKey struct {
	ev   uint16
	code uint16
}

// scalarStore tracks the last known value for every non-MT EV_KEY,
// EV_LED, EV_SW, and EV_REP code the device supports.
type scalarStore struct {
	values map[scalarKey]int32
}

func newScalarStore() *scalarStore {
	return &scalarStore{values: make(map[scalarKey]int32)}
}

// Get returns the stored value for (ev, code), or 0 if it was never
// recorded — scalar reads on an unsupported or unknown code are a
// silent no-op rather than an error.
func (s *scalarStore) Get(ev, code uint16) int32 {
	return s.values[scalarKey{ev, code}]
}

// Set records value for (ev, code). No clamping is applied: the caller
// is responsible for passing a sensible value for the given event type.
func (s *scalarStore) Set(ev, code uint16, value int32) {
	s.values[scalarKey{ev, code}] = value
}

// Codes returns the codes currently recorded for event type ev.
func (s *scalarStore) Codes(ev uint16) []uint16 {
	var (
		out []uint16
		k   scalarKey
	)

	for k = range s.values {
		if k.ev == ev {
			out = append(out, k.code)
		}
	}

	return out
}

// EventValue returns the Device's cached value for (ev, code). For
// EV_ABS codes outside a multi-touch slot this reads axisStore; for
// everything else it reads scalarStore. Unsupported codes return 0.
func (d *Device) EventValue(ev, code uint16) (int32, error) {
	if !d.attached {
		return 0, newError("event value", NotAttached, nil)
	}

	if ev == input.EV_ABS {
		return d.axes.Value(code), nil
	}

	return d.scalar.Get(ev, code), nil
}

// SetEventValue overwrites the Device's cached value for (ev, code)
// without touching the kernel. The value is not clamped to the axis
// [min, max] range for EV_ABS codes. On a device with real multi-touch
// slots, ABS_MT_* codes belong to SetSlotValue and are rejected here.
// Use KernelSetAbsInfo or KernelSetLEDs to actually change hardware
// state.
func (d *Device) SetEventValue(ev, code uint16, value int32) error {
	if !d.attached {
		return newError("set event value", NotAttached, nil)
	}

	if ev == input.EV_ABS {
		if d.slots.NumSlots > 0 && isMTCode(code) {
			return newError("set event value", InvalidArgument, nil)
		}

		d.axes.SetValue(code, value)

		return nil
	}

	d.scalar.Set(ev, code, value)

	return nil
}

// SlotValue returns the cached value for code within slot. Returns 0 if
// the device has no multi-touch slots, slot is out of range, or code is
// not tracked.
func (d *Device) SlotValue(slot int, code uint16) (int32, error) {
	if !d.attached {
		return 0, newError("slot value", NotAttached, nil)
	}

	return d.slots.Value(slot, code), nil
}

// SetSlotValue overwrites the cached value for code within slot. It
// fails with InvalidArgument when the device has no real multi-touch
// slots, slot is out of range, or code is not a tracked ABS_MT_* code.
func (d *Device) SetSlotValue(slot int, code uint16, value int32) error {
	if !d.attached {
		return newError("set slot value", NotAttached, nil)
	}

	if d.slots.NumSlots <= 0 || slot < 0 || slot >= d.slots.NumSlots {
		return newError("set slot value", InvalidArgument, nil)
	}

	if _, ok := d.slots.index[code]; !ok {
		return newError("set slot value", InvalidArgument, nil)
	}

	d.slots.SetValue(slot, code, value)

	return nil
}

// CurrentSlot returns the slot selected by the last ABS_MT_SLOT event.
func (d *Device) CurrentSlot() (int, error) {
	if !d.attached {
		return 0, newError("current slot", NotAttached, nil)
	}

	return d.slots.CurrentSlot, nil
}

// NumSlots returns the number of tracked multi-touch slots, or -1 if
// the device does not implement true MT slots (see fakeMT).
func (d *Device) NumSlots() (int, error) {
	if !d.attached {
		return 0, newError("num slots", NotAttached, nil)
	}

	return d.slots.NumSlots, nil
}

// AxisInfo returns the full axis parameters for an EV_ABS code, and
// false if the device does not support it.
func (d *Device) AxisInfo(code uint16) (AxisInfo, bool, error) {
	if !d.attached {
		return AxisInfo{}, false, newError("axis info", NotAttached, nil)
	}

	info, ok := d.axes.Get(code)

	return info, ok, nil
}

// FetchEventValue combines a HasCode check and EventValue read into one
// call: ok is false, and value always 0, when (ev, code) is not
// supported.
func (d *Device) FetchEventValue(ev, code uint16) (value int32, ok bool, err error) {
	if !d.attached {
		return 0, false, newError("fetch event value", NotAttached, nil)
	}

	if !d.caps.HasCode(ev, code) {
		return 0, false, nil
	}

	value, err = d.EventValue(ev, code)

	return value, true, err
}

// FetchSlotValue combines a slot/code validity check and SlotValue read
// into one call, the MT counterpart to FetchEventValue. ok is false
// when the device has no real multi-touch slots, slot is out of range,
// or code is not tracked.
func (d *Device) FetchSlotValue(slot int, code uint16) (value int32, ok bool, err error) {
	if !d.attached {
		return 0, false, newError("fetch slot value", NotAttached, nil)
	}

	if d.slots.NumSlots <= 0 || slot < 0 || slot >= d.slots.NumSlots {
		return 0, false, nil
	}

	_, ok = d.slots.index[code]
	if !ok {
		return 0, false, nil
	}

	value, err = d.SlotValue(slot, code)

	return value, true, err
}

// RefreshEventValue re-reads (ev, code) straight from the kernel — via
// EVIOCGABS for EV_ABS, or the EVIOCGKEY/EVIOCGLED/EVIOCGSW bitmask for
// EV_KEY/EV_LED/EV_SW — folds the result into the cached model, and
// returns it. Any other event type is rejected with InvalidArgument.
// Use this to resynchronize a single code without running a full
// SyncEngine pass.
func (d *Device) RefreshEventValue(ev, code uint16) (int32, error) {
	var (
		value int32
		err   error
	)

	if !d.attached {
		return 0, newError("refresh event value", NotAttached, nil)
	}

	switch ev {
	case input.EV_ABS:
		var info input.AbsInfo

		info, err = d.handle.AbsInfo(uint(code))
		if err != nil {
			return 0, newError("refresh event value", kindFor(err), err)
		}

		d.axes.set(code, info)
		value = info.Value
	case input.EV_KEY:
		value, err = d.refreshBit(d.handle.KeyState, ev, code)
	case input.EV_LED:
		value, err = d.refreshBit(d.handle.LEDState, ev, code)
	case input.EV_SW:
		value, err = d.refreshBit(d.handle.SwitchState, ev, code)
	default:
		return 0, newError("refresh event value", InvalidArgument, nil)
	}

	if err != nil {
		return 0, err
	}

	return value, nil
}

func (d *Device) refreshBit(read func() ([]byte, error), ev, code uint16) (int32, error) {
	var (
		raw []byte
		err error
	)

	raw, err = read()
	if err != nil {
		return 0, newError("refresh event value", kindFor(err), err)
	}

	var value int32

	if input.TestBit(raw, uint(code)) {
		value = 1
	}

	d.scalar.Set(ev, code, value)

	return value, nil
}
