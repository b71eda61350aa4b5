package evdev

import "github.com/andrieee44/goevdev/linux/input"

// EnableType marks event type ev as supported in the cached model. It
// is caller-local: the kernel's own filtering is unaffected.
func (d *Device) EnableType(ev uint16) error {
	if !d.attached {
		return newError("enable type", NotAttached, nil)
	}

	d.caps.setType(ev)

	return nil
}

// DisableType marks event type ev as unsupported in the cached model.
// Disabling EV_SYN is rejected: every device speaks EV_SYN/SYN_REPORT
// and the reader state machine depends on it being always enabled.
func (d *Device) DisableType(ev uint16) error {
	if !d.attached {
		return newError("disable type", NotAttached, nil)
	}

	if ev == input.EV_SYN {
		return newError("disable type", InvalidArgument, nil)
	}

	d.caps.clearType(ev)

	return nil
}

// EnableCode marks code as supported under event type ev. Use
// EnableAbsCode instead for EV_ABS codes (which need axis metadata) and
// EnableRepeat for EV_REP (which needs the delay/period pair); this
// method rejects both since plain code enabling carries no payload for
// them.
func (d *Device) EnableCode(ev, code uint16) error {
	if !d.attached {
		return newError("enable code", NotAttached, nil)
	}

	if ev == input.EV_ABS || ev == input.EV_REP {
		return newError("enable code", InvalidArgument, nil)
	}

	d.caps.setCode(ev, code)
	d.scalar.Set(ev, code, 0)

	return nil
}

// DisableCode marks code as unsupported under event type ev. Disabling
// a code does not remove its last cached value; that value stays in the
// model while the code is disabled. Re-enabling replaces it: EnableCode
// resets it to 0, EnableAbsCode and EnableRepeat store their payload.
func (d *Device) DisableCode(ev, code uint16) error {
	if !d.attached {
		return newError("disable code", NotAttached, nil)
	}

	d.caps.clearCode(ev, code)

	return nil
}

// EnableAbsCode marks an EV_ABS code as supported and seeds its
// AxisInfo, the payload an absolute axis needs beyond a bare code bit.
// Enabling an ABS_MT_* code on a device
// with a real SlotTable is rejected: MT axes are owned by the slot
// table, not the axis store, once true multi-touch is in effect.
func (d *Device) EnableAbsCode(code uint16, info AxisInfo) error {
	if !d.attached {
		return newError("enable abs code", NotAttached, nil)
	}

	if d.slots.NumSlots > 0 && isMTCode(code) {
		return newError("enable abs code", InvalidArgument, nil)
	}

	d.caps.setCode(input.EV_ABS, code)
	d.axes.info[code] = &AxisInfo{
		Value:      info.Value,
		Minimum:    info.Minimum,
		Maximum:    info.Maximum,
		Fuzz:       info.Fuzz,
		Flat:       info.Flat,
		Resolution: info.Resolution,
	}

	return nil
}

// EnableRepeat marks both EV_REP codes (REP_DELAY, REP_PERIOD) as
// supported and seeds their values: the two values only make sense
// together, so there is no single-code EV_REP enable.
func (d *Device) EnableRepeat(delay, period uint32) error {
	if !d.attached {
		return newError("enable repeat", NotAttached, nil)
	}

	d.caps.setCode(input.EV_REP, input.REP_DELAY)
	d.caps.setCode(input.EV_REP, input.REP_PERIOD)
	d.scalar.Set(input.EV_REP, input.REP_DELAY, int32(delay))
	d.scalar.Set(input.EV_REP, input.REP_PERIOD, int32(period))

	return nil
}
