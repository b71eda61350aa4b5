package evdev

import "github.com/andrieee44/goevdev/linux/input"

// GrabState is whether this Device currently holds the kernel's
// exclusive grab on its descriptor.
type GrabState int

const (
	// Ungrabbed is the default state: other readers of the same
	// descriptor see the same event stream.
	Ungrabbed GrabState = iota

	// Grabbed means this Device holds the exclusive subscription; the
	// kernel rejects a second grab on the same descriptor.
	Grabbed
)

// Grab acquires an exclusive grab on the device (EVIOCGRAB), preventing
// other readers of the same node from seeing subsequent events. A grab
// of an already-grabbed Device is a documented no-op.
func (d *Device) Grab() error {
	if !d.attached {
		return newError("grab", NotAttached, nil)
	}

	if d.grab == Grabbed {
		return nil
	}

	err := d.handle.Grab(true)
	if err != nil {
		return newError("grab", kindFor(err), err)
	}

	d.grab = Grabbed

	return nil
}

// Ungrab releases a previously acquired grab. It is a no-op if the
// device is not currently grabbed.
func (d *Device) Ungrab() error {
	if !d.attached {
		return newError("ungrab", NotAttached, nil)
	}

	if d.grab == Ungrabbed {
		return nil
	}

	err := d.handle.Grab(false)
	if err != nil {
		return newError("ungrab", kindFor(err), err)
	}

	d.grab = Ungrabbed

	return nil
}

// Grabbed reports whether this Device currently holds the grab.
func (d *Device) Grabbed() (GrabState, error) {
	if !d.attached {
		return Ungrabbed, newError("grabbed", NotAttached, nil)
	}

	return d.grab, nil
}

// SetClockID selects the clock source used to timestamp subsequent
// events (EVIOCSCLOCKID, e.g. syscall.CLOCK_MONOTONIC). Called before
// Attach it only records the request; the attach probe then applies it
// to the descriptor. The default is CLOCK_REALTIME.
func (d *Device) SetClockID(id int32) error {
	if !d.attached {
		d.clockID = id
		return nil
	}

	err := d.handle.SetClockID(id)
	if err != nil {
		return newError("set clock id", kindFor(err), err)
	}

	d.clockID = id

	return nil
}

// ClockID returns the clock source currently selected for this device.
func (d *Device) ClockID() (int32, error) {
	if !d.attached {
		return 0, newError("clock id", NotAttached, nil)
	}

	return d.clockID, nil
}

// KernelSetAbsInfo writes new axis parameters for code to the kernel
// (EVIOCSABS) and, on success, updates the cached AxisInfo to match.
func (d *Device) KernelSetAbsInfo(code uint16, info AxisInfo) error {
	if !d.attached {
		return newError("set abs info", NotAttached, nil)
	}

	raw := input.AbsInfo{
		Value:      info.Value,
		Minimum:    info.Minimum,
		Maximum:    info.Maximum,
		Fuzz:       info.Fuzz,
		Flat:       info.Flat,
		Resolution: info.Resolution,
	}

	err := d.handle.SetAbsInfo(uint(code), raw)
	if err != nil {
		return newError("set abs info", kindFor(err), err)
	}

	d.axes.set(code, raw)

	return nil
}

// LEDValue pairs an LED code with the value to set it to, for use with
// KernelSetLEDs.
type LEDValue struct {
	Code  uint16
	Value int32
}

// KernelSetLED sets a single LED on the device. Equivalent to
// KernelSetLEDs with one pair.
func (d *Device) KernelSetLED(code uint16, value int32) error {
	return d.KernelSetLEDs(LEDValue{Code: code, Value: value})
}

// KernelSetLEDs sets the given LEDs on the device. The kernel input
// core accepts LED state changes as EV_LED events written through the
// device node, so the pairs are injected as one frame terminated by a
// SYN_REPORT. Every pair is validated before any byte is written: a
// rejected pair never leaves some LEDs changed and others not.
func (d *Device) KernelSetLEDs(pairs ...LEDValue) error {
	var pair LEDValue

	if !d.attached {
		return newError("set leds", NotAttached, nil)
	}

	for _, pair = range pairs {
		if !d.caps.HasCode(input.EV_LED, pair.Code) {
			return newError("set leds", InvalidArgument, nil)
		}
	}

	if len(pairs) == 0 {
		return nil
	}

	var frame []byte

	for _, pair = range pairs {
		frame = append(frame, encodeEvent(input.Event{
			Type:  input.EV_LED,
			Code:  pair.Code,
			Value: pair.Value,
		})...)
	}

	frame = append(frame, encodeEvent(input.Event{
		Type: input.EV_SYN,
		Code: input.SYN_REPORT,
	})...)

	_, err := d.handle.Write(frame)
	if err != nil {
		return newError("set leds", kindFor(err), err)
	}

	for _, pair = range pairs {
		d.scalar.Set(input.EV_LED, pair.Code, pair.Value)
	}

	return nil
}

// RepeatRate returns the keyboard autorepeat delay and period in
// milliseconds (EVIOCGREP).
func (d *Device) RepeatRate() (delay, period uint32, err error) {
	if !d.attached {
		return 0, 0, newError("repeat rate", NotAttached, nil)
	}

	delay, period, err = d.handle.RepeatSettings()
	if err != nil {
		return 0, 0, newError("repeat rate", kindFor(err), err)
	}

	return delay, period, nil
}

// SetRepeatRate sets the keyboard autorepeat delay and period in
// milliseconds (EVIOCSREP).
func (d *Device) SetRepeatRate(delay, period uint32) error {
	if !d.attached {
		return newError("set repeat rate", NotAttached, nil)
	}

	err := d.handle.SetRepeatSettings(delay, period)
	if err != nil {
		return newError("set repeat rate", kindFor(err), err)
	}

	d.scalar.Set(input.EV_REP, input.REP_DELAY, int32(delay))
	d.scalar.Set(input.EV_REP, input.REP_PERIOD, int32(period))

	return nil
}
