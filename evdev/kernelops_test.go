package evdev

import (
	"testing"

	"golang.org/x/sys/unix"

	"github.com/andrieee44/goevdev/linux/input"
)

// TestKernelSetLEDsWritesFrame verifies that a batched LED set reaches
// the device as one written frame of EV_LED events terminated by a
// SYN_REPORT, and that the cached values track what was written.
func TestKernelSetLEDsWritesFrame(t *testing.T) {
	var dev Device

	fh := newFakeHandle().
		withCode(input.EV_LED, input.LED_NUML).
		withCode(input.EV_LED, input.LED_CAPSL)

	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	err := dev.KernelSetLEDs(
		LEDValue{Code: input.LED_NUML, Value: 1},
		LEDValue{Code: input.LED_CAPSL, Value: 1},
	)
	if err != nil {
		t.Fatalf("KernelSetLEDs: %v", err)
	}

	if len(fh.written) != 3 {
		t.Fatalf("wrote %d events, want 3 (two EV_LED plus SYN_REPORT)", len(fh.written))
	}

	last := fh.written[len(fh.written)-1]
	if last.Type != input.EV_SYN || last.Code != input.SYN_REPORT {
		t.Fatalf("frame not terminated by SYN_REPORT, got %+v", last)
	}

	value, err := dev.EventValue(input.EV_LED, input.LED_NUML)
	if err != nil || value != 1 {
		t.Fatalf("EventValue(EV_LED, LED_NUML) = (%d, %v), want (1, nil)", value, err)
	}
}

// TestKernelSetLEDsRejectsBatchAtomically verifies that one invalid pair
// aborts the whole batch before any byte reaches the device.
func TestKernelSetLEDsRejectsBatchAtomically(t *testing.T) {
	var dev Device

	fh := newFakeHandle().withCode(input.EV_LED, input.LED_NUML)

	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	err := dev.KernelSetLEDs(
		LEDValue{Code: input.LED_NUML, Value: 1},
		LEDValue{Code: input.LED_SCROLLL, Value: 1},
	)
	if err == nil {
		t.Fatal("expected the batch to be rejected for an unsupported LED code")
	}

	if len(fh.written) != 0 {
		t.Fatalf("rejected batch still wrote %d events", len(fh.written))
	}

	value, err := dev.EventValue(input.EV_LED, input.LED_NUML)
	if err != nil || value != 0 {
		t.Fatalf("EventValue after rejected batch = (%d, %v), want (0, nil)", value, err)
	}
}

// TestGrabIsIdempotent verifies that grabbing an already-grabbed device
// (and ungrabbing an ungrabbed one) is a no-op that issues no extra
// ioctl.
func TestGrabIsIdempotent(t *testing.T) {
	var dev Device

	fh := newFakeHandle()
	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if err := dev.Ungrab(); err != nil {
		t.Fatalf("Ungrab on an ungrabbed device: %v", err)
	}

	if len(fh.grabs) != 0 {
		t.Fatalf("redundant Ungrab issued %d ioctls, want 0", len(fh.grabs))
	}

	if err := dev.Grab(); err != nil {
		t.Fatalf("Grab: %v", err)
	}

	if err := dev.Grab(); err != nil {
		t.Fatalf("second Grab: %v", err)
	}

	if len(fh.grabs) != 1 {
		t.Fatalf("double Grab issued %d ioctls, want 1", len(fh.grabs))
	}

	state, err := dev.Grabbed()
	if err != nil || state != Grabbed {
		t.Fatalf("Grabbed = (%v, %v), want (Grabbed, nil)", state, err)
	}
}

// TestClockIDRequestedBeforeAttach verifies that a clock selected on an
// unattached Device is recorded locally and applied to the descriptor
// during the attach probe.
func TestClockIDRequestedBeforeAttach(t *testing.T) {
	var dev Device

	if err := dev.SetClockID(int32(unix.CLOCK_MONOTONIC)); err != nil {
		t.Fatalf("SetClockID before Attach: %v", err)
	}

	fh := newFakeHandle()
	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if len(fh.clockIDs) != 1 || fh.clockIDs[0] != int32(unix.CLOCK_MONOTONIC) {
		t.Fatalf("handle saw clock ids %v, want [CLOCK_MONOTONIC]", fh.clockIDs)
	}

	id, err := dev.ClockID()
	if err != nil || id != int32(unix.CLOCK_MONOTONIC) {
		t.Fatalf("ClockID = (%d, %v), want (CLOCK_MONOTONIC, nil)", id, err)
	}
}

// TestSetRepeatRateUpdatesCache verifies the EVIOCSREP path also keeps
// the cached EV_REP values current.
func TestSetRepeatRateUpdatesCache(t *testing.T) {
	var dev Device

	fh := newFakeHandle().withType(input.EV_REP)
	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	if err := dev.SetRepeatRate(250, 33); err != nil {
		t.Fatalf("SetRepeatRate: %v", err)
	}

	if fh.repDelay != 250 || fh.repPeriod != 33 {
		t.Fatalf("handle saw delay/period = %d/%d, want 250/33", fh.repDelay, fh.repPeriod)
	}

	delay, err := dev.EventValue(input.EV_REP, input.REP_DELAY)
	if err != nil || delay != 250 {
		t.Fatalf("EventValue(EV_REP, REP_DELAY) = (%d, %v), want (250, nil)", delay, err)
	}
}
