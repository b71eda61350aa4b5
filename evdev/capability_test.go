package evdev

import (
	"errors"
	"testing"

	"github.com/andrieee44/goevdev/linux/input"
)

// TestCapabilityConsistency verifies that HasCode implies HasType, and
// disabling a type clears HasCode for every one of its codes.
func TestCapabilityConsistency(t *testing.T) {
	var dev Device

	fh := newFakeHandle().
		withCode(input.EV_KEY, input.KEY_A).
		withCode(input.EV_KEY, input.KEY_B).
		withAbs(input.ABS_X, input.AbsInfo{Minimum: -100, Maximum: 100})

	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	caps, err := dev.Capabilities()
	if err != nil {
		t.Fatalf("Capabilities: %v", err)
	}

	if !caps.HasCode(input.EV_KEY, input.KEY_A) {
		t.Fatal("expected KEY_A to be supported")
	}

	if !caps.HasType(input.EV_KEY) {
		t.Fatal("HasCode true but HasType false for EV_KEY")
	}

	if err := dev.DisableType(input.EV_KEY); err != nil {
		t.Fatalf("DisableType: %v", err)
	}

	if caps.HasCode(input.EV_KEY, input.KEY_A) || caps.HasCode(input.EV_KEY, input.KEY_B) {
		t.Fatal("HasCode should report false for every code once the type is disabled")
	}
}

// TestDisableSyncRejected verifies that disabling the synchronization
// event type is rejected.
func TestDisableSyncRejected(t *testing.T) {
	var dev Device

	fh := newFakeHandle()
	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	err := dev.DisableType(input.EV_SYN)
	if err == nil {
		t.Fatal("expected DisableType(EV_SYN) to fail")
	}

	var evErr *Error
	if !errors.As(err, &evErr) || evErr.Kind != InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

// TestEnableThenQuery verifies that starting from an empty device,
// enabling EV_ABS/ABS_X makes it queryable with the expected defaults.
func TestEnableThenQuery(t *testing.T) {
	var dev Device

	fh := newFakeHandle()
	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	err := dev.EnableAbsCode(input.ABS_X, AxisInfo{Minimum: -100, Maximum: 100})
	if err != nil {
		t.Fatalf("EnableAbsCode: %v", err)
	}

	caps, _ := dev.Capabilities()
	if !caps.HasType(input.EV_ABS) {
		t.Fatal("expected EV_ABS to be enabled")
	}

	min, err := dev.AxisMinimum(input.ABS_X)
	if err != nil || min != -100 {
		t.Fatalf("AxisMinimum(ABS_X) = (%d, %v), want (-100, nil)", min, err)
	}

	value, err := dev.EventValue(input.EV_ABS, input.ABS_X)
	if err != nil || value != 0 {
		t.Fatalf("EventValue(EV_ABS, ABS_X) = (%d, %v), want (0, nil)", value, err)
	}
}
