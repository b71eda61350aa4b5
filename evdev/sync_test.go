package evdev

import (
	"testing"

	"github.com/andrieee44/goevdev/linux/input"
)

// TestForcedSyncAlwaysEmitsSynReport verifies that a forced sync
// against a device with nothing changed still produces at least the
// terminating SYN_REPORT.
func TestForcedSyncAlwaysEmitsSynReport(t *testing.T) {
	var dev Device

	fh := newFakeHandle().withCode(input.EV_KEY, input.KEY_A)
	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	status, _, err := dev.Next(ReadForceSync)
	if err != nil || status != StatusSync {
		t.Fatalf("Next(ReadForceSync) = (%v, %v), want (StatusSync, nil)", status, err)
	}

	status, ev, err := dev.Next(ReadSync)
	if err != nil || status != StatusSync {
		t.Fatalf("Next(ReadSync) = (%v, %v), want (StatusSync, nil)", status, err)
	}

	if ev.Type != input.EV_SYN || ev.Code != input.SYN_REPORT {
		t.Fatalf("expected a terminating SYN_REPORT, got %+v", ev)
	}

	status, _, err = dev.Next(ReadSync)
	if err != nil || status != StatusAgain {
		t.Fatalf("Next(ReadSync) after drain = (%v, %v), want (StatusAgain, nil)", status, err)
	}
}

// TestRepeatedForcedSyncIsIdempotent verifies that running the sync
// algorithm twice in succession over identical kernel state produces a
// second delta of length 1: only the terminating SYN_REPORT, since the
// model already matches the kernel after the first drain.
func TestRepeatedForcedSyncIsIdempotent(t *testing.T) {
	var dev Device

	fh := newFakeHandle().
		withCode(input.EV_KEY, input.KEY_A).
		withKey(input.KEY_A, true)

	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	status, _, err := dev.Next(ReadForceSync)
	if err != nil || status != StatusSync {
		t.Fatalf("first Next(ReadForceSync) = (%v, %v), want (StatusSync, nil)", status, err)
	}

	for {
		status, _, err = dev.Next(ReadSync)
		if err != nil {
			t.Fatalf("Next(ReadSync): %v", err)
		}

		if status != StatusSync {
			break
		}
	}

	status, _, err = dev.Next(ReadForceSync)
	if err != nil || status != StatusSync {
		t.Fatalf("second Next(ReadForceSync) = (%v, %v), want (StatusSync, nil)", status, err)
	}

	var count int

	for {
		status, ev, err := dev.Next(ReadSync)
		if err != nil {
			t.Fatalf("Next(ReadSync): %v", err)
		}

		if status != StatusSync {
			break
		}

		count++

		if ev.Type != input.EV_SYN || ev.Code != input.SYN_REPORT {
			t.Fatalf("second sync pass replayed a non-SYN_REPORT event %+v; model should already match", ev)
		}
	}

	if count != 1 {
		t.Fatalf("second sync pass produced %d events, want exactly 1 (SYN_REPORT)", count)
	}
}

// TestSynDroppedTriggersKeyResync verifies that a key changing state
// behind the model's back, followed by a SYN_DROPPED report, is
// recovered by the sync queue: draining it replays the missed key
// transition and folds it into the cached model.
func TestSynDroppedTriggersKeyResync(t *testing.T) {
	var dev Device

	fh := newFakeHandle().
		withCode(input.EV_KEY, input.KEY_A).
		withKey(input.KEY_A, false)

	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	value, err := dev.EventValue(input.EV_KEY, input.KEY_A)
	if err != nil || value != 0 {
		t.Fatalf("EventValue before drop = (%d, %v), want (0, nil)", value, err)
	}

	// The key is pressed at the hardware level while the model is still
	// stale, then the kernel reports a dropped frame.
	fh.withKey(input.KEY_A, true)
	fh.queueEvent(input.Event{Type: input.EV_SYN, Code: input.SYN_DROPPED})

	status, ev, err := dev.Next(ReadNormal)
	if err != nil || status != StatusSync {
		t.Fatalf("Next(ReadNormal) on SYN_DROPPED = (%v, %v, %v), want (StatusSync, _, nil)", status, ev, err)
	}

	var sawKeyA, sawSynReport bool

	for {
		status, ev, err = dev.Next(ReadSync)
		if err != nil {
			t.Fatalf("Next(ReadSync): %v", err)
		}

		if status != StatusSync {
			break
		}

		if ev.Type == input.EV_KEY && ev.Code == input.KEY_A && ev.Value == 1 {
			sawKeyA = true
		}

		if ev.Type == input.EV_SYN && ev.Code == input.SYN_REPORT {
			sawSynReport = true
		}
	}

	if !sawKeyA {
		t.Fatal("sync replay never reported KEY_A going down")
	}

	if !sawSynReport {
		t.Fatal("sync replay never emitted a terminating SYN_REPORT")
	}

	value, err = dev.EventValue(input.EV_KEY, input.KEY_A)
	if err != nil || value != 1 {
		t.Fatalf("EventValue after drain = (%d, %v), want (1, nil)", value, err)
	}
}

// TestAbandonedSyncFastForwards verifies that starting a sync and then
// issuing a normal read before the queue drains fast-forwards the
// model straight to the snapshot taken at sync start, without replaying
// the individual delta events.
func TestAbandonedSyncFastForwards(t *testing.T) {
	var dev Device

	fh := newFakeHandle().
		withCode(input.EV_KEY, input.KEY_A).
		withKey(input.KEY_A, false)

	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	fh.withKey(input.KEY_A, true)

	status, _, err := dev.Next(ReadForceSync)
	if err != nil || status != StatusSync {
		t.Fatalf("Next(ReadForceSync) = (%v, %v), want (StatusSync, nil)", status, err)
	}

	// Queue a fresh kernel event and read in normal mode before the sync
	// queue is drained; this must abandon the sync rather than interleave.
	fh.queueEvent(input.Event{Type: input.EV_KEY, Code: input.KEY_A, Value: 0})

	status, _, err = dev.Next(ReadNormal)
	if err != nil || status != StatusSuccess {
		t.Fatalf("Next(ReadNormal) after abandon = (%v, %v), want (StatusSuccess, nil)", status, err)
	}

	value, err := dev.EventValue(input.EV_KEY, input.KEY_A)
	if err != nil || value != 0 {
		t.Fatalf("EventValue after abandon+read = (%d, %v), want (0, nil)", value, err)
	}

	status, _, err = dev.Next(ReadSync)
	if err != nil || status != StatusAgain {
		t.Fatalf("Next(ReadSync) after abandon = (%v, %v), want (StatusAgain, nil)", status, err)
	}
}

// TestMTSlotResyncOrdersTrackingID verifies that a slot gaining a touch
// during a drop replays with ABS_MT_TRACKING_ID ordered before its
// sibling axes.
func TestMTSlotResyncOrdersTrackingID(t *testing.T) {
	var dev Device

	fh := newFakeHandle().
		withAbs(input.ABS_MT_SLOT, input.AbsInfo{Maximum: 1}).
		withAbs(input.ABS_MT_TRACKING_ID, input.AbsInfo{Minimum: -1, Maximum: 65535}).
		withAbs(input.ABS_MT_POSITION_X, input.AbsInfo{Maximum: 4000}).
		withMT(input.ABS_MT_TRACKING_ID, -1, -1).
		withMT(input.ABS_MT_POSITION_X, 0, 0)

	if err := dev.Attach(fh); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	numSlots, err := dev.NumSlots()
	if err != nil || numSlots != 2 {
		t.Fatalf("NumSlots = (%d, %v), want (2, nil)", numSlots, err)
	}

	// Slot 0 gains a touch behind the model's back.
	fh.withMT(input.ABS_MT_TRACKING_ID, 7, -1)
	fh.withMT(input.ABS_MT_POSITION_X, 1234, 0)

	status, _, err := dev.Next(ReadForceSync)
	if err != nil || status != StatusSync {
		t.Fatalf("Next(ReadForceSync) = (%v, %v), want (StatusSync, nil)", status, err)
	}

	var (
		events       []input.Event
		sawSlotIndex = -1
	)

	for {
		status, ev, err := dev.Next(ReadSync)
		if err != nil {
			t.Fatalf("Next(ReadSync): %v", err)
		}

		if status != StatusSync {
			break
		}

		events = append(events, ev)
	}

	for i, ev := range events {
		if ev.Type == input.EV_ABS && ev.Code == input.ABS_MT_TRACKING_ID && ev.Value == 7 {
			sawSlotIndex = i
		}
	}

	if sawSlotIndex < 0 {
		t.Fatal("sync replay never reported the new tracking id")
	}

	for i, ev := range events[:sawSlotIndex] {
		if ev.Type == input.EV_ABS && ev.Code == input.ABS_MT_POSITION_X {
			t.Fatalf("ABS_MT_POSITION_X at index %d arrived before ABS_MT_TRACKING_ID at %d", i, sawSlotIndex)
		}
	}

	value, err := dev.SlotValue(0, input.ABS_MT_TRACKING_ID)
	if err != nil || value != 7 {
		t.Fatalf("SlotValue(0, ABS_MT_TRACKING_ID) = (%d, %v), want (7, nil)", value, err)
	}
}
