package evdev

import "github.com/andrieee44/goevdev/linux/input"

// snapshot is the fresh kernel state the sync engine diffs against the
// cached model. It holds exactly the state the init probe itself reads,
// minus identity and name.
type snapshot struct {
	keys, leds, switches map[uint16]int32
	axes                 map[uint16]int32 // non-MT EV_ABS values only
	slotRows             [][]int32        // nil unless the device has real MT slots
}

func takeSnapshot(d *Device) *snapshot {
	var snap snapshot

	snap.keys = snapshotBitmask(d.handle.KeyState, d.caps, input.EV_KEY)
	snap.leds = snapshotBitmask(d.handle.LEDState, d.caps, input.EV_LED)
	snap.switches = snapshotBitmask(d.handle.SwitchState, d.caps, input.EV_SW)
	snap.axes = snapshotAxes(d)

	if d.slots.NumSlots > 0 {
		snap.slotRows = snapshotSlots(d)
	}

	return &snap
}

func snapshotBitmask(read func() ([]byte, error), caps *CapabilityBits, ev uint16) map[uint16]int32 {
	var (
		out  map[uint16]int32
		raw  []byte
		code uint16
		err  error
	)

	out = make(map[uint16]int32)

	raw, err = read()
	if err != nil {
		logf(LogInfo, "sync.go", 0, "snapshot bitmask degraded: "+err.Error())
		return out
	}

	for _, code = range caps.Codes(ev) {
		if input.TestBit(raw, uint(code)) {
			out[code] = 1
		} else {
			out[code] = 0
		}
	}

	return out
}

func snapshotAxes(d *Device) map[uint16]int32 {
	var (
		out  map[uint16]int32
		code uint16
	)

	out = make(map[uint16]int32)

	for _, code = range d.axes.codes() {
		var (
			info input.AbsInfo
			err  error
		)

		info, err = d.handle.AbsInfo(uint(code))
		if err != nil {
			logf(LogInfo, "sync.go", 0, "snapshot axis degraded: "+err.Error())
			continue
		}

		out[code] = info.Value
	}

	return out
}

func snapshotSlots(d *Device) [][]int32 {
	var (
		rows [][]int32
		code uint16
		slot int
	)

	rows = make([][]int32, d.slots.NumSlots)
	for slot = 0; slot < d.slots.NumSlots; slot++ {
		rows[slot] = make([]int32, len(d.slots.codes))
	}

	for _, code = range d.slots.Codes() {
		var (
			values []int32
			err    error
		)

		values, err = d.handle.MTSlotValues(uint32(code), d.slots.NumSlots)
		if err != nil {
			logf(LogInfo, "sync.go", 0, "snapshot MT slot degraded: "+err.Error())
			continue
		}

		idx := d.slots.index[code]

		for slot = 0; slot < d.slots.NumSlots && slot < len(values); slot++ {
			rows[slot][idx] = values[slot]
		}
	}

	return rows
}

// buildSyncDelta compares the cached model against snap and returns the
// ordered sequence of synthesized events (keys, LEDs, switches, axes,
// then multi-touch slots; the terminating SYN_REPORT is appended by
// runSync). ts stamps every emitted event with the triggering moment's
// timestamp.
func buildSyncDelta(d *Device, snap *snapshot, ts input.Event) []input.Event {
	var events []input.Event

	events = append(events, diffBitmask(d.scalar, input.EV_KEY, snap.keys, ts)...)
	events = append(events, diffBitmask(d.scalar, input.EV_LED, snap.leds, ts)...)
	events = append(events, diffBitmask(d.scalar, input.EV_SW, snap.switches, ts)...)
	events = append(events, diffAxes(d.axes, snap.axes, ts)...)

	if d.slots.NumSlots > 0 {
		events = append(events, diffSlots(d.slots, snap.slotRows, ts)...)
	}

	return events
}

func diffBitmask(scalar *scalarStore, ev uint16, fresh map[uint16]int32, ts input.Event) []input.Event {
	var (
		events []input.Event
		code   uint16
		value  int32
	)

	for code, value = range fresh {
		if scalar.Get(ev, code) != value {
			events = append(events, stampedEvent(ts, ev, code, value))
		}
	}

	return events
}

func diffAxes(axes *axisStore, fresh map[uint16]int32, ts input.Event) []input.Event {
	var (
		events []input.Event
		code   uint16
		value  int32
	)

	for code, value = range fresh {
		if axes.Value(code) != value {
			events = append(events, stampedEvent(ts, input.EV_ABS, code, value))
		}
	}

	return events
}

func diffSlots(slots *SlotTable, fresh [][]int32, ts input.Event) []input.Event {
	var (
		events []input.Event
		slot   int
	)

	for slot = 0; slot < slots.NumSlots && slot < len(fresh); slot++ {
		var changed []uint16

		for _, code := range slots.Codes() {
			idx := slots.index[code]
			if slots.rows[slot][idx] != fresh[slot][idx] {
				changed = append(changed, code)
			}
		}

		if len(changed) == 0 {
			continue
		}

		events = append(events, stampedEvent(ts, input.EV_ABS, input.ABS_MT_SLOT, int32(slot)))
		events = append(events, orderSlotChanges(slots, slot, fresh[slot], changed, ts)...)
	}

	return events
}

// orderSlotChanges applies the tracking-id ordering rule: if
// ABS_MT_TRACKING_ID transitions from -1 to a real id, emit it
// first so the touch exists before any of its other axes arrive; if it
// transitions to -1, emit it last so it correctly terminates the touch.
// Every other changed code keeps the device's natural table order.
func orderSlotChanges(slots *SlotTable, slot int, freshRow []int32, changed []uint16, ts input.Event) []input.Event {
	var (
		events []input.Event
		rest   []uint16
		code   uint16
		hasID  bool
	)

	for _, code = range changed {
		if code == input.ABS_MT_TRACKING_ID {
			hasID = true
			continue
		}

		rest = append(rest, code)
	}

	emitRest := func() {
		for _, code = range rest {
			events = append(events, stampedEvent(ts, input.EV_ABS, code, freshRow[slots.index[code]]))
		}
	}

	if !hasID {
		emitRest()
		return events
	}

	var (
		oldID = slots.rows[slot][slots.index[input.ABS_MT_TRACKING_ID]]
		newID = freshRow[slots.index[input.ABS_MT_TRACKING_ID]]
		idEvent = stampedEvent(ts, input.EV_ABS, input.ABS_MT_TRACKING_ID, newID)
	)

	switch {
	case oldID == -1 && newID != -1:
		events = append(events, idEvent)
		emitRest()
	case newID == -1:
		emitRest()
		events = append(events, idEvent)
	default:
		events = append(events, idEvent)
		emitRest()
	}

	return events
}

func stampedEvent(ts input.Event, ev, code uint16, value int32) input.Event {
	return input.Event{Sec: ts.Sec, Usec: ts.Usec, Type: ev, Code: code, Value: value}
}

// runSync computes the sync delta between the cached model and fresh
// kernel state, appends it to the queue followed by a terminating
// SYN_REPORT (unconditionally, so a forced sync with no changes still
// produces one synthetic event), and stashes the snapshot so an
// abandoned sync can fast-forward the model directly.
func (d *Device) runSync(ts input.Event) {
	var (
		snap   *snapshot
		events []input.Event
	)

	snap = takeSnapshot(d)
	events = buildSyncDelta(d, snap, ts)
	events = append(events, stampedEvent(ts, input.EV_SYN, input.SYN_REPORT, 0))

	d.queue.Clear()

	var ev input.Event
	for _, ev = range events {
		d.queue.Push(ev)
	}

	d.pendingSnapshot = snap
	d.state = stateSync
}

// abandonSync discards whatever remains queued and fast-forwards the
// cached model straight to the last snapshot taken.
func (d *Device) abandonSync() {
	var snap *snapshot

	snap = d.pendingSnapshot
	if snap == nil {
		d.queue.Clear()
		d.state = stateNormal

		return
	}

	applySnapshot(d, snap)
	d.queue.Clear()
	d.pendingSnapshot = nil
	d.state = stateNormal
}

func applySnapshot(d *Device, snap *snapshot) {
	var code uint16
	var value int32

	for code, value = range snap.keys {
		d.scalar.Set(input.EV_KEY, code, value)
	}

	for code, value = range snap.leds {
		d.scalar.Set(input.EV_LED, code, value)
	}

	for code, value = range snap.switches {
		d.scalar.Set(input.EV_SW, code, value)
	}

	for code, value = range snap.axes {
		d.axes.SetValue(code, value)
	}

	if d.slots.NumSlots > 0 && snap.slotRows != nil {
		var slot int

		for slot = 0; slot < d.slots.NumSlots && slot < len(snap.slotRows); slot++ {
			copy(d.slots.rows[slot], snap.slotRows[slot])
		}
	}
}
