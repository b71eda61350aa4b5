package evdev

import (
	"github.com/andrieee44/goevdev/internal/mathx"
	"github.com/andrieee44/goevdev/linux/input"
)

// MaxTrackedSlots bounds the number of multi-touch slots this package
// will allocate a SlotTable row for, regardless of what the device
// itself reports. A device claiming more than this is treated as
// reporting MaxTrackedSlots.
const MaxTrackedSlots = 60

// SlotTable holds the per-slot values of every ABS_MT_* axis the device
// supports, plus which slot is currently selected. NumSlots is -1 for a
// device that does not implement true multi-touch slots (see
// fakeMT below).
type SlotTable struct {
	// NumSlots is the number of tracked slots, capped at
	// MaxTrackedSlots, or -1 if the device has no real slot protocol.
	NumSlots int

	// CurrentSlot is the slot last selected by an ABS_MT_SLOT event.
	CurrentSlot int

	codes []uint16
	rows  [][]int32 // rows[slot][codeIndex]
	index map[uint16]int
}

// fakeMT reports whether the device sets the bit directly below
// ABS_MT_SLOT (ABS_RESERVED) alongside ABS_MT_SLOT itself. Devices
// predating the slot protocol used that axis range incidentally, so the
// collision means the ABS_MT_* bits carry no slot semantics here.
func fakeMT(caps *CapabilityBits) bool {
	return caps.HasCode(input.EV_ABS, input.ABS_MT_SLOT) &&
		caps.HasCode(input.EV_ABS, input.ABS_RESERVED)
}

// isMTCode reports whether code falls in the ABS_MT_* range
// (ABS_MT_SLOT through ABS_MAX).
func isMTCode(code uint16) bool {
	return code >= input.ABS_MT_SLOT && code <= input.ABS_MAX
}

func newSlotTable(h kernelHandle, caps *CapabilityBits) (*SlotTable, error) {
	var (
		t       SlotTable
		info    input.AbsInfo
		numSlot int
		code    uint16
		err     error
	)

	if !caps.HasCode(input.EV_ABS, input.ABS_MT_SLOT) || fakeMT(caps) {
		return &SlotTable{NumSlots: -1}, nil
	}

	info, err = h.AbsInfo(input.ABS_MT_SLOT)
	if err != nil {
		logf(LogInfo, "slots.go", 0, "EVIOCGABS(ABS_MT_SLOT) failed: "+err.Error())
		return &SlotTable{NumSlots: -1}, nil
	}

	numSlot = mathx.Clamp(int(info.Maximum)+1, 1, MaxTrackedSlots)

	t.NumSlots = numSlot
	t.index = make(map[uint16]int)

	for code = input.ABS_MT_TOUCH_MAJOR; code <= input.ABS_MT_TOOL_Y; code++ {
		if code == input.ABS_MT_SLOT {
			continue
		}

		if caps.HasCode(input.EV_ABS, code) {
			t.index[code] = len(t.codes)
			t.codes = append(t.codes, code)
		}
	}

	t.rows = make([][]int32, numSlot)

	var slot int
	for slot = 0; slot < numSlot; slot++ {
		t.rows[slot] = make([]int32, len(t.codes))
	}

	for _, code = range t.codes {
		var values []int32

		values, err = h.MTSlotValues(uint32(code), numSlot)
		if err != nil {
			logf(LogInfo, "slots.go", 0, "EVIOCGMTSLOTS degraded: "+err.Error())
			continue
		}

		var i int
		for i = 0; i < numSlot && i < len(values); i++ {
			t.rows[i][t.index[code]] = values[i]
		}
	}

	return &t, nil
}

// Value returns the stored value for code in slot. It returns 0 if slot
// is out of range or code is not tracked, matching the no-error scalar
// contract axisStore.Value shares.
func (t *SlotTable) Value(slot int, code uint16) int32 {
	var (
		idx int
		ok  bool
	)

	if t == nil || t.NumSlots < 0 || slot < 0 || slot >= len(t.rows) {
		return 0
	}

	idx, ok = t.index[code]
	if !ok {
		return 0
	}

	return t.rows[slot][idx]
}

// SetValue stores value for code in slot. Out-of-range slots and
// unsupported codes are silently ignored.
func (t *SlotTable) SetValue(slot int, code uint16, value int32) {
	var (
		idx int
		ok  bool
	)

	if t == nil || t.NumSlots < 0 || slot < 0 || slot >= len(t.rows) {
		return
	}

	idx, ok = t.index[code]
	if !ok {
		return
	}

	t.rows[slot][idx] = value
}

// Codes returns the ABS_MT_* codes this table tracks, in kernel-header
// order (ABS_MT_SLOT excluded, since it selects rows rather than being
// one).
func (t *SlotTable) Codes() []uint16 {
	if t == nil {
		return nil
	}

	return t.codes
}

// ClampSlot folds an arbitrary reported slot index into [0, NumSlots).
func (t *SlotTable) ClampSlot(slot int) int {
	if t.NumSlots <= 0 {
		return 0
	}

	return mathx.Clamp(slot, 0, t.NumSlots-1)
}
