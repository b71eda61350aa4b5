package evdev

import "github.com/andrieee44/goevdev/linux/input"

// eventQueue is a FIFO of pending synthetic events produced by
// SyncEngine and drained by EventReader.Next. Its initial capacity is
// set at Attach time, sized to the worst case this device's capability
// set can produce in one sync pass (keys + LEDs + switches + non-MT axes
// + MT axes across every slot, plus one terminating SYN_REPORT); Push
// grows the buffer if that capacity is exceeded.
type eventQueue struct {
	buf   []input.Event
	head  int
	count int
}

func newEventQueue(capacity int) *eventQueue {
	if capacity < 1 {
		capacity = 1
	}

	return &eventQueue{buf: make([]input.Event, capacity)}
}

// Len returns the number of queued events.
func (q *eventQueue) Len() int {
	return q.count
}

// Push appends an event, growing the backing buffer if the initial
// capacity set at Attach time turns out to be too small (a capability
// count this package miscalculated, not a steady-state occurrence).
func (q *eventQueue) Push(ev input.Event) {
	if q.count == len(q.buf) {
		q.grow()
	}

	q.buf[(q.head+q.count)%len(q.buf)] = ev
	q.count++
}

func (q *eventQueue) grow() {
	var next []input.Event

	next = make([]input.Event, len(q.buf)*2)

	var i int
	for i = 0; i < q.count; i++ {
		next[i] = q.buf[(q.head+i)%len(q.buf)]
	}

	q.buf = next
	q.head = 0
}

// Pop removes and returns the oldest queued event.
func (q *eventQueue) Pop() (input.Event, bool) {
	var ev input.Event

	if q.count == 0 {
		return input.Event{}, false
	}

	ev = q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.count--

	return ev, true
}

// Clear discards every queued event, used when an in-progress sync is
// abandoned.
func (q *eventQueue) Clear() {
	q.head, q.count = 0, 0
}

// queueCapacity sizes a queue for the worst case this device's
// CapabilityBits and SlotTable can produce in one sync pass: one event
// per supported key/LED/switch/non-MT-axis code, plus one event per
// supported MT axis per tracked slot, one ABS_MT_SLOT marker per slot,
// and the terminating SYN_REPORT.
func queueCapacity(caps *CapabilityBits, axes *axisStore, slots *SlotTable) int {
	var n int

	n = len(caps.Codes(input.EV_KEY)) +
		len(caps.Codes(input.EV_LED)) +
		len(caps.Codes(input.EV_SW)) +
		len(axes.codes())

	if slots != nil && slots.NumSlots > 0 {
		n += (len(slots.Codes()) + 1) * slots.NumSlots
	}

	return n + 1
}
