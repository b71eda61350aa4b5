// Package evdev implements a stateful model of a Linux /dev/input/eventN
// device on top of package input's raw uapi bindings: identity and
// capability caching, per-axis and per-slot value tracking, SYN_DROPPED
// recovery via a delta-replay sync engine, and a small event reader
// state machine.
package evdev

// readerState is the EventReader's current mode.
type readerState int

const (
	// stateNormal delivers events straight from the kernel read loop.
	stateNormal readerState = iota

	// stateSync delivers synthetic events from the queue, whether it
	// was populated by a SYN_DROPPED recovery or a caller-forced sync;
	// the queue is already full by the time either entry path returns,
	// so no separate pending state is needed.
	stateSync
)

// Device is the stateful model of one open evdev character device. The
// zero value is not attached to anything; call Attach to bind it to an
// open file descriptor.
type Device struct {
	handle   kernelHandle
	attached bool

	identity Identity
	caps     *CapabilityBits
	axes     *axisStore
	scalar   *scalarStore
	slots    *SlotTable

	clockID int32
	grab    GrabState

	queue           *eventQueue
	state           readerState
	pendingSnapshot *snapshot
}

// Attach binds the Device to fd, which must already be an open
// /dev/input/eventN file descriptor, and runs the one-shot capability
// probe: protocol version, identity, capability bitmasks, current axis
// and scalar state, and (if supported) the multi-touch slot table.
// Missing optional ioctls degrade gracefully and are logged at
// LogInfo; only a failing EVIOCGVERSION, EVIOCGID, EVIOCGBIT, or
// EVIOCGNAME aborts the attach.
func (d *Device) Attach(h kernelHandle) error {
	if d.attached {
		return newError("attach", AlreadyAttached, nil)
	}

	return d.init(h)
}

// Close releases the underlying file descriptor. The Device reverts to
// an unattached state and every accessor returns NotAttached until
// Attach is called again.
func (d *Device) Close() error {
	if !d.attached {
		return newError("close", NotAttached, nil)
	}

	d.attached = false

	return d.handle.Close()
}

// Identity returns the device's static identification fields captured
// at Attach time.
func (d *Device) Identity() (Identity, error) {
	if !d.attached {
		return Identity{}, newError("identity", NotAttached, nil)
	}

	return d.identity, nil
}

// Capabilities returns the device's cached capability bitmask.
func (d *Device) Capabilities() (*CapabilityBits, error) {
	if !d.attached {
		return nil, newError("capabilities", NotAttached, nil)
	}

	return d.caps, nil
}

// Fd returns the underlying file descriptor, or an error if the Device
// is not attached.
func (d *Device) Fd() (uintptr, error) {
	if !d.attached {
		return 0, newError("fd", NotAttached, nil)
	}

	return d.handle.Fd(), nil
}

// ChangeDescriptor swaps the underlying file descriptor for h without
// re-running the capability probe. Use this when the caller has
// reopened the same physical device (e.g. after a suspend/resume cycle
// that invalidated the old fd) and wants to keep the cached model
// rather than pay for a fresh Attach. The reader state and queue are
// left untouched; a sync in progress continues to reference the old
// snapshot until drained or abandoned.
func (d *Device) ChangeDescriptor(h kernelHandle) error {
	if !d.attached {
		return newError("change descriptor", NotAttached, nil)
	}

	d.handle = h

	return nil
}
