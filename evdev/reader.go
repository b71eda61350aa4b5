package evdev

import (
	"encoding/binary"
	"errors"
	"math/bits"
	"time"

	"github.com/andrieee44/goevdev/linux/input"
)

// ReadFlag selects the mode of a single Next call. Exactly one of
// ReadNormal, ReadSync, or ReadForceSync must be set; ReadBlocking may
// be combined with either.
type ReadFlag int

const (
	// ReadNormal reads the next event from the kernel in normal mode.
	// If a sync is still pending it is abandoned first: the sync queue
	// is discarded, the model is fast-forwarded to the sync snapshot,
	// and the normal read follows within the same call.
	ReadNormal ReadFlag = 1 << iota

	// ReadSync drains one synthesized event from the sync queue.
	ReadSync

	// ReadForceSync runs the sync engine against fresh kernel state
	// regardless of current mode.
	ReadForceSync

	// ReadBlocking allows Next to honor a descriptor that is not set
	// non-blocking; it changes nothing about event ordering or model
	// updates.
	ReadBlocking

	modeMask = ReadNormal | ReadSync | ReadForceSync
)

// ReadStatus reports what kind of result Next produced.
type ReadStatus int

const (
	// StatusSuccess indicates a real kernel event was read and applied.
	StatusSuccess ReadStatus = iota

	// StatusSync indicates a synthesized sync event (or, for
	// ReadForceSync, an undefined placeholder event the caller should
	// not inspect) was produced.
	StatusSync

	// StatusAgain indicates no event was available; the caller should
	// retry later.
	StatusAgain
)

const eventWireSize = 24

func decodeEvent(buf []byte) input.Event {
	return input.Event{
		Sec:   int64(binary.NativeEndian.Uint64(buf[0:8])),
		Usec:  int64(binary.NativeEndian.Uint64(buf[8:16])),
		Type:  binary.NativeEndian.Uint16(buf[16:18]),
		Code:  binary.NativeEndian.Uint16(buf[18:20]),
		Value: int32(binary.NativeEndian.Uint32(buf[20:24])),
	}
}

func encodeEvent(ev input.Event) []byte {
	buf := make([]byte, eventWireSize)

	binary.NativeEndian.PutUint64(buf[0:8], uint64(ev.Sec))
	binary.NativeEndian.PutUint64(buf[8:16], uint64(ev.Usec))
	binary.NativeEndian.PutUint16(buf[16:18], ev.Type)
	binary.NativeEndian.PutUint16(buf[18:20], ev.Code)
	binary.NativeEndian.PutUint32(buf[20:24], uint32(ev.Value))

	return buf
}

func timestampNow() input.Event {
	var now time.Time

	now = time.Now()

	return input.Event{Sec: now.Unix(), Usec: int64(now.Nanosecond() / 1000)}
}

// applyEvent folds ev into the cached model, the same update a drained
// sync event and a normally-read event both go through.
func applyEvent(d *Device, ev input.Event) {
	switch ev.Type {
	case input.EV_KEY, input.EV_LED, input.EV_SW, input.EV_REP:
		d.scalar.Set(ev.Type, ev.Code, ev.Value)
	case input.EV_ABS:
		applyAbsEvent(d, ev)
	}
}

func applyAbsEvent(d *Device, ev input.Event) {
	if d.slots.NumSlots <= 0 || !isMTCode(ev.Code) {
		d.axes.SetValue(ev.Code, ev.Value)
		return
	}

	if ev.Code == input.ABS_MT_SLOT {
		// A negative slot value is ignored and CurrentSlot keeps its
		// previous value, so the per-slot writes that follow in this
		// frame update that previously selected slot; they are not
		// dropped. Values past the last slot are clamped to it.
		if ev.Value >= 0 {
			d.slots.CurrentSlot = d.slots.ClampSlot(int(ev.Value))
		}

		return
	}

	d.slots.SetValue(d.slots.CurrentSlot, ev.Code, ev.Value)
}

// Next is the single client-facing streaming operation. flags selects
// exactly one of ReadNormal, ReadSync, or ReadForceSync, optionally
// combined with ReadBlocking.
func (d *Device) Next(flags ReadFlag) (ReadStatus, input.Event, error) {
	if !d.attached {
		return StatusAgain, input.Event{}, newError("next", NotAttached, nil)
	}

	mode := flags & modeMask
	if bits.OnesCount(uint(mode)) != 1 {
		return StatusAgain, input.Event{}, newError("next", InvalidArgument, nil)
	}

	switch mode {
	case ReadForceSync:
		d.runSync(timestampNow())
		return StatusSync, input.Event{}, nil
	case ReadSync:
		return d.nextSync()
	default:
		return d.nextNormal()
	}
}

func (d *Device) nextSync() (ReadStatus, input.Event, error) {
	if d.state != stateSync {
		return StatusAgain, input.Event{}, nil
	}

	ev, ok := d.queue.Pop()
	if !ok {
		d.state = stateNormal
		d.pendingSnapshot = nil

		return StatusAgain, input.Event{}, nil
	}

	applyEvent(d, ev)

	return StatusSync, ev, nil
}

func (d *Device) nextNormal() (ReadStatus, input.Event, error) {
	if d.state == stateSync {
		d.abandonSync()
	}

	for {
		ev, err := d.readKernelEvent()
		if err != nil {
			if kindFor(err) == WouldBlock {
				return StatusAgain, input.Event{}, nil
			}

			return StatusAgain, input.Event{}, newError("next", kindFor(err), err)
		}

		if ev.Type == input.EV_SYN && ev.Code == input.SYN_DROPPED {
			d.runSync(ev)
			return StatusSync, ev, nil
		}

		// Events whose code was disabled locally are dropped from the
		// stream; EV_SYN markers always pass through.
		if ev.Type != input.EV_SYN && !d.caps.HasCode(ev.Type, ev.Code) {
			continue
		}

		applyEvent(d, ev)

		return StatusSuccess, ev, nil
	}
}

func (d *Device) readKernelEvent() (input.Event, error) {
	var buf [eventWireSize]byte

	n, err := d.handle.Read(buf[:])
	if err != nil {
		return input.Event{}, err
	}

	if n < eventWireSize {
		return input.Event{}, errors.New("evdev: short read from event device")
	}

	return decodeEvent(buf[:]), nil
}
