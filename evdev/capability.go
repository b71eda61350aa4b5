package evdev

import (
	"fmt"

	"github.com/andrieee44/goevdev/linux/input"
)

// CapabilityBits records, for each event type the device supports,
// which codes within that type are implemented. It answers "can this
// device ever send EV_KEY/KEY_A" without another syscall.
type CapabilityBits struct {
	types []bool
	codes map[uint16][]bool
}

// HasType reports whether the device supports event type ev at all.
func (c *CapabilityBits) HasType(ev uint16) bool {
	if int(ev) >= len(c.types) {
		return false
	}

	return c.types[ev]
}

// HasCode reports whether the device supports code within event type
// ev. It is always false for a type that fails HasType, even if the
// per-code bit for code is still set underneath: clearing a type bit
// makes every one of its codes report absent regardless of the code
// bit.
func (c *CapabilityBits) HasCode(ev, code uint16) bool {
	var (
		bits []bool
		ok   bool
	)

	if !c.HasType(ev) {
		return false
	}

	bits, ok = c.codes[ev]
	if !ok || int(code) >= len(bits) {
		return false
	}

	return bits[code]
}

// Types returns the sorted-by-value list of event types the device
// supports.
func (c *CapabilityBits) Types() []uint16 {
	var (
		out []uint16
		ev  int
	)

	for ev = 0; ev < len(c.types); ev++ {
		if c.types[ev] {
			out = append(out, uint16(ev))
		}
	}

	return out
}

// Codes returns the sorted-by-value list of codes the device supports
// within event type ev.
func (c *CapabilityBits) Codes(ev uint16) []uint16 {
	var (
		out  []uint16
		bits []bool
		code int
		ok   bool
	)

	bits, ok = c.codes[ev]
	if !ok {
		return nil
	}

	for code = 0; code < len(bits); code++ {
		if bits[code] {
			out = append(out, uint16(code))
		}
	}

	return out
}

// setType marks event type ev as supported, growing the backing slice
// if ev falls beyond what Attach originally sized.
func (c *CapabilityBits) setType(ev uint16) {
	c.growTypes(int(ev) + 1)
	c.types[ev] = true
}

// clearType marks event type ev as unsupported. Every code under ev is
// implicitly unsupported from then on regardless of its own bit
// (HasCode short-circuits on HasType), so the per-code slice is left
// untouched rather than zeroed.
func (c *CapabilityBits) clearType(ev uint16) {
	if int(ev) < len(c.types) {
		c.types[ev] = false
	}
}

// setCode marks code as supported under event type ev, implicitly
// setting the type bit as well, since HasCode implies HasType.
func (c *CapabilityBits) setCode(ev, code uint16) {
	c.setType(ev)
	c.growCodes(ev, int(code)+1)
	c.codes[ev][code] = true
}

// clearCode marks code as unsupported under ev, leaving the type bit
// alone (other codes of the same type may remain supported).
func (c *CapabilityBits) clearCode(ev, code uint16) {
	var bits []bool

	bits = c.codes[ev]
	if int(code) < len(bits) {
		bits[code] = false
	}
}

func (c *CapabilityBits) growTypes(n int) {
	var grown []bool

	if n <= len(c.types) {
		return
	}

	grown = make([]bool, n)
	copy(grown, c.types)
	c.types = grown
}

func (c *CapabilityBits) growCodes(ev uint16, n int) {
	var (
		bits  []bool
		grown []bool
	)

	if c.codes == nil {
		c.codes = make(map[uint16][]bool)
	}

	bits = c.codes[ev]
	if n <= len(bits) {
		return
	}

	grown = make([]bool, n)
	copy(grown, bits)
	c.codes[ev] = grown
}

func capabilityFromHandle(h kernelHandle) (*CapabilityBits, error) {
	var (
		c       CapabilityBits
		typeRaw []byte
		ev      uint16
		maxv    uint16
		ok      bool
		err     error
	)

	typeRaw, err = h.TypeBits()
	if err != nil {
		return nil, newError("attach", kindFor(err), err)
	}

	c.types = make([]bool, input.EV_CNT)
	c.codes = make(map[uint16][]bool)

	for ev = 0; ev < input.EV_CNT; ev++ {
		if !input.TestBit(typeRaw, uint(ev)) {
			continue
		}

		c.types[ev] = true

		if ev == input.EV_SYN {
			continue
		}

		maxv, ok = MaxForType(ev)
		if !ok {
			continue
		}

		c.codes[ev], err = codeBitsFromHandle(h, ev, maxv)
		if err != nil {
			logf(LogInfo, "capability.go", 0, fmt.Sprintf("EVIOCGBIT degraded for type %d", ev))
			continue
		}
	}

	return &c, nil
}

func codeBitsFromHandle(h kernelHandle, ev uint16, maxv uint16) ([]bool, error) {
	var (
		raw  []byte
		bits []bool
		code uint16
		err  error
	)

	raw, err = h.CodeBits(uint(ev), uint(maxv)+1)
	if err != nil {
		return nil, err
	}

	bits = make([]bool, int(maxv)+1)
	for code = 0; code <= maxv; code++ {
		bits[code] = input.TestBit(raw, uint(code))
	}

	return bits, nil
}
