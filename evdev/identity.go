package evdev

import "github.com/andrieee44/goevdev/linux/input"

// Identity describes the static, rarely-changing identification fields
// of an input device, captured once during Attach.
type Identity struct {
	// Name is the device name reported by EVIOCGNAME.
	Name string

	// Phys is the device's physical location path (EVIOCGPHYS). Empty
	// when the device does not populate it.
	Phys string

	// Uniq is the device's unique identifier (EVIOCGUNIQ). Empty when
	// the device does not populate it.
	Uniq string

	// Bus, Vendor, Product, and Version mirror struct input_id as
	// reported by EVIOCGID.
	Bus     uint16
	Vendor  uint16
	Product uint16
	Version uint16

	// DriverVersion is the evdev protocol version reported by
	// EVIOCGVERSION.
	DriverVersion int32

	// Props is the set of INPUT_PROP_* bits the device advertises
	// (EVIOCGPROP). Absent on kernels or devices that do not implement
	// the ioctl.
	Props []bool
}

// HasProp reports whether the device advertises input property prop
// (e.g. input.INPUT_PROP_DIRECT).
func (id Identity) HasProp(prop uint16) bool {
	if int(prop) >= len(id.Props) {
		return false
	}

	return id.Props[prop]
}

// SetName overwrites the cached device name. The value is caller-local
// until the next successful Attach, which overwrites it from the
// kernel.
func (d *Device) SetName(name string) {
	d.identity.Name = name
}

// SetPhys overwrites the cached physical location path. Caller-local
// until the next Attach.
func (d *Device) SetPhys(phys string) {
	d.identity.Phys = phys
}

// SetUniq overwrites the cached unique identifier. Caller-local until
// the next Attach.
func (d *Device) SetUniq(uniq string) {
	d.identity.Uniq = uniq
}

// SetBusType overwrites the cached bus type. Caller-local until the
// next Attach.
func (d *Device) SetBusType(bus uint16) {
	d.identity.Bus = bus
}

// SetVendor overwrites the cached vendor id. Caller-local until the
// next Attach.
func (d *Device) SetVendor(vendor uint16) {
	d.identity.Vendor = vendor
}

// SetProduct overwrites the cached product id. Caller-local until the
// next Attach.
func (d *Device) SetProduct(product uint16) {
	d.identity.Product = product
}

// SetVersion overwrites the cached input_id version field. Caller-local
// until the next Attach.
func (d *Device) SetVersion(version uint16) {
	d.identity.Version = version
}

// HasProperty reports whether the device advertises input property
// prop (e.g. input.INPUT_PROP_DIRECT).
func (d *Device) HasProperty(prop uint16) (bool, error) {
	if !d.attached {
		return false, newError("has property", NotAttached, nil)
	}

	return d.identity.HasProp(prop), nil
}

// EnableProperty marks input property prop as supported in the cached
// model, growing Identity.Props if needed. This is caller-local: it
// never issues an ioctl, since the kernel has no "set property" call.
func (d *Device) EnableProperty(prop uint16) error {
	if !d.attached {
		return newError("enable property", NotAttached, nil)
	}

	if int(prop) >= len(d.identity.Props) {
		grown := make([]bool, int(prop)+1)
		copy(grown, d.identity.Props)
		d.identity.Props = grown
	}

	d.identity.Props[prop] = true

	return nil
}

func identityFromHandle(h kernelHandle) (Identity, error) {
	var (
		id      Identity
		ident   input.ID
		version int32
		err     error
	)

	version, err = h.Version()
	if err != nil {
		return Identity{}, newError("attach", NotAnEvdevDevice, err)
	}

	id.DriverVersion = version

	ident, err = h.ID()
	if err != nil {
		return Identity{}, newError("attach", kindFor(err), err)
	}

	id.Bus, id.Vendor, id.Product, id.Version =
		ident.Bustype, ident.Vendor, ident.Product, ident.Version

	id.Name, err = h.Name()
	if err != nil {
		return Identity{}, newError("attach", kindFor(err), err)
	}

	id.Phys, err = h.Phys()
	if err != nil {
		logf(LogInfo, "identity.go", 0, "EVIOCGPHYS unavailable: "+err.Error())
	}

	id.Uniq, err = h.Uniq()
	if err != nil {
		logf(LogInfo, "identity.go", 0, "EVIOCGUNIQ unavailable: "+err.Error())
	}

	id.Props, err = propsFromHandle(h)
	if err != nil {
		logf(LogInfo, "identity.go", 0, "EVIOCGPROP unavailable: "+err.Error())
	}

	return id, nil
}

func propsFromHandle(h kernelHandle) ([]bool, error) {
	var (
		raw  []byte
		bits []bool
		i    uint
		err  error
	)

	raw, err = h.Props()
	if err != nil {
		return nil, err
	}

	bits = make([]bool, input.INPUT_PROP_CNT)
	for i = 0; i < input.INPUT_PROP_CNT; i++ {
		bits[i] = input.TestBit(raw, i)
	}

	return bits, nil
}
