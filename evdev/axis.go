package evdev

import "github.com/andrieee44/goevdev/linux/input"

// AxisInfo mirrors the parameters of a single absolute axis. It is the
// package's own copy of input.AbsInfo, kept separate so callers never
// depend on the raw uapi struct layout.
type AxisInfo struct {
	Value      int32
	Minimum    int32
	Maximum    int32
	Fuzz       int32
	Flat       int32
	Resolution int32
}

// axisStore holds the AxisInfo for every non-MT ABS_* code the device
// supports. Queries for an unsupported code return the zero value, not
// an error: scalar axis reads never fail at the call site.
type axisStore struct {
	info map[uint16]*AxisInfo
}

func newAxisStore() *axisStore {
	return &axisStore{info: make(map[uint16]*AxisInfo)}
}

// Get returns the stored AxisInfo for code, and false if code is not a
// known absolute axis on this device.
func (s *axisStore) Get(code uint16) (AxisInfo, bool) {
	var (
		info *AxisInfo
		ok   bool
	)

	info, ok = s.info[code]
	if !ok {
		return AxisInfo{}, false
	}

	return *info, true
}

// Value returns just the current value for code, or 0 if code is not
// supported — matching the historical evdev contract that a scalar read
// on an absent axis is a no-op, not a failure.
func (s *axisStore) Value(code uint16) int32 {
	var info *AxisInfo

	info = s.info[code]
	if info == nil {
		return 0
	}

	return info.Value
}

// SetValue updates the cached value for code, if the device supports
// it.
func (s *axisStore) SetValue(code uint16, value int32) {
	var info *AxisInfo

	info = s.info[code]
	if info != nil {
		info.Value = value
	}
}

// AxisMinimum returns the device's minimum for code, or 0 if code is
// unsupported.
func (d *Device) AxisMinimum(code uint16) (int32, error) {
	if !d.attached {
		return 0, newError("axis minimum", NotAttached, nil)
	}

	return d.axes.scalar(code, func(i *AxisInfo) int32 { return i.Minimum }), nil
}

// AxisMaximum returns the device's maximum for code, or 0 if code is
// unsupported.
func (d *Device) AxisMaximum(code uint16) (int32, error) {
	if !d.attached {
		return 0, newError("axis maximum", NotAttached, nil)
	}

	return d.axes.scalar(code, func(i *AxisInfo) int32 { return i.Maximum }), nil
}

// AxisFuzz returns the device's noise filter for code, or 0 if code is
// unsupported.
func (d *Device) AxisFuzz(code uint16) (int32, error) {
	if !d.attached {
		return 0, newError("axis fuzz", NotAttached, nil)
	}

	return d.axes.scalar(code, func(i *AxisInfo) int32 { return i.Fuzz }), nil
}

// AxisFlat returns the device's dead-zone for code, or 0 if code is
// unsupported.
func (d *Device) AxisFlat(code uint16) (int32, error) {
	if !d.attached {
		return 0, newError("axis flat", NotAttached, nil)
	}

	return d.axes.scalar(code, func(i *AxisInfo) int32 { return i.Flat }), nil
}

// AxisResolution returns the device's reported resolution for code, or
// 0 if code is unsupported.
func (d *Device) AxisResolution(code uint16) (int32, error) {
	if !d.attached {
		return 0, newError("axis resolution", NotAttached, nil)
	}

	return d.axes.scalar(code, func(i *AxisInfo) int32 { return i.Resolution }), nil
}

// SetAxisInfo replaces the cached axis parameters for code wholesale,
// without touching the kernel. Use KernelSetAbsInfo to also update the
// device. Fails with InvalidArgument if code is not a supported axis.
func (d *Device) SetAxisInfo(code uint16, info AxisInfo) error {
	if !d.attached {
		return newError("set axis info", NotAttached, nil)
	}

	if _, ok := d.axes.info[code]; !ok {
		return newError("set axis info", InvalidArgument, nil)
	}

	d.axes.info[code] = &AxisInfo{
		Value:      info.Value,
		Minimum:    info.Minimum,
		Maximum:    info.Maximum,
		Fuzz:       info.Fuzz,
		Flat:       info.Flat,
		Resolution: info.Resolution,
	}

	return nil
}

func (s *axisStore) set(code uint16, raw input.AbsInfo) {
	s.info[code] = &AxisInfo{
		Value:      raw.Value,
		Minimum:    raw.Minimum,
		Maximum:    raw.Maximum,
		Fuzz:       raw.Fuzz,
		Flat:       raw.Flat,
		Resolution: raw.Resolution,
	}
}

// scalar returns one field of the AxisInfo for code via get, or 0 if
// code is not a known axis, so min/max/fuzz/flat/resolution reads on an
// unsupported code need no branch at the call site.
func (s *axisStore) scalar(code uint16, get func(*AxisInfo) int32) int32 {
	info := s.info[code]
	if info == nil {
		return 0
	}

	return get(info)
}

// codes returns the ABS_* codes currently stored, in ascending order.
func (s *axisStore) codes() []uint16 {
	var (
		out  []uint16
		code uint16
	)

	for code = 0; code <= input.ABS_MAX; code++ {
		if _, ok := s.info[code]; ok {
			out = append(out, code)
		}
	}

	return out
}
