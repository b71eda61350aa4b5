package evdev

import "github.com/andrieee44/goevdev/linux/input"

// kernelHandle is the subset of *input.Handle's method set this package
// depends on. Depending on the interface rather than *input.Handle
// directly lets tests substitute a fake that returns fixed
// capability/state data without opening a real /dev/input/eventN node.
//
// *input.Handle satisfies this interface without any change on its
// side: every method below already exists on it with a matching
// signature.
type kernelHandle interface {
	Fd() uintptr
	Close() error
	Read(buf []byte) (int, error)
	Write(buf []byte) (int, error)

	Version() (int32, error)
	ID() (input.ID, error)
	Name() (string, error)
	Phys() (string, error)
	Uniq() (string, error)

	Props() ([]byte, error)
	TypeBits() ([]byte, error)
	CodeBits(ev uint, nbits uint) ([]byte, error)

	KeyState() ([]byte, error)
	LEDState() ([]byte, error)
	SwitchState() ([]byte, error)

	AbsInfo(axis uint) (input.AbsInfo, error)
	SetAbsInfo(axis uint, info input.AbsInfo) error

	Grab(grab bool) error
	SetClockID(id int32) error

	RepeatSettings() (delay, period uint32, err error)
	SetRepeatSettings(delay, period uint32) error

	MTSlotValues(code uint32, numSlots int) ([]int32, error)
}

var _ kernelHandle = (*input.Handle)(nil)
