//go:build linux

// Package input implements the Linux kernel's [input.h] userspace API: the
// wire shape of struct input_event and struct input_absinfo, the evdev
// ioctl request codes, the compile-time event-code constant tables, and a
// thin wrapper for opening /dev/input/eventN nodes.
//
// Package evdev builds the stateful device model on top of this package.
//
// [input.h]: https://github.com/torvalds/linux/blob/master/include/uapi/linux/input.h
package input
