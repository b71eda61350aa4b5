// Package main implements evdevctl, a CLI that discovers /dev/input
// event devices, prints their identity and capability information, and
// can stream their decoded event traffic.
//
// With no arguments it lists every discovered device. Given "watch"
// and a device path, it attaches to that device and prints each event
// as it arrives, resynchronizing automatically on SYN_DROPPED. The
// last successfully watched path is remembered across runs in the
// user's XDG state directory.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/andrieee44/goevdev/evdev"
	"github.com/andrieee44/goevdev/linux/input"
	"github.com/andrieee44/goevdev/xdg"
)

const lastDeviceFile = "evdevctl/last-device"

func exitIf(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "evdevctl:", err)
		os.Exit(1)
	}
}

func rememberDevice(path string) {
	var (
		file *os.File
		err  error
	)

	file, err = xdg.StateFile(lastDeviceFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "evdevctl: warning: could not persist last device:", err)
		return
	}
	defer file.Close()

	_, err = file.WriteString(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "evdevctl: warning: could not persist last device:", err)
	}
}

func lastDevice() string {
	var (
		file *os.File
		buf  [256]byte
		n    int
		err  error
	)

	file, err = xdg.StateFile(lastDeviceFile)
	if err != nil {
		return ""
	}
	defer file.Close()

	n, err = file.Read(buf[:])
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(buf[:n]))
}

func describeDevice(path string) error {
	var (
		handle   *input.Handle
		dev      evdev.Device
		id       evdev.Identity
		caps     *evdev.CapabilityBits
		builder  strings.Builder
		ev       uint16
		err      error
	)

	handle, err = input.Open(path)
	if err != nil {
		return err
	}

	err = dev.Attach(handle)
	if err != nil {
		handle.Close()
		return err
	}
	defer dev.Close()

	id, err = dev.Identity()
	if err != nil {
		return err
	}

	caps, err = dev.Capabilities()
	if err != nil {
		return err
	}

	builder.WriteString(fmt.Sprintf("%s\n", path))
	builder.WriteString(fmt.Sprintf("  Name: %s\n", id.Name))
	builder.WriteString(fmt.Sprintf("  Phys: %s\n", id.Phys))
	builder.WriteString(fmt.Sprintf("  Bus: %#04x Vendor: %#04x Product: %#04x Version: %#04x\n",
		id.Bus, id.Vendor, id.Product, id.Version))
	builder.WriteString("  Supported event types:\n")

	for _, ev = range caps.Types() {
		var (
			name string
			ok   bool
			code uint16
		)

		name, ok = evdev.GetEventName(ev)
		if !ok {
			name = fmt.Sprintf("type %d", ev)
		}

		builder.WriteString(fmt.Sprintf("    %s\n", name))

		for _, code = range caps.Codes(ev) {
			var codeName string

			codeName, ok = evdev.GetCodeName(ev, code)
			if !ok {
				codeName = fmt.Sprintf("code %d", code)
			}

			builder.WriteString(fmt.Sprintf("      %s\n", codeName))
		}
	}

	fmt.Print(builder.String())

	return nil
}

func listDevices() {
	var (
		path string
		err  error
	)

	for _, path = range devicePaths {
		err = describeDevice(path)
		exitIf(err)

		fmt.Println(strings.Repeat("-", 60))
	}
}

func watchDevice(path string) {
	var (
		handle *input.Handle
		dev    evdev.Device
		err    error
	)

	handle, err = input.Open(path)
	exitIf(err)

	err = dev.Attach(handle)
	exitIf(err)
	defer dev.Close()

	rememberDevice(path)

	for {
		var (
			status evdev.ReadStatus
			ev     input.Event
		)

		status, ev, err = dev.Next(evdev.ReadNormal | evdev.ReadBlocking)
		exitIf(err)

		switch status {
		case evdev.StatusSync:
			fmt.Println("-- resynchronizing --")
		case evdev.StatusSuccess:
			printEvent(ev)
		}
	}
}

func printEvent(ev input.Event) {
	var (
		typeName, codeName string
		ok                 bool
	)

	typeName, ok = evdev.GetEventName(ev.Type)
	if !ok {
		typeName = fmt.Sprintf("type %d", ev.Type)
	}

	codeName, ok = evdev.GetCodeName(ev.Type, ev.Code)
	if !ok {
		codeName = fmt.Sprintf("code %d", ev.Code)
	}

	fmt.Printf("%s.%06d  %-12s %-20s %d\n", formatSec(ev.Sec), ev.Usec, typeName, codeName, ev.Value)
}

func formatSec(sec int64) string {
	return fmt.Sprintf("%d", sec)
}

func main() {
	var args []string

	args = os.Args[1:]

	if len(args) == 0 {
		listDevices()
		return
	}

	switch args[0] {
	case "watch":
		var path string

		if len(args) >= 2 {
			path = args[1]
		} else {
			path = lastDevice()
		}

		if path == "" {
			fmt.Fprintln(os.Stderr, "evdevctl: watch requires a device path (none remembered yet)")
			os.Exit(1)
		}

		watchDevice(path)
	default:
		listDevices()
	}
}
