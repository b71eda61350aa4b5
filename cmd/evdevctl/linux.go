//go:build linux

package main

import "github.com/andrieee44/goevdev/linux/input"

var devicePaths []string = func() []string {
	var (
		paths []string
		err   error
	)

	paths, err = input.Devices()
	exitIf(err)

	return paths
}()
