//go:build windows

// File: rawio/rawio_windows.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rawio

import (
	"io"

	"golang.org/x/sys/windows"
)

// FD is a raw handle.
type FD windows.Handle

// Stdout returns the standard output handle.
func Stdout() FD { return FD(windows.Stdout) }

// Stderr returns the standard error handle.
func Stderr() FD { return FD(windows.Stderr) }

// Write writes all of p to fd, retrying on short writes.
func Write(fd FD, p []byte) error {
	for len(p) > 0 {
		n, err := windows.Write(windows.Handle(fd), p)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		p = p[n:]
	}
	return nil
}
