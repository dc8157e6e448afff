//go:build unix

// File: rawio/rawio_unix.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rawio

import (
	"io"

	"golang.org/x/sys/unix"
)

// FD is a raw descriptor.
type FD int

// Stdout returns the standard output descriptor.
func Stdout() FD { return FD(unix.Stdout) }

// Stderr returns the standard error descriptor.
func Stderr() FD { return FD(unix.Stderr) }

// Write writes all of p to fd, retrying on EINTR and short writes.
func Write(fd FD, p []byte) error {
	for len(p) > 0 {
		n, err := unix.Write(int(fd), p)
		if err == unix.EINTR {
			continue
		}
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
