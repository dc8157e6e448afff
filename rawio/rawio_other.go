//go:build !unix && !windows

// File: rawio/rawio_other.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package rawio

import "github.com/momentics/atomlog/api"

// FD is a raw descriptor.
type FD int

// Stdout returns the standard output descriptor.
func Stdout() FD { return 1 }

// Stderr returns the standard error descriptor.
func Stderr() FD { return 2 }

// Write is not available on this platform.
func Write(fd FD, p []byte) error {
	return api.ErrNotSupported
}
