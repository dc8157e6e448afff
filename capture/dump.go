// File: capture/dump.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package capture

import (
	"fmt"

	"github.com/momentics/atomlog/atomlog"
	"github.com/momentics/atomlog/rawio"
)

// SlotReader exposes live slots by index. *atomlog.Store implements it.
type SlotReader interface {
	Slot(i int) *atomlog.Slot
}

// DumpFD writes every non-empty slot, up to its first NUL, followed by a
// newline to fd. The store is left untouched. It uses a stack buffer and raw
// writes only, so it may run while the heap or os.File state is suspect.
// It returns the number of records written.
func DumpFD(src SlotReader, fd rawio.FD) (int, error) {
	var buf [atomlog.SlotSize + 1]byte
	written := 0
	for i := 0; i < atomlog.MaxRecords; i++ {
		s := src.Slot(i)
		if s == nil {
			break
		}
		s.ReadInto(buf[:atomlog.SlotSize])
		n := 0
		for n < atomlog.SlotSize && buf[n] != 0 {
			n++
		}
		if n == 0 {
			continue
		}
		buf[n] = '\n'
		if err := rawio.Write(fd, buf[:n+1]); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

// Guard records a recovered panic into store, dumps the store to stderr and
// re-panics. Use it directly in a defer statement:
//
//	defer capture.Guard(atomlog.Default())
func Guard(store *atomlog.Store) {
	if r := recover(); r != nil {
		onPanic(store, rawio.Stderr(), r)
		panic(r)
	}
}

// GuardFD is Guard writing to fd.
func GuardFD(store *atomlog.Store, fd rawio.FD) {
	if r := recover(); r != nil {
		onPanic(store, fd, r)
		panic(r)
	}
}

func onPanic(store *atomlog.Store, fd rawio.FD, r any) {
	_ = store.PushString(fmt.Sprintf("panic: %v", r))
	_, _ = DumpFD(store, fd)
}
