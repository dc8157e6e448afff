// File: capture/writer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package capture

import (
	"bytes"
	"sync"

	"github.com/momentics/atomlog/api"
	"github.com/momentics/atomlog/atomlog"
)

// Writer pushes one record per line written to it. It keeps no state between
// calls: a line split across two Write calls becomes two records.
// Concurrent Write calls are serialized.
type Writer struct {
	mu    sync.Mutex
	store api.LogStore
}

// NewWriter returns a Writer producing into store.
func NewWriter(store api.LogStore) *Writer {
	return &Writer{store: store}
}

// Write splits p on newlines and pushes every non-empty line, truncating long
// lines to the slot size. It always consumes all of p.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	rest := p
	for len(rest) > 0 {
		line := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			rest = nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) == 0 {
			continue
		}
		if len(line) > atomlog.SlotSize {
			line = line[:atomlog.SlotSize]
		}
		_ = w.store.Push(line)
	}
	return len(p), nil
}
