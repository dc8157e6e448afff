// File: api/sink.go
// Package api defines drain sink contract.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "context"

// Record is a drained log record detached from the store.
type Record struct {
	Seq  uint64 // Drain-assigned sequence number, monotonic per drainer
	Data []byte // Record bytes up to the first NUL
}

// Text returns the record as a string.
func (r Record) Text() string {
	return string(r.Data)
}

// Sink receives drained records, oldest first.
type Sink interface {
	Emit(ctx context.Context, rec Record) error
}

// DrainStats holds drainer counters.
type DrainStats struct {
	Drained    uint64 `json:"drained"`
	Emitted    uint64 `json:"emitted"`
	Dropped    uint64 `json:"dropped"`
	SinkErrors uint64 `json:"sink_errors"`
	Backlog    int    `json:"backlog"`
}
