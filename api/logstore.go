// File: api/logstore.go
// Package api defines the recorder contracts.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// LogStore is the producer-facing handle of a fixed-capacity atomic recorder.
// Implementations must not allocate or block in Push.

package api

// LogStore accepts short text records from any context, including
// signal handlers and panic paths.
type LogStore interface {
	// Push appends a record, evicting the oldest one when full.
	// Oversized input is truncated and ErrRecordTooLarge is returned.
	Push(data []byte) error
	// PushString is Push without a []byte conversion.
	PushString(s string) error
	// Len returns the number of logically occupied slots.
	Len() int
	// Stats returns a snapshot of the store counters.
	Stats() StoreStats
}

// StoreStats holds monotonically increasing store counters.
type StoreStats struct {
	Records     int    `json:"records"`
	Pushes      uint64 `json:"pushes"`
	Evictions   uint64 `json:"evictions"`
	Truncations uint64 `json:"truncations"`
	Drains      uint64 `json:"drains"`
}
