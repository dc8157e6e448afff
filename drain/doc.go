// File: drain/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package drain harvests records from an atomlog store and hands them to
// sinks. The Drainer is the store's single consumer: it pops the whole store
// into a preallocated buffer, queues non-empty records in a bounded backlog
// and emits them oldest first. A failing sink leaves the record at the head
// of the backlog, so delivery is at-least-once per sink set.
package drain
