// File: atomlog/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package atomlog implements a fixed-capacity, allocation-free log recorder
// usable from contexts where regular logging is unsafe: signal handlers,
// panic paths, code holding arbitrary locks.
//
// A Store holds MaxRecords slots of SlotSize bytes. Each slot is an array of
// 64-bit atomic words; every read and write of the store is a sequence of
// single-word atomic loads and stores. No operation allocates, locks or blocks.
//
// Atomicity is per word only. Filling a slot, shifting slots on overflow and
// draining the store are not atomic as a unit, so concurrent Push calls may
// lose or duplicate records and a Push racing a Pop may be dropped. Callers
// needing multi-producer correctness must serialize Push externally, which
// reintroduces the lock the store is built to avoid.
//
// The process-wide store is reached through Default.
package atomlog
