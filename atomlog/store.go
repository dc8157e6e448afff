// File: atomlog/store.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Store is a fixed array of record slots plus a write cursor.
// Overflow evicts the oldest record by shifting every slot down by one.

package atomlog

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"

	"github.com/momentics/atomlog/api"
)

// MaxRecords is the number of slots in a Store.
const MaxRecords = 400

const lastSlot = MaxRecords - 1

// Ensure compile-time interface compliance.
var _ api.LogStore = (*Store)(nil)

// Records is caller-owned storage receiving a full copy of a Store.
type Records [MaxRecords]Slot

// Store records up to MaxRecords most recent entries.
// The zero value is an empty store ready for use.
type Store struct {
	cursor atomic.Uint32 // next free slot, MaxRecords when full
	_      cpu.CacheLinePad

	pushes      atomic.Uint64
	evictions   atomic.Uint64
	truncations atomic.Uint64
	drains      atomic.Uint64
	_           cpu.CacheLinePad

	slots Records
}

// NewStore allocates an empty store. Most callers want Default instead.
func NewStore() *Store {
	return new(Store)
}

// Push appends data as a new record. When the store is full the oldest
// record is evicted and the vacated last slot is zeroed before the fill.
// Input longer than SlotSize is truncated, stored, and ErrRecordTooLarge
// is returned.
func (st *Store) Push(data []byte) error {
	return push(st, data)
}

// PushString is Push for a string, without conversion.
func (st *Store) PushString(data string) error {
	return push(st, data)
}

func push[T ~string | ~[]byte](st *Store, data T) error {
	st.pushes.Add(1)
	idx := st.cursor.Load()
	if idx >= MaxRecords {
		st.evict()
		st.slots[lastSlot].clear()
		fill(&st.slots[lastSlot], data)
	} else {
		fill(&st.slots[idx], data)
		st.cursor.Store(idx + 1)
	}
	if len(data) > SlotSize {
		st.truncations.Add(1)
		return api.ErrRecordTooLarge
	}
	return nil
}

// evict shifts slots [1, MaxRecords) down to [0, MaxRecords-1), dropping slot 0.
// Linear in store size; only reached after sustained overflow.
func (st *Store) evict() {
	for i := 0; i < lastSlot; i++ {
		st.slots[i].copyFrom(&st.slots[i+1])
	}
	st.evictions.Add(1)
}

// Pop copies every slot into out, in index order, zeroing each source chunk
// right after loading it, then resets the cursor. out always receives all
// MaxRecords slots; unused ones are all-zero.
func (st *Store) Pop(out *Records) {
	for i := range st.slots {
		st.slots[i].drainInto(&out[i])
	}
	st.cursor.Store(0)
	st.drains.Add(1)
}

// Peek copies every slot into out without clearing the store.
func (st *Store) Peek(out *Records) {
	for i := range st.slots {
		out[i].copyFrom(&st.slots[i])
	}
}

// Slot returns the live slot at index i, or nil when out of range.
func (st *Store) Slot(i int) *Slot {
	if i < 0 || i >= MaxRecords {
		return nil
	}
	return &st.slots[i]
}

// Len returns the cursor: the count of logically occupied slots.
func (st *Store) Len() int {
	return int(st.cursor.Load())
}

// Cap returns MaxRecords.
func (st *Store) Cap() int {
	return MaxRecords
}

// Stats returns a snapshot of the counters. Fields are loaded independently.
func (st *Store) Stats() api.StoreStats {
	return api.StoreStats{
		Records:     st.Len(),
		Pushes:      st.pushes.Load(),
		Evictions:   st.evictions.Load(),
		Truncations: st.truncations.Load(),
		Drains:      st.drains.Load(),
	}
}
