// File: atomlog/records.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package atomlog

// Count returns the number of non-empty slots.
func (r *Records) Count() int {
	n := 0
	for i := range r {
		if !r[i].IsEmpty() {
			n++
		}
	}
	return n
}

// Each calls fn for every non-empty slot in index order until fn returns false.
func (r *Records) Each(fn func(i int, s *Slot) bool) {
	for i := range r {
		if r[i].IsEmpty() {
			continue
		}
		if !fn(i, &r[i]) {
			return
		}
	}
}

// Reset zeroes every slot.
func (r *Records) Reset() {
	for i := range r {
		r[i].clear()
	}
}
