// File: atomlog/slot.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Slot is a fixed-size byte buffer stored as atomic 64-bit chunks.

package atomlog

import "sync/atomic"

const (
	// SlotSize is the byte capacity of one record slot.
	SlotSize = 1024
	// ChunkSize is the unit of atomic access.
	ChunkSize = 8
	// ChunkCount is the number of atomic words per slot.
	ChunkCount = SlotSize / ChunkSize
)

// Fails to compile unless SlotSize is a multiple of ChunkSize.
var _ [0]struct{} = [SlotSize % ChunkSize]struct{}{}

// Slot holds a single record. The zero value is an empty slot.
// Bytes are packed little-endian, so byte i lives in chunk i/8 at bits 8*(i%8).
type Slot struct {
	chunks [ChunkCount]atomic.Uint64
}

// Fill copies up to SlotSize bytes of data into the slot, one atomic store per
// chunk, and returns the number of bytes written. The final partial chunk is
// zero-padded; chunks beyond the written range keep their previous content.
func (s *Slot) Fill(data []byte) int {
	return fill(s, data)
}

// FillString is Fill for a string without converting it to []byte.
func (s *Slot) FillString(data string) int {
	return fill(s, data)
}

func fill[T ~string | ~[]byte](s *Slot, data T) int {
	n := len(data)
	if n > SlotSize {
		n = SlotSize
	}
	for off := 0; off < n; off += ChunkSize {
		end := off + ChunkSize
		if end > n {
			end = n
		}
		var word uint64
		for i := off; i < end; i++ {
			word |= uint64(data[i]) << (8 * uint(i-off))
		}
		s.chunks[off/ChunkSize].Store(word)
	}
	return n
}

// Read loads every chunk into a flat array. Concurrent fills may produce a torn
// result where each chunk is consistent but chunks come from different writes.
func (s *Slot) Read() [SlotSize]byte {
	var buf [SlotSize]byte
	s.ReadInto(buf[:])
	return buf
}

// ReadInto copies the slot bytes into dst and returns the number copied,
// which is min(len(dst), SlotSize).
func (s *Slot) ReadInto(dst []byte) int {
	n := len(dst)
	if n > SlotSize {
		n = SlotSize
	}
	for off := 0; off < n; off += ChunkSize {
		word := s.chunks[off/ChunkSize].Load()
		end := off + ChunkSize
		if end > n {
			end = n
		}
		for i := off; i < end; i++ {
			dst[i] = byte(word >> (8 * uint(i-off)))
		}
	}
	return n
}

// Len returns the index of the first NUL byte, or SlotSize if none.
func (s *Slot) Len() int {
	for c := range s.chunks {
		word := s.chunks[c].Load()
		for b := 0; b < ChunkSize; b++ {
			if byte(word>>(8*uint(b))) == 0 {
				return c*ChunkSize + b
			}
		}
	}
	return SlotSize
}

// Text returns the slot content as a C-style string: the bytes before the
// first NUL. Producers wanting a clean accessor must leave a terminator
// within capacity.
func (s *Slot) Text() string {
	buf := s.Read()
	return string(buf[:cstrlen(buf[:])])
}

// IsEmpty reports whether every chunk is zero.
func (s *Slot) IsEmpty() bool {
	for c := range s.chunks {
		if s.chunks[c].Load() != 0 {
			return false
		}
	}
	return true
}

// copyFrom copies src into s chunk by chunk.
func (s *Slot) copyFrom(src *Slot) {
	for c := range s.chunks {
		s.chunks[c].Store(src.chunks[c].Load())
	}
}

// drainInto moves every chunk into dst and zeroes the source chunk.
// Load and reset are separate operations, not a swap.
func (s *Slot) drainInto(dst *Slot) {
	for c := range s.chunks {
		dst.chunks[c].Store(s.chunks[c].Load())
		s.chunks[c].Store(0)
	}
}

// clear zeroes every chunk.
func (s *Slot) clear() {
	for c := range s.chunks {
		s.chunks[c].Store(0)
	}
}

func cstrlen(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}
