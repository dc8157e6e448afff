package atomlog

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/atomlog/api"
)

func record(i int) string {
	return fmt.Sprintf("record-%04d", i)
}

func TestStorePushThenReadSlotZero(t *testing.T) {
	st := NewStore()
	data := []byte("hello, crash handler")
	require.NoError(t, st.Push(data))

	got := st.Slot(0).Read()
	assert.Equal(t, data, got[:len(data)])
	assert.Equal(t, make([]byte, SlotSize-len(data)), got[len(data):])
	assert.Equal(t, 1, st.Len())
}

func TestStoreEvictionKeepsMostRecentInOrder(t *testing.T) {
	st := NewStore()
	for i := 0; i <= MaxRecords; i++ {
		require.NoError(t, st.PushString(record(i)))
	}

	out := new(Records)
	st.Pop(out)
	for i := 0; i < MaxRecords; i++ {
		assert.Equal(t, record(i+1), out[i].Text(), "slot %d", i)
	}
}

func TestStoreBoundaryAtCapacity(t *testing.T) {
	st := NewStore()
	for i := 0; i < MaxRecords; i++ {
		require.NoError(t, st.PushString(record(i)))
	}
	assert.Equal(t, MaxRecords, st.Len())
	assert.Equal(t, uint64(0), st.Stats().Evictions)
	assert.Equal(t, record(0), st.Slot(0).Text())

	require.NoError(t, st.PushString(record(MaxRecords)))
	assert.Equal(t, MaxRecords, st.Len())
	assert.Equal(t, uint64(1), st.Stats().Evictions)
	assert.Equal(t, record(1), st.Slot(0).Text())
	assert.Equal(t, record(MaxRecords), st.Slot(MaxRecords-1).Text())
}

func TestStoreSustainedOverflow(t *testing.T) {
	st := NewStore()
	const total = MaxRecords*3 + 17
	for i := 0; i < total; i++ {
		require.NoError(t, st.PushString(record(i)))
	}
	assert.Equal(t, uint64(total-MaxRecords), st.Stats().Evictions)

	out := new(Records)
	st.Pop(out)
	for i := 0; i < MaxRecords; i++ {
		assert.Equal(t, record(total-MaxRecords+i), out[i].Text())
	}
}

func TestStorePopResetsState(t *testing.T) {
	st := NewStore()
	for i := 0; i < 37; i++ {
		require.NoError(t, st.PushString(record(i)))
	}
	out := new(Records)
	st.Pop(out)
	assert.Equal(t, 37, out.Count())
	assert.Equal(t, 0, st.Len())

	require.NoError(t, st.PushString("x"))
	st.Pop(out)

	assert.Equal(t, "x", out[0].Text())
	got := out[0].Read()
	assert.Equal(t, make([]byte, SlotSize-1), got[1:])
	for i := 1; i < MaxRecords; i++ {
		assert.True(t, out[i].IsEmpty(), "slot %d", i)
	}
}

func TestStorePopTwiceIsEmpty(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.PushString("a"))
	require.NoError(t, st.PushString("b"))

	first := new(Records)
	st.Pop(first)
	assert.Equal(t, 2, first.Count())

	for round := 0; round < 2; round++ {
		out := new(Records)
		out[3].FillString("garbage from caller")
		st.Pop(out)
		assert.Equal(t, 0, out.Count(), "round %d", round)
	}
}

func TestStoreMaxSizeRecordVerbatim(t *testing.T) {
	st := NewStore()
	data := bytes.Repeat([]byte("0123456789abcdef"), SlotSize/16)
	require.Len(t, data, SlotSize)

	require.NoError(t, st.Push(data))
	got := st.Slot(0).Read()
	assert.Equal(t, data, got[:])
	assert.Equal(t, uint64(0), st.Stats().Truncations)
}

func TestStoreOversizeTruncatesWithError(t *testing.T) {
	st := NewStore()
	data := bytes.Repeat([]byte{'z'}, SlotSize+1)

	err := st.Push(data)
	assert.ErrorIs(t, err, api.ErrRecordTooLarge)
	assert.Equal(t, 1, st.Len())

	got := st.Slot(0).Read()
	assert.Equal(t, data[:SlotSize], got[:])
	assert.Equal(t, uint64(1), st.Stats().Truncations)
}

func TestStorePeekDoesNotClear(t *testing.T) {
	st := NewStore()
	require.NoError(t, st.PushString("keep me"))

	out := new(Records)
	st.Peek(out)
	assert.Equal(t, "keep me", out[0].Text())
	assert.Equal(t, 1, st.Len())
	assert.Equal(t, "keep me", st.Slot(0).Text())
}

func TestStoreStats(t *testing.T) {
	st := NewStore()
	for i := 0; i < MaxRecords+2; i++ {
		_ = st.PushString(record(i))
	}
	st.Pop(new(Records))

	stats := st.Stats()
	assert.Equal(t, api.StoreStats{
		Records:   0,
		Pushes:    MaxRecords + 2,
		Evictions: 2,
		Drains:    1,
	}, stats)
}

func TestStoreSlotOutOfRange(t *testing.T) {
	st := NewStore()
	assert.Nil(t, st.Slot(-1))
	assert.Nil(t, st.Slot(MaxRecords))
	assert.NotNil(t, st.Slot(MaxRecords-1))
	assert.Equal(t, MaxRecords, st.Cap())
}

func TestRecordsEachStops(t *testing.T) {
	var out Records
	out[0].FillString("a")
	out[5].FillString("b")
	out[9].FillString("c")

	var seen []int
	out.Each(func(i int, s *Slot) bool {
		seen = append(seen, i)
		return len(seen) < 2
	})
	assert.Equal(t, []int{0, 5}, seen)

	out.Reset()
	assert.Equal(t, 0, out.Count())
}

func TestStoreNoAllocations(t *testing.T) {
	st := NewStore()
	out := new(Records)
	data := []byte("no allocation on the recording path")

	allocs := testing.AllocsPerRun(100, func() {
		_ = st.Push(data)
		_ = st.PushString("string record")
	})
	assert.Zero(t, allocs)

	for i := 0; i < MaxRecords; i++ {
		_ = st.Push(data)
	}
	allocs = testing.AllocsPerRun(10, func() {
		_ = st.Push(data)
	})
	assert.Zero(t, allocs, "eviction path")

	allocs = testing.AllocsPerRun(10, func() {
		st.Pop(out)
	})
	assert.Zero(t, allocs, "pop")
}

func BenchmarkStorePush(b *testing.B) {
	st := NewStore()
	out := new(Records)
	data := []byte("benchmark record payload of moderate length")
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if st.Len() == MaxRecords {
			st.Pop(out)
		}
		_ = st.Push(data)
	}
}

func BenchmarkStorePushFull(b *testing.B) {
	st := NewStore()
	data := []byte("overflow record")
	for i := 0; i < MaxRecords; i++ {
		_ = st.Push(data)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = st.Push(data)
	}
}

func TestStoreEvictionClearsVacatedSlot(t *testing.T) {
	st := NewStore()
	long := bytes.Repeat([]byte{'L'}, 200)
	for i := 0; i < MaxRecords; i++ {
		require.NoError(t, st.Push(long))
	}
	// Eight bytes fill one chunk exactly, leaving no NUL of their own.
	require.NoError(t, st.PushString("8 bytes!"))

	last := st.Slot(MaxRecords - 1)
	assert.Equal(t, "8 bytes!", last.Text())
	assert.Equal(t, string(long), st.Slot(MaxRecords-2).Text())
}
