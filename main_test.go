package probing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type testEntry struct {
	key   uint64
	value uint64
}

func (e *testEntry) Key() uint64 { return e.key }

func (e *testEntry) SetKey(k uint64) { e.key = k }

// 32 bytes per bucket.
type wideEntry struct {
	key     uint64
	payload [3]uint64
}

func (e *wideEntry) Key() uint64 { return e.key }

func (e *wideEntry) SetKey(k uint64) { e.key = k }

const invalidMax = ^uint64(0)

func newTable(t *testing.T, buckets int, invalid uint64) *Table[uint64, testEntry, *testEntry] {
	t.Helper()

	mem, err := HeapAllocator{}.Alloc(buckets * SizeOf[testEntry]())
	require.NoError(t, err)

	tt := NewTable[uint64, testEntry](mem, invalid, IdentityHash[uint64])
	tt.Clear()

	return tt
}

func keysOf[E any, P Entry[uint64, E]](rng func(func(*E) bool)) []uint64 {
	var keys []uint64
	rng(func(e *E) bool {
		keys = append(keys, P(e).Key())
		return true
	})

	return keys
}
