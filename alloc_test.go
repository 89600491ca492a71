package probing

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestHeapAllocator(t *testing.T) {
	var a HeapAllocator

	mem, err := a.Alloc(100)
	require.NoError(t, err)
	require.Len(t, mem, 100)
	require.Zero(t, uintptr(unsafe.Pointer(&mem[0]))%8, "blocks must be 8-byte aligned")
	require.True(t, isZero(mem))

	for i := range mem {
		mem[i] = byte(i)
	}

	grown, err := a.Grow(mem, 200)
	require.NoError(t, err)
	require.Len(t, grown, 200)
	require.Equal(t, mem, grown[:100])
	require.True(t, isZero(grown[100:]))

	require.NoError(t, a.Free(grown))

	empty, err := a.Alloc(0)
	require.NoError(t, err)
	require.Empty(t, empty)
}
