//go:build unix

package probing

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// MmapAllocator allocates blocks as anonymous private mappings, outside of
// the Go heap. Large tables then don't add to GC pressure, and on Linux
// growing a block is a page table operation (mremap) instead of a copy.
type MmapAllocator struct{}

var _ Allocator = MmapAllocator{}

func (MmapAllocator) Alloc(size int) ([]byte, error) {
	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size, err)
	}

	return mem, nil
}

func (MmapAllocator) Free(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}

	return unix.Munmap(mem)
}

// Fresh anonymous pages are always zero-filled.
func (MmapAllocator) ZeroesGrowth() bool {
	return true
}
