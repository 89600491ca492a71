//go:build !unix

package probing

import "errors"

var errNoMmap = errors.New("memory mapping is not supported on this platform")

// MmapAllocator is only available on unix systems.
type MmapAllocator struct{}

var _ Allocator = MmapAllocator{}

func (MmapAllocator) Alloc(int) ([]byte, error)        { return nil, errNoMmap }
func (MmapAllocator) Grow([]byte, int) ([]byte, error) { return nil, errNoMmap }
func (MmapAllocator) Free([]byte) error                { return nil }
func (MmapAllocator) ZeroesGrowth() bool               { return false }
