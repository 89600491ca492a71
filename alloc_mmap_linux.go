//go:build linux

package probing

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func (MmapAllocator) Grow(mem []byte, size int) ([]byte, error) {
	grown, err := unix.Mremap(mem, size, unix.MREMAP_MAYMOVE)
	if err != nil {
		return nil, fmt.Errorf("mremap %d to %d bytes: %w", len(mem), size, err)
	}

	return grown, nil
}
