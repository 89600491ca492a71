//go:build unix && !linux

package probing

func (a MmapAllocator) Grow(mem []byte, size int) ([]byte, error) {
	grown, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}

	copy(grown, mem)
	if err := a.Free(mem); err != nil {
		_ = a.Free(grown)
		return nil, err
	}

	return grown, nil
}
