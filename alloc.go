package probing

// Allocator owns the memory blocks behind an AutoTable.
type Allocator interface {
	// Returns a new block of exactly size bytes.
	Alloc(size int) ([]byte, error)

	// Returns a block of size bytes that starts with the contents of mem.
	// mem must not be used afterwards.
	Grow(mem []byte, size int) ([]byte, error)

	Free(mem []byte) error

	// Reports whether the memory added by Grow is guaranteed to be zeroed.
	ZeroesGrowth() bool
}

// HeapAllocator allocates blocks on the Go heap. Blocks are 8-byte aligned,
// which covers records built from fixed-size integers.
type HeapAllocator struct{}

var _ Allocator = HeapAllocator{}

func (HeapAllocator) Alloc(size int) ([]byte, error) {
	words := make([]uint64, (size+7)/8)
	return unsafeConvertSlice[byte](words, size), nil
}

func (a HeapAllocator) Grow(mem []byte, size int) ([]byte, error) {
	grown, err := a.Alloc(size)
	if err != nil {
		return nil, err
	}

	copy(grown, mem)
	return grown, nil
}

// Heap blocks are released by the garbage collector.
func (HeapAllocator) Free([]byte) error {
	return nil
}

func (HeapAllocator) ZeroesGrowth() bool {
	return true
}
