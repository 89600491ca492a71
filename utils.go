package probing

import (
	"unsafe"
)

// Returns the size of a single bucket holding E.
func SizeOf[E any]() int {
	var e E
	return int(unsafe.Sizeof(e))
}

// Returns the number of buckets for the expected number of entries:
// max(entries+1, multiplier*entries). There is always at least one empty bucket.
func BucketsFor(entries int, multiplier float32) int {
	return max(entries+1, int(multiplier*float32(entries)))
}

// Returns the memory size in bytes for the expected number of entries.
func BytesFor[E any](entries int, multiplier float32) int {
	return BucketsFor(entries, multiplier) * SizeOf[E]()
}

// Returns the number of buckets of E the given memory size can hold.
func BucketsFromSize[E any](size int) int {
	return size / SizeOf[E]()
}

//go:nocheckptr
func unsafeConvertSlice[Dest any, Src any](s []Src, n int) []Dest {
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*Dest)(unsafe.Pointer(unsafe.SliceData(s))), n)
}

// bytesOf returns the memory of a single value.
func bytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
