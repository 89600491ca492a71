package probing

import (
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

type HashFunc[K comparable] func(K) uint64

// Unsigned is satisfied by the key types IdentityHash accepts.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IdentityHash returns the key itself. Use it when keys are already well
// distributed, e.g. 64-bit content digests.
func IdentityHash[K Unsigned](k K) uint64 {
	return uint64(k)
}

// BytesHash hashes the in-memory representation of the key with xxhash.
// It's the default hash, because it's stable across processes and a saved
// table has to be read back with the very same function.
//
// Keys must have no padding bytes, otherwise equal keys may hash
// differently. Pointer keys such as strings never reach it: tables reject
// records that contain pointers.
func BytesHash[K comparable](k K) uint64 {
	return xxhash.Sum64(unsafe.Slice((*byte)(unsafe.Pointer(&k)), unsafe.Sizeof(k)))
}
