package probing

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacityExceeded is returned when an insert would leave the table
	// without a single empty bucket.
	ErrCapacityExceeded = errors.New("hash table is full")

	// ErrShortBuffer is returned when a memory block is too small for the
	// requested number of buckets.
	ErrShortBuffer = errors.New("memory block is too small")

	// ErrInconsistent is wrapped by every *ConsistencyError.
	ErrInconsistent = errors.New("hash table is inconsistent")

	// ErrTableFull is returned by CheckConsistency when no bucket is empty.
	ErrTableFull = errors.New("hash table is completely full")

	// ErrClosed is returned by inserts into a table after Close or Move.
	ErrClosed = errors.New("hash table is closed")

	// ErrPointerRecord is returned for record types that contain pointers,
	// strings, slices, maps or interfaces.
	ErrPointerRecord = errors.New("record type contains pointers")

	// ErrNegativeSize is returned for a negative initial size.
	ErrNegativeSize = errors.New("negative table size")

	// ErrUnsupportedCompression is returned for an unknown Compression value.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)

// ConsistencyError reports an entry that the probe sequence starting at its
// ideal bucket can't reach.
type ConsistencyError struct {
	Index int
	Ideal int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("inconsistency at position %d with ideal %d", e.Index, e.Ideal)
}

func (e *ConsistencyError) Unwrap() error { return ErrInconsistent }
