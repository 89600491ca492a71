package probing

// Entry is the contract of a bucket record E, expressed on *E so that SetKey
// can modify the record in place.
//
// E itself must be a fixed-size value without pointers: tables keep records
// in raw byte blocks, which are also written to disk as they are.
// One key value, the invalid key, is reserved for empty buckets and must never
// be used for real data.
type Entry[K comparable, E any] interface {
	*E

	Key() K
	SetKey(K)
}

// Result is the outcome of FindOrInsert.
type Result[E any] struct {
	entry *E
	found bool
}

// Entry points to the bucket holding the key. The pointer is invalidated by
// any operation that grows the table.
func (r Result[E]) Entry() *E {
	return r.entry
}

// Found reports whether the key was already present. Nothing was written then.
func (r Result[E]) Found() bool {
	return r.found
}

// Inserted reports whether the entry was written into a previously empty bucket.
func (r Result[E]) Inserted() bool {
	return r.entry != nil && !r.found
}
