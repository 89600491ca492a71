package probing

import (
	"fmt"
)

// Table is a linear probing hash table over a memory block it doesn't own.
//
// The bucket count is derived from the length of the block and never changes
// except through Double. There is no deletion, so the only way an entry
// leaves its probe sequence is Clear.
//
// Since memory management is external, the very same block can be written
// to disk, read back or memory-mapped and used right away, without rehashing.
// The table must not be used after the block is released.
type Table[K comparable, E any, P Entry[K, E]] struct {
	mem   []byte
	slots []E

	buckets int
	entries int

	invalid  K
	hashFunc HashFunc[K]
}

// Returns a table over mem with no live entries. mem must hold at least one
// bucket and is expected to be cleared already, see Clear.
func NewTable[K comparable, E any, P Entry[K, E]](mem []byte, invalid K, hashFunc HashFunc[K]) *Table[K, E, P] {
	return NewTableWithEntries[K, E, P](mem, 0, invalid, hashFunc)
}

// Returns a table over a populated mem, e.g. a deserialized image, reporting
// the given number of live entries.
func NewTableWithEntries[K comparable, E any, P Entry[K, E]](
	mem []byte,
	entries int,
	invalid K,
	hashFunc HashFunc[K],
) *Table[K, E, P] {
	t := &Table[K, E, P]{
		entries:  entries,
		invalid:  invalid,
		hashFunc: hashFunc,
	}
	t.bind(mem, BucketsFromSize[E](len(mem)))

	return t
}

func (t *Table[K, E, P]) bind(mem []byte, buckets int) {
	t.buckets = buckets
	t.mem = mem[:buckets*SizeOf[E]()]
	t.slots = unsafeConvertSlice[E](mem, buckets)
}

// Points the table at a new base holding the same image, e.g. after the
// owner moved the block.
func (t *Table[K, E, P]) Relocate(mem []byte) error {
	if len(mem) < len(t.mem) {
		return fmt.Errorf("%w: relocating %d buckets into %d bytes", ErrShortBuffer, t.buckets, len(mem))
	}

	t.bind(mem, t.buckets)
	return nil
}

// Inserts an entry. The key must not be present already: duplicates are not
// detected and break lookups silently. Use FindOrInsert for set semantics.
func (t *Table[K, E, P]) Insert(e E) (*E, error) {
	if t.entries+1 >= t.buckets {
		return nil, t.errFull()
	}

	t.entries++
	return t.uncheckedInsert(e), nil
}

// Looks the entry's key up and inserts the entry if the key is missing.
func (t *Table[K, E, P]) FindOrInsert(e E) (Result[E], error) {
	key := P(&e).Key()

	for i := t.ideal(key); ; {
		got := P(&t.slots[i]).Key()
		if got == key {
			return Result[E]{entry: &t.slots[i], found: true}, nil
		}

		if got == t.invalid {
			if t.entries+1 >= t.buckets {
				return Result[E]{}, t.errFull()
			}

			t.entries++
			t.slots[i] = e

			return Result[E]{entry: &t.slots[i]}, nil
		}

		if i++; i == t.buckets {
			i = 0
		}
	}
}

// Returns a copy of the entry stored under key.
func (t *Table[K, E, P]) Find(key K) (E, bool) {
	if p, ok := t.UnsafeMutableFind(key); ok {
		return *p, true
	}

	var e E
	return e, false
}

// Like Find, but the key must be there.
func (t *Table[K, E, P]) MustFind(key K) E {
	return *t.UnsafeMutableMustFind(key)
}

// Returns a pointer to the entry stored under key. Only the fields that
// Key doesn't depend on may be changed through it.
func (t *Table[K, E, P]) UnsafeMutableFind(key K) (*E, bool) {
	for i := t.ideal(key); ; {
		got := P(&t.slots[i]).Key()
		if got == key {
			return &t.slots[i], true
		}

		if got == t.invalid {
			return nil, false
		}

		if i++; i == t.buckets {
			i = 0
		}
	}
}

// Like UnsafeMutableFind, but the key must be there.
func (t *Table[K, E, P]) UnsafeMutableMustFind(key K) *E {
	for i := t.ideal(key); ; {
		got := P(&t.slots[i]).Key()
		if got == key {
			return &t.slots[i]
		}

		if got == t.invalid {
			panic(fmt.Sprintf("probing: key %v is not in the table", key))
		}

		if i++; i == t.buckets {
			i = 0
		}
	}
}

// Marks every bucket as empty.
func (t *Table[K, E, P]) Clear() {
	invalid := t.invalidEntry()
	for i := range t.slots {
		t.slots[i] = invalid
	}

	t.entries = 0
}

// Returns the memory size in bytes Double expects.
func (t *Table[K, E, P]) DoubleTo() int {
	return 2 * len(t.mem)
}

// Doubles the number of buckets. mem must hold DoubleTo() bytes and its first
// half must be the current image. Pass clearNew = false only if the upper
// half is known to hold invalid entries already, e.g. zeroed pages with a
// zero invalid key.
func (t *Table[K, E, P]) Double(mem []byte, clearNew bool) error {
	if len(mem) < t.DoubleTo() {
		return fmt.Errorf("%w: doubling %d buckets into %d bytes", ErrShortBuffer, t.buckets, len(mem))
	}

	oldEnd := t.buckets
	t.bind(mem, 2*t.buckets)

	if clearNew {
		invalid := t.invalidEntry()
		for i := oldEnd; i < t.buckets; i++ {
			t.slots[i] = invalid
		}
	}

	// Entries at the very beginning may have wrapped around from the end of
	// the old table. Under the new modulus they might not wrap anymore, so
	// they are put aside until everything else is in place. This run is short.
	var rolledOver []E
	for i := 0; i < oldEnd && !t.emptyAt(i); i++ {
		rolledOver = append(rolledOver, t.slots[i])
		P(&t.slots[i]).SetKey(t.invalid)
	}

	// Re-insert everything else in index order. An entry can move back into
	// a gap opened earlier, stay, move into the new half or wrap around. A
	// wrapped entry may land after i and then is visited again, which is fine.
	var tmp E
	for i := 0; i < oldEnd; i++ {
		if t.emptyAt(i) {
			continue
		}

		tmp = t.slots[i]
		P(&t.slots[i]).SetKey(t.invalid)
		t.uncheckedInsert(tmp)
	}

	for i := range rolledOver {
		t.uncheckedInsert(rolledOver[i])
	}

	return nil
}

// Verifies that every entry is reachable from its ideal bucket. Intended for
// tests and diagnostics.
func (t *Table[K, E, P]) CheckConsistency() error {
	last := t.buckets - 1
	for ; last >= 0 && !t.emptyAt(last); last-- {
	}

	if last < 0 {
		return fmt.Errorf("%w: %d buckets", ErrTableFull, t.buckets)
	}

	// The leading run may consist of entries wrapped around from the tail.
	i := 0
	for ; !t.emptyAt(i); i++ {
		ideal := t.ideal(P(&t.slots[i]).Key())
		if ideal > i && ideal <= last {
			return &ConsistencyError{Index: i, Ideal: ideal}
		}
	}

	preGap := i
	for ; i < t.buckets; i++ {
		if t.emptyAt(i) {
			preGap = i
			continue
		}

		ideal := t.ideal(P(&t.slots[i]).Key())
		if ideal > i || ideal <= preGap {
			return &ConsistencyError{Index: i, Ideal: ideal}
		}
	}

	return nil
}

// Calls fn for every occupied bucket in index order until fn returns false.
func (t *Table[K, E, P]) Range(fn func(*E) bool) {
	for i := range t.slots {
		if t.emptyAt(i) {
			continue
		}

		if !fn(&t.slots[i]) {
			return
		}
	}
}

func (t *Table[K, E, P]) Buckets() int {
	return t.buckets
}

// Returns the number of live entries as counted by this table, or as
// restored from an image.
func (t *Table[K, E, P]) Len() int {
	return t.entries
}

// Returns the memory block the table operates on.
func (t *Table[K, E, P]) Bytes() []byte {
	return t.mem
}

func (t *Table[K, E, P]) ideal(key K) int {
	return int(t.hashFunc(key) % uint64(t.buckets))
}

func (t *Table[K, E, P]) emptyAt(i int) bool {
	return P(&t.slots[i]).Key() == t.invalid
}

func (t *Table[K, E, P]) invalidEntry() E {
	var e E
	P(&e).SetKey(t.invalid)

	return e
}

func (t *Table[K, E, P]) uncheckedInsert(e E) *E {
	for i := t.ideal(P(&e).Key()); ; {
		if t.emptyAt(i) {
			t.slots[i] = e
			return &t.slots[i]
		}

		if i++; i == t.buckets {
			i = 0
		}
	}
}

func (t *Table[K, E, P]) errFull() error {
	return fmt.Errorf("%w: %d buckets", ErrCapacityExceeded, t.buckets)
}
