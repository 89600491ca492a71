package probing

import (
	"fmt"
	"reflect"
)

const (
	// Buckets per expected entry of a new table.
	DefaultMultiplier = 1.5

	// A new table doubles once it holds this many entries per expected entry.
	growthFactor = 1.2

	// A table wrapped around an image doubles at this load factor.
	imageLoadFactor = 0.8

	DefaultInitialSize = 10
)

// AutoTable is a linear probing hash table that owns its memory and doubles
// it once the number of entries reaches a threshold.
//
// Entry pointers returned by any method are invalidated by the next Insert
// or FindOrInsert, because growth may move the memory block.
// AutoTable isn't safe for concurrent use.
type AutoTable[K comparable, E any, P Entry[K, E]] struct {
	table *Table[K, E, P]

	// The block as returned by the allocator. It may extend past the last
	// whole bucket if it came from an image.
	mem       []byte
	threshold int

	// Whether doubling must clear the new half itself.
	clearNew bool

	allocator Allocator
	logger    *Logger
}

// Returns a new table sized for initialSize entries.
func NewAutoTable[K comparable, E any, P Entry[K, E]](initialSize int, opts ...Option[K]) (*AutoTable[K, E, P], error) {
	if initialSize < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSize, initialSize)
	}

	if err := checkRecord[E](); err != nil {
		return nil, err
	}

	o := buildOptions(opts)

	allocated := BytesFor[E](initialSize, DefaultMultiplier)
	mem, err := o.allocator.Alloc(allocated)
	if err != nil {
		return nil, fmt.Errorf("allocate hash table of %d bytes: %w", allocated, err)
	}

	at := newAutoTable(NewTable[K, E, P](mem, o.invalid, o.hashFunc), mem, o)
	at.threshold = int(float64(initialSize) * growthFactor)
	at.Clear()

	return at, nil
}

// Returns a table that takes ownership of mem, a populated image allocated
// with the configured allocator, holding the given number of entries.
// The contents are not rehashed or validated, only the record type and
// the size of mem are. mem stays with the caller on error.
func FromImage[K comparable, E any, P Entry[K, E]](mem []byte, entries int, opts ...Option[K]) (*AutoTable[K, E, P], error) {
	if err := checkImage[E](len(mem)); err != nil {
		return nil, err
	}

	o := buildOptions(opts)

	at := newAutoTable(NewTableWithEntries[K, E, P](mem, entries, o.invalid, o.hashFunc), mem, o)
	at.threshold = int(imageLoadFactor * float64(len(mem)) / float64(SizeOf[E]()))

	return at, nil
}

func newAutoTable[K comparable, E any, P Entry[K, E]](table *Table[K, E, P], mem []byte, o options[K]) *AutoTable[K, E, P] {
	invalid := table.invalidEntry()

	return &AutoTable[K, E, P]{
		table:     table,
		mem:       mem,
		clearNew:  !o.allocator.ZeroesGrowth() || !isZero(bytesOf(&invalid)),
		allocator: o.allocator,
		logger:    o.logger,
	}
}

// Inserts an entry, growing the table first if needed. The key must not be
// present already, see Table.Insert.
func (at *AutoTable[K, E, P]) Insert(e E) (*E, error) {
	if err := at.doubleIfNeeded(); err != nil {
		return nil, err
	}

	return at.table.Insert(e)
}

// Looks the entry's key up and inserts the entry if it's missing, growing
// the table first if needed.
func (at *AutoTable[K, E, P]) FindOrInsert(e E) (Result[E], error) {
	if err := at.doubleIfNeeded(); err != nil {
		return Result[E]{}, err
	}

	return at.table.FindOrInsert(e)
}

// A closed table reads as empty: lookups miss, MustFind variants panic.
func (at *AutoTable[K, E, P]) Find(key K) (E, bool) {
	if at.table == nil {
		var e E
		return e, false
	}

	return at.table.Find(key)
}

func (at *AutoTable[K, E, P]) MustFind(key K) E {
	return *at.UnsafeMutableMustFind(key)
}

// Don't change anything Key depends on through the returned pointer.
func (at *AutoTable[K, E, P]) UnsafeMutableFind(key K) (*E, bool) {
	if at.table == nil {
		return nil, false
	}

	return at.table.UnsafeMutableFind(key)
}

func (at *AutoTable[K, E, P]) UnsafeMutableMustFind(key K) *E {
	if at.table == nil {
		panic(fmt.Sprintf("probing: key %v looked up in a closed table", key))
	}

	return at.table.UnsafeMutableMustFind(key)
}

func (at *AutoTable[K, E, P]) Range(fn func(*E) bool) {
	if at.table != nil {
		at.table.Range(fn)
	}
}

func (at *AutoTable[K, E, P]) Clear() {
	if at.table != nil {
		at.table.Clear()
	}
}

func (at *AutoTable[K, E, P]) CheckConsistency() error {
	if at.table == nil {
		return ErrClosed
	}

	return at.table.CheckConsistency()
}

// Returns the number of live entries.
func (at *AutoTable[K, E, P]) Size() int {
	if at.table == nil {
		return 0
	}

	return at.table.Len()
}

// Returns the size of the memory block in bytes.
func (at *AutoTable[K, E, P]) Allocated() int {
	return len(at.mem)
}

func (at *AutoTable[K, E, P]) Buckets() int {
	if at.table == nil {
		return 0
	}

	return at.table.Buckets()
}

// Returns the number of entries at which the next insert doubles the table.
func (at *AutoTable[K, E, P]) Threshold() int {
	return at.threshold
}

// Returns the memory block, which is the serialized form of the table.
func (at *AutoTable[K, E, P]) Bytes() []byte {
	return at.mem
}

func (at *AutoTable[K, E, P]) Stats() Stats {
	if at.table == nil {
		return Stats{}
	}

	s := at.table.stats()
	s.Allocated = len(at.mem)
	s.Threshold = at.threshold

	return s
}

// Transfers ownership of the memory block to the returned table. The
// receiver is left closed.
func (at *AutoTable[K, E, P]) Move() *AutoTable[K, E, P] {
	moved := *at
	*at = AutoTable[K, E, P]{}

	return &moved
}

// Releases the memory block. Afterwards inserts fail with ErrClosed and
// the table reads as empty. Closing again is a no-op.
func (at *AutoTable[K, E, P]) Close() error {
	if at.table == nil {
		return nil
	}

	err := at.allocator.Free(at.mem)
	*at = AutoTable[K, E, P]{}

	return err
}

func (at *AutoTable[K, E, P]) doubleIfNeeded() error {
	if at.table == nil {
		return ErrClosed
	}

	if at.table.Len() < at.threshold {
		return nil
	}

	to := at.table.DoubleTo()
	mem, err := at.allocator.Grow(at.mem, to)
	if err != nil {
		return fmt.Errorf("grow hash table to %d bytes: %w", to, err)
	}

	if err := at.table.Double(mem, at.clearNew); err != nil {
		return err
	}

	at.mem = mem
	// A table created for zero entries starts with a zero threshold.
	at.threshold = max(2*at.threshold, 1)

	at.logger.LogGrow(at.table.Buckets(), at.table.Len(), len(at.mem))

	return nil
}

// Records are kept in memory the garbage collector doesn't scan and are
// written to disk byte by byte, so they can't hold pointers.
func checkRecord[E any]() error {
	if t := reflect.TypeFor[E](); hasPointers(t) {
		return fmt.Errorf("%w: %s", ErrPointerRecord, t)
	}

	return nil
}

func checkImage[E any](size int) error {
	if err := checkRecord[E](); err != nil {
		return err
	}

	if size < SizeOf[E]() {
		return fmt.Errorf("%w: image of %d bytes holds no %d-byte bucket", ErrShortBuffer, size, SizeOf[E]())
	}

	return nil
}

func hasPointers(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return t.Len() > 0 && hasPointers(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasPointers(t.Field(i).Type) {
				return true
			}
		}
		return false
	case reflect.Pointer, reflect.UnsafePointer, reflect.String, reflect.Slice,
		reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	default:
		return false
	}
}
