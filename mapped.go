package probing

import "fmt"

// MappedTable is a read-only table over a saved file mapped into memory.
// Lookups start right away, without reading the image.
type MappedTable[K comparable, E any, P Entry[K, E]] struct {
	table *Table[K, E, P]
	unmap func() error
}

// Lookups in a closed table miss.
func (m *MappedTable[K, E, P]) Find(key K) (E, bool) {
	if m.table == nil {
		var e E
		return e, false
	}

	return m.table.Find(key)
}

func (m *MappedTable[K, E, P]) MustFind(key K) E {
	if m.table == nil {
		panic(fmt.Sprintf("probing: key %v looked up in a closed table", key))
	}

	return m.table.MustFind(key)
}

// Returns the number of entries recorded in the file header.
func (m *MappedTable[K, E, P]) Size() int {
	if m.table == nil {
		return 0
	}

	return m.table.Len()
}

func (m *MappedTable[K, E, P]) Buckets() int {
	if m.table == nil {
		return 0
	}

	return m.table.Buckets()
}

func (m *MappedTable[K, E, P]) CheckConsistency() error {
	if m.table == nil {
		return ErrClosed
	}

	return m.table.CheckConsistency()
}

// Unmaps the file. The table must not be used afterwards.
func (m *MappedTable[K, E, P]) Close() error {
	if m.unmap == nil {
		return nil
	}

	err := m.unmap()
	m.unmap = nil
	m.table = nil

	return err
}
