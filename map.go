package probing

// Pair is the bucket record of a Map.
type Pair[K comparable, V any] struct {
	key   K
	value V
}

func (p *Pair[K, V]) Key() K { return p.key }

func (p *Pair[K, V]) SetKey(k K) { p.key = k }

func (p *Pair[K, V]) Value() V { return p.value }

// Map is a growable key-value table for callers that don't need their own
// record type. Both K and V are stored inline, so a Map saved with SaveFile
// is only meaningful if neither contains pointers.
type Map[K comparable, V any] struct {
	*AutoTable[K, Pair[K, V], *Pair[K, V]]
}

// Returns a new map sized for capacity entries.
func NewMap[K comparable, V any](capacity int, opts ...Option[K]) (*Map[K, V], error) {
	at, err := NewAutoTable[K, Pair[K, V]](capacity, opts...)
	if err != nil {
		return nil, err
	}

	return &Map[K, V]{AutoTable: at}, nil
}

// Returns the value stored for key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	p, ok := m.Find(key)
	return p.value, ok
}

// Sets the value of key and reports whether the key is new.
func (m *Map[K, V]) Put(key K, value V) (bool, error) {
	res, err := m.FindOrInsert(Pair[K, V]{key: key, value: value})
	if err != nil {
		return false, err
	}

	if res.Found() {
		res.Entry().value = value
	}

	return res.Inserted(), nil
}
