package probing

type setEntry[K comparable] struct {
	key K
}

func (e *setEntry[K]) Key() K { return e.key }

func (e *setEntry[K]) SetKey(k K) { e.key = k }

// Set is a growable table storing keys only.
type Set[K comparable] struct {
	*AutoTable[K, setEntry[K], *setEntry[K]]
}

func NewSet[K comparable](capacity int, opts ...Option[K]) (*Set[K], error) {
	at, err := NewAutoTable[K, setEntry[K]](capacity, opts...)
	if err != nil {
		return nil, err
	}

	return &Set[K]{AutoTable: at}, nil
}

func (s *Set[K]) Has(key K) bool {
	_, ok := s.Find(key)
	return ok
}

// Puts a key in the set. Returns whether the key is new.
func (s *Set[K]) Put(key K) (bool, error) {
	res, err := s.FindOrInsert(setEntry[K]{key: key})
	if err != nil {
		return false, err
	}

	return res.Inserted(), nil
}

// Calls fn for every key until it returns false.
func (s *Set[K]) Keys(fn func(K) bool) {
	s.Range(func(e *setEntry[K]) bool {
		return fn(e.key)
	})
}
