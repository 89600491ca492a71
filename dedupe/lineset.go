package dedupe

import (
	"github.com/homier/probing"
)

// Line is the bucket record of a LineSet: just the content hash.
type Line struct {
	Hash uint64
}

func (l *Line) Key() uint64 { return l.Hash }

func (l *Line) SetKey(k uint64) { l.Hash = k }

type Table = probing.AutoTable[uint64, Line, *Line]

// LineSet is the set of lines seen so far.
type LineSet struct {
	table *Table
}

func defaultOptions(opts []probing.Option[uint64]) []probing.Option[uint64] {
	return append([]probing.Option[uint64]{
		probing.WithHashFunc(probing.IdentityHash[uint64]),
		probing.WithInvalidKey[uint64](0),
	}, opts...)
}

// Returns an empty set sized for initialSize lines.
func New(initialSize int, opts ...probing.Option[uint64]) (*LineSet, error) {
	table, err := probing.NewAutoTable[uint64, Line](initialSize, defaultOptions(opts)...)
	if err != nil {
		return nil, err
	}

	return &LineSet{table: table}, nil
}

// Loads a set saved with Save.
func Load(path string, c probing.Compression, opts ...probing.Option[uint64]) (*LineSet, error) {
	table, err := probing.LoadFile[uint64, Line](path, c, defaultOptions(opts)...)
	if err != nil {
		return nil, err
	}

	return &LineSet{table: table}, nil
}

func (s *LineSet) Save(path string, c probing.Compression) error {
	return probing.SaveFile(path, s.table, c)
}

// Adds the line and reports whether it wasn't seen before.
func (s *LineSet) IsNew(line []byte) (bool, error) {
	res, err := s.table.FindOrInsert(Line{Hash: Hash(line)})
	if err != nil {
		return false, err
	}

	return res.Inserted(), nil
}

// Reports whether the line was seen, without adding it.
func (s *LineSet) Contains(line []byte) bool {
	_, ok := s.table.Find(Hash(line))
	return ok
}

// Returns the number of distinct lines.
func (s *LineSet) Size() int {
	return s.table.Size()
}

func (s *LineSet) Stats() probing.Stats {
	return s.table.Stats()
}

// Releases the table. Closing again is a no-op.
func (s *LineSet) Close() error {
	return s.table.Close()
}
