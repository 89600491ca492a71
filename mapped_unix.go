//go:build unix

package probing

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// Maps a file written by SaveFile with CompressionNone. The options must
// match the ones the table was saved with.
func MapFile[K comparable, E any, P Entry[K, E]](path string, opts ...Option[K]) (*MappedTable[K, E, P], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}

	size := fi.Size()
	if size < headerSize {
		return nil, fmt.Errorf("map %s: %w", path, io.ErrUnexpectedEOF)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}

	allocated := binary.NativeEndian.Uint64(data[0:8])
	entries := binary.NativeEndian.Uint64(data[8:16])
	if allocated > uint64(size-headerSize) {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("map %s: image of %d bytes: %w", path, allocated, io.ErrUnexpectedEOF)
	}

	if err := checkImage[E](int(allocated)); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("map %s: %w", path, err)
	}

	o := buildOptions(opts)
	image := data[headerSize : headerSize+int(allocated)]

	return &MappedTable[K, E, P]{
		table: NewTableWithEntries[K, E, P](image, int(entries), o.invalid, o.hashFunc),
		unmap: func() error { return unix.Munmap(data) },
	}, nil
}
