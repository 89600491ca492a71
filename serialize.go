package probing

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// The image is preceded by two native-endian uint64 fields: the size of the
// image in bytes and the number of live entries. The image is the raw memory
// block including empty buckets, so reader and writer must agree on the
// record layout and byte order. Nothing in the file verifies that.
const headerSize = 16

// Compression wraps the whole file in a compressed stream. Empty buckets
// compress very well. Any value other than CompressionNone changes the file
// format and must be used for both saving and loading.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression is the inverse of Compression.String.
func ParseCompression(s string) (Compression, error) {
	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		if c.String() == s {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCompression, s)
}

// Writes the header and the image of t to w.
func Save[K comparable, E any, P Entry[K, E]](w io.Writer, t *AutoTable[K, E, P]) error {
	if t.table == nil {
		return ErrClosed
	}

	var header [headerSize]byte
	binary.NativeEndian.PutUint64(header[0:8], uint64(t.Allocated()))
	binary.NativeEndian.PutUint64(header[8:16], uint64(t.Size()))

	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if _, err := w.Write(t.Bytes()); err != nil {
		return fmt.Errorf("write image of %d bytes: %w", t.Allocated(), err)
	}

	return nil
}

// Reads a table written by Save. The image is used as it is: the entry
// count is taken from the header and nothing is rehashed. The options must
// match the ones the table was saved with.
func Load[K comparable, E any, P Entry[K, E]](r io.Reader, opts ...Option[K]) (*AutoTable[K, E, P], error) {
	allocated, entries, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	if err := checkImage[E](allocated); err != nil {
		return nil, err
	}

	o := buildOptions(opts)
	mem, err := o.allocator.Alloc(allocated)
	if err != nil {
		return nil, fmt.Errorf("allocate image of %d bytes: %w", allocated, err)
	}

	if _, err := io.ReadFull(r, mem); err != nil {
		_ = o.allocator.Free(mem)
		return nil, fmt.Errorf("read image of %d bytes: %w", allocated, err)
	}

	t, err := FromImage[K, E, P](mem, entries, opts...)
	if err != nil {
		_ = o.allocator.Free(mem)
		return nil, err
	}

	return t, nil
}

func readHeader(r io.Reader) (allocated, entries int, err error) {
	var header [headerSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, 0, fmt.Errorf("read header: %w", err)
	}

	a := binary.NativeEndian.Uint64(header[0:8])
	n := binary.NativeEndian.Uint64(header[8:16])
	if a > math.MaxInt || n > math.MaxInt {
		return 0, 0, fmt.Errorf("invalid header: sizes %d and %d overflow int", a, n)
	}

	return int(a), int(n), nil
}

// Saves t to the file at path.
func SaveFile[K comparable, E any, P Entry[K, E]](path string, t *AutoTable[K, E, P], c Compression) (err error) {
	defer func() {
		t.logger.LogSave(path, t.Size(), t.Allocated(), err)
	}()

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	bw := bufio.NewWriter(f)
	cw, err := compressWriter(bw, c)
	if err != nil {
		return err
	}

	if err := Save(cw, t); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	if err := cw.Close(); err != nil {
		return fmt.Errorf("finish %s stream: %w", c, err)
	}

	return bw.Flush()
}

// Loads a table from the file at path.
func LoadFile[K comparable, E any, P Entry[K, E]](path string, c Compression, opts ...Option[K]) (t *AutoTable[K, E, P], err error) {
	logger := buildOptions(opts).logger
	defer func() {
		if err != nil {
			logger.LogLoad(path, 0, 0, err)
			return
		}
		logger.LogLoad(path, t.Size(), t.Allocated(), nil)
	}()

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r, release, err := decompressReader(bufio.NewReader(f), c)
	if err != nil {
		return nil, err
	}
	defer release()

	t, err = Load[K, E, P](r, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return t, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func compressWriter(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case CompressionNone:
		return nopWriteCloser{w}, nil
	case CompressionZstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	case CompressionLZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}

func decompressReader(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionZstd:
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return dec, dec.Close, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedCompression, c)
	}
}
