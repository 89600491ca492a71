package probing

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillAutoTable(t *testing.T, at *AutoTable[uint64, testEntry, *testEntry], n int) {
	t.Helper()

	for k := uint64(1); k <= uint64(n); k++ {
		_, err := at.FindOrInsert(testEntry{key: k * 31, value: k})
		require.NoError(t, err)
	}
}

func TestSave_Load(t *testing.T) {
	at := newTestAutoTable(t, 10)
	fillAutoTable(t, at, 200)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, at))
	require.Equal(t, headerSize+at.Allocated(), buf.Len())

	loaded, err := Load[uint64, testEntry](&buf, WithHashFunc(IdentityHash[uint64]))
	require.NoError(t, err)
	defer loaded.Close()

	require.Equal(t, at.Size(), loaded.Size())
	require.Equal(t, at.Allocated(), loaded.Allocated())
	require.Equal(t, at.Buckets(), loaded.Buckets())
	require.Equal(t, at.Bytes(), loaded.Bytes())
	require.Equal(t, int(0.8*float64(loaded.Buckets())), loaded.Threshold())

	for k := uint64(1); k <= 200; k++ {
		e, ok := loaded.Find(k * 31)
		require.True(t, ok)
		require.Equal(t, k, e.value)
	}

	_, ok := loaded.Find(5)
	require.False(t, ok)

	require.NoError(t, loaded.CheckConsistency())

	// A loaded table keeps growing like any other.
	for k := uint64(201); k <= 1000; k++ {
		_, err := loaded.Insert(testEntry{key: k * 31, value: k})
		require.NoError(t, err)
	}

	require.Equal(t, 1000, loaded.Size())
	require.NoError(t, loaded.CheckConsistency())
}

func TestLoad_CorruptedEntryCount(t *testing.T) {
	require.Equal(t, 32, SizeOf[wideEntry]())

	at, err := NewAutoTable[uint64, wideEntry](3, WithHashFunc(IdentityHash[uint64]))
	require.NoError(t, err)
	defer at.Close()

	for _, k := range []uint64{3, 4, 5} {
		_, err := at.Insert(wideEntry{key: k})
		require.NoError(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, at))

	data := buf.Bytes()
	binary.NativeEndian.PutUint64(data[8:16], 1000)

	loaded, err := Load[uint64, wideEntry](bytes.NewReader(data), WithHashFunc(IdentityHash[uint64]))
	require.NoError(t, err, "the entry count is not validated")
	defer loaded.Close()

	// The header is trusted verbatim.
	require.Equal(t, 1000, loaded.Size())
	require.Equal(t, at.Buckets(), loaded.Buckets())

	for _, k := range []uint64{3, 4, 5} {
		_, ok := loaded.Find(k)
		require.True(t, ok)
	}

	_, ok := loaded.Find(6)
	require.False(t, ok)
}

func TestLoad_Truncated(t *testing.T) {
	at := newTestAutoTable(t, 10)
	fillAutoTable(t, at, 5)

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, at))
	data := buf.Bytes()

	_, err := Load[uint64, testEntry](bytes.NewReader(data[:len(data)-1]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Load[uint64, testEntry](bytes.NewReader(data[:10]))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = Load[uint64, testEntry](bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)
}

type failingWriter struct {
	n int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, io.ErrShortWrite
	}

	w.n--
	return len(p), nil
}

func TestSave_WriteError(t *testing.T) {
	at := newTestAutoTable(t, 10)

	require.ErrorIs(t, Save(&failingWriter{n: 0}, at), io.ErrShortWrite)
	require.ErrorIs(t, Save(&failingWriter{n: 1}, at), io.ErrShortWrite)
}

func TestSaveFile_LoadFile(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionZstd, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			at := newTestAutoTable(t, 10000)
			fillAutoTable(t, at, 100)

			path := filepath.Join(t.TempDir(), "table.bin")
			require.NoError(t, SaveFile(path, at, c))

			fi, err := os.Stat(path)
			require.NoError(t, err)
			if c == CompressionNone {
				require.Equal(t, int64(headerSize+at.Allocated()), fi.Size())
			} else {
				// Mostly empty buckets.
				require.Less(t, fi.Size(), int64(at.Allocated()/10))
			}

			loaded, err := LoadFile[uint64, testEntry](path, c, WithHashFunc(IdentityHash[uint64]))
			require.NoError(t, err)
			defer loaded.Close()

			require.Equal(t, at.Size(), loaded.Size())
			require.Equal(t, at.Bytes(), loaded.Bytes())
		})
	}
}

func TestSaveFile_UnsupportedCompression(t *testing.T) {
	at := newTestAutoTable(t, 10)

	path := filepath.Join(t.TempDir(), "table.bin")
	require.ErrorIs(t, SaveFile(path, at, Compression(9)), ErrUnsupportedCompression)

	_, err := LoadFile[uint64, testEntry](path, Compression(9))
	require.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile[uint64, testEntry](filepath.Join(t.TempDir(), "missing"), CompressionNone)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in      string
		want    Compression
		wantErr bool
	}{
		{"none", CompressionNone, false},
		{"zstd", CompressionZstd, false},
		{"lz4", CompressionLZ4, false},
		{"gzip", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseCompression(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedCompression)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_ImageSmallerThanBucket(t *testing.T) {
	data := make([]byte, headerSize+8)
	binary.NativeEndian.PutUint64(data[0:8], 8)
	binary.NativeEndian.PutUint64(data[8:16], 0)

	_, err := Load[uint64, testEntry](bytes.NewReader(data))
	require.ErrorIs(t, err, ErrShortBuffer)

	binary.NativeEndian.PutUint64(data[0:8], 0)
	_, err = Load[uint64, testEntry](bytes.NewReader(data[:headerSize]))
	require.ErrorIs(t, err, ErrShortBuffer)
}

func TestSave_Closed(t *testing.T) {
	at, err := NewAutoTable[uint64, testEntry](10)
	require.NoError(t, err)
	require.NoError(t, at.Close())

	var buf bytes.Buffer
	require.ErrorIs(t, Save(&buf, at), ErrClosed)
	require.Zero(t, buf.Len())

	require.ErrorIs(t, SaveFile(filepath.Join(t.TempDir(), "closed.bin"), at, CompressionNone), ErrClosed)
}
