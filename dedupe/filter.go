package dedupe

import (
	"bufio"
	"bytes"
	"io"
)

// FilterStats counts the lines read and written by a filter.
type FilterStats struct {
	Read    int
	Written int
}

// Calls fn for every line of r without the line terminator. The slice is
// only valid until fn returns.
func readLines(r io.Reader, fn func(line []byte) error) error {
	br := bufio.NewReaderSize(r, 1<<16)

	for {
		line, err := br.ReadSlice('\n')
		if err == bufio.ErrBufferFull {
			// Long line, fall back to an allocating read for the rest. The
			// prefix lives in the read buffer, copy it before refilling.
			line = bytes.Clone(line)
			rest, restErr := br.ReadBytes('\n')
			line = append(line, rest...)
			err = restErr
		}

		if len(line) > 0 {
			if fnErr := fn(bytes.TrimSuffix(line, []byte{'\n'})); fnErr != nil {
				return fnErr
			}
		}

		if err == io.EOF {
			return nil
		}

		if err != nil {
			return err
		}
	}
}

// Adds every stripped line of r to the set and returns the number of lines
// read. Nothing is written anywhere.
func (s *LineSet) Seed(r io.Reader) (int, error) {
	var n int
	err := readLines(r, func(line []byte) error {
		n++
		_, err := s.IsNew(StripSpaces(line))
		return err
	})

	return n, err
}

// Copies the stripped lines of r to w that are not document delimiters, were
// not seen before and are valid UTF-8. Lines with invalid UTF-8 are still
// added to the set.
func (s *LineSet) Filter(r io.Reader, w io.Writer) (FilterStats, error) {
	return filterLines(r, w, func(line []byte) (bool, error) {
		if IsDelimiter(line) {
			return false, nil
		}

		isNew, err := s.IsNew(line)
		if err != nil || !isNew {
			return false, err
		}

		return IsValidUTF8(line), nil
	})
}

// Copies the stripped lines of r to w that are not document delimiters and
// are valid UTF-8.
func Clean(r io.Reader, w io.Writer) (FilterStats, error) {
	return filterLines(r, w, func(line []byte) (bool, error) {
		return !IsDelimiter(line) && IsValidUTF8(line), nil
	})
}

func filterLines(r io.Reader, w io.Writer, pass func(line []byte) (bool, error)) (FilterStats, error) {
	var stats FilterStats
	bw := bufio.NewWriterSize(w, 1<<16)

	err := readLines(r, func(line []byte) error {
		stats.Read++

		line = StripSpaces(line)
		ok, err := pass(line)
		if err != nil || !ok {
			return err
		}

		stats.Written++
		if _, err := bw.Write(line); err != nil {
			return err
		}
		return bw.WriteByte('\n')
	})
	if err != nil {
		return stats, err
	}

	return stats, bw.Flush()
}
