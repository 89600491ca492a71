package dedupe

import (
	"bytes"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// DocumentDelimiter starts the lines separating documents in raw
// CommonCrawl dumps.
const DocumentDelimiter = "df6fa1abb58549287111ba8d776733e9"

var spaces = [256]bool{
	' ':  true,
	'\t': true,
	'\n': true,
	'\v': true,
	'\f': true,
	'\r': true,
}

// Removes leading and trailing ASCII whitespace.
func StripSpaces(line []byte) []byte {
	for len(line) > 0 && spaces[line[0]] {
		line = line[1:]
	}

	for len(line) > 0 && spaces[line[len(line)-1]] {
		line = line[:len(line)-1]
	}

	return line
}

func IsDelimiter(line []byte) bool {
	return bytes.HasPrefix(line, []byte(DocumentDelimiter))
}

func IsValidUTF8(line []byte) bool {
	return utf8.Valid(line)
}

// Hash returns the content hash of a line. It's never zero, which marks
// empty buckets.
func Hash(line []byte) uint64 {
	if h := xxhash.Sum64(line); h != 0 {
		return h
	}

	return 1
}
