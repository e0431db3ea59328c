package strtab

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Errors of the string table decoder.
var (
	// ErrTruncated is returned if the table announces more integers than the batch holds.
	ErrTruncated = errors.New("string table truncated")

	// ErrInvalidCodePoint is returned for integers which are not Unicode code
	// points, including lone surrogate halves.
	ErrInvalidCodePoint = errors.New("invalid code point in string table")

	// ErrIndexOutOfRange is returned when looking up a string which is not in the table.
	ErrIndexOutOfRange = errors.New("string table index out of range")
)

// Table is a decoded string table. Index 0 is the null string.
type Table struct {
	strings []string
}

// Len returns the number of entries, including the null entry.
func (tab Table) Len() int {
	return len(tab.strings) + 1
}

// Lookup returns the string at index i. For i = 0 it returns false, as this
// entry denotes an absent string.
func (tab Table) Lookup(i int) (string, bool, error) {
	if i == 0 {
		return "", false, nil
	}
	if i < 0 || i > len(tab.strings) {
		return "", false, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, i, tab.Len())
	}
	return tab.strings[i-1], true, nil
}

// Decode reads a string table from ops, starting at position start, which
// holds the number of integers belonging to the table. It returns the table
// and the position of the first integer after the table.
func Decode(ops []int, start int) (Table, int, error) {
	tab := Table{}
	if start >= len(ops) {
		return tab, start, fmt.Errorf("%w: missing length at %d", ErrTruncated, start)
	}
	size := ops[start]
	i := start + 1
	end := i + size
	if size < 0 || end > len(ops) {
		return tab, start, fmt.Errorf("%w: length %d at %d exceeds batch", ErrTruncated, size, start)
	}
	for i < end {
		n := ops[i]
		i++
		if n < 0 || i+n > end {
			return tab, start, fmt.Errorf("%w: string of length %d at %d", ErrTruncated, n, i-1)
		}
		s, err := decodeString(ops[i : i+n])
		if err != nil {
			return tab, start, fmt.Errorf("string %d at %d: %w", len(tab.strings)+1, i, err)
		}
		tab.strings = append(tab.strings, s)
		i += n
	}
	tracer().Debugf("decoded string table with %d entries", len(tab.strings))
	return tab, end, nil
}

// decodeString builds a string from a sequence of code points.
func decodeString(codepoints []int) (string, error) {
	var sb strings.Builder
	sb.Grow(len(codepoints))
	for _, cp := range codepoints {
		if cp < 0 || cp > utf8.MaxRune || !utf8.ValidRune(rune(cp)) {
			return "", fmt.Errorf("%w: %d", ErrInvalidCodePoint, cp)
		}
		sb.WriteRune(rune(cp))
	}
	return sb.String(), nil
}

// Encode is the inverse of Decode. It returns the integers of a string table
// holding the given strings, including the leading length. Encode is used by
// tools and tests which record or synthesize batches.
func Encode(strs ...string) []int {
	payload := []int{}
	for _, s := range strs {
		runes := []rune(s)
		payload = append(payload, len(runes))
		for _, r := range runes {
			payload = append(payload, int(r))
		}
	}
	return append([]int{len(payload)}, payload...)
}
