// Package auth enumerates candidate berth authorization strings: fixed
// length strings over a 6-symbol alphabet with the two end positions
// restricted to a 5-symbol subset, generated in strictly lexicographic
// order and materialized once per length at startup.
package auth

import "github.com/acdtunes/portdock-scheduler/internal/domain/shared"

// Alphabet is the ordered 6-symbol character set. Index order defines
// lexicographic order for the enumerator.
var Alphabet = [6]byte{'5', '6', '7', '8', '9', '.'}

// EndAlphabetSize is the number of symbols legal at the first and last
// position of a candidate string (the dot is excluded).
const EndAlphabetSize = 5

// MinLength and MaxLength bound the lengths the table precomputes.
const (
	MinLength = 1
	MaxLength = 10
)

// Cardinality returns the number of distinct candidate strings of the
// given length: 5 for length 1, 25 for length 2, and 25·6^(L-2) for
// length L ≥ 3.
func Cardinality(length int) int {
	switch {
	case length <= 0:
		return 0
	case length == 1:
		return EndAlphabetSize
	case length == 2:
		return EndAlphabetSize * EndAlphabetSize
	default:
		n := EndAlphabetSize * EndAlphabetSize
		for i := 0; i < length-2; i++ {
			n *= len(Alphabet)
		}
		return n
	}
}

// maxDigit returns the highest legal alphabet index at position pos
// within a string of the given length: 4 (end-restricted) at the first
// and last position, 5 (full alphabet) elsewhere.
func maxDigit(pos, length int) int {
	if pos == 0 || pos == length-1 {
		return EndAlphabetSize - 1
	}
	return len(Alphabet) - 1
}

// generate produces every candidate string of the given length in
// strictly lexicographic order via odometer-style digit incrementing:
// the rightmost position increments fastest, carrying left on overflow.
func generate(length int) []string {
	count := Cardinality(length)
	out := make([]string, 0, count)

	digits := make([]int, length)
	buf := make([]byte, length)

	for {
		for i, d := range digits {
			buf[i] = Alphabet[d]
		}
		out = append(out, string(buf))

		pos := length - 1
		for pos >= 0 {
			if digits[pos] < maxDigit(pos, length) {
				digits[pos]++
				break
			}
			digits[pos] = 0
			pos--
		}
		if pos < 0 {
			break
		}
	}
	return out
}

// Table holds the precomputed candidate lists for lengths MinLength..MaxLength.
// Index 0 is intentionally left empty — lengths are 1-based, mirroring the
// original off-by-one array sizing the wire format was built against.
type Table struct {
	byLength [MaxLength + 1][]string
}

// NewTable eagerly materializes candidate tables for every length
// 1..10. The tables never change after construction, so concurrent
// read access from parallel search workers needs no locking.
func NewTable() *Table {
	t := &Table{}
	for length := MinLength; length <= MaxLength; length++ {
		t.byLength[length] = generate(length)
	}
	return t
}

// ClampLength bounds a requested auth length to the precomputed table
// size. Per spec, a length ≥ 10 is not an error: the search proceeds
// bounded by the table's largest length, and callers are expected to log
// a diagnostic when clamped is true.
func ClampLength(length int) (effective int, clamped bool) {
	if length > MaxLength {
		return MaxLength, true
	}
	return length, false
}

// Len returns cardinality(length), or an error if length falls outside
// the precomputed range.
func (t *Table) Len(length int) (int, error) {
	if length < MinLength || length > MaxLength {
		return 0, shared.NewInvalidAuthLengthError(length)
	}
	return len(t.byLength[length]), nil
}

// At returns the candidate string at the given index for the given
// length. Index must be within [0, Len(length)).
func (t *Table) At(length, index int) (string, error) {
	if length < MinLength || length > MaxLength {
		return "", shared.NewInvalidAuthLengthError(length)
	}
	candidates := t.byLength[length]
	if index < 0 || index >= len(candidates) {
		return "", shared.NewSearchError("candidate index out of range")
	}
	return candidates[index], nil
}
