package search

import (
	"errors"
	"unicode"
)

// Mask selects which runes of an input get deleted.
// Bit i maps to the rune at position n-1-i, so the most significant used bit
// is the first rune of the input. A set bit deletes that rune.
type Mask uint64

// MaxInputLen is the longest input whose full mask range still fits in a Mask.
const MaxInputLen = 63

// ErrInputTooLong is returned before any enumeration when the input has more
// runes than the mask width (or the configured limit) allows.
var ErrInputTooLong = errors.New("input too long for mask space")

// Space returns the inclusive mask range searched for an input of n runes.
// Mask 0 (nothing deleted) and 2^n-1 (everything deleted) are excluded, so
// inputs shorter than 2 runes have no range at all.
func Space(n int) (first, last Mask, ok bool) {
	if n < 2 || n > MaxInputLen {
		return 0, 0, false
	}
	return 1, Mask(1)<<uint(n) - 2, true
}

// Apply writes the runes retained by mask into dst and returns it.
func Apply(dst []rune, input []rune, mask Mask) []rune {
	dst = dst[:0]
	n := len(input)
	for pos, r := range input {
		if mask&(Mask(1)<<uint(n-1-pos)) == 0 {
			dst = append(dst, r)
		}
	}
	return dst
}

// SpaceBits returns a mask with a bit set for every whitespace rune of input,
// using the same bit layout as Mask.
func SpaceBits(input []rune) Mask {
	var bits Mask
	n := len(input)
	if n > MaxInputLen {
		return 0
	}
	for pos, r := range input {
		if unicode.IsSpace(r) {
			bits |= Mask(1) << uint(n-1-pos)
		}
	}
	return bits
}
