package search

// NextMask computes where the iteration can resume after a candidate failed
// on a token that is not its last one.
//
// consumed is the candidate offset just past the separator that follows the
// failing token. NextMask finds the input rune that produced that separator:
// the consumed-th rune retained by cur, counted from the start of the input.
// If that rune is whitespace in the input (its bit is set in spaces), every
// mask between cur and the returned one keeps exactly the same retained
// prefix up to and including the separator, and therefore fails on the same
// token. The returned mask keeps the bits above the separator, deletes the
// separator and clears everything below it.
//
// ok is false when no such boundary exists; callers then advance by one.
func NextMask(cur Mask, n, consumed int, spaces Mask) (next Mask, ok bool) {
	if consumed <= 0 || n <= 0 || n > MaxInputLen {
		return cur, false
	}
	seen := 0
	for p := n - 1; p >= 0; p-- {
		bit := Mask(1) << uint(p)
		if cur&bit != 0 {
			continue
		}
		seen++
		if seen < consumed {
			continue
		}
		if spaces&bit == 0 {
			return cur, false
		}
		return (cur | bit) &^ (bit - 1), true
	}
	return cur, false
}
