package dictionary

import (
	"errors"
	"fmt"
)

// Bounds for the user facing frequency cutoff.
const (
	MinCutoff = 500
	MaxCutoff = 10000
)

// ErrCutoffRange is returned for a cutoff outside the accepted range.
var ErrCutoffRange = errors.New("cutoff out of range")

// ValidateCutoff checks that n lies in [lo, hi].
func ValidateCutoff(n, lo, hi int) error {
	if n < lo || n > hi {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrCutoffRange, n, lo, hi)
	}
	return nil
}

// cutoffView hides every word ranked at or past n.
type cutoffView struct {
	dict *Dictionary
	n    int
}

// WithCutoff returns a Provider that only knows the n most frequent words.
// One loaded dictionary can then serve many cutoffs without reloading.
// n <= 0 or n >= Len returns the dictionary itself.
func (d *Dictionary) WithCutoff(n int) Provider {
	if n <= 0 || n >= len(d.words) {
		return d
	}
	return &cutoffView{dict: d, n: n}
}

func (v *cutoffView) Contains(word string) bool {
	_, ok := v.Rank(word)
	return ok
}

func (v *cutoffView) Rank(word string) (int, bool) {
	rank, ok := v.dict.Rank(word)
	if !ok || rank >= v.n {
		return 0, false
	}
	return rank, true
}
