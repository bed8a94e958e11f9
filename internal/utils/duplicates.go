package utils

import mapset "github.com/deckarep/golang-set/v2"

// SeenFilter remembers strings that were already emitted.
type SeenFilter struct {
	seen mapset.Set[string]
}

// NewSeenFilter creates an empty filter. It is safe for concurrent use.
func NewSeenFilter() *SeenFilter {
	return &SeenFilter{seen: mapset.NewSet[string]()}
}

// ShouldInclude reports whether s is new, and marks it as seen.
func (f *SeenFilter) ShouldInclude(s string) bool {
	return f.seen.Add(s)
}

// Len returns how many distinct strings were seen.
func (f *SeenFilter) Len() int {
	return f.seen.Cardinality()
}
