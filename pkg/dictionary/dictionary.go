// Package dictionary provides the ranked word lists that candidates are checked against.
//
// Words are ranked by their position in a frequency ordered source: rank 0 is
// the most common word. Sources can be plain text lists, msgpack snapshots
// or SQLite tables; all of them end up in the same patricia trie index.
package dictionary

import (
	"github.com/bastiangx/wordsift/internal/utils"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Provider answers word membership and rank queries.
// Smaller ranks mean more frequent words.
type Provider interface {
	Contains(word string) bool
	Rank(word string) (int, bool)
}

// Dictionary is an immutable snapshot of ranked words.
type Dictionary struct {
	trie  *patricia.Trie
	words []string
}

// New builds a Dictionary from words in frequency order. Words are normalized
// and duplicates are dropped, so ranks stay dense. limit caps the number of
// distinct words kept; zero keeps all of them.
func New(words []string, limit int) *Dictionary {
	d := &Dictionary{trie: patricia.NewTrie()}
	for _, w := range words {
		if limit > 0 && len(d.words) >= limit {
			break
		}
		d.add(w)
	}
	return d
}

// add inserts word with the next free rank. It reports false for blanks and duplicates.
func (d *Dictionary) add(word string) bool {
	word = utils.NormalizeWord(word)
	if word == "" {
		return false
	}
	if !d.trie.Insert(patricia.Prefix(word), len(d.words)) {
		return false
	}
	d.words = append(d.words, word)
	return true
}

// Contains reports whether word is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	return d.trie.Match(patricia.Prefix(word))
}

// Rank returns the frequency rank of word.
func (d *Dictionary) Rank(word string) (int, bool) {
	item := d.trie.Get(patricia.Prefix(word))
	if item == nil {
		return 0, false
	}
	rank, ok := item.(int)
	return rank, ok
}

// Len returns the number of words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns the words in rank order.
func (d *Dictionary) Words() []string {
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out
}
