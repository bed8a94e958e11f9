package search

import "sync"

// Entry is one validated sentence and its score.
type Entry struct {
	Sentence string
	Score    int
}

// Store keeps each validated sentence once, in insertion order.
// It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	index   map[string]int
	entries []Entry
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Insert records sentence with score unless it is already present; the first
// write wins. It reports whether the sentence was added.
func (s *Store) Insert(sentence string, score int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.index[sentence]; ok {
		return false
	}
	s.index[sentence] = len(s.entries)
	s.entries = append(s.entries, Entry{Sentence: sentence, Score: score})
	return true
}

// Len returns the number of distinct sentences.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Score looks up the score recorded for sentence.
func (s *Store) Score(sentence string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[sentence]
	if !ok {
		return 0, false
	}
	return s.entries[i].Score, true
}

// Entries returns a copy of all entries in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Sentences returns the stored sentences in insertion order.
func (s *Store) Sentences() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Sentence
	}
	return out
}
