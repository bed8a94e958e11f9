// Package grammar decides which validated sentences read as real sentences
// and which terminal punctuation they take.
//
// The search engine only guarantees that every token is a word. A Filter
// looks at the whole sentence: the Heuristic filter matches part-of-speech
// patterns from a lexicon, the Command filter hands sentences to an external
// parser process, and AcceptAll lets everything through.
package grammar

import (
	"context"
	"errors"
)

// Terminal punctuation.
const (
	Period   byte = '.'
	Question byte = '?'
)

// ErrNotStarted is returned by filters that need Prepare before Accept.
var ErrNotStarted = errors.New("grammar filter not started")

// Accepted is a sentence judged grammatical.
type Accepted struct {
	Sentence string // as stored by the search, without punctuation
	Punct    byte
}

// String returns the sentence with its punctuation.
func (a Accepted) String() string {
	return a.Sentence + string(a.Punct)
}

// Filter returns the grammatical subset of sentences.
type Filter interface {
	Accept(ctx context.Context, sentences []string) ([]Accepted, error)
}

// Preparer is implemented by filters that acquire resources up front.
// Callers prepare before searching so a broken filter fails the run early.
type Preparer interface {
	Prepare(ctx context.Context) error
}

// Func adapts a per-sentence function to a Filter.
// The function returns the punctuation to use and whether to accept.
type Func func(sentence string) (byte, bool)

// Accept implements Filter.
func (f Func) Accept(ctx context.Context, sentences []string) ([]Accepted, error) {
	var out []Accepted
	for _, s := range sentences {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if punct, ok := f(s); ok {
			out = append(out, Accepted{Sentence: s, Punct: punct})
		}
	}
	return out, nil
}

// AcceptAll returns a filter that accepts every sentence with punct.
func AcceptAll(punct byte) Filter {
	return Func(func(string) (byte, bool) {
		return punct, true
	})
}
