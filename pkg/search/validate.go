package search

import (
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/wordsift/pkg/dictionary"
	mapset "github.com/deckarep/golang-set/v2"
)

// OneLetterWords are accepted without a dictionary lookup.
var OneLetterWords = []string{"a", "i"}

// TwoLetterWords are the short function words accepted without a dictionary lookup.
var TwoLetterWords = []string{
	"ad", "am", "an", "as", "at", "be", "by", "do", "go", "ha",
	"he", "hi", "if", "in", "is", "it", "me", "my", "no", "of",
	"ok", "on", "or", "so", "to", "up", "us", "we",
}

// Outcome is the result of validating one candidate.
type Outcome struct {
	Valid  bool
	Score  int // truncated average rank, only set when Valid
	Tokens int

	// Failure details, only set when !Valid.
	Index    int  // first failing token
	Consumed int  // candidate offset just past the separator after Index
	Last     bool // Index is the last token, or the candidate had too few words
}

type span struct {
	start, end int
}

// Validator checks that a candidate is made of at least two known words.
// A Validator reuses internal buffers and must not be shared between goroutines.
type Validator struct {
	dict      dictionary.Provider
	oneLetter mapset.Set[string]
	twoLetter mapset.Set[string]
	oneRank   int
	twoRank   int
	spans     []span
}

// NewValidator returns a Validator backed by dict. oneRank and twoRank are the
// placeholder ranks scored for the one and two letter exception words.
func NewValidator(dict dictionary.Provider, oneRank, twoRank int) *Validator {
	return &Validator{
		dict:      dict,
		oneLetter: mapset.NewThreadUnsafeSet(OneLetterWords...),
		twoLetter: mapset.NewThreadUnsafeSet(TwoLetterWords...),
		oneRank:   oneRank,
		twoRank:   twoRank,
		spans:     make([]span, 0, 8),
	}
}

// Validate splits candidate on whitespace runs and checks every token in order,
// stopping at the first one that is not a word.
func (v *Validator) Validate(candidate []rune) Outcome {
	v.spans = tokenize(v.spans[:0], candidate)
	count := len(v.spans)

	// too few words: nothing after the failure point to skip over
	if count < 2 {
		idx := count - 1
		if idx < 0 {
			idx = 0
		}
		return Outcome{Tokens: count, Index: idx, Last: true}
	}

	sum := 0
	for k, sp := range v.spans {
		rank, ok := v.wordRank(string(candidate[sp.start:sp.end]))
		if !ok {
			return Outcome{
				Tokens:   count,
				Index:    k,
				Consumed: sp.end + 1,
				Last:     k == count-1,
			}
		}
		sum += rank
	}
	return Outcome{Valid: true, Tokens: count, Score: sum / count}
}

// wordRank reports whether token is acceptable and the rank it scores.
func (v *Validator) wordRank(token string) (int, bool) {
	switch {
	case v.oneLetter.Contains(token):
		return v.oneRank, true
	case v.twoLetter.Contains(token):
		return v.twoRank, true
	case utf8.RuneCountInString(token) > 2:
		if !v.dict.Contains(token) {
			return 0, false
		}
		return v.dict.Rank(token)
	}
	return 0, false
}

// tokenize appends the [start, end) offsets of every whitespace separated run.
func tokenize(dst []span, s []rune) []span {
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				dst = append(dst, span{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		dst = append(dst, span{start, len(s)})
	}
	return dst
}
