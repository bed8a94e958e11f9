package grammar

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// phrase describes a subject or predicate: a base tag set and the tags
// allowed to modify it.
type phrase struct {
	base mapset.Set[string]
	mod  mapset.Set[string]
}

var (
	subject   = phrase{base: mapset.NewThreadUnsafeSet(TagNoun, TagPronoun), mod: mapset.NewThreadUnsafeSet(TagAdjective, TagArticle, TagNumber, TagDeterminer)}
	predicate = phrase{base: mapset.NewThreadUnsafeSet(TagVerb), mod: mapset.NewThreadUnsafeSet(TagAdverb, TagHelper)}
	conj      = mapset.NewThreadUnsafeSet(TagConjunction)

	// a sentence may not end on one of these
	badEnding = mapset.NewThreadUnsafeSet(TagArticle, TagNumber)
)

// Heuristic accepts sentences made of exactly one subject phrase and one
// predicate phrase. Subject first reads as a statement, predicate first as
// a question.
type Heuristic struct {
	lex *Lexicon
}

// NewHeuristic creates a Heuristic filter over lex.
func NewHeuristic(lex *Lexicon) *Heuristic {
	return &Heuristic{lex: lex}
}

// Accept implements Filter.
func (h *Heuristic) Accept(ctx context.Context, sentences []string) ([]Accepted, error) {
	var out []Accepted
	for _, s := range sentences {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		if punct, ok := h.Check(s); ok {
			out = append(out, Accepted{Sentence: s, Punct: punct})
		}
	}
	return out, nil
}

// Check classifies a single sentence.
func (h *Heuristic) Check(sentence string) (byte, bool) {
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return 0, false
	}
	tags := make([]mapset.Set[string], len(words))
	for i, w := range words {
		tags[i] = h.lex.Tags(w)
	}
	last := len(tags) - 1

	var punct byte
	switch {
	case spans(tags, subject, predicate):
		punct = Period
	case spans(tags, predicate, subject):
		punct = Question
	default:
		return 0, false
	}

	end := tags[last]
	if overlaps(end, badEnding) {
		return 0, false
	}
	if end.Cardinality() == 1 && (end.Contains(TagUnknown) || end.Contains(TagOther)) {
		return 0, false
	}
	return punct, true
}

// spans reports whether first starting at 0 is followed by second ending on
// the last word.
func spans(tags []mapset.Set[string], first, second phrase) bool {
	last := len(tags) - 1
	end := phraseEnd(tags, first, 0)
	if end < 0 || end+1 > last {
		return false
	}
	return phraseEnd(tags, second, end+1) == last
}

// phraseEnd matches p at index i and returns the index of its last word, or
// -1. Longer patterns win:
//
//	B
//	M B
//	B c B
//	B c M B | M B c B
//	M B c M B
func phraseEnd(tags []mapset.Set[string], p phrase, i int) int {
	ret := -1
	last := len(tags) - 1
	is := func(j int, set mapset.Set[string]) bool {
		return overlaps(tags[j], set)
	}

	firstIsBase := is(i, p.base)
	if firstIsBase {
		ret = i
	}
	if i+1 > last {
		return ret
	}

	firstIsMod := is(i, p.mod)
	secIsBase := is(i+1, p.base)
	if firstIsMod && secIsBase {
		ret = i + 1
	}
	if i+2 > last {
		return ret
	}

	secIsConj := is(i+1, conj)
	thirdIsBase := is(i+2, p.base)
	if firstIsBase && secIsConj && thirdIsBase {
		ret = i + 2
	}
	if i+3 > last {
		return ret
	}

	thirdIsMod := is(i+2, p.mod)
	thirdIsConj := is(i+2, conj)
	fourthIsBase := is(i+3, p.base)
	if firstIsBase && secIsConj && thirdIsMod && fourthIsBase {
		ret = i + 3
	} else if firstIsMod && secIsBase && thirdIsConj && fourthIsBase {
		ret = i + 3
	}
	if i+4 > last {
		return ret
	}

	fourthIsMod := is(i+3, p.mod)
	fifthIsBase := is(i+4, p.base)
	if firstIsMod && secIsBase && thirdIsConj && fourthIsMod && fifthIsBase {
		ret = i + 4
	}
	return ret
}

// overlaps reports whether a and b share a tag.
func overlaps(a, b mapset.Set[string]) bool {
	found := false
	b.Each(func(t string) bool {
		found = a.Contains(t)
		return found
	})
	return found
}
