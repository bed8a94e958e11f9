// Package rank orders accepted sentences by how common their words are.
package rank

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bastiangx/wordsift/internal/utils"
	"github.com/bastiangx/wordsift/pkg/grammar"
	"github.com/charmbracelet/log"
)

// Result is one ranked sentence ready for display.
type Result struct {
	Score int
	Text  string // capitalized, with terminal punctuation
}

func (r Result) String() string {
	return fmt.Sprintf("%d: %s", r.Score, r.Text)
}

// Scores looks up the score of a stored sentence.
type Scores interface {
	Score(sentence string) (int, bool)
}

// Ranker sorts accepted sentences and emits each one at most once over its lifetime.
type Ranker struct {
	emitted *utils.SeenFilter
}

// New returns a Ranker with nothing emitted yet.
func New() *Ranker {
	return &Ranker{emitted: utils.NewSeenFilter()}
}

// Rank orders accepted by ascending score, ties by text, and drops anything
// this Ranker already emitted. Sentences that differ only in spacing count as
// one, at their lowest score, so the result can be shorter than accepted
// even on a fresh Ranker; the search Store still counts each spacing.
func (r *Ranker) Rank(accepted []grammar.Accepted, scores Scores) []Result {
	type scored struct {
		text  string
		score int
	}
	items := make([]scored, 0, len(accepted))
	for _, a := range accepted {
		score, ok := scores.Score(a.Sentence)
		if !ok {
			log.Warnf("No score for accepted sentence %q", a.Sentence)
			continue
		}
		items = append(items, scored{text: display(a), score: score})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score < items[j].score
		}
		return items[i].text < items[j].text
	})

	var results []Result
	for _, it := range items {
		if !r.emitted.ShouldInclude(it.text) {
			continue
		}
		results = append(results, Result{Score: it.score, Text: Capitalize(it.text)})
	}
	return results
}

// display collapses the whitespace runs left by deletions and adds the
// punctuation, so "dogs  run" and " dogs run" both read "dogs run.".
func display(a grammar.Accepted) string {
	return strings.Join(strings.Fields(a.Sentence), " ") + string(a.Punct)
}

// Emitted returns how many distinct sentences this Ranker has emitted.
func (r *Ranker) Emitted() int {
	return r.emitted.Len()
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
