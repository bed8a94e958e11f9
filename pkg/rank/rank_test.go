package rank

import (
	"testing"

	"github.com/bastiangx/wordsift/pkg/grammar"
	"github.com/google/go-cmp/cmp"
)

type scoreMap map[string]int

func (m scoreMap) Score(s string) (int, bool) {
	v, ok := m[s]
	return v, ok
}

func TestRank(t *testing.T) {
	scores := scoreMap{"i am happy": 40, "dogs run": 12, "cats run": 12, "is it": 3}
	accepted := []grammar.Accepted{
		{Sentence: "i am happy", Punct: grammar.Period},
		{Sentence: "dogs run", Punct: grammar.Period},
		{Sentence: "cats run", Punct: grammar.Period},
		{Sentence: "is it", Punct: grammar.Question},
		{Sentence: "unscored", Punct: grammar.Period},
	}

	got := New().Rank(accepted, scores)
	want := []Result{
		{Score: 3, Text: "Is it?"},
		{Score: 12, Text: "Cats run."},
		{Score: 12, Text: "Dogs run."},
		{Score: 40, Text: "I am happy."},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
	if got[3].String() != "40: I am happy." {
		t.Errorf("String() = %q", got[3].String())
	}
}

func TestRankEmitsOnce(t *testing.T) {
	r := New()
	scores := scoreMap{"dogs run": 1, "is it": 2}

	first := r.Rank([]grammar.Accepted{{Sentence: "dogs run", Punct: grammar.Period}}, scores)
	if len(first) != 1 {
		t.Fatalf("first call returned %v", first)
	}
	second := r.Rank([]grammar.Accepted{
		{Sentence: "dogs run", Punct: grammar.Period},
		{Sentence: "is it", Punct: grammar.Question},
	}, scores)
	if diff := cmp.Diff([]Result{{Score: 2, Text: "Is it?"}}, second); diff != "" {
		t.Errorf("second call should drop what was already emitted (-want +got):\n%s", diff)
	}
	if r.Emitted() != 2 {
		t.Errorf("Emitted() = %d, want 2", r.Emitted())
	}

	// the same words with other punctuation are a different sentence
	third := r.Rank([]grammar.Accepted{{Sentence: "dogs run", Punct: grammar.Question}}, scores)
	if len(third) != 1 || third[0].Text != "Dogs run?" {
		t.Errorf("third call = %v", third)
	}
}

func TestCapitalize(t *testing.T) {
	testCases := []struct {
		in, want string
	}{
		{"i am happy.", "I am happy."},
		{"I AM HAPPY.", "I am happy."},
		{"éte", "Éte"},
		{"", ""},
	}
	for _, tc := range testCases {
		if got := Capitalize(tc.in); got != tc.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRankCollapsesSpacing(t *testing.T) {
	scores := scoreMap{"dogs  run": 7, " dogs run": 5, "dogs run ": 9}
	accepted := []grammar.Accepted{
		{Sentence: "dogs  run", Punct: grammar.Period},
		{Sentence: " dogs run", Punct: grammar.Period},
		{Sentence: "dogs run ", Punct: grammar.Period},
	}
	got := New().Rank(accepted, scores)
	if diff := cmp.Diff([]Result{{Score: 5, Text: "Dogs run."}}, got); diff != "" {
		t.Errorf("Rank mismatch (-want +got):\n%s", diff)
	}
}
