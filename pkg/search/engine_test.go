package search

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var engineWords = []string{
	"the", "cat", "cats", "dog", "dogs", "hat", "hate", "ham", "can", "man",
	"happy", "sat", "tan", "god", "act",
}

func run(t *testing.T, input string, opts Options) (*Store, Stats) {
	t.Helper()
	store, stats, err := New(testDict(engineWords...), opts).Run(context.Background(), input)
	if err != nil {
		t.Fatalf("Run(%q): %v", input, err)
	}
	return store, stats
}

func sortedEntries(s *Store) []Entry {
	entries := s.Entries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Sentence < entries[j].Sentence })
	return entries
}

func TestPrunedMatchesNaive(t *testing.T) {
	inputs := []string{
		"a cats dog",
		"the cat sat",
		"i am happy",
		"dogs hate cats",
		"the ham can",
		"xyz qrs",
		"tac  god i",
		"catdog cat",
		"a  b c d e",
		"hat man tan",
		"am i a dog ok",
		"the dog is up",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			if len([]rune(in)) > 16 {
				t.Fatalf("input %q too long for an exhaustive run", in)
			}
			pruned, pStats := run(t, in, Options{})
			naive, nStats := run(t, in, Options{Naive: true})

			if diff := cmp.Diff(naive.Entries(), pruned.Entries()); diff != "" {
				t.Errorf("pruned store differs from naive (-naive +pruned):\n%s", diff)
			}
			if nStats.Validated != nStats.Space || nStats.Skipped != 0 {
				t.Errorf("naive run validated %d of %d masks, skipped %d", nStats.Validated, nStats.Space, nStats.Skipped)
			}
			if pStats.Validated+pStats.Skipped != pStats.Space {
				t.Errorf("pruned run: validated %d + skipped %d != space %d", pStats.Validated, pStats.Skipped, pStats.Space)
			}
		})
	}
}

func TestRunScoresAverageRank(t *testing.T) {
	// cat=0 cats=1 dog=2, "a" scores 7
	store, _, err := New(testDict("cat", "cats", "dog"), Options{OneLetterRank: 7}).
		Run(context.Background(), "a cats dog")
	if err != nil {
		t.Fatal(err)
	}
	score, ok := store.Score("a cat dog")
	if !ok {
		t.Fatalf("\"a cat dog\" not found in %v", store.Sentences())
	}
	if score != 3 {
		t.Errorf("score of \"a cat dog\" = %d, want (7+0+2)/3 = 3", score)
	}
	if _, ok := store.Score("a cats dog"); ok {
		t.Error("the unmodified input must not be stored")
	}
}

func TestRunPrunesHopelessInput(t *testing.T) {
	store, stats := run(t, "xyz qrs", Options{})
	if store.Len() != 0 {
		t.Errorf("expected no sentences, got %v", store.Sentences())
	}
	if stats.Space != 126 {
		t.Errorf("space = %d, want 126", stats.Space)
	}
	if stats.Validated >= stats.Space {
		t.Errorf("validated %d masks, want fewer than %d", stats.Validated, stats.Space)
	}
	if stats.Skips == 0 {
		t.Error("expected at least one skip")
	}
}

func TestRunShortInputs(t *testing.T) {
	for _, in := range []string{"", "a"} {
		store, stats := run(t, in, Options{})
		if store.Len() != 0 || stats.Validated != 0 || stats.Space != 0 {
			t.Errorf("Run(%q): len=%d validated=%d space=%d, want all zero",
				in, store.Len(), stats.Validated, stats.Space)
		}
	}
}

func TestRunInputTooLong(t *testing.T) {
	e := New(testDict(engineWords...), Options{})
	_, stats, err := e.Run(context.Background(), strings.Repeat("a", MaxInputLen+1))
	if !errors.Is(err, ErrInputTooLong) {
		t.Errorf("expected ErrInputTooLong, got %v", err)
	}
	if stats.Validated != 0 {
		t.Errorf("validated %d masks before rejecting", stats.Validated)
	}

	e = New(testDict(engineWords...), Options{MaxInputLen: 5})
	if _, _, err := e.Run(context.Background(), "the cat"); !errors.Is(err, ErrInputTooLong) {
		t.Errorf("expected ErrInputTooLong under a configured limit, got %v", err)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	inputs := []string{"dogs hate cats", "i am happy", "the ham can"}
	for _, in := range inputs {
		seq, _ := run(t, in, Options{})
		for _, workers := range []int{2, 3, 8} {
			par, stats := run(t, in, Options{Workers: workers})
			if diff := cmp.Diff(sortedEntries(seq), sortedEntries(par)); diff != "" {
				t.Errorf("%q with %d workers (-seq +par):\n%s", in, workers, diff)
			}
			if stats.Validated+stats.Skipped != stats.Space {
				t.Errorf("%q with %d workers: validated %d + skipped %d != space %d",
					in, workers, stats.Validated, stats.Skipped, stats.Space)
			}
		}
	}
}

func TestRunWorkersCappedBySpace(t *testing.T) {
	_, stats := run(t, "ab", Options{Workers: 16})
	if stats.Workers != 2 {
		t.Errorf("workers = %d, want 2 for a space of 2 masks", stats.Workers)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store, stats, err := New(testDict(engineWords...), Options{}).Run(ctx, "dogs hate cats")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store == nil {
		t.Fatal("expected a partial store")
	}
	if stats.Validated != 0 {
		t.Errorf("validated %d masks after cancellation", stats.Validated)
	}
}

func TestRunProgress(t *testing.T) {
	for _, workers := range []int{1, 4} {
		var mu sync.Mutex
		var seen []int
		opts := Options{
			Workers: workers,
			Progress: func(p int) {
				mu.Lock()
				seen = append(seen, p)
				mu.Unlock()
			},
		}
		run(t, "dogs hate cats", opts)

		if len(seen) == 0 || seen[0] != 0 || seen[len(seen)-1] != 100 {
			t.Fatalf("workers=%d: progress %v should start at 0 and end at 100", workers, seen)
		}
		for i := 1; i < len(seen); i++ {
			if seen[i] <= seen[i-1] {
				t.Errorf("workers=%d: progress not increasing: %v", workers, seen)
				break
			}
		}
	}
}
