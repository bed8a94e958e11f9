// Package finder runs the whole pipeline for one input: deletion search,
// grammar filtering and ranking.
package finder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/bastiangx/wordsift/pkg/grammar"
	"github.com/bastiangx/wordsift/pkg/rank"
	"github.com/bastiangx/wordsift/pkg/search"
	"github.com/charmbracelet/log"
)

// Report is the outcome of one Find call.
type Report struct {
	Input      string
	Results    []rank.Result
	Candidates int // sentences that passed the search, before grammar
	Stats      search.Stats
	Start      time.Time
	End        time.Time
	// Partial is set when the search stopped early; Results then cover only
	// the masks visited before the stop.
	Partial bool
}

// Elapsed returns the wall time of the run.
func (r *Report) Elapsed() time.Duration {
	return r.End.Sub(r.Start)
}

// Finder owns the per-session state: the emitted set lives in its Ranker, so
// a sentence is reported once per Finder no matter how many inputs produce it.
type Finder struct {
	dict    dictionary.Provider
	filter  grammar.Filter
	ranker  *rank.Ranker
	opts    search.Options
	timeout time.Duration
}

// New creates a Finder.
func New(dict dictionary.Provider, filter grammar.Filter, opts search.Options) *Finder {
	return &Finder{
		dict:   dict,
		filter: filter,
		ranker: rank.New(),
		opts:   opts,
	}
}

// SetProgress sets the callback receiving search progress for later Find
// calls. nil turns reporting off.
func (f *Finder) SetProgress(fn func(percent int)) {
	f.opts.Progress = fn
}

// SetTimeout bounds each later search; zero means no bound.
func (f *Finder) SetTimeout(d time.Duration) {
	f.timeout = d
}

// Find searches input and returns the ranked grammatical sentences.
//
// If ctx is cancelled during the search, the sentences found so far are
// still filtered and ranked, and the report comes back marked Partial along
// with ctx's error.
func (f *Finder) Find(ctx context.Context, input string) (*Report, error) {
	if p, ok := f.filter.(grammar.Preparer); ok {
		if err := p.Prepare(ctx); err != nil {
			return nil, fmt.Errorf("prepare grammar filter: %w", err)
		}
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	report := &Report{Input: input, Start: time.Now()}
	store, stats, err := search.New(f.dict, f.opts).Run(ctx, input)
	report.Stats = stats
	report.Candidates = store.Len()

	filterCtx := ctx
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			report.End = time.Now()
			return report, err
		}
		log.Warnf("Search stopped early after %d masks: %v", stats.Validated, err)
		report.Partial = true
		filterCtx = context.WithoutCancel(ctx)
	}

	if store.Len() > 0 {
		accepted, ferr := f.filter.Accept(filterCtx, store.Sentences())
		if ferr != nil {
			report.End = time.Now()
			return report, fmt.Errorf("grammar filter: %w", ferr)
		}
		log.Debugf("Grammar filter accepted %d of %d sentences", len(accepted), store.Len())
		report.Results = f.ranker.Rank(accepted, store)
	}
	report.End = time.Now()
	return report, err
}
