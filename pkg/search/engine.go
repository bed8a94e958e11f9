// Package search enumerates the deletion masks of an input string and keeps
// every candidate that segments into known words.
//
// The engine walks masks in increasing order. When a candidate fails on a
// token that is followed by more text, NextMask jumps past every mask that
// would reproduce the same failing prefix, which is what keeps inputs of
// twenty or more runes tractable.
package search

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bastiangx/wordsift/internal/logger"
	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// ctxCheckEvery is how many validations pass between context checks.
const ctxCheckEvery = 1 << 12

// Options tunes an Engine.
type Options struct {
	// OneLetterRank and TwoLetterRank are the placeholder ranks scored for
	// the exception words that bypass the dictionary.
	OneLetterRank int
	TwoLetterRank int

	// Workers splits the mask range into that many shards. Values below 2
	// run the search sequentially.
	Workers int

	// Naive disables skip-ahead pruning and validates every mask.
	Naive bool

	// MaxInputLen caps the accepted input length in runes.
	// Zero or anything above the package MaxInputLen means MaxInputLen.
	MaxInputLen int

	// Progress, if set, receives the consumed share of the mask space each
	// time it grows by at least one percent.
	Progress func(percent int)
}

// Stats describes one run.
type Stats struct {
	Length    int    // input length in runes
	Space     uint64 // masks in range, 2^n-2
	Validated uint64 // masks fully validated
	Skips     uint64 // jumps taken
	Skipped   uint64 // masks passed over by jumps
	Workers   int
	Elapsed   time.Duration
}

func (s *Stats) add(o Stats) {
	s.Validated += o.Validated
	s.Skips += o.Skips
	s.Skipped += o.Skipped
}

// Engine runs the mask search against one dictionary.
type Engine struct {
	dict dictionary.Provider
	opts Options
	log  *log.Logger
}

// New creates an Engine.
func New(dict dictionary.Provider, opts Options) *Engine {
	return &Engine{
		dict: dict,
		opts: opts,
		log:  logger.New("search"),
	}
}

// Run searches every deletion of input and returns the sentences found.
// When ctx ends early the partial Store is returned along with ctx's error;
// everything in it is still a valid sentence.
func (e *Engine) Run(ctx context.Context, input string) (*Store, Stats, error) {
	runes := []rune(input)
	n := len(runes)
	store := NewStore()
	stats := Stats{Length: n, Workers: 1}

	limit := e.opts.MaxInputLen
	if limit <= 0 || limit > MaxInputLen {
		limit = MaxInputLen
	}
	if n > limit {
		return store, stats, fmt.Errorf("%w: %d runes, limit is %d", ErrInputTooLong, n, limit)
	}

	first, last, ok := Space(n)
	if !ok {
		e.log.Debug("empty mask range", "len", n)
		return store, stats, nil
	}
	stats.Space = uint64(last)
	spaces := SpaceBits(runes)

	workers := e.opts.Workers
	if workers < 1 {
		workers = 1
	}
	if uint64(workers) > stats.Space {
		workers = int(stats.Space)
	}
	stats.Workers = workers

	var m *meter
	if e.opts.Progress != nil {
		m = &meter{total: stats.Space, fn: e.opts.Progress}
		m.fn(0)
	}

	e.log.Debug("search start", "len", n, "space", stats.Space, "workers", workers, "naive", e.opts.Naive)
	start := time.Now()

	var err error
	if workers == 1 {
		var st Stats
		st, err = e.scan(ctx, runes, spaces, first, last, store, m)
		stats.add(st)
	} else {
		results := make([]Stats, workers)
		g, gctx := errgroup.WithContext(ctx)
		width := stats.Space / uint64(workers)
		for w := 0; w < workers; w++ {
			w := w
			lo := first + Mask(uint64(w)*width)
			hi := lo + Mask(width) - 1
			if w == workers-1 {
				hi = last
			}
			g.Go(func() error {
				st, err := e.scan(gctx, runes, spaces, lo, hi, store, m)
				results[w] = st
				return err
			})
		}
		err = g.Wait()
		for _, st := range results {
			stats.add(st)
		}
	}
	stats.Elapsed = time.Since(start)

	if err == nil && m != nil {
		m.finish()
	}
	e.log.Debug("search done",
		"found", store.Len(),
		"validated", stats.Validated,
		"skips", stats.Skips,
		"skipped", stats.Skipped,
		"took", stats.Elapsed)
	return store, stats, err
}

// scan walks the inclusive range [lo, hi].
func (e *Engine) scan(ctx context.Context, input []rune, spaces Mask, lo, hi Mask, store *Store, m *meter) (Stats, error) {
	var st Stats
	n := len(input)
	v := NewValidator(e.dict, e.opts.OneLetterRank, e.opts.TwoLetterRank)
	buf := make([]rune, 0, n)
	var pending uint64

	for mask := lo; ; {
		if st.Validated%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				m.advance(pending)
				return st, err
			}
		}

		buf = Apply(buf, input, mask)
		out := v.Validate(buf)
		st.Validated++

		next := mask + 1
		if out.Valid {
			store.Insert(string(buf), out.Score)
		} else if !e.opts.Naive && !out.Last {
			if jump, ok := NextMask(mask, n, out.Consumed, spaces); ok {
				st.Skips++
				next = jump
			}
		}

		if next > hi {
			st.Skipped += uint64(hi - mask)
			pending += uint64(hi-mask) + 1
			break
		}
		st.Skipped += uint64(next-mask) - 1
		pending += uint64(next - mask)
		if pending >= ctxCheckEvery {
			m.advance(pending)
			pending = 0
		}
		mask = next
	}
	m.advance(pending)
	return st, nil
}

// meter turns consumed mask counts into whole percentages.
type meter struct {
	total uint64
	done  atomic.Uint64
	mu    sync.Mutex
	pct   int
	fn    func(int)
}

func (m *meter) advance(k uint64) {
	if m == nil || k == 0 {
		return
	}
	d := m.done.Add(k)
	p := int(float64(d) / float64(m.total) * 100)
	if p > 100 {
		p = 100
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if p > m.pct {
		m.pct = p
		m.fn(p)
	}
}

func (m *meter) finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pct < 100 {
		m.pct = 100
		m.fn(100)
	}
}
