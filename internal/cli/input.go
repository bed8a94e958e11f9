// Package cli handles the interactive prompts, progress display and result
// printing of the wordsift command.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/bastiangx/wordsift/internal/utils"
	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/bastiangx/wordsift/pkg/finder"
	"github.com/bastiangx/wordsift/pkg/grammar"
	"github.com/bastiangx/wordsift/pkg/search"
	"github.com/charmbracelet/log"
)

// Prompter reads answers to the interactive questions.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewPrompter creates a Prompter reading from r and printing prompts to out.
func NewPrompter(r io.Reader, out io.Writer) *Prompter {
	return &Prompter{reader: bufio.NewReader(r), out: out}
}

// Cutoff asks for a dictionary cutoff until the answer is an integer in
// [lo, hi]. It only fails when the input ends.
func (p *Prompter) Cutoff(lo, hi int) (int, error) {
	for {
		fmt.Fprintf(p.out, "Dictionary size (%d-%d): ", lo, hi)
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(line))
		if convErr != nil {
			log.Errorf("Not a number: %q", strings.TrimSpace(line))
			continue
		}
		if err := dictionary.ValidateCutoff(n, lo, hi); err != nil {
			log.Error(err)
			continue
		}
		return n, nil
	}
}

// Input asks for the string to search.
func (p *Prompter) Input() (string, error) {
	fmt.Fprint(p.out, "Input: ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return utils.NormalizeInput(line), nil
}

// readLine returns the next line. A last line without a newline still counts.
func (p *Prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		return "", err
	}
	return line, nil
}

// InputHandler runs the interactive session: one cutoff, then any number of
// inputs searched with the same Finder, so no sentence is shown twice.
type InputHandler struct {
	prompter *Prompter
	dict     *dictionary.Dictionary
	filter   grammar.Filter
	opts     search.Options
	out      io.Writer
	progress bool
	minCut   int
	maxCut   int
}

// NewInputHandler creates an InputHandler. Cutoff bounds come from lo and hi.
func NewInputHandler(p *Prompter, out io.Writer, dict *dictionary.Dictionary, filter grammar.Filter, opts search.Options, lo, hi int, progress bool) *InputHandler {
	return &InputHandler{
		prompter: p,
		dict:     dict,
		filter:   filter,
		opts:     opts,
		out:      out,
		progress: progress,
		minCut:   lo,
		maxCut:   hi,
	}
}

// Start searches each input line until the input ends. A cutoff of zero is
// asked for first.
func (h *InputHandler) Start(ctx context.Context, cutoff int, timeout time.Duration) error {
	if cutoff == 0 {
		var err error
		cutoff, err = h.prompter.Cutoff(h.minCut, h.maxCut)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
	f := finder.New(h.dict.WithCutoff(cutoff), h.filter, h.opts)
	f.SetTimeout(timeout)

	for {
		input, err := h.prompter.Input()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		if err := Run(ctx, f, input, h.out, h.progress); err != nil {
			if ctx.Err() != nil {
				return err
			}
			log.Error(err)
		}
	}
}

// Run searches one input with f and prints the report to out.
// With progress set, a progress bar is drawn on out while searching.
func Run(ctx context.Context, f *finder.Finder, input string, out io.Writer, progress bool) error {
	if !utils.IsSearchable(input) {
		log.Warnf("Input holds characters other than letters and spaces; they can only be deleted")
	}
	if utils.CountWords(input) < 2 {
		log.Debugf("Input %q has fewer than two words before deletion", input)
	}

	var bar *Progress
	if progress {
		bar = NewProgress(out)
		f.SetProgress(bar.Update)
	} else {
		f.SetProgress(nil)
	}
	report, err := f.Find(ctx, input)
	if bar != nil {
		bar.Done()
	}
	if report == nil || (err != nil && !report.Partial) {
		return err
	}
	PrintReport(out, report)
	return err
}
