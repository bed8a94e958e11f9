package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bastiangx/wordsift/internal/utils"
	"github.com/bastiangx/wordsift/pkg/finder"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 100

var (
	barFilled = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
	barEmpty  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9893a5", Dark: "#6e6a86"})
	label     = lipgloss.NewStyle().Bold(true)
	faint     = lipgloss.NewStyle().Faint(true)
)

// Progress draws a one-line progress bar, one cell per percent.
type Progress struct {
	w    io.Writer
	last int
}

// NewProgress creates a bar writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w, last: -1}
}

// Update redraws the bar at percent. Repeated values are ignored.
func (p *Progress) Update(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if percent == p.last {
		return
	}
	p.last = percent
	cells := percent * barWidth / 100
	fmt.Fprintf(p.w, "\r%s%s %3d%%",
		barFilled.Render(strings.Repeat("█", cells)),
		barEmpty.Render(strings.Repeat("░", barWidth-cells)),
		percent)
}

// Done ends the bar line if anything was drawn.
func (p *Progress) Done() {
	if p.last >= 0 {
		fmt.Fprintln(p.w)
	}
}

// PrintReport writes the ranked results followed by a run summary.
func PrintReport(w io.Writer, r *finder.Report) {
	for _, res := range r.Results {
		fmt.Fprintln(w, res.String())
	}
	fmt.Fprintln(w)

	st := r.Stats
	fmt.Fprintf(w, "%s %d\n", label.Render("Results:"), len(r.Results))
	fmt.Fprintf(w, "%s %q (%d characters)\n", label.Render("Input:"), r.Input, st.Length)
	fmt.Fprintf(w, "%s %s\n", label.Render("Started:"), r.Start.Format(time.TimeOnly))
	fmt.Fprintf(w, "%s %s\n", label.Render("Finished:"), r.End.Format(time.TimeOnly))
	fmt.Fprintf(w, "%s %v\n", label.Render("Elapsed:"), r.Elapsed().Round(time.Microsecond))
	fmt.Fprintln(w, faint.Render(fmt.Sprintf("masks: %s in range, %s validated, %s skipped in %s jumps, %d word sequences",
		utils.FormatWithCommas(st.Space),
		utils.FormatWithCommas(st.Validated),
		utils.FormatWithCommas(st.Skipped),
		utils.FormatWithCommas(st.Skips),
		r.Candidates)))
	if r.Partial {
		fmt.Fprintln(w, faint.Render("search stopped early; results are incomplete"))
	}
}
