package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/bastiangx/wordsift/pkg/dictionary"
	"github.com/bastiangx/wordsift/pkg/finder"
	"github.com/bastiangx/wordsift/pkg/grammar"
	"github.com/bastiangx/wordsift/pkg/rank"
	"github.com/bastiangx/wordsift/pkg/search"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func TestPrompterCutoff(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		want        int
		wantErr     bool
	}{
		{"valid first try", "2000\n", 2000, false},
		{"re-prompts until valid", "abc\n100\n\n99999\n750\n", 750, false},
		{"surrounding spaces", "  600 \n", 600, false},
		{"last line without newline", "800", 800, false},
		{"input ends", "12\n", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tc.input), &out)
			got, err := p.Cutoff(500, 10000)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Cutoff() error = %v, wantErr %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Cutoff() = %d, want %d", got, tc.want)
			}
			if !strings.Contains(out.String(), "(500-10000)") {
				t.Errorf("prompt %q does not show the range", out.String())
			}
		})
	}
}

func TestPrompterInput(t *testing.T) {
	p := NewPrompter(strings.NewReader("ICam  Happy\r\n"), io.Discard)
	got, err := p.Input()
	if err != nil {
		t.Fatal(err)
	}
	if got != "icam  happy" {
		t.Errorf("Input() = %q, want lower-cased line with inner spacing kept", got)
	}
	if _, err := p.Input(); !errors.Is(err, io.EOF) {
		t.Errorf("Input() at end = %v, want io.EOF", err)
	}
}

func TestProgress(t *testing.T) {
	var out bytes.Buffer
	p := NewProgress(&out)
	p.Done()
	if out.Len() != 0 {
		t.Errorf("Done before any update wrote %q", out.String())
	}

	p.Update(0)
	p.Update(50)
	p.Update(50)
	p.Update(150)
	p.Done()

	s := out.String()
	if strings.Count(s, "\r") != 3 {
		t.Errorf("expected 3 redraws, got %q", s)
	}
	if !strings.Contains(s, " 50%") || !strings.Contains(s, "100%") || !strings.HasSuffix(s, "\n") {
		t.Errorf("unexpected bar output %q", s)
	}
}

func TestPrintReport(t *testing.T) {
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	r := &finder.Report{
		Input: "ix am happy",
		Results: []rank.Result{
			{Score: 0, Text: "I am happy."},
			{Score: 3, Text: "Am i happy?"},
		},
		Candidates: 12,
		Stats:      search.Stats{Length: 11, Space: 2046, Validated: 1500, Skips: 40, Skipped: 546},
		Start:      start,
		End:        start.Add(1500 * time.Millisecond),
	}
	var out bytes.Buffer
	PrintReport(&out, r)
	s := out.String()

	for _, want := range []string{
		"0: I am happy.\n3: Am i happy?\n",
		"2",
		`"ix am happy" (11 characters)`,
		"10:00:00",
		"10:00:01",
		"1.5s",
		"2,046 in range",
		"1,500 validated",
		"12 word sequences",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("report missing %q:\n%s", want, s)
		}
	}
	if strings.Contains(s, "incomplete") {
		t.Error("complete report marked incomplete")
	}

	r.Partial = true
	out.Reset()
	PrintReport(&out, r)
	if !strings.Contains(out.String(), "incomplete") {
		t.Error("partial report not marked")
	}
}

func TestInputHandler(t *testing.T) {
	dict := dictionary.New([]string{"happy", "cat", "dog"}, 0)
	filter := grammar.Func(func(s string) (byte, bool) {
		return grammar.Period, s == "i am happy"
	})
	in := strings.NewReader("10\n600\nix am happy\n\ni am happyy\n")
	var out bytes.Buffer
	h := NewInputHandler(NewPrompter(in, &out), &out, dict, filter, search.Options{}, 500, 10000, false)
	if err := h.Start(context.Background(), 0, 0); err != nil {
		t.Fatal(err)
	}

	s := out.String()
	if strings.Count(s, "Dictionary size") != 2 {
		t.Errorf("expected one re-prompt for the cutoff:\n%s", s)
	}
	if strings.Count(s, "0: I am happy.") != 1 {
		t.Errorf("sentence should print exactly once over the session:\n%s", s)
	}
}

func TestRunRejectsLongInput(t *testing.T) {
	dict := dictionary.New([]string{"cat"}, 0)
	f := finder.New(dict, grammar.AcceptAll(grammar.Period), search.Options{MaxInputLen: 4})
	var out bytes.Buffer
	err := Run(context.Background(), f, "cat cat", &out, true)
	if !errors.Is(err, search.ErrInputTooLong) {
		t.Errorf("Run() = %v, want ErrInputTooLong", err)
	}
	if strings.Contains(out.String(), "Results:") {
		t.Errorf("no report expected for a rejected input:\n%s", out.String())
	}
}
