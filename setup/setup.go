// Package setup implements the interactive selector discovery tool. It
// probes built-in candidate locators against the live page, reports match
// counts, and lets the operator accept a suggestion or type an override
// for each slot before saving the resulting selector configuration. There
// is no automatic validation beyond match counts and selector syntax;
// correctness is operator-judged.
package setup

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/harvestly/dircomb/browser"
	"github.com/harvestly/dircomb/config"
)

// highlightLimit caps how many matched elements get the visual outline,
// so a row selector matching hundreds of rows doesn't flood the page.
const highlightLimit = 5

// Tool walks the operator through one selector slot at a time against an
// already-navigated page.
type Tool struct {
	page browser.Page
	in   *bufio.Scanner
	out  io.Writer
}

// New builds a discovery tool reading operator answers from in and
// writing prompts to out.
func New(page browser.Page, in io.Reader, out io.Writer) *Tool {
	return &Tool{page: page, in: bufio.NewScanner(in), out: out}
}

// Run probes every slot, collects the operator's choices, and saves the
// configuration to path. The page must already show the directory
// listing; login is the operator's job before this starts.
func (t *Tool) Run(baseURL, path string) error {
	fmt.Fprintf(t.out, "Probing selectors against %s\n", t.page.URL())

	sel := config.DefaultSelectors
	for _, s := range slots() {
		choice, err := t.discover(s)
		if err != nil {
			return err
		}
		s.assign(&sel, choice)
	}

	cfg := &config.SelectorConfig{BaseURL: baseURL, Selectors: sel}
	if err := config.SaveSelectors(path, cfg); err != nil {
		return err
	}
	fmt.Fprintf(t.out, "\nSelector configuration written to %s\n", path)
	return nil
}

// discover probes one slot's candidates, reports the counts, and prompts
// until the operator accepts a candidate or supplies a valid override.
func (t *Tool) discover(s slot) (string, error) {
	fmt.Fprintf(t.out, "\n%s:\n", s.name)

	best := 0
	counts := make([]int, len(s.candidates))
	for i, cand := range s.candidates {
		counts[i] = t.probe(cand)
		fmt.Fprintf(t.out, "  [%d] %-32s %d matches\n", i+1, cand, counts[i])
		if counts[i] > counts[best] {
			best = i
		}
	}
	if counts[best] == 0 {
		fmt.Fprintf(t.out, "  no candidate matched anything on this page\n")
	}

	for {
		fmt.Fprintf(t.out, "  accept [1-%d], type a selector, or Enter for %q: ",
			len(s.candidates), s.candidates[best])

		line := t.readLine()
		choice := s.candidates[best]
		switch {
		case line == "":
		case isIndex(line, len(s.candidates)):
			n, _ := strconv.Atoi(line)
			choice = s.candidates[n-1]
		default:
			if !config.ValidSelector(line) {
				fmt.Fprintf(t.out, "  %q is not a valid selector, try again\n", line)
				continue
			}
			choice = line
		}

		fmt.Fprintf(t.out, "  using %q (%d matches)\n", choice, t.probe(choice))
		t.highlight(choice)
		return choice, nil
	}
}

// probe counts elements matching the selector on the live page.
func (t *Tool) probe(selector string) int {
	els, err := t.page.Find(selector)
	if err != nil {
		return 0
	}
	return len(els)
}

// highlight outlines the first few matches for visual confirmation.
// Failures are cosmetic and only logged.
func (t *Tool) highlight(selector string) {
	els, err := t.page.Find(selector)
	if err != nil {
		return
	}
	if len(els) > highlightLimit {
		els = els[:highlightLimit]
	}
	for _, el := range els {
		if err := el.Highlight(); err != nil {
			slog.Debug("highlight failed", "selector", selector, "error", err)
			return
		}
	}
}

// readLine returns the next trimmed operator answer. A closed input
// stream reads as an empty answer, which accepts the suggestion.
func (t *Tool) readLine() string {
	if !t.in.Scan() {
		fmt.Fprintln(t.out)
		return ""
	}
	return strings.TrimSpace(t.in.Text())
}

func isIndex(line string, max int) bool {
	n, err := strconv.Atoi(line)
	return err == nil && n >= 1 && n <= max
}
