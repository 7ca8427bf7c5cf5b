package crawler

import (
	"log/slog"
	"strings"
	"time"

	"github.com/harvestly/dircomb/browser"
)

// nextGlyphs are single-character "next page" markers.
var nextGlyphs = map[string]bool{
	"»": true, "›": true, ">": true, "❯": true, "→": true,
}

// candidateSelector covers every element type a pagination control tends
// to be rendered as.
const candidateSelector = `a, button, input[type="button"], input[type="submit"], [rel="next"]`

// NextPage locates a "next page" control and, if one exists and is not
// disabled, activates it and waits for navigation to settle. It reports
// whether another page exists. Any failure during this step means "no next
// page": pagination problems end the crawl early with whatever was
// collected, they are never fatal.
func NextPage(page browser.Page, nextSelector string, pageDelay, settleTimeout time.Duration) bool {
	control := findNextControl(page, nextSelector)
	if control == nil {
		slog.Info("no enabled next-page control found")
		return false
	}

	if err := control.Click(); err != nil {
		slog.Warn("next-page click failed, treating as end of results", "error", err)
		return false
	}

	time.Sleep(pageDelay)
	if err := page.WaitStable(settleTimeout); err != nil {
		slog.Debug("page did not settle after pagination, proceeding", "error", err)
	}
	return true
}

// findNextControl returns the first enabled control matching the configured
// selector, falling back to the tolerant built-in heuristics. Returns nil
// when nothing matches.
func findNextControl(page browser.Page, nextSelector string) browser.Element {
	if nextSelector != "" {
		if els, err := page.Find(nextSelector); err == nil {
			for _, el := range els {
				if !isDisabled(el) {
					return el
				}
			}
		}
	}

	els, err := page.Find(candidateSelector)
	if err != nil {
		return nil
	}
	for _, el := range els {
		if looksLikeNext(el) && !isDisabled(el) {
			return el
		}
	}
	return nil
}

// looksLikeNext applies the heuristic markers: "Next" text, a chevron
// glyph, a next relation, a next-ish title or aria-label, or an input with
// the visible value "Next".
func looksLikeNext(el browser.Element) bool {
	text, _ := el.Text()
	text = strings.TrimSpace(text)
	if strings.EqualFold(text, "next") || strings.Contains(text, "Next") {
		return true
	}
	if nextGlyphs[text] {
		return true
	}

	if rel, ok := el.Attr("rel"); ok && strings.EqualFold(rel, "next") {
		return true
	}
	if title, ok := el.Attr("title"); ok && containsFold(title, "next") {
		return true
	}
	if label, ok := el.Attr("aria-label"); ok && containsFold(label, "next") {
		return true
	}
	if value, ok := el.Attr("value"); ok && strings.EqualFold(strings.TrimSpace(value), "next") {
		return true
	}
	return false
}

// isDisabled recognizes a disabled class, a disabled attribute, or
// aria-disabled="true".
func isDisabled(el browser.Element) bool {
	if cls, ok := el.Attr("class"); ok && containsFold(cls, "disabled") {
		return true
	}
	if _, ok := el.Attr("disabled"); ok {
		return true
	}
	if v, ok := el.Attr("aria-disabled"); ok && strings.EqualFold(v, "true") {
		return true
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
