package crawler

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/harvestly/dircomb/browser"
	"github.com/harvestly/dircomb/models"
	"github.com/harvestly/dircomb/parser"
)

// genericEmailMarkers flag addresses that are almost certainly a shared
// mailbox rather than the contact's own. Strategy (b) prefers a match
// without any of these, but still returns a generic one as a last resort.
var genericEmailMarkers = []string{"noreply", "support@", "info@", "admin@"}

// emailLabelRe matches a literal "email:" label with an address-shaped
// substring on the same line.
var emailLabelRe = regexp.MustCompile(`(?i)email:[ \t]*(` + parser.EmailRe.String() + `)`)

// VisitDetail navigates to a contact's detail page, recovers an email
// address, and returns the browser to the results page. A failed detail
// fetch is never fatal: it logs a warning and yields an empty email. A
// failure to get back to the results page is returned, because iteration
// cannot continue from the wrong page.
func VisitDetail(page browser.Page, detailURL, emailSelector, resultsURL string) (string, error) {
	var email string

	if err := page.Navigate(detailURL); err != nil {
		slog.Warn("detail page fetch failed, leaving email empty",
			"url", detailURL, "error", err)
	} else {
		email = emailFromPage(page, emailSelector)
	}

	if err := page.Navigate(resultsURL); err != nil {
		return email, models.NewCrawlError(
			models.ErrCodeNavigation,
			"failed to return to results page "+resultsURL,
			err,
		)
	}
	return email, nil
}

// emailFromPage applies the layered email search: mail-contact link first,
// then a visible-text pattern scan preferring non-generic addresses, then a
// labeled "email:" line. Returns "" when all three miss.
func emailFromPage(page browser.Page, emailSelector string) string {
	if doc, err := page.HTML(); err == nil {
		if email := emailFromMailto(doc, emailSelector); email != "" {
			return email
		}
	}

	text, err := page.Text()
	if err != nil {
		return ""
	}
	if email := emailFromText(text); email != "" {
		return email
	}
	return emailFromLabel(text)
}

// emailFromMailto finds the first mail-contact link, trying the configured
// email selector before the generic mailto form, and strips the scheme
// prefix and any trailing query.
func emailFromMailto(rawHTML, emailSelector string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return ""
	}

	selectors := []string{emailSelector, `a[href^="mailto:"]`}
	for _, sel := range selectors {
		if sel == "" {
			continue
		}
		var found string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			href, ok := s.Attr("href")
			if !ok {
				// The configured selector may point at a plain text
				// element rather than a link.
				found = parser.CleanEmail(s.Text())
				return found == ""
			}
			if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
				return true
			}
			addr := href[len("mailto:"):]
			if q := strings.IndexByte(addr, '?'); q >= 0 {
				addr = addr[:q]
			}
			found = parser.CleanEmail(addr)
			return found == ""
		})
		if found != "" {
			return found
		}
	}
	return ""
}

// emailFromText scans the visible page text for address-shaped substrings,
// preferring one without a generic-mailbox marker over one with.
func emailFromText(text string) string {
	matches := parser.EmailRe.FindAllString(text, -1)
	if len(matches) == 0 {
		return ""
	}

	for _, m := range matches {
		if !isGenericEmail(m) {
			return strings.ToLower(m)
		}
	}
	return strings.ToLower(matches[0])
}

// emailFromLabel finds a literal "email:" label followed by an address on
// the same line.
func emailFromLabel(text string) string {
	if m := emailLabelRe.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

func isGenericEmail(addr string) bool {
	lower := strings.ToLower(addr)
	for _, marker := range genericEmailMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
