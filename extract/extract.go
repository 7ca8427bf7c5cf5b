// Package extract enumerates result-listing rows and turns them into
// contact records. It operates on the browser.Page automation interface so
// the unattended crawler and the interactive setup tool share one
// implementation, and tests can run it against static HTML.
package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/harvestly/dircomb/browser"
	"github.com/harvestly/dircomb/config"
	"github.com/harvestly/dircomb/models"
	"github.com/harvestly/dircomb/parser"
)

// Extraction pairs a raw row with the record built from it. The raw row is
// kept alongside because the orchestrator still needs its detail link.
type Extraction struct {
	Row    models.RawRow
	Record models.ContactRecord
}

// FromPage produces one Extraction per data row on the loaded results page.
// Header rows (containing a th cell) and rows without a name-link match are
// skipped as non-data rows. Zero rows is not an error.
func FromPage(page browser.Page, sel config.Selectors) ([]Extraction, error) {
	rowEls, err := page.Find(sel.ContactRow)
	if err != nil {
		return nil, models.NewCrawlError(
			models.ErrCodeExtraction,
			"row selector query failed: "+sel.ContactRow,
			err,
		)
	}

	base := page.URL()

	var out []Extraction
	for i, rowEl := range rowEls {
		if headers, _ := rowEl.Find("th"); len(headers) > 0 {
			continue
		}

		links, err := rowEl.Find(sel.NameLink)
		if err != nil || len(links) == 0 {
			// No name link: separator or decoration row.
			continue
		}

		raw := captureRow(i, rowEl, links[0], base)
		rec := BuildRecord(raw)
		refineFromSelectors(&rec, rowEl, sel)

		out = append(out, Extraction{Row: raw, Record: rec})
	}

	slog.Debug("page extracted", "rows", len(rowEls), "records", len(out))
	return out, nil
}

// captureRow reads everything off a row element that record building needs.
func captureRow(index int, rowEl, nameLink browser.Element, base string) models.RawRow {
	name, _ := nameLink.Text()
	rowText, _ := rowEl.Text()

	var cells []string
	if cellEls, err := rowEl.Find("td"); err == nil {
		for _, c := range cellEls {
			t, _ := c.Text()
			cells = append(cells, t)
		}
	}

	href, _ := nameLink.Attr("href")

	return models.RawRow{
		Index:      index,
		Name:       strings.TrimSpace(name),
		DetailHref: absoluteHref(base, href),
		RowText:    rowText,
		CellTexts:  cells,
	}
}

// refineFromSelectors overrides heuristic guesses with the cells the
// configured column selectors point at. A configured column is the highest
// confidence signal of all, above both heuristic passes.
func refineFromSelectors(rec *models.ContactRecord, rowEl browser.Element, sel config.Selectors) {
	if text := selectorText(rowEl, sel.Address); text != "" && startsWithDigit(text) {
		parsed := parser.ParseAddress(text)
		rec.Address1 = parsed.Address1
		if parsed.Address2 != "" {
			rec.Address2 = parsed.Address2
		}
		if parsed.City != "" {
			rec.City = parsed.City
			rec.State = parsed.State
			rec.Zip = parsed.Zip
		}
	}

	if text := selectorText(rowEl, sel.CityStateZip); text != "" {
		if m := parser.CityStateZipRe.FindStringSubmatch(text); m != nil {
			rec.City = strings.TrimSpace(m[1])
			rec.State = strings.ToUpper(m[2])
			rec.Zip = m[3]
		}
	}

	if text := selectorText(rowEl, sel.Phone); text != "" {
		if m := parser.PhoneRe.FindString(text); m != "" {
			rec.Phone = parser.CleanPhone(m)
		}
	}
}

func selectorText(rowEl browser.Element, selector string) string {
	if selector == "" {
		return ""
	}
	els, err := rowEl.Find(selector)
	if err != nil || len(els) == 0 {
		return ""
	}
	t, err := els[0].Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(t)
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

// absoluteHref resolves href against the current page URL. Empty or
// unparsable hrefs yield "".
func absoluteHref(base, href string) string {
	if href == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil || base == "" {
		return href
	}
	resolved, err := b.Parse(href)
	if err != nil {
		return ""
	}
	return resolved.String()
}
