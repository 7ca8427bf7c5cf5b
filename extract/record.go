package extract

import (
	"strings"

	"github.com/harvestly/dircomb/models"
	"github.com/harvestly/dircomb/parser"
)

// BuildRecord turns a raw listing row into a ContactRecord using layered
// heuristics. The source markup's column semantics are not guaranteed, so a
// row-wide regex pass supplies guesses first and a column-scoped pass
// overrides them where a column matches — column matches are higher
// confidence. Email is left empty; the detail visit fills it afterward.
func BuildRecord(row models.RawRow) models.ContactRecord {
	var rec models.ContactRecord

	name := parser.ParseName(row.Name)
	rec.FirstName = name.First
	rec.MiddleInitial = name.Middle
	rec.LastName = name.Last

	// Pass 1: row-wide guesses from the full row text.
	if m := parser.PhoneRe.FindString(row.RowText); m != "" {
		rec.Phone = parser.CleanPhone(m)
	}

	// When a street address is present, the city/state/zip search starts
	// after it, so street words never leak into the city capture.
	cityRegion := row.RowText
	if loc := parser.StreetRe.FindStringIndex(row.RowText); loc != nil {
		rec.Address1 = row.RowText[loc[0]:loc[1]]
		cityRegion = row.RowText[loc[1]:]
		derived := parser.ParseAddress(row.RowText[loc[0]:])
		if derived.City != "" {
			rec.Address2 = derived.Address2
			rec.City = derived.City
			rec.State = derived.State
			rec.Zip = derived.Zip
		}
	}

	if rec.City == "" {
		if m := parser.CityStateZipRe.FindStringSubmatch(cityRegion); m != nil {
			rec.City = strings.TrimSpace(m[1])
			rec.State = strings.ToUpper(m[2])
			rec.Zip = m[3]
		}
	}

	// Pass 2: column-scoped overrides, scanning columns after the name
	// column in order. The first column matching each pattern wins.
	if len(row.CellTexts) > 1 {
		applyColumnOverrides(&rec, row)
	}

	return rec
}

// applyColumnOverrides scans the cells after the name column and overrides
// the row-wide guesses with the first per-column match of each kind.
func applyColumnOverrides(rec *models.ContactRecord, row models.RawRow) {
	start := nameColumn(row) + 1

	var phoneDone, cityDone, addrDone bool
	for _, cell := range row.CellTexts[start:] {
		text := strings.TrimSpace(cell)
		if text == "" {
			continue
		}

		if !phoneDone {
			if m := parser.PhoneRe.FindString(text); m != "" {
				rec.Phone = parser.CleanPhone(m)
				phoneDone = true
			}
		}

		if !cityDone {
			if m := parser.CityStateZipRe.FindStringSubmatch(text); m != nil {
				rec.City = strings.TrimSpace(m[1])
				rec.State = strings.ToUpper(m[2])
				rec.Zip = m[3]
				cityDone = true
			}
		}

		if !addrDone && text[0] >= '0' && text[0] <= '9' {
			parsed := parser.ParseAddress(text)
			rec.Address1 = parsed.Address1
			if parsed.Address2 != "" {
				rec.Address2 = parsed.Address2
			}
			if parsed.City != "" && !cityDone {
				rec.City = parsed.City
				rec.State = parsed.State
				rec.Zip = parsed.Zip
				cityDone = true
			}
			addrDone = true
		}
	}
}

// nameColumn returns the index of the cell containing the row's name text,
// defaulting to the first column when no cell contains it.
func nameColumn(row models.RawRow) int {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return 0
	}
	for i, cell := range row.CellTexts {
		if strings.Contains(cell, name) {
			return i
		}
	}
	return 0
}
