package parser

import (
	"regexp"
	"strings"
)

// Address is a street address split into its parts.
type Address struct {
	Address1 string
	Address2 string
	City     string
	State    string
	Zip      string
}

// cityStateZipLineRe matches a full "City, ST 12345" or "City, ST 12345-6789"
// line. The two-letter state is matched case-insensitively.
var cityStateZipLineRe = regexp.MustCompile(`(?i)^(.+?),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)

// ParseAddress splits a multi-line address block into street/city/state/zip.
//
// Lines are trimmed and blank lines dropped. The first line becomes
// Address1. If the last line looks like "City, ST 12345", city/state/zip are
// extracted from it and any interior lines join (comma separated) as
// Address2; otherwise everything after the first line joins as Address2
// verbatim.
func ParseAddress(text string) Address {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}

	if len(lines) == 0 {
		return Address{}
	}

	addr := Address{Address1: lines[0]}
	if len(lines) == 1 {
		return addr
	}

	last := lines[len(lines)-1]
	if m := cityStateZipLineRe.FindStringSubmatch(last); m != nil {
		addr.City = strings.TrimSpace(m[1])
		addr.State = strings.ToUpper(m[2])
		addr.Zip = m[3]
		addr.Address2 = strings.Join(lines[1:len(lines)-1], ", ")
		return addr
	}

	addr.Address2 = strings.Join(lines[1:], ", ")
	return addr
}
