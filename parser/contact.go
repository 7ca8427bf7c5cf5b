package parser

import (
	"regexp"
	"strings"
)

// Shared patterns for phone/address/email recognition. The row-building
// heuristics in extract/ and the detail-page email scan both use these, so
// they live here rather than being re-declared per caller.
var (
	// PhoneRe matches "(555) 123-4567" and the usual sloppy variants:
	// missing parentheses, dots or spaces for separators.
	PhoneRe = regexp.MustCompile(`\(?\d{3}\)?[\s.\-]*\d{3}[\s.\-]\d{4}`)

	// CityStateZipRe matches "Springfield, IL 62704" anywhere in a string.
	// The city must start with a capital letter; the state matches either case.
	CityStateZipRe = regexp.MustCompile(`([A-Z][A-Za-z .'\-]*?),\s*([A-Za-z]{2})\s+(\d{5}(?:-\d{4})?)`)

	// StreetRe matches a leading-digit street address like "123 Main St".
	StreetRe = regexp.MustCompile(`(?i)\d+\s+[A-Z0-9][A-Za-z0-9 .'\-]*?\s(?:St|Street|Ave|Avenue|Rd|Road|Dr|Drive|Ln|Lane|Blvd|Boulevard|Ct|Court|Cir|Circle|Way|Pl|Place|Ter|Terrace|Pkwy|Parkway|Hwy|Highway)\.?\b`)

	// EmailRe matches a local@domain.tld shaped substring.
	EmailRe = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)

	// phoneKeepRe is the character class CleanPhone retains.
	phoneKeepRe = regexp.MustCompile(`[^0-9\-().\s+]`)
)

// CleanPhone strips every character that is not a digit, hyphen,
// parenthesis, period, space or plus, and trims the result.
func CleanPhone(text string) string {
	return strings.TrimSpace(phoneKeepRe.ReplaceAllString(text, ""))
}

// CleanEmail extracts the first email-shaped substring, lower-cased.
// Returns the empty string when none is found.
func CleanEmail(text string) string {
	match := EmailRe.FindString(text)
	if match == "" {
		return ""
	}
	return strings.ToLower(match)
}
