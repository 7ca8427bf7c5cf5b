package parser

import "strings"

// EscapeCSV quotes a field for comma-delimited output. Fields containing a
// comma, quote or newline are wrapped in double quotes with internal quotes
// doubled; everything else passes through unchanged.
func EscapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n\r") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
