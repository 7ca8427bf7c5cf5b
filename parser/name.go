// Package parser contains the pure field parsers that turn noisy directory
// text (names, address blocks, phone and email strings) into normalized
// structured fields. No I/O and no browser dependency.
package parser

import "strings"

// Name is a person name split into its parts.
type Name struct {
	First  string
	Middle string // single-letter middle initial, no period
	Last   string
}

// ParseName splits a full name on whitespace into first/middle-initial/last.
//
// One token is treated entirely as a first name. Two tokens become
// first/last with no middle. With three or more tokens, a second token that
// is a single letter (optionally followed by a period) is taken as the
// middle initial; otherwise the second token's first letter becomes the
// initial and tokens from the third onward join as the last name. There is
// no error case: the split is always best effort.
func ParseName(full string) Name {
	tokens := strings.Fields(full)

	switch len(tokens) {
	case 0:
		return Name{}
	case 1:
		return Name{First: tokens[0]}
	case 2:
		return Name{First: tokens[0], Last: tokens[1]}
	}

	second := []rune(strings.TrimSuffix(tokens[1], "."))
	if len(second) == 0 {
		return Name{First: tokens[0], Last: strings.Join(tokens[2:], " ")}
	}
	if len(second) == 1 {
		return Name{
			First:  tokens[0],
			Middle: string(second),
			Last:   strings.Join(tokens[2:], " "),
		}
	}

	return Name{
		First:  tokens[0],
		Middle: string(second[:1]),
		Last:   strings.Join(tokens[2:], " "),
	}
}
