package parser

import "testing"

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Address
	}{
		{
			"street and city line",
			"123 Main St\nSpringfield, IL 62704",
			Address{Address1: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{
			"interior line becomes address2",
			"123 Main St\nSuite 400\nSpringfield, IL 62704",
			Address{Address1: "123 Main St", Address2: "Suite 400", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{
			"multiple interior lines join with comma",
			"123 Main St\nBuilding A\nSuite 400\nSpringfield, IL 62704",
			Address{Address1: "123 Main St", Address2: "Building A, Suite 400", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{
			"zip plus four",
			"123 Main St\nSpringfield, IL 62704-1234",
			Address{Address1: "123 Main St", City: "Springfield", State: "IL", Zip: "62704-1234"},
		},
		{
			"lowercase state still matches",
			"123 Main St\nSpringfield, il 62704",
			Address{Address1: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{
			"no city line keeps trailing lines verbatim",
			"123 Main St\nPO Box 99",
			Address{Address1: "123 Main St", Address2: "PO Box 99"},
		},
		{
			"single line",
			"123 Main St",
			Address{Address1: "123 Main St"},
		},
		{
			"blank lines dropped",
			"\n123 Main St\n\n\nSpringfield, IL 62704\n",
			Address{Address1: "123 Main St", City: "Springfield", State: "IL", Zip: "62704"},
		},
		{"empty", "", Address{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAddress(tt.in)
			if got != tt.want {
				t.Errorf("ParseAddress(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
