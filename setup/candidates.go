package setup

import "github.com/harvestly/dircomb/config"

// slot is one selector the tool discovers: a label for the prompt, where
// the choice lands in the final configuration, and the built-in locators
// probed against the live page.
type slot struct {
	name       string
	assign     func(*config.Selectors, string)
	candidates []string
}

// slots lists every selector slot in prompt order. Each candidate list
// starts with the built-in default, so pressing Enter on a page where
// nothing matches still yields a workable configuration.
func slots() []slot {
	return []slot{
		{
			name:   "contact row",
			assign: func(s *config.Selectors, v string) { s.ContactRow = v },
			candidates: []string{
				config.DefaultSelectors.ContactRow,
				"table tbody tr",
				".directory-row",
				".results .row",
				"ul.members li",
			},
		},
		{
			name:   "name link",
			assign: func(s *config.Selectors, v string) { s.NameLink = v },
			candidates: []string{
				config.DefaultSelectors.NameLink,
				"td a",
				".name a",
				"a.member-name",
			},
		},
		{
			name:   "address column",
			assign: func(s *config.Selectors, v string) { s.Address = v },
			candidates: []string{
				config.DefaultSelectors.Address,
				"td.address",
				".address",
			},
		},
		{
			name:   "city/state/zip column",
			assign: func(s *config.Selectors, v string) { s.CityStateZip = v },
			candidates: []string{
				config.DefaultSelectors.CityStateZip,
				"td.city",
				".city-state-zip",
			},
		},
		{
			name:   "phone column",
			assign: func(s *config.Selectors, v string) { s.Phone = v },
			candidates: []string{
				config.DefaultSelectors.Phone,
				"td.phone",
				".phone",
				`a[href^="tel:"]`,
			},
		},
		{
			name:   "email locator",
			assign: func(s *config.Selectors, v string) { s.Email = v },
			candidates: []string{
				config.DefaultSelectors.Email,
				"td.email a",
				".email a",
			},
		},
		{
			name:   "next-page control",
			assign: func(s *config.Selectors, v string) { s.NextPage = v },
			candidates: []string{
				config.DefaultSelectors.NextPage,
				`a[rel="next"]`,
				".pagination a.next",
				"li.next a",
			},
		},
	}
}
