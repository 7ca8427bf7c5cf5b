package config

import (
	"log/slog"
	"os"

	"github.com/andybalholm/cascadia"
	"github.com/spf13/viper"
)

// Selectors is the named set of CSS locators that governs row and field
// interpretation on the directory's pages.
type Selectors struct {
	ContactRow   string `mapstructure:"contactRow" json:"contactRow"`
	NameLink     string `mapstructure:"nameLink" json:"nameLink"`
	Address      string `mapstructure:"address" json:"address"`
	CityStateZip string `mapstructure:"cityStateZip" json:"cityStateZip"`
	Phone        string `mapstructure:"phone" json:"phone"`
	Email        string `mapstructure:"email" json:"email"`
	NextPage     string `mapstructure:"nextPage" json:"nextPage"`
}

// SelectorConfig is the full selector configuration: a base URL plus the
// locator set. Immutable once loaded; produced either from defaults or by
// the setup tool.
type SelectorConfig struct {
	BaseURL   string    `mapstructure:"baseUrl" json:"baseUrl"`
	Selectors Selectors `mapstructure:"selectors" json:"selectors"`
}

// DefaultSelectors are the hard-coded fallback locators. Every field is
// non-empty so a crawl can proceed with a partial or missing config file.
var DefaultSelectors = Selectors{
	ContactRow:   "table tr",
	NameLink:     "a",
	Address:      "td:nth-child(2)",
	CityStateZip: "td:nth-child(3)",
	Phone:        "td:nth-child(4)",
	Email:        `a[href^="mailto:"]`,
	NextPage:     "a.next",
}

// LoadSelectors reads the selector configuration file. A missing file is
// not an error: the built-in defaults are returned. Individual fields that
// are absent, empty, or fail CSS-selector validation fall back to their
// default with a warning.
func LoadSelectors(path string) *SelectorConfig {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("baseUrl", "")
	v.SetDefault("selectors.contactRow", DefaultSelectors.ContactRow)
	v.SetDefault("selectors.nameLink", DefaultSelectors.NameLink)
	v.SetDefault("selectors.address", DefaultSelectors.Address)
	v.SetDefault("selectors.cityStateZip", DefaultSelectors.CityStateZip)
	v.SetDefault("selectors.phone", DefaultSelectors.Phone)
	v.SetDefault("selectors.email", DefaultSelectors.Email)
	v.SetDefault("selectors.nextPage", DefaultSelectors.NextPage)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			slog.Warn("selector config not found, using built-in defaults", "path", path)
		} else {
			slog.Warn("selector config unreadable, using built-in defaults",
				"path", path, "error", err)
		}
		return &SelectorConfig{Selectors: DefaultSelectors}
	}

	var cfg SelectorConfig
	if err := v.Unmarshal(&cfg); err != nil {
		slog.Warn("selector config malformed, using built-in defaults",
			"path", path, "error", err)
		return &SelectorConfig{Selectors: DefaultSelectors}
	}

	validate(&cfg.Selectors.ContactRow, DefaultSelectors.ContactRow, "contactRow")
	validate(&cfg.Selectors.NameLink, DefaultSelectors.NameLink, "nameLink")
	validate(&cfg.Selectors.Address, DefaultSelectors.Address, "address")
	validate(&cfg.Selectors.CityStateZip, DefaultSelectors.CityStateZip, "cityStateZip")
	validate(&cfg.Selectors.Phone, DefaultSelectors.Phone, "phone")
	validate(&cfg.Selectors.Email, DefaultSelectors.Email, "email")
	validate(&cfg.Selectors.NextPage, DefaultSelectors.NextPage, "nextPage")

	slog.Info("selector config loaded", "path", path, "baseUrl", cfg.BaseURL)
	return &cfg
}

// SaveSelectors writes the selector configuration as JSON. Used by the
// setup tool after the operator confirms each locator.
func SaveSelectors(path string, cfg *SelectorConfig) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.Set("baseUrl", cfg.BaseURL)
	v.Set("selectors.contactRow", cfg.Selectors.ContactRow)
	v.Set("selectors.nameLink", cfg.Selectors.NameLink)
	v.Set("selectors.address", cfg.Selectors.Address)
	v.Set("selectors.cityStateZip", cfg.Selectors.CityStateZip)
	v.Set("selectors.phone", cfg.Selectors.Phone)
	v.Set("selectors.email", cfg.Selectors.Email)
	v.Set("selectors.nextPage", cfg.Selectors.NextPage)

	return v.WriteConfigAs(path)
}

// ValidSelector reports whether s parses as a CSS selector group.
func ValidSelector(s string) bool {
	_, err := cascadia.ParseGroup(s)
	return err == nil
}

// validate replaces an empty or unparseable selector with its default.
func validate(field *string, fallback, name string) {
	if *field == "" {
		*field = fallback
		return
	}
	if !ValidSelector(*field) {
		slog.Warn("invalid selector in config, using default",
			"field", name, "selector", *field, "default", fallback)
		*field = fallback
	}
}
