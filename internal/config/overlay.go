package config

import (
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	coreconfig "github.com/smartcalc/go-smartcalc/config"
)

// CoreConfig builds the core evaluation pipeline's config.Config from the
// built-in English defaults, overlaid with any currency rates this
// CLI-layer Config declares. The core's regex/alias/rule tables are not
// user-configurable (spec.md §1: loading those from JSON/TOML is an
// external collaborator's job this repo only shapes, not the default
// English pack itself).
func (c *Config) CoreConfig() *coreconfig.Config {
	cc := coreconfig.Default()
	for code, rate := range c.Currency.Rates {
		if !isValidISOCurrency(code) {
			slog.Default().Warn("smartcalc: ignoring unrecognized currency code in config", "code", code)
			continue
		}
		cc.CurrencyRates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	}
	return cc
}

// isValidISOCurrency reports whether code is a currency.Unit the ISO-4217
// table (via golang.org/x/text/currency) recognizes, rejecting typos in a
// user's config.toml before they silently become a dead FX rate entry.
func isValidISOCurrency(code string) bool {
	_, err := currency.ParseISO(strings.ToUpper(code))
	return err == nil
}
