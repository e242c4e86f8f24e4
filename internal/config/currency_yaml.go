package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// currencyYAML is the shape of a standalone currency-rate fixture, the
// format some users maintain their FX table in outside of config.toml
// (e.g. exported from a spreadsheet or a nightly rates job).
type currencyYAML struct {
	Rates map[string]float64 `yaml:"rates"`
}

// LoadCurrencyYAML reads a YAML file of currency rates and merges them into
// c.Currency.Rates, overwriting any code already present. Unknown-format
// files are rejected; the embedded TOML defaults remain the baseline.
func (c *Config) LoadCurrencyYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc currencyYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	if c.Currency.Rates == nil {
		c.Currency.Rates = make(map[string]float64, len(doc.Rates))
	}
	for code, rate := range doc.Rates {
		c.Currency.Rates[code] = rate
	}
	return nil
}
