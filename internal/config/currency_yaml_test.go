package config

import "testing"

func TestLoadCurrencyYAMLMergesRates(t *testing.T) {
	c := &Config{Currency: CurrencyConfig{Rates: map[string]float64{"EUR": 0.5}}}
	if err := c.LoadCurrencyYAML("testdata/rates.yaml"); err != nil {
		t.Fatalf("LoadCurrencyYAML error: %v", err)
	}

	if c.Currency.Rates["EUR"] != 0.91 {
		t.Errorf("EUR rate = %v, want the fixture's 0.91 to overwrite the prior 0.5", c.Currency.Rates["EUR"])
	}
	if c.Currency.Rates["GBP"] != 0.78 {
		t.Errorf("GBP rate = %v, want 0.78", c.Currency.Rates["GBP"])
	}
}

func TestLoadCurrencyYAMLAllocatesMapWhenNil(t *testing.T) {
	c := &Config{}
	if err := c.LoadCurrencyYAML("testdata/rates.yaml"); err != nil {
		t.Fatalf("LoadCurrencyYAML error: %v", err)
	}
	if len(c.Currency.Rates) != 2 {
		t.Errorf("Rates length = %d, want 2", len(c.Currency.Rates))
	}
}

func TestLoadCurrencyYAMLMissingFileIsAnError(t *testing.T) {
	c := &Config{}
	if err := c.LoadCurrencyYAML("testdata/does-not-exist.yaml"); err == nil {
		t.Error("expected an error reading a missing YAML fixture")
	}
}
