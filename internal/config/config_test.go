package config

import (
	"sync"
	"testing"
)

func TestReloadReadsEmbeddedDefaults(t *testing.T) {
	c, err := Reload()
	if err != nil {
		t.Fatalf("Reload error: %v", err)
	}
	if c.Language == "" {
		t.Error("embedded defaults.toml should set a default language")
	}
}

func TestGetPanicsBeforeLoad(t *testing.T) {
	savedCfg, savedOnce, savedErr := cfg, once, loadErr
	cfg, once, loadErr = nil, sync.Once{}, nil
	defer func() {
		cfg, once, loadErr = savedCfg, savedOnce, savedErr
		if recover() == nil {
			t.Error("Get() should panic before Load() has been called")
		}
	}()
	Get()
}

func TestCoreConfigIgnoresInvalidCurrencyCode(t *testing.T) {
	c := &Config{Currency: CurrencyConfig{Rates: map[string]float64{
		"XYZ": 1.23, // not a real ISO-4217 code
		"EUR": 0.9,
	}}}
	cc := c.CoreConfig()

	if _, ok := cc.CurrencyRate("XYZ"); ok {
		t.Error("an unrecognized ISO currency code should be dropped, not wired into CurrencyRates")
	}
	rate, ok := cc.CurrencyRate("EUR")
	if !ok {
		t.Fatal("a valid ISO currency code (EUR) should overlay into CurrencyRates")
	}
	if rate.InexactFloat64() != 0.9 {
		t.Errorf("EUR rate = %v, want 0.9", rate)
	}
}

func TestCoreConfigStartsFromCoreDefaults(t *testing.T) {
	c := &Config{}
	cc := c.CoreConfig()
	if _, ok := cc.CurrencyRate("USD"); !ok {
		t.Error("CoreConfig with no overlay should still carry the core's built-in USD rate")
	}
}
