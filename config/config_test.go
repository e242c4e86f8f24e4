package config

import "testing"

func TestDefaultBuildsEnglishRulePack(t *testing.T) {
	cfg := Default()
	if len(cfg.Rules["en"]) == 0 {
		t.Fatal("Default() should populate an English rule pack")
	}
	if len(cfg.CategoryOrder) != len(DefaultCategoryOrder) {
		t.Errorf("CategoryOrder length = %d, want %d", len(cfg.CategoryOrder), len(DefaultCategoryOrder))
	}
}

func TestCurrencyCode(t *testing.T) {
	cfg := Default()
	tests := []struct {
		input    string
		wantCode string
		wantOk   bool
	}{
		{"$", "USD", true},
		{"USD", "USD", true},
		{"dollars", "USD", true},
		{"€", "EUR", true},
		{"xyz", "", false},
	}
	for _, tt := range tests {
		code, ok := cfg.CurrencyCode(tt.input)
		if ok != tt.wantOk || code != tt.wantCode {
			t.Errorf("CurrencyCode(%q) = (%q, %v), want (%q, %v)", tt.input, code, ok, tt.wantCode, tt.wantOk)
		}
	}
}

func TestCurrencyRate(t *testing.T) {
	cfg := Default()
	rate, ok := cfg.CurrencyRate("usd")
	if !ok {
		t.Fatal("expected a USD rate in the default table")
	}
	if !rate.Equal(cfg.CurrencyRates["USD"]) {
		t.Errorf("CurrencyRate is case-sensitive to the stored table: got %s", rate)
	}

	if _, ok := cfg.CurrencyRate("XYZ"); ok {
		t.Error("expected no rate for an unknown currency code")
	}
}

func TestMustCompilePanicsOnInvalidRegex(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected mustCompile to panic on an invalid pattern")
		}
	}()
	mustCompile("(unterminated")
}
