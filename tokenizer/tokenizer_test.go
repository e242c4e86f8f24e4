package tokenizer

import (
	"testing"

	"github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/token"
)

// nonWhitespaceKinds collects the token kinds of infos, dropping
// Whitespace spans (Tokenize keeps them in the returned token stream,
// without UI tokens; only the normalizer strips them before parsing).
func nonWhitespaceKinds(infos []*token.Info) []token.Kind {
	var kinds []token.Kind
	for _, i := range infos {
		if i.TokenType.Kind == token.KindWhitespace {
			continue
		}
		kinds = append(kinds, i.TokenType.Kind)
	}
	return kinds
}

func TestTokenizeNumbersAndOperators(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("100 + 200", "en", cfg)

	kinds := nonWhitespaceKinds(infos)
	want := []token.Kind{token.KindNumber, token.KindOperator, token.KindNumber}
	if len(kinds) != len(want) {
		t.Fatalf("got %d non-whitespace tokens %v, want %d %v", len(kinds), kinds, len(want), want)
	}
	for i, k := range kinds {
		if k != want[i] {
			t.Errorf("token %d kind = %s, want %s", i, k, want[i])
		}
	}
}

func TestTokenizeMoney(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("$25", "en", cfg)
	kinds := nonWhitespaceKinds(infos)
	if len(kinds) != 1 || kinds[0] != token.KindMoney {
		t.Fatalf("expected a single Money token, got %v", infos)
	}
	var money *token.Info
	for _, i := range infos {
		if i.TokenType.Kind == token.KindMoney {
			money = i
		}
	}
	m := money.TokenType.Value.String()
	if m != "$25.00" {
		t.Errorf("Money.String() = %q, want %q", m, "$25.00")
	}
}

func TestTokenizeUnknownCurrencyFallsBackToText(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("42 zzz", "en", cfg)
	kinds := nonWhitespaceKinds(infos)
	if len(kinds) != 2 || kinds[0] != token.KindNumber || kinds[1] != token.KindText {
		t.Errorf("kinds = %v, want [Number Text]", kinds)
	}
}

func TestTokenizeNumberSuffixMultipliers(t *testing.T) {
	cfg := config.Default()
	tests := []struct {
		input string
		want  string
	}{
		{"2k", "2000"},
		{"3M", "3000000"},
		{"8Y", "8000000000000000000000"},
	}
	for _, tt := range tests {
		infos, _ := Tokenize(tt.input, "en", cfg)
		if len(infos) != 1 || infos[0].TokenType.Kind != token.KindNumber {
			t.Fatalf("Tokenize(%q) = %v, want a single Number token", tt.input, infos)
		}
		if got := infos[0].TokenType.Value.String(); got != tt.want {
			t.Errorf("Tokenize(%q) value = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTokenizePercent(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("30%", "en", cfg)
	if len(infos) != 1 || infos[0].TokenType.Kind != token.KindPercent {
		t.Fatalf("expected a single Percent token, got %v", infos)
	}
	if got, want := infos[0].TokenType.Value.String(), "30%"; got != want {
		t.Errorf("Percent.String() = %q, want %q", got, want)
	}
}

// TestAtomCategoryDoesNotStealPercentSign guards against a regression
// where the atom category's raw-tokenizer regex matched a bare '%' ahead
// of the percent category (atom runs before percent in the fixed
// category order, spec.md §4.1), silently breaking every percent
// literal in the language.
func TestAtomCategoryDoesNotStealPercentSign(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("120 + 30% + 10%", "en", cfg)
	var percents int
	for _, i := range infos {
		if i.TokenType.Kind == token.KindPercent {
			percents++
		}
	}
	if percents != 2 {
		t.Fatalf("expected 2 Percent tokens in %q, got %d (tokens: %v)", "120 + 30% + 10%", percents, infos)
	}
}

func TestTokenizeTimeWithPM(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("11:30pm", "en", cfg)
	if len(infos) != 1 || infos[0].TokenType.Kind != token.KindTime {
		t.Fatalf("expected a single Time token, got %v", infos)
	}
	tv := infos[0].TokenType.Value.String()
	if tv != "23:30:00" {
		t.Errorf("Time.String() = %q, want %q", tv, "23:30:00")
	}
}

func TestTokenizeTimezoneWinsOverText(t *testing.T) {
	// Regression guard: "timezone" must be tried before "text" in
	// DefaultCategoryOrder, or a zone name (a run of letters) is always
	// claimed by the generic word-matcher first.
	cfg := config.Default()
	infos, _ := Tokenize("UTC", "en", cfg)
	kinds := nonWhitespaceKinds(infos)
	if len(kinds) != 1 || kinds[0] != token.KindTimezone {
		t.Fatalf("expected a single Timezone token, got %v", infos)
	}
	tz := infos[0].TokenType.Value.String()
	if tz != "UTC" {
		t.Errorf("Timezone.String() = %q, want %q", tz, "UTC")
	}
}

func TestTokenizeTimezoneWithOffset(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("GMT+5", "en", cfg)
	kinds := nonWhitespaceKinds(infos)
	if len(kinds) != 1 || kinds[0] != token.KindTimezone {
		t.Fatalf("expected a single Timezone token, got %v", infos)
	}
}

func TestTokenizeCommentIsDroppedFromSemanticStream(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("100 // a comment", "en", cfg)
	for _, i := range infos {
		if i.TokenType.Kind == token.KindText && i.OriginalText == "a" {
			t.Error("comment text should not be tokenized as semantic text")
		}
	}
	kinds := nonWhitespaceKinds(infos)
	if len(kinds) != 1 || kinds[0] != token.KindNumber {
		t.Fatalf("expected just the leading Number token, got %v", infos)
	}
}

func TestReTokenizeAtomSingleAtom(t *testing.T) {
	cfg := config.Default()
	atoms := ReTokenizeAtom("+", cfg)
	if len(atoms) != 1 || atoms[0].Kind != token.KindOperator || atoms[0].Operator != '+' {
		t.Fatalf("ReTokenizeAtom(\"+\") = %v, want a single Operator('+')", atoms)
	}
}

func TestReTokenizeAtomMonth(t *testing.T) {
	cfg := config.Default()
	atoms := ReTokenizeAtom("month:3", cfg)
	if len(atoms) != 1 || atoms[0].Kind != token.KindMonth {
		t.Fatalf("ReTokenizeAtom(\"month:3\") = %v, want a single Month token", atoms)
	}
	if atoms[0].Value.String() != "March" {
		t.Errorf("Month value = %q, want March", atoms[0].Value.String())
	}
}

func TestFindAllCharIndexHandlesMultibyte(t *testing.T) {
	cfg := config.Default()
	infos, _ := Tokenize("€5 + 1", "en", cfg)

	var plus *token.Info
	for _, i := range infos {
		if i.TokenType.Kind == token.KindOperator && i.TokenType.Operator == '+' {
			plus = i
		}
	}
	if plus == nil {
		t.Fatalf("expected an Operator('+') token in %v", infos)
	}
	// "€5" is 2 runes, so '+' should start at char index 3, not a byte
	// offset (the € symbol is 3 bytes in UTF-8).
	if plus.Start != 3 {
		t.Errorf("'+' token Start = %d, want 3 (rune index, not byte index)", plus.Start)
	}
}
