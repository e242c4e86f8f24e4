package aliasresolve

import (
	"testing"

	"github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/token"
	"github.com/smartcalc/go-smartcalc/tokenizer"
)

func infoFor(text string, cfg *config.Config) *token.Info {
	tt := token.Text(text)
	return &token.Info{TokenType: &tt, OriginalText: text}
}

func TestResolveWordToOperator(t *testing.T) {
	cfg := config.Default()
	info := infoFor("add", cfg)
	Resolve([]*token.Info{info}, "en", cfg)

	if info.TokenType.Kind != token.KindOperator || info.TokenType.Operator != '+' {
		t.Fatalf("Resolve(add) = %v, want Operator('+')", info.TokenType)
	}
}

func TestResolvePercentWordToOperator(t *testing.T) {
	cfg := config.Default()
	info := infoFor("percent", cfg)
	Resolve([]*token.Info{info}, "en", cfg)

	if info.TokenType.Kind != token.KindOperator || info.TokenType.Operator != '%' {
		t.Fatalf(`Resolve(percent) = %v, want Operator('%%')`, info.TokenType)
	}
}

func TestResolveMonthWordToMonth(t *testing.T) {
	cfg := config.Default()
	info := infoFor("march", cfg)
	Resolve([]*token.Info{info}, "en", cfg)

	if info.TokenType.Kind != token.KindMonth {
		t.Fatalf("Resolve(march) = %v, want a Month token", info.TokenType)
	}
	if info.TokenType.Value.String() != "March" {
		t.Errorf("Month value = %q, want March", info.TokenType.Value.String())
	}
}

func TestResolveUnmatchedTextIsUnchanged(t *testing.T) {
	cfg := config.Default()
	info := infoFor("hours", cfg)
	Resolve([]*token.Info{info}, "en", cfg)

	if info.TokenType.Kind != token.KindText || info.TokenType.Text != "hours" {
		t.Fatalf("Resolve(hours) = %v, want unchanged Text(\"hours\")", info.TokenType)
	}
}

func TestResolveSkipsRemovedTokens(t *testing.T) {
	cfg := config.Default()
	info := infoFor("add", cfg)
	info.Status = token.Removed
	Resolve([]*token.Info{info}, "en", cfg)

	if info.TokenType.Kind != token.KindText {
		t.Error("Resolve should not touch a Removed token")
	}
}

// TestResolveIntegratesWithTokenizer exercises Resolve against a real
// tokenized line rather than a hand-built Info, covering the full
// alias → atom re-tokenization path end to end.
func TestResolveIntegratesWithTokenizer(t *testing.T) {
	cfg := config.Default()
	infos, _ := tokenizer.Tokenize("5 plus 3", "en", cfg)
	Resolve(infos, "en", cfg)

	var sawPlus bool
	for _, i := range infos {
		if i.TokenType.Kind == token.KindOperator && i.TokenType.Operator == '+' {
			sawPlus = true
		}
	}
	if !sawPlus {
		t.Errorf("expected \"plus\" to resolve to Operator('+') in %v", infos)
	}
}
