// Package rule defines the shape of a rewrite rule consumed by the rule
// engine (package rewriter): a name, a handler, and the token-pattern
// sequences that trigger it. Grounded on CalcMark's rule-as-pure-function
// style (evaluator.evalBinaryOperation): a handler is a pure function of
// its captured fields, easy to test in isolation.
package rule

import (
	"github.com/shopspring/decimal"

	"github.com/smartcalc/go-smartcalc/token"
)

// ConfigReader is the slice of Config a handler needs: FX lookups for
// currency_conversion. Defined here (not in package config) so
// config.Config can satisfy it structurally without an import cycle.
type ConfigReader interface {
	CurrencyRate(code string) (decimal.Decimal, bool)
}

// Handler produces a single replacement TokenType from the fields captured
// by a matched pattern, or an error if this match should be skipped
// (spec.md §7: "rule execution error... rule skipped, not surfaced unless
// the line has no valid interpretation").
type Handler func(cfg ConfigReader, fields map[string]token.Info) (token.TokenType, error)

// Rule is (name, handler, patterns). The engine tries every pattern of
// every rule at every position until one matches.
type Rule struct {
	Name     string
	Handler  Handler
	Patterns []Pattern
}

// Pattern is a sequence of pattern tokens: concrete TokenTypes (matched by
// kind+value), Field placeholders (matched by kind, captured by name), and
// Variable shape-matchers (matched structurally).
type Pattern []PatternToken

// PatternToken is one element of a Pattern.
type PatternToken struct {
	// Concrete holds a literal token to match exactly (e.g. Operator('+')),
	// used when Field.Name == "".
	Concrete token.TokenType
	// Field, when Name != "", marks this slot as a capturing placeholder.
	Field token.FieldSpec
}

// IsField reports whether this pattern token is a capturing placeholder.
func (p PatternToken) IsField() bool { return p.Field.Name != "" }

// Match builds a non-capturing pattern token matching exactly tt.
func Match(tt token.TokenType) PatternToken { return PatternToken{Concrete: tt} }

// Capture builds a capturing pattern token for the named field.
func Capture(name string, kind token.FieldKind) PatternToken {
	return PatternToken{Field: token.FieldSpec{Name: name, Kind: kind}}
}

// CaptureGroup builds a capturing Group placeholder matching Text tokens
// whose value is one of words.
func CaptureGroup(name string, words ...string) PatternToken {
	return PatternToken{Field: token.FieldSpec{Name: name, Kind: token.FieldGroup, Words: words}}
}
