// Package config defines Config, the immutable value the SmartCalc core
// consumes (spec.md §6): compiled token-parse regexes, alias tables, rule
// packs, currency tables and FX rates, and constant lookup tables. Loading
// Config from JSON/TOML/env is an external collaborator's job (spec.md §1
// "Out of scope"); this package only defines the shape and a built-in
// English default used by tests and as the starting point for a real
// loader (see internal/config).
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartcalc/go-smartcalc/handlers"
	"github.com/smartcalc/go-smartcalc/rule"
	"github.com/smartcalc/go-smartcalc/token"
	"github.com/smartcalc/go-smartcalc/value"
)

// Categories in tokenizer priority order, per spec.md §4.1.
const (
	CategoryComment    = "comment"
	CategoryField      = "field"
	CategoryMoney      = "money"
	CategoryAtom       = "atom"
	CategoryPercent    = "percent"
	CategoryTime       = "time"
	CategoryNumber     = "number"
	CategoryText       = "text"
	CategoryWhitespace = "whitespace"
	CategoryOperator   = "operator"
	CategoryTimezone   = "timezone"
)

// DefaultCategoryOrder is the fixed order spec.md §4.1 mandates, with the
// optional "timezone" category (SPEC_FULL.md §7) placed ahead of "text":
// a named zone like "UTC" or "EST" is itself a run of letters, so trying
// "text" first would always win the collision race and the timezone
// regex would never get a span to claim.
var DefaultCategoryOrder = []string{
	CategoryComment, CategoryField, CategoryMoney, CategoryAtom, CategoryPercent,
	CategoryTime, CategoryTimezone, CategoryNumber, CategoryText, CategoryWhitespace,
	CategoryOperator,
}

// AliasRule is one regex → canonical-replacement mapping.
type AliasRule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Config is the immutable configuration consumed by every pipeline stage.
type Config struct {
	// CategoryOrder is the order categories are tried in, earlier wins ties.
	CategoryOrder []string

	// TokenParseRegex maps a category to the regexes tried for it.
	TokenParseRegex map[string][]*regexp.Regexp

	// AliasRegex maps a language to its alias rules, tried in order.
	AliasRegex map[string][]AliasRule

	// Rules maps a language to its rule pack, tried in declaration order
	// (spec.md §4.3: "Ambiguities are resolved by rule-pack declaration
	// order; the first handler that returns success wins").
	Rules map[string][]rule.Rule

	// CurrencyTable maps a lowercased currency symbol/word to its ISO code.
	CurrencyTable map[string]string

	// CurrencyRates maps an ISO code to its rate versus a common base.
	CurrencyRates map[string]decimal.Decimal
}

// CurrencyRate implements rule.ConfigReader.
func (c *Config) CurrencyRate(code string) (decimal.Decimal, bool) {
	rate, ok := c.CurrencyRates[strings.ToUpper(code)]
	return rate, ok
}

// CurrencyCode resolves a lowercased currency symbol/word to its ISO code.
// An unrecognized currency returns ("", false): spec.md §4.1 says such a
// match must be rejected entirely, falling back to text.
func (c *Config) CurrencyCode(symbolOrWord string) (string, bool) {
	code, ok := c.CurrencyTable[strings.ToLower(symbolOrWord)]
	return code, ok
}

var _ rule.ConfigReader = (*Config)(nil)

// mustCompile panics on a malformed built-in pattern, mirroring the
// teacher's embedded-defaults-panic-at-load pattern (cmd/calcmark/config.load).
func mustCompile(pattern string) *regexp.Regexp {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(fmt.Sprintf("smartcalc: invalid built-in regex %q: %v", pattern, err))
	}
	return re
}

// Default builds the built-in English configuration: the default regex
// categories, alias table, rule pack and currency/FX tables. It is the
// config used by smartcalc.Execute when no override is supplied, and by
// every package's tests.
func Default() *Config {
	cfg := &Config{
		CategoryOrder:   append([]string(nil), DefaultCategoryOrder...),
		TokenParseRegex: defaultTokenParseRegex(),
		AliasRegex:      defaultAliasRegex(),
		CurrencyTable:   defaultCurrencyTable(),
		CurrencyRates:   defaultCurrencyRates(),
	}
	cfg.Rules = map[string][]rule.Rule{
		"en": defaultEnglishRules(),
	}
	return cfg
}

func defaultCurrencyTable() map[string]string {
	return map[string]string{
		"$":    "USD",
		"usd":  "USD",
		"dollar":  "USD",
		"dollars": "USD",
		"€":    "EUR",
		"eur":  "EUR",
		"euro":  "EUR",
		"euros": "EUR",
		"£":    "GBP",
		"gbp":  "GBP",
		"pound":  "GBP",
		"pounds": "GBP",
		"¥":    "JPY",
		"jpy":  "JPY",
		"yen":  "JPY",
	}
}

func defaultCurrencyRates() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"USD": decimal.NewFromInt(1),
		"EUR": decimal.NewFromFloat(0.92),
		"GBP": decimal.NewFromFloat(0.79),
		"JPY": decimal.NewFromFloat(149.50),
	}
}

func defaultAliasRegex() map[string][]AliasRule {
	return map[string][]AliasRule{
		"en": {
			{Pattern: mustCompile(`(?i)^add$`), Replacement: "+"},
			{Pattern: mustCompile(`(?i)^plus$`), Replacement: "+"},
			{Pattern: mustCompile(`(?i)^(minus|subtract)$`), Replacement: "-"},
			{Pattern: mustCompile(`(?i)^times$`), Replacement: "*"},
			{Pattern: mustCompile(`(?i)^multiplied$`), Replacement: "*"},
			{Pattern: mustCompile(`(?i)^divided$`), Replacement: "/"},
			{Pattern: mustCompile(`(?i)^percent$`), Replacement: "%"},
			{Pattern: mustCompile(`(?i)^january$`), Replacement: "month:1"},
			{Pattern: mustCompile(`(?i)^february$`), Replacement: "month:2"},
			{Pattern: mustCompile(`(?i)^march$`), Replacement: "month:3"},
			{Pattern: mustCompile(`(?i)^april$`), Replacement: "month:4"},
			{Pattern: mustCompile(`(?i)^may$`), Replacement: "month:5"},
			{Pattern: mustCompile(`(?i)^june$`), Replacement: "month:6"},
			{Pattern: mustCompile(`(?i)^july$`), Replacement: "month:7"},
			{Pattern: mustCompile(`(?i)^august$`), Replacement: "month:8"},
			{Pattern: mustCompile(`(?i)^september$`), Replacement: "month:9"},
			{Pattern: mustCompile(`(?i)^october$`), Replacement: "month:10"},
			{Pattern: mustCompile(`(?i)^november$`), Replacement: "month:11"},
			{Pattern: mustCompile(`(?i)^december$`), Replacement: "month:12"},
		},
	}
}

// defaultTokenParseRegex returns the compiled regex set per category. The
// tokenizer (package tokenizer) runs each regex unanchored over the whole
// line and keeps every non-colliding match — see tokenizer.go for how
// these are applied.
func defaultTokenParseRegex() map[string][]*regexp.Regexp {
	return map[string][]*regexp.Regexp{
		CategoryComment: {
			mustCompile(`//[^\n]*`),
			mustCompile(`#[^\n]*`),
		},
		CategoryMoney: {
			mustCompile(`(?P<CURRENCY>[$€£¥])\s*(?P<PRICE>[0-9][0-9,.']*)`),
			mustCompile(`(?P<PRICE>[0-9][0-9,.']*)\s*(?P<CURRENCY>(?i:usd|eur|gbp|jpy|dollars?|euros?|pounds?|yen))`),
		},
		CategoryPercent: {
			mustCompile(`[0-9][0-9,.']*\s*%`),
		},
		CategoryTime: {
			mustCompile(`[0-2]?[0-9]:[0-5][0-9](:[0-5][0-9])?\s*(?i:am|pm)?`),
		},
		CategoryTimezone: {
			mustCompile(`(?i:UTC|GMT|EST|PST|CST|MST)([+-][0-9]{1,2}(:[0-9]{2})?)?`),
		},
		CategoryNumber: {
			mustCompile(`[0-9][0-9,_]*(\.[0-9]+)?\s*[kKmMbBtTyY]\b`),
			mustCompile(`[0-9][0-9,_]*(\.[0-9]+)?`),
		},
		CategoryText: {
			mustCompile(`\p{L}[\p{L}0-9_]*`),
		},
		CategoryWhitespace: {
			mustCompile(`\s+`),
		},
		CategoryOperator: {
			mustCompile(`[+\-*/=()]`),
		},
		CategoryField: {
			// Field regexes are reserved for rule-pack authors who want a
			// pattern recognized directly as a Field placeholder; the
			// default English pack has none.
		},
		CategoryAtom: {
			// Only month:N atoms are matched against raw input text.
			// Symbol atoms (+-*/=%) are reserved for re-tokenizing an
			// alias's replacement string (tokenizer.ReTokenizeAtom), not
			// the main tokenizer pass: "atom" runs before "percent" in
			// the fixed category order (spec.md §4.1), so a bare '%'
			// matched here would win the collision race against every
			// "<number>%" span and silently break percent literals.
			mustCompile(`month:[0-9]{1,2}`),
		},
	}
}

func defaultEnglishRules() []rule.Rule {
	return []rule.Rule{
		{
			Name:    "duration_parse",
			Handler: handlers.DurationParse,
			Patterns: []rule.Pattern{
				// Longer patterns first: "14 hours of work" must fold into
				// one Duration before a shorter pattern could split it.
				{rule.Capture("duration", token.FieldNumber), rule.Capture("type", token.FieldText),
					rule.Match(token.Text("of")), rule.Match(token.Text("work"))},
				{rule.Capture("duration", token.FieldNumber), rule.Capture("type", token.FieldText),
					rule.Match(token.Text("of")), rule.Match(token.Text("time"))},
				{rule.Capture("duration", token.FieldNumber), rule.Capture("type", token.FieldText)},
			},
		},
		{
			// unit_to_duration's pattern is a single token, so a firing
			// replaces 1 active token with exactly 1 (Text -> Duration) —
			// the one rule in this pack that doesn't shrink the active
			// count, so it can't lean on spec.md §8's "strictly monotone
			// decreasing" count argument for termination on its own. It
			// still can't loop: CaptureGroup only matches a KindText
			// token, and the replacement is KindDuration, so the same
			// position can never match this rule's pattern again once it
			// has fired there. See DESIGN.md's rule/rewriter section.
			Name:    "unit_to_duration",
			Handler: handlers.UnitToDuration,
			Patterns: []rule.Pattern{
				{rule.CaptureGroup("unit", handlers.UnitWords...)},
			},
		},
		{
			Name:    "rate_multiply",
			Handler: handlers.RateMultiply,
			Patterns: []rule.Pattern{
				{rule.Capture("money", token.FieldMoney), rule.Match(token.Op('/')),
					rule.Capture("unit", token.FieldDuration), rule.Match(token.Op('*')),
					rule.Capture("amount", token.FieldDuration)},
			},
		},
		{
			Name:    "as_duration",
			Handler: handlers.AsDuration,
			Patterns: []rule.Pattern{
				{rule.Capture("source", token.FieldDuration), rule.CaptureGroup("as", "as"), rule.Capture("type", token.FieldText)},
				{rule.Capture("source", token.FieldTime), rule.CaptureGroup("as", "as"), rule.Capture("type", token.FieldText)},
			},
		},
		{
			Name:    "currency_conversion",
			Handler: handlers.CurrencyConversion,
			Patterns: []rule.Pattern{
				{rule.Capture("money", token.FieldMoney), rule.CaptureGroup("as", "as", "in", "to"), rule.Capture("target", token.FieldText)},
			},
		},
		{
			Name:    "date_from_parts",
			Handler: handlers.DateFromParts,
			Patterns: []rule.Pattern{
				{rule.Capture("day", token.FieldNumber), rule.Capture("month", token.FieldMonth), rule.Capture("year", token.FieldNumber)},
				{rule.Capture("day", token.FieldNumber), rule.Capture("month", token.FieldMonth)},
				{rule.Capture("month", token.FieldMonth), rule.Capture("day", token.FieldNumber)},
			},
		},
	}
}
