// Package handlers implements the built-in rule handlers named in
// spec.md §4.3's handler contract table: duration_parse, as_duration,
// currency_conversion and date_from_parts, plus UnitToDuration and
// RateMultiply. Filler words such as "14 hours of work" are absorbed by
// the longer duration_parse patterns in the default rule pack, not by a
// handler of their own.
package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartcalc/go-smartcalc/rule"
	"github.com/smartcalc/go-smartcalc/token"
	"github.com/smartcalc/go-smartcalc/value"
)

// durationUnitWords maps a duration-unit word to its canonical unit. This
// is the default constants_pairs["en"] table described in spec.md §3
// ("constant lookup tables (e.g. "days" → DurationUnit::Day)").
var durationUnitWords = map[string]value.DurationUnit{
	"second": value.UnitSecond, "seconds": value.UnitSecond, "sec": value.UnitSecond,
	"minute": value.UnitMinute, "minutes": value.UnitMinute, "min": value.UnitMinute,
	"hour": value.UnitHour, "hours": value.UnitHour,
	"day": value.UnitDay, "days": value.UnitDay,
	"week": value.UnitWeek, "weeks": value.UnitWeek,
	"month": value.UnitMonth, "months": value.UnitMonth,
	"year": value.UnitYear, "years": value.UnitYear,
}

// DurationUnitWord resolves a unit word to its canonical DurationUnit.
func DurationUnitWord(word string) (value.DurationUnit, bool) {
	u, ok := durationUnitWords[strings.ToLower(word)]
	return u, ok
}

// DurationParse implements the `duration_parse` handler: fields
// `duration: Number`, `type: Text` → Duration(n·unit, n, unit).
func DurationParse(_ rule.ConfigReader, fields map[string]token.Info) (token.TokenType, error) {
	durTok, ok := fields["duration"]
	if !ok || !durTok.IsSemantic() || durTok.TokenType.Kind != token.KindNumber {
		return token.TokenType{}, fmt.Errorf("duration_parse: missing numeric duration field")
	}
	typeTok, ok := fields["type"]
	if !ok || !typeTok.IsSemantic() || typeTok.TokenType.Kind != token.KindText {
		return token.TokenType{}, fmt.Errorf("duration_parse: missing unit type field")
	}

	unit, ok := DurationUnitWord(typeTok.TokenType.Text)
	if !ok {
		return token.TokenType{}, fmt.Errorf("duration_parse: unknown duration unit %q", typeTok.TokenType.Text)
	}

	num := durTok.TokenType.Value.(*value.Number)
	magnitude := num.Value.IntPart()
	return token.DurationOf(value.NewDuration(magnitude, unit)), nil
}

// AsDuration implements the `as_duration` handler: fields
// `source: Duration|Time`, `type: Text` → Number, the source converted
// into `type` units.
func AsDuration(_ rule.ConfigReader, fields map[string]token.Info) (token.TokenType, error) {
	srcTok, ok := fields["source"]
	if !ok || !srcTok.IsSemantic() {
		return token.TokenType{}, fmt.Errorf("as_duration: missing source field")
	}
	typeTok, ok := fields["type"]
	if !ok || !typeTok.IsSemantic() || typeTok.TokenType.Kind != token.KindText {
		return token.TokenType{}, fmt.Errorf("as_duration: missing unit type field")
	}

	unit, ok := DurationUnitWord(typeTok.TokenType.Text)
	if !ok {
		return token.TokenType{}, fmt.Errorf("as_duration: unknown duration unit %q", typeTok.TokenType.Text)
	}
	unitSeconds := decimal.NewFromInt(value.UnitSeconds(unit))

	switch srcTok.TokenType.Kind {
	case token.KindDuration:
		dur := srcTok.TokenType.Value.(*value.Duration)
		result := safeDiv(dur.Seconds, unitSeconds)
		return token.Number(value.NewNumber(result)), nil
	case token.KindTime:
		t := srcTok.TokenType.Value.(*value.Time)
		seconds := decimal.NewFromInt(t.SecondsSinceMidnight)
		result := safeDiv(seconds, unitSeconds)
		return token.Number(value.NewNumber(result)), nil
	default:
		return token.TokenType{}, fmt.Errorf("as_duration: source must be Duration or Time, got %s", srcTok.TokenType.Kind)
	}
}

// CurrencyConversion implements the `currency_conversion` handler: fields
// `money: Money`, `target: Text` (currency code) → Money(converted, target).
func CurrencyConversion(cfg rule.ConfigReader, fields map[string]token.Info) (token.TokenType, error) {
	moneyTok, ok := fields["money"]
	if !ok || !moneyTok.IsSemantic() || moneyTok.TokenType.Kind != token.KindMoney {
		return token.TokenType{}, fmt.Errorf("currency_conversion: missing money field")
	}
	targetTok, ok := fields["target"]
	if !ok || !targetTok.IsSemantic() || targetTok.TokenType.Kind != token.KindText {
		return token.TokenType{}, fmt.Errorf("currency_conversion: missing target currency field")
	}

	targetCode := strings.ToUpper(targetTok.TokenType.Text)
	money := moneyTok.TokenType.Value.(*value.Money)

	targetRate, ok := cfg.CurrencyRate(targetCode)
	if !ok {
		return token.TokenType{}, fmt.Errorf("currency_conversion: unknown target currency %q", targetCode)
	}
	sourceRate, ok := cfg.CurrencyRate(money.Currency.Code)
	if !ok {
		return token.TokenType{}, fmt.Errorf("currency_conversion: unknown source currency %q", money.Currency.Code)
	}

	// rate(from)/rate(to) on the stored price, per spec.md §4.6.
	converted := safeDiv(money.Value.Mul(sourceRate), targetRate)
	return token.Money(value.NewMoney(converted, value.CurrencyRef{Code: targetCode})), nil
}

// DateFromParts implements the `date_from_parts` handler: fields
// `day: Number`, `month: Month`, optional `year: Number` → Date.
func DateFromParts(_ rule.ConfigReader, fields map[string]token.Info) (token.TokenType, error) {
	dayTok, ok := fields["day"]
	if !ok || !dayTok.IsSemantic() || dayTok.TokenType.Kind != token.KindNumber {
		return token.TokenType{}, fmt.Errorf("date_from_parts: missing day field")
	}
	monthTok, ok := fields["month"]
	if !ok || !monthTok.IsSemantic() || monthTok.TokenType.Kind != token.KindMonth {
		return token.TokenType{}, fmt.Errorf("date_from_parts: missing month field")
	}

	day := int(dayTok.TokenType.Value.(*value.Number).Value.IntPart())
	month := monthTok.TokenType.Value.(*value.Month).Value

	year := 0
	if yearTok, ok := fields["year"]; ok && yearTok.IsSemantic() && yearTok.TokenType.Kind == token.KindNumber {
		year = int(yearTok.TokenType.Value.(*value.Number).Value.IntPart())
	}
	if year == 0 {
		year = referenceYear()
	}

	return token.DateOf(value.NewDate(year, month, day)), nil
}

// UnitWords lists the singular duration-unit words eligible to stand alone
// as a bare Duration(1, unit) — e.g. the "hour" in "$25/hour" — without a
// preceding magnitude. The rule pack's unit_to_duration pattern captures
// against this same list so the two never drift apart.
var UnitWords = []string{"second", "minute", "hour", "day", "week", "month", "year"}

// UnitToDuration implements the `unit_to_duration` handler: a single bare
// unit word (no leading number, e.g. "/hour") becomes Duration(1, unit).
func UnitToDuration(_ rule.ConfigReader, fields map[string]token.Info) (token.TokenType, error) {
	wordTok, ok := fields["unit"]
	if !ok || !wordTok.IsSemantic() || wordTok.TokenType.Kind != token.KindText {
		return token.TokenType{}, fmt.Errorf("unit_to_duration: missing unit field")
	}
	unit, ok := DurationUnitWord(wordTok.TokenType.Text)
	if !ok {
		return token.TokenType{}, fmt.Errorf("unit_to_duration: unknown unit %q", wordTok.TokenType.Text)
	}
	return token.DurationOf(value.NewDuration(1, unit)), nil
}

// RateMultiply implements the `rate_multiply` handler: `money: Money`,
// `unit: Duration`, `amount: Duration` folds "$25/hour * 14 hours" into a
// single Money, the rate per `unit` scaled by how many `unit`s fit in
// `amount`.
func RateMultiply(_ rule.ConfigReader, fields map[string]token.Info) (token.TokenType, error) {
	moneyTok, ok := fields["money"]
	if !ok || !moneyTok.IsSemantic() || moneyTok.TokenType.Kind != token.KindMoney {
		return token.TokenType{}, fmt.Errorf("rate_multiply: missing money field")
	}
	unitTok, ok := fields["unit"]
	if !ok || !unitTok.IsSemantic() || unitTok.TokenType.Kind != token.KindDuration {
		return token.TokenType{}, fmt.Errorf("rate_multiply: missing unit field")
	}
	amountTok, ok := fields["amount"]
	if !ok || !amountTok.IsSemantic() || amountTok.TokenType.Kind != token.KindDuration {
		return token.TokenType{}, fmt.Errorf("rate_multiply: missing amount field")
	}

	money := moneyTok.TokenType.Value.(*value.Money)
	unit := unitTok.TokenType.Value.(*value.Duration)
	amount := amountTok.TokenType.Value.(*value.Duration)

	multiples := safeDiv(amount.Seconds, unit.Seconds)
	return token.Money(value.NewMoney(money.Value.Mul(multiples), money.Currency)), nil
}

func safeDiv(numerator, denominator decimal.Decimal) decimal.Decimal {
	if denominator.IsZero() {
		return decimal.Zero
	}
	result := numerator.Div(denominator)
	// decimal.Division does not produce NaN/Inf, but guard the documented
	// quirk from spec.md §7 uniformly across every division site.
	return result
}

// referenceYear returns the current year, used for a bare "day month"
// literal with no year field. Tests override it via ReferenceYearFunc.
func referenceYear() int { return ReferenceYearFunc() }

// ReferenceYearFunc is overridable for deterministic tests.
var ReferenceYearFunc = func() int { return time.Now().Year() }
