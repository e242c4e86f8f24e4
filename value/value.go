// Package value defines the typed values that flow through the SmartCalc
// pipeline: the payload carried by a classified token and, after parsing,
// by an AST literal node. Every value is a tagged struct rather than a
// virtual-dispatch hierarchy, matching the tokenizer's token-type variants.
package value

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifies which concrete value a Value variant holds.
type Kind int

const (
	KindNumber Kind = iota
	KindPercent
	KindMoney
	KindTime
	KindDate
	KindDuration
	KindMonth
	KindTimezone
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "Number"
	case KindPercent:
		return "Percent"
	case KindMoney:
		return "Money"
	case KindTime:
		return "Time"
	case KindDate:
		return "Date"
	case KindDuration:
		return "Duration"
	case KindMonth:
		return "Month"
	case KindTimezone:
		return "Timezone"
	default:
		return "Unknown"
	}
}

// CurrencyRef is a shared handle to a canonical currency entry: a code
// (e.g. "USD") plus the symbol it was parsed from, if any.
type CurrencyRef struct {
	Code   string
	Symbol string
}

func (c CurrencyRef) String() string {
	if c.Symbol != "" {
		return c.Symbol
	}
	return c.Code
}

// DurationUnit is one of the fixed duration units SmartCalc understands.
// Month and Year carry approximate, documented second counts (30d, 365d).
type DurationUnit int

const (
	UnitSecond DurationUnit = iota
	UnitMinute
	UnitHour
	UnitDay
	UnitWeek
	UnitMonth
	UnitYear
)

// UnitSeconds returns the canonical number of seconds in one unit.
func UnitSeconds(u DurationUnit) int64 {
	switch u {
	case UnitSecond:
		return 1
	case UnitMinute:
		return 60
	case UnitHour:
		return 3600
	case UnitDay:
		return 86400
	case UnitWeek:
		return 7 * 86400
	case UnitMonth:
		return 30 * 86400
	case UnitYear:
		return 365 * 86400
	default:
		return 0
	}
}

func (u DurationUnit) String() string {
	switch u {
	case UnitSecond:
		return "second"
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitWeek:
		return "week"
	case UnitMonth:
		return "month"
	case UnitYear:
		return "year"
	default:
		return "unknown"
	}
}

// Value is the interface every typed payload implements.
type Value interface {
	Kind() Kind
	String() string
	Equal(other Value) bool
}

// Number is a scalar decimal value.
type Number struct {
	Value decimal.Decimal
}

func NewNumber(d decimal.Decimal) *Number { return &Number{Value: d} }

func (n *Number) Kind() Kind { return KindNumber }

func (n *Number) String() string { return trimDecimal(n.Value) }

func (n *Number) Equal(other Value) bool {
	o, ok := other.(*Number)
	return ok && n.Value.Equal(o.Value)
}

// Percent is a percentage scalar; Value is the numeric percentage (25 means 25%).
type Percent struct {
	Value decimal.Decimal
}

func NewPercent(d decimal.Decimal) *Percent { return &Percent{Value: d} }

func (p *Percent) Kind() Kind { return KindPercent }

func (p *Percent) String() string { return trimDecimal(p.Value) + "%" }

func (p *Percent) Equal(other Value) bool {
	o, ok := other.(*Percent)
	return ok && p.Value.Equal(o.Value)
}

// Money is a decimal value carrying a currency.
type Money struct {
	Value    decimal.Decimal
	Currency CurrencyRef
}

func NewMoney(d decimal.Decimal, currency CurrencyRef) *Money {
	return &Money{Value: d, Currency: currency}
}

func (m *Money) Kind() Kind { return KindMoney }

func (m *Money) String() string {
	return fmt.Sprintf("%s%s", m.Currency.String(), m.Value.StringFixed(2))
}

func (m *Money) Equal(other Value) bool {
	o, ok := other.(*Money)
	return ok && m.Value.Equal(o.Value) && m.Currency.Code == o.Currency.Code
}

// Time is a wall-clock time of day, stored as seconds since midnight.
type Time struct {
	SecondsSinceMidnight int64
}

func NewTime(hour, minute, second int) *Time {
	total := int64(hour)*3600 + int64(minute)*60 + int64(second)
	return &Time{SecondsSinceMidnight: normalizeDaySeconds(total)}
}

func (t *Time) Kind() Kind { return KindTime }

func (t *Time) Hour() int   { return int(t.SecondsSinceMidnight / 3600) }
func (t *Time) Minute() int { return int((t.SecondsSinceMidnight / 60) % 60) }
func (t *Time) Second() int { return int(t.SecondsSinceMidnight % 60) }

func (t *Time) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t *Time) Equal(other Value) bool {
	o, ok := other.(*Time)
	return ok && t.SecondsSinceMidnight == o.SecondsSinceMidnight
}

// normalizeDaySeconds wraps a seconds-from-midnight count into [0, 86400),
// per spec.md §4.6: "Time + Duration and Time − Duration modulo 24 hours."
func normalizeDaySeconds(s int64) int64 {
	const day = 86400
	s %= day
	if s < 0 {
		s += day
	}
	return s
}

// Date is a calendar date.
type Date struct {
	Year, Month, Day int
}

func NewDate(year, month, day int) *Date {
	return &Date{Year: year, Month: month, Day: day}
}

func (d *Date) Kind() Kind { return KindDate }

func (d *Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func (d *Date) String() string {
	return d.Time().Format("2006-01-02")
}

func (d *Date) Equal(other Value) bool {
	o, ok := other.(*Date)
	return ok && d.Year == o.Year && d.Month == o.Month && d.Day == o.Day
}

// Duration carries both the canonical duration in seconds and the declared
// magnitude/unit it was expressed with, so formatting can round-trip.
type Duration struct {
	Seconds   decimal.Decimal
	Magnitude int64
	Unit      DurationUnit
}

// NewDuration builds a Duration whose Seconds equals Magnitude*UnitSeconds(Unit),
// the invariant spec.md §3 requires.
func NewDuration(magnitude int64, unit DurationUnit) *Duration {
	seconds := decimal.NewFromInt(magnitude).Mul(decimal.NewFromInt(UnitSeconds(unit)))
	return &Duration{Seconds: seconds, Magnitude: magnitude, Unit: unit}
}

// NewDurationFromSeconds builds a Duration from an exact seconds value,
// used by duration ± duration arithmetic where the result keeps the
// left operand's declared unit. Seconds stays exact; Magnitude is the
// integer part of seconds/unit, so a fractional remainder is truncated.
func NewDurationFromSeconds(seconds decimal.Decimal, unit DurationUnit) *Duration {
	unitSeconds := decimal.NewFromInt(UnitSeconds(unit))
	magnitude := seconds.Div(unitSeconds)
	return &Duration{Seconds: seconds, Magnitude: magnitude.IntPart(), Unit: unit}
}

func (d *Duration) Kind() Kind { return KindDuration }

func (d *Duration) String() string {
	return fmt.Sprintf("%d %s", d.Magnitude, pluralUnit(d.Unit, d.Magnitude))
}

func (d *Duration) Equal(other Value) bool {
	o, ok := other.(*Duration)
	return ok && d.Seconds.Equal(o.Seconds)
}

func pluralUnit(u DurationUnit, magnitude int64) string {
	if magnitude == 1 || magnitude == -1 {
		return u.String()
	}
	return u.String() + "s"
}

// Month is a calendar month, 1-12.
type Month struct {
	Value int
}

func NewMonth(m int) *Month { return &Month{Value: m} }

func (m *Month) Kind() Kind { return KindMonth }

func (m *Month) String() string {
	names := []string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
	if m.Value >= 1 && m.Value <= 12 {
		return names[m.Value-1]
	}
	return fmt.Sprintf("Month(%d)", m.Value)
}

func (m *Month) Equal(other Value) bool {
	o, ok := other.(*Month)
	return ok && m.Value == o.Value
}

// Timezone is a named zone offset from UTC, in minutes.
type Timezone struct {
	Name          string
	OffsetMinutes int16
}

func NewTimezone(name string, offsetMinutes int16) *Timezone {
	return &Timezone{Name: name, OffsetMinutes: offsetMinutes}
}

func (tz *Timezone) Kind() Kind { return KindTimezone }

func (tz *Timezone) String() string { return tz.Name }

func (tz *Timezone) Equal(other Value) bool {
	o, ok := other.(*Timezone)
	return ok && tz.Name == o.Name && tz.OffsetMinutes == o.OffsetMinutes
}

// trimDecimal renders a decimal without a trailing ".0000" tail, the way
// the teacher's types.Number.String trims trailing zeros.
func trimDecimal(d decimal.Decimal) string {
	s := d.String()
	if !containsDot(s) {
		return s
	}
	s = trimRightByte(s, '0')
	s = trimRightByte(s, '.')
	return s
}

func containsDot(s string) bool {
	for _, c := range s {
		if c == '.' {
			return true
		}
	}
	return false
}

func trimRightByte(s string, b byte) string {
	i := len(s)
	for i > 0 && s[i-1] == b {
		i--
	}
	return s[:i]
}
