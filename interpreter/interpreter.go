// Package interpreter implements the type-directed evaluator of spec.md
// §4.6: it walks the AST bottom-up, dispatching binary operators by the
// type lattice Money > Date > Time > Duration > Number, and writes
// assignments into the target variable's cell.
package interpreter

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartcalc/go-smartcalc/ast"
	"github.com/smartcalc/go-smartcalc/errs"
	"github.com/smartcalc/go-smartcalc/rule"
	"github.com/smartcalc/go-smartcalc/value"
)

// Eval evaluates an AST node, dereferencing variables and performing
// currency conversion through cfg where required.
func Eval(node ast.Node, cfg rule.ConfigReader) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.VariableRef:
		// "Follow the cell once; do not recurse to catch user-level
		// cycles" (spec.md §9) — we simply evaluate whatever is stored,
		// with no visited-set bookkeeping.
		if n.Variable.Cell == nil {
			return nil, errs.Interpret(n.Range.Start.Index, "unknown calculation")
		}
		return Eval(n.Variable.Cell, cfg)
	case *ast.Assignment:
		v, err := Eval(n.Value, cfg)
		if err != nil {
			return nil, err
		}
		n.Target.Cell = &ast.Literal{Value: v, Range: n.Range}
		return v, nil
	case *ast.PrefixUnary:
		return evalUnary(n, cfg)
	case *ast.Binary:
		return evalBinary(n, cfg)
	case ast.None:
		return nil, nil
	default:
		return nil, errs.Interpret(0, "unknown calculation")
	}
}

func evalUnary(n *ast.PrefixUnary, cfg rule.ConfigReader) (value.Value, error) {
	v, err := Eval(n.Operand, cfg)
	if err != nil {
		return nil, err
	}
	if n.Operator == '+' {
		return v, nil
	}
	switch x := v.(type) {
	case *value.Number:
		return &value.Number{Value: x.Value.Neg()}, nil
	case *value.Percent:
		return &value.Percent{Value: x.Value.Neg()}, nil
	case *value.Money:
		return &value.Money{Value: x.Value.Neg(), Currency: x.Currency}, nil
	default:
		return nil, errs.Interpret(n.Range.Start.Index, "syntax error: unary operand cannot be negated")
	}
}

func evalBinary(n *ast.Binary, cfg rule.ConfigReader) (value.Value, error) {
	left, err := Eval(n.Left, cfg)
	if err != nil {
		return nil, err
	}
	right, err := Eval(n.Right, cfg)
	if err != nil {
		return nil, err
	}

	idx := n.Range.Start.Index
	switch {
	case isMoney(left) || isMoney(right):
		return evalMoney(n.Operator, left, right, cfg, idx)
	case isDate(left) || isDate(right):
		return evalDate(n.Operator, left, right, idx)
	case isTime(left) || isTime(right):
		return evalTime(n.Operator, left, right, idx)
	case isDuration(left) || isDuration(right):
		return evalDuration(n.Operator, left, right, idx)
	default:
		return evalNumber(n.Operator, left, right, idx)
	}
}

func isMoney(v value.Value) bool    { _, ok := v.(*value.Money); return ok }
func isDate(v value.Value) bool     { _, ok := v.(*value.Date); return ok }
func isTime(v value.Value) bool     { _, ok := v.(*value.Time); return ok }
func isDuration(v value.Value) bool { _, ok := v.(*value.Duration); return ok }

// safeDiv implements spec.md §7's numeric hygiene rule: division by zero
// is silenced to 0 rather than propagated as an error.
func safeDiv(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Div(d)
}

// percentCombine implements spec.md §4.6's Number/Percent formula: given
// the scalar n and the percentage p (25 means 25%), regardless of which
// operand held which, compute the combined result for the given operator.
func percentCombine(op byte, n, p decimal.Decimal) decimal.Decimal {
	fraction := n.Mul(p).Div(decimal.NewFromInt(100))
	switch op {
	case '+':
		return n.Add(fraction)
	case '-':
		return n.Sub(fraction)
	case '*':
		return n.Mul(fraction)
	case '/':
		return safeDiv(n, fraction)
	default:
		return decimal.Zero
	}
}

// evalNumber handles Number/Percent arithmetic, the lowest rung of the
// type lattice.
func evalNumber(op byte, left, right value.Value, idx int) (value.Value, error) {
	lp, lIsPercent := left.(*value.Percent)
	rp, rIsPercent := right.(*value.Percent)

	if lIsPercent && rIsPercent {
		result, err := numericOp(op, lp.Value, rp.Value)
		if err != nil {
			return nil, errs.Interpret(idx, err.Error())
		}
		return &value.Percent{Value: result}, nil
	}
	if lIsPercent != rIsPercent {
		var n decimal.Decimal
		var p decimal.Decimal
		var ok bool
		if lIsPercent {
			p = lp.Value
			n, ok = asNumber(right)
		} else {
			p = rp.Value
			n, ok = asNumber(left)
		}
		if !ok {
			return nil, errs.Interpret(idx, "unknown calculation")
		}
		return &value.Number{Value: percentCombine(op, n, p)}, nil
	}

	ln, lok := asNumber(left)
	rn, rok := asNumber(right)
	if !lok || !rok {
		return nil, errs.Interpret(idx, "unknown calculation")
	}
	result, err := numericOp(op, ln, rn)
	if err != nil {
		return nil, errs.Interpret(idx, err.Error())
	}
	return &value.Number{Value: result}, nil
}

func asNumber(v value.Value) (decimal.Decimal, bool) {
	n, ok := v.(*value.Number)
	if !ok {
		return decimal.Zero, false
	}
	return n.Value, true
}

func numericOp(op byte, left, right decimal.Decimal) (decimal.Decimal, error) {
	switch op {
	case '+':
		return left.Add(right), nil
	case '-':
		return left.Sub(right), nil
	case '*':
		return left.Mul(right), nil
	case '/':
		return safeDiv(left, right), nil
	default:
		return decimal.Zero, errUnknownOperator
	}
}

var errUnknownOperator = errFn("unknown operator")

type errFn string

func (e errFn) Error() string { return string(e) }

// evalMoney implements spec.md §4.6's Money rules: percent behaves as in
// Number; cross-currency arithmetic converts the non-target operand
// through the FX table; a money-vs-number op treats the number as a
// price already denominated in the target currency.
func evalMoney(op byte, left, right value.Value, cfg rule.ConfigReader, idx int) (value.Value, error) {
	if p, ok := left.(*value.Percent); ok {
		m, ok := right.(*value.Money)
		if !ok {
			return nil, errs.Interpret(idx, "unknown calculation")
		}
		return &value.Money{Value: percentCombine(op, m.Value, p.Value), Currency: m.Currency}, nil
	}
	if p, ok := right.(*value.Percent); ok {
		m, ok := left.(*value.Money)
		if !ok {
			return nil, errs.Interpret(idx, "unknown calculation")
		}
		return &value.Money{Value: percentCombine(op, m.Value, p.Value), Currency: m.Currency}, nil
	}

	leftMoney, leftIsMoney := left.(*value.Money)
	rightMoney, rightIsMoney := right.(*value.Money)

	var target value.CurrencyRef
	switch {
	case rightIsMoney:
		target = rightMoney.Currency
	case leftIsMoney:
		target = leftMoney.Currency
	default:
		return nil, errs.Interpret(idx, "currency information not valid")
	}

	leftPrice, err := moneyOperandPrice(left, leftIsMoney, leftMoney, target, cfg)
	if err != nil {
		return nil, errs.Interpret(idx, err.Error())
	}
	rightPrice, err := moneyOperandPrice(right, rightIsMoney, rightMoney, target, cfg)
	if err != nil {
		return nil, errs.Interpret(idx, err.Error())
	}

	result, err := numericOp(op, leftPrice, rightPrice)
	if err != nil {
		return nil, errs.Interpret(idx, err.Error())
	}
	return &value.Money{Value: result, Currency: target}, nil
}

// moneyOperandPrice resolves an operand's price denominated in target,
// converting via rate(from)/rate(to) when the operand is money in a
// different currency (mirrors handlers.CurrencyConversion's convention).
func moneyOperandPrice(v value.Value, isMoney bool, m *value.Money, target value.CurrencyRef, cfg rule.ConfigReader) (decimal.Decimal, error) {
	if isMoney {
		if m.Currency.Code == target.Code {
			return m.Value, nil
		}
		fromRate, ok := cfg.CurrencyRate(m.Currency.Code)
		if !ok {
			return decimal.Zero, errFn("currency information not valid")
		}
		toRate, ok := cfg.CurrencyRate(target.Code)
		if !ok {
			return decimal.Zero, errFn("currency information not valid")
		}
		return safeDiv(m.Value.Mul(fromRate), toRate), nil
	}
	if n, ok := v.(*value.Number); ok {
		return n.Value, nil
	}
	return decimal.Zero, errFn("unknown calculation")
}

// evalTime implements spec.md §4.6's Time rule: Time ± Duration, modulo
// 24 hours, with the duration's sign taken as-is. It also implements the
// Timezone supplement (SPEC_FULL.md §7): Time ± Timezone shifts the
// wall-clock value by the zone's offset relative to the session's
// reference zone (UTC).
func evalTime(op byte, left, right value.Value, idx int) (value.Value, error) {
	if op != '+' && op != '-' {
		return nil, errs.Interpret(idx, "unknown operator")
	}

	var t *value.Time
	var other value.Value
	if tv, ok := left.(*value.Time); ok {
		t = tv
		other = right
	} else if tv, ok := right.(*value.Time); ok {
		t = tv
		other = left
	}
	if t == nil {
		return nil, errs.Interpret(idx, "unknown calculation")
	}

	switch o := other.(type) {
	case *value.Duration:
		seconds := o.Seconds
		if op == '-' {
			seconds = seconds.Neg()
		}
		total := decimal.NewFromInt(t.SecondsSinceMidnight).Add(seconds)
		return &value.Time{SecondsSinceMidnight: normalizeDaySeconds(total.IntPart())}, nil
	case *value.Timezone:
		offsetSeconds := int64(o.OffsetMinutes) * 60
		if op == '-' {
			offsetSeconds = -offsetSeconds
		}
		return &value.Time{SecondsSinceMidnight: normalizeDaySeconds(t.SecondsSinceMidnight + offsetSeconds)}, nil
	default:
		return nil, errs.Interpret(idx, "unknown calculation")
	}
}

func normalizeDaySeconds(s int64) int64 {
	const day = 86400
	s %= day
	if s < 0 {
		s += day
	}
	return s
}

// evalDate implements spec.md §4.6's Date ± Duration rule: the duration
// is split into years, months and a residual, applied in that order, with
// day-of-month clamped to the target month's last day on overflow (the
// policy spec.md §9 leaves as an open question).
func evalDate(op byte, left, right value.Value, idx int) (value.Value, error) {
	if op != '+' && op != '-' {
		return nil, errs.Interpret(idx, "unknown operator")
	}

	var d *value.Date
	var dur *value.Duration
	if dv, ok := left.(*value.Date); ok {
		d = dv
		dur, _ = right.(*value.Duration)
	} else if dv, ok := right.(*value.Date); ok {
		d = dv
		dur, _ = left.(*value.Duration)
	}
	if d == nil || dur == nil {
		return nil, errs.Interpret(idx, "unknown calculation")
	}

	totalSeconds := dur.Seconds
	if op == '-' {
		totalSeconds = totalSeconds.Neg()
	}
	return addDurationToDate(d, totalSeconds), nil
}

func addDurationToDate(d *value.Date, totalSeconds decimal.Decimal) *value.Date {
	yearSeconds := decimal.NewFromInt(value.UnitSeconds(value.UnitYear))
	monthSeconds := decimal.NewFromInt(value.UnitSeconds(value.UnitMonth))

	years := totalSeconds.Div(yearSeconds).Truncate(0).IntPart()
	remainder := totalSeconds.Sub(decimal.NewFromInt(years).Mul(yearSeconds))

	months := remainder.Div(monthSeconds).Truncate(0).IntPart()
	remainder = remainder.Sub(decimal.NewFromInt(months).Mul(monthSeconds))

	year := d.Year + int(years)
	month := d.Month + int(months)
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	day := clampDay(year, month, d.Day)

	base := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	residualSeconds := remainder.IntPart()
	result := base.Add(time.Duration(residualSeconds) * time.Second)
	return &value.Date{Year: result.Year(), Month: int(result.Month()), Day: result.Day()}
}

func daysInMonth(year, month int) int {
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(year, month, day int) int {
	if max := daysInMonth(year, month); day > max {
		return max
	}
	return day
}

// evalDuration implements spec.md §4.6's Duration ± Duration rule:
// field-wise addition/subtraction on the canonical seconds value.
func evalDuration(op byte, left, right value.Value, idx int) (value.Value, error) {
	ld, lok := left.(*value.Duration)
	rd, rok := right.(*value.Duration)
	if !lok || !rok {
		return nil, errs.Interpret(idx, "unknown calculation")
	}

	var seconds decimal.Decimal
	switch op {
	case '+':
		seconds = ld.Seconds.Add(rd.Seconds)
	case '-':
		seconds = ld.Seconds.Sub(rd.Seconds)
	default:
		return nil, errs.Interpret(idx, "unknown operator")
	}
	return value.NewDurationFromSeconds(seconds, ld.Unit), nil
}
