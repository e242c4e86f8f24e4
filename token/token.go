// Package token defines TokenType, the tagged union produced by the
// tokenizer and consumed by the alias resolver and rule engine, and
// Info, a located span of such a token.
package token

import (
	"fmt"

	"github.com/smartcalc/go-smartcalc/ast"
	"github.com/smartcalc/go-smartcalc/value"
)

// Kind identifies which TokenType variant is populated.
type Kind int

const (
	KindNone Kind = iota
	KindNumber
	KindPercent
	KindMoney
	KindTime
	KindDate
	KindDuration
	KindMonth
	KindTimezone
	KindOperator
	KindField
	KindVariable
	KindText
	KindWhitespace
)

func (k Kind) String() string {
	names := [...]string{"None", "Number", "Percent", "Money", "Time", "Date",
		"Duration", "Month", "Timezone", "Operator", "Field", "Variable", "Text", "Whitespace"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// FieldKind is the type a Field placeholder in a rule pattern requires its
// matched token to have.
type FieldKind int

const (
	FieldNumber FieldKind = iota
	FieldMoney
	FieldNumberOrMoney
	FieldPercent
	FieldDate
	FieldTime
	FieldMonth
	FieldDuration
	FieldText
	FieldGroup
)

func (f FieldKind) String() string {
	names := [...]string{"Number", "Money", "NumberOrMoney", "Percent", "Date", "Time", "Month", "Duration", "Text", "Group"}
	if int(f) < len(names) {
		return names[f]
	}
	return "Unknown"
}

// FieldSpec is a named slot in a rule pattern: it matches any token whose
// Kind fits the FieldKind, and captures it under Name.
type FieldSpec struct {
	Name  string
	Kind  FieldKind
	Words []string // only meaningful when Kind == FieldGroup
}

// TokenType is the tagged payload of a TokenInfo. Exactly one of the typed
// fields is meaningful, selected by Kind; this mirrors the value.Value
// tagged-struct style rather than an interface hierarchy, since rule
// matching needs to inspect the tag directly.
type TokenType struct {
	Kind Kind

	Value    value.Value // for Number, Percent, Money, Time, Date, Duration, Month, Timezone
	Operator byte        // for Operator: one of + - * / = ( ) %
	Field    FieldSpec   // for Field
	Variable *ast.Variable
	Text     string // for Text, and the canonical replacement driving an Operator/Field lookup
}

func Number(v value.Value) TokenType   { return TokenType{Kind: KindNumber, Value: v} }
func Percent(v value.Value) TokenType  { return TokenType{Kind: KindPercent, Value: v} }
func Money(v value.Value) TokenType    { return TokenType{Kind: KindMoney, Value: v} }
func TimeOf(v value.Value) TokenType   { return TokenType{Kind: KindTime, Value: v} }
func DateOf(v value.Value) TokenType   { return TokenType{Kind: KindDate, Value: v} }
func DurationOf(v value.Value) TokenType {
	return TokenType{Kind: KindDuration, Value: v}
}
func MonthOf(v value.Value) TokenType     { return TokenType{Kind: KindMonth, Value: v} }
func TimezoneOf(v value.Value) TokenType  { return TokenType{Kind: KindTimezone, Value: v} }
func Op(b byte) TokenType                 { return TokenType{Kind: KindOperator, Operator: b} }
func Field(spec FieldSpec) TokenType      { return TokenType{Kind: KindField, Field: spec} }
func VariableOf(v *ast.Variable) TokenType { return TokenType{Kind: KindVariable, Variable: v} }
func Text(s string) TokenType             { return TokenType{Kind: KindText, Text: s} }
func Whitespace() TokenType               { return TokenType{Kind: KindWhitespace} }

func (t TokenType) String() string {
	switch t.Kind {
	case KindNumber, KindPercent, KindMoney, KindTime, KindDate, KindDuration, KindMonth, KindTimezone:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Value.String())
	case KindOperator:
		return fmt.Sprintf("Operator(%q)", string(t.Operator))
	case KindField:
		return fmt.Sprintf("Field(%s:%s)", t.Field.Name, t.Field.Kind)
	case KindVariable:
		return fmt.Sprintf("Variable(%q)", t.Variable.Name)
	case KindText:
		return fmt.Sprintf("Text(%q)", t.Text)
	case KindWhitespace:
		return "Whitespace"
	default:
		return "None"
	}
}

// Fits reports whether this TokenType can be captured by a Field
// placeholder of the given kind, per spec.md §4.3's matching semantics.
func (t TokenType) Fits(kind FieldKind) bool {
	switch kind {
	case FieldNumber:
		return t.Kind == KindNumber
	case FieldMoney:
		return t.Kind == KindMoney
	case FieldNumberOrMoney:
		return t.Kind == KindNumber || t.Kind == KindMoney
	case FieldPercent:
		return t.Kind == KindPercent
	case FieldDate:
		return t.Kind == KindDate
	case FieldTime:
		return t.Kind == KindTime
	case FieldMonth:
		return t.Kind == KindMonth
	case FieldDuration:
		return t.Kind == KindDuration
	case FieldText:
		return t.Kind == KindText
	default:
		return false
	}
}

// Status marks whether a TokenInfo is still active in the stream or has
// been folded into a replacement by the rule engine.
type Status int

const (
	Active Status = iota
	Removed
)

// Info is a located token: the span it occupies plus its classification.
// A nil TokenType (IsSemantic()==false) means the span exists only for the
// UI layer and plays no role in parsing — spec.md §3's `token_type == None`.
type Info struct {
	Start        int
	End          int
	TokenType    *TokenType
	OriginalText string
	Status       Status
}

// IsSemantic reports whether this token carries a parse-relevant TokenType.
func (i *Info) IsSemantic() bool { return i.TokenType != nil }

// Overlaps reports whether this active span covers either endpoint of
// [start, end), the collision rule from spec.md §4.1.
func (i *Info) Overlaps(start, end int) bool {
	if i.Status == Removed {
		return false
	}
	return (i.Start <= start && start < i.End) || (i.Start < end && end <= i.End)
}
