package token

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/smartcalc/go-smartcalc/value"
)

func TestFits(t *testing.T) {
	num := Number(value.NewNumber(decimal.NewFromInt(5)))
	money := Money(value.NewMoney(decimal.NewFromInt(5), value.CurrencyRef{Code: "USD"}))

	if !num.Fits(FieldNumber) {
		t.Error("Number token should fit FieldNumber")
	}
	if num.Fits(FieldMoney) {
		t.Error("Number token should not fit FieldMoney")
	}
	if !num.Fits(FieldNumberOrMoney) {
		t.Error("Number token should fit FieldNumberOrMoney")
	}
	if !money.Fits(FieldNumberOrMoney) {
		t.Error("Money token should fit FieldNumberOrMoney")
	}
	if money.Fits(FieldNumber) {
		t.Error("Money token should not fit FieldNumber")
	}
}

func TestTokenTypeString(t *testing.T) {
	tests := []struct {
		name string
		tok  TokenType
		want string
	}{
		{"number", Number(value.NewNumber(decimal.NewFromInt(2))), "Number(2)"},
		{"operator", Op('+'), `Operator("+")`},
		{"text", Text("hour"), `Text("hour")`},
		{"whitespace", Whitespace(), "Whitespace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInfoIsSemantic(t *testing.T) {
	none := &Info{Start: 0, End: 1}
	if none.IsSemantic() {
		t.Error("Info with nil TokenType should not be semantic")
	}

	tt := Text("x")
	sem := &Info{Start: 0, End: 1, TokenType: &tt}
	if !sem.IsSemantic() {
		t.Error("Info with a TokenType should be semantic")
	}
}

func TestInfoOverlaps(t *testing.T) {
	tt := Text("x")
	info := &Info{Start: 5, End: 10, TokenType: &tt}

	if !info.Overlaps(7, 12) {
		t.Error("expected overlap when the new span starts inside the existing one")
	}
	if !info.Overlaps(0, 6) {
		t.Error("expected overlap when the new span ends inside the existing one")
	}
	if info.Overlaps(10, 15) {
		t.Error("adjacent, non-overlapping span starting at End should not overlap")
	}
	if info.Overlaps(0, 5) {
		t.Error("adjacent, non-overlapping span ending at Start should not overlap")
	}

	removed := &Info{Start: 5, End: 10, TokenType: &tt, Status: Removed}
	if removed.Overlaps(5, 10) {
		t.Error("a Removed token should never overlap")
	}
}
