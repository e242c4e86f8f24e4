// Package normalizer implements the token normalizer of spec.md §4.4: it
// runs after the rule engine and produces the linear token stream the
// parser consumes — cleaning stray text, filling in implicit zeros and
// pluses, and binding variable references.
package normalizer

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartcalc/go-smartcalc/session"
	"github.com/smartcalc/go-smartcalc/token"
	"github.com/smartcalc/go-smartcalc/value"
)

// Normalize runs the four-step normalization pipeline described in
// spec.md §4.4 and returns the cleaned, linear token stream.
func Normalize(infos []*token.Info, sess *session.Session) []*token.Info {
	active := activeSemantic(infos)

	active = stripStrayText(active)
	active = insertImplicitZeros(active)
	active = insertImplicitPlus(active)
	active = bindVariables(active, sess)

	return active
}

// activeSemantic drops Removed tokens and Whitespace tokens (whitespace
// carries no parsing role; it only ever separated other tokens).
func activeSemantic(infos []*token.Info) []*token.Info {
	var out []*token.Info
	for _, info := range infos {
		if info.Status == token.Removed {
			continue
		}
		if info.TokenType == nil || info.TokenType.Kind == token.KindWhitespace {
			continue
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func isAssign(info *token.Info) bool {
	return info.TokenType.Kind == token.KindOperator && info.TokenType.Operator == '='
}

// stripStrayText implements step 1: find the first '=', and strip every
// Text token after it (stray words on an assignment's right-hand side).
// Text tokens before the '=' survive to form the variable name.
func stripStrayText(active []*token.Info) []*token.Info {
	assignIdx := -1
	for i, info := range active {
		if isAssign(info) {
			assignIdx = i
			break
		}
	}
	if assignIdx == -1 {
		return active
	}

	out := make([]*token.Info, 0, len(active))
	out = append(out, active[:assignIdx+1]...)
	for _, info := range active[assignIdx+1:] {
		if info.TokenType.Kind == token.KindText {
			continue
		}
		out = append(out, info)
	}
	return out
}

func isOperator(info *token.Info) bool {
	return info.TokenType != nil && info.TokenType.Kind == token.KindOperator
}

// isValueProducing reports whether a token kind can stand as a primary
// expression value (spec.md §4.4 step 3 uses this set implicitly).
func isValueProducing(info *token.Info) bool {
	if info.TokenType == nil {
		return false
	}
	switch info.TokenType.Kind {
	case token.KindNumber, token.KindPercent, token.KindMoney, token.KindTime,
		token.KindDate, token.KindDuration, token.KindMonth, token.KindVariable:
		return true
	default:
		return false
	}
}

func zeroToken() *token.Info {
	tt := token.Number(&value.Number{Value: decimal.Zero})
	return &token.Info{TokenType: &tt, OriginalText: "0"}
}

// insertImplicitZeros implements step 2.
func insertImplicitZeros(active []*token.Info) []*token.Info {
	if len(active) == 0 {
		return active
	}

	assignIdx := -1
	for i, info := range active {
		if isAssign(info) {
			assignIdx = i
			break
		}
	}

	firstIdx := 0
	if assignIdx != -1 {
		firstIdx = assignIdx + 1
	}

	out := make([]*token.Info, 0, len(active)+2)
	out = append(out, active[:firstIdx]...)

	if firstIdx < len(active) && isOperator(active[firstIdx]) {
		out = append(out, zeroToken())
	}
	out = append(out, active[firstIdx:]...)

	if len(out) > 0 && isOperator(out[len(out)-1]) {
		out = append(out, zeroToken())
	}

	return out
}

// insertImplicitPlus implements step 3: between any two consecutive
// value-producing tokens with no operator between them, insert '+'.
func insertImplicitPlus(active []*token.Info) []*token.Info {
	if len(active) < 2 {
		return active
	}
	out := make([]*token.Info, 0, len(active)*2)
	out = append(out, active[0])
	for i := 1; i < len(active); i++ {
		prev := active[i-1]
		cur := active[i]
		if isValueProducing(prev) && isValueProducing(cur) {
			plus := token.Op('+')
			out = append(out, &token.Info{TokenType: &plus, OriginalText: "+"})
		}
		out = append(out, cur)
	}
	return out
}

// bindVariables implements step 4: collapses a contiguous Text run before
// the first '=' into a single Variable token (allocating a session
// variable if needed), and rewrites any contiguous Text run elsewhere that
// matches an already-known variable name into a Variable reference.
func bindVariables(active []*token.Info, sess *session.Session) []*token.Info {
	assignIdx := -1
	for i, info := range active {
		if isAssign(info) {
			assignIdx = i
			break
		}
	}

	out := make([]*token.Info, 0, len(active))
	i := 0
	for i < len(active) {
		info := active[i]
		if info.TokenType != nil && info.TokenType.Kind == token.KindText {
			run, consumed := collectTextRun(active, i)
			name := strings.Join(run, " ")

			if assignIdx != -1 && i <= assignIdx && i+consumed-1 <= assignIdx {
				v := sess.Variable(name)
				tt := token.VariableOf(v)
				out = append(out, &token.Info{
					Start: info.Start, End: active[i+consumed-1].End,
					TokenType: &tt, OriginalText: name,
				})
			} else if v, ok := sess.LookupVariable(name); ok {
				tt := token.VariableOf(v)
				out = append(out, &token.Info{
					Start: info.Start, End: active[i+consumed-1].End,
					TokenType: &tt, OriginalText: name,
				})
			} else {
				out = append(out, active[i:i+consumed]...)
			}
			i += consumed
			continue
		}
		out = append(out, info)
		i++
	}
	return out
}

func collectTextRun(active []*token.Info, start int) ([]string, int) {
	var words []string
	i := start
	for i < len(active) && active[i].TokenType != nil && active[i].TokenType.Kind == token.KindText {
		words = append(words, active[i].TokenType.Text)
		i++
	}
	return words, i - start
}
