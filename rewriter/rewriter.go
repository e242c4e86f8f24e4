// Package rewriter implements the rule engine of spec.md §4.3: a
// fixed-point, data-driven rewriter that folds token sequences into
// higher-level typed tokens ("10 days" → Duration, "5 weeks as seconds"
// → Number). Grounded on the teacher's evaluator.evalBinaryOperation:
// handlers are pure functions, easy to test standalone (package handlers).
package rewriter

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/rule"
	"github.com/smartcalc/go-smartcalc/token"
)

// Run scans infos for any rule's pattern, rewriting matches to a fixed
// point. It mutates infos in place (flagging matched tokens Removed and
// appending replacement tokens) and returns the full slice, which the
// caller (package normalizer) filters down to active tokens.
func Run(infos []*token.Info, language string, cfg *config.Config) []*token.Info {
	rules := cfg.Rules[language]
	if len(rules) == 0 {
		return infos
	}

	for {
		active := activeTokens(infos)
		fired := false

		for start := 0; start < len(active); start++ {
			if newInfo, matched, ok := tryRulesAt(active, start, rules, cfg); ok {
				for _, idx := range matched {
					active[idx].Status = token.Removed
				}
				infos = append(infos, newInfo)
				fired = true
				break
			}
		}

		if !fired {
			return infos
		}
	}
}

// activeTokens drops Removed tokens and Whitespace tokens, mirroring
// normalizer.activeSemantic: the tokenizer's stream still carries
// Whitespace spans at this point (stripped for good only later, in
// Normalize), and a rule pattern matches contiguous positions in the
// active stream, so leaving whitespace in would make every
// multi-token pattern fail against ordinary space-separated input.
func activeTokens(infos []*token.Info) []*token.Info {
	var active []*token.Info
	for _, info := range infos {
		if info.Status == token.Removed {
			continue
		}
		if info.TokenType != nil && info.TokenType.Kind == token.KindWhitespace {
			continue
		}
		active = append(active, info)
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Start < active[j].Start })
	return active
}

// tryRulesAt tries every rule, in declaration order, and every pattern of
// that rule, at the given starting position. The first pattern that
// structurally matches AND whose handler succeeds wins (spec.md §4.3:
// "the first handler that returns success wins for that match position").
func tryRulesAt(active []*token.Info, start int, rules []rule.Rule, cfg *config.Config) (*token.Info, []int, bool) {
	for _, r := range rules {
		for _, pattern := range r.Patterns {
			matched, fields, ok := matchPattern(active, start, pattern)
			if !ok {
				continue
			}
			result, err := r.Handler(cfg, fields)
			if err != nil {
				// Non-fatal per spec.md §7: the rule simply doesn't fire.
				slog.Default().Debug("rewriter: rule handler skipped", "rule", r.Name, "err", err)
				continue
			}

			first := active[matched[0]]
			last := active[matched[len(matched)-1]]
			text := replacementText(active, matched)

			newInfo := &token.Info{
				Start:        first.Start,
				End:          last.End,
				TokenType:    &result,
				OriginalText: text,
				Status:       token.Active,
			}
			return newInfo, matched, true
		}
	}
	return nil, nil, false
}

func replacementText(active []*token.Info, matched []int) string {
	parts := make([]string, len(matched))
	for i, idx := range matched {
		parts[i] = active[idx].OriginalText
	}
	return strings.Join(parts, " ")
}

// matchPattern attempts to match pattern starting at active[start]. It
// returns the indices into active consumed by the match and the captured
// fields.
func matchPattern(active []*token.Info, start int, pattern rule.Pattern) ([]int, map[string]token.Info, bool) {
	if start+len(pattern) > len(active) {
		return nil, nil, false
	}

	fields := map[string]token.Info{}
	matched := make([]int, 0, len(pattern))

	for i, pt := range pattern {
		pos := start + i
		info := active[pos]

		if pt.IsField() {
			if !fieldMatches(info, pt.Field) {
				return nil, nil, false
			}
			fields[pt.Field.Name] = *info
		} else if !concreteMatches(info.TokenType, pt.Concrete) {
			return nil, nil, false
		}

		matched = append(matched, pos)
	}

	return matched, fields, true
}

func fieldMatches(info *token.Info, spec token.FieldSpec) bool {
	if info.TokenType == nil {
		return false
	}
	if spec.Kind == token.FieldGroup {
		if info.TokenType.Kind != token.KindText {
			return false
		}
		word := strings.ToLower(info.TokenType.Text)
		for _, w := range spec.Words {
			if strings.ToLower(w) == word {
				return true
			}
		}
		return false
	}
	return info.TokenType.Fits(spec.Kind)
}

// concreteMatches implements spec.md §4.3's "otherwise equality is by
// variant and value" rule for non-Field pattern tokens.
func concreteMatches(got *token.TokenType, want token.TokenType) bool {
	if got == nil {
		return false
	}
	if got.Kind != want.Kind {
		return false
	}
	switch want.Kind {
	case token.KindOperator:
		return got.Operator == want.Operator
	case token.KindText:
		return strings.EqualFold(got.Text, want.Text)
	case token.KindVariable:
		// A Variable placeholder matches a Variable whose cell contents
		// structurally match the placeholder (spec.md §4.3). The default
		// rule pack has no rule referencing a concrete Variable shape, so
		// we match any Variable token here; a future rule pack that needs
		// deep structural matching would extend this case.
		return true
	default:
		if got.Value == nil || want.Value == nil {
			return false
		}
		return got.Value.Equal(want.Value)
	}
}

// ErrNoMatch is the error value for "no rule matched". Nothing in this
// package returns it: Run reports no match by returning infos unchanged.
var ErrNoMatch = fmt.Errorf("rewriter: no rule matched")
