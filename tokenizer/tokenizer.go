// Package tokenizer implements the regex-driven classifier described in
// spec.md §4.1: it runs the configured category regexes over the input
// line in priority order, inserting a TokenInfo for each non-colliding
// match, and emits a parallel UiToken collection for syntax highlighting.
package tokenizer

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/token"
	"github.com/smartcalc/go-smartcalc/value"
)

// UiType is the syntax-highlighting category of a UiToken.
type UiType int

const (
	UiText UiType = iota
	UiNumber
	UiMoney
	UiMoneySymbol
	UiPercentageSymbol
	UiTime
	UiOperator
	UiComment
	UiVariableDefinition
	UiVariableUse
)

// UiToken is a non-overlapping, start-sorted span for syntax highlighting.
// Positions are codepoint (rune) indices, not byte offsets.
type UiToken struct {
	Start, End int
	Type       UiType
}

// Tokenize runs the full tokenizer over text for the given language,
// returning the active (non-None) TokenInfo list sorted by start, plus
// the UI token collection.
func Tokenize(text string, language string, cfg *config.Config) ([]*token.Info, []UiToken) {
	runes := []rune(text)
	var infos []*token.Info
	var commentUI []UiToken

	order := cfg.CategoryOrder
	if order == nil {
		order = config.DefaultCategoryOrder
	}

	for _, category := range order {
		regexes := cfg.TokenParseRegex[category]
		for _, re := range regexes {
			for _, loc := range findAllCharIndex(re, runes) {
				start, end := loc[0], loc[1]
				if start == end {
					continue
				}
				if collides(infos, start, end) {
					continue
				}
				match := string(runes[start:end])
				names := re.SubexpNames()
				groups := submatchGroups(re, match, names)
				tt := classify(category, match, groups, language, cfg)
				if category == config.CategoryComment {
					commentUI = append(commentUI, UiToken{Start: start, End: end, Type: UiComment})
				}
				infos = append(infos, &token.Info{
					Start:        start,
					End:          end,
					TokenType:    tt,
					OriginalText: match,
					Status:       token.Active,
				})
			}
		}
	}

	// Drop spans whose classification yielded no semantic token (§3:
	// "token_type == None means the span exists for UI but plays no
	// semantic role" — for these, drop the TokenInfo from the semantic
	// stream entirely per §4.1's final step, but still surface them to UI
	// as Comment spans if that's what produced them).
	uiTokens := commentUI
	var semantic []*token.Info
	for _, info := range infos {
		if info.TokenType == nil {
			continue
		}
		semantic = append(semantic, info)
	}

	sort.Slice(semantic, func(i, j int) bool { return semantic[i].Start < semantic[j].Start })

	for _, info := range infos {
		if ui, ok := uiTokenFor(info); ok {
			uiTokens = append(uiTokens, ui)
		}
	}
	sort.Slice(uiTokens, func(i, j int) bool { return uiTokens[i].Start < uiTokens[j].Start })

	return semantic, uiTokens
}

// atomSymbolRegex matches the canonical single-character atoms an alias
// replacement can take (operators and the bare '%'). It's kept separate
// from config.CategoryAtom's raw-tokenizer regex set (see config.go's
// defaultTokenParseRegex) so a literal '%' in ordinary input still reaches
// the percent category instead of being claimed here first.
var atomSymbolRegex = regexp.MustCompile(`[+\-*/=%]`)

// ReTokenizeAtom re-tokenizes a canonical alias replacement string through
// the atom regex set, per spec.md §4.2. It returns one TokenType per
// non-overlapping atom match found, in order.
func ReTokenizeAtom(replacement string, cfg *config.Config) []*token.TokenType {
	runes := []rune(replacement)
	var infos []*token.Info
	regexes := append([]*regexp.Regexp{atomSymbolRegex}, cfg.TokenParseRegex[config.CategoryAtom]...)
	for _, re := range regexes {
		for _, loc := range findAllCharIndex(re, runes) {
			start, end := loc[0], loc[1]
			if start == end || collides(infos, start, end) {
				continue
			}
			match := string(runes[start:end])
			tt := classifyAtom(match)
			infos = append(infos, &token.Info{Start: start, End: end, TokenType: tt, OriginalText: match})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Start < infos[j].Start })

	var result []*token.TokenType
	for _, info := range infos {
		if info.TokenType != nil {
			result = append(result, info.TokenType)
		}
	}
	return result
}

// collides implements the collision rule from spec.md §4.1: an insertion
// succeeds iff no active TokenInfo covers either endpoint of the new span.
func collides(infos []*token.Info, start, end int) bool {
	for _, existing := range infos {
		if existing.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func uiTokenFor(info *token.Info) (UiToken, bool) {
	if info.TokenType == nil {
		return UiToken{}, false
	}
	switch info.TokenType.Kind {
	case token.KindNumber:
		return UiToken{Start: info.Start, End: info.End, Type: UiNumber}, true
	case token.KindMoney:
		return UiToken{Start: info.Start, End: info.End, Type: UiMoney}, true
	case token.KindPercent:
		return UiToken{Start: info.Start, End: info.End, Type: UiPercentageSymbol}, true
	case token.KindTime:
		return UiToken{Start: info.Start, End: info.End, Type: UiTime}, true
	case token.KindOperator:
		return UiToken{Start: info.Start, End: info.End, Type: UiOperator}, true
	case token.KindText:
		return UiToken{Start: info.Start, End: info.End, Type: UiText}, true
	case token.KindWhitespace:
		return UiToken{}, false
	default:
		return UiToken{}, false
	}
}

// findAllCharIndex returns [start,end) rune-index pairs for every
// non-overlapping match of re against runes, computed by re-running the
// byte-oriented regexp over the UTF-8 encoding and mapping byte offsets
// to rune (codepoint) offsets via a single walk, per spec.md §4.1's
// "character positions for UI must be codepoint indices" requirement.
func findAllCharIndex(re interface {
	FindAllStringSubmatchIndex(string, int) [][]int
}, runes []rune) [][2]int {
	s := string(runes)
	byteToChar := buildByteToCharMap(s)

	matches := re.FindAllStringSubmatchIndex(s, -1)
	result := make([][2]int, 0, len(matches))
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		result = append(result, [2]int{byteToChar[m[0]], byteToChar[m[1]]})
	}
	return result
}

// buildByteToCharMap walks s once, mapping every byte offset (including
// the one-past-the-end offset) to its rune index.
func buildByteToCharMap(s string) map[int]int {
	m := make(map[int]int, len(s)+1)
	charIdx := 0
	for byteIdx := range s {
		m[byteIdx] = charIdx
		charIdx++
	}
	m[len(s)] = charIdx
	return m
}

func submatchGroups(re interface {
	SubexpNames() []string
	FindStringSubmatch(string) []string
}, match string, names []string) map[string]string {
	groups := map[string]string{}
	sub := re.FindStringSubmatch(match)
	for i, name := range names {
		if name == "" || i >= len(sub) {
			continue
		}
		groups[name] = sub[i]
	}
	return groups
}

// classify converts a raw regex match into a TokenType for the given
// category, or nil if the match should be dropped (e.g. an unknown
// currency per spec.md §4.1, or a comment, which is UI-only).
func classify(category, match string, groups map[string]string, language string, cfg *config.Config) *token.TokenType {
	switch category {
	case config.CategoryComment:
		return nil
	case config.CategoryMoney:
		return classifyMoney(groups, cfg)
	case config.CategoryPercent:
		return classifyPercent(match)
	case config.CategoryTime:
		return classifyTime(match)
	case config.CategoryTimezone:
		return classifyTimezone(match)
	case config.CategoryNumber:
		return classifyNumber(match)
	case config.CategoryText:
		tt := token.Text(match)
		return &tt
	case config.CategoryWhitespace:
		tt := token.Whitespace()
		return &tt
	case config.CategoryOperator:
		tt := token.Op(match[0])
		return &tt
	case config.CategoryAtom:
		return classifyAtom(match)
	case config.CategoryField:
		return nil
	default:
		return nil
	}
}

func classifyMoney(groups map[string]string, cfg *config.Config) *token.TokenType {
	priceStr, ok := groups["PRICE"]
	if !ok {
		return nil
	}
	currencyWord, ok := groups["CURRENCY"]
	if !ok {
		return nil
	}
	code, ok := cfg.CurrencyCode(strings.ToLower(currencyWord))
	if !ok {
		return nil // unknown currency: reject, falls back to text (§4.1)
	}
	d, err := parseDecimal(priceStr)
	if err != nil {
		return nil
	}
	tt := token.Money(value.NewMoney(d, value.CurrencyRef{Code: code, Symbol: currencyWord}))
	return &tt
}

func classifyPercent(match string) *token.TokenType {
	numPart := strings.TrimRight(strings.TrimSpace(match), "%")
	numPart = strings.TrimSpace(numPart)
	d, err := parseDecimal(numPart)
	if err != nil {
		return nil
	}
	tt := token.Percent(value.NewPercent(d))
	return &tt
}

func classifyTime(match string) *token.TokenType {
	s := strings.TrimSpace(match)
	lower := strings.ToLower(s)
	pm := strings.HasSuffix(lower, "pm")
	am := strings.HasSuffix(lower, "am")
	if pm || am {
		s = strings.TrimSpace(s[:len(s)-2])
	}
	parts := strings.Split(s, ":")
	hour, _ := strconv.Atoi(parts[0])
	minute := 0
	second := 0
	if len(parts) > 1 {
		minute, _ = strconv.Atoi(parts[1])
	}
	if len(parts) > 2 {
		second, _ = strconv.Atoi(parts[2])
	}
	// spec.md §4.1: "pm adds 12 to the hour" — applied literally, including
	// the documented "12:00 pm" → hour 24 quirk (see §9).
	if pm {
		hour += 12
	}
	tt := token.TimeOf(&value.Time{SecondsSinceMidnight: int64(hour)*3600 + int64(minute)*60 + int64(second)})
	return &tt
}

func classifyTimezone(match string) *token.TokenType {
	s := strings.TrimSpace(match)
	name := s
	offsetMinutes := int16(0)
	for i, r := range s {
		if r == '+' || r == '-' {
			name = s[:i]
			offsetStr := s[i:]
			offsetMinutes = parseOffset(offsetStr)
			break
		}
	}
	tt := token.TimezoneOf(value.NewTimezone(strings.ToUpper(name), offsetMinutes))
	return &tt
}

func parseOffset(s string) int16 {
	sign := int16(1)
	if strings.HasPrefix(s, "-") {
		sign = -1
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "+"), "-")
	parts := strings.Split(s, ":")
	hours, _ := strconv.Atoi(parts[0])
	minutes := 0
	if len(parts) > 1 {
		minutes, _ = strconv.Atoi(parts[1])
	}
	return sign * int16(hours*60+minutes)
}

// numberMultipliers implements spec.md §8's "2k" → 2000 .. "8Y" → 8e21
// scenario: a trailing magnitude suffix multiplies the parsed number.
var numberMultipliers = map[byte]string{
	'k': "1000", 'K': "1000",
	'm': "1000000", 'M': "1000000",
	'b': "1000000000", 'B': "1000000000",
	't': "1000000000000", 'T': "1000000000000",
	'y': "1000000000000000000000", 'Y': "1000000000000000000000",
}

func classifyNumber(match string) *token.TokenType {
	trimmed := strings.TrimSpace(match)
	if n := len(trimmed); n > 0 {
		last := trimmed[n-1]
		if factorStr, ok := numberMultipliers[last]; ok {
			numPart := strings.TrimSpace(trimmed[:n-1])
			d, err := parseDecimal(numPart)
			if err != nil {
				return nil
			}
			factor, _ := decimal.NewFromString(factorStr)
			tt := token.Number(value.NewNumber(d.Mul(factor)))
			return &tt
		}
	}
	d, err := parseDecimal(trimmed)
	if err != nil {
		return nil
	}
	tt := token.Number(value.NewNumber(d))
	return &tt
}

func classifyAtom(match string) *token.TokenType {
	if strings.HasPrefix(match, "month:") {
		n, err := strconv.Atoi(strings.TrimPrefix(match, "month:"))
		if err != nil {
			return nil
		}
		tt := token.MonthOf(value.NewMonth(n))
		return &tt
	}
	if len(match) == 1 {
		switch match[0] {
		// "percent" aliases to the canonical atom '%', which re-tokenizes
		// to Operator('%') (spec.md §4.2), not a Percent literal — a bare
		// '%' carries no magnitude of its own.
		case '+', '-', '*', '/', '=', '(', '%':
			tt := token.Op(match[0])
			return &tt
		}
	}
	return nil
}

// parseDecimal strips thousands separators (comma, underscore, apostrophe)
// per spec.md §4.1 ("canonical parse strips thousands separators") and
// normalizes a comma decimal separator to '.'.
func parseDecimal(s string) (decimal.Decimal, error) {
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		if i := strings.IndexByte(s, ','); len(s)-i-1 >= 1 && len(s)-i-1 <= 2 {
			s = s[:i] + "." + s[i+1:]
		}
	}
	cleaned := stripThousands(s)
	return decimal.NewFromString(cleaned)
}

func stripThousands(s string) string {
	var b strings.Builder
	// A comma is a thousands separator unless it is the sole fractional
	// separator (no '.' present and exactly one comma followed by 1-2
	// digits at the end); parseDecimal turns that case into '.' before
	// calling here, so every ',', '_' and '\'' left is dropped and '.'
	// is the decimal point.
	for _, r := range s {
		switch r {
		case ',', '_', '\'':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
