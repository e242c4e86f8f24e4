// Package aliasresolve implements the alias & atom resolver of spec.md
// §4.2: each token's original text is matched against the language's
// alias regex table; a match is re-tokenized through the atom regex set
// and, on exactly one atom, replaces the token's type in place.
package aliasresolve

import (
	"log/slog"
	"strings"

	"github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/token"
	"github.com/smartcalc/go-smartcalc/tokenizer"
)

// Resolve rewrites every active TokenInfo in place: if its lowercased
// original text matches an alias, the alias's replacement is re-tokenized
// through the atom regex set and, on exactly one atom, the token's type is
// replaced; on zero atoms, it becomes Text(replacement); on more than one,
// the original token is left unchanged and a warning is logged.
func Resolve(infos []*token.Info, language string, cfg *config.Config) {
	aliases := cfg.AliasRegex[language]
	for _, info := range infos {
		if info.Status == token.Removed {
			continue
		}
		lowered := strings.ToLower(info.OriginalText)
		for _, alias := range aliases {
			if !alias.Pattern.MatchString(lowered) {
				continue
			}
			atoms := tokenizer.ReTokenizeAtom(alias.Replacement, cfg)
			switch len(atoms) {
			case 0:
				tt := token.Text(alias.Replacement)
				info.TokenType = &tt
			case 1:
				info.TokenType = atoms[0]
			default:
				slog.Default().Warn("aliasresolve: ambiguous atom expansion",
					"original", info.OriginalText, "replacement", alias.Replacement, "atoms", len(atoms))
			}
			break
		}
	}
}
