// Package smartcalc wires the full line-evaluation pipeline described in
// spec.md: tokenize → resolve aliases → rewrite rules to a fixed point →
// normalize → parse → interpret. Execute is the single entry point, used
// by the CLI (cmd/smartcalc) and any embedding host.
package smartcalc

import (
	"strings"

	"github.com/smartcalc/go-smartcalc/aliasresolve"
	"github.com/smartcalc/go-smartcalc/ast"
	"github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/errs"
	"github.com/smartcalc/go-smartcalc/interpreter"
	"github.com/smartcalc/go-smartcalc/normalizer"
	"github.com/smartcalc/go-smartcalc/parser"
	"github.com/smartcalc/go-smartcalc/rewriter"
	"github.com/smartcalc/go-smartcalc/session"
	"github.com/smartcalc/go-smartcalc/token"
	"github.com/smartcalc/go-smartcalc/tokenizer"
	"github.com/smartcalc/go-smartcalc/value"
)

// Version is the module's release version, surfaced by the CLI's
// `version` subcommand.
const Version = "0.1.0"

// LineResult is one input line's outcome: its original (pre-rewrite)
// tokens for UI rendering, the typed AST value produced, and an error if
// evaluation failed at any stage.
type LineResult struct {
	Tokens []*token.Info
	UI     []tokenizer.UiToken
	Value  value.Value
	AST    ast.Node
	Err    error
}

// Execute evaluates every line of input in order against a fresh Session,
// per spec.md §4.7 and §6. Variables persist across lines within this
// call; an error on one line never aborts subsequent lines.
func Execute(language, input string, cfg *config.Config) []LineResult {
	if cfg == nil {
		cfg = config.Default()
	}
	sess := session.New()

	lines := strings.Split(input, "\n")
	results := make([]LineResult, 0, len(lines))

	for i, line := range lines {
		result := executeLine(line, language, cfg, sess)
		if e, ok := result.Err.(*errs.Error); ok {
			result.Err = e.WithLine(i + 1)
		}
		sess.AppendAST(astOrNone(result.AST))
		results = append(results, result)
	}
	return results
}

func astOrNone(node ast.Node) ast.Node {
	if node == nil {
		return ast.None{}
	}
	return node
}

func executeLine(line, language string, cfg *config.Config, sess *session.Session) LineResult {
	if strings.TrimSpace(line) == "" {
		return LineResult{AST: ast.None{}}
	}

	infos, uiTokens := tokenizer.Tokenize(line, language, cfg)
	original := make([]*token.Info, len(infos))
	for i, info := range infos {
		cp := *info
		original[i] = &cp
	}

	aliasresolve.Resolve(infos, language, cfg)
	infos = rewriter.Run(infos, language, cfg)

	normalized := normalizer.Normalize(infos, sess)

	node, err := parser.Parse(normalized)
	if err != nil {
		return LineResult{Tokens: original, UI: uiTokens, AST: ast.None{}, Err: err}
	}

	result, err := interpreter.Eval(node, cfg)
	if err != nil {
		return LineResult{Tokens: original, UI: uiTokens, AST: ast.None{}, Err: err}
	}

	return LineResult{Tokens: original, UI: uiTokens, Value: result, AST: node}
}
