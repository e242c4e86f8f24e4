// Package parser implements the precedence-climbing recursive-descent
// parser of spec.md §4.5, turning the normalized token stream into an
// ast.Node:
//
//	line       := assignment | add_sub
//	assignment := Variable '=' add_sub
//	add_sub    := mul_div (('+'|'-') mul_div)*
//	mul_div    := unary (('*'|'/') unary)*
//	unary      := ('+'|'-')? primary
//	primary    := Number | Percent | Money | Time | Date | Duration | Month
//	            | Timezone | Variable | '(' add_sub ')'
package parser

import (
	"github.com/smartcalc/go-smartcalc/ast"
	"github.com/smartcalc/go-smartcalc/errs"
	"github.com/smartcalc/go-smartcalc/token"
)

type parser struct {
	tokens []*token.Info
	pos    int
}

// Parse consumes the full normalized token stream for one line and
// returns its AST, or a *errs.Error on a syntax error.
func Parse(tokens []*token.Info) (ast.Node, error) {
	p := &parser{tokens: tokens}
	if p.atEnd() {
		return ast.None{}, nil
	}

	node, err := p.parseLine()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, errs.Parse(p.peek().Start, "syntax error: unexpected trailing token")
	}
	return node, nil
}

func (p *parser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *parser) peek() *token.Info {
	if p.atEnd() {
		return nil
	}
	return p.tokens[p.pos]
}

func (p *parser) advance() *token.Info {
	info := p.tokens[p.pos]
	p.pos++
	return info
}

func (p *parser) isOperator(b byte) bool {
	info := p.peek()
	return info != nil && info.TokenType != nil && info.TokenType.Kind == token.KindOperator && info.TokenType.Operator == b
}

// parseLine implements `line := assignment | add_sub`. An assignment is
// recognized by lookahead: Variable immediately followed by '='.
func (p *parser) parseLine() (ast.Node, error) {
	if p.peek() != nil && p.peek().TokenType.Kind == token.KindVariable &&
		p.pos+1 < len(p.tokens) && isAssignToken(p.tokens[p.pos+1]) {
		target := p.advance()
		eq := p.advance()
		value, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{
			Target: target.TokenType.Variable,
			Value:  value,
			Range:  ast.Range{Start: ast.Position{Index: target.Start}, End: ast.Position{Index: eq.End}},
		}, nil
	}
	return p.parseAddSub()
}

func isAssignToken(info *token.Info) bool {
	return info.TokenType != nil && info.TokenType.Kind == token.KindOperator && info.TokenType.Operator == '='
}

func (p *parser) parseAddSub() (ast.Node, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.isOperator('+') || p.isOperator('-') {
		op := p.advance().TokenType.Operator
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Operator: op, Left: left, Right: right,
			Range: ast.Range{Start: left.GetRange().Start, End: right.GetRange().End},
		}
	}
	return left, nil
}

func (p *parser) parseMulDiv() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.isOperator('*') || p.isOperator('/') {
		op := p.advance().TokenType.Operator
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{
			Operator: op, Left: left, Right: right,
			Range: ast.Range{Start: left.GetRange().Start, End: right.GetRange().End},
		}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Node, error) {
	if p.isOperator('+') || p.isOperator('-') {
		opInfo := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.PrefixUnary{
			Operator: opInfo.TokenType.Operator, Operand: operand,
			Range: ast.Range{Start: ast.Position{Index: opInfo.Start}, End: operand.GetRange().End},
		}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (ast.Node, error) {
	info := p.peek()
	if info == nil {
		return nil, errs.Parse(-1, "syntax error: unexpected end of input")
	}

	if p.isOperator('(') {
		open := p.advance()
		inner, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		if !p.isOperator(')') {
			idx := open.End
			if p.peek() != nil {
				idx = p.peek().Start
			}
			return nil, errs.Parse(idx, "syntax error: expected ')'")
		}
		p.advance()
		return inner, nil
	}

	switch info.TokenType.Kind {
	case token.KindNumber, token.KindPercent, token.KindMoney, token.KindTime,
		token.KindDate, token.KindDuration, token.KindMonth, token.KindTimezone:
		p.advance()
		return &ast.Literal{
			Value: info.TokenType.Value,
			Range: ast.Range{Start: ast.Position{Index: info.Start}, End: ast.Position{Index: info.End}},
		}, nil
	case token.KindVariable:
		p.advance()
		return &ast.VariableRef{
			Variable: info.TokenType.Variable,
			Range:    ast.Range{Start: ast.Position{Index: info.Start}, End: ast.Position{Index: info.End}},
		}, nil
	default:
		return nil, errs.Parse(info.Start, "syntax error: unexpected token")
	}
}
