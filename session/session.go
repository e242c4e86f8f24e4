// Package session implements the per-execute-call mutable state described
// in spec.md §3/§4.7: an append-only variable list (stable identity by
// index) and one AST slot per processed line.
package session

import (
	"github.com/google/uuid"

	"github.com/smartcalc/go-smartcalc/ast"
)

// Session holds state for one execute() call. Variables defined on an
// earlier line are visible to later lines within the same Session; a
// Session never outlives the call that created it unless the caller
// retains it (spec.md §5).
type Session struct {
	// ID uniquely identifies this session, useful for correlating a run
	// across an embedding host's logs.
	ID uuid.UUID

	variables []*ast.Variable
	byName    map[string]*ast.Variable
	asts      []ast.Node
}

// New creates an empty Session.
func New() *Session {
	return &Session{
		ID:     uuid.New(),
		byName: make(map[string]*ast.Variable),
	}
}

// Variable returns the existing variable named name, allocating a new one
// (with a stable, append-only index) if it doesn't exist yet.
func (s *Session) Variable(name string) *ast.Variable {
	if v, ok := s.byName[name]; ok {
		return v
	}
	v := &ast.Variable{Name: name, Index: len(s.variables)}
	s.variables = append(s.variables, v)
	s.byName[name] = v
	return v
}

// LookupVariable returns the variable named name if one has already been
// defined or referenced in this session.
func (s *Session) LookupVariable(name string) (*ast.Variable, bool) {
	v, ok := s.byName[name]
	return v, ok
}

// Variables returns the append-only variable list in definition order.
func (s *Session) Variables() []*ast.Variable {
	return s.variables
}

// AppendAST records the AST produced for the next line (or ast.None{} on a
// failing line), preserving line order.
func (s *Session) AppendAST(node ast.Node) {
	s.asts = append(s.asts, node)
}

// ASTs returns one AST per processed line, in line order.
func (s *Session) ASTs() []ast.Node {
	return s.asts
}
