// Package ast defines the SmartCalc expression tree and the shared-mutable
// variable cell that lets an assignment on one line be visible to later
// lines in the same session.
package ast

import (
	"fmt"

	"github.com/smartcalc/go-smartcalc/value"
)

// Position is a character-indexed location in the source line.
type Position struct {
	Index int
}

// Range is a half-open [Start, End) character span.
type Range struct {
	Start Position
	End   Position
}

func (r Range) String() string {
	return fmt.Sprintf("%d:%d", r.Start.Index, r.End.Index)
}

// Node is the interface every AST variant implements.
type Node interface {
	String() string
	GetRange() Range
}

// Literal wraps any typed value.Value as a leaf AST node. Number, Percent,
// Money, Time, Date, Duration and Month literals all take this shape;
// spec.md §3 lists them as distinct AST variants, which Kind() preserves.
type Literal struct {
	Value value.Value
	Range Range
}

func (l *Literal) String() string    { return fmt.Sprintf("Literal(%s)", l.Value.String()) }
func (l *Literal) GetRange() Range   { return l.Range }
func (l *Literal) Kind() value.Kind  { return l.Value.Kind() }

// Variable is a named, shared-mutable binding. Identity is by pointer:
// the session allocates one Variable per distinct name and every reference
// to that name, on any line, shares the same *Variable. Cell holds the
// latest assigned AST value (nil before any assignment).
type Variable struct {
	Name  string
	Index int
	Cell  Node
}

// VariableRef is an AST node that reads a Variable's current cell contents.
type VariableRef struct {
	Variable *Variable
	Range    Range
}

func (v *VariableRef) String() string  { return fmt.Sprintf("Variable(%q)", v.Variable.Name) }
func (v *VariableRef) GetRange() Range { return v.Range }

// Assignment evaluates Value and stores the result in Target's cell.
type Assignment struct {
	Target *Variable
	Value  Node
	Range  Range
}

func (a *Assignment) String() string  { return fmt.Sprintf("Assignment(%q, %s)", a.Target.Name, a.Value) }
func (a *Assignment) GetRange() Range { return a.Range }

// Binary is a left-associative binary operation: + - * /.
type Binary struct {
	Operator byte
	Left     Node
	Right    Node
	Range    Range
}

func (b *Binary) String() string {
	return fmt.Sprintf("Binary(%q, %s, %s)", string(b.Operator), b.Left, b.Right)
}
func (b *Binary) GetRange() Range { return b.Range }

// PrefixUnary is a unary + or - applied to an operand.
type PrefixUnary struct {
	Operator byte
	Operand  Node
	Range    Range
}

func (u *PrefixUnary) String() string  { return fmt.Sprintf("PrefixUnary(%q, %s)", string(u.Operator), u.Operand) }
func (u *PrefixUnary) GetRange() Range { return u.Range }

// None represents the absence of a value, e.g. an empty line's result.
type None struct{}

func (n None) String() string  { return "None" }
func (n None) GetRange() Range { return Range{} }
