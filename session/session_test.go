package session

import "testing"

func TestVariableAllocatesOnce(t *testing.T) {
	s := New()
	a := s.Variable("x")
	b := s.Variable("x")
	if a != b {
		t.Error("Variable(name) should return the same pointer for repeated calls")
	}
	if a.Index != 0 {
		t.Errorf("first variable Index = %d, want 0", a.Index)
	}

	c := s.Variable("y")
	if c.Index != 1 {
		t.Errorf("second distinct variable Index = %d, want 1", c.Index)
	}
	if len(s.Variables()) != 2 {
		t.Errorf("Variables() length = %d, want 2", len(s.Variables()))
	}
}

func TestLookupVariable(t *testing.T) {
	s := New()
	if _, ok := s.LookupVariable("missing"); ok {
		t.Error("LookupVariable should report false for an unknown name")
	}

	s.Variable("erhan")
	v, ok := s.LookupVariable("erhan")
	if !ok || v.Name != "erhan" {
		t.Errorf("LookupVariable(erhan) = (%v, %v), want a variable named erhan", v, ok)
	}
}

func TestLookupVariableDoesNotAllocate(t *testing.T) {
	s := New()
	s.LookupVariable("never-defined")
	if len(s.Variables()) != 0 {
		t.Error("LookupVariable must not allocate a new variable as a side effect")
	}
}

func TestAppendASTPreservesOrder(t *testing.T) {
	s := New()
	s.AppendAST(nil)
	s.AppendAST(nil)
	if len(s.ASTs()) != 2 {
		t.Errorf("ASTs() length = %d, want 2", len(s.ASTs()))
	}
}

func TestNewGivesEachSessionAUniqueID(t *testing.T) {
	a := New()
	b := New()
	if a.ID == b.ID {
		t.Error("two Sessions should not share an ID")
	}
}
