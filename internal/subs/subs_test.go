package subs_test

import (
	"testing"

	"github.com/novalang/typecore/internal/subs"
)

func TestUnionIsIdempotent(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.UnnamedFlex())
	b := s.Fresh(subs.UnnamedFlex())

	s.Union(a, b, subs.Descriptor{Content: subs.RigidVar{Name: "a"}, Rank: subs.NoRank})
	if !s.Equivalent(a, b) {
		t.Fatalf("a and b should be equivalent after Union")
	}

	// Re-unioning an already-merged pair still installs the new content.
	s.Union(a, b, subs.Descriptor{Content: subs.RigidVar{Name: "a2"}, Rank: subs.NoRank})
	got := s.Get(a).Content.(subs.RigidVar)
	if got.Name != "a2" {
		t.Fatalf("expected re-union to overwrite content, got %q", got.Name)
	}
}

func TestUnionOrderDoesNotAffectResult(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.UnnamedFlex())
	b := s.Fresh(subs.UnnamedFlex())

	s.Union(b, a, subs.Descriptor{Content: subs.RigidVar{Name: "x"}, Rank: subs.NoRank})
	if !s.Equivalent(a, b) {
		t.Fatalf("expected a and b equivalent regardless of Union argument order")
	}
	if got := s.Get(a).Content.(subs.RigidVar).Name; got != "x" {
		t.Fatalf("Get(a).Content = %q, want %q", got, "x")
	}
	if got := s.Get(b).Content.(subs.RigidVar).Name; got != "x" {
		t.Fatalf("Get(b).Content = %q, want %q", got, "x")
	}
}

func TestRollbackUndoesUnionsAndFreshVars(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.UnnamedFlex())
	b := s.Fresh(subs.UnnamedFlex())

	snap := s.TakeSnapshot()
	s.Union(a, b, subs.Descriptor{Content: subs.RigidVar{Name: "x"}, Rank: subs.NoRank})
	c := s.Fresh(subs.UnnamedFlex())
	_ = c

	s.RollbackTo(snap)

	if s.Equivalent(a, b) {
		t.Fatalf("rollback should have undone the union")
	}
	if _, ok := s.Get(a).Content.(subs.FlexVar); !ok {
		t.Fatalf("rollback should have restored a's original content")
	}
}

func TestCommitSnapshotKeepsEdits(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.UnnamedFlex())
	b := s.Fresh(subs.UnnamedFlex())

	outer := s.TakeSnapshot()
	inner := s.TakeSnapshot()
	s.Union(a, b, subs.Descriptor{Content: subs.FlexVar{}, Rank: subs.NoRank})
	s.CommitSnapshot(inner)

	if !s.Equivalent(a, b) {
		t.Fatalf("commit should preserve the union")
	}

	s.RollbackTo(outer)
	if s.Equivalent(a, b) {
		t.Fatalf("an outer rollback should still undo a committed inner snapshot's edits")
	}
}

func TestVarsSinceSnapshot(t *testing.T) {
	s := subs.New()
	s.Fresh(subs.UnnamedFlex())
	snap := s.TakeSnapshot()
	b := s.Fresh(subs.UnnamedFlex())
	c := s.Fresh(subs.UnnamedFlex())

	got := s.VarsSinceSnapshot(snap)
	if len(got) != 2 || got[0] != b || got[1] != c {
		t.Fatalf("VarsSinceSnapshot = %v, want [%d %d]", got, b, c)
	}
}

func TestPackedVariableSlice(t *testing.T) {
	s := subs.New()
	v1 := s.Fresh(subs.UnnamedFlex())
	v2 := s.Fresh(subs.UnnamedFlex())

	sl := s.PushVariables([]subs.Variable{v1, v2})
	got := s.VariableSlice(sl)
	if len(got) != 2 || got[0] != v1 || got[1] != v2 {
		t.Fatalf("VariableSlice = %v, want [%d %d]", got, v1, v2)
	}
}
