package subs_test

import (
	"testing"

	"github.com/novalang/typecore/internal/subs"
)

func TestOccursDetectsDirectCycle(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.UnnamedFlex())
	b := s.Fresh(subs.UnnamedFlex())

	// a = Struct(b), b = Struct(a): a directly reaches itself.
	s.Set(a, subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{b}}}, Rank: subs.NoRank})
	s.Set(b, subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{a}}}, Rank: subs.NoRank})

	if err := s.Occurs(a); err == nil {
		t.Fatalf("expected an occurs-check failure for a direct cycle")
	}
}

func TestOccursAllowsPromotedRecursion(t *testing.T) {
	s := subs.New()
	union := s.Fresh(subs.UnnamedFlex())
	ext := s.Fresh(subs.UnnamedFlex())

	payload := s.Fresh(subs.UnnamedFlex())
	s.Set(union, subs.Descriptor{
		Content: subs.Structure{Flat: subs.TagUnion{Tags: map[string][]subs.Variable{"Cons": {payload, union}}, Ext: ext}},
		Rank:    subs.NoRank,
	})

	rec := s.MarkTagUnionRecursive(union, map[string][]subs.Variable{"Cons": {payload, union}}, ext)

	if err := s.Occurs(union); err != nil {
		t.Fatalf("a properly promoted recursive tag union must not fail the occurs-check: %v", err)
	}
	if _, ok := s.Get(rec).Content.(subs.RecursionVar); !ok {
		t.Fatalf("MarkTagUnionRecursive must mint a RecursionVar")
	}
	rtu, ok := s.Get(union).Content.(subs.Structure).Flat.(subs.RecursiveTagUnion)
	if !ok {
		t.Fatalf("union's content must become a RecursiveTagUnion")
	}
	if rtu.Tags["Cons"][1] != rec {
		t.Fatalf("the self-reference must be substituted with the minted RecursionVar")
	}
}

func TestOccursIgnoresNonCyclicStructure(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.UnnamedFlex())
	b := s.Fresh(subs.UnnamedFlex())
	c := s.Fresh(subs.UnnamedFlex())

	s.Set(b, subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{c}}}, Rank: subs.NoRank})
	s.Set(a, subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{b}}}, Rank: subs.NoRank})

	if err := s.Occurs(a); err != nil {
		t.Fatalf("a non-cyclic chain must not fail the occurs-check: %v", err)
	}
}

func TestOccursDetectsMutualCycle(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.UnnamedFlex())
	b := s.Fresh(subs.UnnamedFlex())
	c := s.Fresh(subs.UnnamedFlex())

	s.Set(a, subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{b}}}, Rank: subs.NoRank})
	s.Set(b, subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{c}}}, Rank: subs.NoRank})
	s.Set(c, subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{a}}}, Rank: subs.NoRank})

	if err := s.Occurs(a); err == nil {
		t.Fatalf("expected an occurs-check failure for a 3-variable cycle")
	}
}
