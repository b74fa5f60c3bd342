package unify_test

import (
	"testing"

	"github.com/novalang/typecore/internal/subs"
	"github.com/novalang/typecore/internal/unify"
)

func TestUnifyFuncOrTagUnionWithFunc(t *testing.T) {
	s := subs.New()

	arg := mkInt(s)
	ret := freshFlex(s)
	ext := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyTagUnion{}}, Rank: subs.NoRank})
	closure := s.Fresh(subs.UnnamedFlex())

	fot := s.Fresh(subs.Descriptor{
		Content: subs.Structure{Flat: subs.FunctionOrTagUnion{Tag: "Some", Symbol: "Some", Ext: ext}},
		Rank:    subs.NoRank,
	})
	fn := s.Fresh(subs.Descriptor{
		Content: subs.Structure{Flat: subs.Func{Args: []subs.Variable{arg}, Closure: closure, Ret: ret}},
		Rank:    subs.NoRank,
	})

	result := unify.Unify(s, fot, fn, unify.EQ)
	if !result.Ok() {
		t.Fatalf("expected a FunctionOrTagUnion to unify against a matching Func, got %+v", result.Unmet)
	}
	flat := s.Get(fot).Content.(subs.Structure).Flat
	if _, ok := flat.(subs.Func); !ok {
		t.Fatalf("expected the merged content to settle to Func, got %T", flat)
	}
}

func TestUnifyFuncOrTagUnionPairSameTag(t *testing.T) {
	s := subs.New()

	ext1 := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyTagUnion{}}, Rank: subs.NoRank})
	ext2 := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyTagUnion{}}, Rank: subs.NoRank})

	a := s.Fresh(subs.Descriptor{
		Content: subs.Structure{Flat: subs.FunctionOrTagUnion{Tag: "None", Symbol: "None", Ext: ext1}},
		Rank:    subs.NoRank,
	})
	b := s.Fresh(subs.Descriptor{
		Content: subs.Structure{Flat: subs.FunctionOrTagUnion{Tag: "None", Symbol: "None", Ext: ext2}},
		Rank:    subs.NoRank,
	})

	result := unify.Unify(s, a, b, unify.EQ)
	if !result.Ok() {
		t.Fatalf("expected two FunctionOrTagUnions with the same tag to unify, got %+v", result.Unmet)
	}
}

func TestUnifyFuncOrTagUnionPairDifferentTagBecomesTagUnion(t *testing.T) {
	s := subs.New()

	ext1 := freshFlex(s)
	ext2 := freshFlex(s)

	a := s.Fresh(subs.Descriptor{
		Content: subs.Structure{Flat: subs.FunctionOrTagUnion{Tag: "Some", Symbol: "Some", Ext: ext1}},
		Rank:    subs.NoRank,
	})
	b := s.Fresh(subs.Descriptor{
		Content: subs.Structure{Flat: subs.FunctionOrTagUnion{Tag: "None", Symbol: "None", Ext: ext2}},
		Rank:    subs.NoRank,
	})

	result := unify.Unify(s, a, b, unify.EQ)
	if !result.Ok() {
		t.Fatalf("expected differently-tagged FunctionOrTagUnions to merge as a two-tag union, got %+v", result.Unmet)
	}
	flat := s.Get(a).Content.(subs.Structure).Flat
	tu, ok := flat.(subs.TagUnion)
	if !ok {
		t.Fatalf("expected the merged content to become a TagUnion, got %T", flat)
	}
	if _, ok := tu.Tags["Some"]; !ok {
		t.Fatalf("expected Some among the combined tags, got %v", tu.Tags)
	}
	if _, ok := tu.Tags["None"]; !ok {
		t.Fatalf("expected None among the combined tags, got %v", tu.Tags)
	}
}
