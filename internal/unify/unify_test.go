package unify_test

import (
	"testing"

	"github.com/novalang/typecore/internal/subs"
	"github.com/novalang/typecore/internal/unify"
)

func freshFlex(s *subs.Subs) subs.Variable {
	return s.Fresh(subs.UnnamedFlex())
}

func TestUnifyIsIdempotentOnSameClass(t *testing.T) {
	s := subs.New()
	a := freshFlex(s)

	result := unify.Unify(s, a, a, unify.EQ)
	if !result.Ok() {
		t.Fatalf("expected unifying a variable with itself to succeed")
	}
	if len(result.Touched) != 0 {
		t.Fatalf("expected no touched variables for the no-op case, got %v", result.Touched)
	}
}

func TestUnifyFlexFlexMerges(t *testing.T) {
	s := subs.New()
	a := freshFlex(s)
	b := freshFlex(s)

	result := unify.Unify(s, a, b, unify.EQ)
	if !result.Ok() {
		t.Fatalf("flex-flex unification should succeed")
	}
	if !s.Equivalent(a, b) {
		t.Fatalf("expected a and b to be merged")
	}
}

func TestUnifyRigidRigidMismatch(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.Descriptor{Content: subs.RigidVar{Name: "a"}, Rank: subs.NoRank})
	b := s.Fresh(subs.Descriptor{Content: subs.RigidVar{Name: "b"}, Rank: subs.NoRank})

	result := unify.Unify(s, a, b, unify.EQ)
	if result.Ok() {
		t.Fatalf("expected distinct rigid variables to fail to unify")
	}
	if _, ok := s.Get(a).Content.(subs.Error); !ok {
		t.Fatalf("a failed unification must still union both sides to Error")
	}
}

func TestUnifyRigidAsFlexAllowsRigidRigid(t *testing.T) {
	s := subs.New()
	a := s.Fresh(subs.Descriptor{Content: subs.RigidVar{Name: "a"}, Rank: subs.NoRank})
	b := s.Fresh(subs.Descriptor{Content: subs.RigidVar{Name: "b"}, Rank: subs.NoRank})

	result := unify.Unify(s, a, b, unify.EQ.WithRigidAsFlex())
	if !result.Ok() {
		t.Fatalf("RigidAsFlex should allow two distinct rigid vars to unify")
	}
}

func TestUnifyFlexAbleObligation(t *testing.T) {
	s := subs.New()
	able := s.Fresh(subs.Descriptor{Content: subs.FlexAbleVar{Ability: "Eq"}, Rank: subs.NoRank})
	concrete := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Int"}}, Rank: subs.NoRank})

	result := unify.Unify(s, able, concrete, unify.EQ)
	if !result.Ok() {
		t.Fatalf("a FlexAbleVar against a concrete type should succeed with an obligation")
	}
	if len(result.Obligations) != 1 || result.Obligations[0].Ability != "Eq" {
		t.Fatalf("expected one Eq obligation, got %v", result.Obligations)
	}
}

func TestUnifyBadTypeOnUnrenderableCycle(t *testing.T) {
	s := subs.New()

	// A self-referential Apply: Occurs never mediates this kind of cycle
	// through a RecursionVar the way it does for TagUnion, so it is the
	// pathological shape spec.md §7 calls out for BadType.
	a := s.Fresh(subs.UnnamedFlex())
	s.Set(a, subs.Descriptor{
		Content: subs.Structure{Flat: subs.Apply{Symbol: "Box", Args: []subs.Variable{a}}},
		Rank:    subs.NoRank,
	})
	b := s.Fresh(subs.Descriptor{Content: subs.RigidVar{Name: "b"}, Rank: subs.NoRank})

	result := unify.Unify(s, a, b, unify.EQ)
	if result.Kind != unify.UnifiedBadType {
		t.Fatalf("expected a failed unify over an unrenderable cycle to report BadType, got %v (%+v)", result.Kind, result)
	}
	if result.Problem == nil {
		t.Fatalf("expected a BadTypeError to be attached to the BadType result")
	}
}

func TestUnifyRecordSharedFieldLattice(t *testing.T) {
	s := subs.New()

	mkRecord := func(kind subs.FieldKind) subs.Variable {
		fieldVar := freshFlex(s)
		ext := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyRecord{}}, Rank: subs.NoRank})
		return s.Fresh(subs.Descriptor{
			Content: subs.Structure{Flat: subs.Record{
				Fields: map[string]subs.Field{"x": {Kind: kind, Var: fieldVar}},
				Ext:    ext,
			}},
			Rank: subs.NoRank,
		})
	}

	cases := []struct {
		a, b subs.FieldKind
		want subs.FieldKind
		fail bool
	}{
		{subs.FieldOptional, subs.FieldOptional, subs.FieldOptional, false},
		{subs.FieldOptional, subs.FieldRequired, subs.FieldRequired, false},
		{subs.FieldRequired, subs.FieldOptional, subs.FieldRequired, false},
		{subs.FieldRequired, subs.FieldRequired, subs.FieldRequired, false},
		{subs.FieldRequired, subs.FieldDemanded, subs.FieldDemanded, false},
		{subs.FieldDemanded, subs.FieldRequired, subs.FieldDemanded, false},
		{subs.FieldDemanded, subs.FieldDemanded, subs.FieldDemanded, false},
		{subs.FieldOptional, subs.FieldDemanded, subs.FieldDemanded, true},
		{subs.FieldDemanded, subs.FieldOptional, subs.FieldDemanded, true},
	}

	for _, tc := range cases {
		a := mkRecord(tc.a)
		b := mkRecord(tc.b)
		result := unify.Unify(s, a, b, unify.EQ)
		if tc.fail {
			if result.Ok() {
				t.Errorf("%v x %v: expected Demanded x Optional to be reported as a mismatch", tc.a, tc.b)
			}
			continue
		}
		if !result.Ok() {
			t.Errorf("%v x %v: expected success, got failure %+v", tc.a, tc.b, result.Unmet)
			continue
		}
		got := s.Get(a).Content.(subs.Structure).Flat.(subs.Record).Fields["x"].Kind
		if got != tc.want {
			t.Errorf("%v x %v: combined kind = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestUnifyAllOptionalRecordClosesAgainstEmptyRecord(t *testing.T) {
	s := subs.New()

	fieldVar := freshFlex(s)
	ext := freshFlex(s)
	rec := s.Fresh(subs.Descriptor{
		Content: subs.Structure{Flat: subs.Record{
			Fields: map[string]subs.Field{"x": {Kind: subs.FieldOptional, Var: fieldVar}},
			Ext:    ext,
		}},
		Rank: subs.NoRank,
	})
	empty := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyRecord{}}, Rank: subs.NoRank})

	result := unify.Unify(s, rec, empty, unify.EQ)
	if !result.Ok() {
		t.Fatalf("expected an all-optional record to unify against EmptyRecord, got %+v", result.Unmet)
	}
	if !s.Equivalent(rec, empty) {
		t.Fatalf("expected rec and empty to be merged into one equivalence class")
	}

	extContent := s.Get(ext).Content
	if _, ok := extContent.(subs.Structure); !ok {
		t.Fatalf("expected the record's ext to be closed to EmptyRecord, got %T", extContent)
	} else if _, ok := extContent.(subs.Structure).Flat.(subs.EmptyRecord); !ok {
		t.Fatalf("expected the record's ext to be closed to EmptyRecord, got %+v", extContent)
	}
}

func TestUnifyTagUnionPromotesRecursion(t *testing.T) {
	s := subs.New()

	payload := freshFlex(s)
	ext1 := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyTagUnion{}}, Rank: subs.NoRank})
	list1 := s.Fresh(subs.UnnamedFlex())
	s.Set(list1, subs.Descriptor{
		Content: subs.Structure{Flat: subs.TagUnion{Tags: map[string][]subs.Variable{"Cons": {payload, list1}}, Ext: ext1}},
		Rank:    subs.NoRank,
	})

	payload2 := freshFlex(s)
	ext2 := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyTagUnion{}}, Rank: subs.NoRank})
	list2 := s.Fresh(subs.UnnamedFlex())
	s.Set(list2, subs.Descriptor{
		Content: subs.Structure{Flat: subs.TagUnion{Tags: map[string][]subs.Variable{"Cons": {payload2, list2}}, Ext: ext2}},
		Rank:    subs.NoRank,
	})

	result := unify.Unify(s, list1, list2, unify.EQ)
	if !result.Ok() {
		t.Fatalf("expected two structurally-equal recursive lists to unify, got failure %+v", result.Unmet)
	}

	flat := s.Get(list1).Content.(subs.Structure).Flat
	if _, ok := flat.(subs.RecursiveTagUnion); !ok {
		t.Fatalf("expected the merged list to be promoted to a RecursiveTagUnion, got %T", flat)
	}
}

func TestUnifyRangedNumberAdmitsMatchingCandidate(t *testing.T) {
	s := subs.New()

	i8 := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "I8"}}, Rank: subs.NoRank})
	i16 := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "I16"}}, Rank: subs.NoRank})
	real := s.Fresh(subs.UnnamedFlex())
	ranged := s.Fresh(subs.Descriptor{Content: subs.RangedNumber{Real: real, Range: []subs.Variable{i8, i16}}, Rank: subs.NoRank})

	target := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "I16"}}, Rank: subs.NoRank})

	result := unify.Unify(s, ranged, target, unify.EQ)
	if !result.Ok() {
		t.Fatalf("expected I16 to be an admissible candidate, got failure %+v", result.Unmet)
	}
}

func TestUnifyRangedNumberRejectsOutOfRange(t *testing.T) {
	s := subs.New()

	i8 := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "I8"}}, Rank: subs.NoRank})
	real := s.Fresh(subs.UnnamedFlex())
	ranged := s.Fresh(subs.Descriptor{Content: subs.RangedNumber{Real: real, Range: []subs.Variable{i8}}, Rank: subs.NoRank})

	target := s.Fresh(subs.Descriptor{Content: subs.Structure{Flat: subs.Apply{Symbol: "Str"}}, Rank: subs.NoRank})

	result := unify.Unify(s, ranged, target, unify.EQ)
	if result.Ok() {
		t.Fatalf("expected Str to be rejected as out of I8's range")
	}
}
