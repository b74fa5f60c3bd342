package unify_test

import (
	"testing"

	"github.com/novalang/typecore/internal/subs"
	"github.com/novalang/typecore/internal/unify"
)

func TestUnifyPoolTracksTouchedVarsOnSuccess(t *testing.T) {
	s := subs.New()
	pool := unify.NewPool()
	a := freshFlex(s)
	b := freshFlex(s)

	outcome := unify.UnifyPool(s, pool, a, b, unify.EQ)
	if len(outcome.Mismatches) != 0 {
		t.Fatalf("expected a clean flex-flex unification, got mismatches %+v", outcome.Mismatches)
	}
	vars := pool.Vars()
	if len(vars) != 2 {
		t.Fatalf("expected both unified variables tracked in the pool, got %v", vars)
	}
}

func TestUnifyPoolAccumulatesAcrossCalls(t *testing.T) {
	s := subs.New()
	pool := unify.NewPool()
	a, b := freshFlex(s), freshFlex(s)
	c, d := freshFlex(s), freshFlex(s)

	unify.UnifyPool(s, pool, a, b, unify.EQ)
	unify.UnifyPool(s, pool, c, d, unify.EQ)

	if len(pool.Vars()) != 4 {
		t.Fatalf("expected pool to accumulate touched vars across calls, got %v", pool.Vars())
	}
}

func TestUnifyPoolReportsMismatchWithoutPanicking(t *testing.T) {
	s := subs.New()
	pool := unify.NewPool()
	a := s.Fresh(subs.Descriptor{Content: subs.RigidVar{Name: "a"}, Rank: subs.NoRank})
	b := s.Fresh(subs.Descriptor{Content: subs.RigidVar{Name: "b"}, Rank: subs.NoRank})

	outcome := unify.UnifyPool(s, pool, a, b, unify.EQ)
	if len(outcome.Mismatches) == 0 {
		t.Fatalf("expected distinct rigid vars to report a mismatch through UnifyPool")
	}
}
