package unify

import "github.com/novalang/typecore/internal/subs"

// unifyRanged implements spec.md §4.2.3. left is already known to be a
// RangedNumber; (real, range) is its representative variable and its set
// of admissible concrete representatives.
func unifyRanged(s *subs.Subs, ctx *Context, left subs.RangedNumber) Outcome {
	switch right := ctx.SecondDesc.Content.(type) {
	case subs.FlexVar:
		merge(s, ctx, left)
		return EmptyOutcome()

	case subs.RangedNumber:
		merge(s, ctx, left)
		o := Unify(s, left.Real, right.Real, ctx.Mode).outcome()
		if !o.ok() {
			return o
		}
		o.Merge(checkValidRange(s, ctx.First, right.Range, ctx.Mode))
		return o

	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()

	default:
		merge(s, ctx, ctx.SecondDesc.Content)
		o := Unify(s, left.Real, ctx.Second, ctx.Mode).outcome()
		if !o.ok() {
			return o
		}
		o.Merge(checkValidRange(s, ctx.Second, left.Range, ctx.Mode))
		return o
	}
}

// checkValidRange implements spec.md §4.2.3's check_valid_range: for each
// candidate, take a snapshot and attempt unification under RigidAsFlex; on
// success, roll back (no persistent effect - only admissibility mattered)
// and return clean. If every candidate fails, the last attempted snapshot
// is committed rather than rolled back, per the Open Question in spec.md
// §9: implementers should preserve this to match the reference
// diagnostics, even though it leaves partial edits from a failed attempt.
func checkValidRange(s *subs.Subs, v subs.Variable, candidates []subs.Variable, mode Mode) Outcome {
	if len(candidates) == 0 {
		return mismatchOutcome(TypeNotInRange)
	}

	probeMode := mode.WithRigidAsFlex()
	var lastSnap subs.Snapshot

	for i, candidate := range candidates {
		snap := s.TakeSnapshot()
		result := Unify(s, v, candidate, probeMode)
		if result.Ok() {
			s.RollbackTo(snap)
			return EmptyOutcome()
		}
		if i == len(candidates)-1 {
			lastSnap = snap
			s.CommitSnapshot(lastSnap)
		} else {
			s.RollbackTo(snap)
		}
	}
	return mismatchOutcome(TypeNotInRange)
}
