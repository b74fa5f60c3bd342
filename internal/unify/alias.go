package unify

import "github.com/novalang/typecore/internal/subs"

// unifyAlias implements spec.md §4.2.1. left is already known to be an
// Alias; the switch is on the right side's content.
func unifyAlias(s *subs.Subs, ctx *Context, left subs.Alias) Outcome {
	eitherOpaque := left.Kind == subs.Opaque

	switch right := ctx.SecondDesc.Content.(type) {
	case subs.FlexVar:
		merge(s, ctx, left)
		return EmptyOutcome()

	case subs.RecursionVar:
		if eitherOpaque {
			return mismatchOutcome(TypeMismatch)
		}
		merge(s, ctx, left)
		return Unify(s, left.Real, right.Structure, ctx.Mode).outcome()

	case subs.RigidVar, subs.RigidAbleVar:
		merge(s, ctx, left)
		return Unify(s, left.Real, ctx.Second, ctx.Mode).outcome()

	case subs.FlexAbleVar:
		if !(eitherOpaque && len(left.Args) == 0) {
			return mismatchOutcome(TypeMismatch)
		}
		merge(s, ctx, left)
		var o Outcome
		o.addObligation(MustImplement{Type: ctx.First, Ability: right.Ability})
		return o

	case subs.Alias:
		rightOpaque := right.Kind == subs.Opaque
		if (eitherOpaque || rightOpaque) && left.Symbol != right.Symbol {
			return mismatchOutcome(TypeMismatch)
		}
		if left.Symbol == right.Symbol && len(left.Args) == len(right.Args) {
			snap := s.TakeSnapshot()
			var o Outcome
			grewArgs := false
			for i := range left.Args {
				varsBefore := len(s.VarsSinceSnapshot(snap))
				res := Unify(s, left.Args[i], right.Args[i], EQ)
				if len(s.VarsSinceSnapshot(snap)) > varsBefore {
					grewArgs = true
				}
				o.Merge(res.outcome())
			}
			if !o.ok() {
				s.RollbackTo(snap)
				return o
			}
			s.CommitSnapshot(snap)
			merge(s, ctx, right)
			if grewArgs {
				o.Merge(Unify(s, left.Real, right.Real, ctx.Mode).outcome())
			}
			return o
		}
		merge(s, ctx, right)
		return Unify(s, left.Real, right.Real, ctx.Mode).outcome()

	case subs.Structure:
		if eitherOpaque {
			return mismatchOutcome(TypeMismatch)
		}
		merge(s, ctx, left)
		return Unify(s, left.Real, ctx.Second, ctx.Mode).outcome()

	case subs.RangedNumber:
		merge(s, ctx, left)
		o := Unify(s, left.Real, right.Real, ctx.Mode).outcome()
		if !o.ok() {
			return o
		}
		return checkValidRange(s, left.Real, right.Range, ctx.Mode).outcome()

	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()

	default:
		return mismatchOutcome(TypeMismatch)
	}
}
