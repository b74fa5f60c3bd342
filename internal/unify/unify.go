package unify

import (
	"fmt"

	"github.com/novalang/typecore/internal/config"
	"github.com/novalang/typecore/internal/subs"
)

// Unify is the top-level entry point (spec.md §4.2). If the two variables
// are already in the same class it is a no-op returning an empty Success -
// the idempotence property required by spec.md §8. Otherwise it dispatches
// on the left operand's content, merges before recursing into children
// (see Context.merge), and - on any mismatch - still unions the two
// variables to Error so the caller's remaining constraints can proceed
// without cascading failures (spec.md §7).
func Unify(s *subs.Subs, v1, v2 subs.Variable, mode Mode) Unified {
	if s.Equivalent(v1, v2) {
		return success(nil, nil)
	}

	ctx := &Context{First: v1, Second: v2, FirstDesc: s.Get(v1), SecondDesc: s.Get(v2), Mode: mode}
	outcome := dispatch(s, ctx)
	touched := []subs.Variable{v1, v2}

	if !outcome.ok() {
		leftStr, leftBad := renderErrorType(s, v1)
		rightStr, rightBad := renderErrorType(s, v2)
		s.Union(v1, v2, subs.Descriptor{Content: subs.Error{}})
		if leftBad != nil || rightBad != nil {
			problem := leftBad
			if problem == nil {
				problem = rightBad
			}
			return badType(touched, problem)
		}

		if config.DebugFlags().PrintMismatches {
			config.StderrTracer.Printf("unify mismatch: v%d x v%d: %v", v1, v2, outcome.Mismatches)
		}
		return failure(touched, leftStr, rightStr, outcome.Mismatches)
	}
	result := success(touched, GetUnique(outcome.MustImplement))
	if config.DebugFlags().PrintUnifications {
		config.StderrTracer.DumpYAML(fmt.Sprintf("unify v%d x v%d", v1, v2), result)
	}
	return result
}

// UnifyPool runs Unify, tracks every touched variable in pool for the outer
// generalization pass whether or not unification succeeded, and returns the
// accumulated Outcome (spec.md §4.2's unify_pool).
func UnifyPool(s *subs.Subs, pool *Pool, v1, v2 subs.Variable, mode Mode) Outcome {
	result := Unify(s, v1, v2, mode)
	pool.track(result.Touched)

	var out Outcome
	switch result.Kind {
	case UnifiedSuccess:
		out.MustImplement = append(out.MustImplement, result.Obligations...)
	case UnifiedFailure:
		for _, m := range result.Unmet {
			out.addMismatch(m)
		}
	case UnifiedBadType:
		out.addMismatch(Mismatch{Kind: TypeMismatch})
	}
	return out
}

// dispatch implements the main content-pair table in spec.md §4.2.
func dispatch(s *subs.Subs, ctx *Context) Outcome {
	switch left := ctx.FirstDesc.Content.(type) {
	case subs.FlexVar:
		return unifyFlexVar(s, ctx, left)
	case subs.FlexAbleVar:
		return unifyFlexAbleVar(s, ctx, left)
	case subs.RigidVar:
		return unifyRigidVar(s, ctx, left)
	case subs.RigidAbleVar:
		return unifyRigidAbleVar(s, ctx, left)
	case subs.RecursionVar:
		return unifyRecursionVar(s, ctx, left)
	case subs.Alias:
		return unifyAlias(s, ctx, left)
	case subs.Structure:
		return unifyStructure(s, ctx, left)
	case subs.RangedNumber:
		return unifyRanged(s, ctx, left)
	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()
	default:
		subs.Bug("unify: unhandled content %T", left)
		return EmptyOutcome()
	}
}

func mismatchOutcome(kind MismatchKind) Outcome {
	var o Outcome
	o.addMismatch(Mismatch{Kind: kind})
	return o
}

func unifyFlexVar(s *subs.Subs, ctx *Context, left subs.FlexVar) Outcome {
	switch right := ctx.SecondDesc.Content.(type) {
	case subs.FlexVar:
		name := right.Name
		if name == nil {
			name = left.Name
		}
		merge(s, ctx, subs.FlexVar{Name: name})
	default:
		merge(s, ctx, ctx.SecondDesc.Content)
	}
	return EmptyOutcome()
}

func unifyFlexAbleVar(s *subs.Subs, ctx *Context, left subs.FlexAbleVar) Outcome {
	switch right := ctx.SecondDesc.Content.(type) {
	case subs.FlexVar:
		merge(s, ctx, subs.FlexAbleVar{Name: left.Name, Ability: left.Ability})
		return EmptyOutcome()
	case subs.FlexAbleVar:
		if right.Ability != left.Ability {
			return mismatchOutcome(TypeMismatch)
		}
		name := right.Name
		if name == nil {
			name = left.Name
		}
		merge(s, ctx, subs.FlexAbleVar{Name: name, Ability: left.Ability})
		return EmptyOutcome()
	case subs.RigidAbleVar:
		if right.Ability != left.Ability {
			return mismatchOutcome(TypeMismatch)
		}
		merge(s, ctx, right)
		return EmptyOutcome()
	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()
	default:
		// Structural match: the right side is a concrete type. This
		// package only accumulates the obligation; whether the type
		// actually implements the ability is the solver's concern.
		merge(s, ctx, ctx.SecondDesc.Content)
		var o Outcome
		o.addObligation(MustImplement{Type: ctx.Second, Ability: left.Ability})
		return o
	}
}

func unifyRigidVar(s *subs.Subs, ctx *Context, left subs.RigidVar) Outcome {
	switch ctx.SecondDesc.Content.(type) {
	case subs.FlexVar:
		merge(s, ctx, left)
		return EmptyOutcome()
	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()
	case subs.RigidVar:
		if ctx.Mode.Is(RigidAsFlex) {
			merge(s, ctx, left)
			return EmptyOutcome()
		}
		return mismatchOutcome(TypeMismatch)
	default:
		if ctx.Mode.Is(RigidAsFlex) {
			merge(s, ctx, left)
			return EmptyOutcome()
		}
		return mismatchOutcome(TypeMismatch)
	}
}

func unifyRigidAbleVar(s *subs.Subs, ctx *Context, left subs.RigidAbleVar) Outcome {
	switch right := ctx.SecondDesc.Content.(type) {
	case subs.FlexVar:
		merge(s, ctx, left)
		return EmptyOutcome()
	case subs.FlexAbleVar:
		if right.Ability != left.Ability {
			return mismatchOutcome(TypeMismatch)
		}
		merge(s, ctx, left)
		return EmptyOutcome()
	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()
	default:
		if ctx.Mode.Is(RigidAsFlex) {
			merge(s, ctx, left)
			return EmptyOutcome()
		}
		return mismatchOutcome(TypeMismatch)
	}
}

func unifyRecursionVar(s *subs.Subs, ctx *Context, left subs.RecursionVar) Outcome {
	switch right := ctx.SecondDesc.Content.(type) {
	case subs.RecursionVar:
		// Do not unify the two `structure` vars here - they are each
		// other's enclosing recursive union, and recursing would loop.
		merge(s, ctx, left)
		return EmptyOutcome()
	case subs.Structure:
		merge(s, ctx, right)
		return Unify(s, left.Structure, ctx.Second, ctx.Mode).outcome()
	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()
	default:
		return mismatchOutcome(TypeMismatch)
	}
}

// outcome adapts a Unified result back into an Outcome, for sub-algorithms
// that delegate to a nested Unify call (e.g. unifying a RecursionVar's
// structure, or an alias's real var).
func (u Unified) outcome() Outcome {
	var o Outcome
	switch u.Kind {
	case UnifiedSuccess:
		o.MustImplement = append(o.MustImplement, u.Obligations...)
	case UnifiedFailure:
		for _, m := range u.Unmet {
			o.addMismatch(m)
		}
	case UnifiedBadType:
		o.addMismatch(Mismatch{Kind: TypeMismatch})
	}
	return o
}

// renderErrorType renders a variable's content for a Failure's diagnostic
// fields. A full pretty-printer belongs to a surface-syntax layer this
// package does not own; Content.String() is the stable, test-friendly
// rendering already used throughout internal/subs. Rendering first runs the
// same occurs-check the unifier itself relies on: a cycle Occurs has not
// mediated through a RecursionVar is exactly the pathological shape spec.md
// §7 calls BadType, so it is reported as one instead of a rendered string.
func renderErrorType(s *subs.Subs, v subs.Variable) (string, *BadTypeError) {
	if err := s.Occurs(v); err != nil {
		return "", NewBadTypeError(err.Error())
	}
	return fmt.Sprintf("%s", s.Get(v).Content), nil
}
