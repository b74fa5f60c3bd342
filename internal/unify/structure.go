package unify

import "github.com/novalang/typecore/internal/subs"

// unifyStructure implements the flat-type pair table in spec.md §4.2.2.
// left is already known to be a Structure; the switch is on the right
// side's content, then on the pair of flat types.
func unifyStructure(s *subs.Subs, ctx *Context, left subs.Structure) Outcome {
	switch right := ctx.SecondDesc.Content.(type) {
	case subs.FlexVar:
		merge(s, ctx, left)
		return EmptyOutcome()
	case subs.FlexAbleVar:
		merge(s, ctx, left)
		var o Outcome
		o.addObligation(MustImplement{Type: ctx.Second, Ability: right.Ability})
		return o
	case subs.RecursionVar:
		merge(s, ctx, left)
		return Unify(s, ctx.First, right.Structure, ctx.Mode).outcome()
	case subs.Alias:
		return unifyAlias(s, ctx.swapped(), right)
	case subs.Error:
		merge(s, ctx, subs.Error{})
		return EmptyOutcome()
	case subs.Structure:
		return unifyFlatTypes(s, ctx, left.Flat, right.Flat)
	default:
		return mismatchOutcome(TypeMismatch)
	}
}

func unifyFlatTypes(s *subs.Subs, ctx *Context, leftFlat, rightFlat subs.FlatType) Outcome {
	switch l := leftFlat.(type) {
	case subs.EmptyRecord:
		if _, ok := rightFlat.(subs.EmptyRecord); ok {
			merge(s, ctx, subs.Structure{Flat: subs.EmptyRecord{}})
			return EmptyOutcome()
		}
		if r, ok := rightFlat.(subs.Record); ok {
			return unifyEmptyRecordSide(s, ctx, r, true)
		}
		return mismatchOutcome(TypeMismatch)

	case subs.Record:
		switch r := rightFlat.(type) {
		case subs.EmptyRecord:
			return unifyEmptyRecordSide(s, ctx, l, false)
		case subs.Record:
			return unifyRecords(s, ctx, l, r)
		default:
			return mismatchOutcome(TypeMismatch)
		}

	case subs.EmptyTagUnion:
		if _, ok := rightFlat.(subs.EmptyTagUnion); ok {
			merge(s, ctx, subs.Structure{Flat: subs.EmptyTagUnion{}})
			return EmptyOutcome()
		}
		return mismatchOutcome(TypeMismatch)

	case subs.TagUnion:
		switch r := rightFlat.(type) {
		case subs.TagUnion:
			return unifyTagUnions(s, ctx, l.Tags, l.Ext, subs.NoVariable, r.Tags, r.Ext, subs.NoVariable)
		case subs.RecursiveTagUnion:
			return unifyTagUnions(s, ctx, l.Tags, l.Ext, subs.NoVariable, r.Tags, r.Ext, subs.Some(r.Rec))
		default:
			return mismatchOutcome(TypeMismatch)
		}

	case subs.RecursiveTagUnion:
		switch r := rightFlat.(type) {
		case subs.TagUnion:
			return unifyTagUnions(s, ctx, l.Tags, l.Ext, subs.Some(l.Rec), r.Tags, r.Ext, subs.NoVariable)
		case subs.RecursiveTagUnion:
			return unifyTagUnions(s, ctx, l.Tags, l.Ext, subs.Some(l.Rec), r.Tags, r.Ext, subs.Some(r.Rec))
		default:
			return mismatchOutcome(TypeMismatch)
		}

	case subs.Apply:
		r, ok := rightFlat.(subs.Apply)
		if !ok || r.Symbol != l.Symbol || len(r.Args) != len(l.Args) {
			return mismatchOutcome(TypeMismatch)
		}
		merge(s, ctx, subs.Structure{Flat: r})
		var o Outcome
		for i := range l.Args {
			o.Merge(Unify(s, l.Args[i], r.Args[i], EQ).outcome())
		}
		return o

	case subs.Func:
		switch r := rightFlat.(type) {
		case subs.Func:
			if len(l.Args) != len(r.Args) {
				return mismatchOutcome(TypeMismatch)
			}
			merge(s, ctx, subs.Structure{Flat: r})
			var o Outcome
			for i := range l.Args {
				o.Merge(Unify(s, l.Args[i], r.Args[i], ctx.Mode).outcome())
			}
			o.Merge(Unify(s, l.Closure, r.Closure, ctx.Mode).outcome())
			o.Merge(Unify(s, l.Ret, r.Ret, ctx.Mode).outcome())
			return o
		case subs.FunctionOrTagUnion:
			return unifyFuncOrTagUnionWithFunc(s, ctx, r, l)
		default:
			return mismatchOutcome(TypeMismatch)
		}

	case subs.FunctionOrTagUnion:
		switch r := rightFlat.(type) {
		case subs.Func:
			return unifyFuncOrTagUnionWithFunc(s, ctx, l, r)
		case subs.FunctionOrTagUnion:
			return unifyFuncOrTagUnionPair(s, ctx, l, r)
		default:
			return mismatchOutcome(TypeMismatch)
		}

	default:
		return mismatchOutcome(TypeMismatch)
	}
}

// unifyEmptyRecordSide handles Record(f, ext) ~ EmptyRecord. leftIsEmpty
// tells the caller which literal side held the EmptyRecord so the merged
// content always ends up correct regardless of call direction.
func unifyEmptyRecordSide(s *subs.Subs, ctx *Context, rec subs.Record, leftIsEmpty bool) Outcome {
	for _, f := range rec.Fields {
		if f.Kind != subs.FieldOptional {
			return mismatchOutcome(TypeMismatch)
		}
	}
	emptyVar := ctx.Second
	if leftIsEmpty {
		emptyVar = ctx.First
	}
	// Close the row before merging: emptyVar must still resolve to
	// EmptyRecord here, not to rec itself, or the closing unification
	// below would bind the tail back onto the record it is closing.
	o := Unify(s, rec.Ext, emptyVar, ctx.Mode).outcome()
	if !o.ok() {
		return o
	}
	merge(s, ctx, subs.Structure{Flat: subs.EmptyRecord{}})
	return o
}
