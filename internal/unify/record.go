package unify

import (
	"sort"

	"github.com/novalang/typecore/internal/subs"
)

// unifyRecords implements row-polymorphic record unification, spec.md
// §4.2.4: canonicalize by field name, split into only-in-1/shared/only-in-2,
// then handle the four cases on which sides have leftovers.
func unifyRecords(s *subs.Subs, ctx *Context, left, right subs.Record) Outcome {
	onlyLeft := map[string]subs.Field{}
	onlyRight := map[string]subs.Field{}
	shared := map[string][2]subs.Field{}

	for name, f := range left.Fields {
		if rf, ok := right.Fields[name]; ok {
			shared[name] = [2]subs.Field{f, rf}
		} else {
			onlyLeft[name] = f
		}
	}
	for name, f := range right.Fields {
		if _, ok := left.Fields[name]; !ok {
			onlyRight[name] = f
		}
	}

	var o Outcome
	combined := map[string]subs.Field{}
	names := make([]string, 0, len(shared))
	for name := range shared {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pair := shared[name]
		kind, mismatched := combineFieldKind(pair[0].Kind, pair[1].Kind)
		if mismatched {
			o.addMismatch(Mismatch{Kind: TypeMismatch})
			// Continue anyway, per spec.md §4.2.4: "error (but continue
			// for better diagnostics)".
		}
		o.Merge(Unify(s, pair[0].Var, pair[1].Var, EQ).outcome())
		combined[name] = subs.Field{Kind: kind, Var: pair[0].Var}
	}

	switch {
	case len(onlyLeft) == 0 && len(onlyRight) == 0:
		o.Merge(Unify(s, left.Ext, right.Ext, EQ).outcome())
		finishRecord(s, ctx, combined, left.Ext)
		return o

	case len(onlyLeft) == 0 && len(onlyRight) > 0:
		sub := s.Fresh(subs.UnnamedFlex())
		s.Set(sub, subs.Descriptor{Content: subs.Structure{Flat: subs.Record{Fields: onlyRight, Ext: right.Ext}}})
		o.Merge(Unify(s, left.Ext, sub, EQ).outcome())
		finishRecord(s, ctx, withFields(combined, onlyRight), sub)
		return o

	case len(onlyLeft) > 0 && len(onlyRight) == 0:
		sub := s.Fresh(subs.UnnamedFlex())
		s.Set(sub, subs.Descriptor{Content: subs.Structure{Flat: subs.Record{Fields: onlyLeft, Ext: left.Ext}}})
		o.Merge(Unify(s, sub, right.Ext, EQ).outcome())
		finishRecord(s, ctx, withFields(combined, onlyLeft), sub)
		return o

	default:
		freshExt := s.Fresh(subs.UnnamedFlex())
		leftSub := s.Fresh(subs.UnnamedFlex())
		s.Set(leftSub, subs.Descriptor{Content: subs.Structure{Flat: subs.Record{Fields: onlyRight, Ext: freshExt}}})
		rightSub := s.Fresh(subs.UnnamedFlex())
		s.Set(rightSub, subs.Descriptor{Content: subs.Structure{Flat: subs.Record{Fields: onlyLeft, Ext: freshExt}}})
		o.Merge(Unify(s, left.Ext, leftSub, EQ).outcome())
		o.Merge(Unify(s, rightSub, right.Ext, EQ).outcome())
		finishRecord(s, ctx, withFields(withFields(combined, onlyLeft), onlyRight), freshExt)
		return o
	}
}

func withFields(base map[string]subs.Field, extra map[string]subs.Field) map[string]subs.Field {
	out := make(map[string]subs.Field, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func finishRecord(s *subs.Subs, ctx *Context, fields map[string]subs.Field, ext subs.Variable) {
	merge(s, ctx, subs.Structure{Flat: subs.Record{Fields: fields, Ext: ext}})
}

// combineFieldKind implements the shared-field lattice (demanded > required
// > optional) from spec.md §4.2.4. mismatched is true only for the single
// disallowed pair, Demanded x Optional; the caller still combines (taking
// Demanded) so later diagnostics see a sensible type.
func combineFieldKind(a, b subs.FieldKind) (subs.FieldKind, bool) {
	if a == subs.FieldDemanded && b == subs.FieldOptional || b == subs.FieldDemanded && a == subs.FieldOptional {
		return subs.FieldDemanded, true
	}
	if a == subs.FieldDemanded || b == subs.FieldDemanded {
		return subs.FieldDemanded, false
	}
	if a == subs.FieldRequired || b == subs.FieldRequired {
		return subs.FieldRequired, false
	}
	return subs.FieldOptional, false
}
