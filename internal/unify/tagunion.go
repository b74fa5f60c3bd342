package unify

import (
	"sort"

	"github.com/novalang/typecore/internal/subs"
)

// unifyTagUnions implements spec.md §4.2.5. tags are keyed by tag name,
// each value a slice of payload variables (a tag may carry several). rec1
// and rec2 carry the recursion variable of each side when it is already a
// RecursiveTagUnion, or subs.NoVariable when it is a plain TagUnion.
func unifyTagUnions(
	s *subs.Subs, ctx *Context,
	tags1 map[string][]subs.Variable, ext1 subs.Variable, rec1 subs.OptVariable,
	tags2 map[string][]subs.Variable, ext2 subs.Variable, rec2 subs.OptVariable,
) Outcome {
	onlyLeft := map[string][]subs.Variable{}
	onlyRight := map[string][]subs.Variable{}
	shared := map[string][2][]subs.Variable{}

	for name, args := range tags1 {
		if rargs, ok := tags2[name]; ok {
			shared[name] = [2][]subs.Variable{args, rargs}
		} else {
			onlyLeft[name] = args
		}
	}
	for name, args := range tags2 {
		if _, ok := tags1[name]; !ok {
			onlyRight[name] = args
		}
	}

	recursive := rec1 != subs.NoVariable || rec2 != subs.NoVariable
	bothRecursive := rec1 != subs.NoVariable && rec2 != subs.NoVariable

	var o Outcome

	if ctx.Mode.Is(Present) {
		if isEmptyTailEmptyOnly(s, ext1) && len(onlyRight) > 0 {
			fresh := s.Fresh(subs.UnnamedFlex())
			o.Merge(Unify(s, ext1, fresh, EQ).outcome())
			ext1 = fresh
		}
	}

	if bothRecursive {
		o.Merge(Unify(s, mustGetVar(rec1), mustGetVar(rec2), ctx.Mode).outcome())
	}

	names := make([]string, 0, len(shared))
	for name := range shared {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pair := shared[name]
		if len(pair[0]) != len(pair[1]) {
			o.addMismatch(Mismatch{Kind: TypeMismatch})
			continue
		}
		// Opportunistically promote either side before unifying its
		// payloads: a tag whose own argument is the enclosing union
		// (e.g. Cons's tail) would otherwise send the payload loop right
		// back into this same pair of variables, recursing forever. Once
		// promoted, the self-reference is substituted with the minted
		// RecursionVar in place, so the loop below unifies the two
		// RecursionVars directly instead of looping back here.
		if rv, ok := maybeMarkTagUnionRecursive(s, pair[0]); ok {
			recursive = true
			rec1 = subs.Some(rv)
		}
		if rv, ok := maybeMarkTagUnionRecursive(s, pair[1]); ok {
			recursive = true
			rec2 = subs.Some(rv)
		}
		for i := range pair[0] {
			o.Merge(Unify(s, pair[0][i], pair[1][i], EQ).outcome())
		}
		_ = name
	}

	combined := map[string][]subs.Variable{}
	for name, pair := range shared {
		combined[name] = pair[0]
	}

	var newExt subs.Variable
	switch {
	case len(onlyLeft) == 0 && len(onlyRight) == 0:
		if !ctx.Mode.Is(Present) {
			o.Merge(Unify(s, ext1, ext2, EQ).outcome())
		}
		newExt = ext1

	case len(onlyLeft) == 0 && len(onlyRight) > 0:
		sub := s.Fresh(subs.UnnamedFlex())
		s.Set(sub, subs.Descriptor{Content: subs.Structure{Flat: subs.TagUnion{Tags: onlyRight, Ext: ext2}}})
		if !ctx.Mode.Is(Present) {
			o.Merge(Unify(s, ext1, sub, EQ).outcome())
		}
		for name, args := range onlyRight {
			combined[name] = args
		}
		newExt = sub

	case len(onlyLeft) > 0 && len(onlyRight) == 0:
		sub := s.Fresh(subs.UnnamedFlex())
		s.Set(sub, subs.Descriptor{Content: subs.Structure{Flat: subs.TagUnion{Tags: onlyLeft, Ext: ext1}}})
		o.Merge(Unify(s, sub, ext2, EQ).outcome())
		for name, args := range onlyLeft {
			combined[name] = args
		}
		newExt = sub

	default:
		freshExt := s.Fresh(subs.UnnamedFlex())
		leftSub := s.Fresh(subs.UnnamedFlex())
		s.Set(leftSub, subs.Descriptor{Content: subs.Structure{Flat: subs.TagUnion{Tags: onlyRight, Ext: freshExt}}})
		rightSub := s.Fresh(subs.UnnamedFlex())
		s.Set(rightSub, subs.Descriptor{Content: subs.Structure{Flat: subs.TagUnion{Tags: onlyLeft, Ext: freshExt}}})
		o.Merge(Unify(s, ext1, leftSub, EQ).outcome())
		o.Merge(Unify(s, rightSub, ext2, EQ).outcome())
		for name, args := range onlyLeft {
			combined[name] = args
		}
		for name, args := range onlyRight {
			combined[name] = args
		}
		newExt = freshExt
	}

	if !o.ok() {
		return o
	}

	if recursive {
		recVar := rec1
		if recVar == subs.NoVariable {
			recVar = rec2
		}
		v, _ := recVar.Get()
		merge(s, ctx, subs.Structure{Flat: subs.RecursiveTagUnion{Rec: v, Tags: combined, Ext: newExt}})
	} else {
		merge(s, ctx, subs.Structure{Flat: subs.TagUnion{Tags: combined, Ext: newExt}})
	}
	return o
}

func isEmptyTailEmptyOnly(s *subs.Subs, ext subs.Variable) bool {
	d := s.Get(ext)
	switch c := d.Content.(type) {
	case subs.Structure:
		_, ok := c.Flat.(subs.EmptyTagUnion)
		return ok
	case subs.FlexVar:
		return true
	default:
		return false
	}
}

// maybeMarkTagUnionRecursive opportunistically promotes any of the given
// payload variables whose occurs-check would now detect recursion, before
// unifying the payloads themselves - avoiding stack overflow on deeply
// self-referential unifications (spec.md §4.2.5). Returns the minted
// RecursionVar's variable and true if a promotion happened.
func maybeMarkTagUnionRecursive(s *subs.Subs, vars []subs.Variable) (subs.Variable, bool) {
	var promoted subs.Variable
	didPromote := false
	for i, v := range vars {
		d := s.Get(v)
		st, ok := d.Content.(subs.Structure)
		if !ok {
			continue
		}
		tu, ok := st.Flat.(subs.TagUnion)
		if !ok {
			continue
		}
		if err := s.Occurs(v); err != nil {
			// Substitute the minted RecursionVar into this slot too, so the
			// caller's payload loop unifies the two RecursionVars directly
			// instead of recursing back into v itself.
			rv := s.MarkTagUnionRecursive(v, tu.Tags, tu.Ext)
			vars[i] = rv
			promoted = rv
			didPromote = true
		}
	}
	return promoted, didPromote
}

func mustGetVar(o subs.OptVariable) subs.Variable {
	v, ok := o.Get()
	if !ok {
		subs.Bug("unify: mustGet on absent recursion variable")
	}
	return v
}
