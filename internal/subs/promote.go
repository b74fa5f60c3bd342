package subs

// MarkTagUnionRecursive rewrites the TagUnion living at v into a
// RecursiveTagUnion. It allocates a fresh RecursionVar pointing back at v,
// substitutes that recursion variable for every bare occurrence of v within
// tags and ext, and installs the result as v's new Structure content
// (spec.md §4.1, §9 "Cycles"). Callers reach this only after Occurs has
// reported a cycle through v; the returned recursion variable is the one
// Occurs' caller retargets the cycle through.
func (s *Subs) MarkTagUnionRecursive(v Variable, tags map[string][]Variable, ext Variable) Variable {
	root := s.find(v)

	recVar := s.Fresh(Descriptor{
		Content: RecursionVar{Structure: root},
		Rank:    s.descs[root].Rank,
		Mark:    NoMark,
		Copy:    NoVariable,
	})

	substituted := make(map[string][]Variable, len(tags))
	for name, args := range tags {
		rewritten := make([]Variable, len(args))
		for i, arg := range args {
			rewritten[i] = substituteVar(s, arg, root, recVar)
		}
		substituted[name] = rewritten
	}
	newExt := substituteVar(s, ext, root, recVar)

	s.Set(root, Descriptor{
		Content: Structure{Flat: RecursiveTagUnion{Rec: recVar, Tags: substituted, Ext: newExt}},
		Rank:    s.descs[root].Rank,
		Mark:    NoMark,
		Copy:    NoVariable,
	})

	return recVar
}

// substituteVar replaces references to target with replacement, by root
// identity rather than raw variable id, so an already-unioned alias of
// target is caught too.
func substituteVar(s *Subs, candidate, target, replacement Variable) Variable {
	if s.find(candidate) == target {
		return replacement
	}
	return candidate
}
