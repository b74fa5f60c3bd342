package subs

// OccursError reports a non-recursive cycle discovered by Occurs: Root is
// the variable the cycle closes back to, and Chain is the path of roots
// visited from the starting variable down to the repeated one, letting a
// caller retarget the cycle through a freshly-minted recursion variable.
type OccursError struct {
	Root  Variable
	Chain []Variable
}

func (e *OccursError) Error() string {
	return "infinite type: cycle detected"
}

// Occurs detects cycles reachable from v. A RecursionVar content is a leaf
// for this walk: the reference it carries back into an enclosing recursive
// tag union is the legitimate, already-closed cycle the data model
// describes (spec.md §3, §9), so Occurs must not re-discover it as a
// failure. Any other cycle - one not yet mediated by a recursion variable
// - is reported as an error.
func (s *Subs) Occurs(v Variable) error {
	if _, cyc := s.occursWalk(nil, v); cyc != nil {
		return cyc
	}
	return nil
}

func (s *Subs) occursWalk(path []Variable, v Variable) ([]Variable, *OccursError) {
	root := s.find(v)
	for _, p := range path {
		if p == root {
			return nil, &OccursError{Root: root, Chain: append(append([]Variable{}, path...), root)}
		}
	}

	content := s.descs[root].Content
	if _, ok := content.(RecursionVar); ok {
		return path, nil
	}

	next := append(append([]Variable{}, path...), root)
	for _, child := range childVariables(content) {
		if _, cyc := s.occursWalk(next, child); cyc != nil {
			return nil, cyc
		}
	}
	return path, nil
}

// childVariables lists the variables a content structurally refers to, for
// occurs-checking and other whole-class walks. RecursionVar's Structure and
// RecursiveTagUnion's Rec are deliberately excluded: both are the
// back-reference that closes an already-promoted recursive cycle, not a
// fresh edge to walk.
func childVariables(c Content) []Variable {
	switch c := c.(type) {
	case Structure:
		return flatTypeChildren(c.Flat)
	case Alias:
		vars := append([]Variable{}, c.Args...)
		return append(vars, c.Real)
	case RangedNumber:
		vars := append([]Variable{c.Real}, c.Range...)
		return vars
	default:
		return nil
	}
}

func flatTypeChildren(f FlatType) []Variable {
	switch f := f.(type) {
	case EmptyRecord, EmptyTagUnion:
		return nil
	case Record:
		vars := make([]Variable, 0, len(f.Fields)+1)
		for _, field := range f.Fields {
			vars = append(vars, field.Var)
		}
		return append(vars, f.Ext)
	case TagUnion:
		vars := make([]Variable, 0)
		for _, args := range f.Tags {
			vars = append(vars, args...)
		}
		return append(vars, f.Ext)
	case RecursiveTagUnion:
		vars := make([]Variable, 0)
		for _, args := range f.Tags {
			vars = append(vars, args...)
		}
		return append(vars, f.Ext)
	case FunctionOrTagUnion:
		return []Variable{f.Ext}
	case Apply:
		return append([]Variable{}, f.Args...)
	case Func:
		vars := append([]Variable{}, f.Args...)
		vars = append(vars, f.Closure, f.Ret)
		return vars
	default:
		return nil
	}
}
