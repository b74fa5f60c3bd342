package unify

import "github.com/novalang/typecore/internal/subs"

// Context bundles the two sides of an in-progress unification, read once at
// entry so every sub-algorithm sees a consistent snapshot of both
// descriptors even after merge mutates Subs.
type Context struct {
	First, Second         subs.Variable
	FirstDesc, SecondDesc subs.Descriptor
	Mode                  Mode
}

// swapped returns a Context with First/Second (and their descriptors)
// exchanged, for the several structural rules that are symmetric and
// implemented once by flipping the operands.
func (ctx *Context) swapped() *Context {
	return &Context{
		First: ctx.Second, FirstDesc: ctx.SecondDesc,
		Second: ctx.First, SecondDesc: ctx.FirstDesc,
		Mode: ctx.Mode,
	}
}

// merge installs content as the surviving descriptor for ctx's two
// variables, merging their equivalence classes. Most rules call it before
// recursing into children; the record and tag-union rules (record.go,
// tagunion.go) and the FunctionOrTagUnion/Func rule (funcortag.go) unify
// their children first and call it last, once the merged content is known.
func merge(s *subs.Subs, ctx *Context, content subs.Content) {
	s.Union(ctx.First, ctx.Second, subs.Descriptor{Content: content})
}
