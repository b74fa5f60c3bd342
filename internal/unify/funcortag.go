package unify

import "github.com/novalang/typecore/internal/subs"

// unifyFuncOrTagUnionWithFunc implements the Func half of spec.md §4.2.6.
// fot is already known to be a FunctionOrTagUnion and fn a Func; the merged
// content ends up the same regardless of which of ctx.First/ctx.Second held
// which, so the caller need not tell us the orientation.
func unifyFuncOrTagUnionWithFunc(s *subs.Subs, ctx *Context, fot subs.FunctionOrTagUnion, fn subs.Func) Outcome {
	var o Outcome

	singleton := s.Fresh(subs.UnnamedFlex())
	s.Set(singleton, subs.Descriptor{Content: subs.Structure{
		Flat: subs.TagUnion{Tags: map[string][]subs.Variable{fot.Tag: fn.Args}, Ext: fot.Ext},
	}})
	o.Merge(Unify(s, singleton, fn.Ret, EQ).outcome())

	// A minimal lambda-set stand-in: a structural tag naming the closure
	// this FunctionOrTagUnion resolves to, since this package models no
	// richer lambda-set representation than Content already provides.
	lambdaSet := s.Fresh(subs.UnnamedFlex())
	closureExt := s.Fresh(subs.UnnamedFlex())
	s.Set(closureExt, subs.Descriptor{Content: subs.Structure{Flat: subs.EmptyTagUnion{}}})
	s.Set(lambdaSet, subs.Descriptor{Content: subs.Structure{
		Flat: subs.TagUnion{Tags: map[string][]subs.Variable{"Closure:" + fot.Symbol: nil}, Ext: closureExt},
	}})
	o.Merge(Unify(s, lambdaSet, fn.Closure, EQ).outcome())

	if !o.ok() {
		return o
	}
	merge(s, ctx, subs.Structure{Flat: fn})
	return o
}

// unifyFuncOrTagUnionPair implements the FunctionOrTagUnion ~
// FunctionOrTagUnion half of spec.md §4.2.6.
func unifyFuncOrTagUnionPair(s *subs.Subs, ctx *Context, left, right subs.FunctionOrTagUnion) Outcome {
	if left.Tag == right.Tag {
		o := Unify(s, left.Ext, right.Ext, ctx.Mode).outcome()
		if !o.ok() {
			return o
		}
		merge(s, ctx, subs.Structure{Flat: right})
		return o
	}

	return unifyTagUnions(
		s, ctx,
		map[string][]subs.Variable{left.Tag: nil}, left.Ext, subs.NoVariable,
		map[string][]subs.Variable{right.Tag: nil}, right.Ext, subs.NoVariable,
	)
}
