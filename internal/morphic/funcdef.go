package morphic

// FuncDef is one function's finished definition.
type FuncDef struct {
	ArgType, RetType TypeId
	Blocks           []*Block
	Continuations    []*Continuation
	Root             BlockExpr
}

// FuncDefBuilder builds one FuncDef's body: blocks of ops, evaluating to a
// root BlockExpr on Build. It shares a TypeContext with the owning
// ModDefBuilder so types registered while lowering this function are
// visible module-wide.
type FuncDefBuilder struct {
	*TypeContext
	*ExprBuilder

	argType, retType TypeId
	argument         ValueId
	hasArgument      bool
}

func newFuncDefBuilder(tc *TypeContext, argType, retType TypeId) *FuncDefBuilder {
	return &FuncDefBuilder{TypeContext: tc, ExprBuilder: newExprBuilder(), argType: argType, retType: retType}
}

// GetArgument returns the value id bound to the function's single
// (tupled) formal argument.
func (b *FuncDefBuilder) GetArgument() ValueId {
	if !b.hasArgument {
		b.argument = b.value()
		b.hasArgument = true
	}
	return b.argument
}

// Build finishes the function, fixing root as its returned value.
func (b *FuncDefBuilder) Build(root BlockExpr) (*FuncDef, error) {
	return &FuncDef{
		ArgType: b.argType, RetType: b.retType,
		Blocks: append([]*Block{}, b.blocks...), Continuations: append([]*Continuation{}, b.continuations...),
		Root: root,
	}, nil
}
