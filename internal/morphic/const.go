package morphic

// ConstDef is a module-level constant value, built the same way a
// function body is: a small block of ops ending in a value.
type ConstDef struct {
	Type  TypeId
	Block *Block
}

// ConstDefBuilder builds one ConstDef. It shares the ExprBuilder machinery
// with FuncDefBuilder (both are "some ops that produce a value"); the
// original crate gives ConstDefBuilder the same TypeContext/ExprContext
// impls as FuncDefBuilder for exactly this reason.
type ConstDefBuilder struct {
	*TypeContext
	*ExprBuilder
}

func newConstDefBuilder(tc *TypeContext) *ConstDefBuilder {
	return &ConstDefBuilder{TypeContext: tc, ExprBuilder: newExprBuilder()}
}

// Build finishes the constant, recording its type and root block; the
// root's value is not stored.
func (b *ConstDefBuilder) Build(typ TypeId, root BlockExpr) (*ConstDef, error) {
	return &ConstDef{Type: typ, Block: b.block(root.Block)}, nil
}
