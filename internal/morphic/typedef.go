package morphic

// TypeDef is a named type's finished definition: the root TypeId, which
// resolves against the TypeContext of the owning ModDefBuilder.
type TypeDef struct {
	Root TypeId
}

// TypeDefBuilder builds one named type definition. It shares its
// TypeContext with the owning ModDefBuilder, so a recursive union's
// AddNamedType reference resolves against the same node table its
// TypeDef ends up registered in.
type TypeDefBuilder struct {
	*TypeContext
}

func newTypeDefBuilder(tc *TypeContext) *TypeDefBuilder {
	return &TypeDefBuilder{TypeContext: tc}
}

// Build finishes the definition, fixing root as the type's public shape.
func (b *TypeDefBuilder) Build(root TypeId) (*TypeDef, error) {
	return &TypeDef{Root: root}, nil
}
