package morphic

// TypeKind is the sum of type-constructor shapes the original TypeContext
// trait's add_* methods build.
type TypeKind int

const (
	KindTuple TypeKind = iota
	KindUnion
	KindHeapCell
	KindBag
	KindNamed
)

// TypeNode is one registered type, addressed by the TypeId returned when it
// was added.
type TypeNode struct {
	Kind   TypeKind
	Fields []TypeId // Tuple: field types. Union: variant (tuple) types.
	Elem   TypeId   // Bag: element type.
	Mod    ModName  // Named
	Name   TypeName // Named
}

// TypeContext is shared by FuncDefBuilder, TypeDefBuilder and
// ConstDefBuilder, mirroring the original's single `impl TypeContext for
// ...` blanket implementation across all three builder kinds - types are
// registered once per ModDef regardless of which builder adds them.
type TypeContext struct {
	nodes []TypeNode
}

func newTypeContext() *TypeContext { return &TypeContext{} }

func (tc *TypeContext) push(n TypeNode) TypeId {
	id := TypeId(len(tc.nodes))
	tc.nodes = append(tc.nodes, n)
	return id
}

// AddTupleType registers a tuple of the given field types.
func (tc *TypeContext) AddTupleType(fields []TypeId) TypeId {
	return tc.push(TypeNode{Kind: KindTuple, Fields: append([]TypeId{}, fields...)})
}

// AddUnionType registers a union over the given variant (tuple) types.
func (tc *TypeContext) AddUnionType(variants []TypeId) TypeId {
	return tc.push(TypeNode{Kind: KindUnion, Fields: append([]TypeId{}, variants...)})
}

// AddHeapCellType registers the primitive heap-cell type.
func (tc *TypeContext) AddHeapCellType() TypeId {
	return tc.push(TypeNode{Kind: KindHeapCell})
}

// AddBagType registers a bag of the given element type.
func (tc *TypeContext) AddBagType(elem TypeId) TypeId {
	return tc.push(TypeNode{Kind: KindBag, Elem: elem})
}

// AddNamedType registers a reference to a type that will be (or already
// is) defined under mod/name via a TypeDefBuilder. Used for recursive
// layouts, where the named type lets a tuple/union refer to itself without
// an infinite TypeNode tree.
func (tc *TypeContext) AddNamedType(mod ModName, name TypeName) TypeId {
	return tc.push(TypeNode{Kind: KindNamed, Mod: mod, Name: name})
}

// Node resolves a TypeId back to its TypeNode.
func (tc *TypeContext) Node(id TypeId) TypeNode {
	return tc.nodes[id]
}
