package morphic

// ExprKind is the sum of primitive operations spec.md §4.4 lists: blocks,
// tuples, unions, named types, heap cells, bags, continuations, calls,
// choices.
type ExprKind int

const (
	ExprArgument ExprKind = iota
	ExprMakeTuple
	ExprGetTupleField
	ExprMakeUnion
	ExprUnwrapUnion
	ExprMakeNamed
	ExprUnwrapNamed
	ExprNewHeapCell
	ExprEmptyBag
	ExprBagInsert
	ExprBagGet
	ExprTouch
	ExprUpdate
	ExprRecursiveTouch
	ExprCall
	ExprChoice
	ExprUnknownWith
	ExprSubBlock
	ExprConstRef
	ExprTerminate
	ExprJump
)

// Op is one instruction in a Block's op list. Only the fields relevant to
// Kind are populated; this mirrors the tagged-struct idiom already used
// for internal/ir.Expr, appropriate here too since most Op variants share
// the Args/Index/Type shape and only a few need Mod/Name/FuncName.
type Op struct {
	Kind ExprKind
	Args []ValueId

	Index uint32 // GetTupleField

	Variants []TypeId // MakeUnion
	TagID    uint32   // MakeUnion, UnwrapUnion

	Mod      ModName  // MakeNamed, UnwrapNamed, ConstRef, Call
	TypeName TypeName // MakeNamed, UnwrapNamed
	FuncName FuncName // Call
	SpecVar  CalleeSpecVar
	Const    ConstName // ConstRef

	UpdateMode UpdateModeVar // Update

	Cases []BlockId // Choice
	Sub   BlockExpr // SubBlock

	Cont    ContinuationId // Jump
	ResType TypeId         // UnknownWith, EmptyBag, Terminate; also DeclareContinuation's ret type
}

// Block is one basic block: an ordered list of ops, the last of which is
// the block's value.
type Block struct {
	Ops []Op
}

// Continuation is a declared join point: its parameter type, return type,
// and (once DefineContinuation runs) its body.
type Continuation struct {
	ArgType, RetType TypeId
	Body             *BlockExpr
}

// ExprBuilder accumulates blocks and continuations for one function or
// constant body. FuncDefBuilder and ConstDefBuilder both embed it.
type ExprBuilder struct {
	blocks        []*Block
	continuations []*Continuation
	nextValue     uint32
}

func newExprBuilder() *ExprBuilder {
	return &ExprBuilder{}
}

func (b *ExprBuilder) block(id BlockId) *Block { return b.blocks[id] }

func (b *ExprBuilder) value() ValueId {
	v := ValueId(b.nextValue)
	b.nextValue++
	return v
}

// AddBlock allocates a fresh, empty block.
func (b *ExprBuilder) AddBlock() BlockId {
	id := BlockId(len(b.blocks))
	b.blocks = append(b.blocks, &Block{})
	return id
}

func (b *ExprBuilder) emit(block BlockId, op Op) ValueId {
	b.blocks[block].Ops = append(b.blocks[block].Ops, op)
	return b.value()
}

func (b *ExprBuilder) AddMakeTuple(block BlockId, fields []ValueId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprMakeTuple, Args: append([]ValueId{}, fields...)}), nil
}

func (b *ExprBuilder) AddGetTupleField(block BlockId, tuple ValueId, index uint32) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprGetTupleField, Args: []ValueId{tuple}, Index: index}), nil
}

func (b *ExprBuilder) AddMakeUnion(block BlockId, variantTypes []TypeId, tagID uint32, value ValueId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprMakeUnion, Args: []ValueId{value}, Variants: append([]TypeId{}, variantTypes...), TagID: tagID}), nil
}

func (b *ExprBuilder) AddUnwrapUnion(block BlockId, value ValueId, tagID uint32) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprUnwrapUnion, Args: []ValueId{value}, TagID: tagID}), nil
}

func (b *ExprBuilder) AddMakeNamed(block BlockId, mod ModName, name TypeName, value ValueId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprMakeNamed, Args: []ValueId{value}, Mod: mod, TypeName: name}), nil
}

func (b *ExprBuilder) AddUnwrapNamed(block BlockId, mod ModName, name TypeName, value ValueId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprUnwrapNamed, Args: []ValueId{value}, Mod: mod, TypeName: name}), nil
}

func (b *ExprBuilder) AddNewHeapCell(block BlockId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprNewHeapCell}), nil
}

func (b *ExprBuilder) AddEmptyBag(block BlockId, elemType TypeId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprEmptyBag, ResType: elemType}), nil
}

func (b *ExprBuilder) AddBagInsert(block BlockId, bag, value ValueId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprBagInsert, Args: []ValueId{bag, value}}), nil
}

func (b *ExprBuilder) AddBagGet(block BlockId, bag ValueId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprBagGet, Args: []ValueId{bag}}), nil
}

func (b *ExprBuilder) AddTouch(block BlockId, cell ValueId) error {
	b.emit(block, Op{Kind: ExprTouch, Args: []ValueId{cell}})
	return nil
}

func (b *ExprBuilder) AddUpdate(block BlockId, mode UpdateModeVar, cell ValueId) error {
	b.emit(block, Op{Kind: ExprUpdate, Args: []ValueId{cell}, UpdateMode: mode})
	return nil
}

func (b *ExprBuilder) AddRecursiveTouch(block BlockId, value ValueId) error {
	b.emit(block, Op{Kind: ExprRecursiveTouch, Args: []ValueId{value}})
	return nil
}

func (b *ExprBuilder) AddCall(block BlockId, spec CalleeSpecVar, mod ModName, name FuncName, arg ValueId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprCall, Args: []ValueId{arg}, Mod: mod, FuncName: name, SpecVar: spec}), nil
}

func (b *ExprBuilder) AddChoice(block BlockId, cases []BlockId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprChoice, Cases: append([]BlockId{}, cases...)}), nil
}

func (b *ExprBuilder) AddUnknownWith(block BlockId, args []ValueId, resultType TypeId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprUnknownWith, Args: append([]ValueId{}, args...), ResType: resultType}), nil
}

func (b *ExprBuilder) AddSubBlock(block BlockId, sub BlockExpr) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprSubBlock, Sub: sub}), nil
}

func (b *ExprBuilder) AddConstRef(block BlockId, mod ModName, name ConstName) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprConstRef, Mod: mod, Const: name}), nil
}

func (b *ExprBuilder) AddTerminate(block BlockId, typ TypeId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprTerminate, ResType: typ}), nil
}

func (b *ExprBuilder) AddJump(block BlockId, cont ContinuationId, arg ValueId, retType TypeId) (ValueId, error) {
	return b.emit(block, Op{Kind: ExprJump, Args: []ValueId{arg}, Cont: cont, ResType: retType}), nil
}

// DeclareContinuation registers a join point's signature and returns its
// id plus the value id its body block will bind the argument to.
func (b *ExprBuilder) DeclareContinuation(block BlockId, argType, retType TypeId) (ContinuationId, ValueId, error) {
	id := ContinuationId(len(b.continuations))
	b.continuations = append(b.continuations, &Continuation{ArgType: argType, RetType: retType})
	return id, b.value(), nil
}

// DefineContinuation attaches a body to a previously declared join point.
func (b *ExprBuilder) DefineContinuation(id ContinuationId, body BlockExpr) error {
	b.continuations[id].Body = &body
	return nil
}
