// Package ir defines the small monomorphized statement/expression tree that
// the tail-call pass and the alias-analysis lowering consume. The type
// checker, monomorphizer, and backend that build and eventually emit code
// from this tree are external collaborators (spec.md's "Out of scope");
// this package only carries the shapes those collaborators agree on.
package ir

// Symbol is a dense handle naming a local variable or top-level procedure.
type Symbol uint32

// JoinPointId names a local continuation introduced by a Join statement.
type JoinPointId uint32

// Param is a formal parameter: its runtime layout plus the symbol bound to
// it within the statement tree.
type Param struct {
	Symbol Symbol
	Layout Layout
	Borrow bool
}

// CallType distinguishes how a Call's callee is resolved.
type CallType int

const (
	// CallByName invokes a known top-level procedure.
	CallByName CallType = iota
	// CallForeign invokes a function outside the compilation unit.
	CallForeign
	// CallLowLevel invokes a primitive operation (arithmetic, list/dict/set/str
	// ops) that the backend implements directly.
	CallLowLevel
	// CallHigherOrder invokes a low-level operation parameterized by a
	// user-supplied function value (e.g. List.map).
	CallHigherOrder
)

// LowLevelOp enumerates the primitive operations alias-analysis lowering
// must model individually (see spec.md §4.4 item 3).
type LowLevelOp int

const (
	LowLevelUnknown LowLevelOp = iota
	LowLevelNumAdd
	LowLevelNumSub
	LowLevelNumMul
	LowLevelNumEq
	LowLevelListGet
	LowLevelListSet
	LowLevelListReplaceUnsafe
	LowLevelListAppend
	LowLevelListLen
	LowLevelDictInsert
	LowLevelDictGet
	LowLevelSetInsert
	LowLevelStrConcat
)

// Call is a call site: which callee, under which CallType, with which
// argument symbols.
type Call struct {
	Type LowLevelOp // meaningful only when CallType == CallLowLevel
	Kind CallType
	// Name is the called procedure's symbol (CallByName) or the foreign
	// symbol name (CallForeign).
	Name Symbol
	// HigherOrder is set only when Kind == CallHigherOrder: it names the
	// wrapped low-level op (e.g. list map) and the passed function symbol.
	HigherOrder *HigherOrderCall
	Arguments   []Symbol
}

// HigherOrderCall describes a call like List.map(list, f): a low-level op
// parameterized by a user function, optionally closing over captured data.
type HigherOrderCall struct {
	Op          LowLevelOp
	Passed      Symbol // the function value being applied
	CapturesEnv bool
}

// ExprKind discriminates an Expr's payload.
type ExprKind int

const (
	ExprCallKind ExprKind = iota
	ExprLiteralKind
	ExprTagKind
	ExprStructKind
	ExprAccessKind
	ExprResetKind
)

// Literal is a constant value carried by an Expr.
type Literal struct {
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Expr is the right-hand side of a Let binding.
type Expr struct {
	Kind ExprKind

	Call Call // ExprCallKind

	Literal Literal // ExprLiteralKind

	// ExprTagKind: construct a tag union alternative. TagLayout names the
	// enclosing union's layout so the lowering can decide whether the
	// constructed value must be wrapped in a named (recursive) type.
	TagName      string
	TagIndex     int
	TagArguments []Symbol
	TagLayout    Layout

	// ExprStructKind: build a tuple/record value from field symbols.
	StructFields []Symbol

	// ExprAccessKind: project field AccessIndex out of AccessOf.
	AccessOf    Symbol
	AccessIndex int

	// ExprResetKind: a unique-value reuse hint; modeled as a plain copy for
	// alias-analysis purposes, since in-place reuse does not change which
	// heap cells are reachable.
	ResetOf Symbol
}

// ModifyRc enumerates the refcounting operation a Refcounting statement
// performs on its target symbol.
type ModifyRc int

const (
	RcInc ModifyRc = iota
	RcDec
	RcDecRef
)

// Refcounting carries the operation kind and target symbol.
type Refcounting struct {
	Op     ModifyRc
	Target Symbol
}

// SwitchBranch is one arm of a Switch: the discriminant value it matches,
// and the statement tree to run when it does.
type SwitchBranch struct {
	Tag  int64
	Body *Stmt
}

// StmtKind discriminates a Stmt's payload. Exactly one of the payload
// fields on Stmt is meaningful for a given Kind.
type StmtKind int

const (
	StmtLet StmtKind = iota
	StmtInvoke
	StmtSwitch
	StmtJoin
	StmtJump
	StmtRefcounting
	StmtRet
	StmtRethrow
	StmtRuntimeError
)

// Stmt is one node of the monomorphized statement tree. Statements are
// arena-allocated and immutable after construction; a tree has no sharing.
type Stmt struct {
	Kind StmtKind

	// StmtLet: bind Symbol to the result of Expr (of layout Layout), then
	// run Continuation.
	Symbol       Symbol
	Expr         *Expr
	Layout       Layout
	Continuation *Stmt

	// StmtInvoke: like Let, but the call may raise; Pass runs on normal
	// return (Symbol bound), Fail runs on exception (Symbol unbound there).
	InvokeCall Call
	Pass       *Stmt
	Fail       *Stmt

	// StmtSwitch: dispatch on CondSymbol's value.
	CondSymbol    Symbol
	CondLayout    Layout
	Branches      []SwitchBranch
	DefaultBranch *Stmt
	RetLayout     Layout

	// StmtJoin: declare continuation ID with Parameters, lower Remainder
	// (run in the current scope) then JoinContinuation (the join's own body,
	// run with Parameters bound).
	JoinID       JoinPointId
	Parameters   []Param
	Remainder    *Stmt
	JoinContinuation *Stmt

	// StmtJump: transfer control to JumpID, passing JumpArguments.
	JumpID        JoinPointId
	JumpArguments []Symbol

	// StmtRefcounting: perform Refcount, then run Continuation (shares the
	// Continuation field with StmtLet; each Kind uses a disjoint subset of
	// Stmt's fields).
	Refcount *Refcounting

	// StmtRet: return the value bound to Symbol (reuses the Symbol field).

	// StmtRuntimeError carries a diagnostic message; it never executes.
	RuntimeErrorMsg string
}

// Let builds a StmtLet node.
func Let(symbol Symbol, expr *Expr, layout Layout, continuation *Stmt) *Stmt {
	return &Stmt{Kind: StmtLet, Symbol: symbol, Expr: expr, Layout: layout, Continuation: continuation}
}

// Invoke builds a StmtInvoke node.
func Invoke(symbol Symbol, call Call, layout Layout, pass, fail *Stmt) *Stmt {
	return &Stmt{Kind: StmtInvoke, Symbol: symbol, InvokeCall: call, Layout: layout, Pass: pass, Fail: fail}
}

// Ret builds a StmtRet node.
func Ret(symbol Symbol) *Stmt {
	return &Stmt{Kind: StmtRet, Symbol: symbol}
}

// Jump builds a StmtJump node.
func Jump(id JoinPointId, args []Symbol) *Stmt {
	return &Stmt{Kind: StmtJump, JumpID: id, JumpArguments: args}
}

// Rethrow builds a StmtRethrow node.
func Rethrow() *Stmt { return &Stmt{Kind: StmtRethrow} }

// RuntimeError builds a StmtRuntimeError node.
func RuntimeError(msg string) *Stmt {
	return &Stmt{Kind: StmtRuntimeError, RuntimeErrorMsg: msg}
}

// Join builds a StmtJoin node.
func Join(id JoinPointId, parameters []Param, remainder, continuation *Stmt) *Stmt {
	return &Stmt{
		Kind:             StmtJoin,
		JoinID:           id,
		Parameters:       parameters,
		Remainder:        remainder,
		JoinContinuation: continuation,
	}
}
