package aliasir

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/novalang/typecore/internal/ir"
	"github.com/novalang/typecore/internal/morphic"
)

// modAppName mirrors the original's `pub const MOD_APP: ModName =
// ModName(b"UserApp")`: every procedure lowers into this one module.
const modAppName morphic.ModName = "UserApp"

// procSignature is what LowerProc needs about a call's callee to reproduce
// the callee's own FuncNameBytes, without re-lowering the callee.
type procSignature struct {
	argLayouts []ir.Layout
	retLayout  ir.Layout
	debugName  string
}

// Lowering lowers a whole program's procedures into one morphic.ModDef. It
// holds the state that must persist across procedures: the shared module
// builder, which recursive union layouts have already been registered, the
// call graph's signatures (so a CallByName site can reproduce its callee's
// FuncNameBytes), and running counters for the opaque spec/update-mode
// tokens each call/update site mints.
type Lowering struct {
	mod        *morphic.ModDefBuilder
	signatures map[ir.Symbol]procSignature

	registeredTypes map[string]struct{}

	nextSpecVar    uint32
	nextUpdateMode uint32
}

// NewLowering prepares a Lowering for the given whole program. procs is
// consulted only for call-site signature lookups (CallByName); it need not
// include every procedure ever lowered through this Lowering.
func NewLowering(mod *morphic.ModDefBuilder, procs []ir.Proc) *Lowering {
	sigs := make(map[ir.Symbol]procSignature, len(procs))
	for _, p := range procs {
		argLayouts := make([]ir.Layout, len(p.Args))
		for i, a := range p.Args {
			argLayouts[i] = a.Layout
		}
		sigs[p.Name] = procSignature{argLayouts: argLayouts, retLayout: p.RetLayout, debugName: p.DebugName}
	}
	return &Lowering{
		mod:             mod,
		signatures:      sigs,
		registeredTypes: map[string]struct{}{},
	}
}

func (l *Lowering) newSpecVar() morphic.CalleeSpecVar {
	v := morphic.CalleeSpecVar(l.nextSpecVar)
	l.nextSpecVar++
	return v
}

func (l *Lowering) newUpdateMode() morphic.UpdateModeVar {
	v := morphic.UpdateModeVar(l.nextUpdateMode)
	l.nextUpdateMode++
	return v
}

// frame carries the per-procedure state a statement/expression walk needs:
// the function body being built, the symbol environment, and the join
// points declared so far. Unlike Lowering, a frame never outlives one
// LowerProc call.
type frame struct {
	*Lowering
	fb      *morphic.FuncDefBuilder
	env     map[ir.Symbol]morphic.ValueId
	joins   map[ir.JoinPointId]morphic.ContinuationId
	retType morphic.TypeId
}

// LowerProgram lowers every proc, collecting failures instead of aborting
// on the first one, per spec.md §7's pass-level error aggregation.
func (l *Lowering) LowerProgram(procs []ir.Proc) (map[ir.Symbol]*morphic.FuncDef, error) {
	out := make(map[ir.Symbol]*morphic.FuncDef, len(procs))
	var errs *multierror.Error
	for _, p := range procs {
		name, def, err := l.LowerProc(p)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("proc %q: %w", name, err))
			continue
		}
		out[p.Name] = def
		if err := l.mod.AddFunc(name, def); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	return out, errs.ErrorOrNil()
}

// LowerProc implements spec.md §4.4 steps 1-4 for a single procedure:
// project the tupled formal argument into a symbol environment, walk the
// statement tree, and hand the finished body to the FuncDefBuilder.
func (l *Lowering) LowerProc(proc ir.Proc) (morphic.FuncName, *morphic.FuncDef, error) {
	argLayouts := make([]ir.Layout, len(proc.Args))
	for i, a := range proc.Args {
		argLayouts[i] = a.Layout
	}
	nameBytes, err := FuncNameBytes(proc.Name, argLayouts, proc.RetLayout, proc.DebugName)
	if err != nil {
		return "", nil, err
	}
	name := morphic.FuncName(nameBytes)

	argFieldTypes := make([]morphic.TypeId, len(proc.Args))
	for i, a := range proc.Args {
		t, err := l.typeOf(a.Layout, nil)
		if err != nil {
			return name, nil, err
		}
		argFieldTypes[i] = t
	}
	retType, err := l.typeOf(proc.RetLayout, nil)
	if err != nil {
		return name, nil, err
	}

	argType := l.mod.AddTupleType(argFieldTypes)
	fb := l.mod.NewFuncDefBuilder(argType, retType)
	entry := fb.AddBlock()
	argVal := fb.GetArgument()

	f := &frame{Lowering: l, fb: fb, env: map[ir.Symbol]morphic.ValueId{}, joins: map[ir.JoinPointId]morphic.ContinuationId{}, retType: retType}
	for i, a := range proc.Args {
		v, err := fb.AddGetTupleField(entry, argVal, uint32(i))
		if err != nil {
			return name, nil, err
		}
		f.env[a.Symbol] = v
	}

	root, err := f.lowerStmt(entry, proc.Body)
	if err != nil {
		return name, nil, err
	}

	def, err := fb.Build(morphic.BlockExpr{Block: entry, Value: root})
	return name, def, err
}

// lowerStmt lowers stmt and everything it leads into, appending ops to
// block, and returns the value the statement chain evaluates to. Control
// constructs (Switch, Invoke) allocate sibling blocks for their arms and
// fold the choice back into block via an ExprChoice op, so the caller
// never has to track a shifting "current block".
func (f *frame) lowerStmt(block morphic.BlockId, stmt *ir.Stmt) (morphic.ValueId, error) {
	switch stmt.Kind {
	case ir.StmtLet:
		v, err := f.lowerExpr(block, stmt.Expr, stmt.Layout)
		if err != nil {
			return 0, err
		}
		f.env[stmt.Symbol] = v
		if stmt.Continuation == nil {
			return v, nil
		}
		return f.lowerStmt(block, stmt.Continuation)

	case ir.StmtInvoke:
		v, err := f.lowerCall(block, stmt.InvokeCall, stmt.Layout)
		if err != nil {
			return 0, err
		}
		f.env[stmt.Symbol] = v

		passBlock := f.fb.AddBlock()
		if _, err := f.lowerStmt(passBlock, stmt.Pass); err != nil {
			return 0, err
		}

		failBlock := f.fb.AddBlock()
		if stmt.Fail != nil {
			if _, err := f.lowerStmt(failBlock, stmt.Fail); err != nil {
				return 0, err
			}
		} else {
			if _, err := f.fb.AddTerminate(failBlock, f.retType); err != nil {
				return 0, err
			}
		}

		return f.fb.AddChoice(block, []morphic.BlockId{passBlock, failBlock})

	case ir.StmtSwitch:
		cases := make([]morphic.BlockId, 0, len(stmt.Branches)+1)
		for _, br := range stmt.Branches {
			b := f.fb.AddBlock()
			if _, err := f.lowerStmt(b, br.Body); err != nil {
				return 0, err
			}
			cases = append(cases, b)
		}
		if stmt.DefaultBranch != nil {
			b := f.fb.AddBlock()
			if _, err := f.lowerStmt(b, stmt.DefaultBranch); err != nil {
				return 0, err
			}
			cases = append(cases, b)
		}
		return f.fb.AddChoice(block, cases)

	case ir.StmtJoin:
		argType, err := f.joinArgType(stmt.Parameters)
		if err != nil {
			return 0, err
		}
		contID, paramVal, err := f.fb.DeclareContinuation(block, argType, f.retType)
		if err != nil {
			return 0, err
		}
		f.joins[stmt.JoinID] = contID

		// The remainder runs with the current bindings, so it is lowered
		// before the join's parameters are bound.
		remVal, err := f.lowerStmt(block, stmt.Remainder)
		if err != nil {
			return 0, err
		}

		contBlock := f.fb.AddBlock()
		for i, p := range stmt.Parameters {
			pv, err := f.fb.AddGetTupleField(contBlock, paramVal, uint32(i))
			if err != nil {
				return 0, err
			}
			f.env[p.Symbol] = pv
		}
		contVal, err := f.lowerStmt(contBlock, stmt.JoinContinuation)
		if err != nil {
			return 0, err
		}
		if err := f.fb.DefineContinuation(contID, morphic.BlockExpr{Block: contBlock, Value: contVal}); err != nil {
			return 0, err
		}

		return remVal, nil

	case ir.StmtJump:
		contID, ok := f.joins[stmt.JumpID]
		if !ok {
			return 0, fmt.Errorf("aliasir: jump to undeclared join point %d", stmt.JumpID)
		}
		args := make([]morphic.ValueId, len(stmt.JumpArguments))
		for i, s := range stmt.JumpArguments {
			args[i] = f.env[s]
		}
		argVal, err := f.fb.AddMakeTuple(block, args)
		if err != nil {
			return 0, err
		}
		return f.fb.AddJump(block, contID, argVal, f.retType)

	case ir.StmtRefcounting:
		if err := f.lowerRefcounting(block, stmt.Refcount); err != nil {
			return 0, err
		}
		if stmt.Continuation == nil {
			return 0, fmt.Errorf("aliasir: refcounting statement with no continuation")
		}
		return f.lowerStmt(block, stmt.Continuation)

	case ir.StmtRet:
		v, ok := f.env[stmt.Symbol]
		if !ok {
			return 0, fmt.Errorf("aliasir: return of unbound symbol %d", stmt.Symbol)
		}
		return v, nil

	case ir.StmtRethrow, ir.StmtRuntimeError:
		return f.fb.AddTerminate(block, f.retType)

	default:
		return 0, fmt.Errorf("aliasir: unhandled statement kind %v", stmt.Kind)
	}
}

func (f *frame) joinArgType(params []ir.Param) (morphic.TypeId, error) {
	fields := make([]morphic.TypeId, len(params))
	for i, p := range params {
		t, err := f.typeOf(p.Layout, nil)
		if err != nil {
			return 0, err
		}
		fields[i] = t
	}
	return f.mod.AddTupleType(fields), nil
}

// lowerRefcounting models a retain/release as touching the target's heap
// cell: RcInc/RcDec may observe the cell's current aliasing state, while
// RcDecRef - a release that may recursively free a self-referential
// structure - touches the whole value, not just its outer cell.
func (f *frame) lowerRefcounting(block morphic.BlockId, rc *ir.Refcounting) error {
	target, ok := f.env[rc.Target]
	if !ok {
		return fmt.Errorf("aliasir: refcounting of unbound symbol %d", rc.Target)
	}
	switch rc.Op {
	case ir.RcInc, ir.RcDec:
		cell, err := f.fb.AddGetTupleField(block, target, cellIndex)
		if err != nil {
			return err
		}
		return f.fb.AddTouch(block, cell)
	case ir.RcDecRef:
		return f.fb.AddRecursiveTouch(block, target)
	default:
		return fmt.Errorf("aliasir: unhandled refcounting op %v", rc.Op)
	}
}
