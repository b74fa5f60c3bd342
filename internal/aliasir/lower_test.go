package aliasir_test

import (
	"testing"

	"github.com/novalang/typecore/internal/aliasir"
	"github.com/novalang/typecore/internal/ir"
	"github.com/novalang/typecore/internal/morphic"
)

func intLayout() ir.Layout { return ir.Layout{Kind: ir.LayoutInt, IntWidth: 64} }

func TestLowerProcIdentity(t *testing.T) {
	proc := ir.Proc{
		Name:      ir.Symbol(1),
		Args:      []ir.Param{{Symbol: ir.Symbol(10), Layout: intLayout()}},
		RetLayout: intLayout(),
		Body:      ir.Ret(ir.Symbol(10)),
		DebugName: "identity",
	}

	mod := morphic.NewModDefBuilder()
	l := aliasir.NewLowering(mod, []ir.Proc{proc})

	name, def, err := l.LowerProc(proc)
	if err != nil {
		t.Fatalf("LowerProc: %v", err)
	}
	if name == "" {
		t.Fatalf("expected a non-empty FuncName")
	}
	if def == nil || len(def.Blocks) == 0 {
		t.Fatalf("expected a non-empty FuncDef body")
	}
}

func TestLowerProgramAggregatesFailures(t *testing.T) {
	bad := ir.Proc{
		Name:      ir.Symbol(2),
		Args:      nil,
		RetLayout: intLayout(),
		Body:      ir.Ret(ir.Symbol(999)), // unbound: must fail
		DebugName: "bad",
	}
	good := ir.Proc{
		Name:      ir.Symbol(3),
		Args:      []ir.Param{{Symbol: ir.Symbol(11), Layout: intLayout()}},
		RetLayout: intLayout(),
		Body:      ir.Ret(ir.Symbol(11)),
		DebugName: "good",
	}

	mod := morphic.NewModDefBuilder()
	l := aliasir.NewLowering(mod, []ir.Proc{bad, good})

	defs, err := l.LowerProgram([]ir.Proc{bad, good})
	if err == nil {
		t.Fatalf("expected LowerProgram to report the bad proc's failure")
	}
	if _, ok := defs[good.Name]; !ok {
		t.Fatalf("expected the good proc to still lower despite the bad one failing")
	}
	if _, ok := defs[bad.Name]; ok {
		t.Fatalf("the bad proc must not appear in the successful output")
	}
}

func TestLowerProcSwitchAndJoin(t *testing.T) {
	// join point j(x30: Int) { ret x30 }
	// switch on x20: case 0 -> jump j(x21); default -> jump j(x22)
	join := ir.Join(
		ir.JoinPointId(1),
		[]ir.Param{{Symbol: ir.Symbol(30), Layout: intLayout()}},
		&ir.Stmt{
			Kind:          ir.StmtSwitch,
			CondSymbol:    ir.Symbol(20),
			CondLayout:    intLayout(),
			RetLayout:     intLayout(),
			Branches:      []ir.SwitchBranch{{Tag: 0, Body: ir.Jump(ir.JoinPointId(1), []ir.Symbol{ir.Symbol(21)})}},
			DefaultBranch: ir.Jump(ir.JoinPointId(1), []ir.Symbol{ir.Symbol(22)}),
		},
		ir.Ret(ir.Symbol(30)),
	)

	proc := ir.Proc{
		Name: ir.Symbol(4),
		Args: []ir.Param{
			{Symbol: ir.Symbol(20), Layout: intLayout()},
			{Symbol: ir.Symbol(21), Layout: intLayout()},
			{Symbol: ir.Symbol(22), Layout: intLayout()},
		},
		RetLayout: intLayout(),
		Body:      join,
		DebugName: "withJoin",
	}

	mod := morphic.NewModDefBuilder()
	l := aliasir.NewLowering(mod, []ir.Proc{proc})
	_, def, err := l.LowerProc(proc)
	if err != nil {
		t.Fatalf("LowerProc: %v", err)
	}
	if len(def.Continuations) != 1 {
		t.Fatalf("expected exactly one declared continuation, got %d", len(def.Continuations))
	}
}

func TestLowerProcListReplaceUnsafe(t *testing.T) {
	listLayout := ir.Layout{Kind: ir.LayoutList, ListElem: &ir.Layout{Kind: ir.LayoutInt, IntWidth: 64}}

	body := ir.Let(
		ir.Symbol(40),
		&ir.Expr{Kind: ir.ExprCallKind, Call: ir.Call{
			Kind: ir.CallLowLevel,
			Type: ir.LowLevelListReplaceUnsafe,
			Arguments: []ir.Symbol{
				ir.Symbol(30), // list
				ir.Symbol(31), // index
				ir.Symbol(32), // new elem
			},
		}},
		listLayout,
		ir.Ret(ir.Symbol(40)),
	)

	proc := ir.Proc{
		Name: ir.Symbol(5),
		Args: []ir.Param{
			{Symbol: ir.Symbol(30), Layout: listLayout},
			{Symbol: ir.Symbol(31), Layout: intLayout()},
			{Symbol: ir.Symbol(32), Layout: intLayout()},
		},
		RetLayout: listLayout,
		Body:      body,
		DebugName: "replaceUnsafe",
	}

	mod := morphic.NewModDefBuilder()
	l := aliasir.NewLowering(mod, []ir.Proc{proc})
	_, def, err := l.LowerProc(proc)
	if err != nil {
		t.Fatalf("LowerProc: %v", err)
	}
	if len(def.Blocks) == 0 {
		t.Fatalf("expected a non-empty body")
	}
}
