package morphic_test

import (
	"testing"

	"github.com/novalang/typecore/internal/morphic"
)

func TestFuncDefBuilderRoundTrip(t *testing.T) {
	mod := morphic.NewModDefBuilder()
	unit := mod.AddTupleType(nil)

	fb := mod.NewFuncDefBuilder(unit, unit)
	entry := fb.AddBlock()
	if _, err := fb.AddMakeTuple(entry, nil); err != nil {
		t.Fatalf("AddMakeTuple: %v", err)
	}
	v, err := fb.AddMakeTuple(entry, nil)
	if err != nil {
		t.Fatalf("AddMakeTuple: %v", err)
	}

	def, err := fb.Build(morphic.BlockExpr{Block: entry, Value: v})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if err := mod.AddFunc("f", def); err != nil {
		t.Fatalf("AddFunc: %v", err)
	}
	if err := mod.AddFunc("f", def); err == nil {
		t.Fatalf("expected duplicate AddFunc to fail")
	}

	got, err := mod.Build()
	if err != nil {
		t.Fatalf("ModDefBuilder.Build: %v", err)
	}
	if _, ok := got.Funcs["f"]; !ok {
		t.Fatalf("expected func %q in the built ModDef", "f")
	}
}

func TestProgramBuilderRejectsDuplicates(t *testing.T) {
	p := morphic.NewProgramBuilder()
	mod := morphic.NewModDefBuilder()
	def, err := mod.Build()
	if err != nil {
		t.Fatalf("ModDefBuilder.Build: %v", err)
	}

	if err := p.AddMod("M", def); err != nil {
		t.Fatalf("AddMod: %v", err)
	}
	if err := p.AddMod("M", def); err == nil {
		t.Fatalf("expected duplicate AddMod to fail")
	}
	if err := p.AddEntryPoint("main", "M", "f"); err != nil {
		t.Fatalf("AddEntryPoint: %v", err)
	}
	if err := p.AddEntryPoint("main", "M", "g"); err == nil {
		t.Fatalf("expected duplicate AddEntryPoint to fail")
	}

	prog, err := p.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if prog.EntryPoints["main"].Func != "f" {
		t.Fatalf("entry point func = %q, want %q", prog.EntryPoints["main"].Func, "f")
	}
}

func TestNamedTypeRegistrationDistinctFromReference(t *testing.T) {
	mod := morphic.NewModDefBuilder()
	tdb := mod.NewTypeDefBuilder()
	root := tdb.AddTupleType(nil)
	def, err := tdb.Build(root)
	if err != nil {
		t.Fatalf("TypeDefBuilder.Build: %v", err)
	}

	if err := mod.AddNamedTypeDef("Rec", def); err != nil {
		t.Fatalf("AddNamedTypeDef: %v", err)
	}

	// The embedded TypeContext's AddNamedType returns a *reference* TypeId
	// and must remain reachable separately from the def-registration method
	// above, even though both are named "AddNamedType"-adjacent.
	ref := mod.AddNamedType("M", "Rec")
	if mod.Node(ref).Name != "Rec" {
		t.Fatalf("reference TypeNode.Name = %q, want %q", mod.Node(ref).Name, "Rec")
	}
}
