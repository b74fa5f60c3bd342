package morphic

import "fmt"

// EntryPoint names the one function a ModDef exposes as a program's start.
type EntryPoint struct {
	Mod  ModName
	Func FuncName
}

// Program is the finished analysis-IR input: a set of modules plus a named
// entry point. A real morphic_lib would hand this to its solver; this
// package stops here, per spec.md §1's scoping of the downstream
// alias-analysis solver out of this repository.
type Program struct {
	Mods        map[ModName]*ModDef
	EntryPoints map[EntryPointName]EntryPoint
}

type ProgramBuilder struct {
	mods        map[ModName]*ModDef
	entryPoints map[EntryPointName]EntryPoint
}

func NewProgramBuilder() *ProgramBuilder {
	return &ProgramBuilder{mods: map[ModName]*ModDef{}, entryPoints: map[EntryPointName]EntryPoint{}}
}

func (p *ProgramBuilder) AddMod(name ModName, def *ModDef) error {
	if _, exists := p.mods[name]; exists {
		return fmt.Errorf("morphic: module %q already defined", name)
	}
	p.mods[name] = def
	return nil
}

func (p *ProgramBuilder) AddEntryPoint(name EntryPointName, mod ModName, fn FuncName) error {
	if _, exists := p.entryPoints[name]; exists {
		return fmt.Errorf("morphic: entry point %q already defined", name)
	}
	p.entryPoints[name] = EntryPoint{Mod: mod, Func: fn}
	return nil
}

func (p *ProgramBuilder) Build() (*Program, error) {
	return &Program{Mods: p.mods, EntryPoints: p.entryPoints}, nil
}
