package morphic

import "fmt"

// ModDef is one module's finished definition.
type ModDef struct {
	Funcs  map[FuncName]*FuncDef
	Types  map[TypeName]*TypeDef
	Consts map[ConstName]*ConstDef
}

// ModDefBuilder builds one ModDef. Every FuncDefBuilder / TypeDefBuilder /
// ConstDefBuilder it hands out shares this ModDef's single TypeContext, so
// type ids are comparable module-wide - exactly the original's blanket
// TypeContext impl shared across those three builder kinds.
type ModDefBuilder struct {
	*TypeContext

	funcs  map[FuncName]*FuncDef
	types  map[TypeName]*TypeDef
	consts map[ConstName]*ConstDef
}

func NewModDefBuilder() *ModDefBuilder {
	return &ModDefBuilder{
		TypeContext: newTypeContext(),
		funcs:       map[FuncName]*FuncDef{},
		types:       map[TypeName]*TypeDef{},
		consts:      map[ConstName]*ConstDef{},
	}
}

func (m *ModDefBuilder) NewFuncDefBuilder(argType, retType TypeId) *FuncDefBuilder {
	return newFuncDefBuilder(m.TypeContext, argType, retType)
}

func (m *ModDefBuilder) NewTypeDefBuilder() *TypeDefBuilder {
	return newTypeDefBuilder(m.TypeContext)
}

func (m *ModDefBuilder) NewConstDefBuilder() *ConstDefBuilder {
	return newConstDefBuilder(m.TypeContext)
}

func (m *ModDefBuilder) AddFunc(name FuncName, def *FuncDef) error {
	if _, exists := m.funcs[name]; exists {
		return fmt.Errorf("morphic: func %q already defined", name)
	}
	m.funcs[name] = def
	return nil
}

// AddNamedTypeDef registers a finished TypeDef under name. Named
// distinctly from the embedded TypeContext's AddNamedType(mod, name) -
// which returns a *reference* TypeId to a (possibly not-yet-registered)
// named type - so the two are never confused at a call site.
func (m *ModDefBuilder) AddNamedTypeDef(name TypeName, def *TypeDef) error {
	if _, exists := m.types[name]; exists {
		return fmt.Errorf("morphic: type %q already defined", name)
	}
	m.types[name] = def
	return nil
}

func (m *ModDefBuilder) AddConst(name ConstName, def *ConstDef) error {
	if _, exists := m.consts[name]; exists {
		return fmt.Errorf("morphic: const %q already defined", name)
	}
	m.consts[name] = def
	return nil
}

func (m *ModDefBuilder) Build() (*ModDef, error) {
	return &ModDef{Funcs: m.funcs, Types: m.types, Consts: m.consts}, nil
}
