package aliasir

import "github.com/novalang/typecore/internal/morphic"

// HostExposed names one function the host platform may call directly,
// with the analysis types its argument and result already lowered to.
type HostExposed struct {
	Name             morphic.FuncName
	ArgType, RetType morphic.TypeId
}

// BuildEntryPoint resolves spec.md §9's open question about how to seed
// alias analysis at the program's real entry point: the host runtime may
// call mainForHost once, or instead call any host-exposed function
// directly with its own argument. Rather than pick one, this builds a
// wrapper function whose body is a choice between both: calling
// mainForHost with a best-case-unique argument value (built by wrapping an
// unknown_with result in a one-variant union and immediately unwrapping
// it, so the analysis cannot have inherited any aliasing facts about it
// from elsewhere), or calling each host-exposed function with its own
// freshly unknown_with'd argument. Registering this wrapper - not
// mainForHost itself - as the module's entry point gives the solver every
// path the host is actually allowed to take.
func (l *Lowering) BuildEntryPoint(mainForHost morphic.FuncName, mainArgType morphic.TypeId, hostExposed []HostExposed) (morphic.FuncName, *morphic.FuncDef, error) {
	unit := l.mod.AddTupleType(nil)
	fb := l.mod.NewFuncDefBuilder(unit, unit)
	entry := fb.AddBlock()

	cases := make([]morphic.BlockId, 0, 1+len(hostExposed))

	mainBlock := fb.AddBlock()
	rawArg, err := fb.AddUnknownWith(mainBlock, nil, mainArgType)
	if err != nil {
		return "", nil, err
	}
	wrapped, err := fb.AddMakeUnion(mainBlock, []morphic.TypeId{mainArgType}, 0, rawArg)
	if err != nil {
		return "", nil, err
	}
	uniqueArg, err := fb.AddUnwrapUnion(mainBlock, wrapped, 0)
	if err != nil {
		return "", nil, err
	}
	if _, err := fb.AddCall(mainBlock, l.newSpecVar(), modAppName, mainForHost, uniqueArg); err != nil {
		return "", nil, err
	}
	if _, err := fb.AddMakeTuple(mainBlock, nil); err != nil {
		return "", nil, err
	}
	cases = append(cases, mainBlock)

	for _, hf := range hostExposed {
		b := fb.AddBlock()
		arg, err := fb.AddUnknownWith(b, nil, hf.ArgType)
		if err != nil {
			return "", nil, err
		}
		if _, err := fb.AddCall(b, l.newSpecVar(), modAppName, hf.Name, arg); err != nil {
			return "", nil, err
		}
		if _, err := fb.AddMakeTuple(b, nil); err != nil {
			return "", nil, err
		}
		cases = append(cases, b)
	}

	choiceVal, err := fb.AddChoice(entry, cases)
	if err != nil {
		return "", nil, err
	}

	def, err := fb.Build(morphic.BlockExpr{Block: entry, Value: choiceVal})
	return "mainForHostEntry", def, err
}
