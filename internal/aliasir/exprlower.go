package aliasir

import (
	"fmt"

	"github.com/novalang/typecore/internal/ir"
	"github.com/novalang/typecore/internal/morphic"
)

// lowerExpr lowers the right-hand side of a Let/Invoke binding. resultLayout
// is the layout the binding's own Stmt carries; it is only consulted by the
// calls (foreign, unmodeled low-level and higher-order) that have no other
// way to learn their result's analysis type. Literals ignore it.
func (f *frame) lowerExpr(block morphic.BlockId, expr *ir.Expr, resultLayout ir.Layout) (morphic.ValueId, error) {
	switch expr.Kind {
	case ir.ExprCallKind:
		return f.lowerCall(block, expr.Call, resultLayout)

	case ir.ExprLiteralKind:
		// Scalars carry no heap identity; every primitive layout already
		// maps to the unit tuple type (typemap.go), so its value does too.
		return f.fb.AddMakeTuple(block, nil)

	case ir.ExprTagKind:
		return f.lowerTag(block, expr)

	case ir.ExprStructKind:
		args := make([]morphic.ValueId, len(expr.StructFields))
		for i, s := range expr.StructFields {
			v, ok := f.env[s]
			if !ok {
				return 0, fmt.Errorf("aliasir: struct field references unbound symbol %d", s)
			}
			args[i] = v
		}
		return f.fb.AddMakeTuple(block, args)

	case ir.ExprAccessKind:
		v, ok := f.env[expr.AccessOf]
		if !ok {
			return 0, fmt.Errorf("aliasir: access of unbound symbol %d", expr.AccessOf)
		}
		return f.fb.AddGetTupleField(block, v, uint32(expr.AccessIndex))

	case ir.ExprResetKind:
		// A unique-value reuse hint: for alias-analysis purposes this is
		// the same value as before, not a new heap cell.
		v, ok := f.env[expr.ResetOf]
		if !ok {
			return 0, fmt.Errorf("aliasir: reset of unbound symbol %d", expr.ResetOf)
		}
		return v, nil

	default:
		return 0, fmt.Errorf("aliasir: unhandled expr kind %v", expr.Kind)
	}
}

// lowerTag builds a tag union value: the payload tuple, wrapped into the
// union's TypeId, and - if the union is recursive - wrapped once more into
// its registered named type.
func (f *frame) lowerTag(block morphic.BlockId, expr *ir.Expr) (morphic.ValueId, error) {
	u := expr.TagLayout.Union
	if u == nil {
		return 0, fmt.Errorf("aliasir: tag expression with no union layout")
	}

	args := make([]morphic.ValueId, len(expr.TagArguments))
	for i, s := range expr.TagArguments {
		v, ok := f.env[s]
		if !ok {
			return 0, fmt.Errorf("aliasir: tag argument references unbound symbol %d", s)
		}
		args[i] = v
	}
	payload, err := f.fb.AddMakeTuple(block, args)
	if err != nil {
		return 0, err
	}

	variantTypes := make([]morphic.TypeId, len(u.Variants))
	for i, fields := range u.Variants {
		ids := make([]morphic.TypeId, len(fields))
		for j, fl := range fields {
			id, err := f.typeOf(fl, nil)
			if err != nil {
				return 0, err
			}
			ids[j] = id
		}
		variantTypes[i] = f.mod.AddTupleType(ids)
	}

	unionVal, err := f.fb.AddMakeUnion(block, variantTypes, uint32(expr.TagIndex), payload)
	if err != nil {
		return 0, err
	}

	if u.Kind == ir.UnionNonRecursive {
		return unionVal, nil
	}

	// Registering via typeOf ensures the named TypeDef exists even if this
	// is the first time this recursive shape is constructed rather than
	// matched against.
	if _, err := f.typeOf(expr.TagLayout, nil); err != nil {
		return 0, err
	}
	name, err := RecursiveTagUnionName(ir.Layout{Kind: ir.LayoutUnion, Union: u})
	if err != nil {
		return 0, err
	}
	return f.fb.AddMakeNamed(block, modAppName, morphic.TypeName(name), unionVal)
}

// lowerCall dispatches a call site on its CallType, per spec.md §4.4 item
// 3's per-lowlevel-op models.
func (f *frame) lowerCall(block morphic.BlockId, call ir.Call, resultLayout ir.Layout) (morphic.ValueId, error) {
	switch call.Kind {
	case ir.CallByName:
		return f.lowerCallByName(block, call)

	case ir.CallForeign:
		return f.lowerUnknown(block, call.Arguments, resultLayout)

	case ir.CallLowLevel:
		return f.lowerLowLevel(block, call, resultLayout)

	case ir.CallHigherOrder:
		return f.lowerHigherOrder(block, call, resultLayout)

	default:
		return 0, fmt.Errorf("aliasir: unhandled call kind %v", call.Kind)
	}
}

func (f *frame) lowerCallByName(block morphic.BlockId, call ir.Call) (morphic.ValueId, error) {
	sig, ok := f.signatures[call.Name]
	if !ok {
		return 0, fmt.Errorf("aliasir: call to unregistered proc %d", call.Name)
	}
	nameBytes, err := FuncNameBytes(call.Name, sig.argLayouts, sig.retLayout, sig.debugName)
	if err != nil {
		return 0, err
	}

	args := make([]morphic.ValueId, len(call.Arguments))
	for i, s := range call.Arguments {
		v, ok := f.env[s]
		if !ok {
			return 0, fmt.Errorf("aliasir: call argument references unbound symbol %d", s)
		}
		args[i] = v
	}
	argVal, err := f.fb.AddMakeTuple(block, args)
	if err != nil {
		return 0, err
	}
	return f.fb.AddCall(block, f.newSpecVar(), modAppName, morphic.FuncName(nameBytes), argVal)
}

func (f *frame) lowerUnknown(block morphic.BlockId, argSymbols []ir.Symbol, resultLayout ir.Layout) (morphic.ValueId, error) {
	args := make([]morphic.ValueId, len(argSymbols))
	for i, s := range argSymbols {
		v, ok := f.env[s]
		if !ok {
			return 0, fmt.Errorf("aliasir: unknown-call argument references unbound symbol %d", s)
		}
		args[i] = v
	}
	resType, err := f.typeOf(resultLayout, nil)
	if err != nil {
		return 0, err
	}
	return f.fb.AddUnknownWith(block, args, resType)
}

// lowerLowLevel models the primitive operations alias analysis must track
// individually: everything that touches a heap cell's bag. Pure scalar ops
// (arithmetic, comparison, string concatenation) have no heap effect and
// lower to the unit tuple, mirroring how their layouts map to TypeId.
func (f *frame) lowerLowLevel(block morphic.BlockId, call ir.Call, resultLayout ir.Layout) (morphic.ValueId, error) {
	switch call.Type {
	case ir.LowLevelNumAdd, ir.LowLevelNumSub, ir.LowLevelNumMul, ir.LowLevelNumEq, ir.LowLevelStrConcat:
		return f.fb.AddMakeTuple(block, nil)

	case ir.LowLevelListGet:
		_, bag, cell, err := f.openCellBag(block, call.Arguments[0])
		if err != nil {
			return 0, err
		}
		if err := f.fb.AddTouch(block, cell); err != nil {
			return 0, err
		}
		return f.fb.AddBagGet(block, bag)

	case ir.LowLevelListSet, ir.LowLevelListAppend, ir.LowLevelDictInsert, ir.LowLevelSetInsert:
		container := call.Arguments[0]
		value := call.Arguments[len(call.Arguments)-1]
		return f.lowerContainerInsert(block, container, value)

	case ir.LowLevelListReplaceUnsafe:
		list := call.Arguments[0]
		newElem := call.Arguments[2]
		return f.lowerReplaceUnsafe(block, list, newElem)

	case ir.LowLevelListLen:
		_, bag, cell, err := f.openCellBag(block, call.Arguments[0])
		if err != nil {
			return 0, err
		}
		if err := f.fb.AddTouch(block, cell); err != nil {
			return 0, err
		}
		_ = bag
		return f.fb.AddMakeTuple(block, nil)

	case ir.LowLevelDictGet:
		_, bag, cell, err := f.openCellBag(block, call.Arguments[0])
		if err != nil {
			return 0, err
		}
		if err := f.fb.AddTouch(block, cell); err != nil {
			return 0, err
		}
		return f.fb.AddBagGet(block, bag)

	default:
		return f.lowerUnknown(block, call.Arguments, resultLayout)
	}
}

// openCellBag reads Target's (HeapCell, Bag) tuple apart, per the (cell,
// bag) shape typeOf gives every List/Dict/Set layout.
func (f *frame) openCellBag(block morphic.BlockId, target ir.Symbol) (list, bag, cell morphic.ValueId, err error) {
	list, ok := f.env[target]
	if !ok {
		return 0, 0, 0, fmt.Errorf("aliasir: container op references unbound symbol %d", target)
	}
	cell, err = f.fb.AddGetTupleField(block, list, cellIndex)
	if err != nil {
		return 0, 0, 0, err
	}
	bag, err = f.fb.AddGetTupleField(block, list, bagIndex)
	if err != nil {
		return 0, 0, 0, err
	}
	return list, bag, cell, nil
}

func (f *frame) lowerContainerInsert(block morphic.BlockId, container, value ir.Symbol) (morphic.ValueId, error) {
	_, bag, cell, err := f.openCellBag(block, container)
	if err != nil {
		return 0, err
	}
	if err := f.fb.AddTouch(block, cell); err != nil {
		return 0, err
	}
	if err := f.fb.AddUpdate(block, f.newUpdateMode(), cell); err != nil {
		return 0, err
	}
	valVal, ok := f.env[value]
	if !ok {
		return 0, fmt.Errorf("aliasir: container insert references unbound symbol %d", value)
	}
	newBag, err := f.fb.AddBagInsert(block, bag, valVal)
	if err != nil {
		return 0, err
	}
	return f.fb.AddMakeTuple(block, []morphic.ValueId{cell, newBag})
}

// lowerReplaceUnsafe models List.replaceUnsafe: touch and update the
// list's cell, read the displaced element out of the bag before inserting
// the replacement, and return (new_list, old_value) - the old value must
// stay reachable from the result since the caller may still use it.
func (f *frame) lowerReplaceUnsafe(block morphic.BlockId, list, newElem ir.Symbol) (morphic.ValueId, error) {
	_, bag, cell, err := f.openCellBag(block, list)
	if err != nil {
		return 0, err
	}
	if err := f.fb.AddTouch(block, cell); err != nil {
		return 0, err
	}
	if err := f.fb.AddUpdate(block, f.newUpdateMode(), cell); err != nil {
		return 0, err
	}
	oldVal, err := f.fb.AddBagGet(block, bag)
	if err != nil {
		return 0, err
	}
	newElemVal, ok := f.env[newElem]
	if !ok {
		return 0, fmt.Errorf("aliasir: replaceUnsafe references unbound symbol %d", newElem)
	}
	newBag, err := f.fb.AddBagInsert(block, bag, newElemVal)
	if err != nil {
		return 0, err
	}
	newList, err := f.fb.AddMakeTuple(block, []morphic.ValueId{cell, newBag})
	if err != nil {
		return 0, err
	}
	return f.fb.AddMakeTuple(block, []morphic.ValueId{newList, oldVal})
}

// lowerHigherOrder models a call like List.map(list, f) as the explicit
// loop it compiles to: touch the list's cell, apply the passed function -
// an opaque value, so the application itself is unknown_with - to one
// representative element, optionally tupled with its captured environment,
// and fold the result back into a new bag.
func (f *frame) lowerHigherOrder(block morphic.BlockId, call ir.Call, resultLayout ir.Layout) (morphic.ValueId, error) {
	ho := call.HigherOrder
	if ho == nil {
		return 0, fmt.Errorf("aliasir: higher-order call with no HigherOrderCall payload")
	}
	if len(call.Arguments) == 0 {
		return 0, fmt.Errorf("aliasir: higher-order call with no arguments")
	}
	_, bag, cell, err := f.openCellBag(block, call.Arguments[0])
	if err != nil {
		return 0, err
	}
	if err := f.fb.AddTouch(block, cell); err != nil {
		return 0, err
	}
	elem, err := f.fb.AddBagGet(block, bag)
	if err != nil {
		return 0, err
	}

	passedVal, ok := f.env[ho.Passed]
	if !ok {
		return 0, fmt.Errorf("aliasir: higher-order call references unbound function symbol %d", ho.Passed)
	}

	callArg := elem
	if ho.CapturesEnv {
		callArg, err = f.fb.AddMakeTuple(block, []morphic.ValueId{elem, passedVal})
		if err != nil {
			return 0, err
		}
	}

	elemResultType, err := f.typeOf(resultLayout, nil)
	if err != nil {
		return 0, err
	}
	mapped, err := f.fb.AddUnknownWith(block, []morphic.ValueId{callArg, passedVal}, elemResultType)
	if err != nil {
		return 0, err
	}

	if err := f.fb.AddUpdate(block, f.newUpdateMode(), cell); err != nil {
		return 0, err
	}
	newBag, err := f.fb.AddBagInsert(block, bag, mapped)
	if err != nil {
		return 0, err
	}
	return f.fb.AddMakeTuple(block, []morphic.ValueId{cell, newBag})
}
