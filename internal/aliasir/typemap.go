package aliasir

import (
	"fmt"

	"github.com/novalang/typecore/internal/ir"
	"github.com/novalang/typecore/internal/morphic"
)

// Tuple-field indices for the two-field (HeapCell, Bag) shape used for
// List/Dict/Set, and for a (HeapCell, payload) shape. Nothing in this
// package builds the latter: unionType types a non-nullable-unwrapped union
// like any other recursive union. Named the way the original names
// LIST_BAG_INDEX et al.
const (
	cellIndex = 0
	bagIndex  = 1

	tagCellIndex = 0
	tagDataIndex = 1
)

// typeOf implements spec.md §4.4's "Layout → analysis-type mapping".
// recursive, when non-nil, is the enclosing recursive union layout a
// RecursivePointer resolves through.
func (l *Lowering) typeOf(layout ir.Layout, recursive *ir.Layout) (morphic.TypeId, error) {
	switch layout.Kind {
	case ir.LayoutInt, ir.LayoutFloat, ir.LayoutBool, ir.LayoutStr:
		return l.mod.AddTupleType(nil), nil

	case ir.LayoutStruct:
		fields := make([]morphic.TypeId, len(layout.StructFields))
		for i, f := range layout.StructFields {
			id, err := l.typeOf(f, recursive)
			if err != nil {
				return 0, err
			}
			fields[i] = id
		}
		return l.mod.AddTupleType(fields), nil

	case ir.LayoutList:
		elem, err := l.typeOf(*layout.ListElem, recursive)
		if err != nil {
			return 0, err
		}
		bag := l.mod.AddBagType(elem)
		cell := l.mod.AddHeapCellType()
		return l.mod.AddTupleType([]morphic.TypeId{cell, bag}), nil

	case ir.LayoutDict:
		key, err := l.typeOf(*layout.DictKey, recursive)
		if err != nil {
			return 0, err
		}
		val, err := l.typeOf(*layout.DictVal, recursive)
		if err != nil {
			return 0, err
		}
		elem := l.mod.AddTupleType([]morphic.TypeId{key, val})
		bag := l.mod.AddBagType(elem)
		cell := l.mod.AddHeapCellType()
		return l.mod.AddTupleType([]morphic.TypeId{cell, bag}), nil

	case ir.LayoutSet:
		elem, err := l.typeOf(*layout.SetElem, recursive)
		if err != nil {
			return 0, err
		}
		bag := l.mod.AddBagType(elem)
		cell := l.mod.AddHeapCellType()
		return l.mod.AddTupleType([]morphic.TypeId{cell, bag}), nil

	case ir.LayoutUnion:
		return l.unionType(*layout.Union, recursive)

	case ir.LayoutBoxed:
		inner, err := l.typeOf(*layout.Boxed, recursive)
		if err != nil {
			return 0, err
		}
		cell := l.mod.AddHeapCellType()
		return l.mod.AddTupleType([]morphic.TypeId{cell, inner}), nil

	case ir.LayoutRecursivePointer:
		if recursive == nil {
			return 0, fmt.Errorf("aliasir: RecursivePointer with no enclosing recursive layout")
		}
		return l.unionType(*recursive.Union, nil)

	default:
		return 0, fmt.Errorf("aliasir: unhandled layout kind %v", layout.Kind)
	}
}

func (l *Lowering) unionType(u ir.UnionLayout, enclosing *ir.Layout) (morphic.TypeId, error) {
	if u.Kind == ir.UnionNonRecursive {
		variants := make([]morphic.TypeId, len(u.Variants))
		for i, fields := range u.Variants {
			ids := make([]morphic.TypeId, len(fields))
			for j, f := range fields {
				id, err := l.typeOf(f, enclosing)
				if err != nil {
					return 0, err
				}
				ids[j] = id
			}
			variants[i] = l.mod.AddTupleType(ids)
		}
		return l.mod.AddUnionType(variants), nil
	}

	// Recursive (including non-nullable-unwrapped): register once per
	// distinct union-layout hash, so repeated occurrences share a TypeDef.
	recLayout := ir.Layout{Kind: ir.LayoutUnion, Union: &u}
	name, err := RecursiveTagUnionName(recLayout)
	if err != nil {
		return 0, err
	}
	typeName := morphic.TypeName(name)

	if _, ok := l.registeredTypes[string(name)]; !ok {
		l.registeredTypes[string(name)] = struct{}{}

		tdb := l.mod.NewTypeDefBuilder()
		variants := make([]morphic.TypeId, len(u.Variants))
		for i, fields := range u.Variants {
			ids := make([]morphic.TypeId, len(fields))
			for j, f := range fields {
				id, err := typeOfWith(tdb.TypeContext, l, f, &recLayout)
				if err != nil {
					return 0, err
				}
				ids[j] = id
			}
			variants[i] = tdb.AddTupleType(ids)
		}
		root := tdb.AddUnionType(variants)
		def, err := tdb.Build(root)
		if err != nil {
			return 0, err
		}
		if err := l.mod.AddNamedTypeDef(typeName, def); err != nil {
			return 0, err
		}
	}

	return l.mod.AddNamedType(modAppName, typeName), nil
}

// typeOfWith is typeOf but explicit about which TypeContext registers new
// nodes, needed only while building a TypeDefBuilder's own node table
// (which, per morphic.TypeDefBuilder, is the same shared context as the
// owning ModDefBuilder, so this is equivalent to l.typeOf - kept as a
// distinct name for readability at the one recursive-registration call
// site).
func typeOfWith(_ *morphic.TypeContext, l *Lowering, layout ir.Layout, recursive *ir.Layout) (morphic.TypeId, error) {
	return l.typeOf(layout, recursive)
}
