package ir

// LayoutKind discriminates a Layout's payload, following the original
// compiler's Layout/UnionLayout split closely enough that the
// alias-analysis lowering's type-directed walk (spec.md §4.4,
// "Layout → analysis-type mapping") can switch on it directly.
type LayoutKind int

const (
	LayoutInt LayoutKind = iota
	LayoutFloat
	LayoutBool
	LayoutStr
	LayoutStruct
	LayoutList
	LayoutDict
	LayoutSet
	LayoutUnion
	LayoutBoxed
	LayoutRecursivePointer
)

// UnionLayoutKind distinguishes the three shapes of tag union layout the
// original compiler tracks; only the recursive ones need a named type in
// the analysis IR (spec.md §4.4).
type UnionLayoutKind int

const (
	// UnionNonRecursive: a plain union-of-tuples, no self-reference.
	UnionNonRecursive UnionLayoutKind = iota
	// UnionRecursive: a tag union that refers to itself through at least
	// one tag's payload.
	UnionRecursive
	// UnionNonNullableUnwrapped: a single-tag recursive union whose sole
	// variant is unwrapped (no tag byte needed at runtime).
	UnionNonNullableUnwrapped
)

// Layout is a closed sum describing a monomorphized value's runtime shape.
// It carries just enough information for the alias-analysis lowering to
// build an analysis-IR TypeId; it says nothing about in-memory byte layout.
type Layout struct {
	Kind LayoutKind

	IntWidth   int // LayoutInt: 8/16/32/64
	FloatWidth int // LayoutFloat: 32/64

	StructFields []Layout // LayoutStruct

	ListElem *Layout // LayoutList
	DictKey  *Layout // LayoutDict
	DictVal  *Layout // LayoutDict
	SetElem  *Layout // LayoutSet

	Union *UnionLayout // LayoutUnion

	Boxed *Layout // LayoutBoxed
}

// UnionLayout describes a tag union's variants, each a tuple of payload
// layouts, plus whether the union recurses into itself.
type UnionLayout struct {
	Kind     UnionLayoutKind
	Variants [][]Layout
}

// Equal reports whether two layouts describe the same runtime shape. The
// alias-analysis lowering does not call it: it deduplicates recursive
// unions by their hashed name (RecursiveTagUnionName).
func (l Layout) Equal(other Layout) bool {
	if l.Kind != other.Kind {
		return false
	}
	switch l.Kind {
	case LayoutInt:
		return l.IntWidth == other.IntWidth
	case LayoutFloat:
		return l.FloatWidth == other.FloatWidth
	case LayoutBool, LayoutStr:
		return true
	case LayoutStruct:
		return layoutsEqual(l.StructFields, other.StructFields)
	case LayoutList:
		return optLayoutEqual(l.ListElem, other.ListElem)
	case LayoutDict:
		return optLayoutEqual(l.DictKey, other.DictKey) && optLayoutEqual(l.DictVal, other.DictVal)
	case LayoutSet:
		return optLayoutEqual(l.SetElem, other.SetElem)
	case LayoutUnion:
		return unionLayoutEqual(l.Union, other.Union)
	case LayoutBoxed:
		return optLayoutEqual(l.Boxed, other.Boxed)
	case LayoutRecursivePointer:
		return true
	}
	return false
}

func optLayoutEqual(a, b *Layout) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func layoutsEqual(a, b []Layout) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func unionLayoutEqual(a, b *UnionLayout) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || len(a.Variants) != len(b.Variants) {
		return false
	}
	for i := range a.Variants {
		if !layoutsEqual(a.Variants[i], b.Variants[i]) {
			return false
		}
	}
	return true
}
