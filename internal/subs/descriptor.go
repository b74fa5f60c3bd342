package subs

// Descriptor is the payload of one equivalence-class root (spec.md §3).
type Descriptor struct {
	Content Content
	Rank    Rank
	Mark    Mark
	Copy    OptVariable
}

// UnnamedFlex returns a fresh, unnamed FlexVar descriptor at NoRank - the
// usual starting point for a variable allocated during constraint
// generation.
func UnnamedFlex() Descriptor {
	return Descriptor{Content: FlexVar{}, Rank: NoRank, Mark: NoMark, Copy: NoVariable}
}
