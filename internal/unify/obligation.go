package unify

import (
	"sort"

	"github.com/novalang/typecore/internal/subs"
)

// MustImplement records that Type must implement Ability, discovered while
// unifying an opaque alias or able variable. Mirrors the original
// MustImplementConstraints shape exactly.
type MustImplement struct {
	Type    subs.Variable
	Ability string
}

// GetUnique sorts and deduplicates a slice of obligations, the teacher's
// small-utility-type style (c.f. dispatch.go): no doc comment per field,
// one line of behavior.
func GetUnique(in []MustImplement) []MustImplement {
	if len(in) < 2 {
		return in
	}
	out := append([]MustImplement{}, in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Ability < out[j].Ability
	})
	dedup := out[:1]
	for _, m := range out[1:] {
		if m != dedup[len(dedup)-1] {
			dedup = append(dedup, m)
		}
	}
	return dedup
}
