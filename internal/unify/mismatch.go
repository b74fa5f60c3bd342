package unify

import (
	"fmt"

	"github.com/novalang/typecore/internal/subs"
)

// MismatchKind is one of the three ways a unification attempt can fail
// (spec.md §7, "Kinds produced by the unifier").
type MismatchKind int

const (
	TypeMismatch MismatchKind = iota
	TypeNotInRange
	DoesNotImplement
)

func (k MismatchKind) String() string {
	switch k {
	case TypeNotInRange:
		return "TypeNotInRange"
	case DoesNotImplement:
		return "DoesNotImplement"
	default:
		return "TypeMismatch"
	}
}

// Mismatch is one accumulated unification failure. Var and Ability are only
// meaningful for DoesNotImplement.
type Mismatch struct {
	Kind    MismatchKind
	Var     subs.Variable
	Ability string
}

func (m Mismatch) String() string {
	if m.Kind == DoesNotImplement {
		return fmt.Sprintf("DoesNotImplement(v%d, %s)", m.Var, m.Ability)
	}
	return m.Kind.String()
}
