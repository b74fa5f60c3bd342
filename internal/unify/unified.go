package unify

import "github.com/novalang/typecore/internal/subs"

// UnifiedKind tags which of the three shapes a Unified value carries,
// following the same tagged-struct idiom as internal/ir.Stmt: Unified's
// three cases share the Touched field uniformly, so one struct with a kind
// tag reads cleaner here than three wrapper types plus an interface.
type UnifiedKind int

const (
	UnifiedSuccess UnifiedKind = iota
	UnifiedFailure
	UnifiedBadType
)

// Unified is the result of a top-level unify call (spec.md §4.2).
type Unified struct {
	Kind    UnifiedKind
	Touched []subs.Variable

	// Success
	Obligations []MustImplement

	// Failure
	LeftErr, RightErr string
	Unmet             []Mismatch

	// BadType
	Problem *BadTypeError
}

func success(touched []subs.Variable, obligations []MustImplement) Unified {
	return Unified{Kind: UnifiedSuccess, Touched: touched, Obligations: obligations}
}

func failure(touched []subs.Variable, leftErr, rightErr string, unmet []Mismatch) Unified {
	return Unified{Kind: UnifiedFailure, Touched: touched, LeftErr: leftErr, RightErr: rightErr, Unmet: unmet}
}

func badType(touched []subs.Variable, problem *BadTypeError) Unified {
	return Unified{Kind: UnifiedBadType, Touched: touched, Problem: problem}
}

// Ok reports whether the result was a clean Success.
func (u Unified) Ok() bool { return u.Kind == UnifiedSuccess }
