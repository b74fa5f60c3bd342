package unify

import (
	"errors"

	"github.com/hashicorp/go-multierror"
)

// Outcome is what unify_pool returns: every mismatch and obligation
// accumulated during a unification, rather than stopping at the first -
// the teacher's analyzer collects every type error per pass the same way.
// Err renders the accumulated mismatches as a single error via
// go-multierror, for callers that want one error value to check against.
type Outcome struct {
	Mismatches    []Mismatch
	MustImplement []MustImplement

	errs *multierror.Error
}

// EmptyOutcome is returned whenever a unification step adds nothing new -
// the idempotent case required by spec.md §8.
func EmptyOutcome() Outcome { return Outcome{} }

func (o *Outcome) addMismatch(m Mismatch) {
	o.Mismatches = append(o.Mismatches, m)
	o.errs = multierror.Append(o.errs, errors.New(m.String()))
}

func (o *Outcome) addObligation(m MustImplement) {
	o.MustImplement = append(o.MustImplement, m)
}

// Merge folds other into o in place and returns o for chaining.
func (o *Outcome) Merge(other Outcome) *Outcome {
	o.Mismatches = append(o.Mismatches, other.Mismatches...)
	o.MustImplement = append(o.MustImplement, other.MustImplement...)
	if other.errs != nil {
		o.errs = multierror.Append(o.errs, other.errs.Errors...)
	}
	return o
}

// Err returns the accumulated mismatches as a single error, or nil if there
// were none.
func (o Outcome) Err() error {
	if o.errs == nil {
		return nil
	}
	return o.errs.ErrorOrNil()
}

func (o Outcome) ok() bool { return len(o.Mismatches) == 0 }
