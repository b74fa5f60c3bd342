package unify

import "github.com/novalang/typecore/internal/subs"

// Pool tracks every variable touched by unification at the current rank,
// so the outer constraint solver knows which variables became eligible for
// generalization. It does not own variable storage - Subs does - it is
// purely a registry, mirroring the original compiler's generalization
// pool without carrying any of its rank-bucketing machinery, which lives
// in the solver this package does not implement.
type Pool struct {
	vars []subs.Variable
}

func NewPool() *Pool { return &Pool{} }

func (p *Pool) track(vars []subs.Variable) {
	p.vars = append(p.vars, vars...)
}

// Vars returns every variable tracked so far.
func (p *Pool) Vars() []subs.Variable {
	return p.vars
}
