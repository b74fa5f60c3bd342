package ir

// Arena is a bump allocator for Stmt and Expr trees, modeled on bumpalo::Bump
// from the reference tail-call pass: nodes are allocated but never
// individually freed, and the arena as a whole is dropped once the owning
// pass (tail-call rewrite, alias-analysis lowering) is done with it.
//
// Statements built through an Arena are immutable after construction and
// form a tree with no sharing, per the data model's IR invariants.
type Arena struct {
	stmts []*Stmt
	exprs []*Expr
}

// NewArena returns an empty arena with room for roughly hint statements and
// expressions, to cut down on reallocation during a single pass.
func NewArena(hint int) *Arena {
	return &Arena{
		stmts: make([]*Stmt, 0, hint),
		exprs: make([]*Expr, 0, hint),
	}
}

// AllocStmt copies s into a new arena-owned slot and returns a stable
// pointer to it; the pointer remains valid for the lifetime of the arena
// regardless of how many further nodes are allocated.
func (a *Arena) AllocStmt(s Stmt) *Stmt {
	p := new(Stmt)
	*p = s
	a.stmts = append(a.stmts, p)
	return p
}

// AllocExpr copies e into a new arena-owned slot and returns a stable
// pointer to it.
func (a *Arena) AllocExpr(e Expr) *Expr {
	p := new(Expr)
	*p = e
	a.exprs = append(a.exprs, p)
	return p
}
