// Package tailcall rewrites self-recursive tail calls in a monomorphized
// statement tree into a join point plus jumps, so a later backend can emit
// a loop instead of growing the stack. It is a direct port of
// make_tail_recursive / insert_jumps from the reference compiler's
// tail-call pass (original_source/compiler/mono/src/tail_recursion.rs),
// translated from Rust's Option<&'a Stmt<'a>> "did anything change"
// convention into an explicit (rewritten *ir.Stmt, changed bool) return.
package tailcall

import "github.com/novalang/typecore/internal/ir"

// MakeTailRecursive inserts jumps at every tail-recursive call to needle
// within stmt, then wraps the result in a Join declaring formals as its
// parameters. If no tail-recursive call to needle was found, stmt is
// returned unchanged.
//
//	factorial n acc = if n == 1 then acc else factorial (n-1) (n*acc)
//
// becomes
//
//	factorial n1 acc1 =
//	    join j n acc =
//	        if n == 1 then acc else jump j (n-1) (n*acc)
//	    in jump j n1 acc1
func MakeTailRecursive(arena *ir.Arena, id ir.JoinPointId, needle ir.Symbol, stmt *ir.Stmt, formals []ir.Param) *ir.Stmt {
	rewritten, changed := insertJumps(arena, stmt, id, needle)
	if !changed {
		return stmt
	}

	args := make([]ir.Symbol, len(formals))
	for i, p := range formals {
		args[i] = p.Symbol
	}

	jump := arena.AllocStmt(*ir.Jump(id, args))

	return arena.AllocStmt(*ir.Join(id, formals, jump, rewritten))
}

// insertJumps recurses through stmt's constructors, replacing every
// recognizable tail-call site to needle with a Jump. It returns
// (newTree, true) only when some descendant changed; branches that did not
// change are returned as-is (changed == false) so callers can reuse the
// original subtree by reference, preserving sharing.
func insertJumps(arena *ir.Arena, stmt *ir.Stmt, goal ir.JoinPointId, needle ir.Symbol) (*ir.Stmt, bool) {
	switch stmt.Kind {
	case ir.StmtLet:
		if isTailCallLet(stmt, needle) {
			jump := ir.Jump(goal, stmt.Expr.Call.Arguments)
			return arena.AllocStmt(*jump), true
		}

		newCont, changed := insertJumps(arena, stmt.Continuation, goal, needle)
		if !changed {
			return stmt, false
		}
		return arena.AllocStmt(*ir.Let(stmt.Symbol, stmt.Expr, stmt.Layout, newCont)), true

	case ir.StmtInvoke:
		if isTailCallInvoke(stmt, needle) {
			jump := ir.Jump(goal, stmt.InvokeCall.Arguments)
			return arena.AllocStmt(*jump), true
		}

		newPass, passChanged := insertJumps(arena, stmt.Pass, goal, needle)
		newFail, failChanged := insertJumps(arena, stmt.Fail, goal, needle)
		if !passChanged && !failChanged {
			return stmt, false
		}
		if !passChanged {
			newPass = stmt.Pass
		}
		if !failChanged {
			newFail = stmt.Fail
		}
		rewritten := ir.Invoke(stmt.Symbol, stmt.InvokeCall, stmt.Layout, newPass, newFail)
		return arena.AllocStmt(*rewritten), true

	case ir.StmtJoin:
		newRemainder, remainderChanged := insertJumps(arena, stmt.Remainder, goal, needle)
		newContinuation, contChanged := insertJumps(arena, stmt.JoinContinuation, goal, needle)
		if !remainderChanged && !contChanged {
			return stmt, false
		}
		if !remainderChanged {
			newRemainder = stmt.Remainder
		}
		if !contChanged {
			newContinuation = stmt.JoinContinuation
		}
		rewritten := ir.Join(stmt.JoinID, stmt.Parameters, newRemainder, newContinuation)
		return arena.AllocStmt(*rewritten), true

	case ir.StmtSwitch:
		newDefault, defaultChanged := insertJumps(arena, stmt.DefaultBranch, goal, needle)

		didChange := defaultChanged
		newBranches := make([]ir.SwitchBranch, len(stmt.Branches))
		for i, b := range stmt.Branches {
			newBody, changed := insertJumps(arena, b.Body, goal, needle)
			if changed {
				didChange = true
				newBranches[i] = ir.SwitchBranch{Tag: b.Tag, Body: newBody}
			} else {
				newBranches[i] = b
			}
		}

		if !didChange {
			return stmt, false
		}

		if !defaultChanged {
			newDefault = stmt.DefaultBranch
		}

		rewritten := &ir.Stmt{
			Kind:          ir.StmtSwitch,
			CondSymbol:    stmt.CondSymbol,
			CondLayout:    stmt.CondLayout,
			Branches:      newBranches,
			DefaultBranch: newDefault,
			RetLayout:     stmt.RetLayout,
		}
		return arena.AllocStmt(*rewritten), true

	case ir.StmtRefcounting:
		newCont, changed := insertJumps(arena, stmt.Continuation, goal, needle)
		if !changed {
			return stmt, false
		}
		rewritten := &ir.Stmt{Kind: ir.StmtRefcounting, Refcount: stmt.Refcount, Continuation: newCont}
		return arena.AllocStmt(*rewritten), true

	case ir.StmtRet, ir.StmtJump, ir.StmtRethrow, ir.StmtRuntimeError:
		return stmt, false

	default:
		return stmt, false
	}
}

// isTailCallLet matches Let(x, Call(needle, args), _, Ret(x)).
func isTailCallLet(stmt *ir.Stmt, needle ir.Symbol) bool {
	if stmt.Expr == nil || stmt.Expr.Kind != ir.ExprCallKind {
		return false
	}
	call := stmt.Expr.Call
	if call.Kind != ir.CallByName || call.Name != needle {
		return false
	}
	cont := stmt.Continuation
	return cont != nil && cont.Kind == ir.StmtRet && cont.Symbol == stmt.Symbol
}

// isTailCallInvoke matches
// Invoke{symbol: x, call: Call(needle, args), pass: Ret(x), fail: Rethrow}.
// We reuse the Stmt's InvokeCall/Pass/Fail fields directly rather than the
// generic Expr wrapper Let uses, mirroring the two distinct call shapes the
// reference pass recognizes.
func isTailCallInvoke(stmt *ir.Stmt, needle ir.Symbol) bool {
	call := stmt.InvokeCall
	if call.Kind != ir.CallByName || call.Name != needle {
		return false
	}
	if stmt.Fail == nil || stmt.Fail.Kind != ir.StmtRethrow {
		return false
	}
	return stmt.Pass != nil && stmt.Pass.Kind == ir.StmtRet && stmt.Pass.Symbol == stmt.Symbol
}
