// Package morphic is an in-module stand-in for morphic_lib, the external
// mutability-tracking analysis library spec.md §2 and §4.4 name as the
// alias-analysis solver's input format. The solver itself - what consumes
// a Program and decides which heap cells may alias - is out of scope
// (spec.md §1): this package only gives internal/aliasir something
// concrete to build, grounded on the primitive vocabulary
// (`original_source/crates/compiler/alias_analysis/src/lib.rs`'s `use
// morphic_lib::{...}` import list and its builder call sites) rather than
// on the real crate, which has no Go port.
package morphic

// ModName, FuncName, TypeName, ConstName and EntryPointName are the
// original's byte-string newtypes, narrowed to Go strings since we have no
// equivalent of Rust's `&'static [u8]` const names.
type ModName string
type FuncName string
type TypeName string
type ConstName string
type EntryPointName string

// ValueId and BlockId are dense handles scoped to one FuncDef or ConstDef
// builder; TypeId is scoped to the TypeContext its ModDefBuilder shares
// with all of them. All three match the original's opaque integer ids.
type ValueId uint32
type TypeId uint32
type BlockId uint32

// ContinuationId names a join point declared with DeclareContinuation.
type ContinuationId uint32

// UpdateModeVar and CalleeSpecVar are opaque tokens the monomorphizer
// supplies; this package never inspects them, only threads them through.
type UpdateModeVar uint32
type CalleeSpecVar uint32

// BlockExpr pairs a block with the value it evaluates to - the original's
// `BlockExpr(BlockId, ValueId)` tuple, used to close a sub-block or a
// continuation body.
type BlockExpr struct {
	Block BlockId
	Value ValueId
}
