package subs

import "fmt"

// Bug panics for invariant breaches that are programmer errors, not
// recoverable failures: dangling variable ids, mismatched snapshot
// pairing, a join-point used before declaration (in callers of this
// package). This mirrors the reference unifier's internal_error! macro.
func Bug(format string, args ...any) {
	panic(fmt.Sprintf(format, args...))
}

// edit is one reversible mutation recorded on Subs' journal so a snapshot
// can be rolled back. Snapshots are a log of edits, not copy-on-write: they
// trade memory for speed and allow nested speculative unification, per
// spec.md §9.
type edit struct {
	variable   Variable
	prevParent Variable
	prevDesc   Descriptor
	wasFresh   bool // true if this edit is the allocation of `variable` itself
}

// Subs is a union-find over type variables. It is not safe for concurrent
// use: a given Subs is owned by one type-checking pass at a time
// (spec.md §5).
type Subs struct {
	parent []Variable
	descs  []Descriptor

	// Packed variable storage backing Slice handles. Tags and record
	// fields are not pooled: they live in the maps of TagUnion and Record.
	varPool []Variable

	log []edit
}

// New returns an empty Subs.
func New() *Subs {
	return &Subs{}
}

// Fresh allocates a new equivalence class with descriptor d and returns its
// representative.
func (s *Subs) Fresh(d Descriptor) Variable {
	v := Variable(len(s.parent))
	s.parent = append(s.parent, v)
	s.descs = append(s.descs, d)
	s.log = append(s.log, edit{variable: v, wasFresh: true})
	return v
}

// find returns v's class representative. Deliberately no path
// compression: Subs supports rollback via an undo journal, and a
// compressed pointer written outside that journal would survive a
// rollback that un-merges the class it used to shortcut through. Union
// always attaches the higher-numbered root under the lower-numbered one,
// which keeps chains shallow in practice without needing compression.
func (s *Subs) find(v Variable) Variable {
	for s.parent[v] != v {
		v = s.parent[v]
	}
	return v
}

// Get returns the descriptor at v's class root.
func (s *Subs) Get(v Variable) Descriptor {
	return s.descs[s.find(v)]
}

// Set overwrites the descriptor at v's class root. Set does not merge
// classes.
func (s *Subs) Set(v Variable, d Descriptor) {
	root := s.find(v)
	s.recordDesc(root)
	s.descs[root] = d
}

// Equivalent reports whether v1 and v2 share a root.
func (s *Subs) Equivalent(v1, v2 Variable) bool {
	return s.find(v1) == s.find(v2)
}

// Union merges the classes of v1 and v2. The resulting class has
// descriptor d, rank = min of the two prior ranks, and mark reset to
// NoMark. Idempotent when v1 and v2 are already equivalent (their
// descriptor is still overwritten with d, matching the reference unifier's
// `merge`, which always installs the new content even on an already-merged
// pair).
func (s *Subs) Union(v1, v2 Variable, d Descriptor) {
	r1, r2 := s.find(v1), s.find(v2)

	rank := MinRank(s.descs[r1].Rank, s.descs[r2].Rank)
	merged := Descriptor{Content: d.Content, Rank: rank, Mark: NoMark, Copy: NoVariable}

	if r1 == r2 {
		s.recordDesc(r1)
		s.descs[r1] = merged
		return
	}

	// Keep the lower-numbered root as the surviving representative so
	// repeated unions of the same pair are deterministic regardless of
	// argument order.
	survivor, absorbed := r1, r2
	if r2 < r1 {
		survivor, absorbed = r2, r1
	}

	s.recordDesc(survivor)
	s.descs[survivor] = merged

	s.recordParent(absorbed)
	s.parent[absorbed] = survivor
}

func (s *Subs) recordDesc(root Variable) {
	s.log = append(s.log, edit{variable: root, prevParent: s.parent[root], prevDesc: s.descs[root]})
}

func (s *Subs) recordParent(v Variable) {
	s.log = append(s.log, edit{variable: v, prevParent: s.parent[v], prevDesc: s.descs[v]})
}

// Snapshot is a point-in-time marker into Subs' edit journal.
type Snapshot struct {
	logLen int
	varLen int
}

// TakeSnapshot captures the current state. Every TakeSnapshot must be
// paired with exactly one RollbackTo or CommitSnapshot; nesting is allowed.
func (s *Subs) TakeSnapshot() Snapshot {
	return Snapshot{logLen: len(s.log), varLen: len(s.parent)}
}

// RollbackTo undoes every edit recorded since snap, including variables
// freshly allocated since then.
func (s *Subs) RollbackTo(snap Snapshot) {
	for i := len(s.log) - 1; i >= snap.logLen; i-- {
		e := s.log[i]
		if e.wasFresh {
			continue // trimmed below by truncating parent/descs
		}
		s.parent[e.variable] = e.prevParent
		s.descs[e.variable] = e.prevDesc
	}
	s.log = s.log[:snap.logLen]
	s.parent = s.parent[:snap.varLen]
	s.descs = s.descs[:snap.varLen]
}

// CommitSnapshot discards the marker without undoing anything: the edits
// since snap become part of the enclosing scope's history (an outer
// RollbackTo still unwinds them).
func (s *Subs) CommitSnapshot(snap Snapshot) {
	_ = snap // nothing to do; the flat journal already covers nesting.
}

// VarsSinceSnapshot returns every variable freshly allocated since snap.
func (s *Subs) VarsSinceSnapshot(snap Snapshot) []Variable {
	out := make([]Variable, 0, len(s.parent)-snap.varLen)
	for v := Variable(snap.varLen); int(v) < len(s.parent); v++ {
		out = append(out, v)
	}
	return out
}

// --- Packed slice storage ---

// Slice is a handle into one of Subs' packed arrays: a start offset plus a
// length, following spec.md §4.1's "slice-indexed views into packed
// arrays".
type Slice struct {
	Start  int
	Length int
}

// PushVariables appends vars to the packed variable pool and returns a
// Slice naming the range they occupy.
func (s *Subs) PushVariables(vars []Variable) Slice {
	start := len(s.varPool)
	s.varPool = append(s.varPool, vars...)
	return Slice{Start: start, Length: len(vars)}
}

// VariableSlice resolves a Slice back into its backing variables.
func (s *Subs) VariableSlice(sl Slice) []Variable {
	return s.varPool[sl.Start : sl.Start+sl.Length]
}
