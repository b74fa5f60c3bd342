package ir

// Proc is one monomorphized procedure: a name, its formal parameters, its
// return layout, and a statement tree built through an Arena. DebugName is
// only read when config.Flags.DebugAliasAnalysis is set.
type Proc struct {
	Name      Symbol
	Args      []Param
	RetLayout Layout
	Body      *Stmt
	DebugName string
}
