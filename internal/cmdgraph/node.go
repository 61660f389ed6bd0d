package cmdgraph

// IncbinDependency pairs a child node with the .incbin statement that
// introduced it (spec §3).
type IncbinDependency struct {
	Node          *Node
	FullStatement string
}

// Node is a single file and its dependencies (spec §3 CmdGraphNode).
// Node identity is AbsolutePath: a given absolute path corresponds to
// at most one Node in a Graph.
type Node struct {
	AbsolutePath PathStr
	CmdFile      *CmdFile // nil when no .cmd sidecar exists

	CmdFileDependencies   []*Node
	IncbinDependencies    []IncbinDependency
	HardcodedDependencies []*Node
}

// Children concatenates the three dependency categories in declared
// order (cmd-file, incbin, hardcoded), de-duplicating by AbsolutePath
// and preserving first-seen order (spec §3, §4.7, §4.8).
func (n *Node) Children() func(yield func(*Node) bool) {
	return func(yield func(*Node) bool) {
		seen := make(map[PathStr]bool)
		emit := func(child *Node) bool {
			if seen[child.AbsolutePath] {
				return true
			}
			seen[child.AbsolutePath] = true
			return yield(child)
		}
		for _, child := range n.CmdFileDependencies {
			if !emit(child) {
				return
			}
		}
		for _, dep := range n.IncbinDependencies {
			if !emit(dep.Node) {
				return
			}
		}
		for _, child := range n.HardcodedDependencies {
			if !emit(child) {
				return
			}
		}
	}
}
