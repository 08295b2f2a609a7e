package buddy

import (
	"fmt"
	"strings"
)

// Dot renders the tree as Graphviz "dot" source, one node per block colored
// by state. It is a debugging aid only, nothing in the tree's own
// operation depends on it, intended for callers that want to eyeball a
// fragmentation pattern while developing against this package.
func (t *Tree) Dot() string {
	var b strings.Builder
	b.WriteString("digraph {\n")
	b.WriteString("  node [style=filled, fixedsize=true];\n")

	for i := uint64(0); i < t.blockCount(); i++ {
		block := blockIndex(i)
		shape, fill := dotStyle(t.state(block))
		fmt.Fprintf(&b, "  n%d [fillcolor=\"%s\", shape=\"%s\"];\n", i, fill, shape)

		left, right := block.children()
		for _, child := range [2]blockIndex{left, right} {
			if t.hasBlock(child) {
				fmt.Fprintf(&b, "  n%d -> n%d;\n", i, uint64(child))
			}
		}
	}
	b.WriteString("}")
	return b.String()
}

func dotStyle(s blockState) (shape, fill string) {
	const (
		green = "#9dd5c0"
		blue  = "#27a4dd"
		red   = "#f1646c"
	)
	switch s {
	case stateFree:
		return "circle", green
	case stateSuperblock:
		return "Mcircle", blue
	case stateAllocated:
		return "square", red
	default: // SuperblockFull
		return "Msquare", red
	}
}
