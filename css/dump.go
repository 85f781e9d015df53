package css

import (
	"cssnest/utils/debug"
)

// Dump returns indented textual representation of the tree, used in debug
// reports.
func (t *Tree) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "stylesheet %s (%s)", t.Source, t.Syntax)
	t.dump(tw, t.Root(), 1)
	return tw.String()
}

func (t *Tree) dump(tw *debug.TreeWriter, id NodeID, depth int) {
	for _, c := range t.nodes[id].Children {
		n := &t.nodes[c]
		pos := t.Position(n.Offset)
		switch n.Kind {
		case KindAtRule:
			tw.Line(depth, "@%s [%s] block=%t", n.Name, pos, n.HasBlock)
			if n.Params != "" {
				tw.TextBlock(depth+1, "params", n.Params)
			}
		case KindRule:
			tw.Line(depth, "rule [%s] block=%t", pos, n.HasBlock)
			tw.TextBlock(depth+1, "selector", n.Selector)
		case KindDecl:
			tw.TextBlock(depth, n.Name, n.Value)
		}
		t.dump(tw, c, depth+1)
	}
}
