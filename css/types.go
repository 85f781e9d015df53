package css

import (
	"fmt"
	"iter"
	"slices"
	"unicode/utf8"

	"cssnest/common"
)

// Kind identifies node variant.
type Kind int

const (
	KindRoot   Kind = iota // Stylesheet itself
	KindAtRule             // @-rule with or without block (e.g. @media, @supports, @import)
	KindRule               // Style rule: selector + block
	KindDecl               // Property declaration
)

// String returns human readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindAtRule:
		return "atrule"
	case KindRule:
		return "rule"
	case KindDecl:
		return "decl"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NodeID is an index of the node in the tree arena.
type NodeID int32

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Node is a single stylesheet statement. Which fields are meaningful depends on
// Kind.
type Node struct {
	Kind     Kind
	Parent   NodeID   // NoParent for root
	Children []NodeID // in source order
	Name     string   // @-rule name without "@" or declaration property
	Params   string   // @-rule prelude following the name
	Selector string   // rule selector, whitespace collapsed
	Value    string   // declaration value
	HasBlock bool     // statement was followed by {...}
	Offset   int      // byte offset of the statement in decoded source
}

// Position is a 1-based location in source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Tree is an arena of nodes. Nodes are stored in document order, every node is
// appended after its parent so parent index is always smaller than node index.
// Tree is never modified after it is built and could be shared between
// goroutines.
type Tree struct {
	Source string        // Name of the stylesheet (file or archive entry)
	Syntax common.Syntax // Dialect tree was built for

	nodes []Node
	data  []byte
	lines []int // offsets of line starts
}

// NewTree returns tree with a single root node. Data is decoded stylesheet
// text used to resolve positions, it may be nil.
func NewTree(source string, syntax common.Syntax, data []byte) *Tree {
	return &Tree{
		Source: source,
		Syntax: syntax,
		nodes:  []Node{{Kind: KindRoot, Parent: NoParent}},
		data:   data,
		lines:  lineStarts(data),
	}
}

// lineStarts indexes line breaks: "\n", "\r", "\r\n" and Unicode line and
// paragraph separators.
func lineStarts(data []byte) []int {
	starts := []int{0}
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
			starts = append(starts, i+1)
		case 0xE2:
			if i+2 < len(data) && data[i+1] == 0x80 && (data[i+2] == 0xA8 || data[i+2] == 0xA9) {
				i += 2
				starts = append(starts, i+1)
			}
		}
	}
	return starts
}

// Append adds node under parent and returns its id. Parent is not checked:
// NoParent produces detached node which consumers treat as malformed tree.
func (t *Tree) Append(parent NodeID, n Node) NodeID {
	id := NodeID(len(t.nodes))
	n.Parent = parent
	n.Children = nil
	if t.valid(parent) {
		t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	}
	t.nodes = append(t.nodes, n)
	return id
}

func (t *Tree) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Root returns id of the stylesheet node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns number of nodes including root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns node by id or nil if id is out of range.
func (t *Tree) Node(id NodeID) *Node {
	if !t.valid(id) {
		return nil
	}
	return &t.nodes[id]
}

// Parent returns parent of the node. The second value is false for root,
// detached nodes and invalid ids.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	if !t.valid(id) {
		return NoParent, false
	}
	p := t.nodes[id].Parent
	if !t.valid(p) {
		return NoParent, false
	}
	return p, true
}

// IsRoot reports whether id is the stylesheet node.
func (t *Tree) IsRoot(id NodeID) bool {
	return t.valid(id) && t.nodes[id].Kind == KindRoot
}

// Kind returns kind of the node, root for invalid ids.
func (t *Tree) Kind(id NodeID) Kind {
	if !t.valid(id) {
		return KindRoot
	}
	return t.nodes[id].Kind
}

// HasDeclarations reports whether any direct child of the node is a
// declaration.
func (t *Tree) HasDeclarations(id NodeID) bool {
	n := t.Node(id)
	if n == nil {
		return false
	}
	for _, c := range n.Children {
		if t.nodes[c].Kind == KindDecl {
			return true
		}
	}
	return false
}

// All iterates over every node in document order, root first.
func (t *Tree) All() iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		for i := range t.nodes {
			if !yield(NodeID(i), &t.nodes[i]) {
				return
			}
		}
	}
}

// Statements iterates over rules and @-rules in document order (depth first).
func (t *Tree) Statements() iter.Seq2[NodeID, *Node] {
	return func(yield func(NodeID, *Node) bool) {
		for i := range t.nodes {
			switch t.nodes[i].Kind {
			case KindRule, KindAtRule:
				if !yield(NodeID(i), &t.nodes[i]) {
					return
				}
			}
		}
	}
}

// Position converts byte offset in decoded source into line and column.
func (t *Tree) Position(offset int) Position {
	if len(t.data) == 0 {
		return Position{Line: 1, Column: 1}
	}
	offset = min(max(offset, 0), len(t.data))
	// index of the last line starting at or before offset
	line, found := slices.BinarySearch(t.lines, offset)
	if !found {
		line--
	}
	col := utf8.RuneCount(t.data[t.lines[line]:offset]) + 1
	return Position{Line: line + 1, Column: col}
}

// NodePosition returns location of the node start.
func (t *Tree) NodePosition(id NodeID) Position {
	n := t.Node(id)
	if n == nil {
		return Position{Line: 1, Column: 1}
	}
	return t.Position(n.Offset)
}
