package pgn

// Node is one move in the tree. Index 0 of a Tree is the root and carries no
// move; its comments belong to the starting position.
type Node struct {
	SAN      string
	NAGs     []int
	Comments []string
	Parent   int
	Children []int
}

// Tree stores nodes in an arena addressed by index. The first child of a node
// is its main line; later children are variations.
type Tree struct {
	Nodes []Node
}

// NewTree returns a tree holding only the root.
func NewTree() *Tree {
	return &Tree{Nodes: []Node{{Parent: -1}}}
}

// Root is the index of the root node.
func (t *Tree) Root() int { return 0 }

// Node returns the node at index i.
func (t *Tree) Node(i int) *Node { return &t.Nodes[i] }

// Len is the number of nodes, root included.
func (t *Tree) Len() int { return len(t.Nodes) }

// Add appends a move under parent and returns its index.
func (t *Tree) Add(parent int, san string) int {
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{SAN: san, Parent: parent})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, idx)
	return idx
}

// MainChild returns the first child of i, or -1.
func (t *Tree) MainChild(i int) int {
	if i < 0 || i >= len(t.Nodes) || len(t.Nodes[i].Children) == 0 {
		return -1
	}
	return t.Nodes[i].Children[0]
}

// Siblings returns the other children of i's parent, in document order.
func (t *Tree) Siblings(i int) []int {
	p := t.Nodes[i].Parent
	if p < 0 {
		return nil
	}
	var out []int
	for _, c := range t.Nodes[p].Children {
		if c != i {
			out = append(out, c)
		}
	}
	return out
}

// Variations returns the non-main children of i.
func (t *Tree) Variations(i int) []int {
	ch := t.Nodes[i].Children
	if len(ch) < 2 {
		return nil
	}
	return ch[1:]
}

// Line follows first children starting at (and including) from and returns
// at most max node indices. max <= 0 means no limit.
func (t *Tree) Line(from, max int) []int {
	var out []int
	for cur := from; cur >= 0; cur = t.MainChild(cur) {
		if max > 0 && len(out) >= max {
			break
		}
		out = append(out, cur)
	}
	return out
}

// LineSAN is Line mapped to the nodes' SAN text.
func (t *Tree) LineSAN(from, max int) []string {
	idx := t.Line(from, max)
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = t.Nodes[n].SAN
	}
	return out
}

// Depth is the length of the first-child chain starting at i.
func (t *Tree) Depth(i int) int {
	return len(t.Line(i, 0))
}
