package xmltree

// Node is one element of a parsed document. A leaf carries the element's
// text in Value; a branch maps child element names to the children with
// that name, in document order. A child that occurs once is still held in
// a one-element slice.
type Node struct {
	Value    string
	Children map[string][]*Node
}

// Leaf returns a leaf node holding value.
func Leaf(value string) *Node {
	return &Node{Value: value}
}

// Branch returns an empty branch node.
func Branch() *Node {
	return &Node{Children: map[string][]*Node{}}
}

// IsLeaf reports whether n holds a text value rather than child elements.
func (n *Node) IsLeaf() bool {
	return n != nil && n.Children == nil
}

// Add appends child under name and returns n for chaining.
func (n *Node) Add(name string, child *Node) *Node {
	if n.Children == nil {
		n.Children = map[string][]*Node{}
	}
	n.Children[name] = append(n.Children[name], child)
	return n
}

// Lookup walks path from n, taking the first element of every sequence on
// the way. It returns nil as soon as a step is missing.
func (n *Node) Lookup(path ...string) *Node {
	cur := n
	for _, name := range path {
		if cur == nil {
			return nil
		}
		seq := cur.Children[name]
		if len(seq) == 0 {
			return nil
		}
		cur = seq[0]
	}
	return cur
}

// String resolves path to a leaf value. Missing steps and non-leaf targets
// yield "".
func (n *Node) String(path ...string) string {
	target := n.Lookup(path...)
	if !target.IsLeaf() {
		return ""
	}
	return target.Value
}

// Sequence resolves every step but the last like Lookup and returns the
// full child sequence named by the last step. The result is never nil.
func (n *Node) Sequence(path ...string) []*Node {
	if len(path) == 0 {
		return []*Node{}
	}
	parent := n.Lookup(path[:len(path)-1]...)
	if parent == nil || len(parent.Children[path[len(path)-1]]) == 0 {
		return []*Node{}
	}
	seq := parent.Children[path[len(path)-1]]
	out := make([]*Node, len(seq))
	copy(out, seq)
	return out
}

// Document is the result of parsing one XML file. Its root node is a branch
// holding the document element under its own name, so paths start with the
// document element's name.
type Document struct {
	Root *Node
}

// NewDocument wraps root as a document.
func NewDocument(root *Node) *Document {
	return &Document{Root: root}
}

// String resolves path from the document root. A nil document resolves to "".
func (d *Document) String(path ...string) string {
	if d == nil {
		return ""
	}
	return d.Root.String(path...)
}

// Sequence resolves path from the document root. A nil document resolves to
// an empty sequence.
func (d *Document) Sequence(path ...string) []*Node {
	if d == nil {
		return []*Node{}
	}
	return d.Root.Sequence(path...)
}
