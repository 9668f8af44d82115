package tree

// Tree is a diagram node whose first child is the content and whose
// remaining children are branches.
//
// A Tree must always have at least one child; Prepare and Display do not
// check this.
type Tree struct {
	// Expanded controls whether branches are laid out, painted and
	// reachable by navigation. It has no effect on a tree without branches.
	Expanded bool

	children []Node
	box      Box
}

// New creates an expanded tree with the given content and branches.
func New(content Node, branches ...Node) *Tree {
	children := make([]Node, 0, 1+len(branches))
	children = append(children, content)
	children = append(children, branches...)
	return &Tree{Expanded: true, children: children}
}

// Wrap creates a tree whose content is n and which has no branches.
func Wrap(n Node) *Tree {
	return New(n)
}

func (t *Tree) Box() *Box { return &t.box }

// Children returns the content followed by the branches.
func (t *Tree) Children() []Node { return t.children }

// Content returns the first child.
func (t *Tree) Content() Node { return t.children[0] }

// Branches returns every child but the first.
func (t *Tree) Branches() []Node { return t.children[1:] }

// AddBranch appends a branch.
func (t *Tree) AddBranch(n Node) { t.children = append(t.children, n) }

// Replace swaps the child at index i.
func (t *Tree) Replace(i int, n Node) { t.children[i] = n }

// Collapsed reports whether the tree hides at least one branch.
func (t *Tree) Collapsed() bool {
	return !t.Expanded && len(t.children) > 1
}

// showsBranches reports whether branches take part in layout and paint.
func (t *Tree) showsBranches() bool {
	return t.Expanded && len(t.children) > 1
}

// Walk calls fn for n and, for trees, every descendant in pre-order along
// with its path relative to n.
func Walk(n Node, fn func(n Node, p Path)) {
	walk(n, nil, fn)
}

func walk(n Node, p Path, fn func(Node, Path)) {
	fn(n, p)
	if c, ok := n.(Container); ok {
		for i, child := range c.Children() {
			walk(child, p.Child(i), fn)
		}
	}
}
