package tree

import (
	"strconv"
	"strings"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

// Direction is a focus movement request.
type Direction int

const (
	Previous Direction = iota
	Next
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Previous:
		return "previous"
	case Next:
		return "next"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "direction(" + strconv.Itoa(int(d)) + ")"
}

// ParseDirection parses a direction name as returned by Direction.String.
func ParseDirection(s string) (Direction, error) {
	for d := Previous; d <= Down; d++ {
		if strings.EqualFold(strings.TrimSpace(s), d.String()) {
			return d, nil
		}
	}
	return Previous, arborerrors.New(arborerrors.ErrCodeInvalidInput, "invalid direction %q", s)
}

// Container is a node whose children can hold focus.
type Container interface {
	Node
	Children() []Node
	// Across returns the index of the child that receives focus when moving
	// in dir away from the child at index, or -1 if the move leaves the node.
	Across(o Orientation, index int, dir Direction) int
	// Entry returns the index of the child that receives focus when focus
	// arrives from outside moving in dir, or -1 if the node keeps it.
	Entry(o Orientation, dir Direction) int
}

// Across implements Container. In horizontal mode Previous and Next move
// between branches, Up returns to the content and Down enters the first
// branch. In vertical mode all children form one list, with Up and Previous
// moving backwards and Down and Next moving forwards.
func (t *Tree) Across(o Orientation, index int, dir Direction) int {
	n := len(t.children)
	if o == Vertical {
		switch dir {
		case Up, Previous:
			if index > 0 {
				return index - 1
			}
		case Down, Next:
			if index < n-1 {
				return index + 1
			}
		}
		return -1
	}

	switch dir {
	case Previous:
		if index > 1 {
			return index - 1
		}
	case Next:
		if index > 0 && index < n-1 {
			return index + 1
		}
	case Up:
		if index > 0 {
			return 0
		}
	case Down:
		if index == 0 && n > 1 {
			return 1
		}
	}
	return -1
}

// Entry implements Container. A collapsed tree keeps focus for itself.
func (t *Tree) Entry(o Orientation, dir Direction) int {
	if t.Collapsed() {
		return -1
	}
	if o == Vertical && dir == Up {
		return len(t.children) - 1
	}
	return 0
}

var _ Container = (*Tree)(nil)

// Path addresses a node by the child indices leading to it from the root.
// The empty path is the root itself.
type Path []int

// Child returns a new path extended by index i.
func (p Path) Child(i int) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = i
	return c
}

// Parent returns the parent path and the index of p within it.
// ok is false for the root.
func (p Path) Parent() (parent Path, index int, ok bool) {
	if len(p) == 0 {
		return nil, 0, false
	}
	return p[:len(p)-1 : len(p)-1], p[len(p)-1], true
}

// Equal reports whether p and q address the same node.
func (p Path) Equal(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// String formats the path as slash-separated indices; the root is "/".
func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	parts := make([]string, len(p))
	for i, idx := range p {
		parts[i] = strconv.Itoa(idx)
	}
	return "/" + strings.Join(parts, "/")
}

// ParsePath parses the format produced by Path.String.
func ParsePath(s string) (Path, error) {
	s = strings.Trim(s, "/")
	if s == "" {
		return Path{}, nil
	}
	parts := strings.Split(s, "/")
	p := make(Path, len(parts))
	for i, part := range parts {
		idx, err := strconv.Atoi(part)
		if err != nil || idx < 0 {
			return nil, arborerrors.New(arborerrors.ErrCodeInvalidPath, "invalid path segment %q", part)
		}
		p[i] = idx
	}
	return p, nil
}

// Resolve returns the node at p below root.
func Resolve(root Node, p Path) (Node, bool) {
	n := root
	for _, idx := range p {
		c, ok := n.(Container)
		if !ok {
			return nil, false
		}
		children := c.Children()
		if idx < 0 || idx >= len(children) {
			return nil, false
		}
		n = children[idx]
	}
	return n, true
}

// Navigator resolves focus movement within a document.
type Navigator struct {
	Root        Node
	Orientation Orientation
}

// Move moves focus away from the node at focus. It returns false when the
// move reaches the document boundary.
func (nav Navigator) Move(focus Path, dir Direction) (Path, bool) {
	return nav.MoveOut(focus, dir)
}

// MoveAcross moves focus from the child at index of the container at p.
// When the container has no target for the move it is delegated outward.
func (nav Navigator) MoveAcross(p Path, index int, dir Direction) (Path, bool) {
	if n, ok := Resolve(nav.Root, p); ok {
		if c, ok := n.(Container); ok {
			if target := c.Across(nav.Orientation, index, dir); target >= 0 {
				return nav.MoveTo(p.Child(target), dir), true
			}
		}
	}
	return nav.MoveOut(p, dir)
}

// MoveTo lets focus arrive at the node at p, descending into containers
// until a node accepts it.
func (nav Navigator) MoveTo(p Path, dir Direction) Path {
	n, ok := Resolve(nav.Root, p)
	if !ok {
		return p
	}
	c, ok := n.(Container)
	if !ok {
		return p
	}
	target := c.Entry(nav.Orientation, dir)
	if target < 0 {
		return p
	}
	return nav.MoveTo(p.Child(target), dir)
}

// MoveOut asks the parent of p to move focus away from p.
func (nav Navigator) MoveOut(p Path, dir Direction) (Path, bool) {
	parent, index, ok := p.Parent()
	if !ok {
		return nil, false
	}
	return nav.MoveAcross(parent, index, dir)
}
