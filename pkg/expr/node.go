package expr

import (
	"errors"
	"fmt"
	"maps"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

// Tags with a meaning to arbor itself.
const (
	// TagTree is a tree diagram: content child followed by branches.
	TagTree = "Diagramming.Tree"

	// TagToTree is a conversion request; its single child is converted into
	// a tree diagram when the document is loaded.
	TagToTree = "Diagramming.ToTree"

	// TagString is a text literal; its value is the text.
	TagString = "String.String"
)

var (
	// ErrNoChildren is returned by [Node.Validate] for a tree or conversion
	// request without children.
	ErrNoChildren = errors.New("node requires at least one child")

	// ErrTooManyChildren is returned by [Node.Validate] for a conversion
	// request with more than one child.
	ErrTooManyChildren = errors.New("conversion request takes exactly one child")
)

// Node is a tagged expression.
type Node struct {
	Tag      string            `json:"tag" yaml:"tag" bson:"tag"`
	Value    string            `json:"value,omitempty" yaml:"value,omitempty" bson:"value,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty" bson:"attrs,omitempty"`
	Children []*Node           `json:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
}

// New creates a node with the given tag and children.
func New(tag string, children ...*Node) *Node {
	return &Node{Tag: tag, Children: children}
}

// Leaf creates a childless node carrying a value.
func Leaf(tag, value string) *Node {
	return &Node{Tag: tag, Value: value}
}

// String creates a text literal.
func String(text string) *Node {
	return Leaf(TagString, text)
}

// WrapToTree wraps n into a conversion request.
func WrapToTree(n *Node) *Node {
	return New(TagToTree, n)
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{Tag: n.Tag, Value: n.Value}
	if n.Attrs != nil {
		c.Attrs = maps.Clone(n.Attrs)
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Attr returns the named attribute string.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// SetAttr sets the named attribute string.
func (n *Node) SetAttr(name, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[name] = value
}

// Walk calls fn for n and every descendant in depth-first pre-order.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes in the expression.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node) bool { count++; return true })
	return count
}

// Validate checks tags and the child-count requirements of arbor's own kinds.
func (n *Node) Validate() error {
	var err error
	n.Walk(func(c *Node) bool {
		if err != nil {
			return false
		}
		if e := arborerrors.ValidateTag(c.Tag); e != nil {
			err = e
			return false
		}
		switch c.Tag {
		case TagTree:
			if len(c.Children) == 0 {
				err = fmt.Errorf("%s: %w", c.Tag, ErrNoChildren)
			}
		case TagToTree:
			if len(c.Children) == 0 {
				err = fmt.Errorf("%s: %w", c.Tag, ErrNoChildren)
			} else if len(c.Children) > 1 {
				err = fmt.Errorf("%s: %w", c.Tag, ErrTooManyChildren)
			}
		}
		return true
	})
	return err
}
