package document

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/convert"
	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/tree"
)

// FieldLeaf marks a persisted text literal that was a copied source leaf
// rather than a label, so that both survive a save and reload unchanged.
const FieldLeaf = "Leaf"

const leafMarker = "True"

// Loader builds diagram nodes from expressions.
//
// A tree whose "Expanded" attribute cannot be decoded is not loaded. In
// strict mode that aborts the whole document; otherwise the offending node is
// kept as a raw leaf, a warning is logged and loading continues.
type Loader struct {
	Strict bool
	Logger *log.Logger
}

// Load converts src into a document.
func (l Loader) Load(name string, src *expr.Node, opts ...Option) (*Document, error) {
	root, err := l.Node(src)
	if err != nil {
		return nil, err
	}
	return New(name, root, opts...), nil
}

// LoadFile reads and converts the expression stored at path.
func (l Loader) LoadFile(path string, opts ...Option) (*Document, error) {
	src, err := expr.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return l.Load(path, src, opts...)
}

// Node converts src into a diagram node.
func (l Loader) Node(src *expr.Node) (tree.Node, error) {
	if err := src.Validate(); err != nil {
		return nil, arborerrors.Wrap(arborerrors.ErrCodeInvalidDocument, err, "invalid document")
	}
	return l.node(src, tree.Path{})
}

func (l Loader) node(src *expr.Node, p tree.Path) (tree.Node, error) {
	switch src.Tag {
	case expr.TagTree:
		return l.tree(src, p)
	case expr.TagToTree:
		n, ok := convert.Reduce(src)
		if !ok {
			return nil, arborerrors.New(arborerrors.ErrCodeInvalidDocument, "%s: malformed conversion request", p)
		}
		return n, nil
	case expr.TagString:
		if v, ok := src.Attr(FieldLeaf); ok && v == leafMarker {
			c := src.Clone()
			delete(c.Attrs, FieldLeaf)
			if len(c.Attrs) == 0 {
				c.Attrs = nil
			}
			return tree.NewLeaf(c), nil
		}
		return tree.NewLabel(src.Value), nil
	}
	return tree.NewLeaf(src.Clone()), nil
}

func (l Loader) tree(src *expr.Node, p tree.Path) (tree.Node, error) {
	children := make([]tree.Node, len(src.Children))
	for i, c := range src.Children {
		n, err := l.node(c, p.Child(i))
		if err != nil {
			return nil, err
		}
		children[i] = n
	}

	t := tree.New(children[0], children[1:]...)
	if v, ok := src.Attr(tree.FieldExpanded); ok {
		if err := t.SetSerializationStrings([]string{v}); err != nil {
			if l.Strict {
				return nil, fmt.Errorf("%s: %w", p, err)
			}
			l.logger().Warn("skipping tree with unreadable state", "path", p.String(), "err", err)
			return tree.NewLeaf(src.Clone()), nil
		}
	}
	return t, nil
}

func (l Loader) logger() *log.Logger {
	if l.Logger == nil {
		return log.New(io.Discard)
	}
	return l.Logger
}

// Dump converts a diagram back into its persisted expression.
func Dump(n tree.Node) (*expr.Node, error) {
	switch n := n.(type) {
	case *tree.Tree:
		out := expr.New(expr.TagTree)
		for _, c := range n.Children() {
			child, err := Dump(c)
			if err != nil {
				return nil, err
			}
			out.Children = append(out.Children, child)
		}
		values := n.SerializationStrings()
		for i, name := range n.SerializationNames() {
			out.SetAttr(name, values[i])
		}
		return out, nil
	case *tree.Label:
		return expr.String(n.Text), nil
	case *tree.Leaf:
		out := n.Source.Clone()
		if out.Tag == expr.TagString {
			out.SetAttr(FieldLeaf, leafMarker)
		}
		return out, nil
	}
	return nil, arborerrors.New(arborerrors.ErrCodeUnsupported, "cannot persist node of type %T", n)
}

// Save writes the document as an indented JSON expression.
func Save(w io.Writer, d *Document) error {
	src, err := Dump(d.Root())
	if err != nil {
		return err
	}
	return expr.Write(w, src)
}
