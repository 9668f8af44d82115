// Package document ties a diagram tree to its display state.
//
// A [Document] owns the root of a diagram, the layout settings applied to it
// and the current selection. Every change that affects geometry (toggling a
// tree, switching orientation, editing the tree) goes through
// [Document.Refresh], which lays the whole document out again and then runs
// the registered refresh handlers, typically a re-render.
//
// Documents are persisted as expressions (see package expr). [Loader] turns an
// expression into a document, applying conversion requests along the way,
// and [Dump] turns a diagram back into an expression.
//
// # Actions
//
// Editing operations on the selection are exposed as [Action] values so that
// the interactive browser and the HTTP API share one implementation:
//
//	doc.Select(path)
//	if act := document.Lookup("toggle"); act.Available(doc) {
//	    err := act.Do(doc)
//	}
package document

import (
	"github.com/google/uuid"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/surface"
	"github.com/matzehuels/arbor/pkg/tree"
)

// RefreshHandler is called after every layout pass of a document.
type RefreshHandler func(d *Document)

// Document is a diagram with its layout settings and selection.
//
// A Document is not safe for concurrent use.
type Document struct {
	// ID identifies the document in a store or workspace.
	ID string
	// Name is a human-readable label, usually the source file name.
	Name string

	root      tree.Node
	ctx       tree.Context
	selection tree.Path
	handlers  []RefreshHandler
}

// Option configures a Document.
type Option func(*Document)

// WithID sets the document ID instead of generating one.
func WithID(id string) Option {
	return func(d *Document) { d.ID = id }
}

// WithContext sets the layout context.
func WithContext(ctx tree.Context) Option {
	return func(d *Document) { d.ctx = ctx }
}

// WithOrientation sets the layout orientation.
func WithOrientation(o tree.Orientation) Option {
	return func(d *Document) { d.ctx.Orientation = o }
}

// New creates a document around root and lays it out. The selection starts
// on the first node that accepts focus.
func New(name string, root tree.Node, opts ...Option) *Document {
	d := &Document{
		ID:   uuid.NewString(),
		Name: name,
		root: root,
		ctx:  tree.DefaultContext(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.selection = d.Navigator().MoveTo(tree.Path{}, tree.Down)
	d.Layout()
	return d
}

// Root returns the root node.
func (d *Document) Root() tree.Node { return d.root }

// Context returns the layout context.
func (d *Document) Context() tree.Context { return d.ctx }

// Orientation returns the layout orientation.
func (d *Document) Orientation() tree.Orientation { return d.ctx.Orientation }

// SetOrientation switches the layout orientation and refreshes the document.
func (d *Document) SetOrientation(o tree.Orientation) {
	d.ctx.Orientation = o
	d.Refresh()
}

// OnRefresh registers h to run after every refresh.
func (d *Document) OnRefresh(h RefreshHandler) {
	d.handlers = append(d.handlers, h)
}

// Layout recomputes the geometry of every node.
func (d *Document) Layout() {
	d.root.Prepare(d.ctx)
}

// Refresh lays the document out and runs the refresh handlers in
// registration order.
func (d *Document) Refresh() {
	d.Layout()
	for _, h := range d.handlers {
		h(d)
	}
}

// Size returns the extent of the last layout.
func (d *Document) Size() (width, height int) {
	b := d.root.Box()
	return b.Width, b.Height
}

// Display paints the document with its origin at (x, y). It uses the
// geometry of the last layout.
func (d *Document) Display(s surface.Surface, x, y int) {
	d.root.Display(d.ctx, s, x, y)
}

// Navigator returns a navigator over the document.
func (d *Document) Navigator() tree.Navigator {
	return tree.Navigator{Root: d.root, Orientation: d.ctx.Orientation}
}

// Selection returns the path of the selected node.
func (d *Document) Selection() tree.Path { return d.selection }

// Selected returns the selected node.
func (d *Document) Selected() tree.Node {
	n, ok := tree.Resolve(d.root, d.selection)
	if !ok {
		return d.root
	}
	return n
}

// Select makes the node at p the selection.
func (d *Document) Select(p tree.Path) error {
	if _, ok := tree.Resolve(d.root, p); !ok {
		return arborerrors.New(arborerrors.ErrCodeInvalidPath, "no node at %s", p)
	}
	d.selection = p
	return nil
}

// Move moves the selection in dir. It returns false and leaves the selection
// unchanged when the move reaches the document boundary.
func (d *Document) Move(dir tree.Direction) bool {
	p, ok := d.Navigator().Move(d.selection, dir)
	if !ok {
		return false
	}
	d.selection = p
	return true
}

// SelectParent moves the selection to the enclosing node. It returns false at
// the root.
func (d *Document) SelectParent() bool {
	parent, _, ok := d.selection.Parent()
	if !ok {
		return false
	}
	d.selection = parent
	return true
}

// Replace swaps the node at p for n. The caller refreshes the document.
func (d *Document) Replace(p tree.Path, n tree.Node) error {
	parent, index, ok := p.Parent()
	if !ok {
		d.root = n
		return nil
	}
	pn, found := tree.Resolve(d.root, parent)
	if !found {
		return arborerrors.New(arborerrors.ErrCodeInvalidPath, "no node at %s", parent)
	}
	t, isTree := pn.(*tree.Tree)
	if !isTree || index >= len(t.Children()) {
		return arborerrors.New(arborerrors.ErrCodeInvalidPath, "no node at %s", p)
	}
	t.Replace(index, n)
	return nil
}
