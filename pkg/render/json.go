package render

import (
	json "github.com/goccy/go-json"

	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Geometry is the exported layout of a document.
type Geometry struct {
	Orientation string         `json:"orientation"`
	Width       int            `json:"width"`
	Height      int            `json:"height"`
	Margin      int            `json:"margin"`
	Selection   string         `json:"selection"`
	Nodes       []NodeGeometry `json:"nodes"`
}

// NodeGeometry is the layout of one visible node in canvas coordinates.
type NodeGeometry struct {
	Path         string `json:"path"`
	Kind         string `json:"kind"`
	Text         string `json:"text,omitempty"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	HorzBaseline int    `json:"horz_baseline"`
	VertBaseline int    `json:"vert_baseline"`
	Expanded     *bool  `json:"expanded,omitempty"`
	Collapsed    bool   `json:"collapsed,omitempty"`
}

// Export collects the geometry of every node painted by the last layout.
// Branches of collapsed trees are omitted.
func Export(d *document.Document, opts ...Option) Geometry {
	r := newRenderer(opts)
	w, h := r.canvasSize(d)
	g := Geometry{
		Orientation: d.Orientation().String(),
		Width:       w,
		Height:      h,
		Margin:      r.margin,
		Selection:   d.Selection().String(),
	}
	collect(d.Root(), tree.Path{}, r.margin, r.margin, &g.Nodes)
	return g
}

func collect(n tree.Node, p tree.Path, x, y int, out *[]NodeGeometry) {
	b := n.Box()
	ng := NodeGeometry{
		Path:         p.String(),
		Kind:         Kind(n),
		Text:         Text(n),
		X:            x,
		Y:            y,
		Width:        b.Width,
		Height:       b.Height,
		HorzBaseline: b.HorzBaseline,
		VertBaseline: b.VertBaseline,
	}
	t, ok := n.(*tree.Tree)
	if !ok {
		*out = append(*out, ng)
		return
	}
	expanded := t.Expanded
	ng.Expanded = &expanded
	ng.Collapsed = t.Collapsed()
	*out = append(*out, ng)

	children := t.Children()
	if ng.Collapsed {
		children = children[:1]
	}
	for i, c := range children {
		cb := c.Box()
		collect(c, p.Child(i), x+cb.X, y+cb.Y, out)
	}
}

// JSON renders the geometry of d as indented JSON.
func JSON(d *document.Document, opts ...Option) ([]byte, error) {
	return json.MarshalIndent(Export(d, opts...), "", "  ")
}

// Kind names the type of a diagram node.
func Kind(n tree.Node) string {
	switch n.(type) {
	case *tree.Tree:
		return "tree"
	case *tree.Label:
		return "label"
	case *tree.Leaf:
		return "leaf"
	}
	return "node"
}

// Text returns the text shown by a node. A tree shows the text of its
// content.
func Text(n tree.Node) string {
	switch n := n.(type) {
	case *tree.Tree:
		return Text(n.Content())
	case *tree.Label:
		return n.Text
	case *tree.Leaf:
		return n.Text()
	}
	return ""
}
