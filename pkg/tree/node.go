package tree

import (
	"fmt"
	"strings"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/surface"
)

// Gap is the inset between a tree's border and its content, and the spacing
// between branches and connector segments.
const Gap = 10

// HighlightColor fills the content band of a collapsed tree.
const HighlightColor = "orange"

// Orientation selects the layout strategy applied to every tree.
type Orientation int

const (
	// Horizontal lays branches out side by side below the content.
	Horizontal Orientation = iota
	// Vertical stacks branches below the content, indented.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ParseOrientation parses "horizontal" or "vertical" (case-insensitive).
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h":
		return Horizontal, nil
	case "vertical", "v":
		return Vertical, nil
	}
	return Horizontal, arborerrors.New(arborerrors.ErrCodeInvalidOrientation,
		"invalid orientation %q (must be 'horizontal' or 'vertical')", s)
}

// Box is the geometry computed for a node by the last layout pass.
// X and Y are relative to the parent's origin.
type Box struct {
	X, Y          int
	Width, Height int
	// HorzBaseline is the y coordinate used for vertical alignment.
	HorzBaseline int
	// VertBaseline is the x coordinate used for horizontal alignment.
	VertBaseline int
}

func (b Box) String() string {
	return fmt.Sprintf("%dx%d@(%d,%d) base(%d,%d)", b.Width, b.Height, b.X, b.Y, b.HorzBaseline, b.VertBaseline)
}

// Context carries the settings threaded through layout and paint.
type Context struct {
	Orientation Orientation
	Measurer    TextMeasurer
}

// DefaultContext returns a horizontal context using [BasicMeasurer].
func DefaultContext() Context {
	return Context{Orientation: Horizontal, Measurer: BasicMeasurer{}}
}

// WithOrientation returns a copy of ctx using o.
func (ctx Context) WithOrientation(o Orientation) Context {
	ctx.Orientation = o
	return ctx
}

func (ctx Context) measurer() TextMeasurer {
	if ctx.Measurer == nil {
		return BasicMeasurer{}
	}
	return ctx.Measurer
}

// Node is anything that can be laid out and painted as part of a diagram.
type Node interface {
	// Box returns the node's geometry. Parents write X and Y.
	Box() *Box
	// Prepare lays out the node and its descendants.
	Prepare(ctx Context)
	// Display paints the node with its origin at (x, y).
	Display(ctx Context, s surface.Surface, x, y int)
}

// half returns round(v/2) for non-negative v, rounding halves up.
func half(v int) int {
	return (v + 1) / 2
}
