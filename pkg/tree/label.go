package tree

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/surface"
)

// TextMeasurer reports the extent of a single line of text.
type TextMeasurer interface {
	// Measure returns the advance width, the line height and the ascent
	// (distance from the top of the line to the baseline).
	Measure(text string) (width, height, ascent int)
}

// BasicMeasurer measures text set in the 7x13 bitmap face used by the raster
// surface, which the SVG surface approximates with a 13px monospace font.
type BasicMeasurer struct{}

func (BasicMeasurer) Measure(text string) (width, height, ascent int) {
	face := basicfont.Face7x13
	m := face.Metrics()
	return font.MeasureString(face, text).Ceil(), m.Height.Ceil(), m.Ascent.Ceil()
}

// Label is a single line of text.
type Label struct {
	Text string
	box  Box
}

// NewLabel creates a text label.
func NewLabel(text string) *Label {
	return &Label{Text: text}
}

func (l *Label) Box() *Box { return &l.box }

func (l *Label) Prepare(ctx Context) {
	w, h, ascent := ctx.measurer().Measure(l.Text)
	l.box.Width = w
	l.box.Height = h
	l.box.HorzBaseline = ascent
	l.box.VertBaseline = half(w)
}

func (l *Label) Display(_ Context, s surface.Surface, x, y int) {
	s.FillText(l.Text, x, y+l.box.HorzBaseline)
}

// Leaf wraps an arbitrary source expression as a terminal diagram node.
// It shows the expression's value, or its tag when it has none.
type Leaf struct {
	Source *expr.Node
	label  Label
}

// NewLeaf wraps src. The caller should pass a copy if src is shared.
func NewLeaf(src *expr.Node) *Leaf {
	return &Leaf{Source: src}
}

// Text returns the text displayed for the leaf.
func (l *Leaf) Text() string {
	if l.Source == nil {
		return ""
	}
	if l.Source.Value != "" {
		return l.Source.Value
	}
	return l.Source.Tag
}

func (l *Leaf) Box() *Box { return &l.label.box }

func (l *Leaf) Prepare(ctx Context) {
	l.label.Text = l.Text()
	l.label.Prepare(ctx)
}

func (l *Leaf) Display(ctx Context, s surface.Surface, x, y int) {
	l.label.Display(ctx, s, x, y)
}
