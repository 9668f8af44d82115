package tree

import "github.com/matzehuels/arbor/pkg/surface"

// Display paints the tree with its origin at (x, y). It relies on the
// geometry of the last Prepare call with the same orientation.
func (t *Tree) Display(ctx Context, s surface.Surface, x, y int) {
	if ctx.Orientation == Vertical {
		t.displayVertical(ctx, s, x, y)
		return
	}
	t.displayHorizontal(ctx, s, x, y)
}

// frame strokes the content band, filling it first when branches are hidden.
func (t *Tree) frame(s surface.Surface, x, y, w, h int) {
	if t.Collapsed() {
		prev := s.FillStyle()
		s.SetFillStyle(HighlightColor)
		s.FillRect(x, y, w, h)
		s.SetFillStyle(prev)
	}
	s.StrokeRect(x, y, w, h)
}

func (t *Tree) displayHorizontal(ctx Context, s surface.Surface, x, y int) {
	content := t.children[0]
	cb := content.Box()

	// Anchor of the stem: bottom center of the content band.
	ax := t.box.VertBaseline
	ay := Gap + cb.Height + Gap
	left := ax - half(cb.Width) - Gap

	t.frame(s, x+left, y, cb.Width+2*Gap, ay)
	content.Display(ctx, s, x+cb.X, y+cb.Y)

	if !t.showsBranches() {
		return
	}

	branches := t.children[1:]

	s.BeginPath()
	if len(branches) == 1 {
		s.MoveTo(x+ax, y+ay)
		s.LineTo(x+ax, y+ay+2*Gap)
	} else {
		barY := y + ay + Gap
		first, last := branches[0].Box(), branches[len(branches)-1].Box()

		s.MoveTo(x+ax, y+ay)
		s.LineTo(x+ax, barY)
		s.MoveTo(x+first.X+first.VertBaseline, barY)
		s.LineTo(x+last.X+last.VertBaseline, barY)

		for _, b := range branches {
			bb := b.Box()
			s.MoveTo(x+bb.X+bb.VertBaseline, barY)
			s.LineTo(x+bb.X+bb.VertBaseline, barY+Gap)
		}
	}
	s.Stroke()

	for _, b := range branches {
		bb := b.Box()
		b.Display(ctx, s, x+bb.X, y+bb.Y)
	}
}

func (t *Tree) displayVertical(ctx Context, s surface.Surface, x, y int) {
	content := t.children[0]
	cb := content.Box()

	t.frame(s, x, y, Gap+cb.Width+Gap, Gap+cb.Height+Gap)
	content.Display(ctx, s, x+cb.X, y+cb.Y)

	if !t.showsBranches() {
		return
	}

	branches := t.children[1:]
	first, last := branches[0].Box(), branches[len(branches)-1].Box()
	railX := x + Gap

	s.BeginPath()
	s.MoveTo(railX, y+first.Y-Gap)
	s.LineTo(railX, y+last.Y+last.HorzBaseline)
	for _, b := range branches {
		bb := b.Box()
		s.MoveTo(railX, y+bb.Y+bb.HorzBaseline)
		s.LineTo(railX+Gap, y+bb.Y+bb.HorzBaseline)
	}
	s.Stroke()

	for _, b := range branches {
		bb := b.Box()
		b.Display(ctx, s, x+bb.X, y+bb.Y)
	}
}
