package tree

// Prepare lays out the content and branches, then computes the tree's own
// geometry according to ctx.Orientation.
func (t *Tree) Prepare(ctx Context) {
	if ctx.Orientation == Vertical {
		t.prepareVertical(ctx)
		return
	}
	t.prepareHorizontal(ctx)
}

// prepareHorizontal centers the content above a row of branches. Whichever
// of the two is narrower is centered relative to the other.
func (t *Tree) prepareHorizontal(ctx Context) {
	content := t.children[0]
	content.Prepare(ctx)
	cb := content.Box()
	cb.X, cb.Y = Gap, Gap

	t.box.Width = Gap + cb.Width + Gap
	t.box.Height = Gap + cb.Height + Gap

	if t.showsBranches() {
		t.box.Height += 2 * Gap

		branches := t.children[1:]
		rowWidth, rowHeight := 0, 0
		for i, b := range branches {
			b.Prepare(ctx)
			bb := b.Box()
			if i > 0 {
				rowWidth += Gap
			}
			bb.X = rowWidth
			bb.Y = t.box.Height
			rowWidth += bb.Width
			rowHeight = max(rowHeight, bb.Height)
		}

		if t.box.Width > rowWidth {
			excess := half(t.box.Width - rowWidth)
			for _, b := range branches {
				b.Box().X += excess
			}
		} else {
			t.box.Width = rowWidth
			cb.X = half(t.box.Width - cb.Width)
		}

		t.box.Height += rowHeight
	}

	t.box.HorzBaseline = half(t.box.Height)
	t.box.VertBaseline = half(t.box.Width)
}

// prepareVertical stacks branches below the content, indented past the rail.
func (t *Tree) prepareVertical(ctx Context) {
	content := t.children[0]
	content.Prepare(ctx)
	cb := content.Box()
	cb.X, cb.Y = Gap, Gap

	t.box.Width = Gap + cb.Width + Gap
	t.box.Height = Gap + cb.Height + Gap
	t.box.HorzBaseline = Gap + cb.HorzBaseline

	if t.showsBranches() {
		for _, b := range t.children[1:] {
			b.Prepare(ctx)
			bb := b.Box()

			t.box.Height += Gap
			bb.X = 2 * Gap
			bb.Y = t.box.Height

			t.box.Width = max(t.box.Width, 2*Gap+bb.Width)
			t.box.Height += bb.Height
		}
	}

	t.box.VertBaseline = half(t.box.Width)
}
