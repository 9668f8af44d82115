package tree

import (
	"testing"

	"pgregory.net/rapid"
)

func drawNode(t *rapid.T, depth int) Node {
	if depth <= 0 || rapid.IntRange(0, 2).Draw(t, "terminal") == 0 {
		return leaf(rapid.IntRange(0, 60).Draw(t, "w"), rapid.IntRange(0, 30).Draw(t, "h"))
	}
	tr := New(drawNode(t, depth-1))
	for range rapid.IntRange(0, 4).Draw(t, "branches") {
		tr.AddBranch(drawNode(t, depth-1))
	}
	tr.Expanded = rapid.Bool().Draw(t, "expanded")
	return tr
}

func drawContext(t *rapid.T) Context {
	if rapid.Bool().Draw(t, "vertical") {
		return vertical()
	}
	return horizontal()
}

func snapshot(root Node) []Box {
	var boxes []Box
	Walk(root, func(n Node, _ Path) { boxes = append(boxes, *n.Box()) })
	return boxes
}

func TestPropertyPrepareIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := drawNode(t, 4)
		ctx := drawContext(t)

		root.Prepare(ctx)
		first := snapshot(root)
		root.Prepare(ctx)
		second := snapshot(root)

		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("node %d: %v then %v", i, first[i], second[i])
			}
		}
	})
}

func TestPropertyChildrenInsideParent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := drawNode(t, 4)
		ctx := drawContext(t)
		root.Prepare(ctx)

		visible(root, func(n Node) {
			tr, ok := n.(*Tree)
			if !ok {
				return
			}
			b := tr.Box()
			cb := tr.Content().Box()
			if b.Width < cb.Width+2*Gap || b.Height < cb.Height+2*Gap {
				t.Fatalf("tree %v smaller than padded content %v", *b, *cb)
			}
			if b.VertBaseline != half(b.Width) {
				t.Fatalf("VertBaseline %d != half(%d)", b.VertBaseline, b.Width)
			}
			if ctx.Orientation == Horizontal && b.HorzBaseline != half(b.Height) {
				t.Fatalf("HorzBaseline %d != half(%d)", b.HorzBaseline, b.Height)
			}

			children := []Node{tr.Content()}
			if tr.showsBranches() {
				children = tr.Children()
			}
			for _, c := range children {
				cb := c.Box()
				if cb.X < 0 || cb.Y < 0 || cb.X+cb.Width > b.Width || cb.Y+cb.Height > b.Height {
					t.Fatalf("child %v escapes parent %v", *cb, *b)
				}
			}
		})
	})
}

func TestPropertyBaselinesWithinBox(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := drawNode(t, 4)
		for _, ctx := range []Context{horizontal(), vertical()} {
			root.Prepare(ctx)
			visible(root, func(n Node) {
				b := n.Box()
				if b.HorzBaseline < 0 || b.HorzBaseline > b.Height {
					t.Fatalf("%s: HorzBaseline %d outside [0, %d]", ctx.Orientation, b.HorzBaseline, b.Height)
				}
				if b.VertBaseline < 0 || b.VertBaseline > b.Width {
					t.Fatalf("%s: VertBaseline %d outside [0, %d]", ctx.Orientation, b.VertBaseline, b.Width)
				}
			})
		}
	})
}

func TestPropertyBranchesDoNotOverlap(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := drawNode(t, 3)
		ctx := drawContext(t)
		root.Prepare(ctx)

		visible(root, func(n Node) {
			tr, ok := n.(*Tree)
			if !ok || !tr.showsBranches() {
				return
			}
			content := tr.Content().Box()
			prev := content
			for i, br := range tr.Branches() {
				bb := br.Box()
				if bb.Y < content.Y+content.Height+Gap {
					t.Fatalf("branch %d at y=%d overlaps content ending at %d", i, bb.Y, content.Y+content.Height)
				}
				if i == 0 {
					prev = bb
					continue
				}
				if ctx.Orientation == Horizontal && bb.X != prev.X+prev.Width+Gap {
					t.Fatalf("branch %d at x=%d, want %d", i, bb.X, prev.X+prev.Width+Gap)
				}
				if ctx.Orientation == Vertical && bb.Y != prev.Y+prev.Height+Gap {
					t.Fatalf("branch %d at y=%d, want %d", i, bb.Y, prev.Y+prev.Height+Gap)
				}
				prev = bb
			}
		})
	})
}

func TestPropertyNavigationStaysInTree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := drawNode(t, 4)
		ctx := drawContext(t)
		nav := Navigator{Root: root, Orientation: ctx.Orientation}

		focus := nav.MoveTo(Path{}, Down)
		dirs := []Direction{Previous, Next, Up, Down}
		for range rapid.IntRange(1, 20).Draw(t, "steps") {
			dir := dirs[rapid.IntRange(0, 3).Draw(t, "dir")]
			next, ok := nav.Move(focus, dir)
			if !ok {
				continue
			}
			n, found := Resolve(root, next)
			if !found {
				t.Fatalf("move %s from %s reached unresolvable %s", dir, focus, next)
			}
			if c, isTree := n.(*Tree); isTree && !c.Collapsed() {
				t.Fatalf("focus landed on expanded tree at %s", next)
			}
			focus = next
		}
	})
}
