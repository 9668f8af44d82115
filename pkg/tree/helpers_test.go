package tree

import "github.com/matzehuels/arbor/pkg/surface"

// fixed is a terminal node with a preset size that counts its paints.
type fixed struct {
	w, h     int
	box      Box
	displays int
}

func leaf(w, h int) *fixed { return &fixed{w: w, h: h} }

func (f *fixed) Box() *Box { return &f.box }

func (f *fixed) Prepare(Context) {
	f.box.Width, f.box.Height = f.w, f.h
	f.box.HorzBaseline, f.box.VertBaseline = half(f.h), half(f.w)
}

func (f *fixed) Display(Context, surface.Surface, int, int) { f.displays++ }

// visible calls fn for n and every descendant that takes part in layout.
func visible(n Node, fn func(Node)) {
	fn(n)
	t, ok := n.(*Tree)
	if !ok {
		return
	}
	visible(t.Content(), fn)
	if t.showsBranches() {
		for _, b := range t.Branches() {
			visible(b, fn)
		}
	}
}

func horizontal() Context { return Context{Orientation: Horizontal} }
func vertical() Context   { return Context{Orientation: Vertical} }
