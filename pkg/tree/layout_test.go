package tree

import "testing"

func threeBranches() (*Tree, *fixed, []*fixed) {
	content := leaf(20, 10)
	branches := []*fixed{leaf(30, 10), leaf(40, 10), leaf(50, 10)}
	return New(content, branches[0], branches[1], branches[2]), content, branches
}

func TestPrepareHorizontalBranchesWider(t *testing.T) {
	tr, content, branches := threeBranches()
	tr.Prepare(horizontal())

	want := Box{Width: 140, Height: 60, HorzBaseline: 30, VertBaseline: 70}
	if *tr.Box() != want {
		t.Errorf("tree box = %v, want %v", *tr.Box(), want)
	}

	if cb := content.Box(); cb.X != 60 || cb.Y != Gap {
		t.Errorf("content at (%d,%d), want (60,10)", cb.X, cb.Y)
	}

	wantX := []int{0, 40, 90}
	for i, b := range branches {
		if b.box.X != wantX[i] || b.box.Y != 50 {
			t.Errorf("branch %d at (%d,%d), want (%d,50)", i, b.box.X, b.box.Y, wantX[i])
		}
	}
}

func TestPrepareHorizontalContentWider(t *testing.T) {
	tests := []struct {
		name         string
		contentWidth int
		branchWidth  int
		wantWidth    int
		wantBranchX  int
	}{
		{"even excess", 100, 30, 120, 45},
		{"odd excess rounds up", 101, 30, 121, 46},
		{"equal widths", 10, 30, 30, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, branch := leaf(tt.contentWidth, 10), leaf(tt.branchWidth, 15)
			tr := New(content, branch)
			tr.Prepare(horizontal())

			if tr.box.Width != tt.wantWidth {
				t.Errorf("Width = %d, want %d", tr.box.Width, tt.wantWidth)
			}
			if branch.box.X != tt.wantBranchX {
				t.Errorf("branch X = %d, want %d", branch.box.X, tt.wantBranchX)
			}
			if tr.box.Height != 10+10+10+2*Gap+15 {
				t.Errorf("Height = %d, want %d", tr.box.Height, 10+10+10+2*Gap+15)
			}
		})
	}
}

func TestPrepareHorizontalLeafTree(t *testing.T) {
	content := leaf(7, 13)
	tr := New(content)
	tr.Prepare(horizontal())

	want := Box{Width: 27, Height: 33, HorzBaseline: 17, VertBaseline: 14}
	if *tr.Box() != want {
		t.Errorf("tree box = %v, want %v", *tr.Box(), want)
	}
}

func TestPrepareCollapsedIgnoresBranches(t *testing.T) {
	for _, ctx := range []Context{horizontal(), vertical()} {
		tr, _, branches := threeBranches()
		tr.Expanded = false
		tr.Prepare(ctx)

		if tr.box.Width != 40 || tr.box.Height != 30 {
			t.Errorf("%s: collapsed box = %v, want 40x30", ctx.Orientation, *tr.Box())
		}
		for i, b := range branches {
			if b.box != (Box{}) {
				t.Errorf("%s: hidden branch %d was laid out: %v", ctx.Orientation, i, b.box)
			}
		}
	}
}

func TestPrepareVertical(t *testing.T) {
	tr, content, branches := threeBranches()
	tr.Prepare(vertical())

	want := Box{Width: 70, Height: 90, HorzBaseline: 15, VertBaseline: 35}
	if *tr.Box() != want {
		t.Errorf("tree box = %v, want %v", *tr.Box(), want)
	}
	if cb := content.Box(); cb.X != Gap || cb.Y != Gap {
		t.Errorf("content at (%d,%d), want (10,10)", cb.X, cb.Y)
	}
	wantY := []int{40, 60, 80}
	for i, b := range branches {
		if b.box.X != 2*Gap || b.box.Y != wantY[i] {
			t.Errorf("branch %d at (%d,%d), want (20,%d)", i, b.box.X, b.box.Y, wantY[i])
		}
	}
}

func TestPrepareVerticalContentWider(t *testing.T) {
	tr := New(leaf(80, 10), leaf(30, 10))
	tr.Prepare(vertical())
	if tr.box.Width != 100 {
		t.Errorf("Width = %d, want 100", tr.box.Width)
	}
}

func TestOrientationSwitch(t *testing.T) {
	tr, _, _ := threeBranches()

	tr.Prepare(horizontal())
	if tr.box.Width != 140 {
		t.Fatalf("horizontal Width = %d, want 140", tr.box.Width)
	}

	tr.Prepare(vertical())
	if tr.box.Width != 70 {
		t.Fatalf("vertical Width = %d, want 70", tr.box.Width)
	}

	tr.Prepare(horizontal())
	if tr.box.Width != 140 {
		t.Fatalf("horizontal Width after switching back = %d, want 140", tr.box.Width)
	}
}

func TestPrepareNested(t *testing.T) {
	inner := New(leaf(10, 10), leaf(10, 10), leaf(10, 10))
	root := New(leaf(10, 10), inner)
	root.Prepare(horizontal())

	// inner: max(30, 10+10+10) = 30 wide, 30+20+10 = 60 tall
	if inner.box.Width != 30 || inner.box.Height != 60 {
		t.Fatalf("inner box = %v", inner.box)
	}
	if root.box.Width != 30 || root.box.Height != 30+2*Gap+60 {
		t.Errorf("root box = %v", root.box)
	}
	if inner.box.Y != 50 {
		t.Errorf("inner Y = %d, want 50", inner.box.Y)
	}
}

func TestLabelPrepare(t *testing.T) {
	l := NewLabel("Add")
	l.Prepare(DefaultContext())

	want := Box{Width: 21, Height: 13, HorzBaseline: 11, VertBaseline: 11}
	if *l.Box() != want {
		t.Errorf("label box = %v, want %v", *l.Box(), want)
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"horizontal", Horizontal, false},
		{"Vertical", Vertical, false},
		{"v", Vertical, false},
		{"diagonal", Horizontal, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseOrientation(%q) = %v, %v", tt.in, got, err)
		}
	}
}
