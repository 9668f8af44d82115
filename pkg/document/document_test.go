package document

import (
	"bytes"
	"fmt"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/tree"
)

func sampleSource() *expr.Node {
	add := expr.New("Math.Add", expr.Leaf("Symbol", "x"), expr.Leaf("Symbol", "y"))
	return expr.New(expr.TagTree,
		expr.String("root"),
		expr.WrapToTree(add),
		expr.Leaf("Symbol", "z"),
	)
}

func mustLoad(t *testing.T, src *expr.Node, opts ...Option) *Document {
	t.Helper()
	d, err := Loader{}.Load("sample", src, opts...)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return d
}

func TestLoad(t *testing.T) {
	d := mustLoad(t, sampleSource())

	root, ok := d.Root().(*tree.Tree)
	if !ok {
		t.Fatalf("root is %T, want *tree.Tree", d.Root())
	}
	if l, ok := root.Content().(*tree.Label); !ok || l.Text != "root" {
		t.Errorf("content = %#v", root.Content())
	}

	converted, ok := root.Branches()[0].(*tree.Tree)
	if !ok {
		t.Fatalf("conversion request not reduced: %T", root.Branches()[0])
	}
	if l, ok := converted.Content().(*tree.Label); !ok || l.Text != "Math.Add" {
		t.Errorf("converted content = %#v", converted.Content())
	}

	if leaf, ok := root.Branches()[1].(*tree.Leaf); !ok || leaf.Text() != "z" {
		t.Errorf("plain expression = %#v", root.Branches()[1])
	}

	if w, h := d.Size(); w == 0 || h == 0 {
		t.Errorf("document not laid out: %dx%d", w, h)
	}
	if !d.Selection().Equal(tree.Path{0}) {
		t.Errorf("initial selection = %s, want /0", d.Selection())
	}
	if d.ID == "" {
		t.Error("document has no ID")
	}
}

func TestLoadExpandedAttribute(t *testing.T) {
	src := sampleSource()
	src.SetAttr("Expanded", "False")

	d := mustLoad(t, src)
	if d.Root().(*tree.Tree).Expanded {
		t.Error("Expanded attribute ignored")
	}
	// The root takes focus itself when its branches are hidden.
	if !d.Selection().Equal(tree.Path{}) {
		t.Errorf("selection = %s, want /", d.Selection())
	}
}

func TestLoadBadExpandedLenient(t *testing.T) {
	inner := expr.New(expr.TagTree, expr.String("inner"), expr.String("leaf"))
	inner.SetAttr("Expanded", "maybe")
	src := expr.New(expr.TagTree, expr.String("root"), inner)

	var buf bytes.Buffer
	d, err := Loader{Logger: log.New(&buf)}.Load("doc", src)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	leaf, ok := d.Root().(*tree.Tree).Branches()[0].(*tree.Leaf)
	if !ok {
		t.Fatalf("bad tree loaded as %T, want *tree.Leaf", d.Root().(*tree.Tree).Branches()[0])
	}
	if leaf.Source.Tag != expr.TagTree {
		t.Errorf("leaf source tag = %q", leaf.Source.Tag)
	}
	if !bytes.Contains(buf.Bytes(), []byte("unreadable")) {
		t.Errorf("no warning logged: %q", buf.String())
	}
}

func TestLoadBadExpandedStrict(t *testing.T) {
	inner := expr.New(expr.TagTree, expr.String("inner"))
	inner.SetAttr("Expanded", "yes")
	src := expr.New(expr.TagTree, expr.String("root"), inner)

	_, err := Loader{Strict: true}.Load("doc", src)
	if err == nil {
		t.Fatal("expected error")
	}
	if !arborerrors.IsFormatError(err) {
		t.Errorf("error %v is not a format error", err)
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Loader{}.Load("doc", expr.New(expr.TagTree))
	if !arborerrors.Is(err, arborerrors.ErrCodeInvalidDocument) {
		t.Errorf("err = %v, want invalid document", err)
	}
}

func TestDumpRoundTrip(t *testing.T) {
	src := sampleSource()
	d := mustLoad(t, src)
	d.Root().(*tree.Tree).Expanded = false

	dumped, err := Dump(d.Root())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if v, _ := dumped.Attr("Expanded"); v != "False" {
		t.Errorf("Expanded attr = %q, want False", v)
	}
	if dumped.Children[1].Tag != expr.TagTree {
		t.Errorf("reduced branch dumped as %q", dumped.Children[1].Tag)
	}

	again := mustLoad(t, dumped)
	a, _ := expr.Marshal(dumped)
	redumped, err := Dump(again.Root())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	b, _ := expr.Marshal(redumped)
	if !bytes.Equal(a, b) {
		t.Errorf("round trip changed document:\n%s\n%s", a, b)
	}
}

func kinds(root tree.Node) []string {
	var out []string
	tree.Walk(root, func(n tree.Node, p tree.Path) {
		out = append(out, fmt.Sprintf("%s %T", p, n))
	})
	return out
}

func TestDumpKeepsTextLeaves(t *testing.T) {
	// Text literals copied by a conversion stay leaves; tree labels stay labels.
	src := expr.WrapToTree(expr.New("Concat", expr.String("a"), expr.String("")))
	d := mustLoad(t, src)
	before := kinds(d.Root())

	dumped, err := Dump(d.Root())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	first := dumped.Children[1].Children[0]
	if v, _ := first.Attr(FieldLeaf); first.Tag != expr.TagString || v != "True" {
		t.Errorf("text leaf dumped as %+v", first)
	}
	if _, ok := dumped.Children[0].Attr(FieldLeaf); ok {
		t.Error("label dumped with the leaf marker")
	}

	again := mustLoad(t, dumped)
	if after := kinds(again.Root()); !reflect.DeepEqual(before, after) {
		t.Errorf("node kinds changed on reload:\n%v\n%v", before, after)
	}
	leaf := again.Root().(*tree.Tree).Branches()[1].(*tree.Tree).Content().(*tree.Leaf)
	if _, ok := leaf.Source.Attr(FieldLeaf); ok || leaf.Text() != expr.TagString {
		t.Errorf("reloaded empty text leaf = %+v", leaf.Source)
	}
}

func TestSave(t *testing.T) {
	d := mustLoad(t, sampleSource())
	var buf bytes.Buffer
	if err := Save(&buf, d); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := expr.Read(&buf, expr.FormatJSON); err != nil {
		t.Errorf("saved document does not read back: %v", err)
	}
}

func TestRefreshRunsHandlersAfterLayout(t *testing.T) {
	d := mustLoad(t, sampleSource())
	var widths []int
	d.OnRefresh(func(d *Document) {
		w, _ := d.Size()
		widths = append(widths, w)
	})

	d.SetOrientation(tree.Vertical)
	vw, _ := d.Size()
	d.SetOrientation(tree.Horizontal)
	hw, _ := d.Size()

	if len(widths) != 2 || widths[0] != vw || widths[1] != hw {
		t.Errorf("handler saw widths %v, want [%d %d]", widths, vw, hw)
	}
}

func TestMoveAndSelectParent(t *testing.T) {
	d := mustLoad(t, sampleSource())

	if !d.Move(tree.Down) || !d.Selection().Equal(tree.Path{1, 0}) {
		t.Fatalf("Down = %s, want /1/0", d.Selection())
	}
	if !d.SelectParent() || !d.Selection().Equal(tree.Path{1}) {
		t.Fatalf("parent = %s, want /1", d.Selection())
	}
	if !d.SelectParent() || d.SelectParent() {
		t.Error("SelectParent should stop at the root")
	}

	if err := d.Select(tree.Path{0}); err != nil {
		t.Fatal(err)
	}
	if d.Move(tree.Up) {
		t.Error("Up from root content should hit the boundary")
	}
	if !d.Selection().Equal(tree.Path{0}) {
		t.Errorf("selection changed on failed move: %s", d.Selection())
	}
}

func TestSelectInvalid(t *testing.T) {
	d := mustLoad(t, sampleSource())
	err := d.Select(tree.Path{9})
	if !arborerrors.Is(err, arborerrors.ErrCodeInvalidPath) {
		t.Errorf("err = %v", err)
	}
}
