package convert

import (
	"testing"

	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/tree"
)

func TestToTreeCompound(t *testing.T) {
	x, y := expr.Leaf("Symbol", "x"), expr.Leaf("Symbol", "y")
	src := expr.New("Add", x, y)

	got := ToTree(src)
	if !got.Expanded {
		t.Error("converted tree should start expanded")
	}
	label, ok := got.Content().(*tree.Label)
	if !ok || label.Text != "Add" {
		t.Fatalf("content = %#v, want label \"Add\"", got.Content())
	}
	if n := len(got.Branches()); n != 2 {
		t.Fatalf("branches = %d, want 2", n)
	}

	for i, want := range []*expr.Node{x, y} {
		br, ok := got.Branches()[i].(*tree.Tree)
		if !ok {
			t.Fatalf("branch %d is %T, want *tree.Tree", i, got.Branches()[i])
		}
		leaf, ok := br.Content().(*tree.Leaf)
		if !ok {
			t.Fatalf("branch %d content is %T, want *tree.Leaf", i, br.Content())
		}
		if leaf.Source == want {
			t.Errorf("branch %d shares its source node", i)
		}
		if leaf.Text() != want.Value {
			t.Errorf("branch %d text = %q, want %q", i, leaf.Text(), want.Value)
		}
		if len(br.Branches()) != 0 {
			t.Errorf("branch %d has branches", i)
		}
	}
}

func TestToTreeLeaf(t *testing.T) {
	src := expr.Leaf("Symbol", "x")
	src.SetAttr("Color", "red")

	got := ToTree(src)
	if len(got.Children()) != 1 {
		t.Fatalf("children = %d, want 1", len(got.Children()))
	}
	leaf := got.Content().(*tree.Leaf)

	leaf.Source.SetAttr("Color", "blue")
	if v, _ := src.Attr("Color"); v != "red" {
		t.Error("mutating the converted leaf changed the source")
	}
}

func TestToTreeNested(t *testing.T) {
	src := expr.New("Mul", expr.New("Add", expr.Leaf("Symbol", "a"), expr.Leaf("Symbol", "b")), expr.Leaf("Number", "2"))

	got := ToTree(src)
	count := 0
	tree.Walk(got, func(n tree.Node, _ tree.Path) {
		if _, ok := n.(*tree.Tree); ok {
			count++
		}
	})
	if count != src.Count() {
		t.Errorf("trees = %d, want one per source node (%d)", count, src.Count())
	}
}

func TestReduce(t *testing.T) {
	operand := expr.New("Add", expr.Leaf("Symbol", "x"), expr.Leaf("Symbol", "y"))

	got, ok := Reduce(expr.WrapToTree(operand))
	if !ok {
		t.Fatal("Reduce failed on a well-formed request")
	}
	tr, isTree := got.(*tree.Tree)
	if !isTree || len(tr.Branches()) != 2 {
		t.Errorf("Reduce = %#v", got)
	}
}

func TestReduceRejects(t *testing.T) {
	tests := []struct {
		name string
		req  *expr.Node
	}{
		{"nil", nil},
		{"other tag", expr.New("Add", expr.Leaf("Symbol", "x"))},
		{"no operand", expr.New(expr.TagToTree)},
		{"two operands", expr.New(expr.TagToTree, expr.Leaf("Symbol", "x"), expr.Leaf("Symbol", "y"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Reduce(tt.req); ok {
				t.Error("Reduce succeeded")
			}
		})
	}
}
