package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/tree"
)

func sample() *tree.Tree {
	inner := tree.New(tree.NewLabel("Add"), tree.New(tree.NewLabel("x")), tree.New(tree.NewLabel("y")))
	return tree.New(tree.NewLabel("root"), inner, tree.NewLabel("z"))
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{
		"rankdir=TB",
		`"/" [label="root"]`,
		`"/1" [label="Add"]`,
		`"/2" [label="z", shape=plaintext`,
		`"/" -> "/1";`,
		`"/1" -> "/1/2";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTCollapsed(t *testing.T) {
	root := sample()
	root.Branches()[0].(*tree.Tree).Expanded = false

	dot := ToDOT(root, Options{Orientation: tree.Vertical})
	if !strings.Contains(dot, "rankdir=LR") {
		t.Error("vertical orientation not applied")
	}
	if !strings.Contains(dot, `"/1" [label="Add (+2)", fillcolor=orange]`) {
		t.Errorf("collapsed tree not highlighted:\n%s", dot)
	}
	if strings.Contains(dot, `"/1/1"`) {
		t.Errorf("hidden branch emitted:\n%s", dot)
	}
}

func TestToDOTNestedContent(t *testing.T) {
	root := tree.Wrap(tree.New(tree.NewLabel("inner")))
	dot := ToDOT(root, Options{})
	if !strings.Contains(dot, `"/" -> "/0" [style=dashed];`) {
		t.Errorf("nested content not linked:\n%s", dot)
	}
	if !strings.Contains(dot, `"/" [label="tree"]`) {
		t.Errorf("outer tree label wrong:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	root := sample()
	root.Prepare(tree.DefaultContext())
	dot := ToDOT(root, Options{Detailed: true})
	if !strings.Contains(dot, `path: /1\nsize: `) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("header not normalized: %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
