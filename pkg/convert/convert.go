// Package convert turns arbitrary expressions into tree diagrams.
//
// [ToTree] draws an expression as nested trees: every compound expression
// becomes a tree whose content is a label naming the expression's tag and
// whose branches are its converted children; every childless expression
// becomes a tree around a copy of itself.
//
// [Reduce] is the reduction step for a "Diagramming.ToTree" request, which
// the document loader applies wherever such a request appears.
package convert

import (
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/tree"
)

// ToTree converts src into a tree diagram. The result shares no state with
// src.
func ToTree(src *expr.Node) *tree.Tree {
	if len(src.Children) == 0 {
		return tree.New(tree.NewLeaf(src.Clone()))
	}
	t := tree.New(tree.NewLabel(src.Tag))
	for _, child := range src.Children {
		t.AddBranch(ToTree(child))
	}
	return t
}

// Reduce replaces a conversion request with the tree diagram of its operand.
// It reports false when req is not a well-formed request.
func Reduce(req *expr.Node) (tree.Node, bool) {
	if req == nil || req.Tag != expr.TagToTree || len(req.Children) != 1 {
		return nil, false
	}
	return ToTree(req.Children[0]), true
}
