package document

import (
	"sort"

	"github.com/matzehuels/arbor/pkg/convert"
	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Action is an editing operation applied to a document's selection.
type Action interface {
	// Name is the identifier used by the CLI and the HTTP API.
	Name() string
	// Available reports whether the action applies to the current selection.
	Available(d *Document) bool
	// Do applies the action, refreshes the document and leaves the affected
	// node selected.
	Do(d *Document) error
}

var actions = map[string]Action{}

// Register makes a available through Lookup. It panics on a duplicate name.
func Register(a Action) {
	if _, dup := actions[a.Name()]; dup {
		panic("document: duplicate action " + a.Name())
	}
	actions[a.Name()] = a
}

// Lookup returns the action registered under name, or nil.
func Lookup(name string) Action {
	return actions[name]
}

// Actions returns the names of all registered actions, sorted.
func Actions() []string {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named action on d.
func Apply(d *Document, name string) error {
	a := Lookup(name)
	if a == nil {
		return arborerrors.New(arborerrors.ErrCodeUnsupported, "unknown action %q", name)
	}
	if !a.Available(d) {
		return arborerrors.New(arborerrors.ErrCodeInvalidInput, "%s is not available at %s", name, d.Selection())
	}
	return a.Do(d)
}

func init() {
	Register(ToggleExpansion{})
	Register(WrapInTree{})
	Register(ConvertToTree{})
}

// ToggleExpansion shows or hides the branches of the selected tree.
type ToggleExpansion struct{}

func (ToggleExpansion) Name() string { return "toggle" }

func (ToggleExpansion) Available(d *Document) bool {
	_, ok := d.Selected().(*tree.Tree)
	return ok
}

func (ToggleExpansion) Do(d *Document) error {
	t, ok := d.Selected().(*tree.Tree)
	if !ok {
		return arborerrors.New(arborerrors.ErrCodeInvalidInput, "no tree selected")
	}
	sel := d.Selection()
	t.Expanded = !t.Expanded
	d.Refresh()
	return d.Select(sel)
}

// WrapInTree replaces the selection with a tree that has it as content.
type WrapInTree struct{}

func (WrapInTree) Name() string { return "wrap" }

func (WrapInTree) Available(*Document) bool { return true }

func (WrapInTree) Do(d *Document) error {
	sel := d.Selection()
	if err := d.Replace(sel, tree.Wrap(d.Selected())); err != nil {
		return err
	}
	d.Refresh()
	return d.Select(sel)
}

// ConvertToTree replaces a selected expression leaf with its tree diagram.
type ConvertToTree struct{}

func (ConvertToTree) Name() string { return "totree" }

func (ConvertToTree) Available(d *Document) bool {
	_, ok := d.Selected().(*tree.Leaf)
	return ok
}

func (ConvertToTree) Do(d *Document) error {
	leaf, ok := d.Selected().(*tree.Leaf)
	if !ok {
		return arborerrors.New(arborerrors.ErrCodeInvalidInput, "no expression selected")
	}
	sel := d.Selection()
	if err := d.Replace(sel, convert.ToTree(leaf.Source)); err != nil {
		return err
	}
	d.Refresh()
	return d.Select(sel)
}
