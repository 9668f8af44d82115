package document

import (
	"sort"
	"sync"

	"github.com/matzehuels/arbor/pkg/tree"
)

// Workspace is a set of open documents sharing one orientation.
//
// The workspace lock serializes every operation on its documents; callers
// that touch a document directly use With.
type Workspace struct {
	mu          sync.Mutex
	orientation tree.Orientation
	docs        map[string]*Document
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(o tree.Orientation) *Workspace {
	return &Workspace{orientation: o, docs: make(map[string]*Document)}
}

// Orientation returns the orientation applied to every document.
func (w *Workspace) Orientation() tree.Orientation {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.orientation
}

// Add opens d in the workspace, switching it to the workspace orientation.
func (w *Workspace) Add(d *Document) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if d.Orientation() != w.orientation {
		d.SetOrientation(w.orientation)
	}
	w.docs[d.ID] = d
}

// AddIfAbsent opens d unless a document with the same ID is already open.
// It returns the open document and whether d was added.
func (w *Workspace) AddIfAbsent(d *Document) (*Document, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if open, ok := w.docs[d.ID]; ok {
		return open, false
	}
	if d.Orientation() != w.orientation {
		d.SetOrientation(w.orientation)
	}
	w.docs[d.ID] = d
	return d, true
}

// Remove closes the document with the given ID.
func (w *Workspace) Remove(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.docs, id)
}

// With runs fn on the document with the given ID while holding the
// workspace lock. It returns false if there is no such document.
func (w *Workspace) With(id string, fn func(d *Document) error) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	d, ok := w.docs[id]
	if !ok {
		return false, nil
	}
	return true, fn(d)
}

// IDs returns the IDs of all open documents, sorted.
func (w *Workspace) IDs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]string, 0, len(w.docs))
	for id := range w.docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SetOrientation switches every open document to o and refreshes it.
func (w *Workspace) SetOrientation(o tree.Orientation) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.orientation = o
	for _, d := range w.docs {
		d.SetOrientation(o)
	}
}
