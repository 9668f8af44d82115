// Package store persists documents between API requests and runs.
//
// Backends:
//   - memory: in-process map, for tests and single-run servers
//   - file: one JSON file per document, for the CLI and local servers
//   - mongo: shared collection for multi-instance deployments
//
// A [Record] holds the persisted expression of a document together with the
// display state worth restoring: orientation and selection.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/tree"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Record is a stored document.
type Record struct {
	ID          string     `json:"id" bson:"_id"`
	Name        string     `json:"name" bson:"name"`
	Orientation string     `json:"orientation" bson:"orientation"`
	Selection   string     `json:"selection" bson:"selection"`
	Source      *expr.Node `json:"source" bson:"source"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for document storage backends.
type Store interface {
	// Get returns the record with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
	// Put creates or replaces a record.
	Put(ctx context.Context, rec *Record) error
	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error
	// List returns the IDs of all records, sorted.
	List(ctx context.Context) ([]string, error)
	Close() error
}

// FromDocument captures d as a record.
func FromDocument(d *document.Document) (*Record, error) {
	src, err := document.Dump(d.Root())
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Record{
		ID:          d.ID,
		Name:        d.Name,
		Orientation: d.Orientation().String(),
		Selection:   d.Selection().String(),
		Source:      src,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Document rebuilds the stored document. A stored selection that no longer
// resolves is dropped.
func (r *Record) Document(l document.Loader) (*document.Document, error) {
	o, err := tree.ParseOrientation(r.Orientation)
	if err != nil {
		o = tree.Horizontal
	}
	d, err := l.Load(r.Name, r.Source, document.WithID(r.ID), document.WithOrientation(o))
	if err != nil {
		return nil, err
	}
	if p, err := tree.ParsePath(r.Selection); err == nil {
		_ = d.Select(p)
	}
	return d, nil
}
