// Package cache stores rendered artifacts and loaded documents between runs.
//
// # Backends
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one file per entry below a directory, used by the CLI
//   - [RedisCache]: shared cache for "arbor serve" deployments
//
// # Keys
//
// Keys are built by a [Keyer] from a content hash of the source document and
// every option that changes the output, so a cached artifact is never served
// for a different orientation, format or scale:
//
//	key := keyer.ArtifactKey(cache.Hash(src), cache.ArtifactKeyOpts{
//	    Format:      "svg",
//	    Orientation: "vertical",
//	})
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cache entries.
const (
	TTLArtifact = 7 * 24 * time.Hour
	TTLDocument = 24 * time.Hour
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. hit is false for missing or
	// expired entries.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// ArtifactKeyOpts holds the options that affect a rendered artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Orientation string  `json:"orientation"`
	Scale       float64 `json:"scale,omitempty"`
	Margin      int     `json:"margin,omitempty"`
	// Selection is only set for formats that export it.
	Selection string `json:"selection,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DocumentKey addresses a loaded document by its source hash.
	DocumentKey(docHash string) string
	// ArtifactKey addresses a rendered artifact of a document.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) DocumentKey(docHash string) string {
	return "doc:" + docHash
}

func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
