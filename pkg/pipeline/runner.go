package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Runner executes the pipeline with artifact caching.
//
// The Runner holds no pipeline state, so several goroutines may share one
// as long as each works on its own document.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil keyer
// means cache.DefaultKeyer.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → layout → render for src.
func (r *Runner) Execute(ctx context.Context, name string, src *expr.Node, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	doc, err := r.Load(ctx, name, src, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Document = doc
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.NodeCount = CountNodes(doc.Root())

	r.Logger.Info("loaded document",
		"name", name,
		"nodes", result.Stats.NodeCount,
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	r.Layout(ctx, doc)
	result.Stats.LayoutTime = time.Since(layoutStart)

	w, h := doc.Size()
	r.Logger.Info("computed layout",
		"orientation", doc.Orientation(),
		"width", w,
		"height", h,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hash, hit, err := r.render(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.DocHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Load builds a document from src in the configured orientation.
func (r *Runner) Load(ctx context.Context, name string, src *expr.Node, opts Options) (*document.Document, error) {
	r.applyLogger(&opts)
	observability.Pipeline().OnLoadStart(ctx, name)
	start := time.Now()

	loader := document.Loader{Strict: opts.Strict, Logger: opts.Logger}
	doc, err := loader.Load(name, src, document.WithOrientation(opts.TreeOrientation()))

	count := 0
	if err == nil {
		count = CountNodes(doc.Root())
	}
	observability.Pipeline().OnLoadComplete(ctx, name, count, time.Since(start), err)
	return doc, err
}

// Layout lays doc out again and reports it to the pipeline hooks.
func (r *Runner) Layout(ctx context.Context, doc *document.Document) {
	orientation := doc.Orientation().String()
	observability.Pipeline().OnLayoutStart(ctx, orientation, CountNodes(doc.Root()))
	start := time.Now()
	doc.Layout()
	observability.Pipeline().OnLayoutComplete(ctx, orientation, time.Since(start))
}

// RenderWithCacheInfo renders a laid-out document, serving cached artifacts
// when every requested format is cached.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, doc *document.Document, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	artifacts, _, hit, err := r.render(ctx, doc, opts)
	return artifacts, hit, err
}

// Render is RenderWithCacheInfo without the cache hit info.
func (r *Runner) Render(ctx context.Context, doc *document.Document, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, doc, opts)
	return artifacts, err
}

func (r *Runner) render(ctx context.Context, doc *document.Document, opts Options) (map[string][]byte, string, bool, error) {
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()
	artifacts, hash, hit, err := r.renderCached(ctx, doc, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hash, hit, err
}

func (r *Runner) renderCached(ctx context.Context, doc *document.Document, opts Options) (map[string][]byte, string, bool, error) {
	hash, err := DocumentHash(doc)
	if err != nil {
		// Documents holding nodes that cannot be persisted are rendered
		// without caching.
		r.Logger.Debug("document not cacheable", "err", err)
		artifacts, err := RenderDocument(ctx, doc, opts)
		return artifacts, "", false, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, doc))
			data, hit, err := r.Cache.Get(ctx, key)
			if err != nil || !hit {
				observability.Cache().OnCacheMiss(ctx, "artifact")
				break
			}
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, hash, true, nil
		}
	}

	rendered, err := RenderDocument(ctx, doc, opts)
	if err != nil {
		return nil, hash, false, err
	}
	for format, data := range rendered {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format, doc))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return rendered, hash, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// DocumentHash hashes the persisted form of doc, which includes the
// expansion state of every tree.
func DocumentHash(doc *document.Document) (string, error) {
	src, err := document.Dump(doc.Root())
	if err != nil {
		return "", err
	}
	data, err := expr.Marshal(src)
	if err != nil {
		return "", err
	}
	return cache.Hash(data), nil
}

// CountNodes returns the number of diagram nodes below and including root.
func CountNodes(root tree.Node) int {
	n := 0
	tree.Walk(root, func(tree.Node, tree.Path) { n++ })
	return n
}
