// Package pkg provides the core libraries for arbor tree diagrams.
//
// # Overview
//
// Arbor turns tagged expressions into nested tree diagrams. A tree shows its
// content (a label or an expression) above or beside its branches, which
// are trees again. Trees can be folded so that only their content shows,
// and a keyboard focus moves through the visible nodes.
//
// # Architecture
//
// The typical data flow:
//
//	Expression (JSON / YAML)
//	         ↓
//	    [expr] package (parse + validate)
//	         ↓
//	    [document] package (load, convert requests, selection, actions)
//	         ↓
//	    [tree] package (layout + drawing + navigation)
//	         ↓
//	    [render] package (SVG/PNG/PDF/JSON geometry, node-link DOT)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/arbor/pkg/document"
//	    "github.com/matzehuels/arbor/pkg/expr"
//	    "github.com/matzehuels/arbor/pkg/render"
//	    "github.com/matzehuels/arbor/pkg/tree"
//	)
//
//	src, _ := expr.ReadFile("sum.json")
//	doc, _ := document.Loader{}.Load("sum", src, document.WithOrientation(tree.Vertical))
//	_ = document.Apply(doc, "toggle")
//	svg, _ := render.SVG(doc)
//
// # Main Packages
//
// [tree] - Diagram nodes, the horizontal and vertical layout engine, the
// renderer that draws boxes and connectors onto a surface, navigation by
// direction and the expansion flag persisted as "Expanded".
//
// [convert] - Builds a tree diagram from an arbitrary expression.
//
// [document] - A diagram with a selection, refresh handlers and the actions
// (toggle, wrap, totree) the front ends run on it.
//
// [surface] - Drawing surfaces: SVG, raster PNG and a recorder for tests.
//
// [render] - Whole-document output and the node-link view in
// [render/nodelink].
//
// [pipeline] - Load → layout → render with artifact caching, shared by the
// CLI and the HTTP server.
//
// [cache] and [store] - Artifact caches (file, Redis) and document stores
// (memory, file, MongoDB).
//
// [observability] - Hooks for load, layout, render, cache and HTTP events.
//
// # Testing
//
//	go test ./pkg/...                               # All tests
//	ARBOR_TEST_REDIS_ADDR=localhost:6379 go test ./pkg/cache
//	ARBOR_TEST_MONGO_URI=mongodb://localhost go test ./pkg/store
package pkg
