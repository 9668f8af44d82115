// Package nodelink draws a diagram tree as a Graphviz node-link graph.
//
// Each tree becomes a box labelled with the text of its content, with an
// arrow to each visible branch. A tree used as the content of another tree
// is linked with a dashed arrow. Collapsed trees are filled with the same
// highlight color as in the box rendering and have no outgoing arrows.
//
//	dot := nodelink.ToDOT(doc.Root(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz
// in-process.
package nodelink
