// Package render turns laid-out documents into output artifacts.
//
// # Formats
//
//   - [SVG]: vector output painted through [surface.SVG]
//   - [PNG]: raster output painted through [surface.Raster]
//   - [PDF]: the SVG converted with rsvg-convert
//   - [JSON]: the computed geometry of every visible node
//
// The [nodelink] subpackage draws the same tree as a Graphviz node-link
// diagram instead of nested boxes.
//
// Every renderer paints the geometry of the document's last layout pass, so
// callers refresh the document after changing it:
//
//	doc.Refresh()
//	svg, err := render.SVG(doc, render.WithMargin(20))
//
// [nodelink]: github.com/matzehuels/arbor/pkg/render/nodelink
package render
