// Package surface provides the 2D drawing targets that tree diagrams are
// painted on.
//
// # Overview
//
// A [Surface] is the small, canvas-like contract consumed by the diagram
// renderer: rectangle fill and stroke, a single open path built from
// MoveTo/LineTo segments, text, and a settable fill style. The renderer only
// ever talks to this interface, so the same paint pass can produce:
//
//   - [SVG]: vector output written with ajstarks/svgo
//   - [Raster]: PNG output rasterized with sbinet/gg
//   - [Recorder]: an in-memory log of operations, used by tests
//
// PDF output is produced from the SVG document with [ToPDF], which shells
// out to rsvg-convert.
//
// # Fill Style
//
// The fill style is a CSS color string ("orange", "#ffa500", "#fa0"). It is
// used by FillRect and FillText. Strokes always use [StrokeColor]. Callers
// that change the fill style transiently must restore the previous value.
//
// # Coordinates
//
// All coordinates are integer user units with the origin at the top-left
// corner, x growing right and y growing down.
package surface
