package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// Options configures node-link output.
type Options struct {
	// Detailed adds each node's path and laid-out size to its label.
	Detailed bool
	// Orientation lays the graph out top-to-bottom (Horizontal) or
	// left-to-right (Vertical), following the box layout.
	Orientation tree.Orientation
}

// ToDOT converts the tree below root to Graphviz DOT source.
func ToDOT(root tree.Node, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	rankdir := "TB"
	if opts.Orientation == tree.Vertical {
		rankdir = "LR"
	}
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fillcolor=white, fontname=monospace, fontsize=13];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	var edges []string
	writeNode(&buf, &edges, root, tree.Path{}, opts)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, edges *[]string, n tree.Node, p tree.Path, opts Options) {
	id := p.String()
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, p, opts.Detailed))}

	t, ok := n.(*tree.Tree)
	if !ok {
		attrs = append(attrs, "shape=plaintext", "style=\"\"")
		fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
		return
	}
	if t.Collapsed() {
		attrs = append(attrs, "fillcolor="+tree.HighlightColor)
	}
	fmt.Fprintf(buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))

	if content, nested := t.Content().(*tree.Tree); nested {
		cp := p.Child(0)
		writeNode(buf, edges, content, cp, opts)
		*edges = append(*edges, fmt.Sprintf("  %q -> %q [style=dashed];\n", id, cp.String()))
	}
	if t.Collapsed() {
		return
	}
	for i, b := range t.Branches() {
		bp := p.Child(i + 1)
		writeNode(buf, edges, b, bp, opts)
		*edges = append(*edges, fmt.Sprintf("  %q -> %q;\n", id, bp.String()))
	}
}

func fmtLabel(n tree.Node, p tree.Path, detailed bool) string {
	text := render.Text(n)
	if t, ok := n.(*tree.Tree); ok {
		if _, nested := t.Content().(*tree.Tree); nested {
			text = render.Kind(t)
		}
		if t.Collapsed() {
			text += fmt.Sprintf(" (+%d)", len(t.Branches()))
		}
	}
	if !detailed {
		return text
	}
	b := n.Box()
	return fmt.Sprintf("%s\npath: %s\nsize: %dx%d", text, p, b.Width, b.Height)
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one
// sized in user units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
