package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/render/nodelink"
)

// RenderDocument renders doc in every requested format without caching.
// The document must be laid out.
func RenderDocument(ctx context.Context, doc *document.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, doc, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, doc *document.Document, format string, opts Options) ([]byte, error) {
	ropts := opts.RenderOptions()
	switch format {
	case FormatSVG:
		return render.SVG(doc, ropts...)
	case FormatPNG:
		return render.PNG(doc, ropts...)
	case FormatPDF:
		return render.PDF(ctx, doc, ropts...)
	case FormatJSON:
		return render.JSON(doc, ropts...)
	case FormatDOT:
		return []byte(nodelinkDOT(doc, opts)), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelinkDOT(doc, opts))
	}
	return nil, ValidateFormat(format)
}

func nodelinkDOT(doc *document.Document, opts Options) string {
	return nodelink.ToDOT(doc.Root(), nodelink.Options{
		Detailed:    opts.Detailed,
		Orientation: doc.Orientation(),
	})
}
