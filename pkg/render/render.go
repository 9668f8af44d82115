package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/surface"
	"github.com/matzehuels/arbor/pkg/tree"
)

// DefaultMargin is the blank border painted around a document.
const DefaultMargin = tree.Gap

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	margin int
	scale  float64
}

// WithMargin sets the blank border around the diagram.
func WithMargin(m int) Option {
	return func(r *renderer) {
		if m >= 0 {
			r.margin = m
		}
	}
}

// WithScale sets the pixel density of raster output.
func WithScale(s float64) Option {
	return func(r *renderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

func newRenderer(opts []Option) renderer {
	r := renderer{margin: DefaultMargin, scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// canvasSize returns the document extent including margins.
func (r renderer) canvasSize(d *document.Document) (int, int) {
	w, h := d.Size()
	return w + 2*r.margin, h + 2*r.margin
}

// paint fills the background and draws the document inside the margin.
func (r renderer) paint(d *document.Document, s surface.Surface, width, height int) {
	prev := s.FillStyle()
	s.SetFillStyle(surface.Background)
	s.FillRect(0, 0, width, height)
	s.SetFillStyle(prev)
	d.Display(s, r.margin, r.margin)
}

// SVG renders d as an SVG document.
func SVG(d *document.Document, opts ...Option) ([]byte, error) {
	r := newRenderer(opts)
	w, h := r.canvasSize(d)

	var buf bytes.Buffer
	s := surface.NewSVG(&buf, w, h)
	r.paint(d, s, w, h)
	if err := s.Close(); err != nil {
		return nil, fmt.Errorf("finish svg: %w", err)
	}
	return buf.Bytes(), nil
}

// PNG renders d as a PNG image.
func PNG(d *document.Document, opts ...Option) ([]byte, error) {
	r := newRenderer(opts)
	w, h := r.canvasSize(d)

	s := surface.NewRaster(w, h, r.scale)
	r.paint(d, s, w, h)

	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders d as SVG and converts it with rsvg-convert.
func PDF(ctx context.Context, d *document.Document, opts ...Option) ([]byte, error) {
	svg, err := SVG(d, opts...)
	if err != nil {
		return nil, err
	}
	return surface.ToPDF(ctx, svg)
}
