package surface

import (
	"image"
	"image/png"
	"io"

	"git.sr.ht/~sbinet/gg"
	"golang.org/x/image/font/basicfont"
)

// Raster paints onto an in-memory RGBA image.
type Raster struct {
	dc   *gg.Context
	fill string
	path pathBuilder
}

// NewRaster creates a white raster of width×height user units, scaled by
// scale device pixels per unit. A scale of 2 produces a 2x image.
func NewRaster(width, height int, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContext(int(float64(width)*scale+0.5), int(float64(height)*scale+0.5))
	dc.SetColor(mustColor(Background))
	dc.Clear()
	dc.Scale(scale, scale)
	dc.SetLineWidth(1)
	dc.SetFontFace(basicfont.Face7x13)
	return &Raster{dc: dc, fill: DefaultFillStyle}
}

func (r *Raster) FillRect(x, y, w, h int) {
	r.dc.SetColor(mustColor(r.fill))
	r.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	r.dc.Fill()
}

func (r *Raster) StrokeRect(x, y, w, h int) {
	r.dc.SetColor(mustColor(StrokeColor))
	r.dc.DrawRectangle(float64(x)+0.5, float64(y)+0.5, float64(w), float64(h))
	r.dc.Stroke()
}

func (r *Raster) BeginPath()      { r.path.reset() }
func (r *Raster) MoveTo(x, y int) { r.path.moveTo(x, y) }
func (r *Raster) LineTo(x, y int) { r.path.lineTo(x, y) }

func (r *Raster) Stroke() {
	if len(r.path.segments) == 0 {
		return
	}
	r.dc.SetColor(mustColor(StrokeColor))
	for _, seg := range r.path.segments {
		r.dc.DrawLine(float64(seg.x1)+0.5, float64(seg.y1)+0.5, float64(seg.x2)+0.5, float64(seg.y2)+0.5)
	}
	r.dc.Stroke()
}

func (r *Raster) FillText(text string, x, y int) {
	r.dc.SetColor(mustColor(r.fill))
	r.dc.DrawString(text, float64(x), float64(y))
}

func (r *Raster) FillStyle() string         { return r.fill }
func (r *Raster) SetFillStyle(style string) { r.fill = style }

// Image returns the rasterized image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.dc.Image())
}

var _ Surface = (*Raster)(nil)
