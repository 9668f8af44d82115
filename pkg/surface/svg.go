package surface

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
)

const (
	strokeStyle = "fill:none;stroke:" + StrokeColor + ";stroke-width:1"
	fontStyle   = "font-family:monospace;font-size:13px"
)

// SVG paints onto an SVG document.
// Start is written by NewSVG; Close must be called to finish the document.
type SVG struct {
	canvas *svg.SVG
	fill   string
	path   pathBuilder
}

// NewSVG starts an SVG document of the given size on w.
func NewSVG(w io.Writer, width, height int) *SVG {
	canvas := svg.New(w)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	return &SVG{canvas: canvas, fill: DefaultFillStyle}
}

func (s *SVG) FillRect(x, y, w, h int) {
	s.canvas.Rect(x, y, w, h, "stroke:none;fill:"+s.fill)
}

func (s *SVG) StrokeRect(x, y, w, h int) {
	s.canvas.Rect(x, y, w, h, strokeStyle)
}

func (s *SVG) BeginPath()      { s.path.reset() }
func (s *SVG) MoveTo(x, y int) { s.path.moveTo(x, y) }
func (s *SVG) LineTo(x, y int) { s.path.lineTo(x, y) }

func (s *SVG) Stroke() {
	if len(s.path.segments) == 0 {
		return
	}
	var d strings.Builder
	for _, seg := range s.path.segments {
		fmt.Fprintf(&d, "M%d %d L%d %d ", seg.x1, seg.y1, seg.x2, seg.y2)
	}
	s.canvas.Path(strings.TrimSpace(d.String()), strokeStyle)
}

func (s *SVG) FillText(text string, x, y int) {
	s.canvas.Text(x, y, text, fontStyle+";fill:"+s.fill)
}

func (s *SVG) FillStyle() string         { return s.fill }
func (s *SVG) SetFillStyle(style string) { s.fill = style }

// Close finishes the SVG document.
func (s *SVG) Close() error {
	s.canvas.End()
	return nil
}

var _ Surface = (*SVG)(nil)
