package surface

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

const (
	// DefaultFillStyle is the fill style a fresh surface starts with.
	DefaultFillStyle = "black"

	// StrokeColor is used for every stroked rectangle and path.
	StrokeColor = "black"

	// Background is painted behind raster output.
	Background = "white"
)

// Surface is a 2D paint target.
type Surface interface {
	FillRect(x, y, w, h int)
	StrokeRect(x, y, w, h int)

	// BeginPath discards any pending path segments.
	BeginPath()
	MoveTo(x, y int)
	LineTo(x, y int)
	// Stroke strokes the segments added since the last BeginPath.
	Stroke()

	// FillText draws text with its alphabetic baseline at y.
	FillText(text string, x, y int)

	FillStyle() string
	SetFillStyle(style string)
}

// segment is a single straight line of a pending path.
type segment struct {
	x1, y1, x2, y2 int
}

// pathBuilder collects MoveTo/LineTo calls into segments.
type pathBuilder struct {
	segments   []segment
	cx, cy     int
	hasCurrent bool
}

func (p *pathBuilder) reset() {
	p.segments = p.segments[:0]
	p.hasCurrent = false
}

func (p *pathBuilder) moveTo(x, y int) {
	p.cx, p.cy, p.hasCurrent = x, y, true
}

func (p *pathBuilder) lineTo(x, y int) {
	if p.hasCurrent {
		p.segments = append(p.segments, segment{p.cx, p.cy, x, y})
	}
	p.cx, p.cy, p.hasCurrent = x, y, true
}

// ParseColor converts a CSS color string into a color.
// It accepts SVG color keywords and #rgb / #rrggbb hex notation.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown color %q", s)
	}

	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// mustColor is ParseColor falling back to black for unknown styles.
func mustColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.Black
	}
	return c
}
