package surface

import (
	"fmt"
	"strings"
)

// OpKind identifies a recorded drawing operation.
type OpKind string

const (
	OpFillRect   OpKind = "fillRect"
	OpStrokeRect OpKind = "strokeRect"
	OpBeginPath  OpKind = "beginPath"
	OpMoveTo     OpKind = "moveTo"
	OpLineTo     OpKind = "lineTo"
	OpStroke     OpKind = "stroke"
	OpFillText   OpKind = "fillText"
)

// Op is one recorded call. Style is the fill style in effect when the call
// was made.
type Op struct {
	Kind  OpKind
	Args  []int
	Text  string
	Style string
}

func (o Op) String() string {
	args := make([]string, len(o.Args))
	for i, a := range o.Args {
		args[i] = fmt.Sprint(a)
	}
	if o.Text != "" {
		args = append(args, fmt.Sprintf("%q", o.Text))
	}
	return fmt.Sprintf("%s(%s)", o.Kind, strings.Join(args, ","))
}

// Recorder is a Surface that logs every call instead of painting.
type Recorder struct {
	Ops  []Op
	fill string
}

// NewRecorder returns an empty recorder with the default fill style.
func NewRecorder() *Recorder {
	return &Recorder{fill: DefaultFillStyle}
}

func (r *Recorder) record(kind OpKind, text string, args ...int) {
	r.Ops = append(r.Ops, Op{Kind: kind, Args: args, Text: text, Style: r.fill})
}

func (r *Recorder) FillRect(x, y, w, h int)        { r.record(OpFillRect, "", x, y, w, h) }
func (r *Recorder) StrokeRect(x, y, w, h int)      { r.record(OpStrokeRect, "", x, y, w, h) }
func (r *Recorder) BeginPath()                     { r.record(OpBeginPath, "") }
func (r *Recorder) MoveTo(x, y int)                { r.record(OpMoveTo, "", x, y) }
func (r *Recorder) LineTo(x, y int)                { r.record(OpLineTo, "", x, y) }
func (r *Recorder) Stroke()                        { r.record(OpStroke, "") }
func (r *Recorder) FillText(text string, x, y int) { r.record(OpFillText, text, x, y) }
func (r *Recorder) FillStyle() string              { return r.fill }
func (r *Recorder) SetFillStyle(style string)      { r.fill = style }

// Count returns how many operations of kind were recorded.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Filter returns the recorded operations of kind, in call order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Segments pairs each LineTo with the point preceding it and returns the
// resulting line segments as [x1, y1, x2, y2].
func (r *Recorder) Segments() [][4]int {
	var (
		out    [][4]int
		cx, cy int
		ok     bool
	)
	for _, op := range r.Ops {
		switch op.Kind {
		case OpBeginPath:
			ok = false
		case OpMoveTo:
			cx, cy, ok = op.Args[0], op.Args[1], true
		case OpLineTo:
			if ok {
				out = append(out, [4]int{cx, cy, op.Args[0], op.Args[1]})
			}
			cx, cy, ok = op.Args[0], op.Args[1], true
		}
	}
	return out
}

var _ Surface = (*Recorder)(nil)
