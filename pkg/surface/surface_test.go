package surface

import (
	"bytes"
	"image/color"
	"strings"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"orange", color.RGBA{0xff, 0xa5, 0x00, 0xff}, false},
		{"Black", color.RGBA{0, 0, 0, 0xff}, false},
		{"#ffa500", color.RGBA{0xff, 0xa5, 0x00, 0xff}, false},
		{"#fa0", color.RGBA{0xff, 0xaa, 0x00, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#gggggg", color.RGBA{}, true},
		{"notacolor", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if c := color.RGBAModel.Convert(got).(color.RGBA); c != tt.want {
				t.Errorf("ParseColor(%q) = %v, want %v", tt.in, c, tt.want)
			}
		})
	}
}

func TestRecorderSegments(t *testing.T) {
	r := NewRecorder()
	r.BeginPath()
	r.MoveTo(0, 0)
	r.LineTo(0, 10)
	r.MoveTo(5, 10)
	r.LineTo(20, 10)
	r.LineTo(20, 15)
	r.Stroke()

	want := [][4]int{{0, 0, 0, 10}, {5, 10, 20, 10}, {20, 10, 20, 15}}
	got := r.Segments()
	if len(got) != len(want) {
		t.Fatalf("Segments() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
	if r.Count(OpStroke) != 1 {
		t.Errorf("Count(stroke) = %d, want 1", r.Count(OpStroke))
	}
}

func TestRecorderFillStyle(t *testing.T) {
	r := NewRecorder()
	if r.FillStyle() != DefaultFillStyle {
		t.Fatalf("FillStyle() = %q, want %q", r.FillStyle(), DefaultFillStyle)
	}
	r.SetFillStyle("orange")
	r.FillRect(0, 0, 1, 1)
	if got := r.Ops[0].Style; got != "orange" {
		t.Errorf("recorded style = %q, want orange", got)
	}
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	s := NewSVG(&buf, 100, 50)
	s.SetFillStyle("orange")
	s.FillRect(0, 0, 10, 10)
	s.SetFillStyle(DefaultFillStyle)
	s.StrokeRect(0, 0, 10, 10)
	s.BeginPath()
	s.MoveTo(5, 10)
	s.LineTo(5, 30)
	s.Stroke()
	s.FillText("a<b", 10, 20)
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		`viewBox="0 0 100 50"`,
		"fill:orange",
		`d="M5 10 L5 30"`,
		"a&lt;b",
		"</svg>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q:\n%s", want, out)
		}
	}
}

func TestSVGEmptyPath(t *testing.T) {
	var buf bytes.Buffer
	s := NewSVG(&buf, 10, 10)
	s.BeginPath()
	s.Stroke()
	s.Close()
	if strings.Contains(buf.String(), "<path") {
		t.Error("stroking an empty path should not emit a path element")
	}
}

func TestRaster(t *testing.T) {
	r := NewRaster(40, 20, 2)
	b := r.Image().Bounds()
	if b.Dx() != 80 || b.Dy() != 40 {
		t.Fatalf("image size = %dx%d, want 80x40", b.Dx(), b.Dy())
	}

	r.SetFillStyle("orange")
	r.FillRect(0, 0, 40, 20)

	got := color.RGBAModel.Convert(r.Image().At(40, 20)).(color.RGBA)
	if got != (color.RGBA{0xff, 0xa5, 0x00, 0xff}) {
		t.Errorf("pixel = %v, want orange", got)
	}

	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("EncodePNG() did not produce a PNG")
	}
}
