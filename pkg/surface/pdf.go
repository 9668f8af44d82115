package surface

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// rsvgBinary is the converter used for PDF export.
const rsvgBinary = "rsvg-convert"

// ToPDF converts an SVG document to PDF using rsvg-convert.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	if _, err := exec.LookPath(rsvgBinary); err != nil {
		return nil, fmt.Errorf("pdf export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}

	cmd := exec.CommandContext(ctx, rsvgBinary, "-f", "pdf")
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", rsvgBinary, err, stderr.String())
	}
	return out.Bytes(), nil
}
