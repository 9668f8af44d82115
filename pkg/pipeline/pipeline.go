// Package pipeline runs the load → layout → render pipeline shared by the
// CLI and the API server.
//
// # Stages
//
//  1. Load: validate a source expression and build the diagram, applying
//     conversion requests
//  2. Layout: compute the geometry of every node for the chosen orientation
//  3. Render: produce artifacts (SVG, PNG, PDF, JSON geometry, DOT, node-link
//     SVG)
//
// Rendered artifacts are cached by a content hash of the document, including
// the expansion state of every tree, so a toggled document never reuses the
// artifacts of its previous state.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, "doc.json", src, pipeline.Options{
//	    Orientation: "vertical",
//	    Formats:     []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/document"
	arborerrors "github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultOrientation is the layout orientation when none is configured.
	DefaultOrientation = "horizontal"

	// DefaultScale is the pixel density of PNG output.
	DefaultScale = 2.0

	// DefaultMargin is the blank border around rendered output.
	DefaultMargin = render.DefaultMargin
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatJSON:     true,
	FormatDOT:      true,
	FormatNodelink: true,
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatNodelink {
		return ".nodelink.svg"
	}
	return "." + format
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG, FormatNodelink:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	}
	return "application/octet-stream"
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON for API requests.
type Options struct {
	// Load options
	Strict bool `json:"strict,omitempty"`

	// Layout options
	Orientation string `json:"orientation,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Margin   int      `json:"margin,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // node-link labels include path and size
	Refresh  bool     `json:"refresh,omitempty"`  // ignore cached artifacts

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Document  *document.Document
	DocHash   string
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains timing and size information.
type Stats struct {
	NodeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return arborerrors.New(arborerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json, dot, nodelink)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, defaulting to SVG.
func ParseFormats(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{FormatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if _, err := tree.ParseOrientation(o.Orientation); err != nil {
		return err
	}
	if o.Scale < 0 {
		return arborerrors.New(arborerrors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Margin < 0 {
		return arborerrors.New(arborerrors.ErrCodeInvalidInput, "margin must not be negative, got %d", o.Margin)
	}
	return ValidateFormats(o.Formats)
}

// TreeOrientation returns the parsed orientation, or Horizontal if it is
// invalid.
func (o *Options) TreeOrientation() tree.Orientation {
	or, _ := tree.ParseOrientation(o.Orientation)
	return or
}

// RenderOptions returns the options passed to the renderers.
func (o *Options) RenderOptions() []render.Option {
	return []render.Option{render.WithMargin(o.Margin), render.WithScale(o.Scale)}
}

// ArtifactKeyOpts returns cache key options for format.
func (o *Options) ArtifactKeyOpts(format string, doc *document.Document) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:      format,
		Orientation: o.TreeOrientation().String(),
		Margin:      o.Margin,
	}
	switch format {
	case FormatPNG:
		opts.Scale = o.Scale
	case FormatJSON:
		opts.Selection = doc.Selection().String()
	case FormatDOT, FormatNodelink:
		if o.Detailed {
			opts.Format += "+detailed"
		}
	}
	return opts
}
