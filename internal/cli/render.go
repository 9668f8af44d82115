package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output      string  // output file (single format) or base path (multiple)
	formats     string  // comma-separated output formats
	orientation string  // horizontal or vertical
	scale       float64 // PNG pixel density
	margin      int     // blank border in diagram units
	strict      bool    // reject unreadable expansion state
	detailed    bool    // node-link labels include path and size
	noCache     bool    // bypass the artifact cache
	refresh     bool    // re-render and overwrite cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document to SVG, PNG, PDF, JSON or DOT",
		Long: `Render lays out a document and writes one file per requested format.

Formats:
  svg       vector diagram
  png       raster diagram (--scale sets the pixel density)
  pdf       vector diagram via rsvg-convert
  json      absolute geometry of every visible node
  dot       Graphviz source of the node-link view
  nodelink  node-link view rendered by Graphviz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.renderPipelineOptions(cmd, opts)
			return c.runRender(cmd.Context(), args[0], opts, popts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, nodelink (comma-separated)")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "layout orientation: horizontal (default), vertical")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().IntVar(&opts.margin, "margin", pipeline.DefaultMargin, "blank border around the diagram")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject trees with an unreadable expansion state")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show paths and sizes in node-link output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	registerValueCompletions(cmd)

	return cmd
}

// renderPipelineOptions merges config file values with the flags that were set.
func (c *CLI) renderPipelineOptions(cmd *cobra.Command, opts renderOpts) pipeline.Options {
	popts := c.Config.pipelineOptions()
	flags := cmd.Flags()
	if flags.Changed("format") {
		popts.Formats = pipeline.ParseFormats(opts.formats)
	}
	if flags.Changed("orientation") {
		popts.Orientation = opts.orientation
	}
	if flags.Changed("scale") {
		popts.Scale = opts.scale
	}
	if flags.Changed("strict") {
		popts.Strict = opts.strict
	}
	popts.Margin = opts.margin
	popts.Detailed = opts.detailed
	popts.Refresh = opts.refresh
	return popts
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts, popts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, err := expr.ReadFile(input)
	if err != nil {
		return err
	}
	if err := popts.Validate(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts.Logger = logger
	spin := newSpinnerWithContext(ctx, renderMessage(input, popts.Formats))
	spin.Start()
	result, err := runner.Execute(ctx, filepath.Base(input), src, popts)
	spin.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(input, opts.output, popts.Formats)
	for _, format := range popts.Formats {
		path := paths[format]
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", format, err)
		}
		logger.Debug("wrote artifact", "format", format, "bytes", len(result.Artifacts[format]))
	}

	prog.done("Rendered "+input, "nodes", result.Stats.NodeCount, "formats", strings.Join(popts.Formats, ","), "cached", result.CacheInfo.RenderHit)
	printStats(result.Stats.NodeCount, result.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	return nil
}

// outputPaths maps every format to the file it is written to. A single
// format with an explicit output is written there; otherwise output (or
// the input without its extension) is used as a base path. A derived path
// never names the input document; such artifacts get a ".geometry" infix.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		p := base + pipeline.Extension(f)
		if samePath(p, input) {
			p = base + ".geometry" + pipeline.Extension(f)
		}
		paths[f] = p
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
