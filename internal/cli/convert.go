package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/pipeline"
)

type convertOpts struct {
	output string
	strict bool
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var opts convertOpts

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a source expression into a tree document",
		Long: `Convert reads an expression (JSON or YAML), applies every tree conversion
request it contains and writes the resulting tree document as JSON.

Nodes tagged Diagramming.ToTree are replaced by the tree diagram of their
argument; everything else is kept as is.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("strict") {
				opts.strict = c.Config.Strict
			}
			return c.runConvert(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <input>.tree.json, - for stdout)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject trees with an unreadable expansion state")

	return cmd
}

func (c *CLI) runConvert(ctx context.Context, input string, opts convertOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	src, err := expr.ReadFile(input)
	if err != nil {
		return err
	}
	loader := document.Loader{Strict: opts.strict, Logger: logger}
	doc, err := loader.Load(filepath.Base(input), src)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		return document.Save(os.Stdout, doc)
	}
	path := opts.output
	if path == "" {
		path = convertedPath(input)
	}
	if err := writeFile(path, func(w io.Writer) error { return document.Save(w, doc) }); err != nil {
		return err
	}
	prog.done("Converted "+input, "output", path, "nodes", pipeline.CountNodes(doc.Root()))
	printFile(path)
	printNextStep("Render it", "arbor render "+path)
	return nil
}

// convertedPath derives the default output path of convert.
func convertedPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".tree.json"
}

// writeFile creates path and its directory and writes to it with fn.
func writeFile(path string, fn func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
