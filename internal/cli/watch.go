package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/expr"
	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/tree"
)

// watchDebounce coalesces the bursts of events editors produce on save.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-render a document whenever it or the config changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.renderPipelineOptions(cmd, opts)
			if err := popts.Validate(); err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			cfgPath, _ := configPath(c.configPath)
			w := &watchSession{
				input:        args[0],
				output:       opts.output,
				configPath:   cfgPath,
				followConfig: !cmd.Flags().Changed("orientation"),
				opts:         popts,
				runner:       runner,
				logger:       loggerFromContext(cmd.Context()),
			}
			return w.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s) (comma-separated)")
	cmd.Flags().StringVar(&opts.orientation, "orientation", "", "layout orientation; overrides the config file")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG pixel density")
	cmd.Flags().IntVar(&opts.margin, "margin", pipeline.DefaultMargin, "blank border around the diagram")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject trees with an unreadable expansion state")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	registerValueCompletions(cmd)

	return cmd
}

// watchSession keeps one document loaded and re-renders it through the
// document's refresh handlers.
type watchSession struct {
	input        string
	output       string
	configPath   string
	followConfig bool
	opts         pipeline.Options
	runner       *pipeline.Runner
	logger       *log.Logger

	doc *document.Document
}

func (w *watchSession) run(ctx context.Context) error {
	w.opts.Logger = w.logger
	if err := w.reload(ctx); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	// Directories are watched so that atomic saves (write + rename) are seen.
	watched := map[string]bool{}
	for _, p := range []string{w.input, w.configPath} {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if watched[dir] {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			if p == w.input {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
			w.logger.Debug("not watching config", "dir", dir, "err", err)
			continue
		}
		watched[dir] = true
	}

	printInfo("Watching %s %s", StyleHighlight.Render(w.input), StyleDim.Render("(ctrl+c to stop)"))

	var (
		fire          <-chan time.Time
		docChanged    bool
		configChanged bool
	)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			switch {
			case samePath(ev.Name, w.input):
				docChanged = true
			case w.followConfig && samePath(ev.Name, w.configPath):
				configChanged = true
			default:
				continue
			}
			fire = time.After(watchDebounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)

		case <-fire:
			fire = nil
			if configChanged {
				w.reconfigure()
			}
			if docChanged {
				if err := w.reload(ctx); err != nil {
					printError("%s", err)
				}
			}
			docChanged, configChanged = false, false
		}
	}
}

// reload reads the document again and renders it.
func (w *watchSession) reload(ctx context.Context) error {
	src, err := expr.ReadFile(w.input)
	if err != nil {
		return err
	}
	doc, err := w.runner.Load(ctx, filepath.Base(w.input), src, w.opts)
	if err != nil {
		return err
	}
	doc.OnRefresh(func(d *document.Document) { w.write(ctx, d) })
	w.doc = doc
	w.runner.Layout(ctx, doc)
	w.write(ctx, doc)
	return nil
}

// reconfigure applies a changed orientation from the config file. Switching
// the orientation refreshes the document, which writes new artifacts.
func (w *watchSession) reconfigure() {
	cfg, err := LoadConfig(w.configPath)
	if err != nil {
		printError("%s", err)
		return
	}
	o, err := tree.ParseOrientation(cfg.Orientation)
	if err != nil || w.doc == nil || o == w.doc.Orientation() {
		return
	}
	w.opts.Orientation = o.String()
	w.logger.Info("orientation changed", "orientation", o)
	w.doc.SetOrientation(o)
}

func (w *watchSession) write(ctx context.Context, d *document.Document) {
	artifacts, hit, err := w.runner.RenderWithCacheInfo(ctx, d, w.opts)
	if err != nil {
		printError("render %s: %s", w.input, err)
		return
	}
	paths := outputPaths(w.input, w.output, w.opts.Formats)
	for _, f := range w.opts.Formats {
		if err := os.WriteFile(paths[f], artifacts[f], 0o644); err != nil {
			printError("write %s: %s", paths[f], err)
			return
		}
	}
	printSuccess("Rendered %s", w.input)
	printStats(pipeline.CountNodes(d.Root()), hit)
}

func samePath(a, b string) bool {
	if b == "" {
		return false
	}
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	if err1 != nil || err2 != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return aa == bb
}
