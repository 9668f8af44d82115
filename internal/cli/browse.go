package cli

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/document"
	"github.com/matzehuels/arbor/pkg/render"
	"github.com/matzehuels/arbor/pkg/tree"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var orientation string
	var strict bool

	cmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Navigate and fold a document from the keyboard",
		Long: `Browse opens a document as an outline of its tree diagram.

Keys:
  ←/→ or h/l   previous / next node
  ↑/↓ or k/j   up / down
  space        expand or collapse the selected tree
  p            select the enclosing node
  o            switch orientation
  t            wrap the selection in a tree
  c            convert the selected expression to a tree
  w            save
  q            quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts := c.Config.pipelineOptions()
			if cmd.Flags().Changed("orientation") {
				popts.Orientation = orientation
			}
			if cmd.Flags().Changed("strict") {
				popts.Strict = strict
			}
			if err := popts.Validate(); err != nil {
				return err
			}

			path := args[0]
			loader := document.Loader{Strict: popts.Strict, Logger: loggerFromContext(cmd.Context())}
			doc, err := loader.LoadFile(path, document.WithOrientation(popts.TreeOrientation()))
			if err != nil {
				return err
			}

			m := NewBrowseModel(doc, func(d *document.Document) error {
				return writeFile(path, func(w io.Writer) error { return document.Save(w, d) })
			})
			final, err := tea.NewProgram(m).Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(BrowseModel); ok && fm.Dirty {
				printWarning("Unsaved changes to %s", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&orientation, "orientation", "", "layout orientation: horizontal (default), vertical")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject trees with an unreadable expansion state")
	registerValueCompletions(cmd)

	return cmd
}

// =============================================================================
// BrowseModel - Interactive document navigation
// =============================================================================

// BrowseModel is the bubbletea model for browsing a document.
type BrowseModel struct {
	Doc    *document.Document
	Save   func(*document.Document) error
	Status string
	Dirty  bool
	Height int
}

// NewBrowseModel creates a browse model. save is called for the w key.
func NewBrowseModel(doc *document.Document, save func(*document.Document) error) BrowseModel {
	return BrowseModel{Doc: doc, Save: save, Height: 20}
}

var browseKeys = map[string]tree.Direction{
	"left":  tree.Previous,
	"h":     tree.Previous,
	"right": tree.Next,
	"l":     tree.Next,
	"up":    tree.Up,
	"k":     tree.Up,
	"down":  tree.Down,
	"j":     tree.Down,
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		m.Status = ""
		if dir, ok := browseKeys[key]; ok {
			if !m.Doc.Move(dir) {
				m.Status = fmt.Sprintf("nothing %s", dir)
			}
			return m, nil
		}
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.apply("toggle")
		case "t":
			m.apply("wrap")
		case "c":
			m.apply("totree")
		case "p":
			if !m.Doc.SelectParent() {
				m.Status = "already at the top"
			}
		case "o":
			next := tree.Vertical
			if m.Doc.Orientation() == tree.Vertical {
				next = tree.Horizontal
			}
			m.Doc.SetOrientation(next)
			m.Status = "orientation: " + next.String()
		case "w":
			if m.Save == nil {
				m.Status = "cannot save"
			} else if err := m.Save(m.Doc); err != nil {
				m.Status = "save failed: " + err.Error()
			} else {
				m.Dirty = false
				m.Status = "saved"
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m *BrowseModel) apply(action string) {
	if err := document.Apply(m.Doc, action); err != nil {
		m.Status = err.Error()
		return
	}
	m.Dirty = true
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Doc.Name))
	b.WriteString("\n")
	b.WriteString(outlineDimStyle.Render("arrows: move  space: fold  p: parent  o: orientation  t: wrap  c: convert  w: save  q: quit"))
	b.WriteString("\n\n")

	lines := Outline(m.Doc.Root())
	sel := m.Doc.Selection()
	cur := 0
	for i, l := range lines {
		if l.Path.Equal(sel) {
			cur = i
			break
		}
	}

	offset := 0
	if cur >= m.Height {
		offset = cur - m.Height + 1
	}
	end := offset + m.Height
	if end > len(lines) {
		end = len(lines)
	}

	for i := offset; i < end; i++ {
		l := lines[i]
		cursor := "  "
		style := outlineNormalStyle
		switch {
		case i == cur:
			cursor = "▸ "
			style = outlineSelectedStyle
		case l.Collapsed:
			style = outlineCollapsedStyle
		}
		b.WriteString(cursor + strings.Repeat("  ", l.Depth) + style.Render(l.Text))
		b.WriteString("\n")
	}

	w, h := m.Doc.Size()
	b.WriteString("\n")
	b.WriteString(outlineDimStyle.Render(fmt.Sprintf("  %s · %d×%d · %s", m.Doc.Orientation(), w, h, sel)))
	if m.Dirty {
		b.WriteString(outlineDimStyle.Render(" · modified"))
	}
	if m.Status != "" {
		b.WriteString("\n  " + StyleWarning.Render(m.Status))
	}
	return b.String()
}

// OutlineLine is one visible node of a document outline.
type OutlineLine struct {
	Path      tree.Path
	Depth     int
	Text      string
	Collapsed bool
}

// Outline lists the visible nodes of root in display order. A tree is
// listed before its content and branches, which are indented one level.
func Outline(root tree.Node) []OutlineLine {
	var lines []OutlineLine
	outline(root, tree.Path{}, 0, &lines)
	return lines
}

func outline(n tree.Node, p tree.Path, depth int, out *[]OutlineLine) {
	t, ok := n.(*tree.Tree)
	if !ok {
		*out = append(*out, OutlineLine{Path: p, Depth: depth, Text: render.Text(n)})
		return
	}
	line := OutlineLine{Path: p, Depth: depth, Text: "▾ tree"}
	if t.Collapsed() {
		line.Text = fmt.Sprintf("▸ tree (+%d)", len(t.Branches()))
		line.Collapsed = true
	}
	*out = append(*out, line)
	outline(t.Content(), p.Child(0), depth+1, out)
	if t.Collapsed() {
		return
	}
	for i, br := range t.Branches() {
		outline(br, p.Child(i+1), depth+1, out)
	}
}
