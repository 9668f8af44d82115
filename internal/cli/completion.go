package cli

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arbor/pkg/pipeline"
	"github.com/matzehuels/arbor/pkg/tree"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for arbor.

Besides commands and flags, the scripts complete --format values
(including comma-separated lists) and --orientation values.

Bash:
  $ source <(arbor completion bash)

Zsh:
  $ arbor completion zsh > "${fpath[1]}/_arbor"

Fish:
  $ arbor completion fish > ~/.config/fish/completions/arbor.fish

PowerShell:
  PS> arbor completion powershell | Out-String | Invoke-Expression`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerValueCompletions adds value completion for the --format and
// --orientation flags that cmd defines.
func registerValueCompletions(cmd *cobra.Command) {
	if cmd.Flags().Lookup("format") != nil {
		_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return formatCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
		})
	}
	if cmd.Flags().Lookup("orientation") != nil {
		_ = cmd.RegisterFlagCompletionFunc("orientation", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return []string{tree.Horizontal.String(), tree.Vertical.String()}, cobra.ShellCompDirectiveNoFileComp
		})
	}
}

// formatCompletions completes the last element of a comma-separated format
// list, skipping formats already in the list.
func formatCompletions(toComplete string) []string {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	used := make(map[string]bool)
	for _, f := range strings.Split(prefix, ",") {
		used[f] = true
	}

	var out []string
	for f := range pipeline.ValidFormats {
		if !used[f] && strings.HasPrefix(f, last) {
			out = append(out, prefix+f)
		}
	}
	sort.Strings(out)
	return out
}
