package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	uferrors "github.com/matzehuels/uiforge/pkg/errors"
	"github.com/matzehuels/uiforge/pkg/scene"
)

// completionCommand generates shell completion scripts.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for uiforge.

  $ source <(uiforge completion bash)
  $ uiforge completion zsh > "${fpath[1]}/_uiforge"
  $ uiforge completion fish | source
  PS> uiforge completion powershell | Out-String | Invoke-Expression

Document arguments complete to .json and .toml files; --element and the
align element arguments complete to the names in the document.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(c.out)
			case "zsh":
				return cmd.Root().GenZshCompletion(c.out)
			case "fish":
				return cmd.Root().GenFishCompletion(c.out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(c.out)
			}
			return nil
		},
	}
}

// documentExtensions are the completion filters for document arguments.
func documentExtensions() []string {
	exts := make([]string, len(uferrors.DocumentExtensions))
	for i, ext := range uferrors.DocumentExtensions {
		exts[i] = strings.TrimPrefix(ext, ".")
	}
	return exts
}

// completeDocument completes the first argument to a document file.
func completeDocument(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return documentExtensions(), cobra.ShellCompDirectiveFilterFileExt
}

// completeElements lists "name\tkind" pairs for the elements of the document
// given as the first argument.
func (c *CLI) completeElements(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	d, closer, err := c.openDocument(ctx, args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer closer()

	var out []string
	for _, r := range d.Elements() {
		r.Walk(func(e *scene.Element) bool {
			if strings.HasPrefix(e.Name, toComplete) {
				out = append(out, e.Name+"\t"+e.Kind.String())
			}
			return true
		})
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
