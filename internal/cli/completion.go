package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a completion script for your shell.

Load it for the current session:

  bash:  source <(pydepviz completion bash)
  zsh:   source <(pydepviz completion zsh)
  fish:  pydepviz completion fish | source

Or install it permanently:

  bash:  pydepviz completion bash > /etc/bash_completion.d/pydepviz
  zsh:   pydepviz completion zsh > "${fpath[1]}/_pydepviz"
         (run "autoload -U compinit; compinit" once if completion is
         not yet enabled in your zsh setup)
  fish:  pydepviz completion fish > ~/.config/fish/completions/pydepviz.fish

PowerShell users can pipe the output through Invoke-Expression or save it
and dot-source it from their profile:

  pydepviz completion powershell | Out-String | Invoke-Expression
`,
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
