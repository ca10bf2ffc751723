package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/chart"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for seatplan.

Chart arguments complete to .json files, names arguments to .txt files and
"chart add-fixed" to the furniture kinds.

  $ source <(seatplan completion bash)
  $ seatplan completion zsh > "${fpath[1]}/_seatplan"
  $ seatplan completion fish > ~/.config/fish/completions/seatplan.fish
  PS> seatplan completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(os.Stdout, true)
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

// argKind says what a positional argument holds.
type argKind int

const (
	argNone argKind = iota
	argChart
	argNames
	argFixedKind
)

// commandArgs lists the positional arguments per command path. The last
// kind repeats for any further arguments.
var commandArgs = map[string][]argKind{
	"seatplan parse":             {argNames, argNone},
	"seatplan assign":            {argChart, argNames, argNone},
	"seatplan graph":             {argChart, argNone},
	"seatplan chart new":         {argChart, argNone},
	"seatplan chart show":        {argChart, argNone},
	"seatplan chart connect":     {argChart, argNone},
	"seatplan chart disconnect":  {argChart, argNone},
	"seatplan chart add-seat":    {argChart, argNone},
	"seatplan chart add-fixed":   {argChart, argFixedKind, argNone},
	"seatplan chart delete-seat": {argChart, argNone},
	"seatplan chart names":       {argChart, argNames, argNone},
	"seatplan chart push":        {argChart, argNone},
}

// registerCompletions sets argument completion on every command listed in
// commandArgs.
func registerCompletions(root *cobra.Command) {
	var walk func(*cobra.Command)
	walk = func(cmd *cobra.Command) {
		if kinds, ok := commandArgs[cmd.CommandPath()]; ok {
			cmd.ValidArgsFunction = completeArgs(kinds)
		}
		for _, sub := range cmd.Commands() {
			walk(sub)
		}
	}
	walk(root)
}

func completeArgs(kinds []argKind) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		kind := kinds[min(len(args), len(kinds)-1)]
		switch kind {
		case argChart:
			return []cobra.Completion{"json"}, cobra.ShellCompDirectiveFilterFileExt
		case argNames:
			return []cobra.Completion{"txt"}, cobra.ShellCompDirectiveFilterFileExt
		case argFixedKind:
			var out []cobra.Completion
			for _, k := range []string{chart.KindDesk, chart.KindBoard, chart.KindDoor, chart.KindWindow} {
				if strings.HasPrefix(k, toComplete) {
					out = append(out, k)
				}
			}
			return out, cobra.ShellCompDirectiveNoFileComp
		default:
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
	}
}
