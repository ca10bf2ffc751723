package cli

import (
	"github.com/spf13/cobra"
)

// resultCommand creates the result command, which prints a cached
// assignment again.
func (c *CLI) resultCommand() *cobra.Command {
	var (
		asJSON bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "result <id>",
		Short: "Show a cached assignment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer runner.Close()

			result, err := runner.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSONOutput(output, result)
			}
			printResult(result, true)
			printDetail("assigned %s", result.CreatedAt.Local().Format("Jan 2, 2006 15:04"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to file (stdout if empty)")

	return cmd
}
