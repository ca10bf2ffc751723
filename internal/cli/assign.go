package cli

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// assignOpts holds the command-line flags for the assign command.
type assignOpts struct {
	names     string // roster text given inline
	seed      uint64 // 0 draws a fresh seed
	noShuffle bool   // keep roster order
	yes       bool   // accept empty seats without asking
	countdown int    // seconds to count down before the reveal
	json      bool   // print the result as JSON
	output    string // JSON output path
	noCache   bool   // do not keep the result
}

// assignCommand creates the assign command, which seats a roster on a chart.
func (c *CLI) assignCommand() *cobra.Command {
	var opts assignOpts

	cmd := &cobra.Command{
		Use:   "assign <chart-file> [names-file|-]",
		Short: "Seat people on a chart at random",
		Long: `Assign the people of a roster to the seats of a chart.

Without neighbor pairs the roster is shuffled; locked people ("#") keep
their place in the list. With pairs, every pair is put on two connected
seats. The roster comes from a file, stdin ("-"), --names, or the names
saved in the chart.

The result is kept in the cache; its ID and seed are printed so it can be
shown again or reproduced.`,
		Example: `  seatplan assign room.json names.txt
  seatplan assign room.json --names "A; [B; C]; D" --seed 42
  seatplan assign room.json --countdown 5`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAssign(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.names, "names", "", "roster text (instead of a file)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for a reproducible assignment (0: random)")
	cmd.Flags().BoolVar(&opts.noShuffle, "no-shuffle", false, "seat people in roster order")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "accept empty seats without asking")
	cmd.Flags().IntVar(&opts.countdown, "countdown", 0, "count down N seconds before showing the result")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON to file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not keep the result")

	return cmd
}

func (c *CLI) runAssign(ctx context.Context, args []string, opts assignOpts) error {
	logger := loggerFromContext(ctx)

	ch, err := chart.ImportJSON(args[0])
	if err != nil {
		return err
	}
	popts, err := c.baseOptions()
	if err != nil {
		return err
	}
	names, err := readNames(args[1:], opts.names, popts.PersonDelimiter)
	if err != nil {
		return err
	}
	popts.Names = names
	popts.Seed = opts.seed
	popts.KeepOrder = opts.noShuffle
	popts.AllowUnderfill = opts.yes
	popts.Logger = logger

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Assign(ctx, ch, popts)
	if stderrors.Is(err, pipeline.ErrUnderfill) {
		ok, cerr := confirm(ctx, errors.UserMessage(err)+". Continue?")
		if cerr != nil {
			return cerr
		}
		if !ok {
			return fmt.Errorf("%w (use --yes to accept empty seats)", err)
		}
		popts.AllowUnderfill = true
		result, err = runner.Assign(ctx, ch, popts)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Assigned %d people", result.Occupied()))

	if err := countdown(ctx, opts.countdown, ch.Name); err != nil {
		return err
	}

	if opts.json {
		return writeJSONOutput(opts.output, result)
	}
	printResult(result, false)
	if !opts.noCache {
		printNextStep("Draw it", fmt.Sprintf("%s graph %s --result %s -o seats.svg", appName, args[0], result.ID))
	}
	return nil
}

// printResult prints the seat table and a summary line.
func printResult(result *pipeline.Result, cached bool) {
	title := result.ChartName
	if title == "" {
		title = "Assignment"
	}
	fmt.Println(StyleTitle.Render(title))
	fmt.Println(renderAssignment(result))
	printStats(result.Stats, result.Mode, cached)
	printDetail("id %s · seed %d", result.ID, result.Seed)
}
