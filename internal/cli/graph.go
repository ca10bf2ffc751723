package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/render/adjacency"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output    string  // .svg or .dot path (DOT to stdout if empty)
	positions bool    // pin seats to chart coordinates
	scale     float64 // chart units per inch
	result    string  // cached assignment to label seats with
}

// graphCommand creates the graph command, which draws the chart's seats and
// their connections.
func (c *CLI) graphCommand() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <chart-file>",
		Short: "Draw seat connections with Graphviz",
		Long: `Draw the seats of a chart and the connections between them.

The output format follows the file extension: .svg renders with Graphviz,
.dot writes the DOT source. Without -o the DOT source goes to stdout.
Seats without any connection are drawn dashed; they can never hold a pair.

With --result, seats are labeled with the people of a cached assignment,
drawn on the chart as it was when the assignment was made.`,
		Example: `  seatplan graph room.json -o room.svg --positions
  seatplan graph room.json --result 3f0c... -o seats.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			ch, err := chart.ImportJSON(args[0])
			if err != nil {
				return err
			}

			dopts := adjacency.Options{Positions: opts.positions, Scale: opts.scale}
			if opts.result != "" {
				runner, err := c.newRunner(ctx, false)
				if err != nil {
					return err
				}
				defer runner.Close()

				result, err := runner.Lookup(ctx, opts.result)
				if err != nil {
					return err
				}
				if snap, err := runner.Snapshot(ctx, result); err == nil {
					ch = snap
				} else {
					logger.Warn("chart snapshot unavailable, using the chart file", "err", err)
				}
				dopts.Labels = make(map[int]string, len(result.Seats))
				for _, s := range result.Seats {
					dopts.Labels[s.SeatID] = s.Person.String()
				}
			}

			dot := adjacency.ToDOT(ch, dopts)
			switch strings.ToLower(filepath.Ext(opts.output)) {
			case "":
				if opts.output != "" {
					return errors.New(errors.ErrCodeInvalidPath, "output %q needs a .svg or .dot extension", opts.output)
				}
				_, err := fmt.Fprint(os.Stdout, dot)
				return err
			case ".dot":
				return writeFile(opts.output, []byte(dot))
			case ".svg":
				spinner := newSpinnerWithContext(ctx, "Rendering with Graphviz...")
				spinner.Start()
				prog := newProgress(logger)
				svg, err := adjacency.RenderSVG(ctx, dot)
				spinner.Stop()
				if err != nil {
					return err
				}
				prog.done("Rendered diagram")
				return writeFile(opts.output, svg)
			default:
				return errors.New(errors.ErrCodeUnsupported, "unsupported output format %q (use .svg or .dot)", filepath.Ext(opts.output))
			}
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&opts.positions, "positions", false, "place seats at their chart coordinates")
	cmd.Flags().Float64Var(&opts.scale, "scale", adjacency.DefaultScale, "chart units per inch")
	cmd.Flags().StringVar(&opts.result, "result", "", "label seats with a cached assignment")

	return cmd
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
