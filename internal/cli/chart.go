package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/chart"
	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/pipeline"
)

// chartCommand creates the chart command for editing chart files.
func (c *CLI) chartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Create and edit room charts",
		Long: `Create and edit chart files.

A chart holds the seats of a room and the connections between seats that
count as "next to each other". Charts are JSON files; "chart push" copies
one into the configured chart store for the HTTP API.`,
	}

	cmd.AddCommand(c.chartNewCommand())
	cmd.AddCommand(c.chartShowCommand())
	cmd.AddCommand(c.chartConnectCommand())
	cmd.AddCommand(c.chartDisconnectCommand())
	cmd.AddCommand(c.chartAddSeatCommand())
	cmd.AddCommand(c.chartDeleteSeatCommand())
	cmd.AddCommand(c.chartAddFixedCommand())
	cmd.AddCommand(c.chartNamesCommand())
	cmd.AddCommand(c.chartPushCommand())
	cmd.AddCommand(c.chartListCommand())

	return cmd
}

func (c *CLI) chartNewCommand() *cobra.Command {
	var (
		name  string
		seats int
		force bool
	)
	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Create a chart with a grid of seats",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidPath, "%s exists (use --force to overwrite)", path)
			}
			if seats < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--seats must not be negative")
			}
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}
			if err := errors.ValidateChartName(name); err != nil {
				return err
			}

			ch := chart.New(name)
			ch.AddSeats(seats)
			if err := chart.ExportJSON(ch, path); err != nil {
				return err
			}
			printSuccess("Created chart %s with %d seats", StyleHighlight.Render(name), seats)
			printFile(path)
			printNextStep("Connect neighbors", fmt.Sprintf("%s chart connect %s 1 2", appName, path))
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "chart name (default: file name)")
	cmd.Flags().IntVar(&seats, "seats", 0, "number of seats to lay out in rows of 10")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) chartShowCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print a chart's seats and connections",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := chart.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return chart.WriteJSON(os.Stdout, ch)
			}
			printChart(ch)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the chart as JSON")
	return cmd
}

func printChart(ch *chart.Chart) {
	fmt.Println(StyleTitle.Render(ch.Name))
	printKeyValue("ID", ch.ID)
	printKeyValue("Seats", StyleNumber.Render(strconv.Itoa(ch.SeatCount())))
	printKeyValue("Connections", StyleNumber.Render(strconv.Itoa(len(ch.Connections))))
	if len(ch.Fixed) > 0 {
		printKeyValue("Fixed", strconv.Itoa(len(ch.Fixed)))
	}
	if ch.Names != "" {
		printKeyValue("Names", ch.Names)
	}
	printNewline()
	for _, id := range ch.SeatIDs() {
		neighbors := ch.Neighbors(id)
		if len(neighbors) == 0 {
			printDetail("seat %d", id)
			continue
		}
		ids := make([]string, len(neighbors))
		for i, n := range neighbors {
			ids[i] = strconv.Itoa(n)
		}
		printDetail("seat %d %s %s", id, iconArrow, strings.Join(ids, ", "))
	}
}

func (c *CLI) chartConnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <file> <seat> <seat>...",
		Short: "Mark seats as neighbors",
		Long: `Connect consecutive seats: "connect room.json 1 2 3" connects 1-2 and 2-3.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := seatArgs(args[1:])
			if err != nil {
				return err
			}
			return editChart(args[0], func(ch *chart.Chart) error {
				for i := 1; i < len(ids); i++ {
					if err := ch.Connect(ids[i-1], ids[i]); err != nil {
						return err
					}
					printSuccess("Connected %d-%d", ids[i-1], ids[i])
				}
				return nil
			})
		},
	}
}

func (c *CLI) chartDisconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect <file> <seat> <seat>",
		Short: "Remove a connection between two seats",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := seatArgs(args[1:])
			if err != nil {
				return err
			}
			return editChart(args[0], func(ch *chart.Chart) error {
				if !ch.IsConnected(ids[0], ids[1]) {
					printWarning("Seats %d and %d are not connected", ids[0], ids[1])
					return nil
				}
				ch.Disconnect(ids[0], ids[1])
				printSuccess("Disconnected %d-%d", ids[0], ids[1])
				return nil
			})
		},
	}
}

func (c *CLI) chartAddSeatCommand() *cobra.Command {
	var (
		count  int
		x, y   float64
		rotate float64
	)
	cmd := &cobra.Command{
		Use:   "add-seat <file>",
		Short: "Add seats to a chart",
		Long: `Add one seat at --x/--y, or --count seats in grid rows below the existing ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--count must be at least 1")
			}
			positioned := cmd.Flags().Changed("x") || cmd.Flags().Changed("y")
			return editChart(args[0], func(ch *chart.Chart) error {
				if positioned {
					s := ch.AddSeat(x, y, rotate)
					printSuccess("Added seat %d", s.ID)
					return nil
				}
				added := ch.AddSeats(count)
				printSuccess("Added seats %d-%d", added[0].ID, added[len(added)-1].ID)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&count, "count", 1, "number of seats to add")
	cmd.Flags().Float64Var(&x, "x", 0, "x position")
	cmd.Flags().Float64Var(&y, "y", 0, "y position")
	cmd.Flags().Float64Var(&rotate, "rotate", 0, "rotation in degrees")
	return cmd
}

func (c *CLI) chartAddFixedCommand() *cobra.Command {
	var x, y, rotate float64
	cmd := &cobra.Command{
		Use:   "add-fixed <file> <desk|board|door|window>",
		Short: "Place furniture in a chart",
		Long:  `Place a fixed element. Fixed elements are drawn but never seated.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editChart(args[0], func(ch *chart.Chart) error {
				if err := ch.AddFixed(args[1], x, y, rotate); err != nil {
					return err
				}
				printSuccess("Added %s at %s,%s", args[1], strconv.FormatFloat(x, 'f', -1, 64), strconv.FormatFloat(y, 'f', -1, 64))
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "x position")
	cmd.Flags().Float64Var(&y, "y", 0, "y position")
	cmd.Flags().Float64Var(&rotate, "rotate", 0, "rotation in degrees")
	return cmd
}

func (c *CLI) chartDeleteSeatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-seat <file> <seat>...",
		Short: "Delete seats and their connections",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := seatArgs(args[1:])
			if err != nil {
				return err
			}
			return editChart(args[0], func(ch *chart.Chart) error {
				for _, id := range ids {
					if err := ch.DeleteSeat(id); err != nil {
						return err
					}
					printSuccess("Deleted seat %d", id)
				}
				return nil
			})
		},
	}
}

func (c *CLI) chartNamesCommand() *cobra.Command {
	var inline string
	cmd := &cobra.Command{
		Use:   "names <file> [names-file|-]",
		Short: "Save a roster with the chart",
		Long: `Save roster text in the chart so "assign" can run without --names.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.baseOptions()
			if err != nil {
				return err
			}
			text, err := readNames(args[1:], inline, base.PersonDelimiter)
			if err != nil {
				return err
			}
			ros, err := pipeline.ParseRoster(text, base)
			if err != nil {
				return err
			}
			return editChart(args[0], func(ch *chart.Chart) error {
				ch.Names = text
				if text == "" {
					printSuccess("Cleared saved names")
					return nil
				}
				printSuccess("Saved %d names", ros.Len())
				if n := ros.Len(); n != ch.SeatCount() {
					printWarning("%d people, %d seats", n, ch.SeatCount())
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&inline, "names", "", "roster text (instead of a file)")
	return cmd
}

func (c *CLI) chartPushCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "push <file>",
		Short: "Copy a chart into the chart store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch, err := chart.ImportJSON(args[0])
			if err != nil {
				return err
			}
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Put(cmd.Context(), ch); err != nil {
				return err
			}
			printSuccess("Stored chart %s", StyleHighlight.Render(ch.ID))
			return nil
		},
	}
}

func (c *CLI) chartListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List charts in the chart store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			charts, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(charts) == 0 {
				printInfo("No stored charts")
				return nil
			}
			for _, s := range charts {
				fmt.Printf("%s  %s\n", StyleHighlight.Render(s.ID), StyleValue.Render(s.Name))
				printDetail("%d seats · %d connections · updated %s", s.Seats, s.Connections, s.UpdatedAt.Format("Jan 2, 2006 15:04"))
			}
			return nil
		},
	}
}

// editChart loads the chart at path, applies fn and writes it back. Nothing
// is written when fn fails.
func editChart(path string, fn func(*chart.Chart) error) error {
	ch, err := chart.ImportJSON(path)
	if err != nil {
		return err
	}
	if err := fn(ch); err != nil {
		return err
	}
	ch.Touch()
	return chart.ExportJSON(ch, path)
}

func seatArgs(args []string) ([]int, error) {
	ids := make([]int, len(args))
	for i, a := range args {
		id, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "seat %q is not a number", a)
		}
		ids[i] = id
	}
	return ids, nil
}
