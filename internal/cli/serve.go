package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/internal/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve roster parsing, assignment and the chart store over HTTP.

Results go to the configured cache (use redis to share them between several
servers) and charts to the configured store (file or mongo).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.settings().Server.Addr
			}

			defaults, err := c.baseOptions()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, false)
			if err != nil {
				return err
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := server.New(server.Config{
				Runner:   runner,
				Store:    st,
				Logger:   c.Logger,
				Defaults: defaults,
			})
			printInfo("Serving on %s", StyleLink.Render(displayAddr(addr)))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

// displayAddr turns ":8080" into a clickable local URL.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}
