package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/seatplan/pkg/errors"
	"github.com/matzehuels/seatplan/pkg/pipeline"
	"github.com/matzehuels/seatplan/pkg/roster"
)

// parseOpts holds the command-line flags for the parse command.
type parseOpts struct {
	names  string // roster text given inline
	json   bool   // print JSON instead of a table
	output string // output file path (stdout if empty)
}

// parseCommand creates the parse command, which shows how roster text is
// split into people, pairs and locked entries.
func (c *CLI) parseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "parse [names-file|-]",
		Short: "Show how a roster is read",
		Long: `Parse roster text and print the people, neighbor pairs and locked entries.

The roster is read from a file, from stdin ("-"), or from --names.`,
		Example: `  seatplan parse names.txt
  seatplan parse --names "Muster, Anna; [Doe, Ben; Doe, Cara]"
  cat names.txt | seatplan parse - --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.baseOptions()
			if err != nil {
				return err
			}
			text, err := readNames(args, opts.names, base.PersonDelimiter)
			if err != nil {
				return err
			}
			ros, err := pipeline.ParseRoster(text, base)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("parsed roster", "entries", len(ros), "people", ros.Len())

			if opts.json {
				return writeJSONOutput(opts.output, ros)
			}
			printRoster(ros)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.names, "names", "", "roster text (instead of a file)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the roster as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write JSON to file (stdout if empty)")

	return cmd
}

func printRoster(ros roster.Roster) {
	if len(ros) == 0 {
		printWarning("No names found")
		return
	}
	fmt.Println(renderRoster(ros))
	parts := []string{fmt.Sprintf("%d people", ros.Len())}
	if n := ros.GroupCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d pairs", n))
	}
	if n := ros.LockedCount(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d locked", n))
	}
	printDetail("%s", strings.Join(parts, " · "))
}

// readNames returns the roster text from --names, stdin ("-") or a file.
// With no source at all it returns "" and the caller decides.
func readNames(args []string, inline string, delim rune) (string, error) {
	if inline != "" {
		if len(args) > 0 {
			return "", errors.New(errors.ErrCodeInvalidInput, "give names either as a file or with --names, not both")
		}
		return inline, nil
	}
	if len(args) == 0 {
		return "", nil
	}
	return readNamesFile(args[0], delim)
}

func readNamesFile(path string, delim rune) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read names: %w", err)
	}
	// One name per line reads the same as delimiter-separated names.
	return joinLines(string(data), delim), nil
}

// joinLines turns a one-entry-per-line file into a single roster string.
// Lines that already end in delim or "[", or start with "]", are left alone.
func joinLines(s string, delim rune) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			prev := b.String()
			if !strings.HasSuffix(prev, string(delim)) && !strings.HasSuffix(prev, "[") && !strings.HasPrefix(line, "]") {
				b.WriteRune(delim)
			}
			b.WriteString(" ")
		}
		b.WriteString(line)
	}
	return b.String()
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// writeJSONOutput writes v as indented JSON to path (stdout if empty).
func writeJSONOutput(path string, v any) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		out.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	if path != "" {
		printFile(path)
	}
	return nil
}
