package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/seatplan/internal/config"
	"github.com/matzehuels/seatplan/pkg/observability"
)

// testCLI returns a CLI whose config keeps the cache, the chart store and
// the config file inside temp dirs.
func testCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("SEATPLAN_CACHE_BACKEND", "")
	t.Cleanup(observability.Reset)

	c := New(io.Discard, LogInfo)
	cfg := config.Default()
	cfg.Cache.Dir = filepath.Join(t.TempDir(), "cache")
	cfg.Store.Dir = filepath.Join(t.TempDir(), "charts")
	c.cfg = cfg
	return c
}

// execute runs the root command with args, skipping the config file load.
func execute(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.PersistentPreRunE = nil
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	want := []string{"parse", "chart", "assign", "result", "graph", "serve", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("--config flag missing")
	}
}

func TestRootVersion(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"--version"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "commit:") {
		t.Errorf("version output = %q", buf.String())
	}
}

func TestRootLoadsConfigFile(t *testing.T) {
	c := New(io.Discard, LogInfo)
	path := filepath.Join(t.TempDir(), "config.toml")
	writeTestFile(t, path, "[names]\nperson_delimiter = \"|\"\n")

	root := c.RootCommand()
	root.SetArgs([]string{"--config", path, "parse", "--names", "A|B"})
	root.SetOut(io.Discard)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := c.settings().Names.PersonDelimiter; got != "|" {
		t.Errorf("person delimiter = %q, want |", got)
	}
}

func TestRootRejectsMissingConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "parse", "--names", "A"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("expected an error for a missing --config file")
	}
}
