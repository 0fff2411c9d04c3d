// Package commands implements the CLI commands for layer-render.
package commands

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gogpu/layer"
)

// Version is the application version, set at build time.
var Version = "dev"

// CLI represents the command line interface for layer-render.
type CLI struct {
	rootCmd *cobra.Command
	stdout  io.Writer
	stderr  io.Writer
}

// New creates a new CLI writing reports to stdout and logs to stderr.
func New(stdout, stderr io.Writer) *CLI {
	rootCmd := &cobra.Command{
		Use:           "layer-render",
		Short:         "Render YAML design documents to PNG",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a TOML config file")
	// -v belongs to --version.
	rootCmd.PersistentFlags().Bool("verbose", false, "Log debug output")

	c := &CLI{
		rootCmd: rootCmd,
		stdout:  stdout,
		stderr:  stderr,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.installLogger(verbose)
	}

	rootCmd.AddCommand(c.newRenderCmd())
	rootCmd.AddCommand(c.newBoundsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// installLogger routes library logs to stderr.
func (c *CLI) installLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	layer.SetLogger(slog.New(slog.NewTextHandler(c.stderr, &slog.HandlerOptions{Level: level})))
}
