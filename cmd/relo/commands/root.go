// Package commands implements the CLI commands for the relo bundler.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/relo/internal/app"
	"go.trai.ch/relo/internal/build"
)

// CLI represents the command line interface for relo.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application is the surface the commands need from the app layer.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	Clean(ctx context.Context, opts app.CleanOptions) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{
		app: a,
		rootCmd: &cobra.Command{
			Use:           "relo",
			Short:         "Bundle macOS executables with their shared libraries",
			SilenceUsage:  true,
			SilenceErrors: true,
			Version:       build.Version,
		},
	}

	c.rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit, build.Date,
	))
	c.rootCmd.InitDefaultVersionFlag()
	c.rootCmd.Flags().Lookup("version").Usage = "Print the application version"
	c.rootCmd.InitDefaultHelpFlag()
	c.rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c.rootCmd.AddCommand(
		c.newBundleCmd(),
		c.newCleanCmd(),
		c.newVersionCmd(),
	)

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

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
