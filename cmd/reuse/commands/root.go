// Package commands implements the CLI commands for the reuse build cache.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/reuse/internal/app"
	"go.trai.ch/reuse/internal/build"
	"go.trai.ch/reuse/internal/core/domain"
)

// CLI represents the command line interface for reuse.
type CLI struct {
	components *app.Components
	rootCmd    *cobra.Command
	out        io.Writer

	configPath string
	cacheDir   string
	verbose    bool
	json       bool
}

// New creates a new CLI instance with the given components.
func New(components *app.Components) *CLI {
	c := &CLI{
		components: components,
		out:        os.Stdout,
	}

	rootCmd := &cobra.Command{
		Use:               "reuse",
		Short:             "Skip rebuilding artifacts whose inputs have not changed",
		SilenceUsage:      true,
		SilenceErrors:     true,
		Version:           build.Version,
		PersistentPreRunE: c.configure,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", domain.ConfigFileName, "Path to the configuration file")
	flags.StringVar(&c.cacheDir, "cache-dir", "", "Override the cache directory of the configuration file")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Log every step of the cache decision")
	flags.BoolVar(&c.json, "json", false, "Emit structured JSON logs instead of the progress printer")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newHashCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newWatchCmd())
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

// SetOutput redirects command results. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
	c.rootCmd.SetOut(w)
}

func (c *CLI) configure(_ *cobra.Command, _ []string) error {
	if settings := c.components.Settings; settings != nil {
		if c.verbose {
			settings.SetLevel(slog.LevelDebug)
		}
		if c.json {
			settings.SetJSON(true)
		}
	}
	if c.json {
		c.components.App.WithJSONOutput()
	}
	return nil
}

func (c *CLI) target(units []string) app.Target {
	return app.Target{
		ConfigPath: c.configPath,
		CacheDir:   c.cacheDir,
		Units:      units,
	}
}
