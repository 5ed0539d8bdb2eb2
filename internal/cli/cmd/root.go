// Package cmd provides Cobra CLI commands for sitestyle.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/sitestyle/internal/cli"
	"github.com/bnema/sitestyle/internal/domain/build"
)

// interactiveCommands keep log lines off stderr so the TUI is not garbled.
var interactiveCommands = map[string]bool{
	"popup": true,
}

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "sitestyle",
		Short: "Per-site fonts, text size and scaling for Chromium",
		Long: `sitestyle remembers display preferences per website and applies them
to every matching page in a Chromium browser.

For each domain you can store:
  - a font family applied to the whole page
  - a font-size delta from -5px to +5px, added to every element
  - a page scaling factor

Settings take effect on every open tab of the domain as soon as they change,
and again each time a page of that domain finishes loading.

Start the listener with 'sitestyle run', then use 'sitestyle popup' or the
set/clear subcommands to change settings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "gen-docs", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp(cli.Options{LogToStderr: !interactiveCommands[cmd.Name()]})
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			// Set build info from main.go
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

func init() {
	// cmd.Print* writes to stdout; errors keep going to stderr.
	rootCmd.SetOut(os.Stdout)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info.WithModuleFallback()
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
