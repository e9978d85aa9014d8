// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	rootFlags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "globentries",
		Short: "Turn glob patterns into build entry points",
		Long: TitleStyle.Render("globentries") + SubtitleStyle.Render(" - Turn glob patterns into build entry points") + `

globentries expands glob patterns into a mapping of entry ids to files.
An entry id is the matched path relative to the pattern's root directory,
without its extension. The root directories are watched so that files
added later become entries on the next compilation.

` + SubtitleStyle.Render("Examples:") + `
  globentries resolve 'src/pages/**/*.js'    Print the entry mapping
  globentries roots 'src/{a,b}/*.ts'         Print each pattern's root
  globentries watch                          Recompile on changes
  globentries config init                    Create a default config file`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "config file (default is ./globentries.cue, then the user config directory)")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(
		newResolveCommand(app, rootFlags),
		newRootsCommand(app, rootFlags),
		newWatchCommand(app, rootFlags),
		newConfigCommand(app, rootFlags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree and exits with the resulting code. It is
// called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(exitCodeFor(withExitCode(err))))
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(int(exitCodeFor(err)))
	}
}

// newLogger returns the CLI logger. Library packages receive it through
// their options; debug output is enabled by --verbose or ui.verbose.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "globentries"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}
