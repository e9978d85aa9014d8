// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/invowk/globentries/internal/devhost"
	"github.com/invowk/globentries/internal/issue"
	"github.com/invowk/globentries/internal/render"
	"github.com/invowk/globentries/internal/watch"
	"github.com/invowk/globentries/pkg/buildhook"
)

type watchFlagValues struct {
	debounce    time.Duration
	clearScreen bool
	legacyHost  bool
}

func newWatchCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &watchFlagValues{}

	cmd := &cobra.Command{
		Use:   "watch [pattern...]",
		Short: "Recompile the entry mapping when watched directories change",
		Long: `Run an in-process build host that compiles the entry mapping, reports
every pattern root as a context dependency and recompiles whenever
something under those roots changes. Files added after startup become
entries on the next pass. Stop with Ctrl+C.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, app, rootFlags, flags, args)
		},
	}

	cmd.Flags().DurationVar(&flags.debounce, "debounce", 0, "quiet period before recompiling (default from watch.debounce)")
	cmd.Flags().BoolVar(&flags.clearScreen, "clear-screen", false, "clear the terminal before each pass")
	cmd.Flags().BoolVar(&flags.legacyHost, "legacy-host", false, "use legacy callback registration and list-shaped dependencies")

	return cmd
}

func runWatch(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *watchFlagValues, args []string) error {
	s, err := app.newSession(cmd, rootFlags, args)
	if err != nil {
		return err
	}

	wcfg := s.cfg.Watch
	changed := cmd.Flags().Changed
	if changed("debounce") {
		wcfg.Debounce = flags.debounce
	}
	if changed("clear-screen") {
		wcfg.ClearScreen = flags.clearScreen
	}
	if changed("legacy-host") {
		wcfg.LegacyHost = flags.legacyHost
	}

	agg, err := s.aggregator()
	if err != nil {
		return app.fail(s, issue.WrapWithContext(err, "configure entries", s.patternList()))
	}

	hostOpts := []devhost.Option{devhost.WithLogger(s.logger)}
	if wcfg.LegacyHost {
		hostOpts = append(hostOpts, devhost.WithLegacy())
	}
	host := devhost.New(agg.Entries, hostOpts...)

	plugin := buildhook.NewPlugin(agg.Registry(), buildhook.WithLogger(s.logger))
	if err := plugin.Apply(host); err != nil {
		return app.fail(s, issue.WrapWithOperation(err, "register watch plugin"))
	}

	var w *watch.Watcher
	compile := func(ctx context.Context) (*devhost.Result, error) {
		res, err := host.Compile(ctx)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(app.stdout, "%s pass %d: %d entries\n", TitleStyle.Render("→"), res.Pass, len(res.Entries))
		if err := render.Entries(app.stdout, res.Entries, s.renderOptions()); err != nil {
			return nil, err
		}
		return res, nil
	}

	first, err := compile(cmd.Context())
	if err != nil {
		return app.fail(s, issue.WrapWithContext(err, "compile entries", s.patternList()))
	}

	w, err = watch.New(watch.Config{
		Dirs:        first.ContextDependencies,
		Ignore:      wcfg.Ignore,
		Debounce:    wcfg.Debounce,
		ClearScreen: wcfg.ClearScreen,
		Stdout:      app.stdout,
		Logger:      s.logger,
		OnChange: func(ctx context.Context, changedPaths []string) error {
			s.logger.Debug("recompiling", "changes", len(changedPaths))
			res, err := compile(ctx)
			if err != nil {
				if ctx.Err() == nil {
					// Keep watching: the next save may fix it.
					fmt.Fprintf(app.stderr, "%s compilation failed: %v\n", WarningStyle.Render("!"), err)
				}
				return nil
			}
			for _, dir := range res.ContextDependencies {
				if _, err := w.AddRoot(dir); err != nil {
					s.logger.Warn("cannot watch directory", "dir", dir, "err", err)
				}
			}
			return nil
		},
	})
	if err != nil {
		return app.fail(s, issue.NewErrorContext().
			WithOperation("start watcher").
			WithIssue(issue.WatchFailedId).
			Wrap(err).
			BuildError())
	}

	watched, waiting := len(w.Roots()), len(w.Waiting())
	var note string
	if waiting > 0 {
		note = fmt.Sprintf(", %d not created yet", waiting)
	}
	fmt.Fprintf(app.stdout, "\n%s Watching %d director%s%s (Ctrl+C to stop)...\n\n",
		TitleStyle.Render("→"), watched+waiting, pluralY(watched+waiting), note)

	if err := w.Run(cmd.Context()); err != nil {
		return app.fail(s, issue.NewErrorContext().
			WithOperation("watch directories").
			WithIssue(issue.WatchFailedId).
			Wrap(err).
			BuildError())
	}
	return nil
}

func pluralY(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
