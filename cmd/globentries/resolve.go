// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/internal/issue"
	"github.com/invowk/globentries/internal/render"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

// resolveFlagValues override the matching configuration values when set.
type resolveFlagValues struct {
	format          string
	naming          string
	cwd             string
	filesOnly       bool
	noHidden        bool
	caseInsensitive bool
	showRoots       bool
}

func newResolveCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	flags := &resolveFlagValues{}

	cmd := &cobra.Command{
		Use:   "resolve [pattern...]",
		Short: "Print the entry mapping for glob patterns",
		Long: `Expand each pattern and print the resulting entry mapping.

Each matched file becomes an entry whose id is the file's path relative to
the pattern's root directory, without extension. When two files produce the
same id, the one matched last wins. Patterns given as arguments replace
entries.patterns from the configuration file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, app, rootFlags, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "o", "", "output format: text, json, yaml, toml or markdown")
	cmd.Flags().StringVar(&flags.naming, "naming", "", "entry id strategy: default or basename")
	cmd.Flags().StringVar(&flags.cwd, "cwd", "", "directory relative patterns are resolved against")
	cmd.Flags().BoolVar(&flags.filesOnly, "files-only", false, "skip matched directories")
	cmd.Flags().BoolVar(&flags.noHidden, "no-hidden", false, "skip dot-files and dot-directories")
	cmd.Flags().BoolVar(&flags.caseInsensitive, "case-insensitive", false, "match case-insensitively")
	cmd.Flags().BoolVar(&flags.showRoots, "show-roots", false, "also print the watched root directories to stderr")

	return cmd
}

func runResolve(cmd *cobra.Command, app *App, rootFlags *rootFlagValues, flags *resolveFlagValues, args []string) error {
	s, err := app.newSession(cmd, rootFlags, args)
	if err != nil {
		return err
	}
	if err := flags.apply(cmd, s.cfg); err != nil {
		return app.fail(s, err)
	}

	agg, err := s.aggregator()
	if err != nil {
		return app.fail(s, issue.WrapWithContext(err, "configure entries", s.patternList()))
	}

	entries, err := agg.Entries()
	if err != nil {
		return app.fail(s, issue.WrapWithContext(err, "resolve entries", s.patternList()))
	}
	if len(entries) == 0 {
		s.logger.Warn("no entries matched", "patterns", s.patternList())
	}

	if err := render.Entries(app.stdout, entries, s.renderOptions()); err != nil {
		return withExitCode(err)
	}

	if flags.showRoots {
		patterns := agg.Patterns()
		roots := patternRoots(patterns, s.cfg.Entries.Match.Cwd)
		return withExitCode(render.Roots(app.stderr, patterns, roots, render.Options{Format: config.FormatText}))
	}

	return nil
}

// apply copies every flag the user set onto cfg.
func (f *resolveFlagValues) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("format") {
		format := config.OutputFormat(f.format)
		if err := format.Validate(); err != nil {
			return err
		}
		cfg.UI.Format = format
	}
	if changed("naming") {
		if _, err := globentry.NamingByName(f.naming); err != nil {
			return err
		}
		cfg.Entries.Plugin.Naming = f.naming
		cfg.Entries.Plugin.BasenameAsEntryID = false
	}
	if changed("cwd") {
		cfg.Entries.Match.Cwd = types.FilesystemPath(f.cwd)
	}
	if changed("files-only") {
		cfg.Entries.Match.FilesOnly = f.filesOnly
	}
	if changed("no-hidden") {
		cfg.Entries.Match.NoHidden = f.noHidden
	}
	if changed("case-insensitive") {
		cfg.Entries.Match.CaseInsensitive = f.caseInsensitive
	}
	return nil
}
