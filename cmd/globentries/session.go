// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/internal/issue"
	"github.com/invowk/globentries/internal/patternexpand"
	"github.com/invowk/globentries/internal/render"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

var errNoPatterns = errors.New("no patterns given")

// session is the per-invocation state shared by resolve, roots and watch:
// the loaded configuration, the effective patterns and the logger.
type session struct {
	cfg      *config.Config
	patterns []types.GlobPattern
	logger   *log.Logger
	verbose  bool
}

// newSession loads the configuration and picks the patterns to use.
// Patterns given as arguments replace entries.patterns.
func (app *App) newSession(cmd *cobra.Command, rootFlags *rootFlagValues, args []string) (*session, error) {
	cfg, err := app.Config.Load(cmd.Context(), app.loadOptions(rootFlags.configPath))
	if err != nil {
		return nil, app.fail(nil, err)
	}

	verbose := rootFlags.verbose || cfg.UI.Verbose
	s := &session{
		cfg:      cfg,
		patterns: cfg.Entries.Patterns,
		logger:   newLogger(app.stderr, verbose),
		verbose:  verbose,
	}
	if cfg.Source != "" {
		s.logger.Debug("loaded configuration", "file", cfg.Source)
	}

	if len(args) > 0 {
		s.patterns = make([]types.GlobPattern, len(args))
		for i, a := range args {
			s.patterns[i] = types.GlobPattern(a)
		}
	}

	if cfg.Entries.ExpandEnv {
		expanded, err := patternexpand.ExpandAll(s.patterns, app.env)
		if err != nil {
			return nil, app.fail(s, issue.NewErrorContext().
				WithOperation("expand patterns").
				WithSuggestion("Quote '$' as '\\$' to keep it literal").
				WithSuggestion("Set entries.expand_env to false to disable expansion").
				WithIssue(issue.InvalidPatternId).
				Wrap(err).
				BuildError())
		}
		s.patterns = expanded
	}

	if len(s.patterns) == 0 {
		return nil, app.fail(s, issue.NewErrorContext().
			WithOperation("collect patterns").
			WithSuggestion("Pass patterns as arguments, e.g. globentries resolve 'src/**/*.js'").
			WithSuggestion("Or set entries.patterns in "+config.LocalConfigFile).
			WithIssue(issue.NoPatternsId).
			Wrap(errNoPatterns).
			BuildError())
	}

	for _, p := range s.patterns {
		if err := p.Validate(); err != nil {
			return nil, app.fail(s, issue.NewErrorContext().
				WithOperation("validate pattern").
				WithResource(p.String()).
				WithSuggestion("Check for unbalanced '[' or '{'").
				WithSuggestion("Escape literal metacharacters with '\\'").
				Wrap(err).
				BuildError())
		}
	}

	return s, nil
}

// aggregator builds the aggregator for the session's patterns and options.
func (s *session) aggregator() (*globentry.Aggregator, error) {
	return globentry.New(globentry.Config{
		Patterns: s.patterns,
		Match:    s.cfg.Entries.Match,
		Plugin:   s.cfg.Entries.Plugin,
		Logger:   s.logger,
	})
}

func (s *session) renderOptions() render.Options {
	return render.Options{
		Format:      s.cfg.UI.Format,
		ColorScheme: s.cfg.UI.ColorScheme,
	}
}

// patternList joins the session's patterns for error messages.
func (s *session) patternList() string {
	parts := make([]string, len(s.patterns))
	for i, p := range s.patterns {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// fail renders the guidance attached to err on stderr and returns err with
// its exit code.
func (app *App) fail(s *session, err error) error {
	if err == nil {
		return nil
	}

	verbose := false
	scheme := config.ColorSchemeAuto
	if s != nil {
		verbose = s.verbose
		scheme = s.cfg.UI.ColorScheme
	}

	id := issue.Classify(err)
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		if ae.HasSuggestions() || verbose {
			fmt.Fprintln(app.stderr, ae.Format(verbose))
		}
		if ae.Issue != 0 {
			id = ae.Issue
		}
	}

	if guidance := issue.Get(id); guidance != nil {
		if rendered, renderErr := guidance.Render(scheme.String()); renderErr == nil {
			fmt.Fprint(app.stderr, rendered)
		}
	}

	return withExitCode(err)
}
