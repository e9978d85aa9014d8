// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/invowk/globentries/pkg/types"
)

type (
	// Config holds the parameters for an Aggregator.
	Config struct {
		// Patterns are expanded in order on every Entries call. Identifiers
		// produced by later patterns overwrite those of earlier ones.
		Patterns []types.GlobPattern

		// Match is forwarded to the glob engine for every pattern.
		Match MatchOptions

		// Plugin selects the naming strategy.
		Plugin PluginOptions

		// Registry receives each pattern's root directory. A nil value gets a
		// fresh registry, available through Aggregator.Registry.
		Registry *WatchRegistry

		// Logger receives debug output. nil discards it.
		Logger *log.Logger
	}

	// Aggregator resolves a fixed set of patterns into one EntryMap. The
	// configuration is validated once by New; every call to Entries expands
	// the patterns again against the current filesystem state.
	Aggregator struct {
		patterns []types.GlobPattern
		match    MatchOptions
		naming   NamingFunc
		registry *WatchRegistry
		logger   *log.Logger
	}
)

// New validates the plugin options and returns an Aggregator. Patterns and
// match options are validated by each Entries call instead, before any
// filesystem access.
func New(cfg Config) (*Aggregator, error) {
	naming, err := cfg.Plugin.namingFunc()
	if err != nil {
		return nil, err
	}

	registry := cfg.Registry
	if registry == nil {
		registry = NewWatchRegistry()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Aggregator{
		patterns: slices.Clone(cfg.Patterns),
		match:    cfg.Match,
		naming:   naming,
		registry: registry,
		logger:   logger,
	}, nil
}

// GetEntries validates cfg and returns a function that resolves the current
// entry mapping each time it is called. It is the form a build host's entry
// configuration expects.
func GetEntries(cfg Config) (func() (EntryMap, error), error) {
	a, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return a.Entries, nil
}

// Entries expands every pattern and merges the results.
//
// All patterns and the match options are validated before the first glob
// runs. Each pattern's root directory is registered in the watch registry
// (once; later calls are no-ops for known roots). The returned map is owned
// by the caller.
func (a *Aggregator) Entries() (EntryMap, error) {
	for _, p := range a.patterns {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if err := a.match.Validate(); err != nil {
		return nil, err
	}

	entries := make(EntryMap)
	for _, p := range a.patterns {
		if dir := a.match.watchDir(RootDir(p)); a.registry.Register(dir) {
			a.logger.Debug("registered watch directory", "dir", dir, "pattern", p)
		}

		_, partial, err := Resolve(p, a.match, a.naming)
		if err != nil {
			return nil, err
		}
		a.logger.Debug("resolved pattern", "pattern", p, "matches", len(partial))
		maps.Copy(entries, partial)
	}
	return entries, nil
}

// Patterns returns a copy of the configured patterns.
func (a *Aggregator) Patterns() []types.GlobPattern {
	return slices.Clone(a.patterns)
}

// Registry returns the watch registry the aggregator records roots in.
func (a *Aggregator) Registry() *WatchRegistry {
	return a.registry
}
