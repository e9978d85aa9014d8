// SPDX-License-Identifier: MPL-2.0

package buildhook

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/invowk/globentries/pkg/globentry"
)

// PluginName is the name the plugin taps hooks under.
const PluginName = "WatchedGlobEntries"

type (
	// Plugin flushes a watch registry into every compilation's context
	// dependencies.
	Plugin struct {
		registry *globentry.WatchRegistry
		logger   *log.Logger
		name     string
	}

	// PluginOption configures a Plugin.
	PluginOption func(*Plugin)
)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) PluginOption {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithName overrides the name used when tapping hooks.
func WithName(name string) PluginOption {
	return func(p *Plugin) {
		if name != "" {
			p.name = name
		}
	}
}

// NewPlugin creates a plugin reading from registry. A nil registry is
// replaced by an empty one, which makes every flush a no-op.
func NewPlugin(registry *globentry.WatchRegistry, opts ...PluginOption) *Plugin {
	if registry == nil {
		registry = globentry.NewWatchRegistry()
	}
	p := &Plugin{
		registry: registry,
		logger:   log.New(io.Discard),
		name:     PluginName,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply registers the plugin's AfterCompile callback with compiler.
func (p *Plugin) Apply(compiler any) error {
	reg, err := detectRegistrar(compiler)
	if err != nil {
		return err
	}
	reg.registerAfterCompile(p.name, p.AfterCompile)
	p.logger.Debug("registered after-compile callback", "plugin", p.name, "host", reg.kind())
	return nil
}

// AfterCompile appends every registered watch directory to the
// compilation's context dependencies and then calls done(nil). It never
// fails. A list collection is replaced by its concatenation with the
// registry contents; a set collection receives cleaned paths. A missing
// collection is created as a set.
func (p *Plugin) AfterCompile(c *Compilation, done DoneFunc) {
	dirs := p.registry.Dirs()
	if c != nil {
		raw := make([]string, len(dirs))
		for i, d := range dirs {
			raw[i] = d.String()
		}

		switch deps := c.ContextDependencies.(type) {
		case *DependencyList:
			c.ContextDependencies = deps.Concat(raw...)
		case *DependencySet:
			if deps == nil {
				deps = NewDependencySet()
				c.ContextDependencies = deps
			}
			addAll(deps, raw)
		default:
			set := NewDependencySet()
			addAll(set, raw)
			c.ContextDependencies = set
		}
		p.logger.Debug("flushed watch directories", "count", len(raw))
	}
	done(nil)
}

func addAll(set *DependencySet, dirs []string) {
	for _, d := range dirs {
		set.Add(normalizeDir(d))
	}
}
