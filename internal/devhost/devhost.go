// SPDX-License-Identifier: MPL-2.0

// Package devhost is a minimal in-process build host. Each Compile call
// computes the entry mapping, hands a fresh compilation to the registered
// after-compile callbacks and returns the directories they reported.
//
// A Host speaks either host API shape: by default it exposes a hook
// collection, and in legacy mode it only accepts callbacks registered by
// event name.
package devhost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/invowk/globentries/pkg/buildhook"
	"github.com/invowk/globentries/pkg/globentry"
)

// ErrNoEntrySource is returned by Compile when the host has no entry source.
var ErrNoEntrySource = errors.New("no entry source")

type (
	// EntrySource produces the entry mapping for one compilation.
	EntrySource func() (globentry.EntryMap, error)

	// Option configures a Host.
	Option func(*Host)

	// Result is the outcome of one compilation pass.
	Result struct {
		// Pass counts compilations, starting at 1.
		Pass int
		// Entries is the mapping the pass compiled.
		Entries globentry.EntryMap
		// ContextDependencies are the directories reported by callbacks,
		// in insertion order.
		ContextDependencies []string
	}

	// Host implements buildhook.HookedCompiler and buildhook.LegacyCompiler.
	Host struct {
		source EntrySource
		logger *log.Logger
		legacy bool

		mu        sync.Mutex
		hooks     *buildhook.Hooks
		callbacks []buildhook.AfterCompileFunc
		pass      int
	}
)

// WithLegacy makes the host expose only legacy callback registration and
// hand list-shaped dependency collections to callbacks.
func WithLegacy() Option {
	return func(h *Host) { h.legacy = true }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a host compiling the entries produced by source.
func New(source EntrySource, opts ...Option) *Host {
	h := &Host{
		source: source,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(h)
	}
	if !h.legacy {
		h.hooks = buildhook.NewHooks()
	}
	return h
}

// CompilerHooks returns the hook collection, or nil in legacy mode.
func (h *Host) CompilerHooks() *buildhook.Hooks {
	return h.hooks
}

// Plugin registers fn for event. Only buildhook.AfterCompileEvent is
// dispatched; other events are accepted and never fire.
func (h *Host) Plugin(event string, fn buildhook.AfterCompileFunc) {
	if event != buildhook.AfterCompileEvent {
		h.logger.Warn("ignoring callback for unknown event", "event", event)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = append(h.callbacks, fn)
}

// Legacy reports whether the host runs in legacy mode.
func (h *Host) Legacy() bool {
	return h.legacy
}

// Compile runs one compilation pass. It fails when the entry source fails,
// when an after-compile callback reports an error, or when ctx is done
// before every callback finished.
func (h *Host) Compile(ctx context.Context) (*Result, error) {
	if h.source == nil {
		return nil, ErrNoEntrySource
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := h.source()
	if err != nil {
		return nil, fmt.Errorf("compute entries: %w", err)
	}

	h.mu.Lock()
	h.pass++
	pass := h.pass
	hook := h.afterCompile()
	h.mu.Unlock()

	c := &buildhook.Compilation{ContextDependencies: h.newDependencies()}

	done := make(chan error, 1)
	hook.CallAsync(c, func(err error) { done <- err })

	select {
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("after-compile: %w", err)
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var deps []string
	if c.ContextDependencies != nil {
		deps = c.ContextDependencies.Dirs()
	}
	h.logger.Debug("compiled", "pass", pass, "entries", len(entries), "context_dependencies", len(deps))

	return &Result{Pass: pass, Entries: entries, ContextDependencies: deps}, nil
}

// afterCompile returns the hook to call for this pass. Legacy callbacks are
// wrapped in a throwaway hook so both modes share series semantics.
// Callers hold h.mu.
func (h *Host) afterCompile() *buildhook.AsyncHook {
	if h.hooks != nil {
		return h.hooks.AfterCompile
	}
	hook := &buildhook.AsyncHook{}
	for i, fn := range h.callbacks {
		hook.TapAsync(fmt.Sprintf("legacy-%d", i), fn)
	}
	return hook
}

func (h *Host) newDependencies() buildhook.ContextDependencies {
	if h.legacy {
		return buildhook.NewDependencyList()
	}
	return buildhook.NewDependencySet()
}
