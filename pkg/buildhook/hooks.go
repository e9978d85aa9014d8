// SPDX-License-Identifier: MPL-2.0

package buildhook

import "sync"

// AfterCompileEvent is the event name legacy hosts register callbacks under.
const AfterCompileEvent = "after-compile"

type (
	// DoneFunc signals that an asynchronous callback has finished. A non-nil
	// error aborts the remaining callbacks of the hook.
	DoneFunc func(err error)

	// AfterCompileFunc is invoked after a compilation pass. It must call done
	// exactly once.
	AfterCompileFunc func(c *Compilation, done DoneFunc)

	// AsyncHook runs tapped callbacks in series, each one started only after
	// the previous one called its DoneFunc.
	AsyncHook struct {
		mu   sync.Mutex
		taps []tap
	}

	// Hooks is the lifecycle hook collection of a HookedCompiler.
	Hooks struct {
		AfterCompile *AsyncHook
	}

	tap struct {
		name string
		fn   AfterCompileFunc
	}
)

// NewHooks creates a hook collection with every hook initialised.
func NewHooks() *Hooks {
	return &Hooks{AfterCompile: &AsyncHook{}}
}

// TapAsync appends fn under the given plugin name.
func (h *AsyncHook) TapAsync(name string, fn AfterCompileFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.taps = append(h.taps, tap{name: name, fn: fn})
}

// Names returns the plugin names tapped into the hook, in call order.
func (h *AsyncHook) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	names := make([]string, len(h.taps))
	for i, t := range h.taps {
		names[i] = t.name
	}
	return names
}

// CallAsync runs the tapped callbacks in series and then calls final with
// nil, or with the first error a callback reported.
func (h *AsyncHook) CallAsync(c *Compilation, final DoneFunc) {
	h.mu.Lock()
	taps := make([]tap, len(h.taps))
	copy(taps, h.taps)
	h.mu.Unlock()

	var next func(i int)
	next = func(i int) {
		if i == len(taps) {
			final(nil)
			return
		}
		var once sync.Once
		taps[i].fn(c, func(err error) {
			once.Do(func() {
				if err != nil {
					final(err)
					return
				}
				next(i + 1)
			})
		})
	}
	next(0)
}
