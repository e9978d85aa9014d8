// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"slices"
	"sync"

	"github.com/invowk/globentries/pkg/types"
)

// WatchRegistry collects the root directories touched by glob expansion.
// It only grows: directories are added once, in first-seen order, and are
// never removed. The zero value is not usable; call NewWatchRegistry.
// A WatchRegistry is safe for concurrent use.
type WatchRegistry struct {
	mu   sync.Mutex
	dirs []types.FilesystemPath
	seen map[types.FilesystemPath]struct{}
}

// NewWatchRegistry creates an empty registry.
func NewWatchRegistry() *WatchRegistry {
	return &WatchRegistry{seen: make(map[types.FilesystemPath]struct{})}
}

// Register adds dir unless it is already present and reports whether it was
// added. Paths are compared verbatim.
func (r *WatchRegistry) Register(dir types.FilesystemPath) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[dir]; ok {
		return false
	}
	r.seen[dir] = struct{}{}
	r.dirs = append(r.dirs, dir)
	return true
}

// Dirs returns a copy of the registered directories in insertion order.
// Reading does not clear the registry.
func (r *WatchRegistry) Dirs() []types.FilesystemPath {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.dirs)
}

// Len returns the number of registered directories.
func (r *WatchRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dirs)
}
