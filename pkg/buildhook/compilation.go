// SPDX-License-Identifier: MPL-2.0

package buildhook

import (
	"path/filepath"
	"slices"
)

type (
	// ContextDependencies is the directory collection of a compilation.
	// It is implemented by *DependencyList and *DependencySet only.
	ContextDependencies interface {
		// Dirs returns the collected directories in insertion order.
		Dirs() []string

		contextDependencies()
	}

	// DependencyList is the legacy, append-only ordered sequence of
	// directories. Duplicates and unnormalised paths are kept as given.
	DependencyList struct {
		dirs []string
	}

	// DependencySet is the insert-only set of directories used by current
	// hosts.
	DependencySet struct {
		dirs []string
		seen map[string]struct{}
	}

	// Compilation is the result of one compilation pass as seen by
	// after-compile callbacks.
	Compilation struct {
		ContextDependencies ContextDependencies
	}
)

// NewDependencyList creates a list holding dirs.
func NewDependencyList(dirs ...string) *DependencyList {
	return &DependencyList{dirs: slices.Clone(dirs)}
}

// Concat returns a new list with dirs appended, leaving l unchanged.
// A nil list concatenates like an empty one.
func (l *DependencyList) Concat(dirs ...string) *DependencyList {
	base := l.Dirs()
	out := make([]string, 0, len(base)+len(dirs))
	out = append(out, base...)
	out = append(out, dirs...)
	return &DependencyList{dirs: out}
}

// Dirs returns a copy of the listed directories.
func (l *DependencyList) Dirs() []string {
	if l == nil {
		return nil
	}
	return slices.Clone(l.dirs)
}

func (*DependencyList) contextDependencies() {}

// NewDependencySet creates a set holding dirs.
func NewDependencySet(dirs ...string) *DependencySet {
	s := &DependencySet{seen: make(map[string]struct{}, len(dirs))}
	for _, d := range dirs {
		s.Add(d)
	}
	return s
}

// Add inserts dir and reports whether it was not yet present.
func (s *DependencySet) Add(dir string) bool {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[dir]; ok {
		return false
	}
	s.seen[dir] = struct{}{}
	s.dirs = append(s.dirs, dir)
	return true
}

// Has reports whether dir is in the set.
func (s *DependencySet) Has(dir string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[dir]
	return ok
}

// Len returns the number of directories in the set.
func (s *DependencySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.dirs)
}

// Dirs returns the directories in insertion order.
func (s *DependencySet) Dirs() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.dirs)
}

func (*DependencySet) contextDependencies() {}

// normalizeDir is applied to directories before they enter a DependencySet.
func normalizeDir(dir string) string {
	return filepath.Clean(dir)
}
