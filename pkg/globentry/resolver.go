// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/invowk/globentries/pkg/types"
)

// Resolve expands a single pattern and names every match.
//
// The pattern and options are validated before the filesystem is touched.
// Matches are visited in doublestar's lexical walk order and inserted with
// overwrite semantics, so when two files map to the same identifier the one
// matched last wins. A pattern without matches yields an empty map. A nil
// naming func selects DefaultNaming.
func Resolve(pattern types.GlobPattern, match MatchOptions, naming NamingFunc) (types.FilesystemPath, EntryMap, error) {
	if err := pattern.Validate(); err != nil {
		return "", nil, err
	}
	if err := match.Validate(); err != nil {
		return "", nil, err
	}
	if naming == nil {
		naming = DefaultNaming
	}

	root := RootDir(pattern)
	files, err := expand(pattern, match)
	if err != nil {
		return root, nil, err
	}

	entries := make(EntryMap, len(files))
	for _, file := range files {
		entries[naming(root, file)] = file
	}
	return root, entries, nil
}

// expand runs the glob engine. Relative patterns are anchored at match.Cwd
// when it is set and the results are made relative to it again, so the
// returned paths always share the form of the pattern.
func expand(pattern types.GlobPattern, match MatchOptions) ([]types.FilesystemPath, error) {
	p := string(pattern)
	cwd := string(match.Cwd)
	rebase := cwd != "" && !filepath.IsAbs(p)
	if rebase {
		p = filepath.Join(cwd, p)
	}

	matches, err := doublestar.FilepathGlob(p, match.globOptions()...)
	if err != nil {
		return nil, fmt.Errorf("expand pattern %q: %w", pattern, err)
	}

	files := make([]types.FilesystemPath, 0, len(matches))
	for _, m := range matches {
		if rebase {
			if rel, relErr := filepath.Rel(cwd, m); relErr == nil {
				m = rel
			}
		}
		files = append(files, types.FilesystemPath(m))
	}
	return files, nil
}
