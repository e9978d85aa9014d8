// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/invowk/globentries/internal/render"
	"github.com/invowk/globentries/pkg/fspath"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

func newRootsCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "roots [pattern...]",
		Short: "Print the root directory of each pattern",
		Long: `Print the directory each pattern is rooted at: the longest leading run of
path segments without glob metacharacters. These are the directories a
build host is asked to watch. The filesystem is not accessed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.newSession(cmd, rootFlags, args)
			if err != nil {
				return err
			}
			roots := patternRoots(s.patterns, s.cfg.Entries.Match.Cwd)
			return withExitCode(render.Roots(app.stdout, s.patterns, roots, s.renderOptions()))
		},
	}
}

// patternRoots returns the root of each pattern, joined onto cwd for
// relative roots when cwd is set.
func patternRoots(patterns []types.GlobPattern, cwd types.FilesystemPath) []types.FilesystemPath {
	roots := make([]types.FilesystemPath, len(patterns))
	for i, p := range patterns {
		root := globentry.RootDir(p)
		if cwd != "" && !fspath.IsAbs(root) {
			root = fspath.Join(cwd, root)
		}
		roots[i] = root
	}
	return roots
}
