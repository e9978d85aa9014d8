// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/invowk/globentries/pkg/fspath"
	"github.com/invowk/globentries/pkg/types"
)

// RootDir returns the longest directory prefix of pattern that contains no
// wildcard metacharacter. It depends only on the pattern string:
//
//	"src/pages/**/*.js" -> "src/pages"
//	"src/index.js"      -> "src"
//	"*.js"              -> "."
func RootDir(pattern types.GlobPattern) types.FilesystemPath {
	base, _ := doublestar.SplitPattern(fspath.ToSlash(types.FilesystemPath(pattern)))
	return fspath.FromSlash(base)
}
