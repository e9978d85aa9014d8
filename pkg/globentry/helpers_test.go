// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"path/filepath"
	"testing"

	"github.com/invowk/globentries/internal/testutil"
	"github.com/invowk/globentries/pkg/types"
)

// writeTree creates placeholder files (slash-separated paths) below dir.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()
	testutil.TouchFiles(t, dir, files...)
}

// pattern joins dir and a slash-separated glob into a pattern for dir.
func pattern(dir, glob string) types.GlobPattern {
	return types.GlobPattern(filepath.ToSlash(dir) + "/" + glob)
}

// native converts a slash-separated path below dir into a FilesystemPath.
func native(dir, rel string) types.FilesystemPath {
	return types.FilesystemPath(filepath.Join(dir, filepath.FromSlash(rel)))
}
