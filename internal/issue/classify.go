// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"

	"github.com/invowk/globentries/pkg/buildhook"
	"github.com/invowk/globentries/pkg/cueutil"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

// Classify maps err to catalogued guidance. It returns 0 when no issue
// applies.
func Classify(err error) Id {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, types.ErrInvalidGlobPattern):
		return InvalidPatternId
	case errors.Is(err, globentry.ErrInvalidPatterns),
		errors.Is(err, globentry.ErrInvalidMatchOptions),
		errors.Is(err, globentry.ErrInvalidPluginOptions),
		errors.Is(err, globentry.ErrUnknownNaming):
		return InvalidOptionsId
	case errors.Is(err, buildhook.ErrUnsupportedCompiler):
		return UnsupportedHostId
	case errors.Is(err, cueutil.ErrFileTooLarge):
		return ConfigLoadFailedId
	case errors.Is(err, fs.ErrPermission):
		return PermissionDeniedId
	default:
		return 0
	}
}
