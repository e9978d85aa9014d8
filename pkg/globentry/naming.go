// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"fmt"

	"github.com/invowk/globentries/pkg/fspath"
	"github.com/invowk/globentries/pkg/types"
)

const (
	// NamingDefault selects DefaultNaming.
	NamingDefault = "default"
	// NamingBasename selects BasenameNaming.
	NamingBasename = "basename"
)

type (
	// EntryID is the logical name of a build entry, e.g. "blog/post".
	EntryID string

	// EntryMap maps entry identifiers to the matched file paths.
	EntryMap map[EntryID]types.FilesystemPath

	// NamingFunc derives an entry identifier from a pattern's root directory
	// and one of its matched files. It must not panic for files outside root.
	NamingFunc func(root, file types.FilesystemPath) EntryID
)

// String returns the string representation of the EntryID.
func (id EntryID) String() string { return string(id) }

// DefaultNaming makes file relative to root, removes its extension and joins
// the remaining segments with "/". Files that cannot be made relative to root
// keep their full path.
func DefaultNaming(root, file types.FilesystemPath) EntryID {
	rel, err := fspath.Rel(root, file)
	if err != nil {
		rel = file
	}
	return EntryID(fspath.ToSlash(fspath.TrimExt(rel)))
}

// BasenameNaming uses the file's base name without extension, ignoring the
// directory structure below root.
func BasenameNaming(_, file types.FilesystemPath) EntryID {
	return EntryID(fspath.TrimExt(types.FilesystemPath(fspath.Base(file))))
}

// NamingByName returns the built-in strategy registered under name.
// The empty name selects the default strategy.
func NamingByName(name string) (NamingFunc, error) {
	switch name {
	case "", NamingDefault:
		return DefaultNaming, nil
	case NamingBasename:
		return BasenameNaming, nil
	default:
		return nil, fmt.Errorf("%w %q (expected %q or %q)", ErrUnknownNaming, name, NamingDefault, NamingBasename)
	}
}
