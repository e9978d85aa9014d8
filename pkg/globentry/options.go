// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/invowk/globentries/pkg/fspath"
	"github.com/invowk/globentries/pkg/types"
)

type (
	// MatchOptions are forwarded to the doublestar glob engine. Apart from
	// Cwd, which relative patterns are expanded against, the resolver does
	// not interpret them.
	MatchOptions struct {
		// Cwd is the directory relative patterns are resolved against.
		// Matched paths stay relative to it. Empty means the process working
		// directory.
		Cwd types.FilesystemPath `json:"cwd,omitempty" mapstructure:"cwd"`
		// CaseInsensitive matches names regardless of case.
		CaseInsensitive bool `json:"case_insensitive,omitempty" mapstructure:"case_insensitive"`
		// FilesOnly drops directories from the matches.
		FilesOnly bool `json:"files_only,omitempty" mapstructure:"files_only"`
		// NoFollow does not descend into symlinked directories.
		NoFollow bool `json:"no_follow,omitempty" mapstructure:"no_follow"`
		// NoHidden skips dot-files and dot-directories unless the pattern
		// names them explicitly.
		NoHidden bool `json:"no_hidden,omitempty" mapstructure:"no_hidden"`
		// SkipIOErrors skips unreadable paths (e.g. permission denied)
		// instead of returning the I/O error to the caller.
		SkipIOErrors bool `json:"skip_io_errors,omitempty" mapstructure:"skip_io_errors"`
		// FailOnPatternNotExist fails when the pattern's root does not exist.
		FailOnPatternNotExist bool `json:"fail_on_pattern_not_exist,omitempty" mapstructure:"fail_on_pattern_not_exist"`
	}

	// PluginOptions configure an Aggregator. Only the naming strategy is
	// recognized; everything else in a decoded options object is ignored.
	PluginOptions struct {
		// NamingCallback replaces the built-in naming strategy entirely.
		NamingCallback NamingFunc `json:"-" mapstructure:"-"`
		// Naming selects a built-in strategy by name ("default", "basename")
		// when NamingCallback is nil.
		Naming string `json:"naming,omitempty" mapstructure:"naming"`
		// BasenameAsEntryID is shorthand for Naming "basename".
		BasenameAsEntryID bool `json:"basename_as_entry_id,omitempty" mapstructure:"basename_as_entry_id"`
	}
)

// Validate checks the match options without touching the filesystem.
func (o MatchOptions) Validate() error {
	if o.Cwd != "" {
		if err := o.Cwd.Validate(); err != nil {
			return &InvalidMatchOptionsError{Reason: "cwd", Cause: err}
		}
	}
	return nil
}

// globOptions translates the options into doublestar's functional options.
func (o MatchOptions) globOptions() []doublestar.GlobOption {
	var opts []doublestar.GlobOption
	if o.CaseInsensitive {
		opts = append(opts, doublestar.WithCaseInsensitive())
	}
	if o.FilesOnly {
		opts = append(opts, doublestar.WithFilesOnly())
	}
	if o.NoFollow {
		opts = append(opts, doublestar.WithNoFollow())
	}
	if o.NoHidden {
		opts = append(opts, doublestar.WithNoHidden())
	}
	if !o.SkipIOErrors {
		opts = append(opts, doublestar.WithFailOnIOErrors())
	}
	if o.FailOnPatternNotExist {
		opts = append(opts, doublestar.WithFailOnPatternNotExist())
	}
	return opts
}

// watchDir returns root as the build host should watch it: joined onto Cwd
// when root is relative and a Cwd is configured.
func (o MatchOptions) watchDir(root types.FilesystemPath) types.FilesystemPath {
	if o.Cwd == "" || fspath.IsAbs(root) {
		return root
	}
	return fspath.Join(o.Cwd, root)
}

// namingFunc returns the strategy selected by the options: an explicit
// callback, then a named built-in, then the basename shorthand, then the
// default.
func (o PluginOptions) namingFunc() (NamingFunc, error) {
	switch {
	case o.NamingCallback != nil:
		return o.NamingCallback, nil
	case o.Naming != "":
		fn, err := NamingByName(o.Naming)
		if err != nil {
			return nil, &InvalidPluginOptionsError{Reason: "naming", Cause: err}
		}
		return fn, nil
	case o.BasenameAsEntryID:
		return BasenameNaming, nil
	default:
		return DefaultNaming, nil
	}
}
