// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidGlobPattern is the sentinel error wrapped by InvalidGlobPatternError.
var ErrInvalidGlobPattern = errors.New("invalid glob pattern")

type (
	// GlobPattern is a doublestar-compatible filesystem glob such as
	// "src/**/*.js" or "assets/{css,js}/*.min.*".
	GlobPattern string

	// InvalidGlobPatternError is returned when a GlobPattern is empty,
	// whitespace-only, or syntactically malformed (e.g., an unclosed "[").
	InvalidGlobPatternError struct {
		Value  GlobPattern
		Reason string
	}
)

// String returns the string representation of the GlobPattern.
func (g GlobPattern) String() string { return string(g) }

// Validate checks the pattern without touching the filesystem.
func (g GlobPattern) Validate() error {
	if strings.TrimSpace(string(g)) == "" {
		return &InvalidGlobPatternError{Value: g, Reason: "must be non-empty"}
	}
	if !doublestar.ValidatePathPattern(filepath.ToSlash(string(g))) {
		return &InvalidGlobPatternError{Value: g, Reason: "malformed pattern syntax"}
	}
	return nil
}

// HasMeta reports whether the pattern contains any unescaped wildcard
// metacharacter. A pattern without one names at most a single file.
func (g GlobPattern) HasMeta() bool {
	s := filepath.ToSlash(string(g))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// Error implements the error interface for InvalidGlobPatternError.
func (e *InvalidGlobPatternError) Error() string {
	return fmt.Sprintf("invalid glob pattern %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidGlobPattern for errors.Is() compatibility.
func (e *InvalidGlobPatternError) Unwrap() error { return ErrInvalidGlobPattern }
