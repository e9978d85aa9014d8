// SPDX-License-Identifier: MPL-2.0

// Package patternexpand expands environment variable references in glob
// patterns before they reach the resolver.
//
// Expansion uses mvdan.cc/sh here-document rules: $VAR, ${VAR} and
// ${VAR:-default} are substituted, \$ yields a literal '$', glob
// metacharacters and backslash escapes in front of them are left alone, and
// $(...) command substitution is rejected.
package patternexpand

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/invowk/globentries/pkg/types"
)

// ErrExpand is the sentinel error wrapped by ExpandError.
var ErrExpand = errors.New("pattern expansion failed")

type (
	// Env resolves a variable name to its value. Unset variables resolve to
	// the empty string.
	Env func(name string) string

	// ExpandError reports the pattern that could not be expanded.
	ExpandError struct {
		Pattern types.GlobPattern
		Cause   error
	}
)

// OSEnv resolves variables from the process environment.
func OSEnv(name string) string { return os.Getenv(name) }

// MapEnv resolves variables from m.
func MapEnv(m map[string]string) Env {
	return func(name string) string { return m[name] }
}

// Expand substitutes variable references in pattern. Patterns without a
// '$' are returned unchanged.
func Expand(pattern types.GlobPattern, env Env) (types.GlobPattern, error) {
	s := pattern.String()
	if !strings.Contains(s, "$") {
		return pattern, nil
	}
	if env == nil {
		env = OSEnv
	}
	out, err := shell.Expand(protectEscapes(s), env)
	if err != nil {
		return "", &ExpandError{Pattern: pattern, Cause: err}
	}
	return types.GlobPattern(out), nil
}

// ExpandAll expands every pattern, stopping at the first failure.
func ExpandAll(patterns []types.GlobPattern, env Env) ([]types.GlobPattern, error) {
	out := make([]types.GlobPattern, len(patterns))
	for i, p := range patterns {
		expanded, err := Expand(p, env)
		if err != nil {
			return nil, err
		}
		out[i] = expanded
	}
	return out, nil
}

// protectEscapes doubles backslashes and escapes backticks so the shell
// passes glob escapes through and never runs a backquoted command. An
// escaped '$' is kept as an escape so it expands to a literal '$'.
func protectEscapes(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) && s[i+1] == '$' {
				b.WriteString(`\$`)
				i++
				continue
			}
			b.WriteString(`\\`)
		case '`':
			b.WriteString("\\`")
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Error implements the error interface.
func (e *ExpandError) Error() string {
	return fmt.Sprintf("expand pattern %q: %v", e.Pattern, e.Cause)
}

// Unwrap returns ErrExpand and the cause.
func (e *ExpandError) Unwrap() []error { return []error{ErrExpand, e.Cause} }
