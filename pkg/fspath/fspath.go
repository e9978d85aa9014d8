// SPDX-License-Identifier: MPL-2.0

// Package fspath provides typed wrappers around path/filepath functions that
// accept and return types.FilesystemPath, so the resolver and the build hook
// never convert back and forth between plain strings at each call site.
package fspath

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/invowk/globentries/pkg/types"
)

// Join wraps filepath.Join, accepting and returning types.FilesystemPath.
func Join(elem ...types.FilesystemPath) types.FilesystemPath {
	strs := make([]string, len(elem))
	for i, e := range elem {
		strs[i] = string(e)
	}
	return types.FilesystemPath(filepath.Join(strs...))
}

// Dir wraps filepath.Dir for FilesystemPath.
func Dir(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Dir(string(p)))
}

// Base wraps filepath.Base for FilesystemPath.
func Base(p types.FilesystemPath) string {
	return filepath.Base(string(p))
}

// Abs wraps filepath.Abs for FilesystemPath. Returns an error if the
// underlying OS call fails.
func Abs(p types.FilesystemPath) (types.FilesystemPath, error) {
	abs, err := filepath.Abs(string(p))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}
	return types.FilesystemPath(abs), nil
}

// Clean wraps filepath.Clean for FilesystemPath.
func Clean(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(filepath.Clean(string(p)))
}

// IsAbs wraps filepath.IsAbs for FilesystemPath.
func IsAbs(p types.FilesystemPath) bool {
	return filepath.IsAbs(string(p))
}

// Rel wraps filepath.Rel for FilesystemPath.
func Rel(base, target types.FilesystemPath) (types.FilesystemPath, error) {
	rel, err := filepath.Rel(string(base), string(target))
	if err != nil {
		return "", fmt.Errorf("relativizing %q against %q: %w", target, base, err)
	}
	return types.FilesystemPath(rel), nil
}

// Ext wraps filepath.Ext: the suffix starting at the final dot of the last
// path element, or "" when there is none.
func Ext(p types.FilesystemPath) string {
	return filepath.Ext(string(p))
}

// TrimExt removes exactly the extension reported by Ext from the end of p.
func TrimExt(p types.FilesystemPath) types.FilesystemPath {
	return types.FilesystemPath(strings.TrimSuffix(string(p), Ext(p)))
}

// ToSlash wraps filepath.ToSlash, returning the slash-separated form.
func ToSlash(p types.FilesystemPath) string {
	return filepath.ToSlash(string(p))
}

// FromSlash wraps filepath.FromSlash, converting a slash-separated string
// into the OS-specific form.
func FromSlash(s string) types.FilesystemPath {
	return types.FilesystemPath(filepath.FromSlash(s))
}
