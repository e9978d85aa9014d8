// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/invowk/globentries/pkg/types"
)

func TestDefaultNaming(t *testing.T) {
	t.Parallel()

	p := func(s string) types.FilesystemPath { return types.FilesystemPath(filepath.FromSlash(s)) }

	tests := []struct {
		name string
		root types.FilesystemPath
		file types.FilesystemPath
		want EntryID
	}{
		{"nested file", p("/a/b"), p("/a/b/c/d.js"), "c/d"},
		{"direct child", p("/a/b"), p("/a/b/index.ts"), "index"},
		{"only last extension is removed", p("src"), p("src/vendor/lib.min.js"), "vendor/lib.min"},
		{"extension-like directory is kept", p("src"), p("src/v1.2/main.js"), "v1.2/main"},
		{"no extension", p("src"), p("src/bin/run"), "bin/run"},
		{"dot root", p("."), p("main.go"), "main"},
		{"deeply nested", p("src"), p("src/a/b/c/d/e.jsx"), "a/b/c/d/e"},
		{"sibling of root", p("src/a"), p("src/b/x.js"), "../b/x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DefaultNaming(tt.root, tt.file); got != tt.want {
				t.Errorf("DefaultNaming(%q, %q) = %q, want %q", tt.root, tt.file, got, tt.want)
			}
		})
	}
}

func TestDefaultNaming_FileNotUnderRootDoesNotPanic(t *testing.T) {
	t.Parallel()

	// A relative root cannot be related to an absolute file; the full path
	// (minus extension) is used instead.
	file := types.FilesystemPath(filepath.FromSlash("/srv/app/main.js"))
	got := DefaultNaming("src", file)
	if want := EntryID("/srv/app/main"); got != want {
		t.Errorf("DefaultNaming() = %q, want %q", got, want)
	}
}

func TestBasenameNaming(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file types.FilesystemPath
		want EntryID
	}{
		{types.FilesystemPath(filepath.FromSlash("src/pages/home.js")), "home"},
		{types.FilesystemPath(filepath.FromSlash("src/a/b/style.module.css")), "style.module"},
		{types.FilesystemPath(filepath.FromSlash("src/README")), "README"},
	}

	for _, tt := range tests {
		if got := BasenameNaming("src", tt.file); got != tt.want {
			t.Errorf("BasenameNaming(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestNamingByName(t *testing.T) {
	t.Parallel()

	file := types.FilesystemPath(filepath.FromSlash("src/pages/home.js"))

	for _, tc := range []struct {
		name string
		want EntryID
	}{
		{"", "pages/home"},
		{NamingDefault, "pages/home"},
		{NamingBasename, "home"},
	} {
		fn, err := NamingByName(tc.name)
		if err != nil {
			t.Fatalf("NamingByName(%q) error: %v", tc.name, err)
		}
		if got := fn("src", file); got != tc.want {
			t.Errorf("NamingByName(%q) produced %q, want %q", tc.name, got, tc.want)
		}
	}

	if _, err := NamingByName("hashed"); !errors.Is(err, ErrUnknownNaming) {
		t.Errorf("NamingByName(\"hashed\") error = %v, want ErrUnknownNaming", err)
	}
}
