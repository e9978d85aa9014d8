// SPDX-License-Identifier: MPL-2.0

package fspath_test

import (
	"path/filepath"
	"testing"

	"github.com/invowk/globentries/pkg/fspath"
	"github.com/invowk/globentries/pkg/types"
)

func TestJoin(t *testing.T) {
	t.Parallel()

	got := fspath.Join(types.FilesystemPath("src"), types.FilesystemPath("pages"))
	want := types.FilesystemPath(filepath.Join("src", "pages"))
	if got != want {
		t.Errorf("Join() = %q, want %q", got, want)
	}
}

func TestDirAndBase(t *testing.T) {
	t.Parallel()

	p := types.FilesystemPath(filepath.Join("src", "pages", "home.js"))
	if got, want := fspath.Dir(p), types.FilesystemPath(filepath.Join("src", "pages")); got != want {
		t.Errorf("Dir() = %q, want %q", got, want)
	}
	if got := fspath.Base(p); got != "home.js" {
		t.Errorf("Base() = %q, want %q", got, "home.js")
	}
}

func TestClean(t *testing.T) {
	t.Parallel()

	got := fspath.Clean(types.FilesystemPath("./src/../src/pages/"))
	want := types.FilesystemPath(filepath.Join("src", "pages"))
	if got != want {
		t.Errorf("Clean() = %q, want %q", got, want)
	}
}

func TestAbs(t *testing.T) {
	t.Parallel()

	got, err := fspath.Abs(types.FilesystemPath("src"))
	if err != nil {
		t.Fatalf("Abs() error: %v", err)
	}
	if !fspath.IsAbs(got) {
		t.Errorf("Abs() = %q, want an absolute path", got)
	}
}

func TestRel(t *testing.T) {
	t.Parallel()

	base := types.FilesystemPath(filepath.FromSlash("/a/b"))
	target := types.FilesystemPath(filepath.FromSlash("/a/b/c/d.js"))
	got, err := fspath.Rel(base, target)
	if err != nil {
		t.Fatalf("Rel() error: %v", err)
	}
	if want := types.FilesystemPath(filepath.FromSlash("c/d.js")); got != want {
		t.Errorf("Rel() = %q, want %q", got, want)
	}
}

func TestRel_MixedAbsRelativeFails(t *testing.T) {
	t.Parallel()

	if _, err := fspath.Rel("relative", types.FilesystemPath(filepath.FromSlash("/abs/file.js"))); err == nil {
		t.Error("Rel() expected error for relative base and absolute target")
	}
}

func TestTrimExt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   types.FilesystemPath
		want types.FilesystemPath
		ext  string
	}{
		{"c/d.js", "c/d", ".js"},
		{"c/d.min.js", "c/d.min", ".js"},
		{"c/Makefile", "c/Makefile", ""},
		{"c.d/e", "c.d/e", ""},
		{"js.js/x.js", "js.js/x", ".js"},
	}

	for _, tt := range tests {
		if got := fspath.Ext(tt.in); got != tt.ext {
			t.Errorf("Ext(%q) = %q, want %q", tt.in, got, tt.ext)
		}
		if got := fspath.TrimExt(tt.in); got != tt.want {
			t.Errorf("TrimExt(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlashRoundTrip(t *testing.T) {
	t.Parallel()

	native := types.FilesystemPath(filepath.Join("src", "pages", "home"))
	slashed := fspath.ToSlash(native)
	if slashed != "src/pages/home" {
		t.Errorf("ToSlash() = %q, want %q", slashed, "src/pages/home")
	}
	if back := fspath.FromSlash(slashed); back != native {
		t.Errorf("FromSlash() = %q, want %q", back, native)
	}
}
