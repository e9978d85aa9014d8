// SPDX-License-Identifier: MPL-2.0

package benchmark

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/internal/devhost"
	"github.com/invowk/globentries/internal/testutil"
	"github.com/invowk/globentries/pkg/buildhook"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

// sampleConfig is a representative globentries.cue exercising every section.
const sampleConfig = `
entries: {
	patterns: ["src/pages/**/*.js", "src/widgets/*/index.ts", "src/{admin,shop}/entry.js"]
	match: {files_only: true, no_hidden: true}
	plugin: {naming: "default"}
	expand_env: false
}
watch: {
	debounce: "250ms"
	clear_screen: false
	ignore: ["**/*.map", "**/dist/**"]
	legacy_host: false
}
ui: {verbose: false, format: "json", color_scheme: "auto"}
`

// projectTree creates a synthetic front-end project below dir and returns
// the number of files that the sample patterns match.
func projectTree(b *testing.B, dir string) int {
	b.Helper()
	var files []string
	for i := range 20 {
		for j := range 10 {
			files = append(files, fmt.Sprintf("src/pages/section%02d/page%02d.js", i, j))
		}
		files = append(files, fmt.Sprintf("src/widgets/w%02d/index.ts", i))
		files = append(files, fmt.Sprintf("src/widgets/w%02d/style.css", i))
	}
	files = append(files, "src/admin/entry.js", "src/shop/entry.js", "src/pages/.draft.js")
	testutil.TouchFiles(b, dir, files...)
	return 20*10 + 20 + 2
}

func samplePatterns() []types.GlobPattern {
	return []types.GlobPattern{"src/pages/**/*.js", "src/widgets/*/index.ts", "src/{admin,shop}/entry.js"}
}

// BenchmarkConfigLoad measures CUE parsing, schema validation and decoding
// into the typed configuration.
func BenchmarkConfigLoad(b *testing.B) {
	dir := b.TempDir()
	testutil.WriteTree(b, dir, map[string]string{config.LocalConfigFile: sampleConfig})
	provider := config.NewProvider()
	opts := config.LoadOptions{
		WorkDir:       types.FilesystemPath(dir),
		ConfigDirPath: types.FilesystemPath(filepath.Join(dir, "user")),
	}

	b.ResetTimer()
	for b.Loop() {
		if _, err := provider.Load(context.Background(), opts); err != nil {
			b.Fatalf("Load failed: %v", err)
		}
	}
}

// BenchmarkRootDir measures root detection, which runs once per pattern on
// every compilation.
func BenchmarkRootDir(b *testing.B) {
	patterns := append(samplePatterns(), "/abs/project/src/**/[a-z]*.tsx", "*.js")

	b.ResetTimer()
	for b.Loop() {
		for _, p := range patterns {
			_ = globentry.RootDir(p)
		}
	}
}

// BenchmarkResolve measures expansion of a single recursive pattern.
func BenchmarkResolve(b *testing.B) {
	dir := b.TempDir()
	projectTree(b, dir)
	match := globentry.MatchOptions{Cwd: types.FilesystemPath(dir), NoHidden: true}

	b.ResetTimer()
	for b.Loop() {
		_, entries, err := globentry.Resolve("src/pages/**/*.js", match, globentry.DefaultNaming)
		if err != nil {
			b.Fatalf("Resolve failed: %v", err)
		}
		if len(entries) != 200 {
			b.Fatalf("Resolve returned %d entries, want 200", len(entries))
		}
	}
}

// BenchmarkAggregatorEntries measures a full entry computation over several
// patterns, including registry bookkeeping.
func BenchmarkAggregatorEntries(b *testing.B) {
	dir := b.TempDir()
	want := projectTree(b, dir)

	agg, err := globentry.New(globentry.Config{
		Patterns: samplePatterns(),
		Match:    globentry.MatchOptions{Cwd: types.FilesystemPath(dir), NoHidden: true, FilesOnly: true},
	})
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	b.ResetTimer()
	for b.Loop() {
		entries, err := agg.Entries()
		if err != nil {
			b.Fatalf("Entries failed: %v", err)
		}
		if len(entries) != want {
			b.Fatalf("Entries returned %d entries, want %d", len(entries), want)
		}
	}
}

// BenchmarkCompile measures a build-host compilation pass: entry
// computation plus the after-compile flush, for both host shapes.
func BenchmarkCompile(b *testing.B) {
	dir := b.TempDir()
	projectTree(b, dir)

	for _, legacy := range []bool{false, true} {
		name := "hooks"
		if legacy {
			name = "legacy"
		}
		b.Run(name, func(b *testing.B) {
			agg, err := globentry.New(globentry.Config{
				Patterns: samplePatterns(),
				Match:    globentry.MatchOptions{Cwd: types.FilesystemPath(dir)},
			})
			if err != nil {
				b.Fatalf("New failed: %v", err)
			}

			var opts []devhost.Option
			if legacy {
				opts = append(opts, devhost.WithLegacy())
			}
			host := devhost.New(agg.Entries, opts...)
			if err := buildhook.NewPlugin(agg.Registry()).Apply(host); err != nil {
				b.Fatalf("Apply failed: %v", err)
			}

			ctx := context.Background()
			b.ResetTimer()
			for b.Loop() {
				res, err := host.Compile(ctx)
				if err != nil {
					b.Fatalf("Compile failed: %v", err)
				}
				if len(res.ContextDependencies) == 0 {
					b.Fatal("Compile reported no context dependencies")
				}
			}
		})
	}
}
