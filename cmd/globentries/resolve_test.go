// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"path/filepath"
	"strings"
	"testing"

	"github.com/invowk/globentries/internal/testutil"
)

func decodeEntries(t *testing.T, out string) map[string]string {
	t.Helper()
	var got map[string]string
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not a JSON object: %v\n%s", err, out)
	}
	return got
}

func TestResolve_Flags(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"pages/index.js":     "",
		"pages/blog/post.js": "",
		"pages/.draft.js":    "",
		"pages/Upper.JS":     "",
		"alt/index.js":       "",
	}

	tests := []struct {
		name string
		args []string
		want map[string]string
	}{
		{
			name: "default naming",
			args: []string{"pages/**/*.js"},
			want: map[string]string{
				"index":     "pages/index.js",
				"blog/post": "pages/blog/post.js",
				".draft":    "pages/.draft.js",
			},
		},
		{
			name: "no hidden",
			args: []string{"--no-hidden", "pages/**/*.js"},
			want: map[string]string{
				"index":     "pages/index.js",
				"blog/post": "pages/blog/post.js",
			},
		},
		{
			name: "basename naming",
			args: []string{"--naming", "basename", "--no-hidden", "pages/**/*.js"},
			want: map[string]string{
				"index": "pages/index.js",
				"post":  "pages/blog/post.js",
			},
		},
		{
			name: "case insensitive",
			args: []string{"--case-insensitive", "pages/*.js"},
			want: map[string]string{
				"index":  "pages/index.js",
				".draft": "pages/.draft.js",
				"Upper":  "pages/Upper.JS",
			},
		},
		{
			name: "later pattern wins",
			args: []string{"--no-hidden", "pages/*.js", "alt/*.js"},
			want: map[string]string{"index": "alt/index.js"},
		},
		{
			name: "later pattern wins reversed",
			args: []string{"--no-hidden", "alt/*.js", "pages/*.js"},
			want: map[string]string{"index": "pages/index.js"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cli := newTestCLI(t, nil)
			testutil.WriteTree(t, cli.workDir, files)

			args := append([]string{"resolve", "--format", "json", "--cwd", cli.workDir}, tt.args...)
			if err := cli.run(context.Background(), args...); err != nil {
				t.Fatalf("resolve error: %v\nstderr: %s", err, cli.stderr)
			}

			want := make(map[string]string, len(tt.want))
			for id, rel := range tt.want {
				want[id] = filepath.FromSlash(rel)
			}
			if got := decodeEntries(t, cli.stdout.String()); !maps.Equal(got, want) {
				t.Errorf("entries = %v, want %v", got, want)
			}
		})
	}
}

func TestResolve_NoMatchesIsEmptyMapping(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	if err := cli.run(context.Background(), "resolve", "--format", "json", "--cwd", cli.workDir, "missing/**/*.js"); err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if got := decodeEntries(t, cli.stdout.String()); len(got) != 0 {
		t.Errorf("entries = %v, want empty", got)
	}
	if !strings.Contains(cli.stderr.String(), "no entries matched") {
		t.Errorf("stderr = %q, want a warning", cli.stderr.String())
	}
}

func TestResolve_TextOutput(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	testutil.WriteTree(t, cli.workDir, map[string]string{"src/a.ts": ""})

	if err := cli.run(context.Background(), "resolve", "--cwd", cli.workDir, "--show-roots", "src/*.ts"); err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if out := cli.stdout.String(); !strings.Contains(out, "a") || !strings.Contains(out, filepath.Join("src", "a.ts")) {
		t.Errorf("stdout = %q", out)
	}
	if errOut := cli.stderr.String(); !strings.Contains(errOut, filepath.Join(cli.workDir, "src")) {
		t.Errorf("stderr = %q, want the watched root", errOut)
	}
}

func TestResolve_ConfigFile(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, map[string]string{"PAGES": "site"})
	testutil.WriteTree(t, cli.workDir, map[string]string{
		"site/home.js":  "",
		"other/misc.js": "",
		"globentries.cue": fmt.Sprintf(`entries: {
	patterns: "$PAGES/*.js"
	match: {cwd: %q}
	expand_env: true
}
ui: {format: "json"}
`, cli.workDir),
	})

	if err := cli.run(context.Background(), "resolve"); err != nil {
		t.Fatalf("resolve error: %v\nstderr: %s", err, cli.stderr)
	}
	want := map[string]string{"home": filepath.Join("site", "home.js")}
	if got := decodeEntries(t, cli.stdout.String()); !maps.Equal(got, want) {
		t.Errorf("entries from config = %v, want %v", got, want)
	}

	// Arguments replace the configured patterns.
	cli.stdout = &testutil.SafeBuffer{}
	cli.app.stdout = cli.stdout
	if err := cli.run(context.Background(), "resolve", "other/*.js"); err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	want = map[string]string{"misc": filepath.Join("other", "misc.js")}
	if got := decodeEntries(t, cli.stdout.String()); !maps.Equal(got, want) {
		t.Errorf("entries from args = %v, want %v", got, want)
	}
}

func TestResolve_ConfigErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  string
		args    []string
		wantErr string
	}{
		{
			name:    "no patterns",
			args:    []string{"resolve"},
			wantErr: "no patterns given",
		},
		{
			name:    "unbalanced bracket",
			args:    []string{"resolve", "src/[a.js"},
			wantErr: "src/[a.js",
		},
		{
			name:    "unknown naming flag",
			args:    []string{"resolve", "--naming", "camel", "*.js"},
			wantErr: "camel",
		},
		{
			name:    "unknown format flag",
			args:    []string{"resolve", "--format", "xml", "*.js"},
			wantErr: "xml",
		},
		{
			name:    "plugin options not an object",
			config:  `entries: {plugin: "oops"}`,
			args:    []string{"resolve", "*.js"},
			wantErr: "load configuration",
		},
		{
			name:    "command substitution in pattern",
			config:  `entries: {expand_env: true}`,
			args:    []string{"resolve", "$(echo src)/*.js"},
			wantErr: "expand pattern",
		},
		{
			name:    "missing explicit config",
			args:    []string{"resolve", "--config", "does-not-exist.cue", "*.js"},
			wantErr: "does-not-exist.cue",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cli := newTestCLI(t, nil)
			if tt.config != "" {
				testutil.WriteTree(t, cli.workDir, map[string]string{"globentries.cue": tt.config})
			}

			err := cli.run(context.Background(), tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := exitCodeFor(err); code != ExitConfigError {
				t.Errorf("exit code = %d, want %d (err: %v)", code, ExitConfigError, err)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
			if cli.stdout.String() != "" {
				t.Errorf("stdout should be empty on configuration errors, got %q", cli.stdout.String())
			}
		})
	}
}
