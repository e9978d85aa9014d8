// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"testing"

	"github.com/invowk/globentries/internal/render"
	"github.com/invowk/globentries/internal/testutil"
	"github.com/invowk/globentries/pkg/types"
)

func TestRoots_JSON(t *testing.T) {
	t.Parallel()

	cli := newTestCLI(t, nil)
	err := cli.run(context.Background(), "roots", "--config", writeConfig(t, cli, `ui: {format: "json"}`),
		"src/pages/**/*.js", "*.ts", "lib/{a,b}/x.go")
	if err != nil {
		t.Fatalf("roots error: %v", err)
	}

	var doc struct {
		Roots []render.RootRow `json:"roots"`
	}
	if err := json.Unmarshal([]byte(cli.stdout.String()), &doc); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, cli.stdout)
	}

	want := []render.RootRow{
		{Pattern: "src/pages/**/*.js", Root: filepath.FromSlash("src/pages")},
		{Pattern: "*.ts", Root: "."},
		{Pattern: "lib/{a,b}/x.go", Root: "lib"},
	}
	if !slices.Equal(doc.Roots, want) {
		t.Errorf("roots = %+v, want %+v", doc.Roots, want)
	}
}

func TestPatternRoots(t *testing.T) {
	t.Parallel()

	patterns := []types.GlobPattern{"src/**/*.js", "/abs/*.js"}

	got := patternRoots(patterns, "")
	if !slices.Equal(got, []types.FilesystemPath{"src", "/abs"}) {
		t.Errorf("without cwd = %v", got)
	}

	got = patternRoots(patterns[:1], "/work")
	if want := types.FilesystemPath(filepath.Join("/work", "src")); got[0] != want {
		t.Errorf("with cwd = %v, want %s", got[0], want)
	}
}

func writeConfig(t *testing.T, cli *testCLI, content string) string {
	t.Helper()
	path := filepath.Join(cli.workDir, "custom.cue")
	testutil.WriteTree(t, cli.workDir, map[string]string{"custom.cue": content})
	return path
}
