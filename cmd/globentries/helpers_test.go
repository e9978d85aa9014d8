// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"testing"

	"github.com/invowk/globentries/internal/patternexpand"
	"github.com/invowk/globentries/internal/testutil"
	"github.com/invowk/globentries/pkg/types"
)

type testCLI struct {
	app     *App
	stdout  *testutil.SafeBuffer
	stderr  *testutil.SafeBuffer
	workDir string
}

// newTestCLI returns an app rooted at a fresh work directory with an empty
// user config directory, so no config file applies unless a test writes one.
func newTestCLI(t *testing.T, env map[string]string) *testCLI {
	t.Helper()

	workDir := t.TempDir()
	stdout, stderr := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	app, err := NewApp(Dependencies{
		Stdout:    stdout,
		Stderr:    stderr,
		Env:       patternexpand.MapEnv(env),
		ConfigDir: types.FilesystemPath(t.TempDir()),
		WorkDir:   types.FilesystemPath(workDir),
	})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	return &testCLI{app: app, stdout: stdout, stderr: stderr, workDir: workDir}
}

func (c *testCLI) run(ctx context.Context, args ...string) error {
	root := NewRootCommand(c.app)
	root.SetArgs(args)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)
	return root.ExecuteContext(ctx)
}
