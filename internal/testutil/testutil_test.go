// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWriteTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	WriteTree(t, dir, map[string]string{
		"a/b/c.txt": "hello",
		"top.txt":   "",
	})

	data, err := os.ReadFile(filepath.Join(dir, "a", "b", "c.txt"))
	if err != nil || string(data) != "hello" {
		t.Errorf("a/b/c.txt = %q, %v", data, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "top.txt")); err != nil {
		t.Errorf("top.txt missing: %v", err)
	}
}

func TestTouchFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	TouchFiles(t, dir, "x/y.js", "z.js")
	for _, rel := range []string{"x/y.js", "z.js"} {
		info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil || info.Size() == 0 {
			t.Errorf("%s: info=%v err=%v", rel, info, err)
		}
	}
}

func TestSafeBuffer_ConcurrentWrites(t *testing.T) {
	t.Parallel()

	var buf SafeBuffer
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = buf.Write([]byte("x"))
		}()
	}
	wg.Wait()

	if got := len(buf.String()); got != 10 {
		t.Errorf("len = %d, want 10", got)
	}
	buf.Reset()
	if buf.String() != "" {
		t.Error("Reset() left data behind")
	}
}

func TestEventually(t *testing.T) {
	t.Parallel()

	var flag atomic.Bool
	time.AfterFunc(30*time.Millisecond, func() { flag.Store(true) })
	if !Eventually(t, 2*time.Second, flag.Load) {
		t.Error("Eventually() = false for a condition that becomes true")
	}

	if Eventually(t, 50*time.Millisecond, func() bool { return false }) {
		t.Error("Eventually() = true for a condition that never holds")
	}
}
