// SPDX-License-Identifier: MPL-2.0

// Package watch watches a growing set of root directories and invokes a
// callback after a debounce period.
//
// Events within the debounce window are coalesced so the callback fires once
// with the full set of changed paths. Roots can be added while the watcher
// runs, which lets a caller follow the watch registry of a build host as new
// pattern roots appear.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the delay before firing the OnChange callback after the
// last filesystem event.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are always excluded, regardless of user ignores. They cover
// VCS metadata, dependency caches, editor swap files and OS metadata.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// ErrInvalidWatchConfig is the sentinel error wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch config")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Dirs are the root directories watched recursively. More can be
		// added later with AddRoot.
		Dirs []string

		// Ignore are doublestar patterns, matched against paths relative to
		// the owning root, that never trigger callbacks. They are merged with
		// the built-in default ignores.
		Ignore []string

		// Debounce is the quiet period after the last event before the
		// callback fires. Zero falls back to defaultDebounce.
		Debounce time.Duration

		// ClearScreen writes ANSI clear-screen sequences to Stdout before
		// each callback.
		ClearScreen bool

		// OnChange receives the sorted, de-duplicated absolute paths that
		// changed. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		// Stdout receives the clear-screen sequence. nil means os.Stdout.
		Stdout io.Writer

		// Logger receives diagnostics. nil discards them.
		Logger *log.Logger
	}

	// InvalidWatchConfigError lists every problem found in a Config.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// Watcher monitors root directories and fires a debounced callback when
	// something under them changes. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		stdout   io.Writer
		logger   *log.Logger
		debounce time.Duration
		started  atomic.Bool

		mu    sync.Mutex
		roots []string
		// waiting maps a root that does not exist yet to the ancestor
		// directory watched on its behalf.
		waiting map[string]string
	}
)

// Validate checks the config without touching the filesystem.
func (c Config) Validate() error {
	var errs []error
	if c.Debounce < 0 {
		errs = append(errs, fmt.Errorf("debounce %s is negative", c.Debounce))
	}
	for i, dir := range c.Dirs {
		if strings.TrimSpace(dir) == "" {
			errs = append(errs, fmt.Errorf("dirs[%d] is empty", i))
		}
	}
	for _, pat := range c.Ignore {
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("invalid ignore pattern %q", pat))
		}
	}
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

// New creates a Watcher and registers every root in cfg.Dirs.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce == 0 {
		debounce = defaultDebounce
	}
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		stdout:   stdout,
		logger:   logger,
		debounce: debounce,
		waiting:  make(map[string]string),
	}

	for _, dir := range cfg.Dirs {
		if _, err := w.AddRoot(dir); err != nil {
			if closeErr := fsw.Close(); closeErr != nil {
				logger.Warn("close watcher after init failure", "err", closeErr)
			}
			return nil, err
		}
	}

	return w, nil
}

// AddRoot starts watching dir recursively. It reports whether dir was new.
// A root that does not exist yet is watched through its nearest existing
// ancestor and promoted once it is created.
func (w *Watcher) AddRoot(dir string) (bool, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("watch: resolve %q: %w", dir, err)
	}

	w.mu.Lock()
	_, isWaiting := w.waiting[abs]
	known := isWaiting || slices.Contains(w.roots, abs)
	w.mu.Unlock()
	if known {
		return false, nil
	}

	if !isDir(abs) {
		return w.waitFor(abs)
	}
	return w.promote(abs)
}

// promote walks an existing root and records it as watched.
func (w *Watcher) promote(abs string) (bool, error) {
	if err := w.addDirectories(abs); err != nil {
		return false, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.waiting, abs)
	if slices.Contains(w.roots, abs) {
		return false, nil
	}
	w.roots = append(w.roots, abs)
	w.logger.Debug("watching", "dir", abs)
	return true, nil
}

// waitFor watches the nearest existing ancestor of a missing root.
func (w *Watcher) waitFor(abs string) (bool, error) {
	ancestor := nearestDir(abs)
	if ancestor == "" {
		w.logger.Warn("not watching directory without an existing ancestor", "dir", abs)
		return false, nil
	}
	if err := w.fsw.Add(ancestor); err != nil {
		return false, fmt.Errorf("watch: add directory %q: %w", ancestor, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.waiting[abs]; ok || slices.Contains(w.roots, abs) {
		return false, nil
	}
	w.waiting[abs] = ancestor
	w.logger.Debug("waiting for directory", "dir", abs, "via", ancestor)
	return true, nil
}

// promoteWaiting re-checks every waiting root after a create event. Roots
// that now exist are watched and returned. Roots still missing move their
// watch down to a deeper ancestor when one appeared.
func (w *Watcher) promoteWaiting() []string {
	w.mu.Lock()
	waiting := maps.Clone(w.waiting)
	w.mu.Unlock()

	var promoted []string
	for _, root := range slices.Sorted(maps.Keys(waiting)) {
		if isDir(root) {
			if _, err := w.promote(root); err != nil {
				w.logger.Warn("watch created root", "dir", root, "err", err)
				continue
			}
			promoted = append(promoted, root)
			continue
		}
		ancestor := nearestDir(root)
		if ancestor == "" || ancestor == waiting[root] {
			continue
		}
		if err := w.fsw.Add(ancestor); err != nil {
			w.logger.Warn("add ancestor directory", "path", ancestor, "err", err)
			continue
		}
		w.mu.Lock()
		if _, ok := w.waiting[root]; ok {
			w.waiting[root] = ancestor
		}
		w.mu.Unlock()
	}
	return promoted
}

// Roots returns the absolute root directories being watched.
func (w *Watcher) Roots() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.roots)
}

// Waiting returns the absolute roots that do not exist yet, sorted.
func (w *Watcher) Waiting() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Sorted(maps.Keys(w.waiting))
}

// Run blocks until ctx is cancelled, processing filesystem events and
// dispatching debounced callbacks. It returns nil on cancellation and
// propagates fatal watcher errors.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return errors.New("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire runs on the timer goroutine. A slow callback is never run
	// concurrently with itself; overlapping fires are rescheduled.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			w.logger.Warn("previous run still in progress, rescheduling")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		if w.cfg.ClearScreen {
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.logger.Error("change callback failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if closeErr := w.fsw.Close(); closeErr != nil {
			w.logger.Warn("close fsnotify", "err", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: fsnotify event channel closed unexpectedly")
			}

			var promoted []string
			if evt.Has(fsnotify.Create) && w.hasWaiting() {
				promoted = w.promoteWaiting()
			}

			rel, ok := w.relToRoot(evt.Name)
			if len(promoted) == 0 && (!ok || w.isIgnored(rel)) {
				continue
			}

			// Directories created after startup extend the recursive watch.
			if ok && evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			if ok && !w.isIgnored(rel) {
				pending[evt.Name] = struct{}{}
			}
			// Files may land in a new root before its watch is added, so the
			// root itself is reported as changed.
			for _, root := range promoted {
				pending[root] = struct{}{}
			}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: fsnotify error channel closed unexpectedly")
			}
			if isFatalFsnotifyError(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			w.logger.Warn("fsnotify error", "err", err)
		}
	}
}

// addDirectories adds root and every non-ignored directory below it.
func (w *Watcher) addDirectories(root string) error {
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			// Unreadable directories are skipped, not fatal.
			w.logger.Warn("skipping inaccessible path", "path", path, "err", walkDirErr)
			return nil //nolint:nilerr // intentional skip of inaccessible paths
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk directory tree: %w", walkErr)
	}
	return nil
}

// maybeAddDir watches a directory created after the initial walk.
func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	rel, ok := w.relToRoot(path)
	if !ok || w.isIgnored(rel) || w.isIgnored(rel+"/") {
		return
	}
	if addErr := w.fsw.Add(path); addErr != nil {
		w.logger.Warn("add new directory", "path", path, "err", addErr)
	}
}

func (w *Watcher) hasWaiting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.waiting) > 0
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// nearestDir returns the closest existing directory above path, or "" when
// none exists.
func nearestDir(path string) string {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		if isDir(dir) {
			return dir
		}
		if parent := filepath.Dir(dir); parent == dir {
			return ""
		}
	}
}

// relToRoot returns path relative to the deepest root containing it.
func (w *Watcher) relToRoot(path string) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	best, found := "", false
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		if !found || len(rel) < len(best) {
			best, found = rel, true
		}
	}
	return best, found
}

// isIgnored reports whether rel matches any ignore pattern.
func (w *Watcher) isIgnored(rel string) bool {
	return matchesAny(w.ignores, rel)
}

func matchesAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, matchErr := doublestar.Match(pat, normalized); matchErr == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

// Error implements the error interface.
func (e *InvalidWatchConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		msgs[i] = fe.Error()
	}
	return "invalid watch config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is() compatibility.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }
