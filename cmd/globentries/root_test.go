// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/internal/issue"
	"github.com/invowk/globentries/internal/patternexpand"
	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got := getVersionString(); got != "dev (built from source)" {
			t.Errorf("getVersionString() = %q", got)
		}
	})
}

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", errors.New("boom"), ExitFailure},
		{"explicit exit error", &ExitError{Code: 7}, 7},
		{"invalid pattern", withExitCode(&types.InvalidGlobPatternError{Value: "[", Reason: "unbalanced"}), ExitConfigError},
		{"unknown naming", withExitCode(fmt.Errorf("wrap: %w", globentry.ErrUnknownNaming)), ExitConfigError},
		{"invalid config", withExitCode(&config.InvalidConfigError{FieldErrors: []error{errors.New("x")}}), ExitConfigError},
		{"config load failure", withExitCode(issue.NewErrorContext().
			WithOperation("load configuration").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.New("bad cue")).
			BuildError()), ExitConfigError},
		{"pattern expansion", withExitCode(&patternexpand.ExpandError{Pattern: "$(x)", Cause: errors.New("unsupported")}), ExitConfigError},
		{"runtime failure", withExitCode(errors.New("permission denied")), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWithExitCode_KeepsExistingCode(t *testing.T) {
	t.Parallel()

	orig := &ExitError{Code: 3, Err: globentry.ErrInvalidPatterns}
	if got := withExitCode(orig); got != error(orig) {
		t.Errorf("withExitCode re-wrapped an ExitError: %v", got)
	}
	if withExitCode(nil) != nil {
		t.Error("withExitCode(nil) should be nil")
	}
}

func TestNewApp_RejectsBlankPaths(t *testing.T) {
	t.Parallel()

	if _, err := NewApp(Dependencies{WorkDir: "   "}); err == nil {
		t.Error("expected an error for a whitespace-only work dir")
	}
}
