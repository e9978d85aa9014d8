// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/internal/issue"
	"github.com/invowk/globentries/internal/patternexpand"
	"github.com/invowk/globentries/pkg/globentry"
)

// ExitCode is the process exit status of the CLI.
type ExitCode int

const (
	// ExitSuccess is returned when every requested operation completed.
	ExitSuccess ExitCode = 0
	// ExitFailure is returned for runtime failures such as filesystem errors
	// raised while expanding a pattern.
	ExitFailure ExitCode = 1
	// ExitConfigError is returned when patterns, options or the config file
	// are rejected before any filesystem access.
	ExitConfigError ExitCode = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// withExitCode wraps err in an ExitError whose code reflects whether the
// failure was a rejected configuration. nil stays nil.
func withExitCode(err error) error {
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	return &ExitError{Code: classifyExitCode(err), Err: err}
}

func classifyExitCode(err error) ExitCode {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue == issue.ConfigLoadFailedId {
		return ExitConfigError
	}

	switch {
	case globentry.IsConfigError(err),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrInvalidOutputFormat),
		errors.Is(err, patternexpand.ErrExpand),
		errors.Is(err, errNoPatterns):
		return ExitConfigError
	default:
		return ExitFailure
	}
}

// exitCodeFor returns the process exit code for an error returned by the
// command tree.
func exitCodeFor(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
