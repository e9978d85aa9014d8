// SPDX-License-Identifier: MPL-2.0

package globentry

import (
	"errors"
	"fmt"

	"github.com/invowk/globentries/pkg/types"
)

var (
	// ErrInvalidPatterns is returned when the pattern input is neither a
	// string nor a sequence of strings.
	ErrInvalidPatterns = errors.New("patterns must be a string or a list of strings")
	// ErrInvalidMatchOptions is the sentinel error wrapped by InvalidMatchOptionsError.
	ErrInvalidMatchOptions = errors.New("invalid match options")
	// ErrInvalidPluginOptions is the sentinel error wrapped by InvalidPluginOptionsError.
	ErrInvalidPluginOptions = errors.New("invalid plugin options")
	// ErrUnknownNaming is returned when a naming strategy name is not recognized.
	ErrUnknownNaming = errors.New("unknown naming strategy")
)

type (
	// InvalidMatchOptionsError is returned when match options are not an
	// object or carry an invalid field. It wraps ErrInvalidMatchOptions.
	InvalidMatchOptionsError struct {
		Reason string
		Cause  error
	}

	// InvalidPluginOptionsError is returned when plugin options are not an
	// object or select an unusable naming strategy. It wraps ErrInvalidPluginOptions.
	InvalidPluginOptionsError struct {
		Reason string
		Cause  error
	}
)

// Error implements the error interface for InvalidMatchOptionsError.
func (e *InvalidMatchOptionsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid match options: %s: %v", e.Reason, e.Cause)
	}
	return "invalid match options: " + e.Reason
}

// Unwrap returns both the sentinel and the cause so errors.Is matches either.
func (e *InvalidMatchOptionsError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidMatchOptions}
	}
	return []error{ErrInvalidMatchOptions, e.Cause}
}

// Error implements the error interface for InvalidPluginOptionsError.
func (e *InvalidPluginOptionsError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid plugin options: %s: %v", e.Reason, e.Cause)
	}
	return "invalid plugin options: " + e.Reason
}

// Unwrap returns both the sentinel and the cause so errors.Is matches either.
func (e *InvalidPluginOptionsError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidPluginOptions}
	}
	return []error{ErrInvalidPluginOptions, e.Cause}
}

// IsConfigError reports whether err is one of the configuration errors that
// are raised before any filesystem access.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrInvalidPatterns) ||
		errors.Is(err, ErrInvalidMatchOptions) ||
		errors.Is(err, ErrInvalidPluginOptions) ||
		errors.Is(err, ErrUnknownNaming) ||
		errors.Is(err, types.ErrInvalidGlobPattern)
}
