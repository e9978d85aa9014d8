// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestGlobPattern_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern GlobPattern
		wantErr bool
	}{
		{"single star", "src/*.js", false},
		{"double star", "src/**/*.js", false},
		{"brace expansion", "src/{a,b}/*.js", false},
		{"character class", "src/[ab].js", false},
		{"literal file", "src/index.js", false},
		{"absolute", "/srv/app/**/*.ts", false},
		{"empty is invalid", "", true},
		{"whitespace is invalid", "  \t", true},
		{"unclosed class is invalid", "src/[ab.js", true},
		{"unclosed brace is invalid", "src/{a,b/*.js", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.pattern.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Errorf("GlobPattern(%q).Validate() unexpected error: %v", tt.pattern, err)
				}
				return
			}
			if err == nil {
				t.Fatalf("GlobPattern(%q).Validate() returned nil, want error", tt.pattern)
			}
			if !errors.Is(err, ErrInvalidGlobPattern) {
				t.Errorf("error should wrap ErrInvalidGlobPattern, got: %v", err)
			}
			var gpErr *InvalidGlobPatternError
			if !errors.As(err, &gpErr) {
				t.Errorf("error should be *InvalidGlobPatternError, got: %T", err)
			}
		})
	}
}

func TestGlobPattern_HasMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern GlobPattern
		want    bool
	}{
		{"src/index.js", false},
		{"src/*.js", true},
		{"src/?.js", true},
		{"src/[ab].js", true},
		{"src/{a,b}.js", true},
		{`src/\*.js`, false},
	}

	for _, tt := range tests {
		if got := tt.pattern.HasMeta(); got != tt.want {
			t.Errorf("GlobPattern(%q).HasMeta() = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}
