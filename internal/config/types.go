// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/invowk/globentries/pkg/globentry"
	"github.com/invowk/globentries/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces the dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces the light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// FormatText prints one aligned "id -> path" line per entry.
	FormatText OutputFormat = "text"
	// FormatJSON prints the mapping as a JSON object.
	FormatJSON OutputFormat = "json"
	// FormatYAML prints the mapping as a YAML mapping.
	FormatYAML OutputFormat = "yaml"
	// FormatTOML prints the mapping as a TOML table.
	FormatTOML OutputFormat = "toml"
	// FormatMarkdown prints the mapping as a rendered markdown table.
	FormatMarkdown OutputFormat = "markdown"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
	// ErrInvalidDebounce is returned for a negative watch debounce.
	ErrInvalidDebounce = errors.New("invalid debounce")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputFormat selects how an entry mapping is printed.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// InvalidConfigError collects every field error found while building a
	// Config. errors.Is matches ErrInvalidConfig and each field error.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config is the typed, validated configuration.
	Config struct {
		Entries EntriesConfig `json:"entries"`
		Watch   WatchConfig   `json:"watch"`
		UI      UIConfig      `json:"ui"`
		// Source is the file the configuration was read from; empty when
		// only defaults and environment variables apply.
		Source types.FilesystemPath `json:"-"`
	}

	// EntriesConfig describes what to glob.
	EntriesConfig struct {
		Patterns  []types.GlobPattern     `json:"patterns"`
		Match     globentry.MatchOptions  `json:"match"`
		Plugin    globentry.PluginOptions `json:"plugin"`
		ExpandEnv bool                    `json:"expand_env"`
	}

	// WatchConfig configures the watch command.
	WatchConfig struct {
		Debounce    time.Duration `json:"debounce"`
		ClearScreen bool          `json:"clear_screen"`
		Ignore      []string      `json:"ignore"`
		LegacyHost  bool          `json:"legacy_host"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		Verbose     bool         `json:"verbose"`
		Format      OutputFormat `json:"format"`
		ColorScheme ColorScheme  `json:"color_scheme"`
	}

	// rawConfig mirrors the file layout as decoded by Viper. The entries
	// section stays untyped until globentry parses it.
	rawConfig struct {
		Entries struct {
			Patterns  any  `mapstructure:"patterns"`
			Match     any  `mapstructure:"match"`
			Plugin    any  `mapstructure:"plugin"`
			ExpandEnv bool `mapstructure:"expand_env"`
		} `mapstructure:"entries"`
		Watch struct {
			Debounce    time.Duration `mapstructure:"debounce"`
			ClearScreen bool          `mapstructure:"clear_screen"`
			Ignore      []string      `mapstructure:"ignore"`
			LegacyHost  bool          `mapstructure:"legacy_host"`
		} `mapstructure:"watch"`
		UI struct {
			Verbose     bool   `mapstructure:"verbose"`
			Format      string `mapstructure:"format"`
			ColorScheme string `mapstructure:"color_scheme"`
		} `mapstructure:"ui"`
	}
)

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Entries: EntriesConfig{Patterns: []types.GlobPattern{}},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
			Ignore:   []string{},
		},
		UI: UIConfig{
			Format:      FormatText,
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// build converts the raw Viper view into a Config, collecting every field
// error rather than stopping at the first.
func (r *rawConfig) build() (*Config, error) {
	var errs []error

	var patterns []types.GlobPattern
	if r.Entries.Patterns != nil {
		var err error
		if patterns, err = globentry.ParsePatterns(r.Entries.Patterns); err != nil {
			errs = append(errs, fmt.Errorf("entries.patterns: %w", err))
		}
	}
	for i, p := range patterns {
		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("entries.patterns[%d]: %w", i, err))
		}
	}

	match, err := globentry.ParseMatchOptions(r.Entries.Match)
	if err != nil {
		errs = append(errs, fmt.Errorf("entries.match: %w", err))
	}

	plugin, err := globentry.ParsePluginOptions(r.Entries.Plugin)
	if err != nil {
		errs = append(errs, fmt.Errorf("entries.plugin: %w", err))
	}

	if r.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: %w: %s is negative", ErrInvalidDebounce, r.Watch.Debounce))
	}

	format := OutputFormat(r.UI.Format)
	if err := format.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.format: %w", err))
	}
	scheme := ColorScheme(r.UI.ColorScheme)
	if err := scheme.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("ui.color_scheme: %w", err))
	}

	if len(errs) > 0 {
		return nil, &InvalidConfigError{FieldErrors: errs}
	}

	if patterns == nil {
		patterns = []types.GlobPattern{}
	}
	ignore := r.Watch.Ignore
	if ignore == nil {
		ignore = []string{}
	}

	return &Config{
		Entries: EntriesConfig{
			Patterns:  patterns,
			Match:     match,
			Plugin:    plugin,
			ExpandEnv: r.Entries.ExpandEnv,
		},
		Watch: WatchConfig{
			Debounce:    r.Watch.Debounce,
			ClearScreen: r.Watch.ClearScreen,
			Ignore:      ignore,
			LegacyHost:  r.Watch.LegacyHost,
		},
		UI: UIConfig{
			Verbose:     r.UI.Verbose,
			Format:      format,
			ColorScheme: scheme,
		},
	}, nil
}

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	msg := fmt.Sprintf("invalid config: %d field errors", len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msg += "\n  " + fe.Error()
	}
	return msg
}

// Unwrap exposes ErrInvalidConfig and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error if the ColorScheme is not one of the defined schemes.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// Validate returns an error if the OutputFormat is not a supported format.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatText, FormatJSON, FormatYAML, FormatTOML, FormatMarkdown:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// Error implements the error interface.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: text, json, yaml, toml, markdown)", e.Value)
}

// Unwrap returns ErrInvalidOutputFormat for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error { return ErrInvalidOutputFormat }
