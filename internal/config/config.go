// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/invowk/globentries/internal/issue"
	"github.com/invowk/globentries/pkg/cueutil"
	"github.com/invowk/globentries/pkg/types"
)

const (
	// AppName is the application name.
	AppName = "globentries"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFile is the project-local config file looked up in the
	// working directory.
	LocalConfigFile = AppName + "." + ConfigFileExt
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "GLOBENTRIES"
)

// ErrConfigNotFound is returned when an explicitly requested config file is missing.
var ErrConfigNotFound = errors.New("config file not found")

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the globentries configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// UserConfigPath returns the path of the config file inside dir, or inside
// ConfigDir when dir is empty.
func UserConfigPath(dir types.FilesystemPath) (types.FilesystemPath, error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", err
	}
	return types.FilesystemPath(filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)), nil
}

// loadWithOptions performs option-driven config loading without touching
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	v := newViper()

	path, err := resolveConfigPath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := loadCUEIntoViper(v, path.String()); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path.String()).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("Run 'globentries config show' to see the effective configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg, err := raw.build()
	if err != nil {
		resource := path.String()
		if resource == "" {
			resource = EnvPrefix + "_* environment"
		}
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resource).
			WithSuggestion("Check entries.patterns for unbalanced brackets or braces").
			WithSuggestion("entries.match and entries.plugin must be objects").
			Wrap(err).
			BuildError()
	}
	cfg.Source = path

	return cfg, nil
}

// newViper returns a Viper instance carrying the defaults and environment
// overrides.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("entries.patterns", []string{})
	v.SetDefault("entries.expand_env", defaults.Entries.ExpandEnv)
	v.SetDefault("watch.debounce", defaults.Watch.Debounce.String())
	v.SetDefault("watch.clear_screen", defaults.Watch.ClearScreen)
	v.SetDefault("watch.ignore", defaults.Watch.Ignore)
	v.SetDefault("watch.legacy_host", defaults.Watch.LegacyHost)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.format", defaults.UI.Format.String())
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// resolveConfigPath applies the lookup order: explicit file, project-local
// file, user config file. An empty result means no file applies.
func resolveConfigPath(opts LoadOptions) (types.FilesystemPath, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath.String()) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath.String()).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'globentries config init' to create a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("%w: %s", ErrConfigNotFound, opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	local := filepath.Join(workDir.String(), LocalConfigFile)
	if fileExists(local) {
		return types.FilesystemPath(local), nil
	}

	userPath, err := UserConfigPath(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if fileExists(userPath.String()) {
		return userPath, nil
	}

	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath types.FilesystemPath) (string, error) {
	if configDirPath != "" {
		return configDirPath.String(), nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and
// merges its contents into Viper. The document decodes to map[string]any
// with Concrete(false) because every field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := cueutil.ParseAndDecodeString[map[string]any](
		configSchema,
		data,
		"#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false),
	)
	if err != nil {
		return err
	}

	if err := v.MergeConfigMap(*result.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes the default configuration to path unless a file
// already exists there. It reports whether a file was written.
func CreateDefaultConfig(path types.FilesystemPath) (bool, error) {
	if fileExists(path.String()) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path.String()), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path.String(), []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// globentries configuration file\n\n")

	sb.WriteString("entries: {\n")
	sb.WriteString("\tpatterns: [")
	for i, p := range cfg.Entries.Patterns {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", p.String())
	}
	sb.WriteString("]\n")
	writeMatchCUE(&sb, cfg)
	if cfg.Entries.Plugin.Naming != "" || cfg.Entries.Plugin.BasenameAsEntryID {
		sb.WriteString("\tplugin: {\n")
		if cfg.Entries.Plugin.Naming != "" {
			fmt.Fprintf(&sb, "\t\tnaming: %q\n", cfg.Entries.Plugin.Naming)
		}
		if cfg.Entries.Plugin.BasenameAsEntryID {
			sb.WriteString("\t\tbasename_as_entry_id: true\n")
		}
		sb.WriteString("\t}\n")
	}
	fmt.Fprintf(&sb, "\texpand_env: %v\n", cfg.Entries.ExpandEnv)
	sb.WriteString("}\n")

	sb.WriteString("\nwatch: {\n")
	fmt.Fprintf(&sb, "\tdebounce: %q\n", cfg.Watch.Debounce.String())
	fmt.Fprintf(&sb, "\tclear_screen: %v\n", cfg.Watch.ClearScreen)
	sb.WriteString("\tignore: [")
	for i, ig := range cfg.Watch.Ignore {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", ig)
	}
	sb.WriteString("]\n")
	fmt.Fprintf(&sb, "\tlegacy_host: %v\n", cfg.Watch.LegacyHost)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tformat: %q\n", cfg.UI.Format)
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	sb.WriteString("}\n")

	return sb.String()
}

func writeMatchCUE(sb *strings.Builder, cfg *Config) {
	m := cfg.Entries.Match
	fields := []struct {
		name string
		set  bool
	}{
		{"case_insensitive", m.CaseInsensitive},
		{"files_only", m.FilesOnly},
		{"no_follow", m.NoFollow},
		{"no_hidden", m.NoHidden},
		{"skip_io_errors", m.SkipIOErrors},
		{"fail_on_pattern_not_exist", m.FailOnPatternNotExist},
	}

	var body strings.Builder
	if m.Cwd != "" {
		fmt.Fprintf(&body, "\t\tcwd: %q\n", m.Cwd.String())
	}
	for _, f := range fields {
		if f.set {
			fmt.Fprintf(&body, "\t\t%s: true\n", f.name)
		}
	}
	if body.Len() == 0 {
		return
	}
	sb.WriteString("\tmatch: {\n")
	sb.WriteString(body.String())
	sb.WriteString("\t}\n")
}
