// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/pkg/types"
)

// newConfigCommand creates the `globentries config` command tree.
func newConfigCommand(app *App, rootFlags *rootFlagValues) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage globentries configuration",
		Long: `Manage globentries configuration.

Configuration is looked up in order:
  - the file given with --config
  - ./` + config.LocalConfigFile + `
  - Linux: ~/.config/globentries/config.cue
  - macOS: ~/Library/Application Support/globentries/config.cue
  - Windows: %APPDATA%\globentries\config.cue

Values can be overridden with ` + config.EnvPrefix + `_* environment variables,
e.g. ` + config.EnvPrefix + `_UI_FORMAT=json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd, app, rootFlags)
		},
	})

	var local bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, local)
		},
	}
	initCmd.Flags().BoolVar(&local, "local", false, "create ./"+config.LocalConfigFile+" instead of the user config file")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app)
		},
	})

	return cfgCmd
}

func showConfig(cmd *cobra.Command, app *App, rootFlags *rootFlagValues) error {
	cfg, err := app.Config.Load(cmd.Context(), app.loadOptions(rootFlags.configPath))
	if err != nil {
		return app.fail(nil, err)
	}

	source := SubtitleStyle.Render("(using defaults)")
	if cfg.Source != "" {
		source = cfg.Source.String()
	}
	fmt.Fprintf(app.stderr, "%s: %s\n", KeyStyle.Render("Config file"), source)
	fmt.Fprint(app.stdout, config.GenerateCUE(cfg))
	return nil
}

func initConfig(app *App, local bool) error {
	path, err := app.initTarget(local)
	if err != nil {
		return withExitCode(err)
	}

	created, err := config.CreateDefaultConfig(path)
	if err != nil {
		return withExitCode(fmt.Errorf("failed to create config: %w", err))
	}
	if !created {
		fmt.Fprintf(app.stdout, "%s Configuration already exists at %s\n", WarningStyle.Render("!"), path)
		return nil
	}

	fmt.Fprintf(app.stdout, "%s Created default configuration at %s\n", SuccessStyle.Render("✓"), path)
	return nil
}

func (app *App) initTarget(local bool) (types.FilesystemPath, error) {
	if local {
		return app.localConfigPath(), nil
	}
	return config.UserConfigPath(app.configDir)
}

func (app *App) localConfigPath() types.FilesystemPath {
	dir := app.workDir
	if dir == "" {
		dir = "."
	}
	return types.FilesystemPath(filepath.Join(dir.String(), config.LocalConfigFile))
}

func showConfigPath(app *App) error {
	userPath, err := config.UserConfigPath(app.configDir)
	if err != nil {
		return withExitCode(err)
	}

	fmt.Fprintf(app.stdout, "Config directory: %s\n", filepath.Dir(userPath.String()))
	fmt.Fprintf(app.stdout, "Config file: %s\n", userPath)
	fmt.Fprintf(app.stdout, "Project file: %s\n", app.localConfigPath())
	return nil
}
