// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"os"

	"github.com/invowk/globentries/internal/config"
	"github.com/invowk/globentries/internal/patternexpand"
	"github.com/invowk/globentries/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. All cobra handlers
	// receive an App reference.
	App struct {
		Config    config.Provider
		stdout    io.Writer
		stderr    io.Writer
		env       patternexpand.Env
		configDir types.FilesystemPath
		workDir   types.FilesystemPath
	}

	// Dependencies defines the injection points for building an App. Nil or
	// empty fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Stdout io.Writer
		Stderr io.Writer
		// Env resolves $VAR references when entries.expand_env is set.
		Env patternexpand.Env
		// ConfigDir overrides the user config directory.
		ConfigDir types.FilesystemPath
		// WorkDir is where ./globentries.cue is looked up.
		WorkDir types.FilesystemPath
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Env == nil {
		deps.Env = patternexpand.OSEnv
	}
	for _, p := range []types.FilesystemPath{deps.ConfigDir, deps.WorkDir} {
		if p == "" {
			continue
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return &App{
		Config:    deps.Config,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
		env:       deps.Env,
		configDir: deps.ConfigDir,
		workDir:   deps.WorkDir,
	}, nil
}

// loadOptions returns the config lookup inputs for one invocation.
func (app *App) loadOptions(configPath string) config.LoadOptions {
	return config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(configPath),
		ConfigDirPath:  app.configDir,
		WorkDir:        app.workDir,
	}
}
