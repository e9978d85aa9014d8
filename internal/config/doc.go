// SPDX-License-Identifier: MPL-2.0

// Package config handles globentries configuration using Viper with CUE as the
// file format.
//
// A configuration file is looked up in order: the path passed with --config,
// ./globentries.cue in the working directory, then config.cue in the user
// configuration directory ($XDG_CONFIG_HOME/globentries on Linux,
// ~/Library/Application Support/globentries on macOS, %APPDATA%\globentries on
// Windows). Without a file the defaults apply. Every key can be overridden
// with a GLOBENTRIES_ environment variable, e.g. GLOBENTRIES_UI_VERBOSE=true.
//
// Files are validated against the embedded config_schema.cue before being
// merged into Viper. Entry patterns and options are then checked by
// pkg/globentry so that a bad pattern is reported at load time, before any
// glob runs.
package config
