// SPDX-License-Identifier: MPL-2.0

// Package cueutil compiles CUE documents against an embedded schema and
// decodes them into Go values.
//
// Parsing follows three steps: compile the schema, compile the user data
// and unify it with the schema definition, then validate and decode.
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	result, err := cueutil.ParseAndDecode[map[string]any](
//	    schema,
//	    data,
//	    "#Config",
//	    cueutil.WithFilename("globentries.cue"),
//	    cueutil.WithConcrete(false),
//	)
//
// Errors carry the file name and the JSON-style path of the offending
// field, e.g. "globentries.cue: entries.match.cwd: conflicting values".
package cueutil
