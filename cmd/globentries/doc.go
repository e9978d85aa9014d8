// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the globentries command tree.
//
// Every command receives an *App carrying its dependencies; nothing reads
// package-level state, so tests build a fresh tree per case with
// NewRootCommand and drive it through cobra's SetArgs.
package cmd
