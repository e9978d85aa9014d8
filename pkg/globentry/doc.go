// SPDX-License-Identifier: MPL-2.0

// Package globentry resolves glob patterns into build entry points.
//
// A set of doublestar patterns is expanded against the filesystem and every
// matched file is assigned an entry identifier by a naming strategy. The
// default strategy strips the pattern's root directory and the file
// extension and always uses "/" as separator:
//
//	pattern "src/pages/**/*.js", file "src/pages/blog/post.js" -> "blog/post"
//
// Resolution is split in two stages. New validates the static plugin
// options once; Aggregator.Entries expands the patterns again on every call
// so that a build host can pick up files created or deleted between
// rebuilds. Identifier collisions are resolved by last-writer-wins in
// pattern-then-match order.
//
// Each pattern's root directory (the longest wildcard-free prefix) is
// recorded in a WatchRegistry. The registry only grows; a build host reads it
// after every compilation pass to extend its watched directories (see
// package buildhook).
package globentry
