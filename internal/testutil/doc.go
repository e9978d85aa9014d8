// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that handle errors
// appropriately, reducing boilerplate and ensuring consistent error handling.
//
// Common helpers include fixture trees (WriteTree, TouchFiles), file
// operations (MustWriteFile, MustMkdirAll), a goroutine-safe output buffer
// (SafeBuffer) and polling for asynchronous results (Eventually).
package testutil
