// SPDX-License-Identifier: MPL-2.0

// Package buildhook connects a globentry.WatchRegistry to a build host.
//
// A Plugin registers itself for the host's after-compile event and, each
// time a compilation pass finishes, copies every registered root directory
// into the compilation's context dependencies so the host watches them.
// Hosts come in two shapes, selected once in Plugin.Apply:
//
//   - HookedCompiler exposes a Hooks collection with an asynchronous
//     AfterCompile hook (the current API);
//   - LegacyCompiler only accepts direct callbacks by event name.
//
// Compilations carry their dependencies either as an ordered DependencyList
// (legacy) or an insert-only DependencySet (current).
package buildhook
