// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// They cover the hot paths of globentries:
//   - CUE configuration loading and schema validation
//   - root detection and glob expansion
//   - entry aggregation across several patterns
//   - after-compile flushing through the in-process build host
//
// To generate a profile, run:
//
//	go test ./internal/benchmark -run '^$' -bench . -cpuprofile default.pgo
package benchmark
