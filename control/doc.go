// Package control
// Author: momentics <momentics@gmail.com>
//
// Runtime configuration, metrics, and debug introspection layer.
// Part of the hioload-async runtime core.
//
// Provides concurrent-safe state handling primitives including:
//   - Declarative TOML-loadable runtime configuration with validation
//   - Metrics telemetry contracts
//   - Debug hooks and probe registration
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
