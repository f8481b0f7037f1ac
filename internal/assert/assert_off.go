//go:build !debugasserts

// File: internal/assert/assert_off.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package assert

// That is a no-op in release builds; the condition is best-effort ignored.
func That(cond bool, msg string) {}
