//go:build debugasserts

// File: internal/assert/assert.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Debug assertions for logic violations (double-send, permit over-release).
// Fatal under the debugasserts build tag, compiled out otherwise.

package assert

// That panics with msg when cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic("invariant violated: " + msg)
	}
}
