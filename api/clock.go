// Package api
// Author: momentics
//
// Monotonic clock contract consumed by the timer queue and sleep futures.

package api

// Clock supplies an ordered monotonic timestamp for deadline arithmetic.
type Clock interface {
	// Now returns monotonic time in nanoseconds since an arbitrary origin.
	Now() int64
}
