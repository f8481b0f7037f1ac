// Package api
// Author: momentics@gmail.com
//
// Generic result propagation for awaitable outcomes.

package api

// Result wraps a payload or the reason it never arrived. Join handles
// resolve to a Result so that abandonment (producer dropped before
// completing) is an outcome the caller interprets, not an abort.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok reports whether the result carries a value.
func (r Result[T]) Ok() bool { return r.Err == nil }

// Get returns the value and error as an ordinary Go pair.
func (r Result[T]) Get() (T, error) { return r.Value, r.Err }

// Unwrap returns the value and panics on an error result. Intended for
// call sites that have already ruled abandonment out.
func (r Result[T]) Unwrap() T {
	if r.Err != nil {
		panic("unwrap of error result: " + r.Err.Error())
	}
	return r.Value
}
