// File: api/future.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Poll-based asynchronous computation contract.

package api

// Unit is the output type of futures that complete with no value.
type Unit = struct{}

// Future is a suspendable computation. Poll either completes with a value
// (ready == true) or registers w with whatever the computation waits on and
// reports pending. A pending future must arrange for w to be invoked when
// progress becomes possible; a future polled after completion has undefined
// behavior unless documented otherwise.
type Future[T any] interface {
	Poll(w Waker) (value T, ready bool)
}

// PollFunc adapts a plain function to the Future interface.
type PollFunc[T any] func(w Waker) (T, bool)

// Poll implements Future.
func (f PollFunc[T]) Poll(w Waker) (T, bool) { return f(w) }

// Ready returns a future that resolves immediately with v.
func Ready[T any](v T) Future[T] {
	return PollFunc[T](func(Waker) (T, bool) { return v, true })
}
