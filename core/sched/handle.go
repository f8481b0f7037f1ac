// File: core/sched/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package sched

import (
	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/core/oneshot"
)

// Handle is the awaitable side of a spawned task, backed by the task's
// oneshot result channel. It resolves to an api.Result: a value when the
// task completed, api.ErrTaskAbandoned when the task (or its executor) was
// dropped before completing. The panic-or-not decision stays with the
// caller.
type Handle[T any] struct {
	rx *oneshot.Receiver[T]
}

// Poll implements api.Future.
func (h *Handle[T]) Poll(w api.Waker) (api.Result[T], bool) {
	return h.rx.Poll(w)
}

// TryRecv takes the task's output without blocking or registering a waker.
func (h *Handle[T]) TryRecv() (T, error) {
	return h.rx.TryRecv()
}
