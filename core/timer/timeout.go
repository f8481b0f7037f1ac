// File: core/timer/timeout.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package timer

import (
	"time"

	"github.com/momentics/hioload-async/api"
)

// Timeout races an inner future against a deadline. The inner future is
// polled first on every pass, so an inner result that is ready at the same
// poll as the deadline wins.
type Timeout[T any] struct {
	inner api.Future[T]
	sleep *Sleep
}

// NewTimeout wraps inner with a deadline d from now.
func NewTimeout[T any](q *Queue, clock api.Clock, inner api.Future[T], d time.Duration) *Timeout[T] {
	return &Timeout[T]{inner: inner, sleep: NewSleep(q, clock, d)}
}

// Poll implements api.Future. Resolves to the inner value, or to
// api.ErrTimedOut once the deadline passes first.
func (t *Timeout[T]) Poll(w api.Waker) (api.Result[T], bool) {
	if v, ready := t.inner.Poll(w); ready {
		return api.Result[T]{Value: v}, true
	}
	if _, expired := t.sleep.Poll(w); expired {
		return api.Result[T]{Err: api.ErrTimedOut}, true
	}
	return api.Result[T]{}, false
}
