// File: core/timer/sleep.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package timer

import (
	"time"

	"github.com/momentics/hioload-async/api"
)

// Sleep is a future that completes once the clock passes its deadline.
// Each poll compares the current time against the deadline; while pending
// it holds exactly one live registration in the timer queue, re-registering
// only when polled with a waker that wakes a different task than the one
// already registered.
type Sleep struct {
	queue      *Queue
	clock      api.Clock
	deadline   int64
	registered api.Waker
}

// NewSleep creates a sleep of the given duration from now.
func NewSleep(q *Queue, clock api.Clock, d time.Duration) *Sleep {
	return NewSleepUntil(q, clock, clock.Now()+int64(d))
}

// NewSleepUntil creates a sleep completing at an absolute deadline.
func NewSleepUntil(q *Queue, clock api.Clock, deadline int64) *Sleep {
	return &Sleep{queue: q, clock: clock, deadline: deadline}
}

// Deadline returns the absolute completion time.
func (s *Sleep) Deadline() int64 { return s.deadline }

// Reset re-arms the sleep for d from now. The previous registration, if
// any, becomes a harmless early wake.
func (s *Sleep) Reset(d time.Duration) {
	s.deadline = s.clock.Now() + int64(d)
	s.registered = nil
}

// Poll implements api.Future.
func (s *Sleep) Poll(w api.Waker) (api.Unit, bool) {
	if s.clock.Now() >= s.deadline {
		return api.Unit{}, true
	}
	if s.registered == nil || !s.registered.WillWake(w) {
		s.registered = w
		s.queue.Set(s.deadline, w)
	}
	return api.Unit{}, false
}
