// File: core/timer/clock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package timer

import (
	"time"

	"github.com/momentics/hioload-async/api"
)

// monotonicClock reads the host monotonic clock.
type monotonicClock struct {
	origin time.Time
}

// NewMonotonicClock returns an api.Clock backed by the host monotonic clock.
func NewMonotonicClock() api.Clock {
	return &monotonicClock{origin: time.Now()}
}

// Now returns nanoseconds since the clock was created.
func (c *monotonicClock) Now() int64 {
	return int64(time.Since(c.origin))
}
