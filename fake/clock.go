// Package fake
// Author: momentics <momentics@gmail.com>
//
// Fake implementations for testing and development.
// Provides predictable, controllable behavior for the runtime's consumed
// interfaces: clock, reactor backend, connection, interrupt registry.

package fake

import "sync/atomic"

// Clock is a manually advanced monotonic clock.
type Clock struct {
	now atomic.Int64
}

// NewClock starts at zero.
func NewClock() *Clock { return &Clock{} }

// Now implements api.Clock.
func (c *Clock) Now() int64 { return c.now.Load() }

// Advance moves the clock forward by d nanoseconds.
func (c *Clock) Advance(d int64) { c.now.Add(d) }

// Set jumps the clock to an absolute time.
func (c *Clock) Set(t int64) { c.now.Store(t) }
