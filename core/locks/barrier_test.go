// File: core/locks/barrier_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package locks_test

import (
	"testing"

	"github.com/momentics/hioload-async/core/locks"
	"github.com/momentics/hioload-async/core/sched"
)

func TestBarrierStartsReleased(t *testing.T) {
	b := locks.NewBarrier(false)
	if !b.IsReleased() {
		t.Fatal("unlocked barrier reports held")
	}
	g, ok := b.TryAcquire()
	if !ok {
		t.Fatal("TryAcquire on released barrier failed")
	}
	if b.IsReleased() {
		t.Fatal("barrier reports released while held")
	}
	g.Release()
	if !b.IsReleased() {
		t.Fatal("guard release did not free the barrier")
	}
}

func TestBarrierStartsLocked(t *testing.T) {
	b := locks.NewBarrier(true)
	if b.IsReleased() {
		t.Fatal("locked barrier reports released")
	}
	if _, ok := b.TryAcquire(); ok {
		t.Fatal("TryAcquire on locked barrier succeeded")
	}

	woken := false
	fut := b.Acquire()
	if _, ok := fut.Poll(sched.NewSimpleWaker(func() { woken = true })); ok {
		t.Fatal("acquire succeeded on locked barrier")
	}
	b.Release()
	if !woken {
		t.Fatal("barrier release did not wake the waiter")
	}
	g, ok := fut.Poll(sched.DummyWaker())
	if !ok {
		t.Fatal("woken waiter could not pass the barrier")
	}
	g.Release()
}

func TestBarrierSingleHolder(t *testing.T) {
	b := locks.NewBarrier(false)
	g, _ := b.TryAcquire()
	if _, ok := b.TryAcquire(); ok {
		t.Fatal("two holders passed the barrier at once")
	}
	g.Release()
	if _, ok := b.TryAcquire(); !ok {
		t.Fatal("barrier not reusable after release")
	}
}
