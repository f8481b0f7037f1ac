// File: benchmarks/performance_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Throughput benchmarks for the scheduling, locking, and timing layers.

package benchmarks

import (
	"testing"
	"time"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/core/locks"
	"github.com/momentics/hioload-async/core/oneshot"
	"github.com/momentics/hioload-async/core/sched"
	"github.com/momentics/hioload-async/core/timer"
	"github.com/momentics/hioload-async/fake"
)

func BenchmarkSpawnAndDrain(b *testing.B) {
	e := sched.New(sched.Config{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sched.Spawn(e, api.Ready(i))
		for e.Step() {
		}
	}
}

func BenchmarkOneshotRoundTrip(b *testing.B) {
	w := sched.DummyWaker()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		tx, rx := oneshot.New[int]()
		tx.Send(i)
		rx.Poll(w)
	}
}

func BenchmarkMutexUncontended(b *testing.B) {
	m := locks.NewMutex()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		g, _ := m.TryLock()
		g.Unlock()
	}
}

func BenchmarkMutexHandoff(b *testing.B) {
	e := sched.New(sched.Config{})
	m := locks.NewMutex()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fut := m.Lock()
		sched.Spawn(e, api.PollFunc[api.Unit](func(w api.Waker) (api.Unit, bool) {
			g, ok := fut.Poll(w)
			if !ok {
				return api.Unit{}, false
			}
			g.Unlock()
			return api.Unit{}, true
		}))
	}
	for e.Step() {
	}
}

func BenchmarkSemaphoreAcquireRelease(b *testing.B) {
	s := locks.NewSemaphore(1)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		p, _ := s.TryAcquire()
		p.Release()
	}
}

func BenchmarkTimerSetExpire(b *testing.B) {
	clock := fake.NewClock()
	q := timer.NewQueue(timer.DefaultCapacity)
	w := sched.DummyWaker()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		clock.Advance(1)
		q.Set(clock.Now(), w)
		q.ExpireOne(clock.Now())
	}
}

func BenchmarkSleepPollReady(b *testing.B) {
	clock := fake.NewClock()
	q := timer.NewQueue(timer.DefaultCapacity)
	clock.Set(int64(time.Hour))
	w := sched.DummyWaker()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		s := timer.NewSleepUntil(q, clock, 0)
		s.Poll(w)
	}
}
