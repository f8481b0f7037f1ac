// File: facade/runtime.go
// Unified facade layer for hioload-async.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// This file defines the Runtime struct, which aggregates the executor,
// timer driver, I/O reactor, and clock behind a single facade. A Runtime is
// an explicit context object: callers construct as many as they need, and a
// process-wide instance is available through Default(), initialized lazily
// behind an atomic one-shot flag. The facade exposes spawn/block-on entry
// points, sleep and timeout constructors, per-CPU local executors with
// optional thread pinning, and debug probes over internal state.

package facade

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/momentics/hioload-async/affinity"
	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/control"
	"github.com/momentics/hioload-async/core/sched"
	"github.com/momentics/hioload-async/core/timer"
	"github.com/momentics/hioload-async/reactor"
)

// Runtime bundles the scheduling, timing, and I/O subsystems.
type Runtime struct {
	cfg     control.Config
	log     zerolog.Logger
	clock   api.Clock
	timers  *timer.Driver
	io      *reactor.Reactor
	exec    *sched.Executor
	probes  *control.DebugProbes
	metrics *control.MetricsRegistry

	localMu sync.Mutex
	locals  []*localExecutor

	closed atomic.Bool
}

// NewRuntime assembles a runtime from cfg. backend supplies the I/O
// completion source; passing nil disables the reactor, leaving timers and
// scheduling functional.
func NewRuntime(cfg control.Config, backend api.Backend) (*Runtime, error) {
	if err := control.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("facade: %w", err)
	}

	rt := &Runtime{
		cfg:     cfg,
		log:     newLogger(cfg.LogLevel),
		clock:   timer.NewMonotonicClock(),
		probes:  control.NewDebugProbes(),
		metrics: control.NewMetricsRegistry(),
	}
	rt.timers = timer.NewDriver(timer.NewQueue(cfg.TimerCapacity), rt.clock)
	if backend != nil {
		rt.io = reactor.New(backend)
	}
	rt.exec = sched.New(sched.Config{OnIdle: rt.idle})

	control.RegisterPlatformProbes(rt.probes)
	rt.probes.RegisterProbe("sched.live_tasks", func() any { return rt.exec.LiveTasks() })
	rt.probes.RegisterProbe("sched.ready", func() any { return rt.exec.Pending() })
	rt.probes.RegisterProbe("timer.pending", func() any { return rt.timers.Queue().Len() })
	rt.probes.RegisterProbe("timer.dropped", func() any { return rt.timers.Queue().Dropped() })
	if rt.io != nil {
		rt.probes.RegisterProbe("io.pending", func() any { return rt.io.PendingOperations() })
	}

	rt.log.Info().
		Int("timer_capacity", cfg.TimerCapacity).
		Int("local_executors", cfg.LocalExecutors).
		Bool("reactor", rt.io != nil).
		Msg("runtime assembled")
	return rt, nil
}

// idle advances time-driven and I/O-driven wake sources. Hooked into the
// executor's idle path so parked tasks make progress while BlockOn spins.
func (rt *Runtime) idle() {
	if fired := rt.timers.Tick(); fired > 0 {
		rt.metrics.Inc("timer.fired", int64(fired))
	}
	if rt.io != nil {
		rt.io.Poll()
	}
}

// Executor returns the runtime's default executor.
func (rt *Runtime) Executor() *sched.Executor { return rt.exec }

// Clock returns the runtime's monotonic clock.
func (rt *Runtime) Clock() api.Clock { return rt.clock }

// Timers returns the timer driver, for wiring into an IRQ registry.
func (rt *Runtime) Timers() *timer.Driver { return rt.timers }

// Reactor returns the I/O reactor, or nil when the runtime was built
// without a backend.
func (rt *Runtime) Reactor() *reactor.Reactor { return rt.io }

// Probes returns the debug probe registry.
func (rt *Runtime) Probes() *control.DebugProbes { return rt.probes }

// Metrics returns the runtime counter registry.
func (rt *Runtime) Metrics() *control.MetricsRegistry { return rt.metrics }

// Sleep returns a future completing d from now on the runtime's clock.
func (rt *Runtime) Sleep(d time.Duration) *timer.Sleep {
	return timer.NewSleep(rt.timers.Queue(), rt.clock, d)
}

// SubmitIO hands op to the reactor, returning a future resolving to its
// completion. Panics when the runtime has no reactor; configure a backend
// before submitting I/O.
func (rt *Runtime) SubmitIO(op api.Operation) *reactor.IoFuture {
	if rt.io == nil {
		panic("facade: SubmitIO on runtime without a backend")
	}
	rt.metrics.Inc("io.submitted", 1)
	return rt.io.SubmitOperation(op)
}

// Spawn enqueues fut on the runtime's default executor.
func Spawn[T any](rt *Runtime, fut api.Future[T]) *sched.Handle[T] {
	rt.metrics.Inc("sched.spawned", 1)
	return sched.Spawn(rt.exec, fut)
}

// BlockOn drives fut to completion on the calling goroutine, interleaving
// executor steps, timer ticks, and reactor polls.
func BlockOn[T any](rt *Runtime, fut api.Future[T]) T {
	return sched.BlockOn(rt.exec, fut)
}

// Timeout races fut against a deadline d from now. The losing side is
// reported through the result's Err field as api.ErrTimedOut.
func Timeout[T any](rt *Runtime, fut api.Future[T], d time.Duration) *timer.Timeout[T] {
	return timer.NewTimeout(rt.timers.Queue(), rt.clock, fut, d)
}

// localExecutor hosts a per-CPU executor on a dedicated goroutine.
type localExecutor struct {
	exec *sched.Executor
	stop chan struct{}
	done chan struct{}
}

// StartLocals launches cfg.LocalExecutors per-CPU executors, each on its
// own goroutine, pinned to its core index when cfg.PinLocalExecutors is
// set. Idempotent after the first call.
func (rt *Runtime) StartLocals() {
	rt.localMu.Lock()
	defer rt.localMu.Unlock()
	if len(rt.locals) > 0 || rt.cfg.LocalExecutors <= 0 {
		return
	}
	for i := 0; i < rt.cfg.LocalExecutors; i++ {
		le := &localExecutor{
			exec: sched.New(sched.Config{OnIdle: rt.idle}),
			stop: make(chan struct{}),
			done: make(chan struct{}),
		}
		rt.locals = append(rt.locals, le)
		go rt.runLocal(le, i)
	}
	rt.log.Info().Int("count", rt.cfg.LocalExecutors).Msg("local executors started")
}

// Local returns the i-th per-CPU executor for core-targeted spawning.
// StartLocals must have run first.
func (rt *Runtime) Local(i int) *sched.Executor {
	rt.localMu.Lock()
	defer rt.localMu.Unlock()
	if i < 0 || i >= len(rt.locals) {
		return nil
	}
	return rt.locals[i].exec
}

func (rt *Runtime) runLocal(le *localExecutor, cpu int) {
	defer close(le.done)
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if rt.cfg.PinLocalExecutors {
		if err := affinity.SetAffinity(cpu); err != nil {
			rt.log.Warn().Err(err).Int("cpu", cpu).Msg("affinity pin failed")
		}
	}
	for {
		select {
		case <-le.stop:
			return
		default:
		}
		if !le.exec.Step() {
			rt.idle()
			runtime.Gosched()
		}
	}
}

// Shutdown stops local executors and abandons every unfinished task on
// all executors; their handles resolve to api.ErrTaskAbandoned. Safe to
// call more than once.
func (rt *Runtime) Shutdown() {
	if !rt.closed.CompareAndSwap(false, true) {
		return
	}
	rt.localMu.Lock()
	locals := rt.locals
	rt.localMu.Unlock()
	for _, le := range locals {
		close(le.stop)
	}
	for _, le := range locals {
		<-le.done
		le.exec.Close()
	}
	rt.exec.Close()
	rt.log.Info().Msg("runtime shut down")
}

// Process-wide default runtime, initialized lazily behind an atomic
// one-shot flag rather than a mutable static.
var (
	defaultInit atomic.Uint32
	defaultRT   atomic.Pointer[Runtime]
)

// Default returns the process-wide runtime, creating it on first use with
// default configuration and an inline synchronous backend.
func Default() *Runtime {
	if rt := defaultRT.Load(); rt != nil {
		return rt
	}
	if defaultInit.CompareAndSwap(0, 1) {
		rt, err := NewRuntime(control.DefaultConfig(), reactor.NewSyncBackend())
		if err != nil {
			panic(fmt.Sprintf("facade: default runtime: %v", err))
		}
		defaultRT.Store(rt)
	}
	for {
		if rt := defaultRT.Load(); rt != nil {
			return rt
		}
		runtime.Gosched()
	}
}
