// File: facade/runtime_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package facade_test

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/momentics/hioload-async/api"
	"github.com/momentics/hioload-async/control"
	"github.com/momentics/hioload-async/core/sched"
	"github.com/momentics/hioload-async/facade"
	"github.com/momentics/hioload-async/fake"
	"github.com/momentics/hioload-async/reactor"
)

func newRuntime(t *testing.T) *facade.Runtime {
	t.Helper()
	cfg := control.DefaultConfig()
	cfg.LogLevel = "error"
	rt, err := facade.NewRuntime(cfg, reactor.NewSyncBackend())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(rt.Shutdown)
	return rt
}

func TestRuntimeSpawnBlockOn(t *testing.T) {
	rt := newRuntime(t)
	h := facade.Spawn(rt, api.Ready("done"))
	res := facade.BlockOn(rt, h)
	v, err := res.Get()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if v != "done" {
		t.Fatalf("result = %q, want %q", v, "done")
	}
}

func TestRuntimeSleepCompletes(t *testing.T) {
	rt := newRuntime(t)
	start := rt.Clock().Now()
	facade.BlockOn(rt, rt.Sleep(2*time.Millisecond))
	elapsed := rt.Clock().Now() - start
	if elapsed < int64(2*time.Millisecond) {
		t.Fatalf("sleep returned after %dns, want >= 2ms", elapsed)
	}
}

func TestRuntimeTimeoutFires(t *testing.T) {
	rt := newRuntime(t)
	stuck := api.PollFunc[int](func(w api.Waker) (int, bool) { return 0, false })
	res := facade.BlockOn(rt, facade.Timeout(rt, stuck, 2*time.Millisecond))
	if !errors.Is(res.Err, api.ErrTimedOut) {
		t.Fatalf("Err = %v, want ErrTimedOut", res.Err)
	}
}

func TestRuntimeTimeoutInnerWins(t *testing.T) {
	rt := newRuntime(t)
	res := facade.BlockOn(rt, facade.Timeout(rt, api.Ready(5), time.Second))
	v, err := res.Get()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if v != 5 {
		t.Fatalf("value = %d, want 5", v)
	}
}

func TestRuntimeIO(t *testing.T) {
	rt := newRuntime(t)
	conn := fake.NewConn()
	conn.Feed([]byte("ping"))

	buf := make([]byte, 8)
	res := facade.BlockOn(rt, rt.SubmitIO(api.Operation{
		Kind: api.OpRead,
		Conn: conn,
		Buf:  buf,
	}))
	c, err := res.Get()
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if !bytes.Equal(buf[:c.N], []byte("ping")) {
		t.Fatalf("read %q, want %q", buf[:c.N], "ping")
	}
	if rt.Metrics().Get("io.submitted") != 1 {
		t.Fatalf("io.submitted = %d, want 1", rt.Metrics().Get("io.submitted"))
	}
}

func TestRuntimeShutdownAbandonsTasks(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.LogLevel = "error"
	rt, err := facade.NewRuntime(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	h := facade.Spawn(rt, api.PollFunc[int](func(w api.Waker) (int, bool) {
		return 0, false
	}))
	rt.Shutdown()
	rt.Shutdown()

	if _, err := h.TryRecv(); !errors.Is(err, api.ErrTaskAbandoned) {
		t.Fatalf("TryRecv err = %v, want ErrTaskAbandoned", err)
	}
}

func TestRuntimeLocalExecutors(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.LogLevel = "error"
	cfg.LocalExecutors = 2
	rt, err := facade.NewRuntime(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer rt.Shutdown()
	rt.StartLocals()

	if rt.Local(0) == nil || rt.Local(1) == nil {
		t.Fatal("local executors not available after StartLocals")
	}
	if rt.Local(2) != nil {
		t.Fatal("out-of-range local executor returned")
	}

	done := make(chan struct{})
	sched.Spawn(rt.Local(0), api.PollFunc[api.Unit](func(w api.Waker) (api.Unit, bool) {
		close(done)
		return api.Unit{}, true
	}))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task on local executor never ran")
	}
}

func TestRuntimeRejectsBadConfig(t *testing.T) {
	cfg := control.DefaultConfig()
	cfg.TimerCapacity = 0
	if _, err := facade.NewRuntime(cfg, nil); err == nil {
		t.Fatal("NewRuntime accepted zero timer capacity")
	}
}

func TestRuntimeProbes(t *testing.T) {
	rt := newRuntime(t)
	state := rt.Probes().DumpState()
	for _, key := range []string{"sched.live_tasks", "sched.ready", "timer.pending", "io.pending"} {
		if _, ok := state[key]; !ok {
			t.Errorf("probe %q missing", key)
		}
	}
}

func TestDefaultRuntimeIdempotent(t *testing.T) {
	if facade.Default() != facade.Default() {
		t.Fatal("Default returned distinct runtimes")
	}
}
